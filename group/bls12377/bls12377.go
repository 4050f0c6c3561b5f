// Package bls12377 provides the BLS12-377 pairing groups backed by gnark-crypto.
package bls12377

import (
	"sync"

	"github.com/consensys/gnark-crypto/ecc"
	gbls12377 "github.com/consensys/gnark-crypto/ecc/bls12-377"
	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
	"github.com/vocdoni/gnark-crypto-she/group"
)

var (
	once  sync.Once
	curve *group.Curve
	err   error
)

// Curve returns the BLS12-377 groups. The target group generator e(P, Q) is
// computed on first use and shared afterwards.
func Curve() (*group.Curve, error) {
	once.Do(func() {
		_, _, g1, g2 := gbls12377.Generators()
		curve, err = group.NewPairingCurve(ecc.BLS12_377, g1, g2, fr.Modulus(), gbls12377.Pair)
	})
	return curve, err
}
