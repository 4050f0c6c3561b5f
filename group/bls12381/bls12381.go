// Package bls12381 provides the BLS12-381 pairing groups backed by gnark-crypto.
package bls12381

import (
	"sync"

	"github.com/consensys/gnark-crypto/ecc"
	gbls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/vocdoni/gnark-crypto-she/group"
)

var (
	once  sync.Once
	curve *group.Curve
	err   error
)

// Curve returns the BLS12-381 groups. The target group generator e(P, Q) is
// computed on first use and shared afterwards.
func Curve() (*group.Curve, error) {
	once.Do(func() {
		_, _, g1, g2 := gbls12381.Generators()
		curve, err = group.NewPairingCurve(ecc.BLS12_381, g1, g2, fr.Modulus(), gbls12381.Pair)
	})
	return curve, err
}
