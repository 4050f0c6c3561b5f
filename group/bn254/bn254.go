// Package bn254 provides the BN254 pairing groups backed by gnark-crypto.
package bn254

import (
	"sync"

	"github.com/consensys/gnark-crypto/ecc"
	gbn254 "github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/vocdoni/gnark-crypto-she/group"
)

var (
	once  sync.Once
	curve *group.Curve
	err   error
)

// Curve returns the BN254 groups. The target group generator e(P, Q) is
// computed on first use and shared afterwards.
func Curve() (*group.Curve, error) {
	once.Do(func() {
		_, _, g1, g2 := gbn254.Generators()
		curve, err = group.NewPairingCurve(ecc.BN254, g1, g2, fr.Modulus(), gbn254.Pair)
	})
	return curve, err
}
