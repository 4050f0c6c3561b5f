// Package curves resolves gnark-crypto curve identifiers to the groups
// implemented in this module.
package curves

import (
	"errors"
	"fmt"
	"strings"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/vocdoni/gnark-crypto-she/group"
	"github.com/vocdoni/gnark-crypto-she/group/bls12377"
	"github.com/vocdoni/gnark-crypto-she/group/bls12381"
	"github.com/vocdoni/gnark-crypto-she/group/bn254"
	"github.com/vocdoni/gnark-crypto-she/group/secp256k1"
)

// ErrUnsupported is returned for curves without an implementation.
var ErrUnsupported = errors.New("curves: unsupported curve")

// Pairings lists the pairing-friendly curves, usable in two-level mode.
var Pairings = []ecc.ID{ecc.BN254, ecc.BLS12_381, ecc.BLS12_377}

// SingleGroup lists the curves only usable in single-level mode.
var SingleGroup = []ecc.ID{ecc.SECP256K1}

// Get returns the groups of curve id. Pairing-friendly curves come with G2,
// GT and the pairing; the others only carry G1.
func Get(id ecc.ID) (*group.Curve, error) {
	switch id {
	case ecc.BN254:
		return bn254.Curve()
	case ecc.BLS12_381:
		return bls12381.Curve()
	case ecc.BLS12_377:
		return bls12377.Curve()
	case ecc.SECP256K1:
		return secp256k1.Curve(), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, Name(id))
}

// Name returns the canonical name of id without panicking on unknown values.
func Name(id ecc.ID) string {
	for _, c := range append(Pairings, SingleGroup...) {
		if c == id {
			return id.String()
		}
	}
	return fmt.Sprintf("ecc.ID(%d)", id)
}

// Parse returns the identifier of the named curve ("bn254", "bls12_381",
// "bls12_377", "secp256k1"). Dashes are accepted in place of underscores.
func Parse(name string) (ecc.ID, error) {
	id, err := ecc.IDFromString(strings.ReplaceAll(name, "-", "_"))
	if err != nil {
		return ecc.UNKNOWN, fmt.Errorf("%w: %q", ErrUnsupported, name)
	}
	if _, err := Get(id); err != nil {
		return ecc.UNKNOWN, err
	}
	return id, nil
}
