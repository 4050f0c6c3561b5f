// Package group abstracts the prime-order groups the encryption scheme works
// in. Elements are written additively, including the pairing target group
// whose native operation is multiplication.
package group

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
)

// ErrInvalidPoint is returned when a byte string does not encode an element of
// the group.
var ErrInvalidPoint = errors.New("group: invalid point encoding")

// Point is an element of a prime-order group. Points are immutable, every
// operation returns a new value.
type Point interface {
	Add(q Point) Point
	Sub(q Point) Point
	Neg() Point
	// Mul returns k*p. k may be negative or larger than the group order.
	Mul(k *big.Int) Point
	Equal(q Point) bool
	IsIdentity() bool
	// Bytes returns the fixed size encoding of the point.
	Bytes() []byte
}

// Group describes a prime-order group and acts as the only factory of its
// points.
type Group interface {
	String() string
	Order() *big.Int
	Identity() Point
	Generator() Point
	// ElementLen is the length of Point.Bytes for every point of the group.
	ElementLen() int
	// NewPoint decodes a point produced by Point.Bytes.
	NewPoint(data []byte) (Point, error)
}

// Pairing computes products of bilinear pairings e: G1 x G2 -> GT.
type Pairing interface {
	// Pair returns e(ps[0], qs[0]) + ... + e(ps[n-1], qs[n-1]) in additive
	// notation.
	Pair(ps, qs []Point) (Point, error)
}

// Curve bundles the groups of an elliptic curve. G2, GT and Pairing are nil
// when the curve has no pairing.
type Curve struct {
	ID      ecc.ID
	G1      Group
	G2      Group
	GT      Group
	Pairing Pairing
}

// HasPairing reports whether the curve supports the pairing G1 x G2 -> GT.
func (c *Curve) HasPairing() bool {
	return c.Pairing != nil && c.G2 != nil && c.GT != nil
}

func (c *Curve) String() string {
	return c.ID.String()
}

// RandomScalar returns a uniform scalar in [1, order-1] read from r.
func RandomScalar(r io.Reader, order *big.Int) (*big.Int, error) {
	n := new(big.Int).Sub(order, big.NewInt(1))
	k, err := rand.Int(r, n)
	if err != nil {
		return nil, fmt.Errorf("group: random scalar: %w", err)
	}
	return k.Add(k, big.NewInt(1)), nil
}

// ScalarLen returns the number of bytes needed to encode any scalar modulo
// order.
func ScalarLen(order *big.Int) int {
	return (order.BitLen() + 7) / 8
}
