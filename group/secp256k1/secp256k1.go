// Package secp256k1 provides the secp256k1 group for the single-level
// (lifted ElGamal) mode. The curve has no pairing.
package secp256k1

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/consensys/gnark-crypto/ecc"
	"github.com/vocdoni/gnark-crypto-she/group"
)

// encLen is the length of a SEC1 compressed point. The identity, which has no
// SEC1 encoding, is written as encLen zero bytes.
const encLen = btcec.PubKeyBytesLenCompressed

var (
	order    = ecc.SECP256K1.ScalarField()
	identity = make([]byte, encLen)
	g1       = &secpGroup{}
)

// Curve returns the secp256k1 curve, with G1 set and no pairing.
func Curve() *group.Curve {
	return &group.Curve{ID: ecc.SECP256K1, G1: g1}
}

type secpGroup struct{}

func (*secpGroup) String() string { return "secp256k1/G1" }

func (*secpGroup) Order() *big.Int { return new(big.Int).Set(order) }

func (*secpGroup) ElementLen() int { return encLen }

func (*secpGroup) Identity() group.Point { return &point{} }

func (*secpGroup) Generator() group.Point {
	p := &point{}
	btcec.GeneratorJacobian(&p.v)
	return p
}

func (*secpGroup) NewPoint(data []byte) (group.Point, error) {
	if len(data) != encLen {
		return nil, fmt.Errorf("%w: secp256k1 expects %d bytes, got %d", group.ErrInvalidPoint, encLen, len(data))
	}
	p := &point{}
	if bytes.Equal(data, identity) {
		return p, nil
	}
	pk, err := btcec.ParsePubKey(data)
	if err != nil {
		return nil, fmt.Errorf("%w: secp256k1: %v", group.ErrInvalidPoint, err)
	}
	pk.AsJacobian(&p.v)
	return p, nil
}

// point is a secp256k1 point in Jacobian coordinates with normalized field
// values.
type point struct {
	v btcec.JacobianPoint
}

func cast(q group.Point) *point {
	p, ok := q.(*point)
	if !ok {
		panic(fmt.Sprintf("group: %T is not a point of secp256k1/G1", q))
	}
	return p
}

func (p *point) Add(q group.Point) group.Point {
	r := &point{}
	btcec.AddNonConst(&p.v, &cast(q).v, &r.v)
	return r
}

func (p *point) Sub(q group.Point) group.Point {
	return p.Add(q.Neg())
}

func (p *point) Neg() group.Point {
	r := &point{}
	r.v.Set(&p.v)
	r.v.Y.Normalize().Negate(1).Normalize()
	return r
}

func (p *point) Mul(k *big.Int) group.Point {
	r := &point{}
	e := new(big.Int).Mod(k, order)
	if e.Sign() == 0 || p.IsIdentity() {
		return r
	}
	var s btcec.ModNScalar
	s.SetByteSlice(e.Bytes())
	btcec.ScalarMultNonConst(&s, &p.v, &r.v)
	return r
}

func (p *point) Equal(q group.Point) bool {
	o := cast(q)
	if p.IsIdentity() || o.IsIdentity() {
		return p.IsIdentity() == o.IsIdentity()
	}
	return p.v.EquivalentNonConst(&o.v)
}

func (p *point) IsIdentity() bool {
	return (p.v.X.IsZero() && p.v.Y.IsZero()) || p.v.Z.IsZero()
}

func (p *point) Bytes() []byte {
	if p.IsIdentity() {
		return make([]byte, encLen)
	}
	var a btcec.JacobianPoint
	a.Set(&p.v)
	a.ToAffine()
	return btcec.NewPublicKey(&a.X, &a.Y).SerializeCompressed()
}
