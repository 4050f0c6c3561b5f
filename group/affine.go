package group

import (
	"fmt"
	"math/big"
)

// affinePtr is satisfied by pointers to the gnark-crypto affine point types
// (bn254.G1Affine, bls12381.G2Affine, ...).
type affinePtr[T any] interface {
	*T
	Add(a, b *T) *T
	Sub(a, b *T) *T
	Neg(a *T) *T
	ScalarMultiplication(a *T, s *big.Int) *T
	Equal(a *T) bool
	IsInfinity() bool
	Marshal() []byte
	Unmarshal(buf []byte) error
}

// AffineGroup is a Group of gnark-crypto affine points. The zero value of T
// is the point at infinity.
type AffineGroup[T any, PT affinePtr[T]] struct {
	name   string
	order  *big.Int
	gen    T
	encLen int
}

// NewAffineGroup returns the group generated by gen, of prime order order.
func NewAffineGroup[T any, PT affinePtr[T]](name string, gen T, order *big.Int) *AffineGroup[T, PT] {
	g := &AffineGroup[T, PT]{
		name:  name,
		order: new(big.Int).Set(order),
		gen:   gen,
	}
	g.encLen = len(PT(&g.gen).Marshal())
	return g
}

func (g *AffineGroup[T, PT]) String() string { return g.name }

func (g *AffineGroup[T, PT]) Order() *big.Int { return new(big.Int).Set(g.order) }

func (g *AffineGroup[T, PT]) ElementLen() int { return g.encLen }

func (g *AffineGroup[T, PT]) Identity() Point { return &affinePoint[T, PT]{g: g} }

func (g *AffineGroup[T, PT]) Generator() Point { return g.wrap(g.gen) }

func (g *AffineGroup[T, PT]) NewPoint(data []byte) (Point, error) {
	if len(data) != g.encLen {
		return nil, fmt.Errorf("%w: %s expects %d bytes, got %d", ErrInvalidPoint, g.name, g.encLen, len(data))
	}
	p := &affinePoint[T, PT]{g: g}
	// Unmarshal rejects points outside the prime-order subgroup
	if err := PT(&p.v).Unmarshal(data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPoint, g.name, err)
	}
	return p, nil
}

func (g *AffineGroup[T, PT]) wrap(v T) *affinePoint[T, PT] {
	return &affinePoint[T, PT]{g: g, v: v}
}

// value extracts the raw affine point. It panics if p belongs to another
// group, which is always a programming error.
func (g *AffineGroup[T, PT]) value(p Point) *T {
	q, ok := p.(*affinePoint[T, PT])
	if !ok || q.g.name != g.name {
		panic(fmt.Sprintf("group: %T is not a point of %s", p, g.name))
	}
	return &q.v
}

type affinePoint[T any, PT affinePtr[T]] struct {
	g *AffineGroup[T, PT]
	v T
}

func (p *affinePoint[T, PT]) Add(q Point) Point {
	r := &affinePoint[T, PT]{g: p.g}
	PT(&r.v).Add(&p.v, p.g.value(q))
	return r
}

func (p *affinePoint[T, PT]) Sub(q Point) Point {
	r := &affinePoint[T, PT]{g: p.g}
	PT(&r.v).Sub(&p.v, p.g.value(q))
	return r
}

func (p *affinePoint[T, PT]) Neg() Point {
	r := &affinePoint[T, PT]{g: p.g}
	PT(&r.v).Neg(&p.v)
	return r
}

func (p *affinePoint[T, PT]) Mul(k *big.Int) Point {
	r := &affinePoint[T, PT]{g: p.g}
	e := new(big.Int).Mod(k, p.g.order)
	if e.Sign() == 0 || PT(&p.v).IsInfinity() {
		return r
	}
	PT(&r.v).ScalarMultiplication(&p.v, e)
	return r
}

func (p *affinePoint[T, PT]) Equal(q Point) bool {
	return PT(&p.v).Equal(p.g.value(q))
}

func (p *affinePoint[T, PT]) IsIdentity() bool {
	return PT(&p.v).IsInfinity()
}

func (p *affinePoint[T, PT]) Bytes() []byte {
	return PT(&p.v).Marshal()
}

func (p *affinePoint[T, PT]) String() string {
	return fmt.Sprintf("%s(%x)", p.g.name, p.Bytes())
}
