package group

import (
	"fmt"
	"math/big"
)

// targetPtr is satisfied by pointers to the gnark-crypto pairing target
// group elements (fptower.E12 of every supported curve).
type targetPtr[T any] interface {
	*T
	Mul(x, y *T) *T
	Inverse(x *T) *T
	Exp(x T, k *big.Int) *T
	Equal(x *T) bool
	IsOne() bool
	SetOne() *T
	IsInSubGroup() bool
	Marshal() []byte
	Unmarshal(buf []byte) error
}

// TargetGroup is the pairing target group GT written additively: Add is the
// field multiplication and Mul(k) is exponentiation.
type TargetGroup[T any, PT targetPtr[T]] struct {
	name   string
	order  *big.Int
	gen    T
	one    T
	encLen int
}

// NewTargetGroup returns the order-order subgroup of the target field
// generated by gen, usually e(P, Q).
func NewTargetGroup[T any, PT targetPtr[T]](name string, gen T, order *big.Int) *TargetGroup[T, PT] {
	g := &TargetGroup[T, PT]{
		name:  name,
		order: new(big.Int).Set(order),
		gen:   gen,
	}
	PT(&g.one).SetOne()
	g.encLen = len(PT(&g.gen).Marshal())
	return g
}

func (g *TargetGroup[T, PT]) String() string { return g.name }

func (g *TargetGroup[T, PT]) Order() *big.Int { return new(big.Int).Set(g.order) }

func (g *TargetGroup[T, PT]) ElementLen() int { return g.encLen }

func (g *TargetGroup[T, PT]) Identity() Point { return g.wrap(g.one) }

func (g *TargetGroup[T, PT]) Generator() Point { return g.wrap(g.gen) }

func (g *TargetGroup[T, PT]) NewPoint(data []byte) (Point, error) {
	if len(data) != g.encLen {
		return nil, fmt.Errorf("%w: %s expects %d bytes, got %d", ErrInvalidPoint, g.name, g.encLen, len(data))
	}
	p := &targetPoint[T, PT]{g: g}
	if err := PT(&p.v).Unmarshal(data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPoint, g.name, err)
	}
	if !PT(&p.v).IsInSubGroup() {
		return nil, fmt.Errorf("%w: %s: element not in subgroup", ErrInvalidPoint, g.name)
	}
	return p, nil
}

func (g *TargetGroup[T, PT]) wrap(v T) *targetPoint[T, PT] {
	return &targetPoint[T, PT]{g: g, v: v}
}

func (g *TargetGroup[T, PT]) value(p Point) *T {
	q, ok := p.(*targetPoint[T, PT])
	if !ok || q.g.name != g.name {
		panic(fmt.Sprintf("group: %T is not an element of %s", p, g.name))
	}
	return &q.v
}

type targetPoint[T any, PT targetPtr[T]] struct {
	g *TargetGroup[T, PT]
	v T
}

func (p *targetPoint[T, PT]) Add(q Point) Point {
	r := &targetPoint[T, PT]{g: p.g}
	PT(&r.v).Mul(&p.v, p.g.value(q))
	return r
}

func (p *targetPoint[T, PT]) Sub(q Point) Point {
	var inv T
	PT(&inv).Inverse(p.g.value(q))
	r := &targetPoint[T, PT]{g: p.g}
	PT(&r.v).Mul(&p.v, &inv)
	return r
}

func (p *targetPoint[T, PT]) Neg() Point {
	r := &targetPoint[T, PT]{g: p.g}
	PT(&r.v).Inverse(&p.v)
	return r
}

func (p *targetPoint[T, PT]) Mul(k *big.Int) Point {
	r := &targetPoint[T, PT]{g: p.g}
	e := new(big.Int).Mod(k, p.g.order)
	if e.Sign() == 0 {
		PT(&r.v).SetOne()
		return r
	}
	PT(&r.v).Exp(p.v, e)
	return r
}

func (p *targetPoint[T, PT]) Equal(q Point) bool {
	return PT(&p.v).Equal(p.g.value(q))
}

func (p *targetPoint[T, PT]) IsIdentity() bool {
	return PT(&p.v).IsOne()
}

func (p *targetPoint[T, PT]) Bytes() []byte {
	return PT(&p.v).Marshal()
}
