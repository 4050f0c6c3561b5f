package group

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
)

type pairing[G1 any, PG1 affinePtr[G1], G2 any, PG2 affinePtr[G2], GT any, PGT targetPtr[GT]] struct {
	g1   *AffineGroup[G1, PG1]
	g2   *AffineGroup[G2, PG2]
	gt   *TargetGroup[GT, PGT]
	pair func([]G1, []G2) (GT, error)
}

func (e *pairing[G1, PG1, G2, PG2, GT, PGT]) Pair(ps, qs []Point) (Point, error) {
	if len(ps) != len(qs) {
		return nil, fmt.Errorf("group: pairing %d G1 points with %d G2 points", len(ps), len(qs))
	}
	a := make([]G1, len(ps))
	b := make([]G2, len(qs))
	for i := range ps {
		a[i] = *e.g1.value(ps[i])
		b[i] = *e.g2.value(qs[i])
	}
	v, err := e.pair(a, b)
	if err != nil {
		return nil, fmt.Errorf("group: pairing: %w", err)
	}
	return e.gt.wrap(v), nil
}

// NewPairingCurve assembles a Curve from the generators, the scalar field
// modulus and the multi-pairing of a gnark-crypto curve package, for instance
//
//	_, _, g1, g2 := bn254.Generators()
//	curve, err := group.NewPairingCurve(ecc.BN254, g1, g2, fr.Modulus(), bn254.Pair)
//
// GT is generated by e(g1, g2).
func NewPairingCurve[G1 any, PG1 affinePtr[G1], G2 any, PG2 affinePtr[G2], GT any, PGT targetPtr[GT]](
	id ecc.ID, g1Gen G1, g2Gen G2, order *big.Int, pair func([]G1, []G2) (GT, error),
) (*Curve, error) {
	name := id.String()
	gtGen, err := pair([]G1{g1Gen}, []G2{g2Gen})
	if err != nil {
		return nil, fmt.Errorf("group: %s: pairing generators: %w", name, err)
	}
	e := &pairing[G1, PG1, G2, PG2, GT, PGT]{
		g1:   NewAffineGroup[G1, PG1](name+"/G1", g1Gen, order),
		g2:   NewAffineGroup[G2, PG2](name+"/G2", g2Gen, order),
		gt:   NewTargetGroup[GT, PGT](name+"/GT", gtGen, order),
		pair: pair,
	}
	return &Curve{
		ID:      id,
		G1:      e.g1,
		G2:      e.g2,
		GT:      e.gt,
		Pairing: e,
	}, nil
}
