package she

import (
	"fmt"

	"github.com/vocdoni/gnark-crypto-she/group"
)

// Multiply returns a GT encryption of m1*m2 from c1 = Enc(m1) in G1 and
// c2 = Enc(m2) in G2, computing
//
//	(e(S1, S2), e(S1, T2), e(T1, S2), e(T1, T2))
//
// The result can be added to other GT ciphertexts or multiplied by integers,
// but never multiplied by another ciphertext: the scheme has a single
// multiplicative level.
func Multiply(c1 CiphertextG1, c2 CiphertextG2) (CiphertextGT, error) {
	if !c1.valid() || !c2.valid() {
		return CiphertextGT{}, fmt.Errorf("%w: invalid ciphertext", ErrInvalidEncoding)
	}
	if !c1.s.compatible(c2.s) {
		return CiphertextGT{}, ErrSchemeMismatch
	}
	s := c1.s
	if _, _, err := s.group(GroupGT); err != nil {
		return CiphertextGT{}, err
	}
	// S1 and T1 against S2 then T2, the order reveal expects
	parts := make([]group.Point, 0, 4)
	for _, p := range c1.parts {
		for _, q := range c2.parts {
			e, err := s.curve.Pairing.Pair([]group.Point{p}, []group.Point{q})
			if err != nil {
				return CiphertextGT{}, fmt.Errorf("%w: %v", ErrInternal, err)
			}
			parts = append(parts, e)
		}
	}
	return CiphertextGT{s: s, parts: parts}, nil
}

// ConvertG1 lifts a G1 ciphertext to GT, so that it can be combined with
// products. It multiplies c by the trivial G2 encryption (Q, 0) of 1.
func ConvertG1(c CiphertextG1) (CiphertextGT, error) {
	if !c.valid() {
		return CiphertextGT{}, fmt.Errorf("%w: invalid ciphertext", ErrInvalidEncoding)
	}
	g, q, err := c.s.group(GroupG2)
	if err != nil {
		return CiphertextGT{}, err
	}
	return Multiply(c, CiphertextG2{s: c.s, parts: []group.Point{q, g.Identity()}})
}

// ConvertG2 lifts a G2 ciphertext to GT by multiplying the trivial G1
// encryption (P, 0) of 1 by c.
func ConvertG2(c CiphertextG2) (CiphertextGT, error) {
	if !c.valid() {
		return CiphertextGT{}, fmt.Errorf("%w: invalid ciphertext", ErrInvalidEncoding)
	}
	g, p, err := c.s.group(GroupG1)
	if err != nil {
		return CiphertextGT{}, err
	}
	return Multiply(CiphertextG1{s: c.s, parts: []group.Point{p, g.Identity()}}, c)
}
