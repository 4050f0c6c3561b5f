package she

import (
	"fmt"
	"math/big"
	"slices"

	"github.com/vocdoni/gnark-crypto-she/group"
)

// Level is implemented by the tags G1, G2 and GT selecting the group a
// Ciphertext lives in.
type Level interface {
	Group() GroupID
}

type (
	// G1 tags ciphertexts (S, T) in G1.
	G1 struct{}
	// G2 tags ciphertexts (S, T) in G2.
	G2 struct{}
	// GT tags ciphertexts of four GT elements, produced by Multiply.
	GT struct{}
)

func (G1) Group() GroupID { return GroupG1 }
func (G2) Group() GroupID { return GroupG2 }
func (GT) Group() GroupID { return GroupGT }

// Ciphertext is an encrypted integer in the group selected by L. Ciphertexts
// are immutable: the homomorphic operations return new values. The zero value
// is not a valid ciphertext.
type Ciphertext[L Level] struct {
	s     *Scheme
	parts []group.Point
}

type (
	CiphertextG1 = Ciphertext[G1]
	CiphertextG2 = Ciphertext[G2]
	CiphertextGT = Ciphertext[GT]
)

// components returns the number of group elements of a ciphertext in id.
func components(id GroupID) int {
	if id == GroupGT {
		return 4
	}
	return 2
}

func level[L Level]() GroupID {
	var l L
	return l.Group()
}

// Group returns the group the ciphertext lives in.
func (c Ciphertext[L]) Group() GroupID { return level[L]() }

// Scheme returns the scheme the ciphertext was created with.
func (c Ciphertext[L]) Scheme() *Scheme { return c.s }

// Components returns the group elements of the ciphertext: (S, T) for G1 and
// G2, four elements for GT.
func (c Ciphertext[L]) Components() []group.Point { return slices.Clone(c.parts) }

func (c Ciphertext[L]) valid() bool {
	return c.s != nil && len(c.parts) == components(level[L]())
}

func (c Ciphertext[L]) mustMatch(d Ciphertext[L]) {
	if !c.valid() || !d.valid() {
		panic("she: operation on an invalid ciphertext")
	}
	if !c.s.compatible(d.s) {
		panic(ErrSchemeMismatch)
	}
}

func (c Ciphertext[L]) apply(f func(i int, p group.Point) group.Point) Ciphertext[L] {
	parts := make([]group.Point, len(c.parts))
	for i, p := range c.parts {
		parts[i] = f(i, p)
	}
	return Ciphertext[L]{s: c.s, parts: parts}
}

// Add returns an encryption of m1+m2. It panics if c and d come from
// schemes on different curves.
func (c Ciphertext[L]) Add(d Ciphertext[L]) Ciphertext[L] {
	c.mustMatch(d)
	return c.apply(func(i int, p group.Point) group.Point { return p.Add(d.parts[i]) })
}

// Sub returns an encryption of m1-m2. It panics if c and d come from
// schemes on different curves.
func (c Ciphertext[L]) Sub(d Ciphertext[L]) Ciphertext[L] {
	c.mustMatch(d)
	return c.apply(func(i int, p group.Point) group.Point { return p.Sub(d.parts[i]) })
}

// Neg returns an encryption of -m.
func (c Ciphertext[L]) Neg() Ciphertext[L] {
	c.mustMatch(c)
	return c.apply(func(_ int, p group.Point) group.Point { return p.Neg() })
}

// Mul returns an encryption of m*k. The product may leave the decodable
// range.
func (c Ciphertext[L]) Mul(k int64) Ciphertext[L] {
	c.mustMatch(c)
	e := big.NewInt(k)
	return c.apply(func(_ int, p group.Point) group.Point { return p.Mul(e) })
}

// Equal reports whether c and d are the same ciphertext. Two encryptions of
// the same plaintext are not equal.
func (c Ciphertext[L]) Equal(d Ciphertext[L]) bool {
	if !c.valid() || !d.valid() || !c.s.compatible(d.s) {
		return false
	}
	for i := range c.parts {
		if !c.parts[i].Equal(d.parts[i]) {
			return false
		}
	}
	return true
}

// MarshalBinary encodes the ciphertext as the concatenation of its
// components.
func (c Ciphertext[L]) MarshalBinary() ([]byte, error) {
	if !c.valid() {
		return nil, fmt.Errorf("%w: invalid ciphertext", ErrInvalidEncoding)
	}
	var buf []byte
	for _, p := range c.parts {
		buf = append(buf, p.Bytes()...)
	}
	return buf, nil
}

// ParseCiphertext decodes a ciphertext of level L encoded by MarshalBinary.
func ParseCiphertext[L Level](s *Scheme, data []byte) (Ciphertext[L], error) {
	id := level[L]()
	g, _, err := s.group(id)
	if err != nil {
		return Ciphertext[L]{}, err
	}
	n, size := components(id), g.ElementLen()
	if len(data) != n*size {
		return Ciphertext[L]{}, fmt.Errorf("%w: %s ciphertext of %d bytes, want %d",
			ErrInvalidEncoding, id, len(data), n*size)
	}
	parts := make([]group.Point, n)
	for i := range parts {
		if parts[i], err = g.NewPoint(data[i*size : (i+1)*size]); err != nil {
			return Ciphertext[L]{}, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
		}
	}
	return Ciphertext[L]{s: s, parts: parts}, nil
}
