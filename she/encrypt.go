package she

import (
	"fmt"
	"math/big"

	"github.com/vocdoni/gnark-crypto-she/group"
)

// Encrypt encrypts m in the group selected by L. Every int64 is accepted,
// but only |m| within the decodable range can be decrypted. Encryption is
// probabilistic. It fails only when the random source does, or with
// ErrLevelUnavailable for G2 and GT in single-level mode.
func Encrypt[L Level](pk *PublicKey, m int64) (Ciphertext[L], error) {
	id := level[L]()
	var (
		parts []group.Point
		err   error
	)
	switch id {
	case GroupG1:
		parts, err = pk.encryptElGamal(id, pk.xP, big.NewInt(m))
	case GroupG2:
		parts, err = pk.encryptElGamal(id, pk.yQ, big.NewInt(m))
	case GroupGT:
		parts, err = pk.encryptGT(big.NewInt(m))
	}
	if err != nil {
		return Ciphertext[L]{}, err
	}
	return Ciphertext[L]{s: pk.s, parts: parts}, nil
}

// EncryptG1 encrypts m in G1.
func (pk *PublicKey) EncryptG1(m int64) (CiphertextG1, error) { return Encrypt[G1](pk, m) }

// EncryptG2 encrypts m in G2.
func (pk *PublicKey) EncryptG2(m int64) (CiphertextG2, error) { return Encrypt[G2](pk, m) }

// EncryptGT encrypts m in GT.
func (pk *PublicKey) EncryptGT(m int64) (CiphertextGT, error) { return Encrypt[GT](pk, m) }

// encryptElGamal returns the lifted ElGamal encryption (m*G + r*H, r*G) where
// G generates the group and H is the matching half of the public key.
func (pk *PublicKey) encryptElGamal(id GroupID, h group.Point, m *big.Int) ([]group.Point, error) {
	g, gen, err := pk.s.group(id)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, fmt.Errorf("%w: %s", ErrLevelUnavailable, g)
	}
	r, err := pk.s.randomScalar()
	if err != nil {
		return nil, err
	}
	return []group.Point{gen.Mul(m).Add(h.Mul(r)), gen.Mul(r)}, nil
}

// encryptGT returns (e(a*xP + m*P, Q) + e(b*P - c*xP, yQ), b*e, a*e, c*e) in
// additive notation, with e = e(P, Q) and random a, b, c. It has the shape of
// a product of two G1 and G2 ciphertexts.
func (pk *PublicKey) encryptGT(m *big.Int) ([]group.Point, error) {
	s := pk.s
	_, e, err := s.group(GroupGT)
	if err != nil {
		return nil, err
	}
	var abc [3]*big.Int
	for i := range abc {
		if abc[i], err = s.randomScalar(); err != nil {
			return nil, err
		}
	}
	a, b, c := abc[0], abc[1], abc[2]
	p := s.curve.G1.Generator()
	p1 := pk.xP.Mul(a).Add(p.Mul(m))
	p2 := p.Mul(b).Sub(pk.xP.Mul(c))
	// one multi-pairing for both terms of g0
	g0, err := s.curve.Pairing.Pair([]group.Point{p1, p2}, []group.Point{s.curve.G2.Generator(), pk.yQ})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return []group.Point{g0, e.Mul(b), e.Mul(a), e.Mul(c)}, nil
}

// ReRandomize returns a fresh-looking encryption of the plaintext of c by
// adding an encryption of zero under pk.
func ReRandomize[L Level](pk *PublicKey, c Ciphertext[L]) (Ciphertext[L], error) {
	zero, err := Encrypt[L](pk, 0)
	if err != nil {
		return Ciphertext[L]{}, err
	}
	if !zero.s.compatible(c.s) {
		return Ciphertext[L]{}, ErrSchemeMismatch
	}
	return c.Add(zero), nil
}
