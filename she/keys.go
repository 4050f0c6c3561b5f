package she

import (
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/vocdoni/gnark-crypto-she/group"
	"github.com/zeebo/blake3"
)

// SecretKey is the pair of scalars (x, y). In single-level mode only x is
// used.
type SecretKey struct {
	s *Scheme
	x *big.Int
	y *big.Int
}

// PublicKey is the pair (x*P, y*Q) for the generators P of G1 and Q of G2.
// In single-level mode it only holds x*P.
type PublicKey struct {
	s  *Scheme
	xP group.Point
	yQ group.Point
}

// GenerateSecretKey draws a new secret key from the random source of the
// scheme. A failure of the source is reported with ErrRandomness, which
// callers must not treat as retryable.
func (s *Scheme) GenerateSecretKey() (*SecretKey, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	x, err := s.randomScalar()
	if err != nil {
		return nil, err
	}
	y, err := s.randomScalar()
	if err != nil {
		return nil, err
	}
	return &SecretKey{s: s, x: x, y: y}, nil
}

// MustGenerateSecretKey is like GenerateSecretKey but panics on failure.
func (s *Scheme) MustGenerateSecretKey() *SecretKey {
	sk, err := s.GenerateSecretKey()
	if err != nil {
		panic(err)
	}
	return sk
}

func (s *Scheme) randomScalar() (*big.Int, error) {
	k, err := group.RandomScalar(s.rand, s.curve.G1.Order())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRandomness, err)
	}
	return k, nil
}

// Scheme returns the scheme the key belongs to.
func (sk *SecretKey) Scheme() *Scheme { return sk.s }

// PublicKey derives the public key of sk.
func (sk *SecretKey) PublicKey() *PublicKey {
	pk := &PublicKey{
		s:  sk.s,
		xP: sk.s.curve.G1.Generator().Mul(sk.x),
	}
	if !sk.s.g1Only {
		pk.yQ = sk.s.curve.G2.Generator().Mul(sk.y)
	}
	return pk
}

// MarshalBinary encodes the key as x || y, each scalar big endian and padded
// to the byte length of the group order.
func (sk *SecretKey) MarshalBinary() ([]byte, error) {
	n := group.ScalarLen(sk.s.curve.G1.Order())
	buf := make([]byte, 2*n)
	sk.x.FillBytes(buf[:n])
	sk.y.FillBytes(buf[n:])
	return buf, nil
}

// ParseSecretKey decodes a key encoded by SecretKey.MarshalBinary.
func (s *Scheme) ParseSecretKey(data []byte) (*SecretKey, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	order := s.curve.G1.Order()
	n := group.ScalarLen(order)
	if len(data) != 2*n {
		return nil, fmt.Errorf("%w: secret key of %d bytes, want %d", ErrInvalidEncoding, len(data), 2*n)
	}
	x := new(big.Int).SetBytes(data[:n])
	y := new(big.Int).SetBytes(data[n:])
	for _, k := range []*big.Int{x, y} {
		if k.Sign() == 0 || k.Cmp(order) >= 0 {
			return nil, fmt.Errorf("%w: secret scalar out of range", ErrInvalidEncoding)
		}
	}
	return &SecretKey{s: s, x: x, y: y}, nil
}

func (pk *PublicKey) Scheme() *Scheme { return pk.s }

// Bytes returns the encoding x*P || y*Q, or x*P alone in single-level mode.
func (pk *PublicKey) Bytes() []byte {
	b := pk.xP.Bytes()
	if pk.yQ != nil {
		b = append(b, pk.yQ.Bytes()...)
	}
	return b
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (pk *PublicKey) MarshalBinary() ([]byte, error) {
	return pk.Bytes(), nil
}

// Fingerprint returns a short hex identifier of the key, the first 8 bytes of
// the BLAKE3 hash of its encoding.
func (pk *PublicKey) Fingerprint() string {
	sum := blake3.Sum256(pk.Bytes())
	return hex.EncodeToString(sum[:8])
}

// Equal reports whether pk and o are the same key on the same curve.
func (pk *PublicKey) Equal(o *PublicKey) bool {
	if !pk.s.compatible(o.s) || (pk.yQ == nil) != (o.yQ == nil) {
		return false
	}
	return pk.xP.Equal(o.xP) && (pk.yQ == nil || pk.yQ.Equal(o.yQ))
}

// ParsePublicKey decodes a key encoded by PublicKey.MarshalBinary.
func (s *Scheme) ParsePublicKey(data []byte) (*PublicKey, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	g1 := s.curve.G1
	want := g1.ElementLen()
	if !s.g1Only {
		want += s.curve.G2.ElementLen()
	}
	if len(data) != want {
		return nil, fmt.Errorf("%w: public key of %d bytes, want %d", ErrInvalidEncoding, len(data), want)
	}
	xP, err := g1.NewPoint(data[:g1.ElementLen()])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	// an identity component would encrypt every message in the clear
	if xP.IsIdentity() {
		return nil, fmt.Errorf("%w: identity xP", ErrInvalidEncoding)
	}
	pk := &PublicKey{s: s, xP: xP}
	if !s.g1Only {
		if pk.yQ, err = s.curve.G2.NewPoint(data[g1.ElementLen():]); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
		}
		if pk.yQ.IsIdentity() {
			return nil, fmt.Errorf("%w: identity yQ", ErrInvalidEncoding)
		}
	}
	return pk, nil
}
