package she

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/vocdoni/gnark-crypto-she/dlp"
	"github.com/vocdoni/gnark-crypto-she/group"
)

// Decrypt recovers the plaintext of c. It returns ErrCantDecrypt when the
// plaintext is out of the decodable range, when c was not encrypted for sk or
// when c is corrupted. These cases cannot be told apart.
func Decrypt[L Level](sk *SecretKey, c Ciphertext[L]) (int64, error) {
	id := level[L]()
	target, err := sk.reveal(id, c.s, c.parts)
	if err != nil {
		return 0, err
	}
	t, tryNum := sk.s.table(id)
	m, err := t.Log(target, tryNum)
	if errors.Is(err, dlp.ErrNotFound) {
		return 0, ErrCantDecrypt
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return m, nil
}

// DecryptG1 decrypts a G1 ciphertext.
func (sk *SecretKey) DecryptG1(c CiphertextG1) (int64, error) { return Decrypt(sk, c) }

// DecryptG2 decrypts a G2 ciphertext.
func (sk *SecretKey) DecryptG2(c CiphertextG2) (int64, error) { return Decrypt(sk, c) }

// DecryptGT decrypts a GT ciphertext.
func (sk *SecretKey) DecryptGT(c CiphertextGT) (int64, error) { return Decrypt(sk, c) }

// IsZero reports whether c encrypts 0 under sk. It needs no table lookup and
// works for any plaintext, in range or not.
func IsZero[L Level](sk *SecretKey, c Ciphertext[L]) bool {
	target, err := sk.reveal(level[L](), c.s, c.parts)
	return err == nil && target.IsIdentity()
}

// reveal strips the mask of a ciphertext, returning m*B for the base B of
// the group: S - x*T in G1, S - y*T in G2 and
// g0 - y*g1 - x*g2 + x*y*g3 in GT.
func (sk *SecretKey) reveal(id GroupID, s *Scheme, parts []group.Point) (group.Point, error) {
	if _, _, err := sk.s.group(id); err != nil {
		return nil, err
	}
	if !sk.s.compatible(s) || len(parts) != components(id) {
		return nil, ErrCantDecrypt
	}
	switch id {
	case GroupG1:
		return parts[0].Sub(parts[1].Mul(sk.x)), nil
	case GroupG2:
		return parts[0].Sub(parts[1].Mul(sk.y)), nil
	default:
		// x*y may exceed the order, Mul reduces it
		xy := new(big.Int).Mul(sk.x, sk.y)
		return parts[0].
			Sub(parts[1].Mul(sk.y)).
			Sub(parts[2].Mul(sk.x)).
			Add(parts[3].Mul(xy)), nil
	}
}
