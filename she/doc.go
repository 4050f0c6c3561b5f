// Package she implements a two-level somewhat homomorphic encryption scheme
// over pairing-friendly curves, compatible in construction with the mcl "she"
// scheme.
//
// Plaintexts are small signed integers encoded as exponents. Ciphertexts live
// in G1, G2 or GT: they can be added, subtracted, negated and multiplied by
// integers within their group, and a G1 ciphertext can be multiplied once by a
// G2 ciphertext through the pairing, giving a GT ciphertext of the product.
// Decryption solves a bounded discrete logarithm with a baby-step table, so
// only plaintexts with |m| < hashSize*tryNum can be recovered.
//
//	s, err := she.New(ecc.BN254)
//	sk, err := s.GenerateSecretKey()
//	pk := sk.PublicKey()
//	a, _ := pk.EncryptG1(6)
//	b, _ := pk.EncryptG2(7)
//	c, _ := she.Multiply(a, b)
//	m, err := sk.DecryptGT(c) // 42
package she
