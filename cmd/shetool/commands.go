package main

import (
	"fmt"

	"github.com/consensys/gnark/logger"
	"github.com/urfave/cli"
	"github.com/vocdoni/gnark-crypto-she/she"
	"golang.org/x/xerrors"
)

var ciphertextKinds = []string{"G1", "G2", "GT"}

func keygen(c *cli.Context) error {
	s, release, err := flagScheme(c)
	if err != nil {
		return err
	}
	defer release()
	sk, err := s.GenerateSecretKey()
	if err != nil {
		return err
	}
	skBuf, err := sk.MarshalBinary()
	if err != nil {
		return err
	}
	pk := sk.PublicKey()
	pkBuf, err := pk.MarshalBinary()
	if err != nil {
		return err
	}
	if err := writeEnvelope(c.String("out"), envelopeOf(s, kindSecretKey, skBuf)); err != nil {
		return err
	}
	if err := writeEnvelope(c.String("pub"), envelopeOf(s, kindPublicKey, pkBuf)); err != nil {
		return err
	}
	log := logger.Logger()
	log.Info().Str("curve", s.Curve().String()).
		Str("fingerprint", pk.Fingerprint()).Msg("key pair generated")
	return nil
}

func loadPublicKey(c *cli.Context, path string) (*she.PublicKey, func(), error) {
	env, err := readEnvelope(path, kindPublicKey)
	if err != nil {
		return nil, nil, err
	}
	s, release, err := openScheme(c, env.Curve, env.Single)
	if err != nil {
		return nil, nil, err
	}
	pk, err := s.ParsePublicKey(env.Data)
	if err != nil {
		release()
		return nil, nil, err
	}
	return pk, release, nil
}

func encrypt(c *cli.Context) error {
	pk, release, err := loadPublicKey(c, c.String("pub"))
	if err != nil {
		return err
	}
	defer release()
	id, err := parseGroup(c.String("group"))
	if err != nil {
		return err
	}
	var buf []byte
	switch id {
	case she.GroupG1:
		buf, err = encryptAs[she.G1](pk, c.Int64("value"))
	case she.GroupG2:
		buf, err = encryptAs[she.G2](pk, c.Int64("value"))
	case she.GroupGT:
		buf, err = encryptAs[she.GT](pk, c.Int64("value"))
	}
	if err != nil {
		return err
	}
	return writeEnvelope(c.String("out"), envelopeOf(pk.Scheme(), id.String(), buf))
}

func encryptAs[L she.Level](pk *she.PublicKey, m int64) ([]byte, error) {
	ct, err := she.Encrypt[L](pk, m)
	if err != nil {
		return nil, err
	}
	return ct.MarshalBinary()
}

// readCiphertexts reads the n ciphertext files given as arguments and
// initializes their scheme.
func readCiphertexts(c *cli.Context, n int) ([]*envelope, *she.Scheme, func(), error) {
	if c.NArg() != n {
		return nil, nil, nil, xerrors.Errorf("please give %d ciphertext files", n)
	}
	envs := make([]*envelope, n)
	for i := range envs {
		var err error
		if envs[i], err = readEnvelope(c.Args().Get(i), ciphertextKinds...); err != nil {
			return nil, nil, nil, err
		}
	}
	if err := sameScheme(envs...); err != nil {
		return nil, nil, nil, err
	}
	s, release, err := openScheme(c, envs[0].Curve, envs[0].Single)
	if err != nil {
		return nil, nil, nil, err
	}
	return envs, s, release, nil
}

func arithAction(op string, n int) cli.ActionFunc {
	return func(c *cli.Context) error {
		envs, s, release, err := readCiphertexts(c, n)
		if err != nil {
			return err
		}
		defer release()
		for _, env := range envs[1:] {
			if env.Kind != envs[0].Kind {
				return xerrors.Errorf("cannot %s a %s and a %s ciphertext", op, envs[0].Kind, env.Kind)
			}
		}
		id, err := parseGroup(envs[0].Kind)
		if err != nil {
			return err
		}
		var buf []byte
		switch id {
		case she.GroupG1:
			buf, err = arith[she.G1](s, op, c.Int64("by"), envs)
		case she.GroupG2:
			buf, err = arith[she.G2](s, op, c.Int64("by"), envs)
		case she.GroupGT:
			buf, err = arith[she.GT](s, op, c.Int64("by"), envs)
		}
		if err != nil {
			return err
		}
		return writeEnvelope(c.String("out"), envelopeOf(s, id.String(), buf))
	}
}

func arith[L she.Level](s *she.Scheme, op string, k int64, envs []*envelope) ([]byte, error) {
	cts := make([]she.Ciphertext[L], len(envs))
	for i, env := range envs {
		var err error
		if cts[i], err = she.ParseCiphertext[L](s, env.Data); err != nil {
			return nil, err
		}
	}
	var out she.Ciphertext[L]
	switch op {
	case "add":
		out = cts[0].Add(cts[1])
	case "sub":
		out = cts[0].Sub(cts[1])
	case "neg":
		out = cts[0].Neg()
	case "scale":
		out = cts[0].Mul(k)
	default:
		return nil, xerrors.Errorf("unknown operation %q", op)
	}
	return out.MarshalBinary()
}

func mul(c *cli.Context) error {
	envs, s, release, err := readCiphertexts(c, 2)
	if err != nil {
		return err
	}
	defer release()
	if envs[0].Kind != "G1" || envs[1].Kind != "G2" {
		return xerrors.Errorf("mul takes a G1 and a G2 ciphertext, got %s and %s", envs[0].Kind, envs[1].Kind)
	}
	a, err := she.ParseCiphertext[she.G1](s, envs[0].Data)
	if err != nil {
		return err
	}
	b, err := she.ParseCiphertext[she.G2](s, envs[1].Data)
	if err != nil {
		return err
	}
	p, err := she.Multiply(a, b)
	if err != nil {
		return err
	}
	buf, err := p.MarshalBinary()
	if err != nil {
		return err
	}
	return writeEnvelope(c.String("out"), envelopeOf(s, "GT", buf))
}

func convert(c *cli.Context) error {
	envs, s, release, err := readCiphertexts(c, 1)
	if err != nil {
		return err
	}
	defer release()
	var p she.CiphertextGT
	switch envs[0].Kind {
	case "G1":
		a, err := she.ParseCiphertext[she.G1](s, envs[0].Data)
		if err != nil {
			return err
		}
		p, err = she.ConvertG1(a)
		if err != nil {
			return err
		}
	case "G2":
		a, err := she.ParseCiphertext[she.G2](s, envs[0].Data)
		if err != nil {
			return err
		}
		p, err = she.ConvertG2(a)
		if err != nil {
			return err
		}
	default:
		return xerrors.New("only G1 and G2 ciphertexts can be converted")
	}
	buf, err := p.MarshalBinary()
	if err != nil {
		return err
	}
	return writeEnvelope(c.String("out"), envelopeOf(s, "GT", buf))
}

func decrypt(c *cli.Context) error {
	keyEnv, err := readEnvelope(c.String("key"), kindSecretKey)
	if err != nil {
		return err
	}
	envs, s, release, err := readCiphertexts(c, 1)
	if err != nil {
		return err
	}
	defer release()
	if err := sameScheme(envs[0], keyEnv); err != nil {
		return err
	}
	sk, err := s.ParseSecretKey(keyEnv.Data)
	if err != nil {
		return err
	}
	id, err := parseGroup(envs[0].Kind)
	if err != nil {
		return err
	}
	var m int64
	switch id {
	case she.GroupG1:
		m, err = decryptAs[she.G1](sk, envs[0].Data)
	case she.GroupG2:
		m, err = decryptAs[she.G2](sk, envs[0].Data)
	case she.GroupGT:
		m, err = decryptAs[she.GT](sk, envs[0].Data)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, m)
	return nil
}

func decryptAs[L she.Level](sk *she.SecretKey, data []byte) (int64, error) {
	ct, err := she.ParseCiphertext[L](sk.Scheme(), data)
	if err != nil {
		return 0, err
	}
	return she.Decrypt(sk, ct)
}
