package she_test

import (
	"bytes"
	"math"
	"sync/atomic"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/logger"
	qt "github.com/frankban/quicktest"
	"github.com/rs/zerolog"
	"github.com/vocdoni/gnark-crypto-she/she"
	"github.com/vocdoni/gnark-crypto-she/testutil"
	"golang.org/x/sync/errgroup"
)

func TestInit(t *testing.T) {
	c := qt.New(t)

	var s she.Scheme
	c.Assert(s.Curve(), qt.Equals, ecc.UNKNOWN)
	_, err := s.GenerateSecretKey()
	c.Assert(err, qt.ErrorIs, she.ErrNotInitialized)
	c.Assert(s.SetTryNum(10), qt.ErrorIs, she.ErrNotInitialized)
	_, err = s.ParsePublicKey(nil)
	c.Assert(err, qt.ErrorIs, she.ErrNotInitialized)

	c.Assert(s.Init(ecc.BN254, she.WithHashSize(64)), qt.IsNil)
	c.Assert(s.Curve(), qt.Equals, ecc.BN254)
	c.Assert(s.SingleLevel(), qt.IsFalse)
	// same curve and mode: nothing happens
	c.Assert(s.Init(ecc.BN254), qt.IsNil)
	hashSize, tryNum, err := s.Range(she.GroupGT)
	c.Assert(err, qt.IsNil)
	c.Assert(hashSize, qt.Equals, 64)
	c.Assert(tryNum, qt.Equals, she.DefaultTryNum)

	c.Assert(s.Init(ecc.BLS12_381), qt.ErrorIs, she.ErrAlreadyInitialized)
	c.Assert(s.InitG1Only(ecc.BN254), qt.ErrorIs, she.ErrAlreadyInitialized)
}

func TestInitErrors(t *testing.T) {
	c := qt.New(t)
	_, err := she.New(ecc.SECP256K1)
	c.Assert(err, qt.ErrorIs, she.ErrUnsupportedCurve)
	_, err = she.New(ecc.BW6_761)
	c.Assert(err, qt.ErrorIs, she.ErrUnsupportedCurve)
	_, err = she.NewG1Only(ecc.UNKNOWN)
	c.Assert(err, qt.ErrorIs, she.ErrUnsupportedCurve)
	_, err = she.New(ecc.BN254, she.WithHashSize(0))
	c.Assert(err, qt.ErrorIs, she.ErrInvalidRange)
	_, err = she.New(ecc.BN254, she.WithHashSize(2), she.WithTryNum(math.MaxInt64))
	c.Assert(err, qt.ErrorIs, she.ErrInvalidRange)

	// a failed initialization leaves the scheme usable
	var s she.Scheme
	c.Assert(s.Init(ecc.GRUMPKIN), qt.ErrorIs, she.ErrUnsupportedCurve)
	c.Assert(s.Init(ecc.BLS12_377, she.WithHashSize(32)), qt.IsNil)
}

func TestDefaults(t *testing.T) {
	c := qt.New(t)
	s, err := she.New(ecc.BN254)
	c.Assert(err, qt.IsNil)
	for _, id := range []she.GroupID{she.GroupG1, she.GroupG2, she.GroupGT} {
		hashSize, tryNum, err := s.Range(id)
		c.Assert(err, qt.IsNil)
		c.Assert(hashSize, qt.Equals, she.DefaultHashSize)
		c.Assert(tryNum, qt.Equals, she.DefaultTryNum)
	}
	c.Assert(she.GroupGT.String(), qt.Equals, "GT")
}

func TestSingleLevel(t *testing.T) {
	c := qt.New(t)
	for _, id := range []ecc.ID{ecc.SECP256K1, ecc.BN254} {
		c.Run(id.String(), func(c *qt.C) {
			s, sk, pk := newKeys(c, testutil.SchemeTestConfig{Curve: id, G1Only: true, HashSize: 256, TryNum: 64})
			c.Assert(s.SingleLevel(), qt.IsTrue)
			checkAlgebra[she.G1](c, sk, pk)

			_, err := pk.EncryptG2(1)
			c.Assert(err, qt.ErrorIs, she.ErrLevelUnavailable)
			_, err = pk.EncryptGT(1)
			c.Assert(err, qt.ErrorIs, she.ErrLevelUnavailable)
			c.Assert(s.SetRangeForG2DLP(10), qt.ErrorIs, she.ErrLevelUnavailable)
			_, _, err = s.Range(she.GroupGT)
			c.Assert(err, qt.ErrorIs, she.ErrLevelUnavailable)
			_, err = she.ParseCiphertext[she.G2](s, nil)
			c.Assert(err, qt.ErrorIs, she.ErrLevelUnavailable)

			a, err := pk.EncryptG1(3)
			c.Assert(err, qt.IsNil)
			_, err = she.ConvertG1(a)
			c.Assert(err, qt.ErrorIs, she.ErrLevelUnavailable)

			// SetRangeForDLP only touches G1
			c.Assert(s.SetRangeForDLP(100), qt.IsNil)
			m, err := sk.DecryptG1(a.Mul(-2000))
			c.Assert(err, qt.IsNil)
			c.Assert(m, qt.Equals, int64(-6000))
		})
	}
}

func TestRandomness(t *testing.T) {
	c := qt.New(t)
	s, err := she.New(ecc.BN254, she.WithHashSize(16), she.WithRandom(testutil.FailingReader{}))
	c.Assert(err, qt.IsNil)
	_, err = s.GenerateSecretKey()
	c.Assert(err, qt.ErrorIs, she.ErrRandomness)
	c.Assert(she.IsUnrecoverable(err), qt.IsTrue)
	c.Assert(she.IsUnrecoverable(she.ErrCantDecrypt), qt.IsFalse)
	c.Assert(func() { s.MustGenerateSecretKey() }, qt.PanicMatches, "she: random source failure.*")

	// keys created elsewhere still cannot encrypt without entropy
	_, sk, _ := newKeys(c, testutil.SchemeTestConfig{Curve: ecc.BN254, HashSize: 16})
	buf, err := sk.MarshalBinary()
	c.Assert(err, qt.IsNil)
	parsed, err := s.ParseSecretKey(buf)
	c.Assert(err, qt.IsNil)
	_, err = parsed.PublicKey().EncryptG1(1)
	c.Assert(err, qt.ErrorIs, she.ErrRandomness)
	_, err = parsed.PublicKey().EncryptGT(1)
	c.Assert(err, qt.ErrorIs, she.ErrRandomness)
}

func TestDefaultLogger(t *testing.T) {
	c := qt.New(t)
	buf := new(bytes.Buffer)
	logger.Set(zerolog.New(buf).Level(zerolog.DebugLevel))
	c.Cleanup(testutil.SetTestLogger)

	_, err := she.New(ecc.BN254, she.WithHashSize(16))
	c.Assert(err, qt.IsNil)
	c.Assert(buf.String(), qt.Contains, `"curve":"bn254"`)
	c.Assert(buf.String(), qt.Contains, "scheme initialized")

	// an explicit logger bypasses the package one
	buf.Reset()
	own := new(bytes.Buffer)
	_, err = she.New(ecc.BN254, she.WithHashSize(16), she.WithLogger(zerolog.New(own).Level(zerolog.DebugLevel)))
	c.Assert(err, qt.IsNil)
	c.Assert(buf.Len(), qt.Equals, 0)
	c.Assert(own.String(), qt.Contains, "scheme initialized")
}

func TestNilRandom(t *testing.T) {
	c := qt.New(t)
	s, err := she.New(ecc.BN254, she.WithHashSize(16), she.WithRandom(nil))
	c.Assert(err, qt.IsNil)
	sk, err := s.GenerateSecretKey()
	c.Assert(err, qt.IsNil)
	a, err := sk.PublicKey().EncryptGT(3)
	c.Assert(err, qt.IsNil)
	m, err := sk.DecryptGT(a)
	c.Assert(err, qt.IsNil)
	c.Assert(m, qt.Equals, int64(3))
}

func TestDeterministicRandom(t *testing.T) {
	c := qt.New(t)
	conf := testutil.SchemeTestConfig{Curve: ecc.BLS12_381, HashSize: 16, Seed: 42}
	_, sk1, _ := newKeys(c, conf)
	_, sk2, _ := newKeys(c, conf)
	b1, err := sk1.MarshalBinary()
	c.Assert(err, qt.IsNil)
	b2, err := sk2.MarshalBinary()
	c.Assert(err, qt.IsNil)
	c.Assert(b1, qt.DeepEquals, b2)

	conf.Seed = 43
	_, sk3, _ := newKeys(c, conf)
	b3, err := sk3.MarshalBinary()
	c.Assert(err, qt.IsNil)
	c.Assert(b3, qt.Not(qt.DeepEquals), b1)
}

func TestRangeConfiguration(t *testing.T) {
	c := qt.New(t)
	s, sk, pk := newKeys(c, testutil.SchemeTestConfig{Curve: ecc.BN254, HashSize: 50, TryNum: 4})
	a, err := pk.EncryptG1(450)
	c.Assert(err, qt.IsNil)
	_, err = sk.DecryptG1(a)
	c.Assert(err, qt.ErrorIs, she.ErrCantDecrypt)

	// more giant steps, same table
	c.Assert(s.SetTryNum(10), qt.IsNil)
	m, err := sk.DecryptG1(a)
	c.Assert(err, qt.IsNil)
	c.Assert(m, qt.Equals, int64(450))

	// a larger table per group
	c.Assert(s.SetTryNum(2), qt.IsNil)
	c.Assert(s.SetRangeForG1DLP(300), qt.IsNil)
	m, err = sk.DecryptG1(a)
	c.Assert(err, qt.IsNil)
	c.Assert(m, qt.Equals, int64(450))
	b, err := pk.EncryptG2(450)
	c.Assert(err, qt.IsNil)
	_, err = sk.DecryptG2(b)
	c.Assert(err, qt.ErrorIs, she.ErrCantDecrypt)
	c.Assert(s.SetRangeForG2DLP(300), qt.IsNil)
	m, err = sk.DecryptG2(b)
	c.Assert(err, qt.IsNil)
	c.Assert(m, qt.Equals, int64(450))
	c.Assert(s.SetRangeForGTDLP(300), qt.IsNil)

	c.Assert(s.SetTryNum(0), qt.ErrorIs, she.ErrInvalidRange)
	c.Assert(s.SetTryNum(math.MaxInt64), qt.ErrorIs, she.ErrInvalidRange)
	c.Assert(s.SetRangeForG1DLP(-1), qt.ErrorIs, she.ErrInvalidRange)
	c.Assert(s.SetRangeForGroupDLP(she.GroupID(7), 10), qt.ErrorIs, she.ErrLevelUnavailable)
	// failed updates keep the previous configuration
	hashSize, tryNum, err := s.Range(she.GroupG1)
	c.Assert(err, qt.IsNil)
	c.Assert(hashSize, qt.Equals, 300)
	c.Assert(tryNum, qt.Equals, 2)
}

func TestSaveLoadTable(t *testing.T) {
	c := qt.New(t)
	large, err := she.New(ecc.BLS12_377, she.WithHashSize(300), she.WithTryNum(2))
	c.Assert(err, qt.IsNil)
	var buf bytes.Buffer
	c.Assert(large.SaveTable(she.GroupGT, &buf), qt.IsNil)
	data := bytes.Clone(buf.Bytes())

	s, sk, pk := newKeys(c, testutil.SchemeTestConfig{Curve: ecc.BLS12_377, HashSize: 20, TryNum: 2})
	a, err := pk.EncryptGT(-555)
	c.Assert(err, qt.IsNil)
	_, err = sk.DecryptGT(a)
	c.Assert(err, qt.ErrorIs, she.ErrCantDecrypt)

	c.Assert(s.LoadTable(she.GroupGT, &buf), qt.IsNil)
	m, err := sk.DecryptGT(a)
	c.Assert(err, qt.IsNil)
	c.Assert(m, qt.Equals, int64(-555))

	// a GT table is not a G1 table
	c.Assert(s.LoadTable(she.GroupG1, bytes.NewReader(data)), qt.ErrorIs, she.ErrInvalidEncoding)
	// nor a table of another curve
	other, err := she.New(ecc.BN254, she.WithHashSize(16))
	c.Assert(err, qt.IsNil)
	c.Assert(other.LoadTable(she.GroupGT, bytes.NewReader(data)), qt.ErrorIs, she.ErrInvalidEncoding)
}

func TestTableStore(t *testing.T) {
	c := qt.New(t)
	conf := testutil.SchemeTestConfig{Curve: ecc.BN254, HashSize: 128, TryNum: 8, StoreDir: c.TempDir()}
	s, st, err := testutil.NewTestScheme(conf)
	c.Assert(err, qt.IsNil)
	defer st.Close()

	entries, err := st.List()
	c.Assert(err, qt.IsNil)
	c.Assert(entries, qt.HasLen, 3)
	for _, e := range entries {
		c.Assert(e.Size, qt.Equals, 128)
	}

	// a second scheme reads the stored tables
	s2, err := she.New(ecc.BN254, she.WithHashSize(128), she.WithTryNum(8), she.WithTableStore(st))
	c.Assert(err, qt.IsNil)
	sk, err := s.GenerateSecretKey()
	c.Assert(err, qt.IsNil)
	skBuf, err := sk.MarshalBinary()
	c.Assert(err, qt.IsNil)
	sk2, err := s2.ParseSecretKey(skBuf)
	c.Assert(err, qt.IsNil)
	a, err := sk.PublicKey().EncryptG2(-1000)
	c.Assert(err, qt.IsNil)
	m, err := sk2.DecryptG2(a)
	c.Assert(err, qt.IsNil)
	c.Assert(m, qt.Equals, int64(-1000))

	// new sizes are added next to the old ones
	c.Assert(s2.SetRangeForG1DLP(64), qt.IsNil)
	entries, err = st.List()
	c.Assert(err, qt.IsNil)
	c.Assert(entries, qt.HasLen, 4)
}

func TestConcurrentUse(t *testing.T) {
	c := qt.New(t)
	s, sk, pk := newKeys(c, testutil.SchemeTestConfig{Curve: ecc.BN254, HashSize: 200, TryNum: 50})

	var eg errgroup.Group
	for w := 0; w < 8; w++ {
		eg.Go(func() error {
			for i := 0; i < 20; i++ {
				m := int64((w*20+i)*31 - 2500)
				ct, err := pk.EncryptG1(m)
				if err != nil {
					return err
				}
				got, err := sk.DecryptG1(ct.Add(ct).Sub(ct))
				if err != nil {
					return err
				}
				if got != m {
					t.Errorf("decrypted %d, want %d", got, m)
				}
			}
			return nil
		})
	}
	// reconfiguration never shrinks the range below what the workers need
	for i := 0; i < 4; i++ {
		c.Assert(s.SetRangeForG1DLP(200+100*(i%2)), qt.IsNil)
		c.Assert(s.SetTryNum(50+i), qt.IsNil)
	}
	c.Assert(eg.Wait(), qt.IsNil)
}

func TestRangeSwapIsAtomic(t *testing.T) {
	c := qt.New(t)
	s, sk, pk := newKeys(c, testutil.SchemeTestConfig{Curve: ecc.BN254, HashSize: 100, TryNum: 60})
	ct, err := pk.EncryptG1(-5000)
	c.Assert(err, qt.IsNil)

	// 100x60 and 300x20 both reach 5999; a table of 100 with a try count
	// of 20 would not
	var done atomic.Bool
	var eg errgroup.Group
	for w := 0; w < 4; w++ {
		eg.Go(func() error {
			for !done.Load() {
				m, err := sk.DecryptG1(ct)
				if err != nil {
					return err
				}
				if m != -5000 {
					t.Errorf("decrypted %d", m)
				}
			}
			return nil
		})
	}
	for i := 0; i < 10; i++ {
		c.Assert(s.SetRangeForG1DLP(300), qt.IsNil)
		c.Assert(s.SetTryNum(20), qt.IsNil)
		c.Assert(s.SetTryNum(60), qt.IsNil)
		c.Assert(s.SetRangeForG1DLP(100), qt.IsNil)
	}
	done.Store(true)
	c.Assert(eg.Wait(), qt.IsNil)

	hashSize, tryNum, err := s.Range(she.GroupG1)
	c.Assert(err, qt.IsNil)
	c.Assert(hashSize, qt.Equals, 100)
	c.Assert(tryNum, qt.Equals, 60)
}
