package testutil

import (
	"encoding/binary"
	"errors"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/logger"
	"github.com/rs/zerolog"
	"github.com/vocdoni/gnark-crypto-she/dlp/store"
	"github.com/vocdoni/gnark-crypto-she/she"
)

// ErrFailingReader is returned by FailingReader.
var ErrFailingReader = errors.New("testutil: entropy source failure")

// SchemeTestConfig is a configuration for building a scheme for testing
// purposes. It includes the curve and mode, the table size and try count, the
// seed of a deterministic random source (zero means crypto/rand) and an
// optional directory where a bbolt table store is created.
type SchemeTestConfig struct {
	Curve    ecc.ID
	G1Only   bool
	HashSize int
	TryNum   int
	Seed     uint64
	StoreDir string
}

// NewTestScheme returns a scheme built from conf. When conf.StoreDir is set
// the store is returned too and must be closed by the caller.
func NewTestScheme(conf SchemeTestConfig) (*she.Scheme, *store.Store, error) {
	var opts []she.Option
	if conf.HashSize != 0 {
		opts = append(opts, she.WithHashSize(conf.HashSize))
	}
	if conf.TryNum != 0 {
		opts = append(opts, she.WithTryNum(conf.TryNum))
	}
	if conf.Seed != 0 {
		opts = append(opts, she.WithRandom(NewRand(conf.Seed)))
	}
	var st *store.Store
	if conf.StoreDir != "" {
		var err error
		if st, err = store.Open(filepath.Join(conf.StoreDir, "tables.db")); err != nil {
			return nil, nil, err
		}
		opts = append(opts, she.WithTableStore(st))
	}
	newScheme := she.New
	if conf.G1Only {
		newScheme = she.NewG1Only
	}
	s, err := newScheme(conf.Curve, opts...)
	if err != nil {
		if st != nil {
			st.Close()
		}
		return nil, nil, err
	}
	return s, st, nil
}

// NewRand returns a deterministic stream of bytes seeded with seed. It must
// only be used in tests.
func NewRand(seed uint64) io.Reader {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	return rand.NewChaCha8(key)
}

// FailingReader is a random source that always fails.
type FailingReader struct{}

func (FailingReader) Read([]byte) (int, error) {
	return 0, ErrFailingReader
}

// SetTestLogger installs the console logger used by the tests of this module.
func SetTestLogger() {
	logger.Set(zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}).
		Level(zerolog.DebugLevel).With().Timestamp().Logger())
}
