package she

import (
	"crypto/rand"
	"io"

	"github.com/rs/zerolog"
	"github.com/vocdoni/gnark-crypto-she/dlp/store"
)

const (
	// DefaultHashSize is the number of baby steps computed per group at
	// initialization.
	DefaultHashSize = 1024
	// DefaultTryNum is the default number of giant steps tried by Decrypt.
	DefaultTryNum = 2048
)

type config struct {
	hashSize int
	tryNum   int
	logger   *zerolog.Logger
	rand     io.Reader
	store    *store.Store
}

func defaultConfig() config {
	return config{
		hashSize: DefaultHashSize,
		tryNum:   DefaultTryNum,
		rand:     rand.Reader,
	}
}

// Option configures a Scheme at initialization.
type Option func(*config)

// WithHashSize sets the size of the baby-step tables built for every group.
func WithHashSize(n int) Option {
	return func(c *config) { c.hashSize = n }
}

// WithTryNum sets the number of giant steps tried by Decrypt.
func WithTryNum(n int) Option {
	return func(c *config) { c.tryNum = n }
}

// WithLogger sets the logger of the scheme. By default the logger of package
// logger is used.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) { c.logger = &l }
}

// WithRandom sets the source of randomness used for keys and encryption. It
// defaults to crypto/rand.Reader, which a nil r leaves in place.
func WithRandom(r io.Reader) Option {
	return func(c *config) {
		if r != nil {
			c.rand = r
		}
	}
}

// WithTableStore makes the scheme load its baby-step tables from st, storing
// there the tables it has to compute.
func WithTableStore(st *store.Store) Option {
	return func(c *config) { c.store = st }
}
