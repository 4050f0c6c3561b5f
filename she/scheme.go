package she

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/logger"
	"github.com/rs/zerolog"
	"github.com/vocdoni/gnark-crypto-she/curves"
	"github.com/vocdoni/gnark-crypto-she/dlp"
	"github.com/vocdoni/gnark-crypto-she/dlp/store"
	"github.com/vocdoni/gnark-crypto-she/group"
)

// GroupID names one of the three groups ciphertexts live in.
type GroupID uint8

const (
	GroupG1 GroupID = iota
	GroupG2
	GroupGT
	numGroups
)

func (id GroupID) String() string {
	switch id {
	case GroupG1:
		return "G1"
	case GroupG2:
		return "G2"
	case GroupGT:
		return "GT"
	}
	return fmt.Sprintf("GroupID(%d)", uint8(id))
}

// Scheme holds the curve and the decryption tables shared by the keys and
// ciphertexts created from it. The zero value must be initialized with Init
// or InitG1Only. After initialization every method is safe for concurrent
// use, including the reconfiguration of the decryption range.
type Scheme struct {
	mu    sync.Mutex
	ready atomic.Bool

	curve  *group.Curve
	g1Only bool
	rand   io.Reader
	log    zerolog.Logger
	store  *store.Store

	// cfg serializes the copy-on-write updates of dec
	cfg sync.Mutex
	dec atomic.Pointer[decoder]
}

// decoder is an immutable snapshot of the baby-step tables and the try count
// they are used with.
type decoder struct {
	tables [numGroups]*dlp.Table
	tryNum int
}

// New returns a scheme initialized in two-level mode on curve.
func New(curve ecc.ID, opts ...Option) (*Scheme, error) {
	s := new(Scheme)
	if err := s.Init(curve, opts...); err != nil {
		return nil, err
	}
	return s, nil
}

// NewG1Only returns a scheme initialized in single-level mode on curve.
func NewG1Only(curve ecc.ID, opts ...Option) (*Scheme, error) {
	s := new(Scheme)
	if err := s.InitG1Only(curve, opts...); err != nil {
		return nil, err
	}
	return s, nil
}

// Init selects a pairing-friendly curve (ecc.BN254, ecc.BLS12_381 or
// ecc.BLS12_377) and builds the decryption tables of G1, G2 and GT.
// Initializing an initialized scheme again with the same curve and mode does
// nothing; with another curve or mode it fails with ErrAlreadyInitialized.
func (s *Scheme) Init(curve ecc.ID, opts ...Option) error {
	return s.init(curve, false, opts)
}

// InitG1Only selects a curve for the single-level mode, where only G1
// ciphertexts exist. Besides the pairing-friendly curves it accepts
// ecc.SECP256K1.
func (s *Scheme) InitG1Only(curve ecc.ID, opts ...Option) error {
	return s.init(curve, true, opts)
}

func (s *Scheme) init(id ecc.ID, g1Only bool, opts []Option) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready.Load() {
		if s.curve.ID == id && s.g1Only == g1Only {
			return nil
		}
		return fmt.Errorf("%w: %s, single-level %t", ErrAlreadyInitialized, s.curve, s.g1Only)
	}
	c, err := curves.Get(id)
	if err != nil {
		if errors.Is(err, curves.ErrUnsupported) {
			return fmt.Errorf("%w: %s", ErrUnsupportedCurve, curves.Name(id))
		}
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if !g1Only && !c.HasPairing() {
		return fmt.Errorf("%w: %s has no pairing", ErrUnsupportedCurve, c)
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := dlp.CheckRange(cfg.hashSize, cfg.tryNum); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	s.curve = c
	s.g1Only = g1Only
	s.rand = cfg.rand
	s.store = cfg.store
	if cfg.logger != nil {
		s.log = *cfg.logger
	} else {
		s.log = logger.Logger().With().Str("curve", c.String()).Logger()
	}
	dec := &decoder{tryNum: cfg.tryNum}
	for _, gid := range s.groups() {
		t, err := s.buildTable(gid, cfg.hashSize)
		if err != nil {
			return err
		}
		dec.tables[gid] = t
	}
	s.dec.Store(dec)
	s.ready.Store(true)
	s.log.Debug().Bool("singleLevel", g1Only).Int("hashSize", cfg.hashSize).
		Int("tryNum", cfg.tryNum).Msg("scheme initialized")
	return nil
}

func (s *Scheme) check() error {
	if s == nil || !s.ready.Load() {
		return ErrNotInitialized
	}
	return nil
}

// Curve returns the curve identifier, or ecc.UNKNOWN before initialization.
func (s *Scheme) Curve() ecc.ID {
	if s.check() != nil {
		return ecc.UNKNOWN
	}
	return s.curve.ID
}

// SingleLevel reports whether the scheme was initialized with InitG1Only.
func (s *Scheme) SingleLevel() bool {
	return s.check() == nil && s.g1Only
}

// groups returns the groups available in the mode of the scheme.
func (s *Scheme) groups() []GroupID {
	if s.g1Only {
		return []GroupID{GroupG1}
	}
	return []GroupID{GroupG1, GroupG2, GroupGT}
}

func (s *Scheme) hasGroup(id GroupID) bool {
	return slices.Contains(s.groups(), id)
}

// group returns the group of id with the base its plaintexts are encoded
// on: P for G1, Q for G2 and e(P, Q) for GT.
func (s *Scheme) group(id GroupID) (group.Group, group.Point, error) {
	if err := s.check(); err != nil {
		return nil, nil, err
	}
	if !s.hasGroup(id) {
		return nil, nil, fmt.Errorf("%w: %s", ErrLevelUnavailable, id)
	}
	g := s.groupUnchecked(id)
	return g, g.Generator(), nil
}

// buildTable loads the table from the store when one is configured, computing
// and storing it otherwise. It does not require the scheme to be ready.
func (s *Scheme) buildTable(id GroupID, size int) (*dlp.Table, error) {
	g := s.groupUnchecked(id)
	base := g.Generator()
	if s.store != nil {
		t, err := s.store.Get(g, base, size)
		if err == nil {
			s.log.Debug().Stringer("group", id).Int("size", size).Msg("baby-step table loaded from store")
			return t, nil
		}
		if !errors.Is(err, store.ErrNoTable) {
			s.log.Warn().Err(err).Stringer("group", id).Msg("cannot load baby-step table, recomputing")
		}
	}
	start := time.Now()
	t, err := dlp.NewTable(g, base, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	s.log.Debug().Stringer("group", id).Int("size", size).Int("collisions", t.Collisions()).
		Dur("took", time.Since(start)).Msg("baby-step table built")
	if s.store != nil {
		if err := s.store.Put(t); err != nil {
			s.log.Warn().Err(err).Stringer("group", id).Msg("cannot store baby-step table")
		}
	}
	return t, nil
}

func (s *Scheme) groupUnchecked(id GroupID) group.Group {
	switch id {
	case GroupG2:
		return s.curve.G2
	case GroupGT:
		return s.curve.GT
	}
	return s.curve.G1
}

// compatible reports whether values of s and o can be combined.
func (s *Scheme) compatible(o *Scheme) bool {
	return s != nil && o != nil && (s == o || s.curve.ID == o.curve.ID)
}
