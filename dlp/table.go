// Package dlp solves discrete logarithms of bounded size with the baby-step
// giant-step method. A Table holds the baby steps k*base for k in [0, size)
// indexed by a 64-bit hash of their encoding, and Log walks the giant steps.
package dlp

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"runtime"

	"github.com/cespare/xxhash/v2"
	"github.com/vocdoni/gnark-crypto-she/group"
	"golang.org/x/sync/errgroup"
)

// MaxSize is the largest number of baby steps a table can hold.
const MaxSize = math.MaxUint32

// minChunk is the smallest number of baby steps computed by one worker.
const minChunk = 256

var (
	// ErrNotFound is returned by Log when the logarithm is outside the range
	// covered by the table and the number of giant steps.
	ErrNotFound = errors.New("dlp: logarithm not found in range")
	// ErrInvalidSize is returned for table sizes or giant step counts out of
	// bounds, including combinations whose range overflows an int64.
	ErrInvalidSize = errors.New("dlp: invalid size")
	// ErrTableMismatch is returned when a serialized table was built for
	// another group or base.
	ErrTableMismatch = errors.New("dlp: table does not match group")
)

// Table is an immutable baby-step table. It is safe for concurrent use.
type Table struct {
	g     group.Group
	base  group.Point
	// giant is -(size*base)
	giant group.Point
	size  uint32
	index map[uint64]uint32
	// extra holds the steps whose hash collides with an earlier one
	extra map[uint64][]uint32
}

// NewTable computes the size baby steps of base. The work is split between
// GOMAXPROCS goroutines.
func NewTable(g group.Group, base group.Point, size int) (*Table, error) {
	if size < 1 || uint64(size) > MaxSize {
		return nil, fmt.Errorf("%w: table size %d", ErrInvalidSize, size)
	}
	keys := make([]uint64, size)
	chunk := max((size+runtime.GOMAXPROCS(0)-1)/runtime.GOMAXPROCS(0), minChunk)
	var eg errgroup.Group
	for start := 0; start < size; start += chunk {
		end := min(start+chunk, size)
		eg.Go(func() error {
			p := base.Mul(big.NewInt(int64(start)))
			for k := start; k < end; k++ {
				keys[k] = hash(p)
				p = p.Add(base)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return newTable(g, base, keys), nil
}

func newTable(g group.Group, base group.Point, keys []uint64) *Table {
	t := &Table{
		g:     g,
		base:  base,
		giant: base.Mul(big.NewInt(int64(len(keys)))).Neg(),
		size:  uint32(len(keys)),
		index: make(map[uint64]uint32, len(keys)),
	}
	for k, h := range keys {
		if _, ok := t.index[h]; ok {
			if t.extra == nil {
				t.extra = make(map[uint64][]uint32)
			}
			t.extra[h] = append(t.extra[h], uint32(k))
			continue
		}
		t.index[h] = uint32(k)
	}
	return t
}

// Size returns the number of baby steps.
func (t *Table) Size() int { return int(t.size) }

func (t *Table) Group() group.Group { return t.g }

func (t *Table) Base() group.Point { return t.base }

// Collisions returns the number of steps sharing their hash with another one.
func (t *Table) Collisions() int {
	n := 0
	for _, ks := range t.extra {
		n += len(ks)
	}
	return n
}

// Range returns the largest |m| that Log recovers with tryNum giant steps.
func (t *Table) Range(tryNum int) (int64, error) {
	if err := CheckRange(int(t.size), tryNum); err != nil {
		return 0, err
	}
	return int64(t.size)*int64(tryNum) - 1, nil
}

// CheckRange validates a table size and a giant step count.
func CheckRange(size, tryNum int) error {
	if size < 1 || uint64(size) > MaxSize {
		return fmt.Errorf("%w: table size %d", ErrInvalidSize, size)
	}
	if tryNum < 1 {
		return fmt.Errorf("%w: try count %d", ErrInvalidSize, tryNum)
	}
	if uint64(tryNum) > math.MaxInt64/uint64(size) {
		return fmt.Errorf("%w: %d giant steps of %d overflow int64", ErrInvalidSize, tryNum, size)
	}
	return nil
}

// Log returns m such that target = m*base and |m| < size*tryNum. At giant
// step i it looks up target - i*size*base and -target - i*size*base, so the
// cost grows with |m| / size. ErrNotFound is returned when no such m exists.
func (t *Table) Log(target group.Point, tryNum int) (int64, error) {
	if err := CheckRange(int(t.size), tryNum); err != nil {
		return 0, err
	}
	pos, neg := target, target.Neg()
	for i := 0; i < tryNum; i++ {
		offset := int64(i) * int64(t.size)
		if k, ok := t.lookup(pos); ok {
			return offset + int64(k), nil
		}
		if k, ok := t.lookup(neg); ok {
			return -(offset + int64(k)), nil
		}
		if i+1 < tryNum {
			pos = pos.Add(t.giant)
			neg = neg.Add(t.giant)
		}
	}
	return 0, ErrNotFound
}

// lookup returns k with p = k*base. Hash hits are confirmed by recomputing
// k*base, so a collision never produces a wrong answer.
func (t *Table) lookup(p group.Point) (uint32, bool) {
	h := hash(p)
	k, ok := t.index[h]
	if !ok {
		return 0, false
	}
	if t.check(k, p) {
		return k, true
	}
	for _, k := range t.extra[h] {
		if t.check(k, p) {
			return k, true
		}
	}
	return 0, false
}

func (t *Table) check(k uint32, p group.Point) bool {
	return t.base.Mul(new(big.Int).SetUint64(uint64(k))).Equal(p)
}

func hash(p group.Point) uint64 {
	return xxhash.Sum64(p.Bytes())
}
