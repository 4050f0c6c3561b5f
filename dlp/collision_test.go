package dlp

import (
	"math/big"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/vocdoni/gnark-crypto-she/group/bn254"
)

func TestLookupVerifiesHits(t *testing.T) {
	c := qt.New(t)
	curve, err := bn254.Curve()
	c.Assert(err, qt.IsNil)
	g := curve.G1
	base := g.Generator()

	keys := make([]uint64, 8)
	for k := range keys {
		keys[k] = hash(base.Mul(big.NewInt(int64(k))))
	}
	// step 0 claims the hash of step 5: the first hit must be rejected and
	// the colliding entry found instead
	keys[0] = keys[5]
	table := newTable(g, base, keys)
	c.Assert(table.Collisions(), qt.Equals, 1)

	k, ok := table.lookup(base.Mul(big.NewInt(5)))
	c.Assert(ok, qt.IsTrue)
	c.Assert(k, qt.Equals, uint32(5))

	// 0*base is no longer indexed: multiples of 8 are lost, but nothing wrong
	// is returned
	_, err = table.Log(g.Identity(), 3)
	c.Assert(err, qt.ErrorIs, ErrNotFound)
	m, err := table.Log(base.Mul(big.NewInt(-13)), 3)
	c.Assert(err, qt.IsNil)
	c.Assert(m, qt.Equals, int64(-13))
}
