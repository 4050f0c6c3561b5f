package dlp_test

import (
	"bytes"
	"math"
	"math/big"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/vocdoni/gnark-crypto-she/dlp"
	"github.com/vocdoni/gnark-crypto-she/group"
	"github.com/vocdoni/gnark-crypto-she/group/bn254"
	"github.com/vocdoni/gnark-crypto-she/group/secp256k1"
)

func testGroups(c *qt.C) []group.Group {
	curve, err := bn254.Curve()
	c.Assert(err, qt.IsNil)
	return []group.Group{curve.G1, curve.G2, curve.GT, secp256k1.Curve().G1}
}

func TestLog(t *testing.T) {
	c := qt.New(t)
	const size, tryNum = 100, 7
	for _, g := range testGroups(c) {
		c.Run(g.String(), func(c *qt.C) {
			base := g.Generator()
			table, err := dlp.NewTable(g, base, size)
			c.Assert(err, qt.IsNil)
			c.Assert(table.Size(), qt.Equals, size)

			limit, err := table.Range(tryNum)
			c.Assert(err, qt.IsNil)
			c.Assert(limit, qt.Equals, int64(size*tryNum-1))

			for _, m := range []int64{0, 1, -1, 99, 100, -100, 101, 350, -421, limit, -limit} {
				got, err := table.Log(base.Mul(big.NewInt(m)), tryNum)
				c.Assert(err, qt.IsNil, qt.Commentf("m=%d", m))
				c.Assert(got, qt.Equals, m)
			}
			for _, m := range []int64{limit + 1, -limit - 1, limit + 2, 1 << 40} {
				_, err := table.Log(base.Mul(big.NewInt(m)), tryNum)
				c.Assert(err, qt.ErrorIs, dlp.ErrNotFound, qt.Commentf("m=%d", m))
			}
		})
	}
}

func TestLogWithMoreTries(t *testing.T) {
	c := qt.New(t)
	g := testGroups(c)[0]
	base := g.Generator()
	table, err := dlp.NewTable(g, base, 16)
	c.Assert(err, qt.IsNil)

	target := base.Mul(big.NewInt(-500))
	_, err = table.Log(target, 10)
	c.Assert(err, qt.ErrorIs, dlp.ErrNotFound)
	// the range grows with the number of giant steps, not the table
	m, err := table.Log(target, 32)
	c.Assert(err, qt.IsNil)
	c.Assert(m, qt.Equals, int64(-500))
}

func TestLogLargeTable(t *testing.T) {
	c := qt.New(t)
	g := testGroups(c)[0]
	base := g.Generator()
	// larger than one worker chunk on any machine
	table, err := dlp.NewTable(g, base, 5000)
	c.Assert(err, qt.IsNil)
	for _, m := range []int64{4999, 2500, 257, 12345, -49999} {
		got, err := table.Log(base.Mul(big.NewInt(m)), 10)
		c.Assert(err, qt.IsNil)
		c.Assert(got, qt.Equals, m)
	}
}

func TestCheckRange(t *testing.T) {
	c := qt.New(t)
	c.Assert(dlp.CheckRange(1024, 2048), qt.IsNil)
	c.Assert(dlp.CheckRange(0, 1), qt.ErrorIs, dlp.ErrInvalidSize)
	c.Assert(dlp.CheckRange(1, 0), qt.ErrorIs, dlp.ErrInvalidSize)
	c.Assert(dlp.CheckRange(math.MaxUint32+1, 1), qt.ErrorIs, dlp.ErrInvalidSize)
	c.Assert(dlp.CheckRange(math.MaxUint32, math.MaxInt64/math.MaxUint32), qt.IsNil)
	c.Assert(dlp.CheckRange(math.MaxUint32, math.MaxInt64/math.MaxUint32+1), qt.ErrorIs, dlp.ErrInvalidSize)

	g := testGroups(c)[0]
	_, err := dlp.NewTable(g, g.Generator(), 0)
	c.Assert(err, qt.ErrorIs, dlp.ErrInvalidSize)
}

func TestTableEncoding(t *testing.T) {
	c := qt.New(t)
	groups := testGroups(c)
	for _, g := range groups {
		c.Run(g.String(), func(c *qt.C) {
			base := g.Generator()
			table, err := dlp.NewTable(g, base, 64)
			c.Assert(err, qt.IsNil)

			var buf bytes.Buffer
			_, err = table.WriteTo(&buf)
			c.Assert(err, qt.IsNil)
			data := bytes.Clone(buf.Bytes())

			loaded, err := dlp.ReadTable(g, base, &buf)
			c.Assert(err, qt.IsNil)
			c.Assert(loaded.Size(), qt.Equals, 64)
			m, err := loaded.Log(base.Mul(big.NewInt(-1000)), 20)
			c.Assert(err, qt.IsNil)
			c.Assert(m, qt.Equals, int64(-1000))

			again, err := loaded.MarshalBinary()
			c.Assert(err, qt.IsNil)
			c.Assert(again, qt.DeepEquals, data)

			// another base
			_, err = dlp.UnmarshalTable(g, base.Mul(big.NewInt(2)), data)
			c.Assert(err, qt.ErrorIs, dlp.ErrTableMismatch)
			_, err = dlp.UnmarshalTable(g, base, data[:len(data)-3])
			c.Assert(err, qt.Not(qt.IsNil))
		})
	}
	// another group
	table, err := dlp.NewTable(groups[0], groups[0].Generator(), 8)
	c.Assert(err, qt.IsNil)
	data, err := table.MarshalBinary()
	c.Assert(err, qt.IsNil)
	_, err = dlp.UnmarshalTable(groups[1], groups[1].Generator(), data)
	c.Assert(err, qt.ErrorIs, dlp.ErrTableMismatch)
}
