package dlp

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/vocdoni/gnark-crypto-she/group"
)

// tableFile is the cbor layout of a table. Keys packs the hash of k*base at
// offset 8*k, big endian.
type tableFile struct {
	Group string `cbor:"1,keyasint"`
	Base  []byte `cbor:"2,keyasint"`
	Size  uint32 `cbor:"3,keyasint"`
	Keys  []byte `cbor:"4,keyasint"`
}

var encMode = func() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}()

// MarshalBinary encodes the table so that it can be loaded without
// recomputing the baby steps.
func (t *Table) MarshalBinary() ([]byte, error) {
	keys := make([]byte, 8*int(t.size))
	for h, k := range t.index {
		binary.BigEndian.PutUint64(keys[8*int(k):], h)
	}
	for h, ks := range t.extra {
		for _, k := range ks {
			binary.BigEndian.PutUint64(keys[8*int(k):], h)
		}
	}
	return encMode.Marshal(&tableFile{
		Group: t.g.String(),
		Base:  t.base.Bytes(),
		Size:  t.size,
		Keys:  keys,
	})
}

// WriteTo writes the encoded table to w.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	data, err := t.MarshalBinary()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// UnmarshalTable decodes a table produced by MarshalBinary. The table must
// have been built in g over base, otherwise ErrTableMismatch is returned.
func UnmarshalTable(g group.Group, base group.Point, data []byte) (*Table, error) {
	var f tableFile
	if err := cbor.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("dlp: decode table: %w", err)
	}
	return f.table(g, base)
}

// ReadTable decodes a table written by WriteTo.
func ReadTable(g group.Group, base group.Point, r io.Reader) (*Table, error) {
	var f tableFile
	if err := cbor.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("dlp: decode table: %w", err)
	}
	return f.table(g, base)
}

func (f *tableFile) table(g group.Group, base group.Point) (*Table, error) {
	if f.Group != g.String() {
		return nil, fmt.Errorf("%w: table built for %s, want %s", ErrTableMismatch, f.Group, g.String())
	}
	if !bytes.Equal(f.Base, base.Bytes()) {
		return nil, fmt.Errorf("%w: table built for another base", ErrTableMismatch)
	}
	if f.Size < 1 || len(f.Keys) != 8*int(f.Size) {
		return nil, fmt.Errorf("%w: %d keys for size %d", ErrTableMismatch, len(f.Keys)/8, f.Size)
	}
	keys := make([]uint64, f.Size)
	for k := range keys {
		keys[k] = binary.BigEndian.Uint64(f.Keys[8*k:])
	}
	return newTable(g, base, keys), nil
}
