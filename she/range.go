package she

import (
	"fmt"
	"io"

	"github.com/vocdoni/gnark-crypto-she/dlp"
)

// SetRangeForDLP rebuilds the baby-step tables of every available group with
// hashSize entries. Memory grows linearly with hashSize while the decryption
// latency of a plaintext m is proportional to |m|/hashSize.
func (s *Scheme) SetRangeForDLP(hashSize int) error {
	if err := s.check(); err != nil {
		return err
	}
	for _, id := range s.groups() {
		if err := s.SetRangeForGroupDLP(id, hashSize); err != nil {
			return err
		}
	}
	return nil
}

// SetRangeForG1DLP rebuilds the G1 baby-step table with hashSize entries.
func (s *Scheme) SetRangeForG1DLP(hashSize int) error {
	return s.SetRangeForGroupDLP(GroupG1, hashSize)
}

// SetRangeForG2DLP rebuilds the G2 baby-step table with hashSize entries.
func (s *Scheme) SetRangeForG2DLP(hashSize int) error {
	return s.SetRangeForGroupDLP(GroupG2, hashSize)
}

// SetRangeForGTDLP rebuilds the GT baby-step table with hashSize entries.
func (s *Scheme) SetRangeForGTDLP(hashSize int) error {
	return s.SetRangeForGroupDLP(GroupGT, hashSize)
}

// SetRangeForGroupDLP rebuilds the baby-step table of group id. Concurrent
// decryptions keep using the previous table until the new one is ready.
func (s *Scheme) SetRangeForGroupDLP(id GroupID, hashSize int) error {
	if _, _, err := s.group(id); err != nil {
		return err
	}
	s.cfg.Lock()
	defer s.cfg.Unlock()
	cur := s.dec.Load()
	if err := dlp.CheckRange(hashSize, cur.tryNum); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	if cur.tables[id].Size() == hashSize {
		return nil
	}
	t, err := s.buildTable(id, hashSize)
	if err != nil {
		return err
	}
	s.replaceTable(cur, id, t)
	return nil
}

// SetTryNum sets the number of giant steps tried by Decrypt. The decodable
// range of a group becomes |m| <= hashSize*tryNum - 1 without rebuilding any
// table.
func (s *Scheme) SetTryNum(tryNum int) error {
	if err := s.check(); err != nil {
		return err
	}
	s.cfg.Lock()
	defer s.cfg.Unlock()
	cur := s.dec.Load()
	for _, id := range s.groups() {
		if err := dlp.CheckRange(cur.tables[id].Size(), tryNum); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidRange, err)
		}
	}
	next := *cur
	next.tryNum = tryNum
	s.dec.Store(&next)
	s.log.Debug().Int("tryNum", tryNum).Msg("try count updated")
	return nil
}

// Range returns the table size of group id and the current try count.
func (s *Scheme) Range(id GroupID) (hashSize, tryNum int, err error) {
	if _, _, err := s.group(id); err != nil {
		return 0, 0, err
	}
	t, tryNum := s.table(id)
	return t.Size(), tryNum, nil
}

// MaxPlaintext returns the largest |m| Decrypt recovers in group id.
func (s *Scheme) MaxPlaintext(id GroupID) (int64, error) {
	hashSize, tryNum, err := s.Range(id)
	if err != nil {
		return 0, err
	}
	return int64(hashSize)*int64(tryNum) - 1, nil
}

// SaveTable writes the baby-step table of group id to w.
func (s *Scheme) SaveTable(id GroupID, w io.Writer) error {
	if _, _, err := s.group(id); err != nil {
		return err
	}
	t, _ := s.table(id)
	_, err := t.WriteTo(w)
	return err
}

// LoadTable replaces the baby-step table of group id by one read from r,
// which must have been written by SaveTable on the same curve.
func (s *Scheme) LoadTable(id GroupID, r io.Reader) error {
	g, base, err := s.group(id)
	if err != nil {
		return err
	}
	t, err := dlp.ReadTable(g, base, r)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	s.cfg.Lock()
	defer s.cfg.Unlock()
	cur := s.dec.Load()
	if err := dlp.CheckRange(t.Size(), cur.tryNum); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	s.replaceTable(cur, id, t)
	s.log.Debug().Stringer("group", id).Int("size", t.Size()).Msg("baby-step table loaded")
	return nil
}

// table returns the table of group id and the try count of the same
// configuration.
func (s *Scheme) table(id GroupID) (*dlp.Table, int) {
	dec := s.dec.Load()
	return dec.tables[id], dec.tryNum
}

// replaceTable publishes a copy of cur with t as the table of id. The caller
// holds s.cfg.
func (s *Scheme) replaceTable(cur *decoder, id GroupID, t *dlp.Table) {
	next := *cur
	next.tables[id] = t
	s.dec.Store(&next)
}
