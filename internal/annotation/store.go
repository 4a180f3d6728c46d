// Package annotation normalizes GFF records into labeled rows grouped by sequence.
package annotation

import "sort"

// Row is a normalized feature ready for layout.
type Row struct {
	Label       string // human-readable, may span several lines
	Source      string
	FeatureType string
	Start       uint64
	End         uint64
	Strand      Strand
}

// Store maps sequence ids to their rows. Rows keep input order.
type Store struct {
	rows map[string][]Row
	ids  []string // kept sorted
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{rows: make(map[string][]Row)}
}

// Add appends a row to the list for seqID.
func (s *Store) Add(seqID string, r Row) {
	if _, ok := s.rows[seqID]; !ok {
		i := sort.SearchStrings(s.ids, seqID)
		s.ids = append(s.ids, "")
		copy(s.ids[i+1:], s.ids[i:])
		s.ids[i] = seqID
	}
	s.rows[seqID] = append(s.rows[seqID], r)
}

// SeqIDs returns the sequence ids in lexicographic order.
func (s *Store) SeqIDs() []string {
	return append([]string(nil), s.ids...)
}

// Rows returns the rows for seqID in insertion order.
func (s *Store) Rows(seqID string) []Row {
	return s.rows[seqID]
}

// Len returns the number of sequences.
func (s *Store) Len() int {
	return len(s.rows)
}

// FeatureCount returns the total number of rows across all sequences.
func (s *Store) FeatureCount() int {
	n := 0
	for _, rows := range s.rows {
		n += len(rows)
	}
	return n
}

// Each calls fn for every sequence in lexicographic order.
func (s *Store) Each(fn func(seqID string, rows []Row) error) error {
	for _, id := range s.SeqIDs() {
		if err := fn(id, s.rows[id]); err != nil {
			return err
		}
	}
	return nil
}

// MaxEnd returns the largest end coordinate among rows.
func MaxEnd(rows []Row) uint64 {
	var m uint64
	for _, r := range rows {
		if r.End > m {
			m = r.End
		}
	}
	return m
}
