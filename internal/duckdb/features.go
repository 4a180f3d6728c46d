package duckdb

import (
	"context"
	"database/sql/driver"
	"fmt"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/ARU-life-sciences/gffplot/internal/annotation"
)

// SequenceSummary aggregates the exported features of one sequence.
type SequenceSummary struct {
	SeqID    string
	Features int64
	MaxEnd   uint64
	Forward  int64
	Reverse  int64
	Unknown  int64
}

// WriteStore batch-inserts every row of st using the Appender API.
// Rows keep their within-sequence order in the ordinal column.
func (s *Store) WriteStore(st *annotation.Store) error {
	if st.FeatureCount() == 0 {
		return nil
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "features")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	err = st.Each(func(seqID string, rows []annotation.Row) error {
		for i, r := range rows {
			if err := appender.AppendRow(
				seqID, int64(i), r.Source, r.FeatureType,
				r.Start, r.End, r.Strand.String(), r.Label,
			); err != nil {
				return fmt.Errorf("append feature %s:%d: %w", seqID, i, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	return appender.Flush()
}

// ClearFeatures removes all exported features.
func (s *Store) ClearFeatures() error {
	_, err := s.db.Exec("DELETE FROM features")
	return err
}

// Summaries returns one summary per sequence, ordered by sequence id.
func (s *Store) Summaries() ([]SequenceSummary, error) {
	rows, err := s.db.Query(`SELECT
		seq_id,
		COUNT(*),
		MAX(end_pos),
		COUNT(*) FILTER (WHERE strand = '+'),
		COUNT(*) FILTER (WHERE strand = '-'),
		COUNT(*) FILTER (WHERE strand = '.')
		FROM features
		GROUP BY seq_id
		ORDER BY seq_id`)
	if err != nil {
		return nil, fmt.Errorf("query summaries: %w", err)
	}
	defer rows.Close()

	var out []SequenceSummary
	for rows.Next() {
		var sum SequenceSummary
		if err := rows.Scan(&sum.SeqID, &sum.Features, &sum.MaxEnd, &sum.Forward, &sum.Reverse, &sum.Unknown); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate summaries: %w", err)
	}
	return out, nil
}

// Features returns the exported rows of one sequence in their original order.
func (s *Store) Features(seqID string) ([]annotation.Row, error) {
	rows, err := s.db.Query(`SELECT
		label, source, feature_type, start_pos, end_pos, strand
		FROM features
		WHERE seq_id=?
		ORDER BY ordinal`, seqID)
	if err != nil {
		return nil, fmt.Errorf("query features: %w", err)
	}
	defer rows.Close()

	var out []annotation.Row
	for rows.Next() {
		var r annotation.Row
		var strand string
		if err := rows.Scan(&r.Label, &r.Source, &r.FeatureType, &r.Start, &r.End, &strand); err != nil {
			return nil, fmt.Errorf("scan feature: %w", err)
		}
		if r.Strand, err = annotation.ParseStrand(strand); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate features: %w", err)
	}
	return out, nil
}
