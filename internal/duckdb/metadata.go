package duckdb

import (
	"fmt"
	"os"
	"time"
)

// FileFingerprint holds stat-based identity for a file.
type FileFingerprint struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// StatFile creates a FileFingerprint from an on-disk file.
func StatFile(path string) (FileFingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileFingerprint{}, err
	}
	return FileFingerprint{
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// InputRecord is one exported GFF file.
type InputRecord struct {
	FileFingerprint
	Features int64
}

// RecordInput notes which file the exported features came from.
func (s *Store) RecordInput(fp FileFingerprint, features int) error {
	_, err := s.db.Exec(`INSERT INTO inputs (path, size, mod_time, features) VALUES (?, ?, ?, ?)`,
		fp.Path, fp.Size, fp.ModTime.UTC(), int64(features))
	if err != nil {
		return fmt.Errorf("record input: %w", err)
	}
	return nil
}

// Inputs lists recorded input files, oldest first.
func (s *Store) Inputs() ([]InputRecord, error) {
	rows, err := s.db.Query(`SELECT path, size, mod_time, features FROM inputs ORDER BY exported_at, path`)
	if err != nil {
		return nil, fmt.Errorf("query inputs: %w", err)
	}
	defer rows.Close()

	var out []InputRecord
	for rows.Next() {
		var in InputRecord
		if err := rows.Scan(&in.Path, &in.Size, &in.ModTime, &in.Features); err != nil {
			return nil, fmt.Errorf("scan input: %w", err)
		}
		out = append(out, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate inputs: %w", err)
	}
	return out, nil
}
