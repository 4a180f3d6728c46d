package annotation

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ARU-life-sciences/gffplot/internal/gff"
)

// RecordReader yields GFF records. Next returns nil, nil when exhausted.
type RecordReader interface {
	Next() (*gff.Record, error)
}

// Normalizer turns GFF records into a Store.
type Normalizer struct {
	logger *zap.Logger
}

// NewNormalizer creates a normalizer that logs nothing.
func NewNormalizer() *Normalizer {
	return &Normalizer{logger: zap.NewNop()}
}

// SetLogger sets the logger for debug and info messages.
func (n *Normalizer) SetLogger(l *zap.Logger) {
	n.logger = l
}

// Normalize reads every record from r and groups the labeled rows by sequence.
// Exons are dropped: tRNAscan-SE emits one per tRNA, duplicating the parent.
func (n *Normalizer) Normalize(r RecordReader) (*Store, error) {
	store := NewStore()
	skipped := 0

	for {
		rec, err := r.Next()
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		if rec == nil {
			break
		}

		if rec.Type == "exon" {
			skipped++
			continue
		}

		row, err := NormalizeRecord(rec)
		if err != nil {
			return nil, err
		}
		store.Add(rec.SeqID, row)
	}

	if skipped > 0 {
		n.logger.Debug("skipped exon records", zap.Int("count", skipped))
	}
	n.logger.Info("normalized annotations",
		zap.Int("sequences", store.Len()),
		zap.Int("features", store.FeatureCount()))

	return store, nil
}

// Normalize is shorthand for NewNormalizer().Normalize(r).
func Normalize(r RecordReader) (*Store, error) {
	return NewNormalizer().Normalize(r)
}

// NormalizeRecord labels a single record according to its source.
func NormalizeRecord(rec *gff.Record) (Row, error) {
	src, ok := LookupSource(rec.Source)
	if !ok {
		return Row{}, &UnknownSourceError{Source: rec.Source, Line: rec.Line}
	}

	label, err := src.Label(rec.Attributes)
	if err != nil {
		if me, ok := err.(*MissingAttributeError); ok {
			me.Line = rec.Line
		}
		return Row{}, err
	}

	strand, err := ParseStrand(rec.Strand)
	if err != nil {
		if se, ok := err.(*MalformedStrandError); ok {
			se.Line = rec.Line
		}
		return Row{}, err
	}

	return Row{
		Label:       label,
		Source:      rec.Source,
		FeatureType: rec.Type,
		Start:       rec.Start,
		End:         rec.End,
		Strand:      strand,
	}, nil
}
