package gff

// Record is a single GFF3 feature line.
type Record struct {
	SeqID      string            // column 1, e.g. "contig_1"
	Source     string            // column 2, the tool that produced the feature
	Type       string            // column 3, e.g. "gene", "tRNA", "exon"
	Start      uint64            // 1-based, inclusive
	End        uint64            // 1-based, inclusive
	Score      string            // raw column 6, "." when absent
	Strand     string            // raw column 7; resolved by the consumer
	Phase      string            // raw column 8
	Attributes map[string]string // column 9, percent-escapes decoded
	Line       int               // line number in the input
}

// Attr returns the attribute value for key and whether it was present.
func (r *Record) Attr(key string) (string, bool) {
	v, ok := r.Attributes[key]
	return v, ok
}
