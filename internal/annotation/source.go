package annotation

import "fmt"

// Source identifies an annotation tool whose records gffplot can label.
type Source int

// Known sources, in palette order.
const (
	SourceORFfinder Source = iota
	SourceCmscan
	SourceTRNAscanSE
	SourceBarrnap
)

// sourceDef describes how records from one tool are labeled and drawn.
type sourceDef struct {
	name     string   // value of the GFF source column
	marker   string   // SVG marker id for the arrowhead
	required []string // attributes that must be present, in label order
	format   func(vals []string) string
}

var sources = [...]sourceDef{
	SourceORFfinder: {
		name:     "ORFfinder",
		marker:   "point_orf",
		required: []string{"pfam_accession", "target_name", "description"},
		format: func(v []string) string {
			return fmt.Sprintf("Pfam accession: %s\nTarget name: %s\nDescription: %s", v[0], v[1], v[2])
		},
	},
	SourceCmscan: {
		name:     "cmscan",
		marker:   "point_cmscan",
		required: []string{"description"},
		format: func(v []string) string {
			return "Description: " + v[0]
		},
	},
	SourceTRNAscanSE: {
		name:     "tRNAscan-SE",
		marker:   "point_trna",
		required: []string{"gene_biotype", "anticodon"},
		format: func(v []string) string {
			return v[0] + ": " + v[1]
		},
	},
	SourceBarrnap: {
		name:     "barrnap:0.9",
		marker:   "point_rrna",
		required: []string{"product", "note"},
		format: func(v []string) string {
			return v[0] + ": " + v[1]
		},
	},
}

// Sources returns every known source in palette order.
func Sources() []Source {
	out := make([]Source, len(sources))
	for i := range sources {
		out[i] = Source(i)
	}
	return out
}

// LookupSource maps a GFF source column value to a known Source.
func LookupSource(name string) (Source, bool) {
	for i, d := range sources {
		if d.name == name {
			return Source(i), true
		}
	}
	return 0, false
}

// String returns the GFF source column value.
func (s Source) String() string {
	if int(s) < 0 || int(s) >= len(sources) {
		return fmt.Sprintf("Source(%d)", int(s))
	}
	return sources[s].name
}

// MarkerID returns the id of the arrowhead marker drawn for this source.
func (s Source) MarkerID() string {
	return sources[s].marker
}

// RequiredAttributes returns the attributes a record from this source must carry.
func (s Source) RequiredAttributes() []string {
	return append([]string(nil), sources[s].required...)
}

// Label builds the feature label from attrs, failing on the first missing
// required attribute.
func (s Source) Label(attrs map[string]string) (string, error) {
	def := sources[s]
	vals := make([]string, len(def.required))
	for i, key := range def.required {
		v, ok := attrs[key]
		if !ok {
			return "", &MissingAttributeError{Source: def.name, Attribute: key}
		}
		vals[i] = v
	}
	return def.format(vals), nil
}
