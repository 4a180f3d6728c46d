package annotation

// Strand is the directionality of a feature.
type Strand int

const (
	StrandUnknown Strand = iota
	StrandForward
	StrandReverse
)

// ParseStrand resolves the GFF strand column. "." and "?" are both Unknown.
func ParseStrand(s string) (Strand, error) {
	switch s {
	case "+":
		return StrandForward, nil
	case "-":
		return StrandReverse, nil
	case ".", "?":
		return StrandUnknown, nil
	default:
		return StrandUnknown, &MalformedStrandError{Value: s}
	}
}

// String returns the GFF column form of the strand.
func (s Strand) String() string {
	switch s {
	case StrandForward:
		return "+"
	case StrandReverse:
		return "-"
	default:
		return "."
	}
}
