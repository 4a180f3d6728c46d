package annotation

import "fmt"

// UnknownSourceError is returned for a record from a tool gffplot cannot label.
type UnknownSourceError struct {
	Source string
	Line   int
}

func (e *UnknownSourceError) Error() string {
	return fmt.Sprintf("line %d: unknown annotation source %q", e.Line, e.Source)
}

// MissingAttributeError is returned when a record lacks an attribute its
// source requires.
type MissingAttributeError struct {
	Source    string
	Attribute string
	Line      int
}

func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("line %d: %s record is missing required attribute %q", e.Line, e.Source, e.Attribute)
}

// MalformedStrandError is returned for a strand column that is not +, -, . or ?.
type MalformedStrandError struct {
	Value string
	Line  int
}

func (e *MalformedStrandError) Error() string {
	return fmt.Sprintf("line %d: malformed strand %q", e.Line, e.Value)
}
