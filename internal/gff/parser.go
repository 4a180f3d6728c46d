// Package gff provides GFF3 file parsing functionality.
package gff

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"
)

const numColumns = 9

// Parser reads feature records from a GFF3 file.
type Parser struct {
	reader     *bufio.Reader
	file       *os.File
	gzipReader *gzip.Reader
	lineNumber int
	done       bool
}

// NewParser creates a new GFF3 parser for the given file.
// Supports both plain and gzipped (.gff3.gz) files; "-" reads stdin.
func NewParser(path string) (*Parser, error) {
	if path == "-" {
		return NewParserFromReader(os.Stdin), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gff file: %w", err)
	}

	p := &Parser{file: file}

	// Check for gzip magic number (0x1f, 0x8b)
	br := bufio.NewReader(file)
	magic, err := br.Peek(2)
	if err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		p.gzipReader, err = gzip.NewReader(br)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		p.reader = bufio.NewReader(p.gzipReader)
	} else {
		p.reader = br
	}

	return p, nil
}

// NewParserFromReader creates a parser from an io.Reader (e.g., stdin).
func NewParserFromReader(r io.Reader) *Parser {
	return &Parser{reader: bufio.NewReader(r)}
}

// Next reads the next feature record.
// Returns nil, nil when there are no more records or the ##FASTA section starts.
func (p *Parser) Next() (*Record, error) {
	for !p.done {
		line, err := p.reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("read gff line: %w", err)
		}
		if err == io.EOF {
			p.done = true
			if line == "" {
				break
			}
		}
		p.lineNumber++

		line = strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.HasPrefix(line, "##FASTA") {
			p.done = true
			break
		}
		if strings.HasPrefix(line, "#") {
			continue
		}

		return p.parseLine(line)
	}

	return nil, nil
}

// parseLine parses a single GFF3 feature line into a Record.
func (p *Parser) parseLine(line string) (*Record, error) {
	fields := strings.Split(line, "\t")
	if len(fields) != numColumns {
		return nil, &ParseError{
			Line:    p.lineNumber,
			Message: fmt.Sprintf("expected %d columns, found %d", numColumns, len(fields)),
		}
	}

	start, err := strconv.ParseUint(fields[3], 10, 64)
	if err != nil || start == 0 {
		return nil, &ParseError{
			Line:    p.lineNumber,
			Message: fmt.Sprintf("invalid start: %s", fields[3]),
		}
	}
	end, err := strconv.ParseUint(fields[4], 10, 64)
	if err != nil {
		return nil, &ParseError{
			Line:    p.lineNumber,
			Message: fmt.Sprintf("invalid end: %s", fields[4]),
		}
	}
	if end < start {
		return nil, &ParseError{
			Line:    p.lineNumber,
			Message: fmt.Sprintf("end %d is before start %d", end, start),
		}
	}

	attrs, err := parseAttributes(fields[8])
	if err != nil {
		return nil, &ParseError{Line: p.lineNumber, Message: err.Error()}
	}

	return &Record{
		SeqID:      unescape(fields[0]),
		Source:     unescape(fields[1]),
		Type:       unescape(fields[2]),
		Start:      start,
		End:        end,
		Score:      fields[5],
		Strand:     fields[6],
		Phase:      fields[7],
		Attributes: attrs,
		Line:       p.lineNumber,
	}, nil
}

// parseAttributes parses the ninth column ("key=value;key=value") into a map.
func parseAttributes(col string) (map[string]string, error) {
	result := make(map[string]string)
	if col == "." || col == "" {
		return result, nil
	}

	for _, kv := range strings.Split(col, ";") {
		kv = strings.TrimSpace(kv)
		if kv == "" {
			continue
		}
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("attribute %q has no value", kv)
		}
		result[unescape(key)] = unescape(value)
	}

	return result, nil
}

// unescape decodes GFF3 percent-escapes, leaving malformed sequences as-is.
func unescape(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}

// LineNumber returns the current line number being processed.
func (p *Parser) LineNumber() int {
	return p.lineNumber
}

// Close closes the parser and underlying file.
func (p *Parser) Close() error {
	if p.gzipReader != nil {
		p.gzipReader.Close()
	}
	if p.file != nil {
		return p.file.Close()
	}
	return nil
}

// ParseError represents an error during GFF parsing with line context.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("gff parse error at line %d: %s", e.Line, e.Message)
}
