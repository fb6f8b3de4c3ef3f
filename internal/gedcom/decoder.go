// Package gedcom reads GEDCOM 5.5 files into a tree of Elements that satisfy
// familytree.Record. It is a structural parser only: it checks line syntax
// and level nesting, not the meaning of tags.
package gedcom

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/JeremyMcCormick/genaialogy/pkg/familytree"
)

// maxLineLength bounds a single GEDCOM line. The standard allows 255
// characters; real exports are often longer.
const maxLineLength = 1024 * 1024

// SyntaxError reports a line that could not be placed in the record tree.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("gedcom line %d: %s", e.Line, e.Msg)
}

// Document is a decoded GEDCOM file.
type Document struct {
	Roots []*Element // level-0 records in file order
}

// Records returns the top-level records for familytree.New.
func (d *Document) Records() []familytree.Record {
	out := make([]familytree.Record, len(d.Roots))
	for i, r := range d.Roots {
		out[i] = r
	}
	return out
}

// Decode parses a GEDCOM stream. A UTF-8 byte order mark, CRLF line endings
// and blank lines are tolerated.
func Decode(r io.Reader) (*Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	doc := &Document{}
	var stack []*Element // stack[n] is the open element at level n
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		el, err := parseLine(line, lineNo)
		if err != nil {
			return nil, err
		}

		if el.level > len(stack) {
			if len(stack) == 0 {
				return nil, &SyntaxError{Line: lineNo, Msg: fmt.Sprintf("level %d record has no level 0 parent", el.level)}
			}
			return nil, &SyntaxError{Line: lineNo, Msg: fmt.Sprintf("level %d follows level %d", el.level, len(stack)-1)}
		}
		stack = stack[:el.level]
		if el.level == 0 {
			doc.Roots = append(doc.Roots, el)
		} else {
			parent := stack[el.level-1]
			parent.children = append(parent.children, el)
		}
		stack = append(stack, el)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read gedcom: %w", err)
	}

	return doc, nil
}

// ParseFile opens and decodes a GEDCOM file.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open gedcom file: %w", err)
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return doc, nil
}

// Load parses a GEDCOM file and builds a family tree from it.
func Load(path string, opts ...familytree.Option) (*familytree.Tree, error) {
	doc, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	return familytree.New(doc.Records(), opts...), nil
}

// parseLine splits "level [@xref@] TAG [value]".
func parseLine(line string, lineNo int) (*Element, error) {
	rest := strings.TrimLeft(line, " \t")

	levelText, rest, _ := strings.Cut(rest, " ")
	level, err := strconv.Atoi(levelText)
	if err != nil || level < 0 {
		return nil, &SyntaxError{Line: lineNo, Msg: fmt.Sprintf("invalid level %q", levelText)}
	}

	rest = strings.TrimLeft(rest, " ")
	el := &Element{level: level, line: lineNo}

	if strings.HasPrefix(rest, "@") {
		xref, after, _ := strings.Cut(rest, " ")
		if len(xref) < 3 || !strings.HasSuffix(xref, "@") {
			return nil, &SyntaxError{Line: lineNo, Msg: fmt.Sprintf("malformed cross-reference %q", xref)}
		}
		el.pointer = xref
		rest = strings.TrimLeft(after, " ")
	}

	tag, value, _ := strings.Cut(rest, " ")
	if tag == "" {
		return nil, &SyntaxError{Line: lineNo, Msg: "missing tag"}
	}
	el.tag = tag
	el.value = value

	return el, nil
}
