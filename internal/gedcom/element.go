package gedcom

import (
	"strings"

	"github.com/JeremyMcCormick/genaialogy/pkg/familytree"
)

// Element is one GEDCOM line together with its nested sub-records.
type Element struct {
	level    int
	pointer  string
	tag      string
	value    string
	line     int
	children []*Element
}

// Level returns the GEDCOM level number of the line.
func (e *Element) Level() int { return e.level }

// Pointer returns the cross-reference id (e.g. "@I1@"), or "" if none.
func (e *Element) Pointer() string { return e.pointer }

// Tag returns the record tag (INDI, FAM, NAME, ...).
func (e *Element) Tag() string { return e.tag }

// Value returns the line value with the delimiter after the tag removed.
func (e *Element) Value() string { return e.value }

// Line returns the 1-based source line number.
func (e *Element) Line() int { return e.line }

// Elements returns the direct sub-records.
func (e *Element) Elements() []*Element { return e.children }

// Children returns the direct sub-records as familytree records.
func (e *Element) Children() []familytree.Record {
	out := make([]familytree.Record, len(e.children))
	for i, c := range e.children {
		out[i] = c
	}
	return out
}

// Name returns the individual's name from its first NAME sub-record (or from
// the element itself if it is a NAME record).
//
// A non-empty "Given /Surname/" value is split on the slashes. GIVN and SURN
// sub-records are only consulted when the NAME value is empty. Values
// without a surname delimiter are returned pre-joined.
func (e *Element) Name() familytree.Name {
	nameRec := e
	if e.tag != familytree.TagName {
		nameRec = e.first(familytree.TagName)
		if nameRec == nil {
			return familytree.Name{}
		}
	}

	var given, surname string
	if value := strings.TrimSpace(nameRec.value); value != "" {
		before, after, found := strings.Cut(value, "/")
		if !found {
			return familytree.Name{Full: value}
		}
		given = strings.TrimSpace(before)
		surname, _, _ = strings.Cut(after, "/")
		surname = strings.TrimSpace(surname)
	} else {
		if givn := nameRec.first(familytree.TagGivenName); givn != nil {
			given = strings.TrimSpace(givn.value)
		}
		if surn := nameRec.first(familytree.TagSurname); surn != nil {
			surname = strings.TrimSpace(surn.value)
		}
	}

	var parts []string
	for _, p := range []string{given, surname} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return familytree.Name{Parts: parts}
}

func (e *Element) first(tag string) *Element {
	for _, c := range e.children {
		if c.tag == tag {
			return c
		}
	}
	return nil
}
