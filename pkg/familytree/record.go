package familytree

import "strings"

// Record is one parsed GEDCOM record or sub-record. It is the contract a
// parser must satisfy for New to build a tree from its output.
type Record interface {
	// Pointer returns the cross-reference identifier (e.g. "@I1@"), or "" for
	// records without one.
	Pointer() string
	Tag() string
	Value() string
	// Name returns the individual's name. Only meaningful for INDI records.
	Name() Name
	Children() []Record
}

// GEDCOM tags understood by the builder.
const (
	TagIndividual   = "INDI"
	TagFamily       = "FAM"
	TagNote         = "NOTE"
	TagName         = "NAME"
	TagGivenName    = "GIVN"
	TagSurname      = "SURN"
	TagSex          = "SEX"
	TagBirth        = "BIRT"
	TagDeath        = "DEAT"
	TagOccupation   = "OCCU"
	TagDate         = "DATE"
	TagPlace        = "PLAC"
	TagFamilySpouse = "FAMS"
	TagFamilyChild  = "FAMC"
	TagMarriage     = "MARR"
	TagDivorce      = "DIV"
	TagContinued    = "CONT"
	TagConcatenated = "CONC"
)

// Role is the part an individual plays in a union.
type Role string

const (
	// RoleHusband is the primary spouse role ("father" for parent lookup)
	RoleHusband Role = "HUSB"

	// RoleWife is the secondary spouse role ("mother" for parent lookup)
	RoleWife Role = "WIFE"

	// RoleChild marks a child of the union
	RoleChild Role = "CHIL"
)

// Name is an individual's name as the parser recorded it: either structured
// parts (given names, surname) or a single pre-joined string.
type Name struct {
	Parts []string
	Full  string
}

// String returns the display name. Structured parts are joined with a single
// space; a pre-joined name is returned untouched.
func (n Name) String() string {
	if len(n.Parts) > 0 {
		return strings.Join(n.Parts, " ")
	}
	return n.Full
}

// IsZero reports whether no name was recorded.
func (n Name) IsZero() bool {
	return len(n.Parts) == 0 && n.Full == ""
}

// isPointer reports whether a record value is a cross-reference like "@N1@".
func isPointer(value string) bool {
	return len(value) > 2 && strings.HasPrefix(value, "@") && strings.HasSuffix(value, "@")
}

// firstChild returns the first direct sub-record with the given tag.
func firstChild(r Record, tag string) Record {
	for _, child := range r.Children() {
		if child.Tag() == tag {
			return child
		}
	}
	return nil
}

// childValue returns the value of the first direct sub-record with the given tag.
func childValue(r Record, tag string) string {
	if child := firstChild(r, tag); child != nil {
		return strings.TrimSpace(child.Value())
	}
	return ""
}
