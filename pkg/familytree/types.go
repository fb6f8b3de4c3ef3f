package familytree

import "strings"

// Event is a dated, located life or union event (birth, death, marriage, divorce).
type Event struct {
	Date  string `json:"date,omitempty"`
	Place string `json:"place,omitempty"`
}

// Individual is a person record. Individuals are created by New and never
// modified afterwards.
type Individual struct {
	Pointer    string `json:"pointer"`
	Name       Name   `json:"name"`
	Sex        string `json:"sex,omitempty"`
	Birth      Event  `json:"birth"`
	Death      *Event `json:"death,omitempty"` // nil unless a DEAT record is present
	Occupation string `json:"occupation,omitempty"`

	record       Record
	notes        []Record // NOTE sub-records, pointer or inline
	spouseUnions []*Union // resolved FAMS references
	childUnions  []*Union // resolved FAMC references
}

// DisplayName returns the formatted name used for lookups and output.
func (i *Individual) DisplayName() string {
	return i.Name.String()
}

// Deceased reports whether the record carries a death event.
func (i *Individual) Deceased() bool {
	return i.Death != nil
}

// Record returns the underlying parsed record.
func (i *Individual) Record() Record {
	return i.record
}

func (i *Individual) String() string {
	return i.DisplayName()
}

// Union is a FAM record: a pairing of up to two spouses plus their children.
// It is not necessarily a marriage.
type Union struct {
	Pointer  string `json:"pointer"`
	Marriage *Event `json:"marriage,omitempty"`
	Divorce  *Event `json:"divorce,omitempty"`

	record  Record
	members map[Role][]*Individual
}

// Record returns the underlying parsed record.
func (u *Union) Record() Record {
	return u.record
}

func (u *Union) membersWithRole(role Role) []*Individual {
	return u.members[role]
}

// Note is a top-level NOTE record.
type Note struct {
	Pointer string   `json:"pointer"`
	Lines   []string `json:"lines"`
}

// Text joins the note's non-empty lines with a single space.
func (n *Note) Text() string {
	return joinNonEmpty(n.Lines, " ")
}

// newNote collects the text of a NOTE record: its own value followed by the
// values of its CONT/CONC sub-records, in order.
func newNote(r Record) *Note {
	note := &Note{Pointer: r.Pointer()}
	if v := strings.TrimSpace(r.Value()); v != "" && !isPointer(v) {
		note.Lines = append(note.Lines, v)
	}
	for _, child := range r.Children() {
		if child.Tag() == TagContinued || child.Tag() == TagConcatenated {
			note.Lines = append(note.Lines, strings.TrimSpace(child.Value()))
		}
	}
	return note
}

func joinNonEmpty(parts []string, sep string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// eventOf reads DATE and PLAC from the first sub-record with the given tag.
// Returns nil when the event is not recorded at all.
func eventOf(r Record, tag string) *Event {
	rec := firstChild(r, tag)
	if rec == nil {
		return nil
	}
	return &Event{
		Date:  childValue(rec, TagDate),
		Place: childValue(rec, TagPlace),
	}
}
