package familytree

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Tree is the indexed family graph built from a GEDCOM record stream.
// It is read-only once New returns and safe for concurrent use.
type Tree struct {
	individuals []*Individual          // file order
	byPointer   map[string]*Individual // pointer -> individual
	byName      map[string]*Individual // display name -> first individual in file order
	unions      map[string]*Union
	notes       map[string]*Note
	malformed   []MalformedReference

	logger *zap.Logger
}

// Option configures a Tree.
type Option func(*Tree)

// WithLogger sets the logger used for build diagnostics and search traces.
func WithLogger(logger *zap.Logger) Option {
	return func(t *Tree) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// MalformedReference is a pointer that names a record the file does not contain.
// The reference is treated as absent everywhere else in the package.
type MalformedReference struct {
	Owner   string `json:"owner"`   // pointer of the record holding the reference
	Tag     string `json:"tag"`     // FAMS, FAMC, HUSB, WIFE, CHIL or NOTE
	Pointer string `json:"pointer"` // the dangling target
}

func (m MalformedReference) String() string {
	return fmt.Sprintf("%s %s %s: no such record", m.Owner, m.Tag, m.Pointer)
}

// New indexes the top-level records of a GEDCOM file. Records are consumed in
// the order given, which is taken to be file order.
func New(records []Record, opts ...Option) *Tree {
	t := &Tree{
		byPointer: make(map[string]*Individual),
		byName:    make(map[string]*Individual),
		unions:    make(map[string]*Union),
		notes:     make(map[string]*Note),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}

	// First pass: create every individual, union and note so that pointers
	// can be resolved regardless of the order records appear in.
	for _, r := range records {
		switch r.Tag() {
		case TagIndividual:
			t.addIndividual(r)
		case TagFamily:
			if _, dup := t.unions[r.Pointer()]; !dup {
				t.unions[r.Pointer()] = &Union{
					Pointer:  r.Pointer(),
					Marriage: eventOf(r, TagMarriage),
					Divorce:  eventOf(r, TagDivorce),
					record:   r,
					members:  make(map[Role][]*Individual),
				}
			}
		case TagNote:
			if r.Pointer() != "" {
				if _, dup := t.notes[r.Pointer()]; !dup {
					t.notes[r.Pointer()] = newNote(r)
				}
			}
		}
	}

	// Second pass: resolve cross references.
	for _, ind := range t.individuals {
		t.linkIndividual(ind)
	}
	for _, r := range records {
		if r.Tag() != TagFamily {
			continue
		}
		if u := t.unions[r.Pointer()]; u != nil && u.record == r {
			t.linkUnion(u)
		}
	}

	t.logger.Debug("Family tree built",
		zap.Int("individuals", len(t.individuals)),
		zap.Int("unions", len(t.unions)),
		zap.Int("notes", len(t.notes)),
		zap.Int("malformedReferences", len(t.malformed)))

	return t
}

func (t *Tree) addIndividual(r Record) {
	ind := &Individual{
		Pointer:    r.Pointer(),
		Name:       r.Name(),
		Sex:        childValue(r, TagSex),
		Death:      eventOf(r, TagDeath),
		Occupation: childValue(r, TagOccupation),
		record:     r,
	}
	if birth := eventOf(r, TagBirth); birth != nil {
		ind.Birth = *birth
	}
	for _, child := range r.Children() {
		if child.Tag() == TagNote {
			ind.notes = append(ind.notes, child)
		}
	}

	if _, dup := t.byPointer[ind.Pointer]; dup {
		t.logger.Warn("Duplicate individual pointer ignored", zap.String("pointer", ind.Pointer))
		return
	}
	t.byPointer[ind.Pointer] = ind
	t.individuals = append(t.individuals, ind)

	name := ind.DisplayName()
	if _, taken := t.byName[name]; !taken {
		t.byName[name] = ind
	}
}

func (t *Tree) linkIndividual(ind *Individual) {
	for _, child := range ind.record.Children() {
		switch child.Tag() {
		case TagFamilySpouse, TagFamilyChild:
			ptr := strings.TrimSpace(child.Value())
			u, ok := t.unions[ptr]
			if !ok {
				t.addMalformed(ind.Pointer, child.Tag(), ptr)
				continue
			}
			if child.Tag() == TagFamilySpouse {
				ind.spouseUnions = append(ind.spouseUnions, u)
			} else {
				ind.childUnions = append(ind.childUnions, u)
			}
		case TagNote:
			if ptr := strings.TrimSpace(child.Value()); isPointer(ptr) {
				if _, ok := t.notes[ptr]; !ok {
					t.addMalformed(ind.Pointer, TagNote, ptr)
				}
			}
		}
	}
}

func (t *Tree) linkUnion(u *Union) {
	for _, child := range u.record.Children() {
		role := Role(child.Tag())
		if role != RoleHusband && role != RoleWife && role != RoleChild {
			continue
		}
		ptr := strings.TrimSpace(child.Value())
		ind, ok := t.byPointer[ptr]
		if !ok {
			t.addMalformed(u.Pointer, child.Tag(), ptr)
			continue
		}
		u.members[role] = append(u.members[role], ind)
	}
}

func (t *Tree) addMalformed(owner, tag, ptr string) {
	ref := MalformedReference{Owner: owner, Tag: tag, Pointer: ptr}
	t.malformed = append(t.malformed, ref)
	t.logger.Warn("Dangling reference treated as absent",
		zap.String("owner", owner),
		zap.String("tag", tag),
		zap.String("pointer", ptr))
}

// Individuals returns every individual in file order.
func (t *Tree) Individuals() []*Individual {
	out := make([]*Individual, len(t.individuals))
	copy(out, t.individuals)
	return out
}

// Individual returns the individual with the given pointer.
func (t *Tree) Individual(pointer string) (*Individual, bool) {
	ind, ok := t.byPointer[pointer]
	return ind, ok
}

// LookupByName returns the first individual in file order whose display name
// equals name exactly. Matching is case-sensitive with no normalisation, and
// duplicated names always resolve to the earliest record.
func (t *Tree) LookupByName(name string) (*Individual, bool) {
	ind, ok := t.byName[name]
	return ind, ok
}

// UnionsWhereParent returns the unions the individual is a spouse in, in the
// order of the individual's FAMS references.
func (t *Tree) UnionsWhereParent(ind *Individual) []*Union {
	if ind == nil {
		return nil
	}
	return ind.spouseUnions
}

// UnionsWhereChild returns the unions the individual is a child of, in the
// order of the individual's FAMC references.
func (t *Tree) UnionsWhereChild(ind *Individual) []*Union {
	if ind == nil {
		return nil
	}
	return ind.childUnions
}

// MembersWithRole returns the union's members recorded under role, in record order.
func (t *Tree) MembersWithRole(u *Union, role Role) []*Individual {
	if u == nil {
		return nil
	}
	return u.membersWithRole(role)
}

// ResolveNote returns the top-level note with the given pointer.
func (t *Tree) ResolveNote(pointer string) (*Note, bool) {
	n, ok := t.notes[pointer]
	return n, ok
}

// MalformedReferences lists the dangling pointers found while building.
func (t *Tree) MalformedReferences() []MalformedReference {
	out := make([]MalformedReference, len(t.malformed))
	copy(out, t.malformed)
	return out
}
