package familytree

import (
	"fmt"
	"strings"
)

// Keys used by AggregateInfo, in output order.
const (
	KeyName       = "Name"
	KeySex        = "Sex"
	KeyBirthDate  = "Birth date"
	KeyBirthPlace = "Birth place"
	KeyDeathDate  = "Death date"
	KeyDeathPlace = "Death place"
	KeyOccupation = "Occupation"
	KeyChildren   = "Children"
	KeyFather     = "Father"
	KeyMother     = "Mother"
	KeyNotes      = "Notes"
	KeySiblings   = "Siblings"
	KeySpouses    = "Spouses"
)

// Field is one key/value pair of an Info.
type Field struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Info is an ordered set of human-readable facts about one individual.
// Fields without data are never present.
type Info struct {
	fields []Field
}

func (i *Info) add(key, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	i.fields = append(i.fields, Field{Key: key, Value: value})
}

// Get returns the value stored under key.
func (i *Info) Get(key string) (string, bool) {
	for _, f := range i.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// Keys returns the keys in output order.
func (i *Info) Keys() []string {
	keys := make([]string, len(i.fields))
	for n, f := range i.fields {
		keys[n] = f.Key
	}
	return keys
}

// Fields returns a copy of the fields in output order.
func (i *Info) Fields() []Field {
	out := make([]Field, len(i.fields))
	copy(out, i.fields)
	return out
}

// Len returns the number of fields.
func (i *Info) Len() int {
	return len(i.fields)
}

// String renders the fields as "key: value" lines.
func (i *Info) String() string {
	lines := make([]string, len(i.fields))
	for n, f := range i.fields {
		lines[n] = fmt.Sprintf("%s: %s", f.Key, f.Value)
	}
	return strings.Join(lines, "\n")
}

// AggregateInfo collects everything known about an individual into an Info.
// Death fields are only considered for deceased individuals. Relationship
// lists are comma-joined display names; spouse union metadata is dropped at
// this level (use FindSpouses for it).
func (t *Tree) AggregateInfo(ind *Individual) *Info {
	info := &Info{}
	if ind == nil {
		return info
	}

	info.add(KeyName, ind.DisplayName())
	info.add(KeySex, ind.Sex)
	info.add(KeyBirthDate, ind.Birth.Date)
	info.add(KeyBirthPlace, ind.Birth.Place)
	if ind.Deceased() {
		info.add(KeyDeathDate, ind.Death.Date)
		info.add(KeyDeathPlace, ind.Death.Place)
	}
	info.add(KeyOccupation, ind.Occupation)

	info.add(KeyChildren, strings.Join(displayNames(t.FindChildren(ind)), ", "))
	if parents, ok := t.FindParents(ind); ok {
		if parents.Father != nil {
			info.add(KeyFather, parents.Father.DisplayName())
		}
		if parents.Mother != nil {
			info.add(KeyMother, parents.Mother.DisplayName())
		}
	}
	info.add(KeyNotes, t.ResolveNotes(ind))
	info.add(KeySiblings, strings.Join(displayNames(t.FindSiblings(ind)), ", "))

	spouses := t.FindSpouses(ind)
	names := make([]string, 0, len(spouses))
	for _, s := range spouses {
		names = append(names, s.Individual.DisplayName())
	}
	info.add(KeySpouses, strings.Join(names, ", "))

	return info
}

// Describe resolves name and aggregates that individual's info.
func (t *Tree) Describe(name string) (*Info, error) {
	ind, ok := t.LookupByName(name)
	if !ok {
		return nil, &NotFoundError{Name: name, Role: "individual"}
	}
	return t.AggregateInfo(ind), nil
}
