package familytree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// rec is an in-memory Record used to assemble trees without a GEDCOM file.
type rec struct {
	pointer  string
	tag      string
	value    string
	name     Name
	children []*rec
}

func (r *rec) Pointer() string { return r.pointer }
func (r *rec) Tag() string     { return r.tag }
func (r *rec) Value() string   { return r.value }
func (r *rec) Name() Name      { return r.name }

func (r *rec) Children() []Record {
	out := make([]Record, len(r.children))
	for i, c := range r.children {
		out[i] = c
	}
	return out
}

func parts(p ...string) Name {
	return Name{Parts: p}
}

func indi(pointer string, name Name, subs ...*rec) *rec {
	return &rec{pointer: pointer, tag: TagIndividual, name: name, children: subs}
}

func fam(pointer string, subs ...*rec) *rec {
	return &rec{pointer: pointer, tag: TagFamily, children: subs}
}

func note(pointer, value string, subs ...*rec) *rec {
	return &rec{pointer: pointer, tag: TagNote, value: value, children: subs}
}

func sub(tag, value string, subs ...*rec) *rec {
	return &rec{tag: tag, value: value, children: subs}
}

func records(rs ...*rec) []Record {
	out := make([]Record, len(rs))
	for i, r := range rs {
		out[i] = r
	}
	return out
}

// threeGenerations is A (root) → B (via @U1@) → C (via @U2@).
func threeGenerations() []Record {
	return records(
		indi("@A@", parts("Alice", "Root"), sub(TagSex, "F"), sub(TagFamilySpouse, "@U1@")),
		indi("@B@", parts("Bob", "Root"), sub(TagSex, "M"), sub(TagFamilyChild, "@U1@"), sub(TagFamilySpouse, "@U2@")),
		indi("@C@", parts("Carol", "Root"), sub(TagSex, "F"), sub(TagFamilyChild, "@U2@")),
		fam("@U1@", sub("WIFE", "@A@"), sub("CHIL", "@B@")),
		fam("@U2@", sub("HUSB", "@B@"), sub("CHIL", "@C@")),
	)
}

func mustLookup(t *testing.T, tree *Tree, name string) *Individual {
	t.Helper()
	ind, ok := tree.LookupByName(name)
	require.True(t, ok, "expected %q in tree", name)
	return ind
}
