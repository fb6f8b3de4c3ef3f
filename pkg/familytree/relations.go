package familytree

import "strings"

// Parents holds the spouses of an individual's first parent union.
// Either slot may be nil when the union records only one spouse.
type Parents struct {
	Father *Individual
	Mother *Individual
	Union  *Union
}

// Spouse is one partner of an individual together with the metadata of the
// union they share.
type Spouse struct {
	Individual    *Individual
	Union         *Union
	MarriageDate  string
	MarriagePlace string
	DivorceDate   string
}

// FindChildren returns the children of every union the individual is a spouse
// in. A child listed in more than one of those unions appears once.
func (t *Tree) FindChildren(ind *Individual) []*Individual {
	seen := make(map[string]struct{})
	var children []*Individual
	for _, u := range t.UnionsWhereParent(ind) {
		for _, child := range u.membersWithRole(RoleChild) {
			if _, dup := seen[child.Pointer]; dup {
				continue
			}
			seen[child.Pointer] = struct{}{}
			children = append(children, child)
		}
	}
	return children
}

// FindParents returns the husband and wife of the individual's first parent
// union. Later FAMC references are not consulted. The bool is false when the
// individual is not a child in any union.
func (t *Tree) FindParents(ind *Individual) (Parents, bool) {
	unions := t.UnionsWhereChild(ind)
	if len(unions) == 0 {
		return Parents{}, false
	}
	u := unions[0]
	p := Parents{Union: u}
	if husbands := u.membersWithRole(RoleHusband); len(husbands) > 0 {
		p.Father = husbands[0]
	}
	if wives := u.membersWithRole(RoleWife); len(wives) > 0 {
		p.Mother = wives[0]
	}
	return p, true
}

// FindSiblings returns the other children of every union the individual is a
// child of. Unlike FindParents this pools all parent unions, so half-siblings
// from a second FAMC union are included.
func (t *Tree) FindSiblings(ind *Individual) []*Individual {
	if ind == nil {
		return nil
	}
	seen := map[string]struct{}{ind.Pointer: {}}
	var siblings []*Individual
	for _, u := range t.UnionsWhereChild(ind) {
		for _, child := range u.membersWithRole(RoleChild) {
			if _, dup := seen[child.Pointer]; dup {
				continue
			}
			seen[child.Pointer] = struct{}{}
			siblings = append(siblings, child)
		}
	}
	return siblings
}

// FindSpouses returns the partners of the individual across all of their
// spouse unions. In each union the individual's own role is decided by
// pointer identity against the husband slot; the opposite role's members are
// the partners. Unions without a recorded partner contribute nothing.
func (t *Tree) FindSpouses(ind *Individual) []Spouse {
	var spouses []Spouse
	for _, u := range t.UnionsWhereParent(ind) {
		counter := RoleHusband
		if containsPointer(u.membersWithRole(RoleHusband), ind.Pointer) {
			counter = RoleWife
		}
		for _, partner := range u.membersWithRole(counter) {
			s := Spouse{Individual: partner, Union: u}
			if u.Marriage != nil {
				s.MarriageDate = u.Marriage.Date
				s.MarriagePlace = u.Marriage.Place
			}
			if u.Divorce != nil {
				s.DivorceDate = u.Divorce.Date
			}
			spouses = append(spouses, s)
		}
	}
	return spouses
}

// ResolveNotes returns the text of every note attached to the individual,
// joined with single spaces. Pointer notes are looked up among the top-level
// NOTE records; references to missing notes are skipped. Inline notes
// contribute their own text. Returns "" when nothing resolves.
func (t *Tree) ResolveNotes(ind *Individual) string {
	if ind == nil {
		return ""
	}
	var texts []string
	for _, ref := range ind.notes {
		value := strings.TrimSpace(ref.Value())
		if isPointer(value) {
			note, ok := t.ResolveNote(value)
			if !ok {
				continue
			}
			texts = append(texts, note.Text())
			continue
		}
		texts = append(texts, newNote(ref).Text())
	}
	return joinNonEmpty(texts, " ")
}

func containsPointer(inds []*Individual, pointer string) bool {
	for _, ind := range inds {
		if ind.Pointer == pointer {
			return true
		}
	}
	return false
}

func displayNames(inds []*Individual) []string {
	names := make([]string, 0, len(inds))
	for _, ind := range inds {
		names = append(names, ind.DisplayName())
	}
	return names
}
