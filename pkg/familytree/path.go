package familytree

import (
	"strings"

	"go.uber.org/zap"
)

// PathSeparator joins display names when a Path is rendered.
const PathSeparator = " → "

// Path is a chain of individuals from an ancestor down to a descendant,
// both ends included, each one a child of the one before.
type Path []*Individual

// Names returns the display names along the path.
func (p Path) Names() []string {
	return displayNames(p)
}

// Pointers returns the pointers along the path.
func (p Path) Pointers() []string {
	out := make([]string, len(p))
	for i, ind := range p {
		out[i] = ind.Pointer
	}
	return out
}

func (p Path) String() string {
	return strings.Join(p.Names(), PathSeparator)
}

// FindPath searches depth first for a chain of parent→child edges from
// ancestor to descendant. Unions are expanded in the order of each
// individual's FAMS references and children in CHIL order, and the first
// chain found is returned. It is not necessarily the shortest.
//
// The visited set is shared across all branches of one call, so every
// individual is expanded at most once and relationship cycles terminate.
func (t *Tree) FindPath(ancestor, descendant *Individual) (Path, bool) {
	if ancestor == nil || descendant == nil {
		return nil, false
	}
	visited := make(map[string]struct{})
	return t.findPath(ancestor, descendant, nil, visited, 0)
}

// findPath receives its own copy of path; visited is shared by reference.
func (t *Tree) findPath(current, target *Individual, path Path, visited map[string]struct{}, depth int) (Path, bool) {
	t.logger.Debug("Exploring",
		zap.String("name", current.DisplayName()),
		zap.String("pointer", current.Pointer),
		zap.Int("depth", depth))

	if _, seen := visited[current.Pointer]; seen {
		t.logger.Debug("Already visited, skipping",
			zap.String("pointer", current.Pointer),
			zap.Int("depth", depth))
		return nil, false
	}
	visited[current.Pointer] = struct{}{}

	path = append(path, current)

	if current.Pointer == target.Pointer {
		t.logger.Debug("Found target",
			zap.String("pointer", current.Pointer),
			zap.Int("depth", depth))
		return path, true
	}

	for _, u := range t.UnionsWhereParent(current) {
		for _, child := range u.membersWithRole(RoleChild) {
			branch := make(Path, len(path), len(path)+1)
			copy(branch, path)
			if found, ok := t.findPath(child, target, branch, visited, depth+1); ok {
				return found, true
			}
		}
	}

	t.logger.Debug("No path, backtracking",
		zap.String("pointer", current.Pointer),
		zap.Int("depth", depth))
	return nil, false
}

// Lineage resolves both names and returns the path between them. A name that
// does not resolve yields a *NotFoundError before any search is attempted;
// an exhausted search yields a *PathNotFoundError.
func (t *Tree) Lineage(ancestorName, descendantName string) (Path, error) {
	ancestor, ok := t.LookupByName(ancestorName)
	if !ok {
		return nil, &NotFoundError{Name: ancestorName, Role: "ancestor"}
	}
	descendant, ok := t.LookupByName(descendantName)
	if !ok {
		return nil, &NotFoundError{Name: descendantName, Role: "descendant"}
	}

	path, ok := t.FindPath(ancestor, descendant)
	if !ok {
		return nil, &PathNotFoundError{Ancestor: ancestorName, Descendant: descendantName}
	}
	return path, nil
}
