// Package familytree builds a queryable family graph from parsed GEDCOM
// records and answers relationship questions against it.
//
// # Overview
//
// GEDCOM files do not nest people inside families. Individuals (INDI) and
// unions (FAM) are flat top-level records that point at each other:
//
//	0 @I1@ INDI
//	1 NAME John /Smith/
//	1 FAMS @F1@          // John is a spouse in @F1@
//	0 @F1@ FAM
//	1 HUSB @I1@
//	1 CHIL @I3@          // @I3@ is a child of @F1@
//
// New resolves every pointer exactly once and keeps the resolved links on
// the Individual and Union values, so relationship queries are slice reads
// rather than scans of the record list.
//
// # Identity
//
// Pointers are the only stable identity. Display names are not unique and
// LookupByName returns the first individual in file order whose name matches
// exactly. A query for a duplicated name can silently select the wrong
// person; callers that care should check the pointer of the result.
//
// # Traversal
//
// FindPath walks parent→child edges depth first, leftmost child first, in
// record order. Each branch gets its own copy of the path so far, while a
// single visited set is shared by the whole search. The shared set is what
// keeps malformed files with relationship cycles from recursing forever, and
// it also guarantees each individual is expanded at most once per search.
//
// # Usage Example
//
//	doc, err := gedcom.ParseFile("family.ged")
//	if err != nil {
//		return err
//	}
//	tree := familytree.New(doc.Records(), familytree.WithLogger(logger))
//
//	path, err := tree.Lineage("William McCormick", "Jeremy Isaac McCormick")
//	switch {
//	case familytree.IsNotFound(err):
//		// one of the names is not in the file
//	case familytree.IsPathNotFound(err):
//		// both exist, but there is no descent chain between them
//	}
//	fmt.Println(path) // William McCormick → ... → Jeremy Isaac McCormick
//
// # Concurrency
//
// A Tree is never modified after New returns. Any number of goroutines may
// query it concurrently; every FindPath call allocates its own visited set.
package familytree
