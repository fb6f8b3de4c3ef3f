// Package archive stores computed lineages in Redis so that paths found
// in a family tree can be listed and revisited later without re-reading the
// GEDCOM file.
//
// # Redis Schema
//
// Each lineage is a hash at genaialogy:{instance_name}:lineage:{uuid} with
// the fields id, ancestor, descendant, names, pointers, source_file and
// created_at_ms. The names and pointers fields hold JSON arrays.
//
// Instance names partition one Redis server between several trees.
//
// # Usage Example
//
//	path, err := tree.Lineage("William McCormick", "Jeremy Isaac McCormick")
//	if err != nil {
//		return err
//	}
//
//	client, err := archive.NewClientFromURL("redis://localhost:6379", "default")
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	l := archive.NewLineage(path, "William McCormick", "Jeremy Isaac McCormick", "family.ged")
//	if err := client.Save(ctx, l); err != nil {
//		return err
//	}
package archive
