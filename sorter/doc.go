// Package sorter orders the keys of API documents by configurable priority
// lists.
//
// A [SortSet] maps a key name to the preferred order of the keys found
// below it. Listed keys come first, in list order; every other key follows
// in ascending lexical order. Sorting is stable and never adds or removes
// entries.
//
//	set := sorter.DefaultSortSet()
//	set["info"] = []string{"title", "version"}
//	sorted := sorter.Sort(root, set)
//
// [SortComponents] additionally orders component names alphabetically
// within selected collections.
package sorter
