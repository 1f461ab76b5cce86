package filter

import (
	"slices"

	"github.com/erraggy/apiformat/internal/pathutil"
)

// trackedCollections are the component collections whose usage is counted.
var trackedCollections = []string{
	pathutil.CollectionSchemas,
	pathutil.CollectionMessages,
	pathutil.CollectionParameters,
	pathutil.CollectionMessageTraits,
	pathutil.CollectionOperationTraits,
}

// TrackedCollections returns the component collections that support
// unused-component removal.
func TrackedCollections() []string {
	return slices.Clone(trackedCollections)
}

// IsTracked reports whether collection supports unused-component removal.
func IsTracked(collection string) bool {
	return slices.Contains(trackedCollections, collection)
}

// Usage records whether a component is defined and whether it is referenced.
type Usage struct {
	Present bool
	Used    bool
}

// Tracker is the component usage table of a single filter pass.
type Tracker struct {
	tables map[string]*usageTable
}

type usageTable struct {
	names []string
	usage map[string]*Usage
}

// NewTracker creates an empty usage table for every tracked collection.
func NewTracker() *Tracker {
	t := &Tracker{tables: make(map[string]*usageTable, len(trackedCollections))}
	for _, c := range trackedCollections {
		t.tables[c] = &usageTable{usage: make(map[string]*Usage)}
	}
	return t
}

func (t *Tracker) entry(collection, name string) *Usage {
	table, ok := t.tables[collection]
	if !ok {
		return nil
	}
	u, ok := table.usage[name]
	if !ok {
		u = &Usage{}
		table.usage[name] = u
		table.names = append(table.names, name)
	}
	return u
}

// MarkPresent records that components/<collection>/<name> exists.
// Untracked collections are ignored.
func (t *Tracker) MarkPresent(collection, name string) {
	if u := t.entry(collection, name); u != nil {
		u.Present = true
	}
}

// MarkUsed records a reference to components/<collection>/<name>.
// Untracked collections are ignored.
func (t *Tracker) MarkUsed(collection, name string) {
	if u := t.entry(collection, name); u != nil {
		u.Used = true
	}
}

// Lookup returns the usage of a component.
func (t *Tracker) Lookup(collection, name string) (Usage, bool) {
	table, ok := t.tables[collection]
	if !ok {
		return Usage{}, false
	}
	u, ok := table.usage[name]
	if !ok {
		return Usage{}, false
	}
	return *u, true
}

// Total returns the number of distinct names seen in collection.
func (t *Tracker) Total(collection string) int {
	if table, ok := t.tables[collection]; ok {
		return len(table.names)
	}
	return 0
}

// Unused returns the names present but never referenced, in the order
// they were first seen.
func (t *Tracker) Unused(collection string) []string {
	table, ok := t.tables[collection]
	if !ok {
		return nil
	}
	var unused []string
	for _, name := range table.names {
		if u := table.usage[name]; u.Present && !u.Used {
			unused = append(unused, name)
		}
	}
	return unused
}

// UnusedComponents maps a component collection to the names of its
// unreferenced entries.
type UnusedComponents map[string][]string

// Count returns the total number of names.
func (u UnusedComponents) Count() int {
	n := 0
	for _, names := range u {
		n += len(names)
	}
	return n
}

// Contains reports whether collection/name is listed.
func (u UnusedComponents) Contains(collection, name string) bool {
	return slices.Contains(u[collection], name)
}

// merge returns a new set holding the entries of u followed by the new
// entries of other.
func (u UnusedComponents) merge(other UnusedComponents) UnusedComponents {
	out := make(UnusedComponents, len(u)+len(other))
	for c, names := range u {
		out[c] = slices.Clone(names)
	}
	for c, names := range other {
		for _, name := range names {
			if !slices.Contains(out[c], name) {
				out[c] = append(out[c], name)
			}
		}
	}
	return out
}
