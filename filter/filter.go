package filter

import (
	"errors"
	"slices"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/apiformat/document"
	"github.com/erraggy/apiformat/internal/nodeutil"
	"github.com/erraggy/apiformat/walker"
)

// MaxUnusedDepth bounds the unused-component loop: after the first pass at
// most MaxUnusedDepth further passes run.
const MaxUnusedDepth = 10

// MarkerFlag marks an object for removal. It is always treated as a flag.
const MarkerFlag = "x-apiformat-filter"

// tagGroupsKey holds tag groups; a matching flag value marks the group
// instead of removing it directly.
const tagGroupsKey = "x-tagGroups"

// State is carried from one filter pass to the next.
type State struct {
	// Depth is the number of passes already run.
	Depth int
	// Unused accumulates the removed unused components.
	Unused UnusedComponents
}

// PassResult describes a single filter pass.
type PassResult struct {
	// Unused lists, per tracked collection, the components nothing
	// referenced during this pass.
	Unused UnusedComponents
	// Removed counts the unused components deleted by this pass.
	Removed int
	// Next is the state for the following pass.
	Next State
}

// Result contains the outcome of Filter.
type Result struct {
	// Document is the filtered copy.
	Document *yaml.Node
	// UnusedComponents lists the removed unused components per collection.
	UnusedComponents UnusedComponents
	// Passes is the number of filter passes run.
	Passes int
	// Converged is false when the pass limit stopped the loop while the
	// last pass was still removing components.
	Converged bool
}

// RemovedCount returns the number of unused components removed.
func (r *Result) RemovedCount() int {
	return r.UnusedComponents.Count()
}

// Filterer removes document parts selected by a FilterSet.
type Filterer struct {
	// FilterSet holds the rules. nil filters nothing but still cleans up
	// empty objects.
	FilterSet *FilterSet
	// MaxDepth overrides MaxUnusedDepth when positive.
	MaxDepth int
	// Logger receives per-pass debug output and the convergence warning.
	Logger document.Logger
}

// New creates a Filterer for fs.
func New(fs *FilterSet) *Filterer {
	return &Filterer{FilterSet: fs}
}

// Filter applies fs to a copy of doc until no unused component is left
// to remove or the pass limit is reached.
func Filter(doc *yaml.Node, fs *FilterSet) (*Result, error) {
	return New(fs).Filter(doc)
}

// FilterPass runs a single filter pass over a copy of doc.
func FilterPass(doc *yaml.Node, fs *FilterSet, state State) (*yaml.Node, PassResult) {
	return New(fs).Pass(doc, state)
}

// Filter applies the filter set to a copy of doc.
func (f *Filterer) Filter(doc *yaml.Node) (*Result, error) {
	if doc == nil {
		return nil, errors.New("filter: nil document")
	}
	if err := f.FilterSet.Validate(); err != nil {
		return nil, err
	}
	log := document.OrNop(f.Logger)
	limit := f.MaxDepth
	if limit <= 0 {
		limit = MaxUnusedDepth
	}

	result := &Result{}
	state := State{}
	out := doc
	for {
		next, pr := f.Pass(out, state)
		out = next
		result.Passes++
		log.Debug("filter pass complete",
			"pass", result.Passes,
			"unused", pr.Unused.Count(),
			"removed", pr.Removed)

		depth := state.Depth
		state = pr.Next
		if pr.Removed == 0 {
			result.Converged = true
			break
		}
		if depth >= limit {
			log.Warn("unused component removal stopped before converging",
				"passes", result.Passes,
				"limit", limit)
			break
		}
	}

	result.Document = out
	result.UnusedComponents = state.Unused
	if result.UnusedComponents == nil {
		result.UnusedComponents = UnusedComponents{}
	}
	return result, nil
}

// Pass runs one filter walk and one cleanup walk over a copy of doc.
func (f *Filterer) Pass(doc *yaml.Node, state State) (*yaml.Node, PassResult) {
	fs := f.FilterSet
	if fs == nil {
		fs = &FilterSet{}
	}
	p := &pass{
		fs:      fs,
		flags:   append(slices.Clone(fs.Flags), MarkerFlag),
		tracker: NewTracker(),
	}

	out := walker.Walk(nodeutil.Clone(doc), p.visit)
	p.countUsage(out)

	unused := UnusedComponents{}
	strip := UnusedComponents{}
	for _, c := range trackedCollections {
		names := p.tracker.Unused(c)
		if len(names) == 0 {
			continue
		}
		unused[c] = names
		if slices.Contains(fs.UnusedComponents, c) {
			strip[c] = names
		}
	}

	out, removed := p.cleanup(out, strip)
	return out, PassResult{
		Unused:  unused,
		Removed: removed.Count(),
		Next: State{
			Depth:  state.Depth + 1,
			Unused: state.Unused.merge(removed),
		},
	}
}
