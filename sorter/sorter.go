package sorter

import (
	_ "embed"
	"fmt"
	"maps"
	"slices"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/apiformat/document"
	"github.com/erraggy/apiformat/internal/nodeutil"
	"github.com/erraggy/apiformat/walker"
)

// RootKey is the sort set entry that orders the top-level keys.
const RootKey = "root"

// SortSet maps a key name to the priority order of its child keys.
type SortSet map[string][]string

//go:embed defaultSort.yaml
var defaultSortYAML []byte

// DefaultSortSet returns the built-in AsyncAPI 2.x priority lists.
func DefaultSortSet() SortSet {
	set, err := ParseSortSet(defaultSortYAML)
	if err != nil {
		panic(fmt.Sprintf("sorter: invalid embedded default sort set: %v", err))
	}
	return set
}

// ParseSortSet reads a sort set from YAML or JSON.
func ParseSortSet(data []byte) (SortSet, error) {
	var set SortSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("sorter: invalid sort set: %w", err)
	}
	if set == nil {
		set = SortSet{}
	}
	return set, nil
}

// Clone returns a deep copy of the sort set.
func (s SortSet) Clone() SortSet {
	out := make(SortSet, len(s))
	for k, v := range s {
		out[k] = slices.Clone(v)
	}
	return out
}

// Keys returns the configured key names in lexical order.
func (s SortSet) Keys() []string {
	return slices.Sorted(maps.Keys(s))
}

// Sorter reorders mapping keys by priority.
type Sorter struct {
	// SortSet holds the priority lists. nil uses DefaultSortSet.
	SortSet SortSet
	// NoSort disables sorting; Sort then only copies the document.
	NoSort bool
	// Logger receives debug output. nil disables logging.
	Logger document.Logger
}

// New creates a Sorter for sortSet.
func New(sortSet SortSet) *Sorter {
	return &Sorter{SortSet: sortSet}
}

// Sort returns a sorted deep copy of doc using sortSet.
func Sort(doc *yaml.Node, sortSet SortSet) *yaml.Node {
	return New(sortSet).Sort(doc)
}

// Sort returns a sorted deep copy of doc.
//
// Every mapping or sequence stored under a key listed in the sort set is
// sorted: sequences have each mapping element sorted; channels, schemas and
// properties collections (outside properties and payload) have each entry
// sorted; anything else has its own keys sorted unless it sits directly
// under components. The root mapping of an AsyncAPI document (one with an
// asyncapi key) is sorted last with the "root" list.
func (s *Sorter) Sort(doc *yaml.Node) *yaml.Node {
	out := nodeutil.Clone(doc)
	if s.NoSort || out == nil {
		return out
	}
	set := s.SortSet
	if set == nil {
		set = DefaultSortSet()
	}
	log := document.OrNop(s.Logger)

	sorted := 0
	out = walker.Walk(out, func(c *walker.Cursor) walker.Action {
		if c.IsRoot() {
			return walker.Continue
		}
		priority, ok := set[c.Key]
		if !ok {
			return walker.Continue
		}

		switch {
		case nodeutil.IsSequence(c.Node):
			for _, item := range c.Node.Content {
				if nodeutil.IsMapping(item) {
					SortKeys(item, priority)
				}
			}
			sorted++
		case !nodeutil.IsMapping(c.Node):
		case isCollectionKey(c.Key) && !isSchemaContainer(c.ParentKey()):
			for i := 1; i < len(c.Node.Content); i += 2 {
				if nodeutil.IsMapping(c.Node.Content[i]) {
					SortKeys(c.Node.Content[i], priority)
				}
			}
			sorted++
		case c.ParentKey() != "components":
			SortKeys(c.Node, priority)
			sorted++
		}
		return walker.Continue
	})

	if priority, ok := set[RootKey]; ok && nodeutil.Has(out, "asyncapi") {
		SortKeys(out, priority)
	}
	log.Debug("sorted document", "nodes", sorted)
	return out
}

func isCollectionKey(key string) bool {
	return key == "channels" || key == "schemas" || key == "properties"
}

func isSchemaContainer(key string) bool {
	return key == "properties" || key == "payload"
}

// Compare orders a and b by priority: listed keys first in list order,
// unlisted keys after them in ascending lexical order.
func Compare(priority []string, a, b string) int {
	if a == b {
		return 0
	}
	ia, ib := slices.Index(priority, a), slices.Index(priority, b)
	switch {
	case ia >= 0 && ib >= 0:
		return ia - ib
	case ia >= 0:
		return -1
	case ib >= 0:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

// SortKeys stably reorders the entries of mapping m by priority.
func SortKeys(m *yaml.Node, priority []string) {
	if !nodeutil.IsMapping(m) {
		return
	}
	pairs := nodeutil.Pairs(m)
	slices.SortStableFunc(pairs, func(a, b nodeutil.Pair) int {
		return Compare(priority, a.Key.Value, b.Key.Value)
	})
	nodeutil.SetPairs(m, pairs)
}
