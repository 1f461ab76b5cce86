package sorter

import (
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/apiformat/internal/nodeutil"
)

// SortComponents returns a deep copy of doc in which the entries of each
// listed components/<collection> mapping are ordered alphabetically by name.
func SortComponents(doc *yaml.Node, collections []string) *yaml.Node {
	out := nodeutil.Clone(doc)
	components := nodeutil.Get(out, "components")
	for _, name := range collections {
		SortKeys(nodeutil.Get(components, name), nil)
	}
	return out
}
