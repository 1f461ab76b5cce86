package nodeutil

import (
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/apiformat/apierrors"
)

// Clone returns a deep copy of n. Alias targets are cloned once per alias.
func Clone(n *yaml.Node) *yaml.Node {
	if n == nil {
		return nil
	}
	out := *n
	if n.Alias != nil {
		out.Alias = Clone(n.Alias)
	}
	if n.Content != nil {
		out.Content = make([]*yaml.Node, len(n.Content))
		for i, c := range n.Content {
			out.Content[i] = Clone(c)
		}
	}
	return &out
}

// DefaultMaxExpandedNodes bounds the size of a tree after alias expansion.
const DefaultMaxExpandedNodes = 10_000_000

// Normalize unwraps document nodes and expands aliases and merge keys ("<<")
// so the returned tree only contains mapping, sequence and scalar nodes.
// maxNodes bounds the expanded size; zero or negative uses DefaultMaxExpandedNodes.
func Normalize(n *yaml.Node, maxNodes int) (*yaml.Node, error) {
	if maxNodes <= 0 {
		maxNodes = DefaultMaxExpandedNodes
	}
	for n != nil && n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil, nil
		}
		n = n.Content[0]
	}
	if n == nil {
		return nil, nil
	}
	e := &expander{limit: maxNodes}
	out := e.expand(n)
	if e.exceeded {
		return nil, &apierrors.ResourceLimitError{
			ResourceType: "alias_nodes",
			Limit:        int64(maxNodes),
			Message:      "document expands past the node limit",
		}
	}
	return out, nil
}

type expander struct {
	limit    int
	count    int
	exceeded bool
}

func (e *expander) expand(n *yaml.Node) *yaml.Node {
	e.count++
	if e.count > e.limit {
		e.exceeded = true
	}
	if e.exceeded || n == nil {
		return n
	}

	switch n.Kind {
	case yaml.AliasNode:
		return e.expand(n.Alias)
	case yaml.MappingNode:
		out := *n
		out.Anchor = ""
		out.Content = make([]*yaml.Node, 0, len(n.Content))
		var merged []*yaml.Node
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.Kind == yaml.ScalarNode && k.ShortTag() == "!!merge" {
				merged = append(merged, e.mergeSources(v)...)
				continue
			}
			out.Content = append(out.Content, e.expand(k), e.expand(v))
		}
		for _, src := range merged {
			for i := 0; i+1 < len(src.Content); i += 2 {
				if !Has(&out, src.Content[i].Value) {
					out.Content = append(out.Content, src.Content[i], src.Content[i+1])
				}
			}
		}
		return &out
	case yaml.SequenceNode:
		out := *n
		out.Anchor = ""
		out.Content = make([]*yaml.Node, len(n.Content))
		for i, c := range n.Content {
			out.Content[i] = e.expand(c)
		}
		return &out
	default:
		out := *n
		out.Anchor = ""
		return &out
	}
}

// mergeSources returns the expanded mappings referenced by a merge key value.
func (e *expander) mergeSources(v *yaml.Node) []*yaml.Node {
	v = e.expand(v)
	switch {
	case IsMapping(v):
		return []*yaml.Node{v}
	case IsSequence(v):
		var out []*yaml.Node
		for _, c := range v.Content {
			if IsMapping(c) {
				out = append(out, c)
			}
		}
		return out
	}
	return nil
}

// ResetStyle clears presentation styles recursively. Scalars keep their
// tags, so quoting is still applied where a plain value would change type.
func ResetStyle(n *yaml.Node) {
	if n == nil {
		return
	}
	n.Style = 0
	for _, c := range n.Content {
		ResetStyle(c)
	}
}
