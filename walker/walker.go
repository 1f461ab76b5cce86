package walker

import (
	"fmt"
	"slices"
	"strconv"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/apiformat/internal/pathutil"
)

// Action controls the walker's behavior after visiting a node.
type Action int

const (
	// Continue continues walking normally, visiting children and siblings.
	Continue Action = iota

	// SkipChildren skips all children of the current node but continues with siblings.
	SkipChildren

	// Stop stops the walk immediately. No more nodes will be visited.
	Stop
)

// IsValid returns true if the action is one of the defined constants.
func (a Action) IsValid() bool {
	return a >= Continue && a <= Stop
}

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case Continue:
		return "Continue"
	case SkipChildren:
		return "SkipChildren"
	case Stop:
		return "Stop"
	default:
		return fmt.Sprintf("Action(%d)", a)
	}
}

// Visitor is called for every node. The cursor is only valid for the
// duration of the call.
type Visitor func(c *Cursor) Action

// DefaultMaxDepth is the default recursion bound.
const DefaultMaxDepth = 512

// Walker holds the configuration of a walk.
type Walker struct {
	post     Visitor
	maxDepth int

	// per-walk state
	visit   Visitor
	root    *yaml.Node
	path    []string
	json    *pathutil.PathBuilder
	stopped bool
}

// Option configures the Walker.
type Option func(*Walker)

// WithPostVisitor sets a visitor called after a node's children have been
// walked. It is not called for nodes whose visitor returned SkipChildren or
// that were deleted.
func WithPostVisitor(fn Visitor) Option {
	return func(w *Walker) { w.post = fn }
}

// WithMaxDepth sets the maximum nesting level whose children are visited.
// Default is 512. If depth is <= 0, the default is kept.
func WithMaxDepth(depth int) Option {
	return func(w *Walker) {
		if depth > 0 {
			w.maxDepth = depth
		}
	}
}

// Walk traverses root depth-first, calling visit for every node, root first.
// It returns the root after all mutations, which differs from the input when
// the visitor replaced the root node.
func Walk(root *yaml.Node, visit Visitor, opts ...Option) *yaml.Node {
	if root == nil {
		return nil
	}
	w := &Walker{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(w)
	}
	w.visit = visit
	w.root = root
	w.json = pathutil.Get()
	defer pathutil.Put(w.json)

	w.visitNode(nil, "", -1, root, 0)
	return w.root
}

// frame is a container whose children are being iterated.
type frame struct {
	node   *yaml.Node
	parent *frame
	// pos is the Content index of the child currently visited: the key
	// index for mappings, the item index for sequences.
	pos int
	// removed is set when this container was deleted from its parent.
	removed bool
	// childGone is set when the child at pos was deleted.
	childGone bool
}

func (w *Walker) visitNode(f *frame, key string, index int, node *yaml.Node, level int) {
	if w.stopped {
		return
	}
	if f != nil {
		w.path = append(w.path, key)
		if index >= 0 {
			w.json.PushIndex(index)
		} else {
			w.json.Push(key)
		}
		defer func() {
			w.path = w.path[:len(w.path)-1]
			w.json.Pop()
		}()
	}

	c := &Cursor{
		Node:  node,
		Key:   key,
		Index: index,
		Path:  slices.Clone(w.path),
		Level: level,
		w:     w,
		f:     f,
	}
	if f != nil {
		c.Parent = f.node
	}

	action := Continue
	if w.visit != nil {
		action = w.visit(c)
	}
	if action == Stop {
		w.stopped = true
		return
	}
	if c.gone() {
		return
	}

	if action == SkipChildren {
		return
	}
	if !c.replaced && level < w.maxDepth {
		cf := &frame{node: c.Node, parent: f}
		w.walkChildren(cf, level+1)
		if w.stopped || cf.removed {
			return
		}
	}

	if w.post != nil {
		if w.post(c) == Stop {
			w.stopped = true
		}
	}
}

func (w *Walker) walkChildren(f *frame, level int) {
	switch f.node.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(f.node.Content); {
			f.pos, f.childGone = i, false
			w.visitNode(f, f.node.Content[i].Value, -1, f.node.Content[i+1], level)
			if w.stopped || f.removed {
				return
			}
			if !f.childGone {
				i += 2
			}
		}
	case yaml.SequenceNode:
		for i := 0; i < len(f.node.Content); {
			f.pos, f.childGone = i, false
			w.visitNode(f, strconv.Itoa(i), i, f.node.Content[i], level)
			if w.stopped || f.removed {
				return
			}
			if !f.childGone {
				i++
			}
		}
	}
}

// remove deletes the child at f.pos from f's container.
func (f *frame) remove() {
	content := f.node.Content
	switch f.node.Kind {
	case yaml.MappingNode:
		f.node.Content = append(content[:f.pos], content[f.pos+2:]...)
	case yaml.SequenceNode:
		f.node.Content = append(content[:f.pos], content[f.pos+1:]...)
	}
	f.childGone = true
}

// valueSlot returns the Content index holding the current child's value.
func (f *frame) valueSlot() int {
	if f.node.Kind == yaml.MappingNode {
		return f.pos + 1
	}
	return f.pos
}
