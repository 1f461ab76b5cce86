package walker

import "go.yaml.in/yaml/v4"

// Cursor describes the node being visited and offers the mutation
// primitives. A new Cursor is created for every visit.
type Cursor struct {
	// Node is the current value.
	Node *yaml.Node

	// Key is the mapping key of the node, or its decimal index inside a
	// sequence. Empty at the root.
	Key string

	// Index is the position inside a parent sequence, or -1.
	Index int

	// Path holds the keys and indices from the root to this node.
	// Empty at the root.
	Path []string

	// Parent is the containing mapping or sequence. nil at the root.
	Parent *yaml.Node

	// Level is the nesting level, 0 at the root.
	Level int

	w        *Walker
	f        *frame
	deleted  bool
	replaced bool

	slot     Slot
	resolved bool
}

// Replace substitutes the current value with n. The children of n are not
// visited in this walk. Replacing the root changes the tree Walk returns.
func (c *Cursor) Replace(n *yaml.Node) {
	if c.deleted {
		return
	}
	if c.f == nil {
		c.w.root = n
	} else {
		c.f.node.Content[c.f.valueSlot()] = n
	}
	c.Node = n
	c.replaced = true
	c.resolved = false
}

// Delete removes the current entry from its parent. Deleting the root is a
// no-op.
func (c *Cursor) Delete() {
	if c.f == nil || c.gone() {
		return
	}
	c.f.remove()
	c.deleted = true
}

// DeleteParent removes the parent entry from the grandparent. The remaining
// children of the parent are not visited. It is a no-op when the parent is
// the root.
func (c *Cursor) DeleteParent() {
	if c.f == nil || c.f.parent == nil || c.gone() {
		return
	}
	c.f.parent.remove()
	c.f.removed = true
	c.deleted = true
}

// Deleted reports whether the current node was removed by Delete or
// DeleteParent.
func (c *Cursor) Deleted() bool {
	return c.deleted
}

func (c *Cursor) gone() bool {
	return c.deleted || (c.f != nil && c.f.removed)
}

// ParentKey returns the key under which the parent is stored, or "".
func (c *Cursor) ParentKey() string {
	if len(c.Path) < 2 {
		return ""
	}
	return c.Path[len(c.Path)-2]
}

// JSONPath renders the current location, e.g. "$.channels['user/signedup'].publish".
func (c *Cursor) JSONPath() string {
	return c.w.json.String()
}

// IsRoot reports whether the cursor is at the root node.
func (c *Cursor) IsRoot() bool {
	return c.f == nil
}
