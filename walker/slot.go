package walker

import "go.yaml.in/yaml/v4"

//go:generate go tool stringer -type=Slot -trimprefix=Slot -output=slot_string.go

// Slot classifies a node by its structural position in an AsyncAPI
// document. Rule modules dispatch on the slot instead of matching path
// strings.
type Slot int

const (
	SlotOther Slot = iota
	SlotRoot
	// SlotRootField is any top-level field other than tags.
	SlotRootField
	// SlotRootTags is the top-level tags list.
	SlotRootTags
	// SlotChannel is channels/<address>.
	SlotChannel
	// SlotChannelField is channels/<address>/<field> that is not an operation.
	SlotChannelField
	// SlotChannelOperation is channels/<address>/publish or subscribe.
	SlotChannelOperation
	// SlotOperationID is channels/<address>/<verb>/operationId.
	SlotOperationID
	// SlotComponentCollection is components/<collection>.
	SlotComponentCollection
	// SlotComponent is components/<collection>/<name>.
	SlotComponent
	// SlotRef is a $ref string anywhere in the tree.
	SlotRef
)

// Channel operation verbs.
const (
	VerbPublish   = "publish"
	VerbSubscribe = "subscribe"
)

// IsOperationVerb reports whether key names a channel operation.
func IsOperationVerb(key string) bool {
	return key == VerbPublish || key == VerbSubscribe
}

// Slot resolves the structural slot of the current node. The result is
// computed once per cursor.
func (c *Cursor) Slot() Slot {
	if !c.resolved {
		c.slot = ClassifyPath(c.Path, c.Node)
		c.resolved = true
	}
	return c.slot
}

// ClassifyPath returns the slot for a node at path.
func ClassifyPath(path []string, node *yaml.Node) Slot {
	n := len(path)
	if n == 0 {
		return SlotRoot
	}
	if path[n-1] == "$ref" && node != nil && node.Kind == yaml.ScalarNode && node.ShortTag() == "!!str" {
		return SlotRef
	}

	switch path[0] {
	case "channels":
		switch {
		case n == 2:
			return SlotChannel
		case n == 3 && IsOperationVerb(path[2]):
			return SlotChannelOperation
		case n == 3:
			return SlotChannelField
		case n == 4 && IsOperationVerb(path[2]) && path[3] == "operationId":
			return SlotOperationID
		}
	case "components":
		switch n {
		case 2:
			return SlotComponentCollection
		case 3:
			return SlotComponent
		}
	case "tags":
		if n == 1 {
			return SlotRootTags
		}
	}
	if n == 1 {
		return SlotRootField
	}
	return SlotOther
}

// CollectionName returns the collection of a SlotComponent or
// SlotComponentCollection node.
func (c *Cursor) CollectionName() string {
	switch c.Slot() {
	case SlotComponentCollection, SlotComponent:
		return c.Path[1]
	}
	return ""
}
