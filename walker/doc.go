// Package walker provides depth-first traversal of ordered YAML node trees
// with in-place mutation.
//
// # Overview
//
// [Walk] visits every node of a tree, root first, calling a [Visitor] with a
// [Cursor] that describes the node: its key, the path from the root, the
// containing node and the nesting level. The visitor returns an [Action]
// and may mutate the tree through the cursor:
//
//   - [Cursor.Replace] substitutes the current value; the new value's
//     children are not visited in the same walk
//   - [Cursor.Delete] removes the current entry from its parent
//   - [Cursor.DeleteParent] removes the parent entry from the grandparent
//     and stops visiting the parent's remaining children
//
// Deleting sequence items while they are iterated never skips or revisits
// siblings, and entries appended to a mapping during its iteration are
// visited in the same walk.
//
// # Basic Usage
//
//	root = walker.Walk(root, func(c *walker.Cursor) walker.Action {
//	    if c.Key == "x-internal" {
//	        c.DeleteParent()
//	    }
//	    return walker.Continue
//	})
//
// # Post Visitors
//
// [WithPostVisitor] registers a visitor that runs after a node's children,
// which is how bottom-up cleanups such as removing emptied mappings are
// written:
//
//	walker.Walk(root, nil, walker.WithPostVisitor(func(c *walker.Cursor) walker.Action {
//	    if c.Node.Kind == yaml.MappingNode && len(c.Node.Content) == 0 {
//	        c.Delete()
//	    }
//	    return walker.Continue
//	}))
//
// # Slots
//
// [Cursor.Slot] classifies the node by its position in an AsyncAPI document
// ([SlotChannel], [SlotChannelOperation], [SlotComponent], [SlotRef], ...).
// Rule modules switch on the slot rather than comparing path strings.
//
// # JSON Paths
//
// [Cursor.JSONPath] renders the location in JSONPath notation:
//
//	$                                  // Root
//	$.channels['user/signedup']        // Channel
//	$.channels['user/signedup'].publish
//	$.components.schemas.Pet           // Component
//	$.tags[0].name
package walker
