package filter

import (
	"slices"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/apiformat/internal/nodeutil"
	"github.com/erraggy/apiformat/walker"
)

// keepEmptyUnder names the parent key whose empty objects survive cleanup:
// an empty security requirement means "no authentication".
const keepEmptyUnder = "security"

// cleanup deletes the listed unused components and the strip flags, then
// removes objects left empty. It returns the components it deleted.
func (p *pass) cleanup(doc *yaml.Node, strip UnusedComponents) (*yaml.Node, UnusedComponents) {
	removed := UnusedComponents{}

	pre := func(c *walker.Cursor) walker.Action {
		if c.IsRoot() {
			return walker.Continue
		}
		if c.Slot() == walker.SlotComponent {
			collection := c.CollectionName()
			if strip.Contains(collection, c.Key) {
				c.Delete()
				removed[collection] = append(removed[collection], c.Key)
				return walker.Continue
			}
		}
		if c.Index < 0 && slices.Contains(p.fs.StripFlags, c.Key) {
			c.Delete()
		}
		return walker.Continue
	}

	post := func(c *walker.Cursor) walker.Action {
		if !c.IsRoot() && nodeutil.IsMapping(c.Node) && len(c.Node.Content) == 0 && c.ParentKey() != keepEmptyUnder {
			c.Delete()
		}
		return walker.Continue
	}

	return walker.Walk(doc, pre, walker.WithPostVisitor(post)), removed
}
