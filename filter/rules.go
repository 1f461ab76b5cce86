package filter

import (
	"slices"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/apiformat/internal/nodeutil"
	"github.com/erraggy/apiformat/internal/pathutil"
	"github.com/erraggy/apiformat/walker"
)

// commentPrefix starts a markdown comment line inside a description.
const commentPrefix = "[comment]: <>"

// pass holds the per-walk state of a filter pass.
type pass struct {
	fs      *FilterSet
	flags   []string
	tracker *Tracker
}

// visit applies the rules to one node. Rules run in order and stop as soon
// as the node is removed.
func (p *pass) visit(c *walker.Cursor) walker.Action {
	if c.IsRoot() {
		return walker.Continue
	}
	if p.removeStructural(c) || p.removeInverse(c) || p.removeFlagValues(c) {
		return walker.Continue
	}
	p.maintainText(c)
	return walker.Continue
}

// countUsage fills the usage table from the tree left by the rule walk, so
// a $ref inside a removed object does not keep its target alive. Values of
// strip flags are skipped because cleanup deletes them.
func (p *pass) countUsage(doc *yaml.Node) {
	walker.Walk(doc, func(c *walker.Cursor) walker.Action {
		if c.IsRoot() {
			return walker.Continue
		}
		if c.Index < 0 && slices.Contains(p.fs.StripFlags, c.Key) {
			return walker.SkipChildren
		}
		p.track(c)
		return walker.Continue
	})
}

func (p *pass) track(c *walker.Cursor) {
	switch c.Slot() {
	case walker.SlotComponent:
		p.tracker.MarkPresent(c.CollectionName(), c.Key)
	case walker.SlotRef:
		collection, name, ok := pathutil.ParseRef(c.Node.Value)
		if !ok || isSelfRef(c.Path, collection, name) {
			return
		}
		p.tracker.MarkUsed(collection, name)
	}
}

// isSelfRef reports whether a $ref at path points to the component that
// contains it.
func isSelfRef(path []string, collection, name string) bool {
	return len(path) > 3 && path[0] == "components" && path[1] == collection && path[2] == name
}

// fieldKey returns the mapping key of the node, or "" for sequence items.
func fieldKey(c *walker.Cursor) string {
	if c.Index >= 0 {
		return ""
	}
	return c.Key
}

func (p *pass) removeStructural(c *walker.Cursor) bool {
	key := fieldKey(c)
	if key == "" {
		return false
	}
	if slices.Contains(p.fs.Operations, key) {
		c.Delete()
		return true
	}
	if key == "tags" && nodeutil.IsSequence(c.Node) {
		if c.Slot() == walker.SlotRootTags {
			p.filterRootTags(c.Node, func(name string) bool {
				return !slices.Contains(p.fs.Tags, name)
			})
		} else if hasAnyTag(c.Node, p.fs.Tags) {
			c.DeleteParent()
			return c.Deleted()
		}
	}
	if slices.Contains(p.flags, key) {
		c.DeleteParent()
		return c.Deleted()
	}
	if key == "operationId" && nodeutil.IsScalar(c.Node) && slices.Contains(p.fs.OperationIDs, c.Node.Value) {
		c.DeleteParent()
		return c.Deleted()
	}
	return false
}

func (p *pass) removeInverse(c *walker.Cursor) bool {
	fs := p.fs
	if c.Slot() == walker.SlotChannelOperation {
		if len(fs.InverseOperations) > 0 && !slices.Contains(fs.InverseOperations, c.Key) {
			c.Delete()
			return true
		}
		if len(fs.InverseOperationIDs) > 0 {
			id, ok := nodeutil.StringValue(nodeutil.Get(c.Node, "operationId"))
			if !ok || !slices.Contains(fs.InverseOperationIDs, id) {
				c.Delete()
				return true
			}
		}
		if len(fs.InverseTags) > 0 && !hasAnyTag(nodeutil.Get(c.Node, "tags"), fs.InverseTags) {
			c.Delete()
			return true
		}
		return false
	}

	if len(fs.InverseTags) == 0 || fieldKey(c) != "tags" || !nodeutil.IsSequence(c.Node) {
		return false
	}
	if c.Slot() == walker.SlotRootTags {
		p.filterRootTags(c.Node, func(name string) bool {
			return slices.Contains(fs.InverseTags, name)
		})
		return false
	}
	if !hasAnyTag(c.Node, fs.InverseTags) {
		c.DeleteParent()
		return c.Deleted()
	}
	return false
}

func (p *pass) removeFlagValues(c *walker.Cursor) bool {
	key := fieldKey(c)
	if key == "" {
		return false
	}
	for _, fv := range p.fs.FlagValues {
		if !fv.Matches(key, c.Node) {
			continue
		}
		if n := len(c.Path); n >= 3 && c.Path[n-3] == tagGroupsKey {
			nodeutil.Set(c.Parent, MarkerFlag, nodeutil.Bool(true))
			return false
		}
		c.DeleteParent()
		return c.Deleted()
	}
	return false
}

// filterRootTags keeps the tag definitions for which keep returns true and
// that carry none of the configured flags.
func (p *pass) filterRootTags(tags *yaml.Node, keep func(name string) bool) {
	kept := tags.Content[:0]
	for _, item := range tags.Content {
		if keep(tagName(item)) && !hasFlag(item, p.flags) {
			kept = append(kept, item)
		}
	}
	clear(tags.Content[len(kept):])
	tags.Content = kept
}

func (p *pass) maintainText(c *walker.Cursor) {
	key := fieldKey(c)
	if key != "description" && key != "summary" && key != "url" {
		return
	}
	s, ok := nodeutil.StringValue(c.Node)
	if !ok {
		return
	}
	out := s
	if key == "description" {
		out = stripComments(out)
	}
	for _, r := range p.fs.TextReplace {
		if r.SearchFor != "" {
			out = strings.ReplaceAll(out, r.SearchFor, r.ReplaceWith)
		}
	}
	if out != s {
		c.Node.Value = out
	}
}

// stripComments drops "[comment]: <>" lines from a multi-line text.
func stripComments(s string) string {
	if !strings.Contains(s, "\n") {
		return s
	}
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if !strings.HasPrefix(strings.TrimSpace(line), commentPrefix) {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// tagName returns the name of a tag given as a string or as {name: ...}.
func tagName(n *yaml.Node) string {
	if nodeutil.IsMapping(n) {
		n = nodeutil.Get(n, "name")
	}
	if s, ok := nodeutil.StringValue(n); ok {
		return s
	}
	return ""
}

// hasAnyTag reports whether the tags sequence names one of list.
func hasAnyTag(tags *yaml.Node, list []string) bool {
	if !nodeutil.IsSequence(tags) || len(list) == 0 {
		return false
	}
	return slices.ContainsFunc(tags.Content, func(item *yaml.Node) bool {
		name := tagName(item)
		return name != "" && slices.Contains(list, name)
	})
}

// hasFlag reports whether mapping n has one of the flag keys.
func hasFlag(n *yaml.Node, flags []string) bool {
	return slices.ContainsFunc(flags, func(flag string) bool {
		return nodeutil.Has(n, flag)
	})
}
