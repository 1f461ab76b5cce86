package caser

import (
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/apiformat/casing"
	"github.com/erraggy/apiformat/document"
	"github.com/erraggy/apiformat/internal/nodeutil"
	"github.com/erraggy/apiformat/internal/pathutil"
	"github.com/erraggy/apiformat/walker"
)

// CaseFunc converts value to the named style. It must be idempotent.
type CaseFunc func(value, style string) string

// Renames records component renames: collection -> old name -> new name.
type Renames map[string]map[string]string

// Count returns the number of renamed components.
func (r Renames) Count() int {
	n := 0
	for _, m := range r {
		n += len(m)
	}
	return n
}

func (r Renames) record(collection, from, to string) {
	m, ok := r[collection]
	if !ok {
		m = make(map[string]string)
		r[collection] = m
	}
	m[from] = to
}

// Caser rewrites identifiers of a document in the styles of a CasingSet.
type Caser struct {
	// CasingSet selects a style per position.
	CasingSet CasingSet
	// Convert performs the conversion. nil uses casing.Convert.
	Convert CaseFunc
	// Logger receives debug output.
	Logger document.Logger
}

// New creates a Caser for set.
func New(set CasingSet) *Caser {
	return &Caser{CasingSet: set}
}

// ChangeCase returns a copy of doc with identifiers rewritten per set.
func ChangeCase(doc *yaml.Node, set CasingSet) *yaml.Node {
	out, _ := New(set).Apply(doc)
	return out
}

// ChangeCase returns a copy of doc with identifiers rewritten.
func (cs *Caser) ChangeCase(doc *yaml.Node) *yaml.Node {
	out, _ := cs.Apply(doc)
	return out
}

// Apply returns a rewritten copy of doc and the component renames it made.
//
// The first walk renames the entries of the cased component collections.
// The second walk updates everything that refers to them, then rewrites
// operation ids, channel addresses, summaries, descriptions, parameter
// names, schema property names and security requirement keys.
func (cs *Caser) Apply(doc *yaml.Node) (*yaml.Node, Renames) {
	out := nodeutil.Clone(doc)
	renames := Renames{}
	if out == nil || cs.CasingSet.IsEmpty() {
		return out, renames
	}
	log := document.OrNop(cs.Logger)
	convert := cs.Convert
	if convert == nil {
		convert = casing.Convert
		for _, key := range cs.CasingSet.UnknownStyles() {
			log.Warn("unknown casing style; values left unchanged", "position", key, "style", cs.CasingSet[key])
		}
	}
	r := &rewriter{
		set:     cs.CasingSet,
		convert: convert,
		renames: renames,
		present: make(map[string]map[string]bool),
	}

	out = walker.Walk(out, r.visitComponents)
	out = walker.Walk(out, r.visit)

	log.Debug("changed casing",
		"components", renames.Count(),
		"values", r.changed)
	return out, renames
}

type rewriter struct {
	set     CasingSet
	convert CaseFunc
	renames Renames
	// present holds the original names of every cased component.
	present map[string]map[string]bool
	changed int
}

func (r *rewriter) apply(value, key string) (string, bool) {
	style, ok := r.set.style(key)
	if !ok {
		return value, false
	}
	out := r.convert(value, style)
	return out, out != value
}

// visitComponents renames components/<collection>/<name> entries.
func (r *rewriter) visitComponents(c *walker.Cursor) walker.Action {
	switch c.Slot() {
	case walker.SlotRoot:
		return walker.Continue
	case walker.SlotRootField:
		if c.Key == "components" {
			return walker.Continue
		}
	case walker.SlotComponentCollection:
		if ComponentKey(c.Key) != "" {
			return walker.Continue
		}
	case walker.SlotComponent:
		collection := c.CollectionName()
		if r.present[collection] == nil {
			r.present[collection] = make(map[string]bool)
		}
		r.present[collection][c.Key] = true

		name, changed := r.apply(c.Key, r.componentKey(collection, c.Node))
		if changed && !nodeutil.Has(c.Parent, name) {
			nodeutil.RenameKey(c.Parent, c.Key, name)
			r.renames.record(collection, c.Key, name)
		}
	}
	return walker.SkipChildren
}

// componentKey returns the CasingSet key for a component entry. Parameters
// with an "in" location use the location-specific key when it is set.
func (r *rewriter) componentKey(collection string, n *yaml.Node) string {
	if collection == pathutil.CollectionParameters {
		in, _ := nodeutil.StringValue(nodeutil.Get(n, "in"))
		if keys, ok := parameterKeys[in]; ok {
			if _, set := r.set.style(keys.component); set {
				return keys.component
			}
		}
	}
	return ComponentKey(collection)
}

// resolve returns the current name of a referenced component.
func (r *rewriter) resolve(collection, name string) (string, bool) {
	if to, ok := r.renames[collection][name]; ok {
		return to, true
	}
	if r.present[collection][name] || collection == pathutil.CollectionParameters {
		return name, false
	}
	key := ComponentKey(collection)
	if key == "" {
		return name, false
	}
	return r.apply(name, key)
}

func (r *rewriter) visit(c *walker.Cursor) walker.Action {
	switch c.Slot() {
	case walker.SlotRoot:
		return walker.Continue
	case walker.SlotRef:
		r.rewriteRef(c)
		return walker.Continue
	case walker.SlotOperationID:
		r.rewriteValue(c, KeyOperationID)
		return walker.Continue
	case walker.SlotChannel:
		r.rewriteChannel(c)
	}

	if inExample(c.Path) {
		return walker.SkipChildren
	}
	if c.Index < 0 {
		switch c.Key {
		case KeySummary, KeyDescription:
			r.rewriteValue(c, c.Key)
		case KeyProperties:
			if isPropertiesKeyword(c.Path) {
				r.rewriteProperties(c)
			}
		}
	}
	if isParameterObject(c) {
		r.rewriteParameterName(c)
	}
	if c.Index >= 0 && c.ParentKey() == "security" && c.Path[0] != "components" {
		r.rewriteSecurityRequirement(c)
	}
	return walker.Continue
}

func (r *rewriter) rewriteRef(c *walker.Cursor) {
	collection, name, ok := pathutil.ParseRef(c.Node.Value)
	if !ok {
		return
	}
	if to, changed := r.resolve(collection, name); changed {
		c.Node.Value = pathutil.RenameRef(c.Node.Value, collection, to)
		r.changed++
	}
}

func (r *rewriter) rewriteValue(c *walker.Cursor, key string) {
	s, ok := nodeutil.StringValue(c.Node)
	if !ok {
		return
	}
	if out, changed := r.apply(s, key); changed {
		c.Node.Value = out
		r.changed++
	}
}

func (r *rewriter) rewriteChannel(c *walker.Cursor) {
	style, ok := r.set.style(KeyChannels)
	if !ok {
		return
	}
	address := pathutil.MapChannelSegments(c.Key, func(seg string) string {
		return r.convert(seg, style)
	})
	if address != c.Key && !nodeutil.Has(c.Parent, address) {
		nodeutil.RenameKey(c.Parent, c.Key, address)
		r.changed++
	}
}

// rewriteProperties renames the keys of a schema properties mapping and the
// matching entries of the sibling required list.
func (r *rewriter) rewriteProperties(c *walker.Cursor) {
	if !nodeutil.IsMapping(c.Node) {
		return
	}
	renamed := make(map[string]string)
	for i := 0; i+1 < len(c.Node.Content); i += 2 {
		key := c.Node.Content[i]
		name, changed := r.apply(key.Value, KeyProperties)
		if !changed || nodeutil.Has(c.Node, name) {
			continue
		}
		renamed[key.Value] = name
		key.Value = name
		r.changed++
	}
	if len(renamed) == 0 {
		return
	}
	if required := nodeutil.Get(c.Parent, "required"); nodeutil.IsSequence(required) {
		for _, item := range required.Content {
			if to, ok := renamed[item.Value]; ok && nodeutil.IsString(item) {
				item.Value = to
			}
		}
	}
}

func (r *rewriter) rewriteParameterName(c *walker.Cursor) {
	in, _ := nodeutil.StringValue(nodeutil.Get(c.Node, "in"))
	keys, ok := parameterKeys[in]
	if !ok {
		return
	}
	name := nodeutil.Get(c.Node, "name")
	s, ok := nodeutil.StringValue(name)
	if !ok {
		return
	}
	if out, changed := r.apply(s, keys.inline); changed {
		name.Value = out
		r.changed++
	}
}

func (r *rewriter) rewriteSecurityRequirement(c *walker.Cursor) {
	if !nodeutil.IsMapping(c.Node) {
		return
	}
	for i := 0; i+1 < len(c.Node.Content); i += 2 {
		key := c.Node.Content[i]
		to, changed := r.resolve(pathutil.CollectionSecuritySchemes, key.Value)
		if changed && !nodeutil.Has(c.Node, to) {
			key.Value = to
			r.changed++
		}
	}
}

// isParameterObject reports whether the cursor is at a parameter with an
// "in" location: an item of a parameters list or a parameters component.
func isParameterObject(c *walker.Cursor) bool {
	if !nodeutil.IsMapping(c.Node) || !nodeutil.Has(c.Node, "in") {
		return false
	}
	if c.Index >= 0 {
		return c.ParentKey() == pathutil.CollectionParameters
	}
	return c.Slot() == walker.SlotComponent && c.CollectionName() == pathutil.CollectionParameters
}

// trailingProperties counts the "properties" segments at the end of path.
func trailingProperties(path []string) int {
	n := 0
	for i := len(path) - 1; i >= 0 && path[i] == KeyProperties; i-- {
		n++
	}
	return n
}

// isPropertiesKeyword reports whether a "properties" key at the end of
// path is the schema keyword rather than a property named "properties".
func isPropertiesKeyword(path []string) bool {
	return trailingProperties(path)%2 == 1
}

// inExample reports whether path runs through an example value.
func inExample(path []string) bool {
	for i, seg := range path {
		switch seg {
		case "example", "examples", "x-examples":
			if !isPropertiesKeyword(path[:i]) {
				return true
			}
		}
	}
	return false
}
