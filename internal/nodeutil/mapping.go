package nodeutil

import "go.yaml.in/yaml/v4"

// Tags used when building nodes.
const (
	TagStr   = "!!str"
	TagBool  = "!!bool"
	TagInt   = "!!int"
	TagFloat = "!!float"
	TagNull  = "!!null"
	TagMap   = "!!map"
	TagSeq   = "!!seq"
)

// String creates a string scalar node.
func String(value string) *yaml.Node {
	n := &yaml.Node{}
	n.SetString(value)
	return n
}

// Scalar creates a scalar node with an explicit tag.
func Scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

// Bool creates a boolean scalar node.
func Bool(v bool) *yaml.Node {
	if v {
		return Scalar(TagBool, "true")
	}
	return Scalar(TagBool, "false")
}

// Mapping creates a mapping node from alternating key/value nodes.
func Mapping(content ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: TagMap, Content: content}
}

// Sequence creates a sequence node.
func Sequence(items ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: TagSeq, Content: items}
}

// IsMapping reports whether n is a mapping node.
func IsMapping(n *yaml.Node) bool {
	return n != nil && n.Kind == yaml.MappingNode
}

// IsSequence reports whether n is a sequence node.
func IsSequence(n *yaml.Node) bool {
	return n != nil && n.Kind == yaml.SequenceNode
}

// IsScalar reports whether n is a scalar node.
func IsScalar(n *yaml.Node) bool {
	return n != nil && n.Kind == yaml.ScalarNode
}

// IsString reports whether n is a string scalar.
func IsString(n *yaml.Node) bool {
	return IsScalar(n) && n.ShortTag() == TagStr
}

// StringValue returns the value of a string scalar.
func StringValue(n *yaml.Node) (string, bool) {
	if !IsString(n) {
		return "", false
	}
	return n.Value, true
}

// IndexOf returns the position of key's key node in m.Content, or -1.
func IndexOf(m *yaml.Node, key string) int {
	if !IsMapping(m) {
		return -1
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return i
		}
	}
	return -1
}

// Get returns the value node stored under key, or nil.
func Get(m *yaml.Node, key string) *yaml.Node {
	if i := IndexOf(m, key); i >= 0 {
		return m.Content[i+1]
	}
	return nil
}

// GetPath follows a sequence of mapping keys from m.
func GetPath(m *yaml.Node, keys ...string) *yaml.Node {
	for _, k := range keys {
		m = Get(m, k)
		if m == nil {
			return nil
		}
	}
	return m
}

// Has reports whether m contains key.
func Has(m *yaml.Node, key string) bool {
	return IndexOf(m, key) >= 0
}

// Set stores value under key, replacing an existing value in place or
// appending a new entry at the end.
func Set(m *yaml.Node, key string, value *yaml.Node) {
	if i := IndexOf(m, key); i >= 0 {
		m.Content[i+1] = value
		return
	}
	m.Content = append(m.Content, String(key), value)
}

// Delete removes key from m and reports whether it was present.
func Delete(m *yaml.Node, key string) bool {
	i := IndexOf(m, key)
	if i < 0 {
		return false
	}
	m.Content = append(m.Content[:i], m.Content[i+2:]...)
	return true
}

// RenameKey changes the key of an entry without moving it.
func RenameKey(m *yaml.Node, from, to string) bool {
	i := IndexOf(m, from)
	if i < 0 {
		return false
	}
	m.Content[i].Value = to
	return true
}

// Keys returns the keys of m in order.
func Keys(m *yaml.Node) []string {
	if !IsMapping(m) {
		return nil
	}
	keys := make([]string, 0, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		keys = append(keys, m.Content[i].Value)
	}
	return keys
}

// Pairs returns key/value pairs of m in order.
func Pairs(m *yaml.Node) []Pair {
	if !IsMapping(m) {
		return nil
	}
	pairs := make([]Pair, 0, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		pairs = append(pairs, Pair{Key: m.Content[i], Value: m.Content[i+1]})
	}
	return pairs
}

// SetPairs replaces the content of m with pairs.
func SetPairs(m *yaml.Node, pairs []Pair) {
	content := make([]*yaml.Node, 0, len(pairs)*2)
	for _, p := range pairs {
		content = append(content, p.Key, p.Value)
	}
	m.Content = content
}

// Pair is one mapping entry.
type Pair struct {
	Key   *yaml.Node
	Value *yaml.Node
}

// IsEmpty reports whether n is a mapping or sequence without entries.
func IsEmpty(n *yaml.Node) bool {
	return (IsMapping(n) || IsSequence(n)) && len(n.Content) == 0
}
