package nodeutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"go.yaml.in/yaml/v4"
)

// WriteJSON writes n to buf as compact JSON, keeping mapping key order.
func WriteJSON(buf *bytes.Buffer, n *yaml.Node) error {
	if n == nil {
		buf.WriteString("null")
		return nil
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			buf.WriteString("null")
			return nil
		}
		return WriteJSON(buf, n.Content[0])

	case yaml.AliasNode:
		return WriteJSON(buf, n.Alias)

	case yaml.MappingNode:
		buf.WriteByte('{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONString(buf, n.Content[i].Value); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := WriteJSON(buf, n.Content[i+1]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil

	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, c := range n.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := WriteJSON(buf, c); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil

	case yaml.ScalarNode:
		return writeScalarJSON(buf, n)

	default:
		return fmt.Errorf("nodeutil: unsupported node kind %v", n.Kind)
	}
}

func writeScalarJSON(buf *bytes.Buffer, n *yaml.Node) error {
	switch n.ShortTag() {
	case TagStr:
		return writeJSONString(buf, n.Value)
	case TagNull:
		buf.WriteString("null")
		return nil
	case TagBool:
		var b bool
		if err := n.Decode(&b); err != nil {
			return writeJSONString(buf, n.Value)
		}
		buf.WriteString(strconv.FormatBool(b))
		return nil
	case TagInt:
		var i int64
		if err := n.Decode(&i); err == nil {
			buf.WriteString(strconv.FormatInt(i, 10))
			return nil
		}
		var u uint64
		if err := n.Decode(&u); err == nil {
			buf.WriteString(strconv.FormatUint(u, 10))
			return nil
		}
		return writeJSONString(buf, n.Value)
	case TagFloat:
		var f float64
		if err := n.Decode(&f); err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return writeJSONString(buf, n.Value)
		}
		buf.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
		return nil
	case "!!timestamp":
		var t time.Time
		if err := n.Decode(&t); err == nil {
			return writeJSONString(buf, t.Format(time.RFC3339Nano))
		}
		return writeJSONString(buf, n.Value)
	default:
		return writeJSONString(buf, n.Value)
	}
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encode appends a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}

// Canonical returns the compact JSON form of n. Two nodes with equal
// canonical forms hold the same value.
func Canonical(n *yaml.Node) string {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, n); err != nil {
		return ""
	}
	return buf.String()
}

// Equal reports whether a and b serialize to the same canonical JSON.
func Equal(a, b *yaml.Node) bool {
	return Canonical(a) == Canonical(b)
}
