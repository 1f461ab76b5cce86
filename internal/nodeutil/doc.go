// Package nodeutil provides helpers for working with ordered *yaml.Node trees:
// mapping lookup and mutation that keep key order, deep cloning, alias
// expansion and canonical JSON serialization for value comparison.
package nodeutil
