// Package textdiff renders line-based diffs between two texts.
package textdiff

import (
	"fmt"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Op is the kind of a diff line.
type Op int

const (
	// Equal lines appear in both texts.
	Equal Op = iota
	// Insert lines appear only in the new text.
	Insert
	// Delete lines appear only in the old text.
	Delete
)

// Line is one line of a diff, without its trailing newline.
type Line struct {
	Op   Op
	Text string
}

// DefaultContext is the number of unchanged lines shown around a change.
const DefaultContext = 3

// Lines returns the line diff from a to b.
func Lines(a, b string) []Line {
	dmp := diffpatch.New()
	ra, rb, lineArray := dmp.DiffLinesToRunes(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMainRunes(ra, rb, false), lineArray)

	var out []Line
	for _, d := range diffs {
		op := Equal
		switch d.Type {
		case diffpatch.DiffInsert:
			op = Insert
		case diffpatch.DiffDelete:
			op = Delete
		}
		for _, text := range splitLines(d.Text) {
			out = append(out, Line{Op: op, Text: text})
		}
	}
	return out
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

// Unified renders a unified diff with context unchanged lines around each
// change. It returns "" when the texts are equal.
func Unified(a, b, fromName, toName string, context int) string {
	if a == b {
		return ""
	}
	if context < 0 {
		context = DefaultContext
	}
	lines := Lines(a, b)

	// old and new line numbers before each index
	oldAt := make([]int, len(lines)+1)
	newAt := make([]int, len(lines)+1)
	for i, l := range lines {
		oldAt[i+1], newAt[i+1] = oldAt[i], newAt[i]
		if l.Op != Insert {
			oldAt[i+1]++
		}
		if l.Op != Delete {
			newAt[i+1]++
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- %s\n+++ %s\n", fromName, toName)
	for _, h := range hunks(lines, context) {
		oldStart, oldCount := oldAt[h.start]+1, oldAt[h.end]-oldAt[h.start]
		newStart, newCount := newAt[h.start]+1, newAt[h.end]-newAt[h.start]
		if oldCount == 0 {
			oldStart--
		}
		if newCount == 0 {
			newStart--
		}
		fmt.Fprintf(&sb, "@@ -%d,%d +%d,%d @@\n", oldStart, oldCount, newStart, newCount)
		for _, l := range lines[h.start:h.end] {
			switch l.Op {
			case Insert:
				sb.WriteByte('+')
			case Delete:
				sb.WriteByte('-')
			default:
				sb.WriteByte(' ')
			}
			sb.WriteString(l.Text)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

type hunk struct {
	start, end int
}

// hunks groups changed lines with their context. Changes separated by at
// most 2*context unchanged lines share a hunk.
func hunks(lines []Line, context int) []hunk {
	var out []hunk
	for i, l := range lines {
		if l.Op == Equal {
			continue
		}
		start := max(i-context, 0)
		end := min(i+1+context, len(lines))
		if n := len(out); n > 0 && start <= out[n-1].end {
			out[n-1].end = max(out[n-1].end, end)
			continue
		}
		out = append(out, hunk{start: start, end: end})
	}
	return out
}
