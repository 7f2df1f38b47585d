// Package diff renders unified diffs of a page before and after an edit.
package diff

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

const defaultContext = 3

// Unified returns a unified diff from a to b, or an empty string when they
// are equal. A non-positive context means the default of three lines.
func Unified(name, a, b string, context int) (string, error) {
	if a == b {
		return "", nil
	}

	if context <= 0 {
		context = defaultContext
	}

	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        splitLines(a),
		B:        splitLines(b),
		FromFile: "a/" + name,
		ToFile:   "b/" + name,
		Context:  context,
	})
}

// splitLines keeps line terminators and terminates a final partial line, so
// that every hunk line ends in exactly one newline.
func splitLines(s string) []string {
	if len(s) == 0 {
		return nil
	}

	lines := strings.SplitAfter(s, "\n")
	if last := len(lines) - 1; len(lines[last]) == 0 {
		lines = lines[:last]
	} else {
		lines[last] += "\n"
	}

	return lines
}
