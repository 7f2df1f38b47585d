// Package anchor builds and validates the element ids used to scroll back to a
// block after it has been edited.
package anchor

import (
	"regexp"
	"strconv"
)

// Prefix starts every block anchor.
const Prefix = "codeblock_"

var reAnchor = regexp.MustCompile(`^` + Prefix + `[0-9]+$`)

// For returns the anchor of the block with the given ordinal.
func For(index int) string {
	return Prefix + strconv.Itoa(index)
}

// Valid reports whether id has the exact shape of a block anchor.
func Valid(id string) bool {
	return reAnchor.MatchString(id)
}

// Sanitize returns id when it is a valid anchor and an empty string otherwise.
func Sanitize(id string) string {
	if Valid(id) {
		return id
	}

	return ""
}
