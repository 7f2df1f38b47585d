// Package preview prepares edited block content for rendering.
package preview

import "github.com/ezerfernandes/codeblockedit/internal/block"

// Wrap surrounds edited with the delimiters captured in m, so that a preview
// of a single block renders as a block rather than as bare text. A nil match
// leaves edited unchanged.
func Wrap(edited string, m *block.Match) string {
	if m == nil || len(m.OpenTag) == 0 || len(m.CloseTag) == 0 {
		return edited
	}

	return m.OpenTag + edited + m.CloseTag
}
