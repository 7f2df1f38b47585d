package diff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezerfernandes/codeblockedit/internal/diff"
)

func TestUnified(t *testing.T) {
	t.Parallel()

	before := "title\n<code>\nold\n</code>\n"
	after := "title\n<code>\nnew\n</code>\n"

	got, err := diff.Unified("wiki/page.txt", before, after, 1)
	require.NoError(t, err)

	assert.Contains(t, got, "--- a/wiki/page.txt\n")
	assert.Contains(t, got, "+++ b/wiki/page.txt\n")
	assert.Contains(t, got, "-old\n")
	assert.Contains(t, got, "+new\n")
	assert.NotContains(t, got, " title\n", "context is limited to one line")
}

func TestUnifiedEqual(t *testing.T) {
	t.Parallel()

	got, err := diff.Unified("p", "same", "same", 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUnifiedMissingFinalNewline(t *testing.T) {
	t.Parallel()

	got, err := diff.Unified("p", "a\nb", "a\nc", 0)
	require.NoError(t, err)

	assert.Contains(t, got, "-b\n")
	assert.Contains(t, got, "+c\n")
}
