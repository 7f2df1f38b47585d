package cmd_test

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezerfernandes/codeblockedit/internal/cmd"
	"github.com/ezerfernandes/codeblockedit/internal/config"
)

const startPage = "====== Start ======\n\n<code go main.go>\npackage main\n</code>\n\nText <file>\nnotes\n</file>\n"

type result struct {
	code   int
	stdout string
	stderr string
}

func setup(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "wiki"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "start.txt"), []byte(startPage), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wiki", "locked.txt"), []byte("<code>x</code>"), 0o644))

	cfg := "root: " + dir + "\ncolor: never\nreadonly:\n  - \"wiki:lock*\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(cfg), 0o644))

	return dir
}

func run(t *testing.T, dir, stdin string, args ...string) result {
	t.Helper()

	var stdout, stderr bytes.Buffer

	args = append([]string{"--config", filepath.Join(dir, "config.yaml")}, args...)
	code := cmd.Execute(cmd.BuildInfo{Version: "test"}, args, strings.NewReader(stdin), &stdout, &stderr)

	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func readPage(t *testing.T, dir, name string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)

	return string(data)
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	root := cmd.NewRootCommand(cmd.BuildInfo{})

	for _, name := range []string{"list", "locate", "range", "edit", "preview", "info", "config", "version"} {
		sub, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}
}

func TestConfigPrintsEffectiveSettings(t *testing.T) {
	t.Parallel()

	dir := setup(t)
	res := run(t, dir, "", "config", "--debug")
	require.Equal(t, 0, res.code, res.stderr)

	cfg, err := config.FromYAML([]byte(res.stdout))
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.Root)
	assert.Equal(t, config.ColorNever, cfg.Color)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"wiki:lock*"}, cfg.Readonly)
	assert.Equal(t, config.Default().Extension, cfg.Extension)
}

func TestList(t *testing.T) {
	t.Parallel()

	dir := setup(t)
	res := run(t, dir, "", "list", "start")

	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "INDEX")
	assert.Contains(t, res.stdout, "main.go")
	assert.Contains(t, res.stdout, "codeblock_1")
	assert.Contains(t, res.stdout, "L3-5")

	res = run(t, dir, "", "list", "--lang", "g*", "start")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "codeblock_0")
	assert.NotContains(t, res.stdout, "codeblock_1")
}

func TestLocate(t *testing.T) {
	t.Parallel()

	dir := setup(t)

	res := run(t, dir, "", "locate", "start", "0")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "\npackage main\n", res.stdout)

	res = run(t, dir, "", "locate", "--tags", "start", "1")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "<file>\nnotes\n</file>", res.stdout)

	res = run(t, dir, "", "locate", "--", "start", "-1")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "invalid index")

	res = run(t, dir, "", "locate", "start", "2")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "block not found")
}

func TestRange(t *testing.T) {
	t.Parallel()

	dir := setup(t)
	start := strings.Index(startPage, "\npackage")
	end := strings.Index(startPage, "</code>")

	res := run(t, dir, "", "range", "start", "0")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, fmt.Sprintf("%d-%d\n", start+1, end+1), res.stdout)

	res = run(t, dir, "", "range", "start", "5")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "block not found")
	assert.Empty(t, res.stdout)
}

func TestEditStdin(t *testing.T) {
	t.Parallel()

	dir := setup(t)

	res := run(t, dir, "\nnew notes\n", "edit", "--stdin", "--hid", "codeblock_1", "start", "1")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stderr, "saved start#codeblock_1")

	assert.Equal(t, strings.Replace(startPage, "\nnotes\n", "\nnew notes\n", 1), readPage(t, dir, "start.txt"))
}

func TestEditDropsMalformedAnchor(t *testing.T) {
	t.Parallel()

	dir := setup(t)

	res := run(t, dir, "x", "edit", "--stdin", "--hid", "codeblock_1;drop", "start", "1")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stderr, "saved start\n")
	assert.NotContains(t, res.stderr, "drop")
}

func TestEditDiff(t *testing.T) {
	t.Parallel()

	dir := setup(t)

	res := run(t, dir, "\npackage other\n", "edit", "--stdin", "--diff", "start", "0")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "--- a/start.txt")
	assert.Contains(t, res.stdout, "-package main")
	assert.Contains(t, res.stdout, "+package other")

	assert.Equal(t, startPage, readPage(t, dir, "start.txt"))
}

func TestEditWithEditor(t *testing.T) {
	t.Parallel()

	dir := setup(t)

	res := run(t, dir, "", "edit", "--editor", "echo 'package edited' > {}", "start", "0")
	require.Equal(t, 0, res.code, res.stderr)

	assert.Equal(t,
		strings.Replace(startPage, "\npackage main\n", "package edited\n", 1),
		readPage(t, dir, "start.txt"))
}

func TestEditEditorFails(t *testing.T) {
	t.Parallel()

	dir := setup(t)

	res := run(t, dir, "", "edit", "--editor", "exit 3; : {}", "start", "0")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "editor exited with 3")
	assert.Equal(t, startPage, readPage(t, dir, "start.txt"))
}

func TestEditAppendsPathWithoutPlaceholder(t *testing.T) {
	t.Parallel()

	dir := setup(t)

	res := run(t, dir, "", "edit", "--editor", "cat", "start", "0")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "\npackage main\n", res.stdout, "the block file is passed as the last argument")
	assert.Contains(t, res.stderr, "no changes")
}

func TestEditUnknownBlockEditsWholePage(t *testing.T) {
	t.Parallel()

	dir := setup(t)

	res := run(t, dir, "replaced\n", "edit", "--stdin", "start", "9")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stderr, "block not found")
	assert.Equal(t, "replaced\n", readPage(t, dir, "start.txt"))
}

func TestEditReadonly(t *testing.T) {
	t.Parallel()

	dir := setup(t)

	res := run(t, dir, "y", "edit", "--stdin", "wiki:locked", "0")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "not writable")
	assert.Equal(t, "<code>x</code>", readPage(t, dir, filepath.Join("wiki", "locked.txt")))
}

func TestPreview(t *testing.T) {
	t.Parallel()

	dir := setup(t)

	res := run(t, dir, "\npackage preview\n", "preview", "start", "0")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "<code go main.go>\npackage preview\n</code>", res.stdout)

	res = run(t, dir, "bare", "preview", "start", "7")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "bare", res.stdout)
	assert.Empty(t, res.stderr)

	res = run(t, dir, "\npackage preview\n", "preview", "--html", "start", "0")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, `id="codeblock_0"`)
	assert.Contains(t, res.stdout, "package preview")
}

func TestInfo(t *testing.T) {
	t.Parallel()

	dir := setup(t)

	res := run(t, dir, "", "info", "start")
	require.Equal(t, 0, res.code, res.stderr)
	assert.JSONEq(t, `{"codeblockedit_canedit": true}`, res.stdout)

	res = run(t, dir, "", "info", "wiki:locked")
	require.Equal(t, 0, res.code, res.stderr)
	assert.JSONEq(t, `{"codeblockedit_canedit": false}`, res.stdout)
}

func TestVersion(t *testing.T) {
	t.Parallel()

	res := run(t, t.TempDir(), "", "version")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "version=test")
}
