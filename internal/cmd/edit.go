package cmd

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	"github.com/ezerfernandes/codeblockedit/internal/block"
	"github.com/ezerfernandes/codeblockedit/internal/diff"
	"github.com/ezerfernandes/codeblockedit/internal/logging"
	"github.com/ezerfernandes/codeblockedit/internal/request"
	"github.com/ezerfernandes/codeblockedit/internal/span"
)

//go:embed help/edit.md
var editHelp string

const defaultEditor = "vi"

func editCmd(opts *options) *cobra.Command {
	var (
		stdin    bool
		showDiff bool
		editor   string
		hid      string
	)

	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:     "edit [flags] id index",
		Aliases: []string{"e"},
		Short:   "Edit one block of a page",
		Long:    editHelp,
		Args:    checkargs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(editor) == 0 {
				editor = opts.cfg.Editor
			}

			p := request.Params{
				Action:     request.ActionEdit,
				DocumentID: args[0],
				Index:      args[1],
				HasIndex:   true,
				AnchorID:   hid,
			}

			return editRun(cmd, opts, p, editor, stdin, showDiff)
		},
	}

	cmd.Flags().BoolVar(&stdin, "stdin", false, "read the new block content from standard input")
	cmd.Flags().BoolVar(&showDiff, "diff", false, "print a unified diff instead of saving")
	cmd.Flags().StringVar(&editor, "editor", "", "editor command, {} is replaced by the file to edit")
	cmd.Flags().StringVar(&hid, "hid", "", "anchor to return to after saving (codeblock_N)")

	return cmd
}

func editRun(cmd *cobra.Command, opts *options, p request.Params, editor string, stdin, showDiff bool) error {
	ctx := cmd.Context()
	stderr := cmd.ErrOrStderr()

	if !opts.handler.ClientInfo(p.DocumentID).CanEdit && !showDiff {
		return fmt.Errorf("%w: %s", request.ErrNotWritable, p.DocumentID)
	}

	var st request.State

	if err := opts.handler.Preprocess(ctx, p, &st); err != nil {
		return err
	}

	// an unusable index falls back to editing the whole page
	opts.report(stderr, &st)

	text, err := opts.handler.Page(ctx, p.DocumentID, &st)
	if err != nil {
		return err
	}

	_, section, _ := span.Slices(text, st.Range)

	var match *block.Match

	// the block only names the temporary file, so a range that does not come
	// from a block is edited as plain text
	if index, indexErr := request.ParseIndex(p.Index); indexErr == nil && !st.Range.IsZero() {
		match, err = opts.handler.Locate(ctx, p.DocumentID, index, &st)
		if err != nil && !errors.Is(err, block.ErrNotFound) {
			return err
		}
	}

	var edited string

	if stdin {
		data, readErr := io.ReadAll(cmd.InOrStdin())
		if readErr != nil {
			return readErr
		}

		edited = block.Normalize(string(data))
	} else if edited, err = runEditor(ctx, cmd, editor, section, match); err != nil {
		return err
	}

	if edited == section {
		opts.styles.Infof(stderr, "no changes")

		return nil
	}

	if showDiff {
		name, err := opts.docs.Path(p.DocumentID)
		if err != nil {
			return err
		}

		patch, err := diff.Unified(name, text, span.Replace(text, st.Range, edited), opts.cfg.DiffContext)
		if err != nil {
			return err
		}

		_, err = fmt.Fprint(cmd.OutOrStdout(), patch)

		return err
	}

	if _, err := opts.handler.Save(ctx, p, &st, edited); err != nil {
		return err
	}

	target := p.DocumentID
	if hid := opts.handler.HiddenFields(p)[request.FieldAnchor]; len(hid) != 0 {
		target += "#" + hid
	}

	opts.styles.Infof(stderr, "saved %s", target)

	return nil
}

// runEditor writes section to a temp file, runs the editor command on it and
// returns the file's new content.
func runEditor(ctx context.Context, cmd *cobra.Command, editor, section string, match *block.Match) (string, error) {
	if len(editor) == 0 {
		editor = os.Getenv("EDITOR")
	}

	if len(editor) == 0 {
		editor = defaultEditor
	}

	dir, err := os.MkdirTemp("", "codeblockedit-")
	if err != nil {
		return "", err
	}

	defer os.RemoveAll(dir)

	path := filepath.Join(dir, tempFilename(match))

	if err := os.WriteFile(path, []byte(section), fileMode); err != nil {
		return "", err
	}

	command := expandCommand(editor, path)
	logging.FromContext(ctx).Debug("running editor", logging.FieldCommand, command)

	exitCode, err := runCommand(ctx, command, dir, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return "", err
	}

	logging.FromContext(ctx).Debug("editor finished", logging.FieldExitCode, exitCode)

	if exitCode != 0 {
		return "", fmt.Errorf("%w: editor exited with %d", errEditorFailed, exitCode)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	return block.Normalize(string(data)), nil
}

func tempFilename(match *block.Match) string {
	if match == nil {
		return "page.txt"
	}

	if file := match.Filename(); len(file) != 0 {
		return fmt.Sprintf("%d_%s", match.Index, filepath.Base(filepath.FromSlash(file)))
	}

	return fmt.Sprintf("block_%d%s", match.Index, langExtension(match.Lang()))
}

func langExtension(lang string) string {
	if len(lang) > 0 {
		return "." + strings.ToLower(lang)
	}

	return ".txt"
}

func expandCommand(editor, path string) string {
	if !strings.Contains(editor, "{}") {
		editor += " {}"
	}

	return strings.ReplaceAll(editor, "{}", path)
}

func runCommand(ctx context.Context, command, dir string, stdin io.Reader, stdout, stderr io.Writer) (int, error) {
	file, err := syntax.NewParser().Parse(strings.NewReader(command), "")
	if err != nil {
		return -1, err
	}

	runner, err := interp.New(interp.Dir(dir), interp.StdIO(stdin, stdout, stderr))
	if err != nil {
		return -1, err
	}

	err = runner.Run(ctx, file)
	if err != nil {
		if status, ok := interp.IsExitStatus(err); ok {
			return int(status), nil
		}

		return -1, err
	}

	return 0, nil
}

const fileMode = 0o600

var errEditorFailed = errors.New("editor failed")
