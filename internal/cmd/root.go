// Package cmd implements the codeblockedit command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ezerfernandes/codeblockedit/internal/config"
	"github.com/ezerfernandes/codeblockedit/internal/logging"
	"github.com/ezerfernandes/codeblockedit/internal/request"
	"github.com/ezerfernandes/codeblockedit/internal/store"
	"github.com/ezerfernandes/codeblockedit/internal/ui"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// errReported is returned after diagnostics were already shown to the user.
var errReported = errors.New("diagnostics reported")

type options struct {
	configPath string
	root       string
	color      string
	debug      bool

	cfg     *config.Config
	styles  *ui.Styles
	logger  *log.Logger
	docs    *store.FS
	handler *request.Handler
}

// Execute runs the command line and returns the process exit code.
func Execute(info BuildInfo, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := NewRootCommand(info)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(context.Background()); err != nil {
		if !errors.Is(err, errReported) {
			ui.NewStyles(false).Errorf(stderr, "%v", err)
		}

		return 1
	}

	return 0
}

// NewRootCommand creates the root command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{ //nolint:exhaustruct
		Use:   "codeblockedit",
		Short: "Edit single code and file blocks of wiki pages",
		Long: `codeblockedit edits one <code> or <file> block of a wiki page without
touching the rest of the page.

Blocks are numbered from 0 in page order, code and file blocks sharing one
sequence. The block content is located in the raw page text and only that
byte range is handed to the editor and written back.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,

		DisableAutoGenTag: true,
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config file (default "+config.DefaultFilename+")")
	root.PersistentFlags().StringVar(&opts.root, "root", "", "directory holding the raw pages")
	root.PersistentFlags().StringVar(&opts.color, "color", config.ColorAuto, "colorize output: auto, always, never")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	root.AddCommand(listCmd(opts))
	root.AddCommand(locateCmd(opts))
	root.AddCommand(rangeCmd(opts))
	root.AddCommand(editCmd(opts))
	root.AddCommand(previewCmd(opts))
	root.AddCommand(infoCmd(opts))
	root.AddCommand(configCmd(opts))
	root.AddCommand(versionCmd(info))

	return root
}

func (opts *options) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("root") {
		cfg.Root = opts.root
	}

	if cmd.Flags().Changed("color") {
		cfg.Color = opts.color
	}

	if opts.debug {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	auth, err := store.NewGlobAuthorizer(cfg.Readonly)
	if err != nil {
		return err
	}

	opts.cfg = cfg
	opts.logger = logging.NewWriter(cmd.ErrOrStderr(), cfg.LogLevel)
	opts.styles = ui.NewStyles(ui.ColorEnabled(cfg.Color, cmd.ErrOrStderr()))
	opts.docs = store.NewDir(cfg.Root, cfg.Extension)
	opts.handler = request.New(opts.docs, auth, opts.logger)

	cmd.SetContext(logging.WithLogger(cmd.Context(), opts.logger))

	opts.logger.Debug("configured", logging.FieldPath, cfg.Root)

	return nil
}

// report prints request messages and tells whether any was an error.
func (opts *options) report(w io.Writer, st *request.State) bool {
	failed := false

	for _, msg := range st.Messages {
		if msg.Level == request.LevelError {
			failed = true

			opts.styles.Errorf(w, "%s", msg.Text)

			continue
		}

		opts.styles.Infof(w, "%s", msg.Text)
	}

	return failed
}

func checkargs(cmd *cobra.Command, args []string) error {
	if len(args) != 2 { //nolint:gomnd
		return fmt.Errorf("%s requires a page id and a block index", cmd.Name())
	}

	return nil
}
