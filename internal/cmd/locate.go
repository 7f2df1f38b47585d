package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ezerfernandes/codeblockedit/internal/request"
)

func locateCmd(opts *options) *cobra.Command {
	var tags bool

	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:   "locate [flags] id index",
		Short: "Print the content of a block",
		Args:  checkargs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var st request.State

			index, err := request.ParseIndex(args[1])
			if err != nil {
				opts.styles.Errorf(cmd.ErrOrStderr(), "%v", err)

				return errReported
			}

			match, err := opts.handler.Locate(cmd.Context(), args[0], index, &st)
			if err != nil {
				opts.styles.Errorf(cmd.ErrOrStderr(), "%v", err)

				return errReported
			}

			out := match.Content
			if tags {
				out = match.Tagged()
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), out)

			return err
		},
	}

	cmd.Flags().BoolVarP(&tags, "tags", "t", false, "include the block delimiters")

	return cmd
}

func rangeCmd(opts *options) *cobra.Command {
	return &cobra.Command{ //nolint:exhaustruct
		Use:   "range id index",
		Short: "Print the positional range of a block's content",
		Long: `Print the positional range of a block's content in the "from-to" form
used by range-based page editing: 1-based, and addressing the content bytes
[from-1, to-1) of the page with normalized line endings.`,
		Args: checkargs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var st request.State

			p := request.Params{Action: request.ActionEdit, DocumentID: args[0], Index: args[1], HasIndex: true}

			if err := opts.handler.Preprocess(cmd.Context(), p, &st); err != nil {
				return err
			}

			if opts.report(cmd.ErrOrStderr(), &st) {
				return errReported
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), st.Range.String())

			return err
		},
	}
}
