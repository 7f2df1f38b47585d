package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ezerfernandes/codeblockedit/internal/block"
	"github.com/ezerfernandes/codeblockedit/internal/render"
	"github.com/ezerfernandes/codeblockedit/internal/request"
)

func previewCmd(opts *options) *cobra.Command {
	var html bool

	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:   "preview [flags] id index",
		Short: "Preview edited block content read from standard input",
		Long: `Preview edited block content read from standard input.

The content is wrapped in the delimiters of the block it replaces, so it
renders as that block. When the block cannot be found the content is shown
as is.`,
		Args: checkargs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}

			var st request.State

			p := request.Params{Action: request.ActionPreview, DocumentID: args[0], Index: args[1], HasIndex: true}

			text, err := opts.handler.Preview(cmd.Context(), p, &st, block.Normalize(string(data)))
			if err != nil {
				return err
			}

			if html {
				return render.New().Render(cmd.OutOrStdout(), text)
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), text)

			return err
		},
	}

	cmd.Flags().BoolVar(&html, "html", false, "render the preview as HTML")

	return cmd
}

func infoCmd(opts *options) *cobra.Command {
	return &cobra.Command{ //nolint:exhaustruct
		Use:   "info id",
		Short: "Print the client info of a page as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())

			return enc.Encode(opts.handler.ClientInfo(args[0]))
		},
	}
}
