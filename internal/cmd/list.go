package cmd

import (
	"fmt"
	"strings"

	"github.com/rodaine/table"
	"github.com/spf13/cobra"

	"github.com/ezerfernandes/codeblockedit/internal/anchor"
	"github.com/ezerfernandes/codeblockedit/internal/block"
	"github.com/ezerfernandes/codeblockedit/internal/logging"
	"github.com/ezerfernandes/codeblockedit/internal/span"
)

func listCmd(opts *options) *cobra.Command {
	var langs []string

	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:     "list [flags] id",
		Aliases: []string{"ls"},
		Short:   "List the blocks of a page",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keep, err := filter(langs)
			if err != nil {
				return err
			}

			raw, err := opts.docs.Raw(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			text := block.Normalize(raw)
			matches := block.Scan(text)

			opts.logger.Debug("scanned", logging.FieldDocument, args[0], logging.FieldBlocks, len(matches))

			tbl := table.New("INDEX", "KIND", "LANG", "FILE", "RANGE", "LINES", "ANCHOR").WithWriter(cmd.OutOrStdout())

			for _, m := range matches {
				if !keep(m) {
					continue
				}

				tbl.AddRow(m.Index, m.Kind(), m.Lang(), m.Filename(), span.Translate(m).String(), lines(text, m), anchor.For(m.Index))
			}

			tbl.Print()

			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&langs, "lang", "l", nil, "only list blocks whose language matches a glob pattern")

	return cmd
}

// lines returns the 1-based line span of the whole block, delimiters included.
func lines(text string, m *block.Match) string {
	first := strings.Count(text[:m.Start-len(m.OpenTag)], "\n") + 1
	last := first + strings.Count(m.Tagged(), "\n")

	return fmt.Sprintf("L%d-%d", first, last)
}
