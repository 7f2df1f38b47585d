package cmd

import (
	"github.com/spf13/cobra"
)

func configCmd(opts *options) *cobra.Command {
	return &cobra.Command{ //nolint:exhaustruct
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Long: `Print the configuration in effect after the config file, the
CODEBLOCKEDIT_* environment variables and the command line flags are applied.
The output can be saved as a config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := opts.cfg.ToYAML()
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(data)

			return err
		},
	}
}
