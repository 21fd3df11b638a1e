package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newArchiveCommand(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive [out]",
		Short: "Write the project's installed toolchain as an uncompressed tar stream",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(flags)
			core, err := buildCore(flags)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(args) == 1 {
				f, err := os.Create(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}

			return core.Archive(cmd.Context(), projectManifestPath(flags), out)
		},
	}
	cmd.Flags().StringVar(&flags.projectDir, "project", "", "path to the project manifest (default: ./criticalup.toml)")
	cmd.Flags().BoolVar(&flags.offline, "offline", false, "serve exclusively from the local cache")
	return cmd
}
