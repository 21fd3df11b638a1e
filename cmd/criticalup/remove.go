package main

import "github.com/spf13/cobra"

func newRemoveCommand(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Unbind the project from its installed toolchain",
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(flags)
			core, err := buildCore(flags)
			if err != nil {
				return err
			}
			return core.Remove(cmd.Context(), projectManifestPath(flags))
		},
	}
	cmd.Flags().StringVar(&flags.projectDir, "project", "", "path to the project manifest (default: ./criticalup.toml)")
	return cmd
}
