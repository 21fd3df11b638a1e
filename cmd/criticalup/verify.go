package main

import "github.com/spf13/cobra"

func newVerifyCommand(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Recheck the project's installed files against their recorded digests",
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(flags)
			core, err := buildCore(flags)
			if err != nil {
				return err
			}
			return core.VerifyProject(cmd.Context(), projectManifestPath(flags))
		},
	}
	cmd.Flags().StringVar(&flags.projectDir, "project", "", "path to the project manifest (default: ./criticalup.toml)")
	return cmd
}
