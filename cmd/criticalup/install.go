package main

import (
	"github.com/spf13/cobra"

	"github.com/ferrocene/criticalup/internal/lifecycle"
)

func newInstallCommand(flags *globalFlags) *cobra.Command {
	var reinstall bool

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Resolve and install the project's declared toolchain",
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(flags)
			core, err := buildCore(flags)
			if err != nil {
				return err
			}
			return core.Install(cmd.Context(), projectManifestPath(flags), lifecycle.InstallOptions{
				Reinstall: reinstall,
				Offline:   flags.offline,
			})
		},
	}

	cmd.Flags().StringVar(&flags.projectDir, "project", "", "path to the project manifest (default: ./criticalup.toml)")
	cmd.Flags().BoolVar(&reinstall, "reinstall", false, "re-stage the installation even if one already exists")
	cmd.Flags().BoolVar(&flags.offline, "offline", false, "serve exclusively from the local cache")

	return cmd
}
