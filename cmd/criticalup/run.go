package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ferrocene/criticalup/internal/lifecycle"
)

func newRunCommand(flags *globalFlags) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "run -- <command> [args...]",
		Short: "Dispatch a toolchain binary via the project's proxy resolution",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(flags)
			core, err := buildCore(flags)
			if err != nil {
				return err
			}
			workDir, err := resolveWorkDir(flags)
			if err != nil {
				return err
			}
			return core.Run(cmd.Context(), workDir, args[0], args[1:], os.Environ(), lifecycle.RunOptions{Strict: strict})
		},
	}

	cmd.Flags().StringVar(&flags.projectDir, "project", "", "path to the project manifest (default: discovered from the working directory)")
	cmd.Flags().BoolVar(&strict, "strict", false, "restrict the child's PATH to the resolved installation's binary directory")
	return cmd
}
