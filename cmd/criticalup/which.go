package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newWhichCommand(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "which <name>",
		Short: "Resolve a toolchain binary's name to its installed path",
		Args:  cobra.ExactArgs(1),
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
			path, err := core.Which(cmd.Context(), workDir, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.projectDir, "project", "", "path to the project manifest (default: discovered from the working directory)")
	return cmd
}
