package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCleanCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove installations with no surviving project bindings",
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(flags)
			core, err := buildCore(flags)
			if err != nil {
				return err
			}
			result, err := core.Clean(cmd.Context())
			if err != nil {
				return err
			}
			for _, id := range result.Removed {
				fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", id)
			}
			return nil
		},
	}
}
