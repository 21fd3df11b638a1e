package main

import (
	"github.com/spf13/cobra"

	"github.com/ferrocene/criticalup/internal/auth"
	criticalerrors "github.com/ferrocene/criticalup/internal/errors"
)

func newAuthCommand(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the stored bearer credential for the artifact download server",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "set <token>",
			Args:  cobra.ExactArgs(1),
			Short: "Store the download-server bearer token",
			RunE: func(cmd *cobra.Command, args []string) error {
				setupLogging(flags)
				paths, err := buildPaths(flags)
				if err != nil {
					return err
				}
				if args[0] == "" {
					return criticalerrors.New(criticalerrors.CategoryAuthentication, "token must not be empty")
				}
				return auth.Set(paths.StateRoot(), args[0])
			},
		},
		&cobra.Command{
			Use:   "remove",
			Short: "Remove the stored download-server bearer token",
			RunE: func(cmd *cobra.Command, args []string) error {
				setupLogging(flags)
				paths, err := buildPaths(flags)
				if err != nil {
					return err
				}
				return auth.Remove(paths.StateRoot())
			},
		},
	)

	return cmd
}
