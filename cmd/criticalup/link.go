package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLinkCommand(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Manage named external registrations of the proxy directory",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "create <name>",
			Args:  cobra.ExactArgs(1),
			Short: "Register the proxy directory under name",
			RunE: func(cmd *cobra.Command, args []string) error {
				setupLogging(flags)
				core, err := buildCore(flags)
				if err != nil {
					return err
				}
				return core.LinkCreate(args[0])
			},
		},
		&cobra.Command{
			Use:   "remove <name>",
			Args:  cobra.ExactArgs(1),
			Short: "Remove a previously registered name",
			RunE: func(cmd *cobra.Command, args []string) error {
				setupLogging(flags)
				core, err := buildCore(flags)
				if err != nil {
					return err
				}
				return core.LinkRemove(args[0])
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "List the current name -> proxy directory registrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				setupLogging(flags)
				core, err := buildCore(flags)
				if err != nil {
					return err
				}
				links, err := core.LinkShow()
				if err != nil {
					return err
				}
				for name, dir := range links {
					fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", name, dir)
				}
				return nil
			},
		},
	)

	return cmd
}
