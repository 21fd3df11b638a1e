package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ferrocene/criticalup/internal/auth"
	"github.com/ferrocene/criticalup/internal/manifest"
)

const docText = `criticalup.toml schema:

  manifest-version = %d

  [products.<name>]
  release = "<channel-label>"       # e.g. "stable-25.05.0"
  packages = ["<pkg>-${host-triple}"]

Environment variables:

  %s    bearer token for the artifact download server
  CRITICALUP_SERVER   base URL of the artifact download server
  CRITICALUP_ROOT_KEY path to the pinned root public key (PEM)
  XDG_DATA_HOME       overrides the state directory root on Linux-like hosts
`

func newDocCommand(_ *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "doc",
		Short: "Print the project manifest schema and environment variable reference",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), docText, manifest.SupportedVersion, auth.EnvToken)
			return nil
		},
	}
}
