package main

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/ferrocene/criticalup/internal/manifest"
)

func newInitCommand(flags *globalFlags) *cobra.Command {
	var release, product string
	var print bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Synthesize a default project manifest for a release",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc := manifest.Init(product, release, []string{product + "-${host-triple}"})

			if print {
				data, err := toml.Marshal(doc)
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(cmd.OutOrStdout(), string(data))
				return err
			}

			return doc.Write(projectManifestPath(flags))
		},
	}

	cmd.Flags().StringVar(&flags.projectDir, "project", "", "path to write the manifest to (default: ./criticalup.toml)")
	cmd.Flags().StringVar(&release, "release", "", "release label, e.g. stable-25.05.0")
	cmd.Flags().StringVar(&product, "product", "ferrocene", "product name")
	cmd.Flags().BoolVar(&print, "print", false, "print the manifest to standard output instead of writing it")
	cmd.MarkFlagRequired("release")

	return cmd
}
