package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/csheth/missiongen/internal/about"
)

const aboutWidth = 80

func newAboutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "about",
		Short: "Describe the generator and how to use it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), about.Plain(aboutWidth))
			return err
		},
	}
}
