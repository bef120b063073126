package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var schemesCmd = &cobra.Command{
	Use:   "schemes",
	Short: "List the URL schemes accepted for direct parsing",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := buildRegistry(cmd)
		if err != nil {
			return err
		}
		for _, name := range registry.Schemes().Names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemesCmd)
}
