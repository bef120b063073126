package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/holon-run/propedit/pkg/editor"
)

var resolveKind string

var resolveCmd = &cobra.Command{
	Use:   "resolve <locator>...",
	Short: "Print the canonical URL of each locator",
	Long: `Resolve each locator and print its canonical URL, one per line.

An empty locator prints an empty line. Resolution stops at the first
locator that cannot be resolved.

Examples:
  propedit resolve https://example.com mailto:someone@example.com
  propedit resolve -p ./resources classpath:conf/app.yaml
  propedit resolve --kind uri urn:isbn:0451450523`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := editor.ParseKind(resolveKind)
		if err != nil {
			return err
		}

		registry, err := buildRegistry(cmd)
		if err != nil {
			return err
		}

		ed, err := editor.ForKind(kind, registry)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, locator := range args {
			if err := ed.SetAsTextContext(cmd.Context(), locator); err != nil {
				return err
			}
			fmt.Fprintln(out, ed.AsText())
		}
		return nil
	},
}

func init() {
	resolveCmd.Flags().StringVarP(&resolveKind, "kind", "k", string(editor.KindURL), "Editor kind: url, uri")
	rootCmd.AddCommand(resolveCmd)
}
