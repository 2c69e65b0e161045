package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"
)

var noColor bool

func init() {
	configCmd.Flags().BoolVar(&noColor, "no-color", false, "print plain JSON")
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved volume configuration",
	Long:  "This sub-command resolves the volume configuration exactly like 'serve' does and prints it as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, _, err := resolveRuntime(cmd)
		if err != nil {
			return err
		}

		out, err := json.Marshal(rt)
		if err != nil {
			return err
		}

		out = pretty.Pretty(out)
		if !noColor {
			out = pretty.Color(out, nil)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(out))
		return nil
	},
}
