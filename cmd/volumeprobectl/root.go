package main

import (
	"fmt"
	"os"

	"github.com/mittwald/volumeprobe/cmd"
	"github.com/mittwald/volumeprobe/pkg/cli"
	"github.com/spf13/cobra"
)

var (
	apiAddress string
	jsonOutput bool
)

func init() {
	ctlCommand.PersistentFlags().StringVarP(&apiAddress, "api-address", "a", cli.DefaultAPIAddress, "address of the volume probe api (http://host:port or unix:///path/to.sock)")
	ctlCommand.PersistentFlags().BoolVarP(&jsonOutput, "json", "j", false, "print the raw JSON answer")
	ctlCommand.AddCommand(cmd.NewVersionCmd("volumeprobectl"))
}

var ctlCommand = &cobra.Command{
	Use:           "volumeprobectl",
	Short:         "talk to a volume probe api from the command line",
	Long:          "This command can be used to query and write to a shared volume through the volume probe api.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := ctlCommand.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, renderError(err))
		os.Exit(1)
	}
}

// printOrRender prints the raw JSON answer if requested, else calls render.
func printOrRender(resp cli.APIResponse, render func()) error {
	if resp.Err() != nil {
		return resp.Err()
	}
	if jsonOutput {
		return resp.Print()
	}

	render()
	return nil
}
