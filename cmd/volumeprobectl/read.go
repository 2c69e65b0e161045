package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mittwald/volumeprobe/pkg/cli"
	"github.com/spf13/cobra"
)

func init() {
	ctlCommand.AddCommand(readCmd)
}

var readCmd = &cobra.Command{
	Use:   "read",
	Short: "Show the shared records",
	Long:  "This command can be used to print the shared record file as seen by the answering instance.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resp := cli.NewAPIClient(apiAddress).Read()

		return printOrRender(resp, func() {
			fmt.Println(styleMainLine.Render(lipgloss.JoinHorizontal(lipgloss.Left,
				"instance ", styleHighlight.Render(resp.Body.Instance),
				" sees ", styleHighlight.Render(fmt.Sprintf("%d", len(resp.Body.FilesInVolume))),
				" entries in ", styleHighlight.Render(resp.Body.VolumePath),
			)))

			for _, name := range resp.Body.FilesInVolume {
				fmt.Println(styleListItem.Render(name))
			}

			fmt.Println(styleInfoBox.Render(strings.TrimRight(resp.Body.SharedData, "\n")))
		})
	},
}
