package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/mittwald/volumeprobe/pkg/cli"
	"github.com/spf13/cobra"
)

func init() {
	ctlCommand.AddCommand(filesCmd)
}

var styleSizeColumn = lipgloss.NewStyle().Width(12).Align(lipgloss.Right).PaddingRight(2)
var styleDateColumn = lipgloss.NewStyle().Width(28)

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "List the files in the volume",
	Long:  "This command can be used to list all entries of the volume with their size and modification time.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resp := cli.NewAPIClient(apiAddress).Files()

		return printOrRender(resp, func() {
			fmt.Println(styleMainLine.Render(lipgloss.JoinHorizontal(lipgloss.Left,
				styleHighlight.Render(fmt.Sprintf("%d", resp.Body.FileCount)),
				" entries in ", styleHighlight.Render(resp.Body.VolumePath),
			)))

			for _, f := range resp.Body.Files {
				fmt.Println(styleListItem.Render(lipgloss.JoinHorizontal(lipgloss.Left,
					styleSizeColumn.Render(fmt.Sprintf("%d B", f.Size)),
					styleDateColumn.Render(f.Modified),
					styleHighlight.Render(f.Name),
				)))
			}
		})
	},
}
