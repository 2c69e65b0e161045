package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/mittwald/volumeprobe/pkg/cli"
	"github.com/mittwald/volumeprobe/pkg/volume"
	"github.com/spf13/cobra"
)

func init() {
	ctlCommand.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the mount status of an instance",
	Long:  "This command can be used to show which volume path an instance resolved and whether it is mounted.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resp := cli.NewAPIClient(apiAddress).Status()

		return printOrRender(resp, func() {
			fmt.Println(styleMainLine.Render(statusLine(&resp.Body)))
			fmt.Println(styleDetails.Render(lipgloss.JoinVertical(lipgloss.Left,
				detailLine("instance:", styleHighlight.Render(resp.Body.AppInstance)),
				detailLine("hostname:", styleHighlight.Render(resp.Body.Hostname)),
				detailLine("service bindings:", wrapNotSet(resp.Body.VcapServices, volume.BindingsNotDeclared)),
				detailLine("runtime:", styleHighlight.Render(resp.Body.GoVersion)),
			)))
		})
	},
}

func statusLine(status *volume.Status) string {
	if status.VolumeExists {
		return lipgloss.JoinHorizontal(lipgloss.Left,
			styleOK.Render("▶︎"), " ",
			styleHighlight.Render(status.VolumePath), " (",
			styleOK.Render("mounted"), ")",
		)
	}

	return lipgloss.JoinHorizontal(lipgloss.Left,
		styleFailed.Render("◼︎"), " ",
		styleHighlight.Render(status.VolumePath), " (",
		styleFailed.Render("not mounted"), ")",
	)
}

func detailLine(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Left, styleLeftColumn.Render(label), value)
}

func wrapNotSet(s, notSet string) string {
	if s == "" || s == notSet {
		return styleNotSet.Render("<" + notSet + ">")
	}

	return styleHighlight.Render(s)
}
