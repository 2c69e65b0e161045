package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/mittwald/volumeprobe/pkg/cli"
	"github.com/pkg/errors"
)

var styleErrorBox = lipgloss.NewStyle().
	Padding(0, 1).
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(colorFailed)
var styleErrorHeading = styleFailed.Copy().MarginBottom(1)
var styleErrorBody = lipgloss.NewStyle().Foreground(colorFailed).Width(78)

// renderError boxes err; answers of the api are shown with their status code
// and the volume path they refer to.
func renderError(err error) string {
	var apiErr *cli.APIError
	if !errors.As(err, &apiErr) {
		return styleErrorBox.Render(lipgloss.JoinVertical(lipgloss.Left,
			styleErrorHeading.Render("could not talk to the volume probe api"),
			styleErrorBody.Render(err.Error()),
			styleNotSet.Render("api address: "+apiAddress),
		))
	}

	lines := []string{
		styleErrorHeading.Render(fmt.Sprintf("volume probe api answered with status %d", apiErr.StatusCode)),
		styleErrorBody.Render(apiErr.Message),
	}
	if apiErr.Path != "" {
		lines = append(lines, detailLine("volume path:", styleHighlight.Render(apiErr.Path)))
	}

	return styleErrorBox.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
