package main

import (
	"github.com/charmbracelet/lipgloss"
)

var colorSuccess = lipgloss.Color("#00B785")
var colorFailed = lipgloss.Color("#e1244c")

var styleOK = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
var styleFailed = lipgloss.NewStyle().Foreground(colorFailed).Bold(true)
var styleHighlight = lipgloss.NewStyle().Foreground(lipgloss.Color("#407FF8")).Bold(true)
var styleNotSet = lipgloss.NewStyle().Foreground(lipgloss.Color("#5D689C"))

var styleMainLine = lipgloss.NewStyle().Margin(1, 0)
var styleDetails = lipgloss.NewStyle().PaddingLeft(2)
var styleLeftColumn = lipgloss.NewStyle().Width(20)
var styleListItem = lipgloss.NewStyle().Padding(0, 2)

var styleInfoBox = lipgloss.NewStyle().
	Padding(0, 1).
	Margin(1, 0).
	BorderStyle(lipgloss.RoundedBorder()).
	Width(80)

var styleSuccessBox = styleInfoBox.Copy().BorderForeground(colorSuccess)
