package tui

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/sketchsense/internal/ui/style"
)

var (
	colorWhite = lipgloss.Color("#FFFFFF")

	listStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(style.Slate)

	logStyle = lipgloss.NewStyle().
			Foreground(style.Slate)

	sketchDerivingStyle = lipgloss.NewStyle().
				Foreground(style.Iris).
				Bold(true)

	sketchDerivedStyle = lipgloss.NewStyle().
				Foreground(style.Green)

	sketchCachedStyle = lipgloss.NewStyle().
				Foreground(style.Slate).
				Faint(true)

	sketchDroppedStyle = lipgloss.NewStyle().
				Foreground(style.Yellow)

	sketchErrorStyle = lipgloss.NewStyle().
				Foreground(style.Red)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(style.Iris).
			Foreground(colorWhite)
)
