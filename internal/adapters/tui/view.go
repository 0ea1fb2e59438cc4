package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/sketchsense/internal/ui/style"
)

// View renders the sketch list above the log tail.
func (m *Model) View() string {
	if m.Height == 0 {
		return "Initializing..."
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.sketchList(),
		m.logPane(),
	)
}

func (m *Model) sketchList() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("SKETCHES "+m.Root) + "\n\n")

	if len(m.Sketches) == 0 {
		s.WriteString(sketchCachedStyle.Render("  waiting for sketch changes") + "\n")
	}

	end := min(m.ListOffset+m.ListHeight, len(m.Sketches))
	for i := m.ListOffset; i < end; i++ {
		n := m.Sketches[i]
		st, icon := statusStyle(n.Status)

		line := fmt.Sprintf("%s %s  %s", icon, n.Name(), detail(n))
		if i == m.SelectedIdx {
			line = "> " + line
		} else {
			line = "  " + line
		}
		s.WriteString(st.Render(line) + "\n")
	}

	return listStyle.Render(s.String())
}

func (m *Model) logPane() string {
	height := max(minLogHeight, m.Height-m.ListHeight-2*headerHeight)
	lines := m.Logs
	if len(lines) > height {
		lines = lines[len(lines)-height:]
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render("LOG"),
		logStyle.Render(strings.Join(lines, "\n")),
	)
}

func statusStyle(status SketchStatus) (lipgloss.Style, string) {
	switch status {
	case StatusDeriving:
		return sketchDerivingStyle, style.Dot
	case StatusDerived:
		return sketchDerivedStyle, style.Check
	case StatusCached:
		return sketchCachedStyle, style.Check
	case StatusDropped:
		return sketchDroppedStyle, style.Warning
	default:
		return sketchErrorStyle, style.Cross
	}
}

func detail(n *SketchNode) string {
	switch n.Status {
	case StatusDeriving:
		return "deriving"
	case StatusDropped:
		return "queued"
	case StatusError:
		return n.Err
	default:
		return fmt.Sprintf("%d include paths, %d defines", n.IncludePaths, n.Defines)
	}
}
