// Package tui provides the terminal dashboard of the watch command.
package tui

import (
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	// MaxLogLines bounds the log tail kept by the model.
	MaxLogLines = 200
	// headerHeight covers the title line and its padding line.
	headerHeight = 2
	// minLogHeight is the log pane height kept when the list is long.
	minLogHeight = 3
)

// SketchStatus represents the current state of a watched sketch.
type SketchStatus string

const (
	// StatusDeriving indicates a derivation is running.
	StatusDeriving SketchStatus = "Deriving"
	// StatusDerived indicates a fresh derivation succeeded.
	StatusDerived SketchStatus = "Derived"
	// StatusCached indicates the cached configuration was reused.
	StatusCached SketchStatus = "Cached"
	// StatusDropped indicates the request was queued behind a running derivation.
	StatusDropped SketchStatus = "Dropped"
	// StatusError indicates the derivation failed.
	StatusError SketchStatus = "Error"
)

// SketchNode represents a single sketch in the dashboard list.
type SketchNode struct {
	Path         string
	Status       SketchStatus
	IncludePaths int
	Defines      int
	Err          string
}

// Name returns the label shown for the sketch.
func (n *SketchNode) Name() string {
	return filepath.Base(n.Path)
}

// MsgDeriveStart reports that a sketch started deriving.
type MsgDeriveStart struct {
	Path string
}

// MsgDeriveDone reports a served request.
type MsgDeriveDone struct {
	Path         string
	Outcome      string
	IncludePaths int
	Defines      int
	Err          error
}

// MsgLog carries a chunk of log output.
type MsgLog struct {
	Data []byte
}

// Model represents the dashboard state.
type Model struct {
	Root        string
	Sketches    []*SketchNode
	SketchMap   map[string]*SketchNode
	Logs        []string
	ListHeight  int
	ListOffset  int
	SelectedIdx int
	Width       int
	Height      int

	partial string
}

// NewModel creates an empty dashboard for the workspace at root.
func NewModel(root string) *Model {
	return &Model{
		Root:      root,
		SketchMap: make(map[string]*SketchNode),
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			m.moveSelection(-1)
		case "down", "j":
			m.moveSelection(1)
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.ListHeight = max(1, msg.Height/2-headerHeight)
		m.clampOffset()

	case MsgDeriveStart:
		m.node(msg.Path).Status = StatusDeriving

	case MsgDeriveDone:
		m.finish(msg)

	case MsgLog:
		m.appendLog(msg.Data)
	}

	return m, nil
}

func (m *Model) node(path string) *SketchNode {
	if n, ok := m.SketchMap[path]; ok {
		return n
	}
	if m.SketchMap == nil {
		m.SketchMap = make(map[string]*SketchNode)
	}
	n := &SketchNode{Path: path}
	m.Sketches = append(m.Sketches, n)
	m.SketchMap[path] = n
	return n
}

func (m *Model) finish(msg MsgDeriveDone) {
	n := m.node(msg.Path)
	n.Err = ""
	if msg.Err != nil {
		n.Status = StatusError
		n.Err = msg.Err.Error()
		return
	}

	switch msg.Outcome {
	case "hit":
		n.Status = StatusCached
	case "dropped":
		n.Status = StatusDropped
		return
	default:
		n.Status = StatusDerived
	}
	n.IncludePaths = msg.IncludePaths
	n.Defines = msg.Defines
}

// appendLog splits data into lines, holding back an unterminated tail.
func (m *Model) appendLog(data []byte) {
	text := m.partial + string(data)
	lines := strings.Split(text, "\n")
	m.partial = lines[len(lines)-1]

	for _, line := range lines[:len(lines)-1] {
		m.Logs = append(m.Logs, strings.TrimRight(line, "\r"))
	}
	if over := len(m.Logs) - MaxLogLines; over > 0 {
		m.Logs = append(m.Logs[:0], m.Logs[over:]...)
	}
}

func (m *Model) moveSelection(delta int) {
	if len(m.Sketches) == 0 {
		return
	}
	m.SelectedIdx = min(max(m.SelectedIdx+delta, 0), len(m.Sketches)-1)
	m.clampOffset()
}

// clampOffset keeps the selected row inside the visible window.
func (m *Model) clampOffset() {
	if m.ListHeight <= 0 {
		return
	}
	if m.SelectedIdx < m.ListOffset {
		m.ListOffset = m.SelectedIdx
	}
	if m.SelectedIdx >= m.ListOffset+m.ListHeight {
		m.ListOffset = m.SelectedIdx - m.ListHeight + 1
	}
}
