package tui_test

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sketchsense/internal/adapters/tui"
)

func update(t *testing.T, m *tui.Model, msg tea.Msg) *tui.Model {
	t.Helper()
	updated, _ := m.Update(msg)
	return updated.(*tui.Model)
}

func TestModel_Update(t *testing.T) {
	const sketch = "/w/blink/blink.ino"

	t.Run("start marks the sketch deriving", func(t *testing.T) {
		m := update(t, tui.NewModel("/w"), tui.MsgDeriveStart{Path: sketch})

		require.Len(t, m.Sketches, 1)
		assert.Equal(t, tui.StatusDeriving, m.SketchMap[sketch].Status)
		assert.Equal(t, "blink.ino", m.Sketches[0].Name())
	})

	tests := []struct {
		name   string
		msg    tui.MsgDeriveDone
		status tui.SketchStatus
		incs   int
	}{
		{
			name:   "derived",
			msg:    tui.MsgDeriveDone{Path: sketch, Outcome: "derived", IncludePaths: 4, Defines: 2},
			status: tui.StatusDerived,
			incs:   4,
		},
		{
			name:   "hit",
			msg:    tui.MsgDeriveDone{Path: sketch, Outcome: "hit", IncludePaths: 3},
			status: tui.StatusCached,
			incs:   3,
		},
		{
			name:   "dropped keeps previous counts",
			msg:    tui.MsgDeriveDone{Path: sketch, Outcome: "dropped"},
			status: tui.StatusDropped,
			incs:   1,
		},
		{
			name:   "failure",
			msg:    tui.MsgDeriveDone{Path: sketch, Outcome: "hit", Err: errors.New("boom")},
			status: tui.StatusError,
			incs:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tui.NewModel("/w")
			m = update(t, m, tui.MsgDeriveDone{Path: sketch, Outcome: "derived", IncludePaths: 1})
			m = update(t, m, tui.MsgDeriveStart{Path: sketch})
			m = update(t, m, tt.msg)

			require.Len(t, m.Sketches, 1)
			assert.Equal(t, tt.status, m.Sketches[0].Status)
			assert.Equal(t, tt.incs, m.Sketches[0].IncludePaths)
		})
	}

	t.Run("failure records the error", func(t *testing.T) {
		m := update(t, tui.NewModel("/w"), tui.MsgDeriveDone{Path: sketch, Err: errors.New("no compiler command")})
		assert.Equal(t, "no compiler command", m.Sketches[0].Err)
	})

	t.Run("quit keys", func(t *testing.T) {
		for _, key := range []tea.KeyMsg{
			{Type: tea.KeyRunes, Runes: []rune{'q'}},
			{Type: tea.KeyCtrlC},
		} {
			_, cmd := tui.NewModel("/w").Update(key)
			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
		}
	})
}

func TestModel_LogTail(t *testing.T) {
	m := tui.NewModel("/w")

	m = update(t, m, tui.MsgLog{Data: []byte("first\nsec")})
	assert.Equal(t, []string{"first"}, m.Logs, "unterminated lines are held back")

	m = update(t, m, tui.MsgLog{Data: []byte("ond\r\n")})
	assert.Equal(t, []string{"first", "second"}, m.Logs)

	var b strings.Builder
	for i := range tui.MaxLogLines + 10 {
		b.WriteString("line " + strconv.Itoa(i) + "\n")
	}
	m = update(t, m, tui.MsgLog{Data: []byte(b.String())})

	require.Len(t, m.Logs, tui.MaxLogLines)
	assert.Equal(t, "line "+strconv.Itoa(tui.MaxLogLines+9), m.Logs[len(m.Logs)-1])
}

func TestModel_SlidingWindow(t *testing.T) {
	m := tui.NewModel("/w")
	for i := range 10 {
		m = update(t, m, tui.MsgDeriveStart{Path: "/w/s" + strconv.Itoa(i) + "/s.ino"})
	}
	m.ListHeight = 5

	for range 4 {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, 4, m.SelectedIdx)
	assert.Equal(t, 0, m.ListOffset)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 5, m.SelectedIdx)
	assert.Equal(t, 1, m.ListOffset)

	for range 20 {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, 9, m.SelectedIdx, "selection stops at the last sketch")
	assert.Equal(t, 5, m.ListOffset)

	for range 9 {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	}
	assert.Equal(t, 0, m.SelectedIdx)
	assert.Equal(t, 0, m.ListOffset)
}

func TestModel_WindowSize(t *testing.T) {
	m := update(t, tui.NewModel("/w"), tea.WindowSizeMsg{Width: 80, Height: 24})

	assert.Equal(t, 80, m.Width)
	assert.Equal(t, 24, m.Height)
	assert.Equal(t, 10, m.ListHeight)
}
