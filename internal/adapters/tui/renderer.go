package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/sketchsense/internal/core/domain"
)

// Renderer runs the dashboard as a Bubble Tea program. It receives watch
// progress as a ports.DerivationReporter and log output as an io.Writer.
type Renderer struct {
	program *tea.Program
	model   *Model
	errCh   chan error
}

// NewRenderer creates a new dashboard renderer.
func NewRenderer(model *Model, opts ...tea.ProgramOption) *Renderer {
	return &Renderer{
		program: tea.NewProgram(model, opts...),
		model:   model,
		errCh:   make(chan error, 1),
	}
}

// Start launches the dashboard in a background goroutine.
func (r *Renderer) Start(_ context.Context) error {
	go func() {
		_, err := r.program.Run()
		r.errCh <- err
	}()
	return nil
}

// Stop signals the dashboard to quit.
func (r *Renderer) Stop() error {
	r.program.Quit()
	return nil
}

// Wait blocks until the dashboard has terminated.
func (r *Renderer) Wait() error {
	return <-r.errCh
}

// OnDeriveStart forwards a derivation start to the dashboard.
func (r *Renderer) OnDeriveStart(path string) {
	r.program.Send(MsgDeriveStart{Path: path})
}

// OnDeriveDone forwards a served request to the dashboard.
func (r *Renderer) OnDeriveDone(path, outcome string, props domain.BoardProperties, err error) {
	r.program.Send(MsgDeriveDone{
		Path:         path,
		Outcome:      outcome,
		IncludePaths: len(props.IncludePaths),
		Defines:      len(props.Defines),
		Err:          err,
	})
}

// Write forwards log output to the dashboard.
func (r *Renderer) Write(p []byte) (int, error) {
	data := make([]byte, len(p))
	copy(data, p)
	r.program.Send(MsgLog{Data: data})
	return len(p), nil
}
