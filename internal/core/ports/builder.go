package ports

import (
	"context"

	"go.trai.ch/sketchsense/internal/core/domain"
)

// SketchBuilder defines the interface for producing a verbose build trace.
//
//go:generate mockgen -source=builder.go -destination=mocks/mock_builder.go -package=mocks
type SketchBuilder interface {
	// Build compiles the sketch described by req and returns the standard
	// output of the build tool. A failing compile is not an error as long as
	// the tool ran; the trace is what matters.
	Build(ctx context.Context, req domain.BuildRequest) (string, error)
}
