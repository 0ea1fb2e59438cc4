package ports

import "go.trai.ch/sketchsense/internal/core/domain"

// DerivationReporter receives the progress of derivations served while watching.
//
//go:generate mockgen -source=reporter.go -destination=mocks/mock_reporter.go -package=mocks
type DerivationReporter interface {
	// OnDeriveStart is called before a sketch is derived.
	OnDeriveStart(path string)
	// OnDeriveDone is called once the request for path has been served.
	// outcome is "hit", "derived" or "dropped"; err is set on failure.
	OnDeriveDone(path, outcome string, props domain.BoardProperties, err error)
}
