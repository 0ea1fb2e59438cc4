package ports

// Logger defines the interface for logging.
//
//go:generate mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	// WarnErr logs err at warning level with its chain and metadata.
	WarnErr(err error)
	Error(err error)
}
