package ffmpegforge

import "github.com/parth181195/ffmpeg-forge/internal/domain"

type (
	// Error is the structured error type carried on every failure path.
	Error = domain.Error

	// ErrorKind is the closed set of failure categories.
	ErrorKind = domain.ErrorKind
)

const (
	KindToolNotFound         = domain.KindToolNotFound
	KindExecutionFailed      = domain.KindExecutionFailed
	KindCancelled            = domain.KindCancelled
	KindCodecUnsupported     = domain.KindCodecUnsupported
	KindFormatUnsupported    = domain.KindFormatUnsupported
	KindHardwareUnavailable  = domain.KindHardwareUnavailable
	KindInvalidConfiguration = domain.KindInvalidConfiguration
	KindInvalidInput         = domain.KindInvalidInput
	KindInvalidOutput        = domain.KindInvalidOutput
)

// IsKind reports whether err is or wraps an Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return domain.IsKind(err, kind)
}
