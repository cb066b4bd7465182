package dist

import (
	"errors"
	"fmt"

	"github.com/goplus/ttpdist/pkgs/platform"
)

var (
	// ErrUnsupportedArchitecture indicates an Android architecture without a known ABI suffix.
	ErrUnsupportedArchitecture = errors.New("unsupported architecture")

	// ErrUnsupportedPlatform indicates an operating system with no artifact directory.
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrInvalidSettings indicates settings that cannot name a directory, such as an empty build type.
	ErrInvalidSettings = errors.New("invalid platform settings")

	// ErrInvalidAllowList indicates an allow-list that failed validation.
	ErrInvalidAllowList = errors.New("invalid allow-list")
)

// PlatformError wraps a resolution failure with the settings that caused it.
type PlatformError struct {
	Op       string // Operation that failed
	Settings platform.Settings
	Err      error // Underlying error
}

func (e *PlatformError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Settings, e.Err)
}

func (e *PlatformError) Unwrap() error {
	return e.Err
}
