package logger

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
)

var (
	// ErrUnsupportedLevel is returned if Log.LogLevel is not a zerolog level.
	ErrUnsupportedLevel = errors.New("unsupported log level")

	// ErrAppNameIsEmpty is returned if Log.AppName was not defined.
	ErrAppNameIsEmpty = errors.New("config Log.AppName can not be empty")

	// ErrServiceNameIsEmpty is returned if Log.ServiceName was not defined.
	ErrServiceNameIsEmpty = errors.New("config Log.ServiceName can not be empty")
)

// ErrorHandler reports events zerolog failed to write, it must not log itself.
func ErrorHandler(err error) {
	_, _ = fmt.Fprintf(os.Stderr, "dirgroup-admin: could not write log event: %v\n", err)
}
