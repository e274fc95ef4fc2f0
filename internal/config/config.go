// Package config holds process configuration for the natalglide commands.
//
// Values are resolved in priority order:
//
//	OS environment (highest) -> .env file (lowest)
//
// The engine itself takes no configuration from the environment; commands
// translate a Config into calculator options and a logger.
package config

import (
	"fmt"
)

// Config is the command-level configuration.
type Config struct {
	// PolarLimit is the |latitude| in degrees past which the Ascendant is
	// reported as undefined.
	PolarLimit float64 `envconfig:"NATAL_POLAR_LIMIT" default:"66.5" validate:"gt=0,lt=90"`

	// BatchWorkers bounds the number of charts computed concurrently by the
	// batch command.
	BatchWorkers int `envconfig:"NATAL_BATCH_WORKERS" default:"4" validate:"min=1,max=256"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text" validate:"oneof=text json"`
}

// ErrorType categorizes configuration loading failures.
type ErrorType string

const (
	// ErrDotenv indicates a .env file exists but could not be parsed.
	ErrDotenv ErrorType = "DOTENV_FAILED"
	// ErrParsing indicates an environment value could not be converted to
	// its target type.
	ErrParsing ErrorType = "PARSING_FAILED"
	// ErrValidation indicates the configuration failed validation rules.
	ErrValidation ErrorType = "VALIDATION_FAILED"
)

// Error is returned by Load.
type Error struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}
