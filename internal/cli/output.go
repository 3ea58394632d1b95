package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/simonhull/spikeglx"
	"github.com/simonhull/spikeglx/internal/store"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // The input was read but could not be decoded
	ExitCommandError = 2 // Command error (bad flags, missing files, empty folders)
)

// Error codes reported in structured error output.
const (
	ErrCodeGeneric     = "E000"
	ErrCodeNotFound    = "E001"
	ErrCodeConfig      = "E002"
	ErrCodeMalformed   = "E003"
	ErrCodeProbeType   = "E004"
	ErrCodeNoProbes    = "E005"
	ErrCodeUnsupported = "E006"
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// wrapError attaches the exit code matching a library error: missing inputs
// and bad parameters are command errors, undecodable inputs are failures.
func wrapError(message string, err error) *ExitError {
	code := ExitFailure
	if errors.Is(err, spikeglx.ErrFileNotFound) ||
		errors.Is(err, spikeglx.ErrNoProbeFiles) ||
		errors.Is(err, spikeglx.ErrConfig) {
		code = ExitCommandError
	}
	return WrapExitError(code, message, err)
}

// classify maps an error to its exit code and structured error code. Errors
// that are not ExitErrors come from cobra flag or argument parsing.
func classify(err error) (int, string) {
	errCode := ErrCodeGeneric
	switch {
	case errors.Is(err, spikeglx.ErrFileNotFound), errors.Is(err, store.ErrNotFound):
		errCode = ErrCodeNotFound
	case errors.Is(err, spikeglx.ErrNoProbeFiles):
		errCode = ErrCodeNoProbes
	case errors.Is(err, spikeglx.ErrConfig):
		errCode = ErrCodeConfig
	case errors.Is(err, spikeglx.ErrMalformedMetadata):
		errCode = ErrCodeMalformed
	case errors.Is(err, spikeglx.ErrUnsupportedProbeType):
		errCode = ErrCodeProbeType
	case errors.Is(err, spikeglx.ErrUnsupportedPlatform):
		errCode = ErrCodeUnsupported
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code, errCode
	}
	return ExitCommandError, errCode
}

// TextRenderer is implemented by results with a human-readable form.
type TextRenderer interface {
	RenderText(w io.Writer) error
}

// OutputFormatter handles text, JSON and YAML output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool
}

// CLIResponse is the standard structured response format for CLI output.
type CLIResponse struct {
	Status string    `json:"status" yaml:"status"`                   // "ok" or "error"
	Data   any       `json:"data,omitempty" yaml:"data,omitempty"`   // success payload
	Error  *CLIError `json:"error,omitempty" yaml:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code" yaml:"code"`                           // "E001", "E002", etc.
	Message string `json:"message" yaml:"message"`                     // human-readable message
	Details any    `json:"details,omitempty" yaml:"details,omitempty"` // additional context
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data any) error {
	switch f.Format {
	case "json":
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(CLIResponse{Status: "ok", Data: data})
	case "yaml":
		return f.encodeYAML(CLIResponse{Status: "ok", Data: data})
	}

	if r, ok := data.(TextRenderer); ok {
		return r.RenderText(f.Writer)
	}
	_, err := fmt.Fprintln(f.Writer, data)
	return err
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details any) error {
	resp := CLIResponse{
		Status: "error",
		Error:  &CLIError{Code: code, Message: message, Details: details},
	}
	switch f.Format {
	case "json":
		return json.NewEncoder(f.Writer).Encode(resp)
	case "yaml":
		return f.encodeYAML(resp)
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

func (f *OutputFormatter) encodeYAML(v any) error {
	enc := yaml.NewEncoder(f.Writer)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Uses ErrWriter if set, otherwise falls back to Writer.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}
