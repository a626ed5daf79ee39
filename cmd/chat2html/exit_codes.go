package main

import (
	"errors"
	"os"

	chat2html "github.com/alnah/go-chat2html"
	"github.com/alnah/go-chat2html/internal/config"
	"github.com/alnah/go-chat2html/internal/extract"
)

// Exit codes for the chat2html CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitRefused = 4 // Conversion refused (streaming, sanitizer, busy)
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Refusals (exit 4)
	if errors.Is(err, chat2html.ErrStreamingInProgress) ||
		errors.Is(err, chat2html.ErrSanitizerUnavailable) ||
		errors.Is(err, chat2html.ErrRunInProgress) {
		return ExitRefused
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadSnapshot) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, chat2html.ErrEmptyInput) ||
		errors.Is(err, chat2html.ErrInvalidTheme) ||
		errors.Is(err, chat2html.ErrInvalidQuality) ||
		errors.Is(err, chat2html.ErrInvalidBatchSize) ||
		errors.Is(err, extract.ErrNoConversation) ||
		errors.Is(err, extract.ErrNoTurns) ||
		errors.Is(err, extract.ErrParse) {
		return ExitUsage
	}

	return ExitGeneral
}
