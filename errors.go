package chat2html

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyInput           = errors.New("input HTML cannot be empty")
	ErrRunInProgress        = errors.New("a conversion is already running")
	ErrStreamingInProgress  = errors.New("conversation is still generating")
	ErrSanitizerUnavailable = errors.New("sanitizer is unavailable, reload the page and retry")
	ErrConversionFailed     = errors.New("conversion failed")
	ErrMarkdownConversion   = errors.New("markdown conversion failed")

	// Input validation errors.
	ErrInvalidTheme     = errors.New("invalid theme")
	ErrInvalidQuality   = errors.New("invalid image quality preset")
	ErrInvalidBatchSize = errors.New("invalid batch size")
)
