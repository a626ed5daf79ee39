package chat2html

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/alnah/go-chat2html/internal/imaging"
	"github.com/alnah/go-chat2html/internal/sanitize"
)

// Theme constants.
const (
	ThemeAuto  = "auto"
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Image quality preset names. QualityNone disables image embedding entirely.
const (
	QualityLow    = "low"
	QualityMedium = "medium"
	QualityHigh   = "high"
	QualityNone   = "none"
)

// Batch size bounds.
const (
	MinBatchSize     = 1
	MaxBatchSize     = 100
	DefaultBatchSize = 10
)

// ProgressFunc receives batch progress during a run. processed is clamped to
// total; the final call always reports (total, total).
type ProgressFunc func(processed, total int)

// Input contains conversion parameters.
type Input struct {
	HTML       string       // Page snapshot markup (required)
	BaseDir    string       // Directory for resolving local image paths (optional)
	Title      string       // Title override (optional, "" = from document)
	Theme      string       // "auto", "light", "dark" ("" = auto)
	Quality    string       // "low", "medium", "high", "none" ("" = medium)
	BatchSize  int          // Turns per batch (0 = default 10)
	Markdown   bool         // Also emit a Markdown artifact
	OnProgress ProgressFunc // Progress callback (optional)
}

// Artifact is a finished output document ready to hand to a save mechanism.
type Artifact struct {
	Bytes    []byte
	MIME     string
	Filename string
}

// Stats holds per-run counters, reported for observability only.
type Stats struct {
	Turns          int
	EmbeddedImages int
	SkippedImages  int
	FailedImages   int
	ParityRoles    int // Turns whose role came from index parity, not a marker
}

// Result is the structured outcome of a conversion. A run never panics or
// leaks errors past Convert; failures land here.
type Result struct {
	Success     bool
	IsStreaming bool
	Err         error
	Artifact    *Artifact
	Markdown    *Artifact
	Stats       Stats
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for run diagnostics.
// The default is a nop logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithSanitizer replaces the allow-list sanitizer. Passing nil simulates a
// missing sanitizer: every run fails with ErrSanitizerUnavailable.
func WithSanitizer(p sanitize.Policy) Option {
	return func(s *Service) {
		s.policy = p
	}
}

// WithHighlighter replaces the code highlighter. Passing nil degrades code
// blocks to unstyled output without failing the run.
func WithHighlighter(h sanitize.Highlighter) Option {
	return func(s *Service) {
		s.highlighter = h
	}
}

// WithImageLoader replaces the image loader used to resolve sources.
// The default resolves data URIs and files under Input.BaseDir.
func WithImageLoader(l imaging.Loader) Option {
	return func(s *Service) {
		s.loader = l
	}
}

// WithYield replaces the cooperative yield invoked between batches.
// Tests inject a counting yield; the default defers to the Go scheduler.
func WithYield(y func(ctx context.Context) error) Option {
	return func(s *Service) {
		s.yield = y
	}
}

// WithClock injects a fixed time source for deterministic filenames and
// debug comments in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// validate checks Input fields and applies defaults.
func (in *Input) validate() error {
	if strings.TrimSpace(in.HTML) == "" {
		return ErrEmptyInput
	}
	switch in.Theme {
	case "":
		in.Theme = ThemeAuto
	case ThemeAuto, ThemeLight, ThemeDark:
	default:
		return fmt.Errorf("%w: %q (must be auto, light, or dark)", ErrInvalidTheme, in.Theme)
	}
	switch in.Quality {
	case "":
		in.Quality = QualityMedium
	case QualityLow, QualityMedium, QualityHigh, QualityNone:
	default:
		return fmt.Errorf("%w: %q (must be low, medium, high, or none)", ErrInvalidQuality, in.Quality)
	}
	switch {
	case in.BatchSize == 0:
		in.BatchSize = DefaultBatchSize
	case in.BatchSize < MinBatchSize || in.BatchSize > MaxBatchSize:
		return fmt.Errorf("%w: %d (must be between %d and %d)", ErrInvalidBatchSize, in.BatchSize, MinBatchSize, MaxBatchSize)
	}
	return nil
}
