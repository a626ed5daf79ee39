package chat2html

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/alnah/go-chat2html/internal/assemble"
	"github.com/alnah/go-chat2html/internal/batch"
	"github.com/alnah/go-chat2html/internal/extract"
	"github.com/alnah/go-chat2html/internal/imaging"
	"github.com/alnah/go-chat2html/internal/markdown"
	"github.com/alnah/go-chat2html/internal/sanitize"
)

// Version is stamped into the output document's debug comment.
const Version = "0.1.0"

// Service orchestrates the conversation-to-document pipeline.
type Service struct {
	logger      zerolog.Logger
	policy      sanitize.Policy
	highlighter sanitize.Highlighter
	loader      imaging.Loader
	yield       func(ctx context.Context) error
	now         func() time.Time
	running     atomic.Bool
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithLogger, WithYield).
func New(opts ...Option) *Service {
	s := &Service{
		logger:      zerolog.Nop(),
		policy:      sanitize.NewAllowListPolicy(),
		highlighter: sanitize.NewChromaHighlighter(),
		yield:       batch.Gosched,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Convert runs the full pipeline and returns a structured Result. It never
// panics and never returns an error past the Result: failures of any kind
// land in Result.Err. Only one conversion runs at a time; a second call
// while one is in flight fails with ErrRunInProgress.
func (s *Service) Convert(ctx context.Context, in Input) Result {
	if !s.running.CompareAndSwap(false, true) {
		return failure(ErrRunInProgress)
	}
	defer s.running.Store(false)

	return s.convert(ctx, in)
}

// turnFragment is one cleaned turn, carried from the batch stage to assembly.
type turnFragment struct {
	role   extract.Role
	markup string
}

func (s *Service) convert(ctx context.Context, in Input) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().Interface("panic", r).Msg("conversion panicked")
			res = failure(fmt.Errorf("%w: %v", ErrConversionFailed, r))
		}
	}()

	if err := in.validate(); err != nil {
		return failure(err)
	}
	if s.policy == nil {
		return failure(ErrSanitizerUnavailable)
	}

	doc, err := extract.Parse(in.HTML)
	if err != nil {
		return failure(err)
	}
	if doc.Streaming() {
		return Result{IsStreaming: true, Err: ErrStreamingInProgress}
	}

	preset, ok := imaging.PresetByName(in.Quality)
	if !ok {
		return failure(fmt.Errorf("%w: %q", ErrInvalidQuality, in.Quality))
	}

	cleaner, err := sanitize.NewCleaner(s.policy, s.highlighter, preset.None())
	if err != nil {
		return failure(ErrSanitizerUnavailable)
	}

	loader := s.loader
	if loader == nil {
		loader = imaging.NewSnapshotLoader(in.BaseDir)
	}
	embedder := imaging.NewEmbedder(loader, preset, s.logger)

	turns := doc.Turns()
	stats := Stats{Turns: len(turns)}

	var imgStats imaging.Stats
	transform := func(ctx context.Context, turn extract.Turn) (turnFragment, error) {
		frag, err := cleaner.Clean(ctx, turn.Node)
		if err != nil {
			return turnFragment{}, fmt.Errorf("cleaning turn %d: %w", turn.Index, err)
		}
		imgStats.Add(embedder.EmbedAll(ctx, frag))

		markup, err := sanitize.RenderFragment(frag)
		if err != nil {
			return turnFragment{}, fmt.Errorf("rendering turn %d: %w", turn.Index, err)
		}
		if turn.FromParity {
			stats.ParityRoles++
		}
		return turnFragment{role: turn.Role, markup: markup}, nil
	}

	fragments, err := batch.Process(ctx, turns, transform, batch.Options{
		Size:       in.BatchSize,
		Yield:      s.yield,
		OnProgress: batch.ProgressFunc(in.OnProgress),
	})
	if err != nil {
		return failureWithStats(fmt.Errorf("%w: %w", ErrConversionFailed, err), stats)
	}

	stats.EmbeddedImages = imgStats.Embedded
	stats.SkippedImages = imgStats.Skipped
	stats.FailedImages = imgStats.Failed
	if stats.ParityRoles > 0 {
		s.logger.Warn().Int("turns", stats.ParityRoles).
			Msg("role markers missing, roles derived from turn order")
	}

	title := in.Title
	if title == "" {
		title = doc.Title()
	}
	date, hasDate := doc.CreatedAt()
	if !hasDate {
		date = s.now()
	}
	runID := uuid.NewString()

	var highlightCSS string
	if styled, ok := s.highlighter.(interface{ StyleSheet() string }); ok {
		highlightCSS = styled.StyleSheet()
	}

	builder := assemble.New(assemble.Meta{
		Title:        title,
		Theme:        in.Theme,
		Version:      Version,
		RunID:        runID,
		GeneratedAt:  s.now(),
		HighlightCSS: highlightCSS,
	})
	for _, frag := range fragments {
		builder.Append(string(frag.role), frag.markup)
	}
	docBytes, err := builder.Finalize()
	if err != nil {
		return failureWithStats(fmt.Errorf("%w: %v", ErrConversionFailed, err), stats)
	}

	res = Result{
		Success: true,
		Stats:   stats,
		Artifact: &Artifact{
			Bytes:    docBytes,
			MIME:     assemble.MIMEType,
			Filename: assemble.Filename(title, date, ".html"),
		},
	}

	if in.Markdown {
		md, err := s.renderMarkdown(title, fragments)
		if err != nil {
			// Markdown is a secondary artifact; its failure does not void
			// the HTML output.
			s.logger.Warn().Err(err).Msg("markdown artifact failed")
		} else {
			res.Markdown = &Artifact{
				Bytes:    []byte(md),
				MIME:     "text/markdown;charset=utf-8",
				Filename: assemble.Filename(title, date, ".md"),
			}
		}
	}

	s.logger.Info().
		Str("run", runID).
		Int("turns", stats.Turns).
		Int("embedded", stats.EmbeddedImages).
		Int("skipped", stats.SkippedImages).
		Int("failed", stats.FailedImages).
		Msg("conversion complete")
	return res
}

// renderMarkdown emits the Markdown artifact from the cleaned fragments.
func (s *Service) renderMarkdown(title string, fragments []turnFragment) (string, error) {
	turns := make([]markdown.TurnFragment, len(fragments))
	for i, frag := range fragments {
		turns[i] = markdown.TurnFragment{
			RoleLabel: roleLabel(frag.role),
			HTML:      frag.markup,
		}
	}
	out, err := markdown.NewConverter().Render(title, turns)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMarkdownConversion, err)
	}
	return out, nil
}

// roleLabel capitalizes a role for Markdown section headings.
func roleLabel(role extract.Role) string {
	if role == "" {
		return "Unknown"
	}
	return strings.ToUpper(string(role)[:1]) + string(role)[1:]
}

// failure wraps an error in a failed Result.
func failure(err error) Result {
	return Result{Err: err}
}

// failureWithStats keeps the counters gathered before the failure.
func failureWithStats(err error, stats Stats) Result {
	return Result{Err: err, Stats: stats}
}
