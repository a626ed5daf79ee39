package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	chat2html "github.com/alnah/go-chat2html"
	"github.com/alnah/go-chat2html/internal/config"
	"github.com/alnah/go-chat2html/internal/extract"
	"github.com/alnah/go-chat2html/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput      = errors.New("no input snapshot specified")
	ErrReadSnapshot = errors.New("failed to read snapshot file")
	ErrWriteOutput  = errors.New("failed to write output file")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// run executes one conversion from a saved page snapshot.
func run(ctx context.Context, flags *convertFlags, args []string, stdout, stderr io.Writer) error {
	if flags.version {
		fmt.Fprintf(stdout, "chat2html %s\n", Version)
		return nil
	}

	if len(args) == 0 {
		printUsage(stderr)
		return ErrNoInput
	}
	inputPath := args[0]

	snapshot, err := os.ReadFile(inputPath) // #nosec G304 -- input path is user-provided
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrReadSnapshot, inputPath, err)
	}

	cfg := config.DefaultConfig()
	if flags.config != "" {
		cfg, err = config.LoadConfig(flags.config)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(nil))
			}
			return fmt.Errorf("loading config: %w", err)
		}
	}
	mergeFlags(flags, cfg)

	svc := chat2html.New(chat2html.WithLogger(buildLogger(flags, stderr)))

	input := chat2html.Input{
		HTML:      string(snapshot),
		BaseDir:   filepath.Dir(inputPath),
		Title:     flags.title,
		Theme:     cfg.Export.Theme,
		Quality:   cfg.Export.ImageQuality,
		BatchSize: cfg.Export.BatchSize,
		Markdown:  cfg.Export.Markdown,
	}
	if !flags.quiet {
		input.OnProgress = func(processed, total int) {
			fmt.Fprintf(stderr, "\rProcessed %d/%d turns", processed, total)
			if processed == total {
				fmt.Fprintln(stderr)
			}
		}
	}

	res := svc.Convert(ctx, input)
	if !res.Success {
		return describeFailure(res)
	}

	outputDir := resolveOutputDir(flags.output, cfg, inputPath)
	if err := os.MkdirAll(outputDir, dirPermissions); err != nil {
		return fmt.Errorf("%w: %v%s", ErrWriteOutput, err, hints.ForOutputDirectory())
	}

	if err := writeArtifact(outputDir, res.Artifact); err != nil {
		return err
	}
	if !flags.quiet {
		fmt.Fprintf(stdout, "Wrote %s (%d turns, %d images embedded)\n",
			filepath.Join(outputDir, res.Artifact.Filename), res.Stats.Turns, res.Stats.EmbeddedImages)
	}

	if res.Markdown != nil {
		if err := writeArtifact(outputDir, res.Markdown); err != nil {
			return err
		}
		if !flags.quiet {
			fmt.Fprintf(stdout, "Wrote %s\n", filepath.Join(outputDir, res.Markdown.Filename))
		}
	}

	if res.Stats.FailedImages > 0 {
		fmt.Fprintf(stderr, "warning: %d image(s) could not be embedded%s\n",
			res.Stats.FailedImages, hints.ForRemoteImages())
	}

	return nil
}

// describeFailure turns a failed Result into an error with an actionable hint.
func describeFailure(res chat2html.Result) error {
	err := res.Err
	if err == nil {
		err = chat2html.ErrConversionFailed
	}
	switch {
	case res.IsStreaming:
		return fmt.Errorf("%w%s", err, hints.ForStreaming())
	case errors.Is(err, extract.ErrNoConversation):
		return fmt.Errorf("%w%s", err, hints.ForNoConversation())
	}
	return err
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.theme != "" {
		cfg.Export.Theme = flags.theme
	}
	if flags.quality != "" {
		cfg.Export.ImageQuality = flags.quality
	}
	if flags.batchSize != 0 {
		cfg.Export.BatchSize = flags.batchSize
	}
	if flags.markdown {
		cfg.Export.Markdown = true
	}
}

// resolveOutputDir picks the output directory: flag, then config, then the
// snapshot's own directory.
func resolveOutputDir(flagValue string, cfg *config.Config, inputPath string) string {
	if flagValue != "" {
		return flagValue
	}
	if cfg.Output.DefaultDir != "" {
		return cfg.Output.DefaultDir
	}
	return filepath.Dir(inputPath)
}

// writeArtifact saves one artifact under dir using its suggested filename.
func writeArtifact(dir string, artifact *chat2html.Artifact) error {
	path := filepath.Join(dir, artifact.Filename)
	if err := os.WriteFile(path, artifact.Bytes, filePermissions); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteOutput, path, err)
	}
	return nil
}

// buildLogger builds the run logger: human-readable on stderr, level from
// the verbosity flags.
func buildLogger(flags *convertFlags, stderr io.Writer) zerolog.Logger {
	level := zerolog.WarnLevel
	switch {
	case flags.quiet:
		level = zerolog.ErrorLevel
	case flags.verbose:
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: stderr}).Level(level).With().Timestamp().Logger()
}
