package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// convertFlags holds all CLI flags.
type convertFlags struct {
	output    string
	config    string
	title     string
	theme     string
	quality   string
	batchSize int
	markdown  bool
	quiet     bool
	verbose   bool
	version   bool
}

// parseFlags parses CLI flags and returns positional args.
func parseFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("chat2html", flag.ContinueOnError)
	f := &convertFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output directory (default: snapshot directory)")
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.title, "title", "", "title override (\"\" = from page)")
	fs.StringVar(&f.theme, "theme", "", "color theme: auto, light, dark")
	fs.StringVar(&f.quality, "image-quality", "", "image preset: low, medium, high, none")
	fs.IntVar(&f.batchSize, "batch-size", 0, "turns per batch (1-100, 0 = default)")
	fs.BoolVarP(&f.markdown, "markdown", "m", false, "also write a Markdown file")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed diagnostics")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	fs.Usage = func() { printUsage(os.Stderr) }

	if err := fs.Parse(args[1:]); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
