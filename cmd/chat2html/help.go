package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: chat2html <snapshot.html> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert a saved conversation page into a clean, self-contained HTML document.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  snapshot.html             Saved page snapshot to convert")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default: snapshot directory)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -m, --markdown            Also write a Markdown file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --title <s>           Title override (\"\" = from page)")
	fmt.Fprintln(w, "      --theme <s>           Color theme: auto, light, dark")
	fmt.Fprintln(w, "      --image-quality <s>   Image preset: low, medium, high, none")
	fmt.Fprintln(w, "      --batch-size <n>      Turns per batch (1-100)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed diagnostics")
	fmt.Fprintln(w, "      --version             Print version and exit")
}
