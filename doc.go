// Package chat2html converts a saved conversation page into a sanitized,
// self-contained HTML document with embedded images.
//
// # Quick Start
//
// Create a service and convert a snapshot:
//
//	svc := chat2html.New()
//	res := svc.Convert(ctx, chat2html.Input{
//	    HTML:    string(snapshot),
//	    BaseDir: filepath.Dir(snapshotPath),
//	})
//	if !res.Success {
//	    log.Fatal(res.Err)
//	}
//	os.WriteFile(res.Artifact.Filename, res.Artifact.Bytes, 0644)
//
// The result carries the finished document (res.Artifact), an optional
// Markdown rendition (res.Markdown), and per-run counters (res.Stats).
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Turn extraction from the snapshot DOM (role markers, streaming check)
//  2. Per-turn cleaning: structural pre-filter, then allow-list sanitization
//  3. Per-image downscaling and re-encoding to data URIs
//  4. Document assembly (theme styles, original turn order, single join)
//
// Turns are processed in fixed-size batches with a progress callback and a
// cooperative yield between batches. Everything runs offline: image sources
// are resolved from data URIs or files next to the snapshot, never fetched
// over the network.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	svc := chat2html.New(
//	    chat2html.WithLogger(logger),
//	    chat2html.WithImageLoader(loader),
//	)
//
// Per-conversion options are passed via Input: theme, image quality preset,
// batch size, progress callback, and the Markdown toggle.
package chat2html
