package main

import "testing"

func TestParseFlags(t *testing.T) {
	flags, args, err := parseFlags([]string{
		"chat2html",
		"--theme", "dark",
		"--image-quality", "low",
		"--batch-size", "5",
		"-m",
		"-o", "out",
		"snapshot.html",
	})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}

	if flags.theme != "dark" {
		t.Errorf("theme = %q, want dark", flags.theme)
	}
	if flags.quality != "low" {
		t.Errorf("quality = %q, want low", flags.quality)
	}
	if flags.batchSize != 5 {
		t.Errorf("batchSize = %d, want 5", flags.batchSize)
	}
	if !flags.markdown {
		t.Error("markdown = false, want true")
	}
	if flags.output != "out" {
		t.Errorf("output = %q, want out", flags.output)
	}
	if len(args) != 1 || args[0] != "snapshot.html" {
		t.Errorf("args = %v, want [snapshot.html]", args)
	}
}

func TestParseFlagsDefaults(t *testing.T) {
	flags, args, err := parseFlags([]string{"chat2html", "snapshot.html"})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if flags.theme != "" || flags.quality != "" || flags.batchSize != 0 {
		t.Errorf("defaults not zero: %+v", flags)
	}
	if flags.markdown || flags.quiet || flags.verbose || flags.version {
		t.Errorf("bool defaults not false: %+v", flags)
	}
	if len(args) != 1 {
		t.Errorf("args = %v", args)
	}
}

func TestParseFlagsUnknownFlag(t *testing.T) {
	if _, _, err := parseFlags([]string{"chat2html", "--bogus"}); err == nil {
		t.Error("expected error for unknown flag")
	}
}

func TestMergeFlags(t *testing.T) {
	cfg := testConfig()
	mergeFlags(&convertFlags{theme: "light", batchSize: 20}, cfg)

	if cfg.Export.Theme != "light" {
		t.Errorf("Theme = %q, want light (flag wins)", cfg.Export.Theme)
	}
	if cfg.Export.BatchSize != 20 {
		t.Errorf("BatchSize = %d, want 20 (flag wins)", cfg.Export.BatchSize)
	}
	if cfg.Export.ImageQuality != "high" {
		t.Errorf("ImageQuality = %q, want high (config kept)", cfg.Export.ImageQuality)
	}
	if !cfg.Export.Markdown {
		t.Error("Markdown = false, want true (config kept)")
	}
}
