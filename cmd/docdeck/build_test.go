package main

import (
	"archive/zip"
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/VantageDataChat/docdeck/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.NewConfig()
	cfg.PDFPath = filepath.Join(dir, "report.pdf")
	cfg.PPTXPath = filepath.Join(dir, "deck.pptx")
	cfg.Date = "2025-01-01"
	return cfg
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunBuild(t *testing.T) {
	t.Parallel()

	t.Run("writes pdf and pptx", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig(t)
		var out bytes.Buffer
		if err := runBuild(cfg, discardLogger(), &out); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		pdf, err := os.ReadFile(cfg.PDFPath)
		if err != nil {
			t.Fatalf("pdf not written: %v", err)
		}
		if !bytes.HasPrefix(pdf, []byte("%PDF-")) {
			t.Error("pdf does not start with the PDF header")
		}

		zr, err := zip.OpenReader(cfg.PPTXPath)
		if err != nil {
			t.Fatalf("pptx is not a zip archive: %v", err)
		}
		defer zr.Close()
		found := false
		for _, f := range zr.File {
			if f.Name == "ppt/presentation.xml" {
				found = true
			}
		}
		if !found {
			t.Error("pptx has no ppt/presentation.xml")
		}

		if !strings.Contains(out.String(), "PDF report generated") || !strings.Contains(out.String(), "PPTX presentation generated") {
			t.Errorf("unexpected output %q", out.String())
		}
	})

	t.Run("skips an output with an empty path", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig(t)
		cfg.PPTXPath = ""
		if err := runBuild(cfg, discardLogger(), io.Discard); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := os.Stat(cfg.PDFPath); err != nil {
			t.Errorf("expected pdf: %v", err)
		}
		entries, _ := os.ReadDir(filepath.Dir(cfg.PDFPath))
		if len(entries) != 1 {
			t.Errorf("expected only the pdf in the output directory, got %d entries", len(entries))
		}
	})

	t.Run("writes markdown html and previews", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig(t)
		dir := filepath.Dir(cfg.PDFPath)
		cfg.MarkdownPath = filepath.Join(dir, "report.md")
		cfg.HTMLPath = filepath.Join(dir, "report.html")
		cfg.PreviewDir = filepath.Join(dir, "previews")
		cfg.PreviewWidth = 200
		if err := runBuild(cfg, discardLogger(), io.Discard); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		md, err := os.ReadFile(cfg.MarkdownPath)
		if err != nil || !bytes.HasPrefix(md, []byte("# ")) {
			t.Errorf("expected markdown starting with a title, err=%v", err)
		}
		html, err := os.ReadFile(cfg.HTMLPath)
		if err != nil || !bytes.Contains(html, []byte("<!DOCTYPE html>")) {
			t.Errorf("expected an html document, err=%v", err)
		}
		if _, err := os.Stat(filepath.Join(cfg.PreviewDir, "page01.png")); err != nil {
			t.Errorf("expected first page preview: %v", err)
		}
		if _, err := os.Stat(filepath.Join(cfg.PreviewDir, "slide01.png")); err != nil {
			t.Errorf("expected first slide preview: %v", err)
		}
	})

	t.Run("missing report file fails before writing", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig(t)
		cfg.ReportPath = filepath.Join(t.TempDir(), "missing.yaml")
		if err := runBuild(cfg, discardLogger(), io.Discard); err == nil {
			t.Fatal("expected an error for a missing report")
		}
		if _, err := os.Stat(cfg.PDFPath); !os.IsNotExist(err) {
			t.Error("expected no pdf to be written")
		}
	})

	t.Run("unknown color token fails", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig(t)
		cfg.Colors = map[string]string{"sparkle": "#FFFFFF"}
		if err := runBuild(cfg, discardLogger(), io.Discard); err == nil {
			t.Fatal("expected an error for an unknown color token")
		}
	})
}

func TestBuildCmdFlagsOverrideConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "docdeck.yaml")
	if err := os.WriteFile(cfgPath, []byte("page_size: letter\npdf: from-file.pdf\n"), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cmd := NewBuildCmd()
	if err := cmd.ParseFlags([]string{"-c", cfgPath, "--pdf", filepath.Join(dir, "flag.pdf"), "--margin", "1.5"}); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}
	cfg, err := buildConfig(cmd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.PDFPath != filepath.Join(dir, "flag.pdf") {
		t.Errorf("expected flag to override pdf path, got %q", cfg.PDFPath)
	}
	if cfg.PageSize != "letter" {
		t.Errorf("expected page size from file, got %q", cfg.PageSize)
	}
	if cfg.MarginCM != 1.5 {
		t.Errorf("expected margin from flag, got %g", cfg.MarginCM)
	}
	if cfg.ConfigFilePath != cfgPath {
		t.Errorf("expected ConfigFilePath %q, got %q", cfgPath, cfg.ConfigFilePath)
	}
}

func TestBuildCmdMissingExplicitConfig(t *testing.T) {
	t.Parallel()

	cmd := NewBuildCmd()
	if err := cmd.ParseFlags([]string{"-c", filepath.Join(t.TempDir(), "none.yaml")}); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}
	if _, err := buildConfig(cmd); err == nil {
		t.Fatal("expected an error for a missing explicit config file")
	}
}
