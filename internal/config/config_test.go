package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestNewConfig documents the defaults; changing one should fail here.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default PDFPath is the technical report", func(t *testing.T) {
		t.Parallel()
		if cfg.PDFPath != "Uy-Joy_Technical_Report.pdf" {
			t.Errorf("expected PDFPath to be 'Uy-Joy_Technical_Report.pdf', got '%s'", cfg.PDFPath)
		}
	})

	t.Run("default PPTXPath is the presentation", func(t *testing.T) {
		t.Parallel()
		if cfg.PPTXPath != "Uy-Joy_Presentation.pptx" {
			t.Errorf("expected PPTXPath to be 'Uy-Joy_Presentation.pptx', got '%s'", cfg.PPTXPath)
		}
	})

	t.Run("default PageSize is a4", func(t *testing.T) {
		t.Parallel()
		if cfg.PageSize != "a4" {
			t.Errorf("expected PageSize to be 'a4', got '%s'", cfg.PageSize)
		}
	})

	t.Run("default MarginCM is 2", func(t *testing.T) {
		t.Parallel()
		if cfg.MarginCM != 2.0 {
			t.Errorf("expected MarginCM to be 2, got %g", cfg.MarginCM)
		}
	})

	t.Run("default PreviewWidth is 960", func(t *testing.T) {
		t.Parallel()
		if cfg.PreviewWidth != 960 {
			t.Errorf("expected PreviewWidth to be 960, got %d", cfg.PreviewWidth)
		}
	})

	t.Run("default has no optional outputs", func(t *testing.T) {
		t.Parallel()
		if cfg.MarkdownPath != "" || cfg.HTMLPath != "" || cfg.PreviewDir != "" {
			t.Error("expected markdown, html and preview outputs to be unset")
		}
	})

	t.Run("default config is valid", func(t *testing.T) {
		t.Parallel()
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(c *Config)
		want   error
	}{
		{name: "letter page size is valid", modify: func(c *Config) { c.PageSize = "Letter" }},
		{name: "pdf only is valid", modify: func(c *Config) { c.PPTXPath = "" }},
		{name: "pptx only is valid", modify: func(c *Config) { c.PDFPath = "" }},
		{name: "zero margin is valid", modify: func(c *Config) { c.MarginCM = 0 }},
		{name: "six digit color is valid", modify: func(c *Config) { c.Colors["primary"] = "#112233" }},
		{name: "eight digit color is valid", modify: func(c *Config) { c.Colors["accent"] = "FF112233" }},
		{name: "valid date", modify: func(c *Config) { c.Date = "2025-01-31" }},
		{
			name:   "no outputs returns ErrNoOutput",
			modify: func(c *Config) { c.PDFPath, c.PPTXPath = "", "" },
			want:   ErrNoOutput,
		},
		{
			name:   "unknown page size returns ErrInvalidPageSize",
			modify: func(c *Config) { c.PageSize = "a3" },
			want:   ErrInvalidPageSize,
		},
		{
			name:   "negative margin returns ErrInvalidMargin",
			modify: func(c *Config) { c.MarginCM = -1 },
			want:   ErrInvalidMargin,
		},
		{
			name:   "huge margin returns ErrInvalidMargin",
			modify: func(c *Config) { c.MarginCM = 12 },
			want:   ErrInvalidMargin,
		},
		{
			name:   "previews with zero width return ErrInvalidPreviewWidth",
			modify: func(c *Config) { c.PreviewDir, c.PreviewWidth = "previews", 0 },
			want:   ErrInvalidPreviewWidth,
		},
		{
			name:   "named color returns ErrInvalidColor",
			modify: func(c *Config) { c.Colors["primary"] = "navy" },
			want:   ErrInvalidColor,
		},
		{
			name:   "malformed date returns ErrInvalidDate",
			modify: func(c *Config) { c.Date = "31/01/2025" },
			want:   ErrInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := NewConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestParsedDate(t *testing.T) {
	t.Parallel()

	t.Run("empty date is the zero time", func(t *testing.T) {
		t.Parallel()
		got, err := NewConfig().ParsedDate()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.IsZero() {
			t.Errorf("expected zero time, got %v", got)
		}
	})

	t.Run("date is parsed as UTC midnight", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		cfg.Date = "2025-03-14"
		got, err := cfg.ParsedDate()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Year() != 2025 || got.Month() != 3 || got.Day() != 14 || got.Hour() != 0 {
			t.Errorf("unexpected date %v", got)
		}
	})
}

func TestXDGDirs(t *testing.T) {
	t.Parallel()

	if !strings.HasSuffix(XDGConfigDir(), AppName) {
		t.Errorf("expected XDGConfigDir to end with %q, got %q", AppName, XDGConfigDir())
	}
	if !strings.HasSuffix(XDGDataDir(), AppName) {
		t.Errorf("expected XDGDataDir to end with %q, got %q", AppName, XDGDataDir())
	}
}

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("missing file returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()
		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("keys in the file override defaults", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		data := `pdf: out/report.pdf
page_size: letter
margin_cm: 1.5
colors:
  primary: "#0F766E"
font_dirs:
  - /usr/share/fonts
date: "2025-01-01"
`
		if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cfg, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.PDFPath != "out/report.pdf" {
			t.Errorf("expected PDFPath 'out/report.pdf', got '%s'", cfg.PDFPath)
		}
		if cfg.PageSize != "letter" || cfg.MarginCM != 1.5 {
			t.Errorf("unexpected page settings %q %g", cfg.PageSize, cfg.MarginCM)
		}
		if cfg.Colors["primary"] != "#0F766E" {
			t.Errorf("expected primary override, got %v", cfg.Colors)
		}
		if len(cfg.FontDirs) != 1 || cfg.FontDirs[0] != "/usr/share/fonts" {
			t.Errorf("unexpected font dirs %v", cfg.FontDirs)
		}
		if cfg.PPTXPath != DefaultPPTXPath {
			t.Errorf("expected PPTXPath to keep its default, got '%s'", cfg.PPTXPath)
		}
		if cfg.ConfigFilePath != path {
			t.Errorf("expected ConfigFilePath %q, got %q", path, cfg.ConfigFilePath)
		}
	})

	t.Run("malformed yaml returns an error", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(path, []byte("pdf: [unclosed"), 0o600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected an error for malformed yaml")
		}
	})
}

func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("explicit existing path is returned", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(path, []byte("{}"), 0o600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		if got := FindConfigFile(path); got != path {
			t.Errorf("expected %q, got %q", path, got)
		}
	})

	t.Run("explicit missing path returns empty string", func(t *testing.T) {
		t.Parallel()
		if got := FindConfigFile(filepath.Join(t.TempDir(), "none.yaml")); got != "" {
			t.Errorf("expected empty string, got %q", got)
		}
	})
}
