package config

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "docdeck"

	// DefaultPDFPath is where the technical report is written.
	DefaultPDFPath = "Uy-Joy_Technical_Report.pdf"

	// DefaultPPTXPath is where the presentation is written.
	DefaultPPTXPath = "Uy-Joy_Presentation.pptx"

	// DefaultPageSize is the report paper size.
	DefaultPageSize = "a4"

	// DefaultMarginCM is the report margin on every side, in centimeters.
	DefaultMarginCM = 2.0

	// DefaultPreviewWidth is the width of preview images in pixels.
	DefaultPreviewWidth = 960

	// DateLayout is the format of the metadata date.
	DateLayout = "2006-01-02"

	maxMarginCM = 8.0
)

var hexColor = regexp.MustCompile(`^#?([0-9A-Fa-f]{6}|[0-9A-Fa-f]{8})$`)

// Config holds all options of a docdeck run. The yaml keys are the ones
// accepted in the configuration file; CLI flags override them.
type Config struct {
	// ReportPath is the report content file. Empty means the embedded report.
	ReportPath string `yaml:"report"`

	// DeckPath is the deck content file. Empty means the embedded deck.
	DeckPath string `yaml:"deck"`

	// PDFPath is the paginated document output. Empty skips the PDF.
	PDFPath string `yaml:"pdf"`

	// PPTXPath is the slide deck output. Empty skips the PPTX.
	PPTXPath string `yaml:"pptx"`

	// MarkdownPath optionally receives the report as Markdown.
	MarkdownPath string `yaml:"markdown"`

	// HTMLPath optionally receives the report as a standalone HTML page.
	HTMLPath string `yaml:"html"`

	// PreviewDir optionally receives PNG previews of every page and slide.
	PreviewDir string `yaml:"preview_dir"`

	// PreviewWidth is the width of preview images in pixels.
	PreviewWidth int `yaml:"preview_width"`

	// PageSize is "a4" or "letter".
	PageSize string `yaml:"page_size"`

	// MarginCM is the page margin on every side.
	MarginCM float64 `yaml:"margin_cm"`

	// Colors overrides theme color tokens, keyed by token name.
	Colors map[string]string `yaml:"colors"`

	// FontDirs are scanned for TrueType and OpenType fonts matching the
	// theme families. Without them the built-in Go fonts are used, which
	// keeps output identical across machines.
	FontDirs []string `yaml:"font_dirs"`

	// Date fixes the creation date written into file metadata, YYYY-MM-DD.
	// Empty means the time of the run.
	Date string `yaml:"date"`

	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose"`

	// ConfigFilePath is the file the configuration was loaded from, if any.
	ConfigFilePath string `yaml:"-"`
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		PDFPath:      DefaultPDFPath,
		PPTXPath:     DefaultPPTXPath,
		PageSize:     DefaultPageSize,
		MarginCM:     DefaultMarginCM,
		PreviewWidth: DefaultPreviewWidth,
		Colors:       map[string]string{},
	}
}

// XDGConfigDir returns the XDG config directory for docdeck.
// On Linux: ~/.config/docdeck
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGDataDir returns the XDG data directory for docdeck, where user fonts
// may be installed.
// On Linux: ~/.local/share/docdeck
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// Validate checks the configuration and returns the first problem found.
func (c *Config) Validate() error {
	if c.PDFPath == "" && c.PPTXPath == "" {
		return ErrNoOutput
	}
	switch strings.ToLower(c.PageSize) {
	case "a4", "letter":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, c.PageSize)
	}
	if c.MarginCM < 0 || c.MarginCM > maxMarginCM {
		return fmt.Errorf("%w: %g", ErrInvalidMargin, c.MarginCM)
	}
	if c.PreviewDir != "" && c.PreviewWidth <= 0 {
		return ErrInvalidPreviewWidth
	}
	for name, v := range c.Colors {
		if !hexColor.MatchString(v) {
			return fmt.Errorf("%w: %s=%q", ErrInvalidColor, name, v)
		}
	}
	if _, err := c.ParsedDate(); err != nil {
		return err
	}
	return nil
}

// ParsedDate returns the metadata date, or the zero time when unset.
func (c *Config) ParsedDate() (time.Time, error) {
	if c.Date == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(DateLayout, c.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, c.Date)
	}
	return t, nil
}
