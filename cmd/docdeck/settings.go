package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/VantageDataChat/docdeck"
	"github.com/VantageDataChat/docdeck/content"
	"github.com/VantageDataChat/docdeck/internal/config"
	"github.com/VantageDataChat/docdeck/internal/log"
	"github.com/spf13/cobra"
)

// addContentFlags registers the flags shared by every command that renders.
func addContentFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", "",
		"Path to configuration file (default: .docdeck.yaml in current or home directory)")
	cmd.Flags().String("report", "", "Report content YAML (default: built-in report)")
	cmd.Flags().String("deck", "", "Deck content YAML (default: built-in deck)")
	cmd.Flags().String("page-size", config.DefaultPageSize, "Report paper size: a4 or letter")
	cmd.Flags().Float64("margin", config.DefaultMarginCM, "Report margin in centimeters")
	cmd.Flags().StringSlice("font-dir", nil, "Directory to search for theme fonts (repeatable)")
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig loads the configuration file, if any, and applies the flags
// the user set on top of it.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg := config.NewConfig()
	if found := config.FindConfigFile(configPath); found != "" {
		cfg, err = config.LoadConfigFile(found)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", found, err)
		}
	} else if configPath != "" {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, configPath)
	}

	strs := map[string]*string{
		"report":      &cfg.ReportPath,
		"deck":        &cfg.DeckPath,
		"pdf":         &cfg.PDFPath,
		"pptx":        &cfg.PPTXPath,
		"markdown":    &cfg.MarkdownPath,
		"html":        &cfg.HTMLPath,
		"preview-dir": &cfg.PreviewDir,
		"page-size":   &cfg.PageSize,
		"date":        &cfg.Date,
	}
	for name, dst := range strs {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			*dst = f.Value.String()
		}
	}
	if f := cmd.Flags().Lookup("margin"); f != nil && f.Changed {
		if cfg.MarginCM, err = cmd.Flags().GetFloat64("margin"); err != nil {
			return nil, err
		}
	}
	if f := cmd.Flags().Lookup("preview-width"); f != nil && f.Changed {
		if cfg.PreviewWidth, err = cmd.Flags().GetInt("preview-width"); err != nil {
			return nil, err
		}
	}
	if f := cmd.Flags().Lookup("font-dir"); f != nil && f.Changed {
		dirs, err := cmd.Flags().GetStringSlice("font-dir")
		if err != nil {
			return nil, err
		}
		cfg.FontDirs = append(cfg.FontDirs, dirs...)
	}
	if getVerboseFlag(cmd) {
		cfg.Verbose = true
	}
	return cfg, nil
}

// setupLogger creates the command logger and makes it the default.
func setupLogger(cfg *config.Config) *slog.Logger {
	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)
	return logger
}

// newGenerator builds the theme, font cache and page geometry described by
// cfg.
func newGenerator(cfg *config.Config) (*docdeck.Generator, error) {
	theme := docdeck.DefaultTheme()
	if len(cfg.Colors) > 0 {
		overrides := make(map[string]docdeck.Color, len(cfg.Colors))
		for name, v := range cfg.Colors {
			c, err := docdeck.ParseColor(v)
			if err != nil {
				return nil, fmt.Errorf("color %s: %w", name, err)
			}
			overrides[name] = c
		}
		var err error
		if theme, err = theme.WithColors(overrides); err != nil {
			return nil, err
		}
	}

	size := docdeck.A4
	if strings.EqualFold(cfg.PageSize, "letter") {
		size = docdeck.Letter
	}
	gen := docdeck.NewGenerator(theme, docdeck.NewFontCache(cfg.FontDirs...))
	gen.SetPageGeometry(docdeck.PageGeometry{
		Size:        size,
		Orientation: docdeck.Portrait,
		Margin:      docdeck.UniformMargin(cfg.MarginCM),
	})

	date, err := cfg.ParsedDate()
	if err != nil {
		return nil, err
	}
	gen.SetDate(date)
	return gen, nil
}

func loadReport(cfg *config.Config) (*content.Report, error) {
	if cfg.ReportPath == "" {
		return content.DefaultReport()
	}
	return content.LoadReportFile(cfg.ReportPath)
}

func loadDeck(cfg *config.Config) (*content.Deck, error) {
	if cfg.DeckPath == "" {
		return content.DefaultDeck()
	}
	return content.LoadDeckFile(cfg.DeckPath)
}

// writeArtifact writes through a temporary file so a failed write never
// leaves a partial file at path.
func writeArtifact(path string, write func(io.Writer) error) error {
	f, err := docdeck.CreateAtomic(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := write(f); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Commit()
}

func reportLanguage(rep *content.Report) string {
	if rep.Language == "" {
		return "en"
	}
	return rep.Language
}
