package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/VantageDataChat/docdeck"
	"github.com/VantageDataChat/docdeck/internal/config"
	"github.com/spf13/cobra"
)

// NewBuildCmd creates the build command.
func NewBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Render the PDF report and the PPTX deck",
		Long: `Build renders the report into a paginated PDF and the deck into a PPTX
presentation. Each artifact is written through a temporary file and
renamed into place, so a failed run never leaves a partial file behind.

Examples:
  # Render both artifacts with the built-in content
  docdeck build

  # Only the report, on letter paper
  docdeck build --pptx "" --page-size letter

  # Also write Markdown, HTML and PNG previews
  docdeck build --markdown report.md --html report.html --preview-dir previews`,
		Args: cobra.NoArgs,
		RunE: runBuildCmd,
	}

	addContentFlags(cmd)
	cmd.Flags().String("pdf", config.DefaultPDFPath, "PDF output path (empty to skip)")
	cmd.Flags().String("pptx", config.DefaultPPTXPath, "PPTX output path (empty to skip)")
	cmd.Flags().String("markdown", "", "Also write the report as Markdown")
	cmd.Flags().String("html", "", "Also write the report as HTML")
	cmd.Flags().String("preview-dir", "", "Write PNG previews of pages and slides into this directory")
	cmd.Flags().Int("preview-width", config.DefaultPreviewWidth, "Preview width in pixels")
	cmd.Flags().String("date", "", "Metadata creation date, YYYY-MM-DD (default: today)")

	return cmd
}

// runBuildCmd executes the build command.
func runBuildCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	logger := setupLogger(cfg)
	if cfg.ConfigFilePath != "" {
		logger.Debug("configuration loaded", "path", cfg.ConfigFilePath)
	}
	return runBuild(cfg, logger, cmd.OutOrStdout())
}

// runBuild renders every artifact cfg asks for. The report and the deck are
// independent; the first failure stops the run.
func runBuild(cfg *config.Config, logger *slog.Logger, out io.Writer) error {
	gen, err := newGenerator(cfg)
	if err != nil {
		return err
	}

	var pages []*docdeck.Page
	needReport := cfg.PDFPath != "" || cfg.MarkdownPath != "" || cfg.HTMLPath != "" || cfg.PreviewDir != ""
	if needReport {
		if pages, err = buildReport(cfg, gen, logger, out); err != nil {
			return err
		}
	}

	var deck *docdeck.Deck
	if cfg.PPTXPath != "" || cfg.PreviewDir != "" {
		if deck, err = buildDeck(cfg, gen, logger, out); err != nil {
			return err
		}
	}

	if cfg.PreviewDir != "" {
		n, err := writePreviews(cfg.PreviewDir, cfg.PreviewWidth, gen.GetFontCache(), pages, deck)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Previews generated: %s (%d images)\n", cfg.PreviewDir, n)
	}
	return nil
}

func buildReport(cfg *config.Config, gen *docdeck.Generator, logger *slog.Logger, out io.Writer) ([]*docdeck.Page, error) {
	rep, err := loadReport(cfg)
	if err != nil {
		return nil, err
	}

	var pages []*docdeck.Page
	if cfg.PDFPath != "" {
		if pages, err = gen.SavePDF(cfg.PDFPath, rep); err != nil {
			return nil, fmt.Errorf("failed to render report: %w", err)
		}
		fmt.Fprintf(out, "PDF report generated: %s (%d pages)\n", cfg.PDFPath, len(pages))
	} else if cfg.PreviewDir != "" {
		if _, pages, err = gen.RenderReport(rep); err != nil {
			return nil, fmt.Errorf("failed to render report: %w", err)
		}
	}
	for _, p := range pages {
		logger.Debug("page laid out", "page", p.Number, "blocks", len(p.Blocks))
	}

	if cfg.MarkdownPath == "" && cfg.HTMLPath == "" {
		return pages, nil
	}
	doc, err := docdeck.BuildReport(rep)
	if err != nil {
		return nil, err
	}
	if cfg.MarkdownPath != "" {
		if err := writeArtifact(cfg.MarkdownPath, func(w io.Writer) error {
			return docdeck.WriteMarkdown(w, doc)
		}); err != nil {
			return nil, err
		}
		fmt.Fprintf(out, "Markdown report generated: %s\n", cfg.MarkdownPath)
	}
	if cfg.HTMLPath != "" {
		if err := writeArtifact(cfg.HTMLPath, func(w io.Writer) error {
			return docdeck.WriteHTML(w, doc, gen.GetTheme(), reportLanguage(rep))
		}); err != nil {
			return nil, err
		}
		fmt.Fprintf(out, "HTML report generated: %s\n", cfg.HTMLPath)
	}
	return pages, nil
}

func buildDeck(cfg *config.Config, gen *docdeck.Generator, logger *slog.Logger, out io.Writer) (*docdeck.Deck, error) {
	d, err := loadDeck(cfg)
	if err != nil {
		return nil, err
	}

	var deck *docdeck.Deck
	if cfg.PPTXPath != "" {
		if deck, err = gen.SavePPTX(cfg.PPTXPath, d); err != nil {
			return nil, fmt.Errorf("failed to render deck: %w", err)
		}
		fmt.Fprintf(out, "PPTX presentation generated: %s (%d slides)\n", cfg.PPTXPath, deck.GetSlideCount())
	} else if deck, err = gen.RenderDeck(d); err != nil {
		return nil, fmt.Errorf("failed to render deck: %w", err)
	}

	for i, s := range deck.GetAllSlides() {
		if n := s.GetClipped(); n > 0 {
			logger.Warn("slide content clipped", "slide", i+1, "title", s.GetTitle(), "items", n)
		}
	}
	return deck, nil
}
