package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/VantageDataChat/docdeck"
	"github.com/VantageDataChat/docdeck/internal/config"
	"github.com/spf13/cobra"
)

// NewPreviewCmd creates the preview command.
func NewPreviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render PNG previews of report pages and slides",
		Long: `Preview lays out the report and the deck and draws every page and slide
as a PNG image, without writing the PDF or PPTX. Pages are written as
pageNN.png and slides as slideNN.png.

Examples:
  # Previews in ./previews at 1920 pixels wide
  docdeck preview -d previews -w 1920`,
		Args: cobra.NoArgs,
		RunE: runPreviewCmd,
	}

	addContentFlags(cmd)
	cmd.Flags().StringP("preview-dir", "d", "previews", "Output directory")
	cmd.Flags().IntP("preview-width", "w", config.DefaultPreviewWidth, "Image width in pixels")

	return cmd
}

func runPreviewCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := previewConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	logger := setupLogger(cfg)

	gen, err := newGenerator(cfg)
	if err != nil {
		return err
	}
	rep, err := loadReport(cfg)
	if err != nil {
		return err
	}
	_, pages, err := gen.RenderReport(rep)
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	d, err := loadDeck(cfg)
	if err != nil {
		return err
	}
	deck, err := gen.RenderDeck(d)
	if err != nil {
		return fmt.Errorf("failed to render deck: %w", err)
	}

	n, err := writePreviews(cfg.PreviewDir, cfg.PreviewWidth, gen.GetFontCache(), pages, deck)
	if err != nil {
		return err
	}
	logger.Debug("previews written", "dir", cfg.PreviewDir, "images", n)
	fmt.Fprintf(cmd.OutOrStdout(), "Rendered %d pages and %d slides to %s\n", len(pages), deck.GetSlideCount(), cfg.PreviewDir)
	return nil
}

// writePreviews draws pages and slides into dir and returns the number of
// images written. Either source may be empty.
func writePreviews(dir string, width int, fonts *docdeck.FontCache, pages []*docdeck.Page, deck *docdeck.Deck) (int, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return 0, fmt.Errorf("failed to create directory: %w", err)
	}
	opts := docdeck.DefaultRenderOptions()
	opts.Width = width
	opts.FontCache = fonts

	n := 0
	for _, p := range pages {
		img, err := docdeck.RenderPage(p, docdeck.ColorWhite, opts)
		if err != nil {
			return n, fmt.Errorf("page %d: %w", p.Number, err)
		}
		if err := docdeck.SaveImage(img, filepath.Join(dir, fmt.Sprintf("page%02d.png", p.Number)), opts); err != nil {
			return n, err
		}
		n++
	}
	if deck == nil {
		return n, nil
	}
	for i, s := range deck.GetAllSlides() {
		img, err := docdeck.RenderSlide(s, deck.GetLayout(), opts)
		if err != nil {
			return n, fmt.Errorf("slide %d: %w", i+1, err)
		}
		if err := docdeck.SaveImage(img, filepath.Join(dir, fmt.Sprintf("slide%02d.png", i+1)), opts); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// previewConfig is buildConfig with the flag default as the preview
// directory when neither the file nor the command line names one.
func previewConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return nil, err
	}
	if cfg.PreviewDir == "" {
		if cfg.PreviewDir, err = cmd.Flags().GetString("preview-dir"); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
