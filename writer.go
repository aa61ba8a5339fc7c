package docdeck

import (
	"archive/zip"
	"fmt"
	"io"
)

// Writer is the interface shared by the PPTX and PDF writers.
type Writer interface {
	Save(path string) error
	WriteTo(w io.Writer) error
}

// PPTXWriter writes a deck in PPTX format.
type PPTXWriter struct {
	deck  *Deck
	theme *Theme
}

// NewPPTXWriter creates a writer for deck. The theme supplies the colors
// and fonts of the theme part; a nil theme uses DefaultTheme.
func NewPPTXWriter(deck *Deck, theme *Theme) *PPTXWriter {
	if theme == nil {
		theme = DefaultTheme()
	}
	return &PPTXWriter{deck: deck, theme: theme}
}

// Save writes the deck to a file. The file is replaced only when the whole
// deck was written.
func (w *PPTXWriter) Save(path string) error {
	return saveAtomic(path, func(f *AtomicFile) error {
		return w.WriteTo(f)
	})
}

// WriteTo writes the deck to a writer.
func (w *PPTXWriter) WriteTo(writer io.Writer) error {
	if w.deck == nil {
		return fmt.Errorf("deck is nil")
	}
	if err := w.deck.Validate(); err != nil {
		return err
	}

	zw := zip.NewWriter(writer)

	parts := []func(*zip.Writer) error{
		w.writeContentTypes,
		w.writeRootRels,
		w.writeAppProperties,
		w.writeCoreProperties,
		w.writePresentation,
		w.writePresentationRels,
		w.writePresProps,
		w.writeViewProps,
		w.writeTableStyles,
		w.writeSlideMaster,
		w.writeSlideMasterRels,
		w.writeSlideLayout,
		w.writeSlideLayoutRels,
		w.writeTheme,
	}
	for _, part := range parts {
		if err := part(zw); err != nil {
			return err
		}
	}

	for i, slide := range w.deck.slides {
		if err := w.writeSlide(zw, slide, i+1); err != nil {
			return err
		}
		if err := w.writeSlideRels(zw, i+1); err != nil {
			return err
		}
	}

	return zw.Close()
}
