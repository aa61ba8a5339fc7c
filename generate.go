package docdeck

import (
	"fmt"
	"time"

	"github.com/VantageDataChat/docdeck/content"
)

// Generator turns report and deck content into files. One theme and one
// font cache serve both renderers, so measurement and output agree.
type Generator struct {
	theme    *Theme
	fonts    *FontCache
	geometry PageGeometry
	layout   SlideLayout
	date     time.Time
}

// NewGenerator creates a generator. A nil theme uses DefaultTheme and a nil
// cache holds the built-in fonts only.
func NewGenerator(theme *Theme, fonts *FontCache) *Generator {
	if theme == nil {
		theme = DefaultTheme()
	}
	if fonts == nil {
		fonts = NewFontCache()
	}
	return &Generator{
		theme:    theme,
		fonts:    fonts,
		geometry: DefaultPageGeometry(),
		layout:   DefaultSlideLayout(),
	}
}

// SetPageGeometry sets the paper size and margins of the report.
func (g *Generator) SetPageGeometry(pg PageGeometry) *Generator {
	g.geometry = pg
	return g
}

// SetSlideLayout sets the slide canvas.
func (g *Generator) SetSlideLayout(l SlideLayout) *Generator {
	g.layout = l
	return g
}

// SetDate fixes the creation date written into file metadata. The zero
// time means the current time.
func (g *Generator) SetDate(t time.Time) *Generator {
	g.date = t
	return g
}

// GetTheme returns the theme.
func (g *Generator) GetTheme() *Theme { return g.theme }

// GetFontCache returns the font cache.
func (g *Generator) GetFontCache() *FontCache { return g.fonts }

func (g *Generator) properties(title, subject, author string) *DocumentProperties {
	props := NewDocumentProperties()
	if !g.date.IsZero() {
		props.SetDate(g.date)
	}
	props.Title = title
	props.Subject = subject
	if author != "" {
		props.Creator = author
		props.LastModifiedBy = author
	}
	return props
}

// RenderReport builds and paginates the report.
func (g *Generator) RenderReport(rep *content.Report) (*Document, []*Page, error) {
	doc, err := BuildReport(rep)
	if err != nil {
		return nil, nil, err
	}
	pages, err := NewPageRenderer(NewFontMeasurer(g.fonts), g.geometry).Render(doc, g.theme)
	if err != nil {
		return nil, nil, err
	}
	return doc, pages, nil
}

// RenderDeck builds and renders the slides.
func (g *Generator) RenderDeck(d *content.Deck) (*Deck, error) {
	specs, err := BuildSlideSpecs(d)
	if err != nil {
		return nil, err
	}
	slides, err := NewSlideRenderer(NewFontMeasurer(g.fonts), g.layout).Render(specs, g.theme)
	if err != nil {
		return nil, err
	}
	deck := NewDeck(g.layout, slides...)
	deck.SetDocumentProperties(g.properties(d.Title, "", d.Author))
	if d.Language != "" {
		if err := deck.SetLanguage(d.Language); err != nil {
			return nil, fmt.Errorf("deck language %q: %w", d.Language, err)
		}
	}
	return deck, nil
}

// NewPDFWriter returns a PDF writer for pages rendered from rep.
func (g *Generator) NewPDFWriter(rep *content.Report, pages []*Page) *PDFWriter {
	w := NewPDFWriter(pages, g.fonts)
	w.SetDocumentProperties(g.properties(rep.Title, rep.Subtitle, rep.Author))
	if rep.Language != "" {
		w.SetLanguage(rep.Language)
	}
	return w
}

// SavePDF renders the report and writes it to path. Rendering finishes
// before the file is created, so a failed render leaves path untouched.
func (g *Generator) SavePDF(path string, rep *content.Report) ([]*Page, error) {
	_, pages, err := g.RenderReport(rep)
	if err != nil {
		return nil, err
	}
	if err := g.NewPDFWriter(rep, pages).Save(path); err != nil {
		return nil, err
	}
	return pages, nil
}

// SavePPTX renders the deck and writes it to path, with the same guarantee
// as SavePDF.
func (g *Generator) SavePPTX(path string, d *content.Deck) (*Deck, error) {
	deck, err := g.RenderDeck(d)
	if err != nil {
		return nil, err
	}
	if err := NewPPTXWriter(deck, g.theme).Save(path); err != nil {
		return nil, err
	}
	return deck, nil
}
