package docdeck

import (
	"fmt"

	"github.com/VantageDataChat/docdeck/content"
)

// SlideKind identifies a slide variant.
type SlideKind int

const (
	SlideKindTitle SlideKind = iota
	SlideKindContent
	SlideKindTwoColumn
)

func (k SlideKind) String() string {
	switch k {
	case SlideKindTitle:
		return "title"
	case SlideKindContent:
		return "content"
	case SlideKindTwoColumn:
		return "two-column"
	default:
		return fmt.Sprintf("SlideKind(%d)", int(k))
	}
}

// SlideSpec is one authored slide. The set of implementations is closed:
// TitleSlide, ContentSlide and TwoColumnSlide.
type SlideSpec interface {
	SlideKind() SlideKind
	slideSpec()
}

// TitleSlide is a full-bleed cover with a centered title and an optional
// subtitle.
type TitleSlide struct {
	Title    string
	Subtitle string
}

// ContentSlide has a title bar and a bullet list.
type ContentSlide struct {
	Title   string
	Bullets []string
}

// Column is one labeled bullet column.
type Column struct {
	Label string
	Items []string
}

// TwoColumnSlide has a title bar and two bullet columns side by side.
type TwoColumnSlide struct {
	Title string
	Left  Column
	Right Column
}

func (TitleSlide) SlideKind() SlideKind     { return SlideKindTitle }
func (ContentSlide) SlideKind() SlideKind   { return SlideKindContent }
func (TwoColumnSlide) SlideKind() SlideKind { return SlideKindTwoColumn }
func (TitleSlide) slideSpec()               {}
func (ContentSlide) slideSpec()             {}
func (TwoColumnSlide) slideSpec()           {}

// EMURect is a rectangle on the slide canvas in EMU.
type EMURect struct {
	X, Y, W, H int64
}

// SlideLayout is the render target of the slide renderer: the canvas size
// and the fixed boxes every slide variant places its text in.
type SlideLayout struct {
	Width    int64
	Height   int64
	TitleBar int64 // height of the bar behind content slide titles

	Cover   EMURect    // title and subtitle of a title slide
	Title   EMURect    // title on the title bar
	Body    EMURect    // bullet list of a content slide
	Labels  [2]EMURect // column labels of a two-column slide
	Columns [2]EMURect // bullet columns of a two-column slide
}

// DefaultSlideLayout returns a 16:9 widescreen canvas (13.333 x 7.5 in).
func DefaultSlideLayout() SlideLayout {
	return SlideLayout{
		Width:    Inch(13.333),
		Height:   Inch(7.5),
		TitleBar: Inch(1.3),
		Cover:    EMURect{X: Inch(0.5), Y: Inch(2.5), W: Inch(12.333), H: Inch(1.5)},
		Title:    EMURect{X: Inch(0.5), Y: Inch(0.35), W: Inch(12.333), H: Inch(0.7)},
		Body:     EMURect{X: Inch(0.7), Y: Inch(1.7), W: Inch(12), H: Inch(5.3)},
		Labels: [2]EMURect{
			{X: Inch(0.5), Y: Inch(1.5), W: Inch(6), H: Inch(0.5)},
			{X: Inch(7), Y: Inch(1.5), W: Inch(6), H: Inch(0.5)},
		},
		Columns: [2]EMURect{
			{X: Inch(0.5), Y: Inch(2.1), W: Inch(6), H: Inch(5)},
			{X: Inch(7), Y: Inch(2.1), W: Inch(6), H: Inch(5)},
		},
	}
}

// Slide is one rendered slide canvas.
type Slide struct {
	kind       SlideKind
	title      string
	shapes     []Shape
	background *Fill
	clipped    int
}

// GetKind returns the variant the slide was rendered from.
func (s *Slide) GetKind() SlideKind { return s.kind }

// GetTitle returns the slide title.
func (s *Slide) GetTitle() string { return s.title }

// GetShapes returns the shapes in drawing order.
func (s *Slide) GetShapes() []Shape { return s.shapes }

// GetBackground returns the slide background fill.
func (s *Slide) GetBackground() *Fill { return s.background }

// GetClipped returns how many bullet items did not fit their box and were
// left out. Clipping is not an error.
func (s *Slide) GetClipped() int { return s.clipped }

func (s *Slide) addShape(sh Shape) { s.shapes = append(s.shapes, sh) }

// SlideRenderer places authored slides on a fixed canvas. There is no
// reflow: bullet items below the bottom of their box are dropped and
// counted in Slide.GetClipped.
type SlideRenderer struct {
	measurer Measurer
	layout   SlideLayout
}

// NewSlideRenderer creates a slide renderer. A nil Measurer uses the
// built-in Go fonts.
func NewSlideRenderer(m Measurer, layout SlideLayout) *SlideRenderer {
	if m == nil {
		m = NewFontMeasurer(nil)
	}
	return &SlideRenderer{measurer: m, layout: layout}
}

// GetLayout returns the slide layout.
func (r *SlideRenderer) GetLayout() SlideLayout { return r.layout }

// Render produces one slide per spec, in order.
func (r *SlideRenderer) Render(specs []SlideSpec, theme *Theme) ([]*Slide, error) {
	if theme == nil {
		return nil, fmt.Errorf("theme is nil")
	}
	surface, err := theme.Color(ColorSurface)
	if err != nil {
		return nil, err
	}
	slides := make([]*Slide, 0, len(specs))
	for i, spec := range specs {
		s := &Slide{background: NewFill().SetSolid(surface)}
		switch sp := specValue(spec).(type) {
		case TitleSlide:
			err = r.renderTitle(s, sp, theme)
		case ContentSlide:
			err = r.renderContent(s, sp, theme)
		case TwoColumnSlide:
			err = r.renderTwoColumn(s, sp, theme)
		default:
			err = ErrNilSlideSpec
		}
		if err != nil {
			return nil, fmt.Errorf("slide %d: %w", i+1, err)
		}
		slides = append(slides, s)
	}
	return slides, nil
}

// specValue dereferences pointer specs. A nil spec or nil pointer yields nil.
func specValue(spec SlideSpec) SlideSpec {
	switch sp := spec.(type) {
	case *TitleSlide:
		if sp != nil {
			return *sp
		}
	case *ContentSlide:
		if sp != nil {
			return *sp
		}
	case *TwoColumnSlide:
		if sp != nil {
			return *sp
		}
	default:
		return spec
	}
	return nil
}

func (r *SlideRenderer) renderTitle(s *Slide, spec TitleSlide, theme *Theme) error {
	s.kind, s.title = SlideKindTitle, spec.Title
	primary, err := theme.Color(ColorPrimary)
	if err != nil {
		return err
	}
	bg := NewAutoShape().SetSolidFill(primary)
	bg.SetName("Background")
	bg.setRect(EMURect{W: r.layout.Width, H: r.layout.Height})
	s.addShape(bg)

	box := NewRichTextShape()
	box.SetName("Title")
	box.setRect(r.layout.Cover)
	if err := addTextParagraph(box, theme, StyleSlideTitle, spec.Title); err != nil {
		return err
	}
	if spec.Subtitle != "" {
		if err := addTextParagraph(box, theme, StyleSlideSubtitle, spec.Subtitle); err != nil {
			return err
		}
	}
	s.addShape(box)
	return nil
}

func (r *SlideRenderer) renderContent(s *Slide, spec ContentSlide, theme *Theme) error {
	s.kind = SlideKindContent
	if err := r.renderTitleBar(s, spec.Title, theme); err != nil {
		return err
	}
	body, clipped, err := r.bulletBox(r.layout.Body, spec.Bullets, theme, StyleSlideBullet)
	if err != nil {
		return err
	}
	body.SetName("Body")
	s.addShape(body)
	s.clipped = clipped
	return nil
}

func (r *SlideRenderer) renderTwoColumn(s *Slide, spec TwoColumnSlide, theme *Theme) error {
	s.kind = SlideKindTwoColumn
	if err := r.renderTitleBar(s, spec.Title, theme); err != nil {
		return err
	}
	for i, col := range [2]Column{spec.Left, spec.Right} {
		side := [2]string{"Left", "Right"}[i]
		if col.Label != "" {
			label := NewRichTextShape()
			label.SetName(side + " Label")
			label.setRect(r.layout.Labels[i])
			if err := addTextParagraph(label, theme, StyleSlideLabel, col.Label); err != nil {
				return err
			}
			s.addShape(label)
		}
		body, clipped, err := r.bulletBox(r.layout.Columns[i], col.Items, theme, StyleSlideColumn)
		if err != nil {
			return err
		}
		body.SetName(side + " Column")
		s.addShape(body)
		s.clipped += clipped
	}
	return nil
}

// renderTitleBar draws the colored bar across the top and its title.
func (r *SlideRenderer) renderTitleBar(s *Slide, title string, theme *Theme) error {
	s.title = title
	primary, err := theme.Color(ColorPrimary)
	if err != nil {
		return err
	}
	bar := NewAutoShape().SetSolidFill(primary)
	bar.SetName("Title Bar")
	bar.setRect(EMURect{W: r.layout.Width, H: r.layout.TitleBar})
	s.addShape(bar)

	box := NewRichTextShape()
	box.SetName("Title")
	box.setRect(r.layout.Title)
	box.SetTextAnchor(TextAnchorMiddle)
	if err := addTextParagraph(box, theme, StyleSlideHeading, title); err != nil {
		return err
	}
	s.addShape(box)
	return nil
}

// bulletBox fills a text box with "• " items at a fixed pitch: each line
// takes 120% of the font size and each item adds its space after. Items
// that would end below the box are dropped; their count is returned.
func (r *SlideRenderer) bulletBox(rect EMURect, items []string, theme *Theme, style string) (*RichTextShape, int, error) {
	st, err := theme.resolve(style)
	if err != nil {
		return nil, 0, err
	}
	size := float64(st.Size)
	widthPt := EMUToPoint(rect.W - 2*defaultInsetX)
	linePitch := int64(st.Size) * emuPerPoint * 6 / 5
	after := Point(st.SpaceAfter)

	box := NewRichTextShape()
	box.setRect(rect)
	var used int64
	for i, item := range items {
		text := "• " + item
		lines := int64(len(wrapText(r.measurer, st.face, size, widthPt, text)))
		h := lines*linePitch + after
		if used+h > rect.H {
			return box, len(items) - i, nil
		}
		used += h
		p := box.CreateParagraph().
			SetAlignment(st.Align).
			SetLineSpacingPercent(120).
			SetSpaceAfter(st.SpaceAfter)
		p.CreateTextRun(text).SetFont(runFont(st))
	}
	return box, 0, nil
}

// addTextParagraph appends one paragraph set in style.
func addTextParagraph(box *RichTextShape, theme *Theme, style, text string) error {
	st, err := theme.resolve(style)
	if err != nil {
		return err
	}
	p := box.CreateParagraph().SetAlignment(st.Align)
	if st.SpaceAfter > 0 {
		p.SetSpaceAfter(st.SpaceAfter)
	}
	p.CreateTextRun(text).SetFont(runFont(st))
	return nil
}

func runFont(st resolved) *Font {
	return NewFont().
		SetName(st.face.Family).
		SetSize(st.Size).
		SetBold(st.face.Bold).
		SetColor(st.color)
}

// BuildSlideSpecs maps deck content to slide specs, in order.
func BuildSlideSpecs(d *content.Deck) ([]SlideSpec, error) {
	if d == nil {
		return nil, fmt.Errorf("deck is nil")
	}
	specs := make([]SlideSpec, 0, len(d.Slides))
	for i, s := range d.Slides {
		switch s.Layout {
		case content.LayoutTitle:
			specs = append(specs, TitleSlide{Title: nfc(s.Title), Subtitle: nfc(s.Subtitle)})
		case content.LayoutContent, "":
			specs = append(specs, ContentSlide{Title: nfc(s.Title), Bullets: nfcAll(s.Bullets)})
		case content.LayoutTwoColumn:
			specs = append(specs, TwoColumnSlide{
				Title: nfc(s.Title),
				Left:  Column{Label: nfc(s.Left.Label), Items: nfcAll(s.Left.Items)},
				Right: Column{Label: nfc(s.Right.Label), Items: nfcAll(s.Right.Items)},
			})
		default:
			return nil, fmt.Errorf("slide %d: %w %q", i+1, ErrUnknownSlideLayout, s.Layout)
		}
	}
	return specs, nil
}
