package docdeck

// Shape is the interface that all slide shapes implement.
type Shape interface {
	GetType() ShapeType
	GetOffsetX() int64
	GetOffsetY() int64
	GetWidth() int64
	GetHeight() int64
	GetName() string
	// base returns the underlying BaseShape (unexported, internal use only).
	base() *BaseShape
}

// ShapeType represents the type of shape.
type ShapeType int

const (
	ShapeTypeRichText ShapeType = iota
	ShapeTypeAutoShape
)

// BaseShape contains common shape properties.
type BaseShape struct {
	name    string
	offsetX int64 // in EMU
	offsetY int64 // in EMU
	width   int64 // in EMU
	height  int64 // in EMU
	fill    *Fill
	border  *Border
}

func (b *BaseShape) GetOffsetX() int64 { return b.offsetX }
func (b *BaseShape) GetOffsetY() int64 { return b.offsetY }
func (b *BaseShape) GetWidth() int64   { return b.width }
func (b *BaseShape) GetHeight() int64  { return b.height }
func (b *BaseShape) GetName() string   { return b.name }
func (b *BaseShape) base() *BaseShape  { return b }

func (b *BaseShape) SetName(n string) *BaseShape { b.name = n; return b }

// SetPosition sets both offset X and Y in EMU.
func (b *BaseShape) SetPosition(x, y int64) *BaseShape {
	b.offsetX = x
	b.offsetY = y
	return b
}

// SetSize sets both width and height in EMU.
func (b *BaseShape) SetSize(w, h int64) *BaseShape {
	b.width = w
	b.height = h
	return b
}

// setRect places the shape on r.
func (b *BaseShape) setRect(r EMURect) {
	b.offsetX, b.offsetY, b.width, b.height = r.X, r.Y, r.W, r.H
}

func (b *BaseShape) GetFill() *Fill {
	if b.fill == nil {
		b.fill = NewFill()
	}
	return b.fill
}

func (b *BaseShape) GetBorder() *Border {
	if b.border == nil {
		b.border = NewBorder()
	}
	return b.border
}

// RichTextShape is a text box holding paragraphs of text runs.
type RichTextShape struct {
	BaseShape
	paragraphs []*TextParagraph
	wordWrap   bool
	textAnchor TextAnchorType
}

// TextAnchorType represents the text anchoring type within a shape.
type TextAnchorType string

const (
	TextAnchorTop    TextAnchorType = "t"
	TextAnchorMiddle TextAnchorType = "ctr"
	TextAnchorBottom TextAnchorType = "b"
	TextAnchorNone   TextAnchorType = ""
)

// Default text box insets, in EMU.
const (
	defaultInsetX = 91440 // 0.1 inch
	defaultInsetY = 45720 // 0.05 inch
)

func (r *RichTextShape) GetType() ShapeType { return ShapeTypeRichText }

// NewRichTextShape creates an empty rich text shape.
func NewRichTextShape() *RichTextShape {
	return &RichTextShape{wordWrap: true}
}

// CreateParagraph appends a new paragraph.
func (r *RichTextShape) CreateParagraph() *TextParagraph {
	p := NewTextParagraph()
	r.paragraphs = append(r.paragraphs, p)
	return p
}

// GetParagraphs returns all paragraphs.
func (r *RichTextShape) GetParagraphs() []*TextParagraph {
	return r.paragraphs
}

// SetWordWrap sets word wrap.
func (r *RichTextShape) SetWordWrap(wrap bool) { r.wordWrap = wrap }

// GetWordWrap returns word wrap setting.
func (r *RichTextShape) GetWordWrap() bool { return r.wordWrap }

// SetTextAnchor sets the vertical position of text within the shape.
func (r *RichTextShape) SetTextAnchor(anchor TextAnchorType) { r.textAnchor = anchor }

// GetTextAnchor returns the text anchoring type.
func (r *RichTextShape) GetTextAnchor() TextAnchorType { return r.textAnchor }

// TextParagraph is a paragraph inside a text box.
type TextParagraph struct {
	elements    []ParagraphElement
	alignment   HorizontalAlignment
	lineSpacing int // > 0: points * 100; < 0: -(percent * 1000)
	spaceBefore int // points * 100
	spaceAfter  int // points * 100
}

// ParagraphElement is the interface for paragraph content.
type ParagraphElement interface {
	GetElementType() string
}

// NewTextParagraph creates a left-aligned paragraph.
func NewTextParagraph() *TextParagraph {
	return &TextParagraph{alignment: HorizontalLeft}
}

// GetAlignment returns the paragraph alignment.
func (p *TextParagraph) GetAlignment() HorizontalAlignment { return p.alignment }

// SetAlignment sets the paragraph alignment.
func (p *TextParagraph) SetAlignment(a HorizontalAlignment) *TextParagraph {
	p.alignment = a
	return p
}

// GetLineSpacing returns the line spacing.
func (p *TextParagraph) GetLineSpacing() int { return p.lineSpacing }

// SetLineSpacingPercent sets proportional line spacing, e.g. 120 for 120%.
func (p *TextParagraph) SetLineSpacingPercent(pct int) *TextParagraph {
	p.lineSpacing = -pct * 1000
	return p
}

// GetSpaceBefore returns the space before the paragraph in hundredths of a point.
func (p *TextParagraph) GetSpaceBefore() int { return p.spaceBefore }

// GetSpaceAfter returns the space after the paragraph in hundredths of a point.
func (p *TextParagraph) GetSpaceAfter() int { return p.spaceAfter }

// SetSpaceAfter sets the space after the paragraph in points.
func (p *TextParagraph) SetSpaceAfter(pt float64) *TextParagraph {
	p.spaceAfter = int(pt * 100)
	return p
}

// GetElements returns all paragraph elements.
func (p *TextParagraph) GetElements() []ParagraphElement {
	return p.elements
}

// Text returns the concatenated text of the paragraph's runs.
func (p *TextParagraph) Text() string {
	var s string
	for _, e := range p.elements {
		switch el := e.(type) {
		case *TextRun:
			s += el.text
		case *BreakElement:
			s += "\n"
		}
	}
	return s
}

// CreateTextRun creates a new text run.
func (p *TextParagraph) CreateTextRun(text string) *TextRun {
	tr := &TextRun{
		text: text,
		font: NewFont(),
	}
	p.elements = append(p.elements, tr)
	return tr
}

// CreateBreak creates a line break element.
func (p *TextParagraph) CreateBreak() *BreakElement {
	br := &BreakElement{}
	p.elements = append(p.elements, br)
	return br
}

// TextRun represents a run of text with formatting.
type TextRun struct {
	text string
	font *Font
}

func (tr *TextRun) GetElementType() string { return "textrun" }

// GetText returns the text content.
func (tr *TextRun) GetText() string { return tr.text }

// GetFont returns the font properties.
func (tr *TextRun) GetFont() *Font { return tr.font }

// SetFont sets the font properties.
func (tr *TextRun) SetFont(f *Font) { tr.font = f }

// BreakElement represents a line break.
type BreakElement struct{}

func (br *BreakElement) GetElementType() string { return "break" }

// AutoShape represents a preset geometry shape such as a rectangle.
type AutoShape struct {
	BaseShape
	shapeType AutoShapeType
}

// AutoShapeType represents the preset geometry of an auto shape.
type AutoShapeType string

const (
	AutoShapeRectangle   AutoShapeType = "rect"
	AutoShapeRoundedRect AutoShapeType = "roundRect"
)

func (a *AutoShape) GetType() ShapeType { return ShapeTypeAutoShape }

// NewAutoShape creates a new rectangle.
func NewAutoShape() *AutoShape {
	return &AutoShape{
		shapeType: AutoShapeRectangle,
	}
}

// SetAutoShapeType sets the auto shape type.
func (a *AutoShape) SetAutoShapeType(t AutoShapeType) *AutoShape {
	a.shapeType = t
	return a
}

// GetAutoShapeType returns the auto shape type.
func (a *AutoShape) GetAutoShapeType() AutoShapeType {
	return a.shapeType
}

// SetSolidFill sets a solid fill on the auto shape.
func (a *AutoShape) SetSolidFill(c Color) *AutoShape {
	a.GetFill().SetSolid(c)
	return a
}
