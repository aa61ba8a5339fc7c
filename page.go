package docdeck

// PageSize represents paper dimensions in centimeters.
type PageSize struct {
	Width  float64 // Width in centimeters.
	Height float64 // Height in centimeters.
}

// Standard paper sizes.
var (
	A4     = PageSize{Width: 21.0, Height: 29.7}
	Letter = PageSize{Width: 21.59, Height: 27.94}
)

// Orientation represents the page orientation.
type Orientation int

const (
	// Portrait is the default vertical orientation.
	Portrait Orientation = iota
	// Landscape rotates the page to horizontal orientation.
	Landscape
)

// Margin represents page margins in centimeters.
type Margin struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// UniformMargin returns a Margin with the same value on all sides.
func UniformMargin(cm float64) Margin {
	return Margin{Top: cm, Right: cm, Bottom: cm, Left: cm}
}

// PageGeometry is the render target of the page renderer.
//
// Zero-value fields use defaults: A4 paper, portrait orientation, and the
// theme's page-margin on every side.
type PageGeometry struct {
	Size        PageSize
	Orientation Orientation
	Margin      Margin
}

// DefaultPageGeometry returns A4 portrait with 2 cm margins.
func DefaultPageGeometry() PageGeometry {
	return PageGeometry{
		Size:        A4,
		Orientation: Portrait,
		Margin:      UniformMargin(2.0),
	}
}

// box is a page geometry resolved to points.
type box struct {
	width, height            float64
	top, right, bottom, left float64 // content edges from the page's top-left corner
}

func (b box) contentWidth() float64  { return b.right - b.left }
func (b box) contentHeight() float64 { return b.bottom - b.top }

// resolved converts the geometry to points. marginPt is used for a zero
// Margin.
func (g PageGeometry) resolved(marginPt float64) box {
	size := g.Size
	if size == (PageSize{}) {
		size = A4
	}
	w := CentimeterToPoint(size.Width)
	h := CentimeterToPoint(size.Height)
	if g.Orientation == Landscape {
		w, h = h, w
	}
	m := Margin{
		Top:    CentimeterToPoint(g.Margin.Top),
		Right:  CentimeterToPoint(g.Margin.Right),
		Bottom: CentimeterToPoint(g.Margin.Bottom),
		Left:   CentimeterToPoint(g.Margin.Left),
	}
	if g.Margin == (Margin{}) {
		m = Margin{Top: marginPt, Right: marginPt, Bottom: marginPt, Left: marginPt}
	}
	return box{
		width:  w,
		height: h,
		top:    m.Top,
		right:  w - m.Right,
		bottom: h - m.Bottom,
		left:   m.Left,
	}
}

// Rect is an axis-aligned rectangle in points, measured from the page's
// top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// Box is a filled and/or stroked rectangle.
type Box struct {
	Rect
	Fill        *Color // nil means no fill
	Stroke      *Color // nil means no stroke
	StrokeWidth float64
}

// TextLine is one laid-out line of text. Baseline is measured from the top
// of the page.
type TextLine struct {
	Text        string
	X           float64
	Baseline    float64
	Width       float64 // natural width, before word spacing
	Face        FontFace
	Size        float64
	Color       Color
	WordSpacing float64 // extra space added at every ' ' for justification
}

// Block is the placement of one node, or of a run of bullet items, on a
// page. Break markers are blocks with no drawing.
type Block struct {
	Index int  // position of Node in the document
	Node  Node // the placed node
	First int  // first bullet item on this page; 0 for other kinds
	Last  int  // one past the last bullet item; 0 for other kinds
	Frame Rect
	Boxes []Box
	Lines []TextLine
}

// Kind returns the kind of the placed node.
func (b *Block) Kind() NodeKind { return b.Node.Kind() }

// IsMarker reports whether the block only records a break.
func (b *Block) IsMarker() bool { return b.Node.Kind() == NodeBreak }

// Page is one laid-out page. Number is 1-based.
type Page struct {
	Number int
	Width  float64
	Height float64
	Blocks []*Block
}

// Content returns the nodes drawn on the page, in order, without break
// markers. A list split across pages appears on each page it touches.
func (p *Page) Content() []Node {
	var out []Node
	for _, b := range p.Blocks {
		if !b.IsMarker() {
			out = append(out, b.Node)
		}
	}
	return out
}

// Flatten rebuilds the node sequence from pages: every node once, in
// document order, with list fragments merged back into one node.
func Flatten(pages []*Page) []Node {
	var out []Node
	last := -1
	for _, p := range pages {
		for _, b := range p.Blocks {
			if b.Index == last {
				continue
			}
			out = append(out, b.Node)
			last = b.Index
		}
	}
	return out
}
