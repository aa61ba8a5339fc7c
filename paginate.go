package docdeck

import (
	"fmt"
	"slices"
)

// epsilon absorbs float error when comparing accumulated heights.
const epsilon = 1e-6

// PageRenderer flows a Document onto fixed-size pages.
//
// Titles, headings, paragraphs and tables are placed whole: when one does
// not fit the space left on the current page it starts a new page, and when
// it does not fit an empty page Render fails with *ContentOverflowError.
// Bullet lists may split between items. A Break always closes the current
// page.
type PageRenderer struct {
	measurer Measurer
	geometry PageGeometry
}

// NewPageRenderer creates a page renderer. A nil Measurer uses the built-in
// Go fonts.
func NewPageRenderer(m Measurer, g PageGeometry) *PageRenderer {
	if m == nil {
		m = NewFontMeasurer(nil)
	}
	return &PageRenderer{measurer: m, geometry: g}
}

// GetGeometry returns the page geometry.
func (r *PageRenderer) GetGeometry() PageGeometry { return r.geometry }

// Render lays out doc. The result depends only on doc, theme, the geometry
// and the measurer. An empty document yields no pages.
func (r *PageRenderer) Render(doc *Document, theme *Theme) ([]*Page, error) {
	if doc == nil {
		return nil, fmt.Errorf("document is nil")
	}
	if theme == nil {
		return nil, fmt.Errorf("theme is nil")
	}
	margin, err := theme.Length(LengthPageMargin)
	if err != nil {
		return nil, err
	}
	l := &pageLayout{
		m:     r.measurer,
		theme: theme,
		box:   r.geometry.resolved(margin),
	}
	for i, n := range doc.nodes {
		if err := l.place(i, n); err != nil {
			return nil, err
		}
	}
	return l.pages, nil
}

// pageLayout is the state of one Render call.
type pageLayout struct {
	m     Measurer
	theme *Theme
	box   box

	pages  []*Page
	cur    *Page   // nil after a break closed the page
	cursor float64 // top of the free space on cur
	fresh  bool    // nothing but break markers on cur
}

func (l *pageLayout) open() {
	l.cur = &Page{
		Number: len(l.pages) + 1,
		Width:  l.box.width,
		Height: l.box.height,
	}
	l.pages = append(l.pages, l.cur)
	l.cursor = l.box.top
	l.fresh = true
}

func (l *pageLayout) place(i int, n Node) error {
	switch node := n.(type) {
	case *Break:
		if l.cur == nil {
			l.open()
		}
		l.cur.Blocks = append(l.cur.Blocks, &Block{
			Index: i,
			Node:  node,
			Frame: Rect{X: l.box.left, Y: l.cursor, W: l.box.contentWidth()},
		})
		l.cur = nil
		return nil
	case *BulletList:
		return l.placeList(i, node)
	}

	s, err := l.shape(n)
	if err != nil {
		return fmt.Errorf("node %d (%s): %w", i, n.Kind(), err)
	}
	s.block.Index = i
	s.block.Node = n
	return l.placeAtomic(s)
}

// shaped is a block laid out with its top at y = 0.
type shaped struct {
	block      *Block
	height     float64
	before     float64
	after      float64
	keepBefore bool // before is not dropped at the top of a page
}

func (s *shaped) moveTo(y float64) {
	b := s.block
	b.Frame.Y += y
	for i := range b.Boxes {
		b.Boxes[i].Y += y
	}
	for i := range b.Lines {
		b.Lines[i].Baseline += y
	}
}

func (l *pageLayout) placeAtomic(s shaped) error {
	if l.cur == nil {
		l.open()
	}
	before := l.spaceBefore(s)
	if l.cursor+before+s.height+s.after > l.box.bottom+epsilon {
		need := s.height + s.after
		if s.keepBefore {
			need += s.before
		}
		if need > l.box.contentHeight()+epsilon {
			return &ContentOverflowError{
				Index:     s.block.Index,
				Kind:      s.block.Node.Kind(),
				Need:      need,
				Available: l.box.contentHeight(),
			}
		}
		if !l.fresh {
			l.open()
			before = l.spaceBefore(s)
		}
	}
	s.moveTo(l.cursor + before)
	l.cur.Blocks = append(l.cur.Blocks, s.block)
	l.cursor += before + s.height + s.after
	l.fresh = false
	return nil
}

func (l *pageLayout) spaceBefore(s shaped) float64 {
	if l.fresh && !s.keepBefore {
		return 0
	}
	return s.before
}

// placeList places items one by one. An item of h points fits when
// cursor + h <= bottom, so a page with R points left takes floor(R/h)
// equal items.
func (l *pageLayout) placeList(i int, list *BulletList) error {
	st, err := l.theme.resolve(StyleBullet)
	if err != nil {
		return fmt.Errorf("node %d (%s): %w", i, list.Kind(), err)
	}
	size := float64(st.Size)
	lead := st.LineHeight()
	textX := l.box.left + st.Indent
	textW := l.box.contentWidth() - st.Indent
	base := baselineOffset(l.m, st.face, size, lead)

	var frag *Block
	for item := range list.Len() {
		lines := wrapText(l.m, st.face, size, textW, list.GetItem(item))
		h := float64(len(lines))*lead + st.SpaceAfter

		if l.cur == nil {
			l.open()
		}
		if l.cursor+h > l.box.bottom+epsilon {
			if l.fresh || h > l.box.contentHeight()+epsilon {
				return &ContentOverflowError{Index: i, Kind: NodeBulletList, Need: h, Available: l.box.contentHeight()}
			}
			l.open()
			frag = nil
		}
		if frag == nil {
			frag = &Block{
				Index: i,
				Node:  list,
				First: item,
				Frame: Rect{X: l.box.left, Y: l.cursor, W: l.box.contentWidth()},
			}
			l.cur.Blocks = append(l.cur.Blocks, frag)
		}

		marker := list.Marker(item)
		frag.Lines = append(frag.Lines, TextLine{
			Text:     marker,
			X:        l.box.left + st.Indent/2 - l.m.Width(st.face, size, marker)/2,
			Baseline: l.cursor + base,
			Width:    l.m.Width(st.face, size, marker),
			Face:     st.face,
			Size:     size,
			Color:    st.color,
		})
		for k, text := range lines {
			frag.Lines = append(frag.Lines, TextLine{
				Text:     text,
				X:        textX,
				Baseline: l.cursor + base + float64(k)*lead,
				Width:    l.m.Width(st.face, size, text),
				Face:     st.face,
				Size:     size,
				Color:    st.color,
			})
		}
		frag.Last = item + 1
		l.cursor += h
		frag.Frame.H = l.cursor - frag.Frame.Y
		l.fresh = false
	}
	return nil
}

// shape lays out an atomic node.
func (l *pageLayout) shape(n Node) (shaped, error) {
	switch node := n.(type) {
	case *Title:
		return l.shapeTitle(node)
	case *Heading:
		name := [...]string{StyleHeading1, StyleHeading2, StyleHeading3}[node.GetLevel()-1]
		return l.shapeText(name, node.GetText(), false)
	case *Paragraph:
		switch node.GetTone() {
		case ToneLead:
			return l.shapeText(StyleLead, node.GetText(), false)
		case ToneNote:
			return l.shapeText(StyleNote, node.GetText(), false)
		case ToneCode:
			return l.shapeCode(node.GetText())
		default:
			return l.shapeText(StyleBody, node.GetText(), false)
		}
	case *Table:
		return l.shapeTable(node)
	default:
		return shaped{}, fmt.Errorf("unsupported node %T", n)
	}
}

// shapeText wraps text in the content width and aligns it per style.
func (l *pageLayout) shapeText(style, text string, preformatted bool) (shaped, error) {
	st, err := l.theme.resolve(style)
	if err != nil {
		return shaped{}, err
	}
	size := float64(st.Size)
	width := l.box.contentWidth() - st.Indent

	var lines []string
	var ends []bool
	if preformatted {
		lines = wrapPreformatted(l.m, st.face, size, width, text)
	} else {
		lines, ends = wrapSegments(l.m, st.face, size, width, text)
	}

	b := &Block{Frame: Rect{X: l.box.left, W: l.box.contentWidth()}}
	b.Lines = l.setLines(st, lines, ends, l.box.left+st.Indent, width, 0)
	h := float64(len(lines)) * st.LineHeight()
	b.Frame.H = h
	return shaped{block: b, height: h, before: st.SpaceBefore, after: st.SpaceAfter}, nil
}

// setLines positions wrapped lines inside a column starting at x, y.
// Justified text is not stretched on the last line, nor on a line marked
// in ends as closing a hard segment.
func (l *pageLayout) setLines(st resolved, lines []string, ends []bool, x, width, y float64) []TextLine {
	size := float64(st.Size)
	lead := st.LineHeight()
	base := baselineOffset(l.m, st.face, size, lead)
	out := make([]TextLine, 0, len(lines))
	for k, text := range lines {
		w := l.m.Width(st.face, size, text)
		tl := TextLine{
			Text:     text,
			X:        x,
			Baseline: y + base + float64(k)*lead,
			Width:    w,
			Face:     st.face,
			Size:     size,
			Color:    st.color,
		}
		switch st.Align {
		case HorizontalCenter:
			tl.X = x + (width-w)/2
		case HorizontalRight:
			tl.X = x + width - w
		case HorizontalJustify:
			last := k == len(lines)-1 || (k < len(ends) && ends[k])
			if gaps := countSpaces(text); gaps > 0 && !last {
				tl.WordSpacing = (width - w) / float64(gaps)
			}
		}
		out = append(out, tl)
	}
	return out
}

// shapeTitle stacks the title and subtitle below the title offset.
func (l *pageLayout) shapeTitle(t *Title) (shaped, error) {
	offset, err := l.theme.Length(LengthTitleOffset)
	if err != nil {
		return shaped{}, err
	}
	title, err := l.shapeText(StyleTitle, t.GetText(), false)
	if err != nil {
		return shaped{}, err
	}
	s := shaped{
		block:      title.block,
		height:     title.height,
		before:     offset,
		after:      title.after,
		keepBefore: true,
	}
	if t.GetSubtitle() == "" {
		return s, nil
	}
	sub, err := l.shapeText(StyleSubtitle, t.GetSubtitle(), false)
	if err != nil {
		return shaped{}, err
	}
	sub.moveTo(s.height + s.after)
	s.block.Lines = append(s.block.Lines, sub.block.Lines...)
	s.height += s.after + sub.height
	s.after = sub.after
	s.block.Frame.H = s.height
	return s, nil
}

// shapeCode sets preformatted text on a background panel.
func (l *pageLayout) shapeCode(text string) (shaped, error) {
	s, err := l.shapeText(StyleCode, text, true)
	if err != nil {
		return shaped{}, err
	}
	bg, err := l.theme.Color(ColorBackground)
	if err != nil {
		return shaped{}, err
	}
	s.block.Boxes = []Box{{Rect: s.block.Frame, Fill: &bg}}
	return s, nil
}

// shapeTable lays out the header row and body rows as a grid centered in
// the content width.
func (l *pageLayout) shapeTable(t *Table) (shaped, error) {
	hs, err := l.theme.resolve(StyleTableHeader)
	if err != nil {
		return shaped{}, err
	}
	bs, err := l.theme.resolve(StyleTableBody)
	if err != nil {
		return shaped{}, err
	}
	var lengths [3]float64
	for i, name := range []string{LengthCellPadX, LengthCellPadY, LengthGridWidth} {
		if lengths[i], err = l.theme.Length(name); err != nil {
			return shaped{}, err
		}
	}
	padX, padY, gridW := lengths[0], lengths[1], lengths[2]
	var colors [3]Color
	for i, name := range []string{ColorPrimary, ColorBackground, ColorGrid} {
		if colors[i], err = l.theme.Color(name); err != nil {
			return shaped{}, err
		}
	}
	headerFill, bodyFill, grid := colors[0], colors[1], colors[2]

	widths := columnWidths(t, l.box.contentWidth())
	total := 0.0
	for _, w := range widths {
		total += w
	}
	x0 := l.box.left + (l.box.contentWidth()-total)/2

	b := &Block{Frame: Rect{X: x0, W: total}}
	y := 0.0
	row := func(cells []string, st resolved, fill *Color) {
		wrapped := make([][]string, len(cells))
		maxLines := 1
		for c, text := range cells {
			wrapped[c] = wrapText(l.m, st.face, float64(st.Size), max(widths[c]-2*padX, 1), text)
			maxLines = max(maxLines, len(wrapped[c]))
		}
		rowH := float64(maxLines)*st.LineHeight() + 2*padY
		x := x0
		for c := range cells {
			b.Boxes = append(b.Boxes, Box{
				Rect:        Rect{X: x, Y: y, W: widths[c], H: rowH},
				Fill:        fill,
				Stroke:      &grid,
				StrokeWidth: gridW,
			})
			b.Lines = append(b.Lines, l.setLines(st, wrapped[c], nil, x+padX, widths[c]-2*padX, y+padY)...)
			x += widths[c]
		}
		y += rowH
	}

	row(t.header, hs, &headerFill)
	for _, cells := range t.rows {
		row(cells, bs, &bodyFill)
	}
	b.Frame.H = y
	return shaped{block: b, height: y, after: bs.SpaceAfter}, nil
}

// columnWidths returns the table's preferred widths, an equal split when it
// has none, scaled down proportionally when they exceed the content width.
func columnWidths(t *Table, contentWidth float64) []float64 {
	widths := slices.Clone(t.widths)
	if widths == nil {
		widths = make([]float64, t.NumColumns())
		for i := range widths {
			widths[i] = contentWidth / float64(len(widths))
		}
		return widths
	}
	total := 0.0
	for _, w := range widths {
		total += w
	}
	if total > contentWidth {
		for i := range widths {
			widths[i] *= contentWidth / total
		}
	}
	return widths
}

// baselineOffset is the distance from the top of a line box to its
// baseline, with the extra leading split above and below the glyphs.
func baselineOffset(m Measurer, face FontFace, size, lead float64) float64 {
	return (lead-size)/2 + m.Ascent(face, size)
}
