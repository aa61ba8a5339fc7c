package docdeck

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
)

// stripTheme returns the default theme with no page margin, so a geometry
// with zero Margin gives content that fills the whole page.
func stripTheme() *Theme {
	th := DefaultTheme().clone()
	th.lengths[LengthPageMargin] = 0
	return th
}

// shortPage is a full-width page whose content area is 180pt tall: ten
// one-line bullet items of 14pt leading plus 4pt spacing.
var shortPage = PageGeometry{Size: PageSize{Width: 21, Height: 6.35}}

func mustDoc(t *testing.T, nodes ...Node) *Document {
	t.Helper()
	doc, err := NewDocument(nodes...)
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}
	return doc
}

func mustList(t *testing.T, n int) *BulletList {
	t.Helper()
	items := make([]string, n)
	for i := range items {
		items[i] = fmt.Sprintf("item %d", i+1)
	}
	l, err := NewBulletList(items...)
	if err != nil {
		t.Fatalf("NewBulletList: %v", err)
	}
	return l
}

func renderFixed(t *testing.T, g PageGeometry, th *Theme, nodes ...Node) []*Page {
	t.Helper()
	pages, err := NewPageRenderer(FixedMeasurer{}, g).Render(mustDoc(t, nodes...), th)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	return pages
}

func TestRender_EmptyDocument(t *testing.T) {
	pages := renderFixed(t, DefaultPageGeometry(), DefaultTheme())
	if len(pages) != 0 {
		t.Errorf("expected 0 pages, got %d", len(pages))
	}
}

func TestRender_NilArguments(t *testing.T) {
	r := NewPageRenderer(FixedMeasurer{}, DefaultPageGeometry())
	if _, err := r.Render(nil, DefaultTheme()); err == nil {
		t.Error("expected error for nil document")
	}
	if _, err := r.Render(mustDoc(t), nil); err == nil {
		t.Error("expected error for nil theme")
	}
}

func TestRender_BreakStartsNewPage(t *testing.T) {
	p1, p2 := NewParagraph("first"), NewParagraph("second")
	pages := renderFixed(t, DefaultPageGeometry(), DefaultTheme(), p1, NewBreak(), p2)
	if len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(pages))
	}
	if got := pages[0].Content(); len(got) != 1 || got[0] != p1 {
		t.Errorf("page 1 content = %v, want [p1]", got)
	}
	if got := pages[1].Content(); len(got) != 1 || got[0] != p2 {
		t.Errorf("page 2 content = %v, want [p2]", got)
	}
	for i, p := range pages {
		if p.Number != i+1 {
			t.Errorf("page %d has Number %d", i+1, p.Number)
		}
	}
}

func TestRender_BreakSequences(t *testing.T) {
	tests := []struct {
		name  string
		nodes func() []Node
		pages int
	}{
		{
			name:  "trailing break adds no page",
			nodes: func() []Node { return []Node{NewParagraph("a"), NewBreak()} },
			pages: 1,
		},
		{
			name:  "consecutive breaks leave a blank page",
			nodes: func() []Node { return []Node{NewParagraph("a"), NewBreak(), NewBreak(), NewParagraph("b")} },
			pages: 3,
		},
		{
			name:  "leading break leaves a blank first page",
			nodes: func() []Node { return []Node{NewBreak(), NewParagraph("a")} },
			pages: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes := tt.nodes()
			pages := renderFixed(t, DefaultPageGeometry(), DefaultTheme(), nodes...)
			if len(pages) != tt.pages {
				t.Fatalf("expected %d pages, got %d", tt.pages, len(pages))
			}
			if got := Flatten(pages); !reflect.DeepEqual(got, nodes) {
				t.Errorf("Flatten() = %v, want %v", got, nodes)
			}
		})
	}
}

func TestRender_ListSplitsBetweenItems(t *testing.T) {
	list := mustList(t, 20)
	pages := renderFixed(t, shortPage, stripTheme(), list)
	if len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(pages))
	}
	for i, want := range [][2]int{{0, 10}, {10, 20}} {
		b := pages[i].Blocks[0]
		if b.First != want[0] || b.Last != want[1] {
			t.Errorf("page %d carries items [%d:%d], want [%d:%d]", i+1, b.First, b.Last, want[0], want[1])
		}
	}
	if got := Flatten(pages); len(got) != 1 || got[0] != list {
		t.Errorf("Flatten() = %v, want the list once", got)
	}
}

func TestRender_ListFillsRemainingSpace(t *testing.T) {
	// The paragraph takes 14pt plus 8pt after, leaving 158pt: floor(158/18)
	// items fit on the first page.
	para := NewParagraph("intro")
	list := mustList(t, 20)
	pages := renderFixed(t, shortPage, stripTheme(), para, list)

	if len(pages) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(pages))
	}
	first := pages[0].Blocks[1]
	if first.Node != list || first.First != 0 || first.Last != 8 {
		t.Errorf("page 1 list fragment = [%d:%d], want [0:8]", first.First, first.Last)
	}
	if b := pages[1].Blocks[0]; b.First != 8 || b.Last != 18 {
		t.Errorf("page 2 list fragment = [%d:%d], want [8:18]", b.First, b.Last)
	}
	if b := pages[2].Blocks[0]; b.First != 18 || b.Last != 20 {
		t.Errorf("page 3 list fragment = [%d:%d], want [18:20]", b.First, b.Last)
	}
}

func TestRender_ListMarkers(t *testing.T) {
	ordered, err := NewNumberedList("a", "b")
	if err != nil {
		t.Fatalf("NewNumberedList: %v", err)
	}
	pages := renderFixed(t, DefaultPageGeometry(), DefaultTheme(), ordered)
	lines := pages[0].Blocks[0].Lines
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines (marker + text per item), got %d", len(lines))
	}
	if lines[0].Text != "1." || lines[2].Text != "2." {
		t.Errorf("markers = %q, %q; want 1., 2.", lines[0].Text, lines[2].Text)
	}
	if lines[1].X <= lines[0].X {
		t.Error("item text should start right of its marker")
	}
}

func TestRender_HeadingAndTableSharePage(t *testing.T) {
	h, err := NewHeading(1, "Pricing")
	if err != nil {
		t.Fatalf("NewHeading: %v", err)
	}
	table, err := NewTable([]string{"Unit", "Price"}, [][]string{{"A-101", "$120k"}, {"A-102", "$135k"}})
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	th := DefaultTheme()
	pages := renderFixed(t, DefaultPageGeometry(), th, h, table)

	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}
	blocks := pages[0].Blocks
	if len(blocks) != 2 || blocks[0].Node != h || blocks[1].Node != table {
		t.Fatalf("unexpected blocks %v", pages[0].Content())
	}
	if blocks[1].Frame.Y < blocks[0].Frame.Y+blocks[0].Frame.H {
		t.Error("table overlaps the heading")
	}

	boxes := blocks[1].Boxes
	if len(boxes) != 6 {
		t.Fatalf("expected 6 cell boxes, got %d", len(boxes))
	}
	primary, _ := th.Color(ColorPrimary)
	header, body := *boxes[0].Fill, *boxes[2].Fill
	if header != primary {
		t.Errorf("header fill = %s, want primary %s", header.Hex(), primary.Hex())
	}
	if header == body {
		t.Error("header and body rows share a fill")
	}
}

func TestRender_ColumnWidthsScaleToFit(t *testing.T) {
	table, err := NewTable([]string{"a", "b"}, nil)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	table, err = table.WithColumnWidths(600, 300)
	if err != nil {
		t.Fatalf("WithColumnWidths: %v", err)
	}
	widths := columnWidths(table, 450)
	if widths[0] != 300 || widths[1] != 150 {
		t.Errorf("columnWidths = %v, want [300 150]", widths)
	}
}

func TestRender_TitleOffset(t *testing.T) {
	th := DefaultTheme()
	pages := renderFixed(t, DefaultPageGeometry(), th, NewTitle("Uy-Joy", "Platform"))
	offset, _ := th.Length(LengthTitleOffset)
	margin, _ := th.Length(LengthPageMargin)
	if got := pages[0].Blocks[0].Frame.Y; got != margin+offset {
		t.Errorf("title top = %.2f, want %.2f", got, margin+offset)
	}
	if n := len(pages[0].Blocks[0].Lines); n != 2 {
		t.Errorf("expected title and subtitle lines, got %d", n)
	}
}

func TestRender_JustifiedLines(t *testing.T) {
	text := strings.Repeat("lorem ipsum dolor ", 30)
	pages := renderFixed(t, DefaultPageGeometry(), DefaultTheme(), NewParagraph(text))
	lines := pages[0].Blocks[0].Lines
	if len(lines) < 2 {
		t.Fatalf("expected several lines, got %d", len(lines))
	}
	width := pages[0].Blocks[0].Frame.W
	for i, l := range lines[:len(lines)-1] {
		got := l.Width + l.WordSpacing*float64(countSpaces(l.Text))
		if diff := got - width; diff > 1e-6 || diff < -1e-6 {
			t.Errorf("line %d spans %.3f, want %.3f", i, got, width)
		}
	}
	if last := lines[len(lines)-1]; last.WordSpacing != 0 {
		t.Errorf("last line is justified with spacing %.3f", last.WordSpacing)
	}
}

func TestRender_HardBreaksAreNotJustified(t *testing.T) {
	long := strings.Repeat("lorem ipsum dolor ", 12)
	pages := renderFixed(t, DefaultPageGeometry(), DefaultTheme(), NewParagraph("short line\n"+long+"\nend of it"))
	lines := pages[0].Blocks[0].Lines
	if len(lines) < 4 {
		t.Fatalf("expected at least 4 lines, got %d", len(lines))
	}
	if lines[0].Text != "short line" || lines[0].WordSpacing != 0 {
		t.Errorf("line before a hard break = %q with spacing %.3f, want unjustified %q",
			lines[0].Text, lines[0].WordSpacing, "short line")
	}
	if lines[1].WordSpacing == 0 {
		t.Error("wrapped line inside a segment is not justified")
	}
	for _, i := range []int{len(lines) - 2, len(lines) - 1} {
		if lines[i].WordSpacing != 0 {
			t.Errorf("segment end %q is justified with spacing %.3f", lines[i].Text, lines[i].WordSpacing)
		}
	}
}

func TestRender_InvalidUTF8(t *testing.T) {
	text := strings.Repeat("a", 96) + "\xff" + strings.Repeat("b", 200)
	pages, err := NewPageRenderer(FixedMeasurer{}, DefaultPageGeometry()).Render(
		mustDoc(t, NewParagraph(text)), DefaultTheme())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	var joined strings.Builder
	for _, l := range pages[0].Blocks[0].Lines {
		joined.WriteString(l.Text)
	}
	if joined.String() != text {
		t.Error("split lines do not rejoin to the original text")
	}
}

func TestWrapSegments(t *testing.T) {
	m := FixedMeasurer{}
	// 10pt text advances 5pt per rune, so 50pt holds ten runes.
	lines, ends := wrapSegments(m, FontFace{}, 10, 50, "aaaa bbbb cccc\n\ndd")
	wantLines := []string{"aaaa bbbb", "cccc", "", "dd"}
	wantEnds := []bool{false, true, true, true}
	if !reflect.DeepEqual(lines, wantLines) {
		t.Errorf("lines = %q, want %q", lines, wantLines)
	}
	if !reflect.DeepEqual(ends, wantEnds) {
		t.Errorf("ends = %v, want %v", ends, wantEnds)
	}

	head, tail := splitRunes(m, FontFace{}, 10, 10, "a\xffb")
	if head != "a\xff" || tail != "b" {
		t.Errorf("splitRunes = %q, %q", head, tail)
	}
}

func TestRender_Overflow(t *testing.T) {
	tests := []struct {
		name string
		node func(t *testing.T) Node
		kind NodeKind
	}{
		{
			name: "paragraph taller than a page",
			node: func(*testing.T) Node { return NewParagraph(strings.Repeat("word ", 400)) },
			kind: NodeParagraph,
		},
		{
			name: "table taller than a page",
			node: func(t *testing.T) Node {
				rows := make([][]string, 30)
				for i := range rows {
					rows[i] = []string{fmt.Sprint(i)}
				}
				table, err := NewTable([]string{"n"}, rows)
				if err != nil {
					t.Fatalf("NewTable: %v", err)
				}
				return table
			},
			kind: NodeTable,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustDoc(t, NewParagraph("before"), tt.node(t))
			_, err := NewPageRenderer(FixedMeasurer{}, shortPage).Render(doc, stripTheme())
			var overflow *ContentOverflowError
			if !errors.As(err, &overflow) {
				t.Fatalf("expected ContentOverflowError, got %v", err)
			}
			if overflow.Index != 1 || overflow.Kind != tt.kind {
				t.Errorf("overflow at node %d (%s), want node 1 (%s)", overflow.Index, overflow.Kind, tt.kind)
			}
			if overflow.Need <= overflow.Available {
				t.Errorf("Need %.1f should exceed Available %.1f", overflow.Need, overflow.Available)
			}
		})
	}
}

func TestRender_AtomicBlockMovesToNextPage(t *testing.T) {
	// Nine items use 162pt; a three-line paragraph (42pt + 8pt) no longer
	// fits and starts page two whole.
	list := mustList(t, 9)
	para := NewParagraph(strings.Repeat("x", 119*2+10))
	pages := renderFixed(t, shortPage, stripTheme(), list, para)
	if len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(pages))
	}
	if got := pages[1].Content(); len(got) != 1 || got[0] != para {
		t.Errorf("page 2 content = %v, want the paragraph", got)
	}
	if y := pages[1].Blocks[0].Frame.Y; y != 0 {
		t.Errorf("paragraph top on a fresh page = %.2f, want 0", y)
	}
}

func TestRender_Deterministic(t *testing.T) {
	doc, err := NewDocumentBuilder().
		Title("Uy-Joy", "Technical Report").
		Heading(1, "1. Overview").
		Paragraph(strings.Repeat("Real estate inventory management. ", 20)).
		Bullets("Projects", "Blocks", "Units").
		Table([]string{"Status", "Color"}, [][]string{{"Available", "Green"}, {"Sold", "Red"}}, 2, 2).
		Break().
		Code("GET /api/units\n  ?status=available").
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	r := NewPageRenderer(NewFontMeasurer(nil), DefaultPageGeometry())
	a, err := r.Render(doc, DefaultTheme())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	b, err := r.Render(doc, DefaultTheme())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("rendering the same document twice gave different pages")
	}
	if got := Flatten(a); !reflect.DeepEqual(got, doc.Nodes()) {
		t.Error("Flatten() does not reproduce the document")
	}
}

func TestRender_BlocksStayInsideContentArea(t *testing.T) {
	rep := mustDefaultReport(t)
	doc, err := BuildReport(rep)
	if err != nil {
		t.Fatalf("BuildReport: %v", err)
	}
	g := DefaultPageGeometry()
	pages, err := NewPageRenderer(NewFontMeasurer(nil), g).Render(doc, DefaultTheme())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	bx := g.resolved(0)
	for _, p := range pages {
		for _, b := range p.Blocks {
			if b.Frame.Y < bx.top-epsilon || b.Frame.Y+b.Frame.H > bx.bottom+epsilon {
				t.Errorf("page %d: %s block spans %.1f..%.1f outside %.1f..%.1f",
					p.Number, b.Node.Kind(), b.Frame.Y, b.Frame.Y+b.Frame.H, bx.top, bx.bottom)
			}
		}
	}
}
