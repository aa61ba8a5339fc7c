package docdeck

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
	"unicode/utf16"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

const pdfVersion = "1.7"

// PDFWriter writes laid-out pages as a PDF file. Every font a page uses is
// embedded whole as a CID-keyed font with Identity-H encoding, so any text
// the font covers prints as measured.
type PDFWriter struct {
	pages      []*Page
	cache      *FontCache
	properties *DocumentProperties
	language   string
	compress   bool
}

// NewPDFWriter creates a writer for pages. The cache must be the one the
// pages were measured with; nil uses the built-in fonts.
func NewPDFWriter(pages []*Page, cache *FontCache) *PDFWriter {
	if cache == nil {
		cache = NewFontCache()
	}
	return &PDFWriter{
		pages:      pages,
		cache:      cache,
		properties: NewDocumentProperties(),
		language:   "en",
		compress:   true,
	}
}

// GetDocumentProperties returns the metadata written into the Info dictionary.
func (w *PDFWriter) GetDocumentProperties() *DocumentProperties {
	return w.properties
}

// SetDocumentProperties sets the document properties.
func (w *PDFWriter) SetDocumentProperties(props *DocumentProperties) {
	w.properties = props
}

// SetLanguage sets the /Lang entry of the catalog.
func (w *PDFWriter) SetLanguage(tag string) {
	w.language = tag
}

// SetCompress turns Flate compression of streams on or off.
func (w *PDFWriter) SetCompress(compress bool) {
	w.compress = compress
}

// Save writes the PDF to a file. The file is replaced only when the whole
// document was written.
func (w *PDFWriter) Save(path string) error {
	return saveAtomic(path, func(f *AtomicFile) error {
		return w.WriteTo(f)
	})
}

// WriteTo writes the PDF to a writer.
func (w *PDFWriter) WriteTo(writer io.Writer) error {
	if len(w.pages) == 0 {
		return fmt.Errorf("document has no pages")
	}
	doc := &pdfDocument{compress: w.compress}
	catalog := doc.reserve()
	pagesObj := doc.reserve()

	fonts := &pdfFonts{cache: w.cache, byName: make(map[string]*pdfFont)}
	var kids []string
	for _, p := range w.pages {
		stream, err := w.pageContent(p, fonts)
		if err != nil {
			return fmt.Errorf("page %d: %w", p.Number, err)
		}
		contents := doc.addStream("", stream, true)
		page := doc.reserve()
		kids = append(kids, fmt.Sprintf("%d 0 R", page))
		doc.pendingPages = append(doc.pendingPages, pendingPage{
			num: page, width: p.Width, height: p.Height, contents: contents,
		})
	}

	fontRefs, err := fonts.write(doc)
	if err != nil {
		return err
	}
	var res strings.Builder
	res.WriteString("<< /Font <<")
	for _, f := range fonts.order {
		fmt.Fprintf(&res, " /%s %d 0 R", f.resName, fontRefs[f.resName])
	}
	res.WriteString(" >> >>")
	resources := doc.add(res.String())

	for _, pp := range doc.pendingPages {
		doc.set(pp.num, fmt.Sprintf("<< /Type /Page\n/Parent %d 0 R\n/MediaBox [0 0 %s %s]\n/Contents %d 0 R\n/Resources %d 0 R\n>>",
			pagesObj, pdfNum(pp.width), pdfNum(pp.height), pp.contents, resources))
	}
	doc.set(pagesObj, fmt.Sprintf("<< /Type /Pages\n/Kids [%s]\n/Count %d\n>>", strings.Join(kids, " "), len(kids)))

	lang := ""
	if w.language != "" {
		lang = "\n/Lang " + pdfText(w.language)
	}
	doc.set(catalog, fmt.Sprintf("<< /Type /Catalog\n/Pages %d 0 R%s\n>>", pagesObj, lang))
	info := doc.add(w.infoDict())

	_, err = writer.Write(doc.build(catalog, info))
	return err
}

// pageContent draws the boxes of every block, then its text lines.
func (w *PDFWriter) pageContent(p *Page, fonts *pdfFonts) ([]byte, error) {
	var sb strings.Builder
	for _, b := range p.Blocks {
		for _, bx := range b.Boxes {
			writeBoxOps(&sb, bx, p.Height)
		}
		for _, line := range b.Lines {
			if line.Text == "" {
				continue
			}
			f, err := fonts.get(line.Face)
			if err != nil {
				return nil, err
			}
			tj, err := f.encode(line.Text, line.WordSpacing, line.Size)
			if err != nil {
				return nil, err
			}
			fmt.Fprintf(&sb, "BT\n/%s %s Tf\n%s rg\n%s %s Td\n[%s] TJ\nET\n",
				f.resName, pdfNum(line.Size), rgbOps(line.Color),
				pdfNum(line.X), pdfNum(p.Height-line.Baseline), tj)
		}
	}
	return []byte(sb.String()), nil
}

func writeBoxOps(sb *strings.Builder, bx Box, pageHeight float64) {
	if bx.Fill == nil && bx.Stroke == nil {
		return
	}
	op := "f"
	sb.WriteString("q\n")
	if bx.Fill != nil {
		fmt.Fprintf(sb, "%s rg\n", rgbOps(*bx.Fill))
	}
	if bx.Stroke != nil {
		fmt.Fprintf(sb, "%s w\n%s RG\n", pdfNum(bx.StrokeWidth), rgbOps(*bx.Stroke))
		op = "S"
		if bx.Fill != nil {
			op = "B"
		}
	}
	fmt.Fprintf(sb, "%s %s %s %s re %s\nQ\n",
		pdfNum(bx.X), pdfNum(pageHeight-bx.Y-bx.H), pdfNum(bx.W), pdfNum(bx.H), op)
}

func rgbOps(c Color) string {
	return fmt.Sprintf("%s %s %s",
		pdfNum(float64(c.GetRed())/255), pdfNum(float64(c.GetGreen())/255), pdfNum(float64(c.GetBlue())/255))
}

func (w *PDFWriter) infoDict() string {
	props := w.properties
	if props == nil {
		props = NewDocumentProperties()
	}
	var sb strings.Builder
	sb.WriteString("<<\n")
	for _, kv := range []struct{ key, value string }{
		{"Title", props.Title},
		{"Author", props.Creator},
		{"Subject", props.Subject},
		{"Keywords", props.Keywords},
	} {
		if kv.value != "" {
			fmt.Fprintf(&sb, "/%s %s\n", kv.key, pdfText(kv.value))
		}
	}
	fmt.Fprintf(&sb, "/Creator %s\n", pdfText("docdeck "+Version))
	fmt.Fprintf(&sb, "/Producer %s\n", pdfText("docdeck "+Version))
	fmt.Fprintf(&sb, "/CreationDate %s\n", pdfText(props.Created.UTC().Format("D:20060102150405Z")))
	fmt.Fprintf(&sb, "/ModDate %s\n", pdfText(props.Modified.UTC().Format("D:20060102150405Z")))
	sb.WriteString(">>")
	return sb.String()
}

// --- Objects ---

type pendingPage struct {
	num           int
	width, height float64
	contents      int
}

// pdfDocument collects numbered objects. Object n is objects[n-1].
type pdfDocument struct {
	objects      [][]byte
	compress     bool
	pendingPages []pendingPage
}

// reserve allocates an object number to be filled in later with set.
func (d *pdfDocument) reserve() int {
	d.objects = append(d.objects, nil)
	return len(d.objects)
}

func (d *pdfDocument) set(n int, content string) {
	d.objects[n-1] = []byte(content)
}

// add appends an object and returns its object number.
func (d *pdfDocument) add(content string) int {
	d.objects = append(d.objects, []byte(content))
	return len(d.objects)
}

// addStream appends a stream object. extra holds additional dictionary
// entries.
func (d *pdfDocument) addStream(extra string, data []byte, compressible bool) int {
	filter := ""
	if d.compress && compressible {
		var buf bytes.Buffer
		zw := zlib.NewWriter(&buf)
		zw.Write(data)
		zw.Close()
		data = buf.Bytes()
		filter = "/Filter /FlateDecode\n"
	}
	var obj bytes.Buffer
	fmt.Fprintf(&obj, "<< /Length %d\n%s%s>>\nstream\n", len(data), filter, extra)
	obj.Write(data)
	obj.WriteString("\nendstream")
	d.objects = append(d.objects, obj.Bytes())
	return len(d.objects)
}

func (d *pdfDocument) build(root, info int) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%%PDF-%s\n", pdfVersion)
	buf.WriteString("%\xE2\xE3\xCF\xD3\n")

	xref := make([]int, len(d.objects)+1)
	for i, obj := range d.objects {
		xref[i+1] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n", i+1)
		buf.Write(obj)
		buf.WriteString("\nendobj\n")
	}

	xrefPos := buf.Len()
	buf.WriteString("xref\n")
	fmt.Fprintf(&buf, "0 %d\n", len(d.objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for i := 1; i <= len(d.objects); i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", xref[i])
	}

	buf.WriteString("trailer\n")
	fmt.Fprintf(&buf, "<< /Size %d\n/Root %d 0 R\n/Info %d 0 R\n>>", len(d.objects)+1, root, info)
	buf.WriteString("\nstartxref\n")
	fmt.Fprintf(&buf, "%d\n", xrefPos)
	buf.WriteString("%%EOF\n")
	return buf.Bytes()
}

// --- Fonts ---

// pdfFonts tracks the fonts used by the pages, in order of first use.
type pdfFonts struct {
	cache  *FontCache
	byName map[string]*pdfFont
	order  []*pdfFont
	buf    sfnt.Buffer
}

type pdfFont struct {
	resName string
	entry   *fontEntry
	fonts   *pdfFonts
	widths  map[sfnt.GlyphIndex]float64 // 1/1000 em
	runes   map[sfnt.GlyphIndex]rune
}

func (fs *pdfFonts) get(face FontFace) (*pdfFont, error) {
	e := fs.cache.lookup(face)
	if f, ok := fs.byName[e.name]; ok {
		return f, nil
	}
	f := &pdfFont{
		resName: fmt.Sprintf("F%d", len(fs.order)+1),
		entry:   e,
		fonts:   fs,
		widths:  make(map[sfnt.GlyphIndex]float64),
		runes:   make(map[sfnt.GlyphIndex]rune),
	}
	fs.byName[e.name] = f
	fs.order = append(fs.order, f)
	return f, nil
}

// encode returns the TJ array body for text: glyph ids as hex strings, with
// a negative kerning adjustment after every space when wordSpacing is set.
func (f *pdfFont) encode(text string, wordSpacing, size float64) (string, error) {
	var sb strings.Builder
	adjust := ""
	if wordSpacing > 0 && size > 0 {
		adjust = pdfNum(-wordSpacing * 1000 / size)
	}
	sb.WriteByte('<')
	for _, r := range text {
		gid, err := f.glyph(r)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&sb, "%04X", uint16(gid))
		if r == ' ' && adjust != "" {
			fmt.Fprintf(&sb, "> %s <", adjust)
		}
	}
	sb.WriteByte('>')
	return sb.String(), nil
}

// glyph maps a rune to a glyph id and records its width. Runes the font
// does not cover map to glyph 0.
func (f *pdfFont) glyph(r rune) (sfnt.GlyphIndex, error) {
	sf := f.entry.font
	gid, err := sf.GlyphIndex(&f.fonts.buf, r)
	if err != nil {
		return 0, fmt.Errorf("font %q: rune %U: %w", f.entry.name, r, err)
	}
	if _, ok := f.widths[gid]; ok {
		return gid, nil
	}
	adv, err := sf.GlyphAdvance(&f.fonts.buf, gid, fixed.I(1000), font.HintingNone)
	if err != nil {
		return 0, fmt.Errorf("font %q: glyph %d: %w", f.entry.name, gid, err)
	}
	f.widths[gid] = fixedToFloat(adv)
	if gid != 0 {
		f.runes[gid] = r
	}
	return gid, nil
}

// write adds the font objects of every used font and returns the Type0
// object number for each resource name.
func (fs *pdfFonts) write(doc *pdfDocument) (map[string]int, error) {
	refs := make(map[string]int, len(fs.order))
	for _, f := range fs.order {
		n, err := f.write(doc)
		if err != nil {
			return nil, err
		}
		refs[f.resName] = n
	}
	return refs, nil
}

func (f *pdfFont) write(doc *pdfDocument) (int, error) {
	sf := f.entry.font
	buf := &f.fonts.buf
	ppem := fixed.I(1000)

	m, err := sf.Metrics(buf, ppem, font.HintingNone)
	if err != nil {
		return 0, fmt.Errorf("font %q: metrics: %w", f.entry.name, err)
	}
	bounds, err := sf.Bounds(buf, ppem, font.HintingNone)
	if err != nil {
		return 0, fmt.Errorf("font %q: bounds: %w", f.entry.name, err)
	}
	baseFont := postScriptName(sf, f.entry.name)
	cff := isOpenTypeCFF(f.entry.data)

	// sfnt bounds grow downwards; PDF font space grows upwards.
	bbox := fmt.Sprintf("[%d %d %d %d]",
		bounds.Min.X.Round(), -bounds.Max.Y.Round(), bounds.Max.X.Round(), -bounds.Min.Y.Round())

	var fileRef string
	if cff {
		n := doc.addStream("/Subtype /OpenType\n", f.entry.data, true)
		fileRef = fmt.Sprintf("/FontFile3 %d 0 R", n)
	} else {
		n := doc.addStream(fmt.Sprintf("/Length1 %d\n", len(f.entry.data)), f.entry.data, true)
		fileRef = fmt.Sprintf("/FontFile2 %d 0 R", n)
	}

	flags := 32 // nonsymbolic
	if f.entry.name == BuiltinMono {
		flags |= 1
	}
	descriptor := doc.add(fmt.Sprintf("<< /Type /FontDescriptor\n/FontName /%s\n/Flags %d\n/FontBBox %s\n/ItalicAngle 0\n/Ascent %d\n/Descent %d\n/CapHeight %d\n/StemV 80\n%s\n>>",
		baseFont, flags, bbox, m.Ascent.Round(), -m.Descent.Round(), m.Ascent.Round(), fileRef))

	subtype, gidMap := "CIDFontType2", "\n/CIDToGIDMap /Identity"
	if cff {
		subtype, gidMap = "CIDFontType0", ""
	}
	cid := doc.add(fmt.Sprintf("<< /Type /Font\n/Subtype /%s\n/BaseFont /%s\n/CIDSystemInfo << /Registry (Adobe) /Ordering (Identity) /Supplement 0 >>\n/FontDescriptor %d 0 R\n/DW 1000\n/W %s%s\n>>",
		subtype, baseFont, descriptor, f.widthArray(), gidMap))

	toUnicode := doc.addStream("", []byte(f.toUnicode()), true)
	return doc.add(fmt.Sprintf("<< /Type /Font\n/Subtype /Type0\n/BaseFont /%s\n/Encoding /Identity-H\n/DescendantFonts [%d 0 R]\n/ToUnicode %d 0 R\n>>",
		baseFont, cid, toUnicode)), nil
}

func (f *pdfFont) sortedGlyphs() []sfnt.GlyphIndex {
	gids := make([]sfnt.GlyphIndex, 0, len(f.widths))
	for g := range f.widths {
		gids = append(gids, g)
	}
	slices.Sort(gids)
	return gids
}

func (f *pdfFont) widthArray() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, g := range f.sortedGlyphs() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%d [%s]", g, pdfNum(f.widths[g]))
	}
	sb.WriteByte(']')
	return sb.String()
}

// toUnicode returns a CMap mapping glyph ids back to text, so PDF text can
// be searched and copied.
func (f *pdfFont) toUnicode() string {
	var gids []sfnt.GlyphIndex
	for _, g := range f.sortedGlyphs() {
		if _, ok := f.runes[g]; ok {
			gids = append(gids, g)
		}
	}
	var sb strings.Builder
	sb.WriteString("/CIDInit /ProcSet findresource begin\n12 dict begin\nbegincmap\n")
	sb.WriteString("/CIDSystemInfo << /Registry (Adobe) /Ordering (UCS) /Supplement 0 >> def\n")
	sb.WriteString("/CMapName /Adobe-Identity-UCS def\n/CMapType 2 def\n")
	sb.WriteString("1 begincodespacerange\n<0000> <FFFF>\nendcodespacerange\n")
	for start := 0; start < len(gids); start += 100 {
		chunk := gids[start:min(start+100, len(gids))]
		fmt.Fprintf(&sb, "%d beginbfchar\n", len(chunk))
		for _, g := range chunk {
			fmt.Fprintf(&sb, "<%04X> <%s>\n", uint16(g), utf16Hex(string(f.runes[g])))
		}
		sb.WriteString("endbfchar\n")
	}
	sb.WriteString("endcmap\nCMapName currentdict /CMap defineresource pop\nend\nend\n")
	return sb.String()
}

// postScriptName returns the font's PostScript name reduced to characters
// valid in a PDF name.
func postScriptName(f *sfnt.Font, fallback string) string {
	name, err := f.Name(nil, sfnt.NameIDPostScript)
	if err != nil || name == "" {
		name = fallback
	}
	clean := strings.Map(func(r rune) rune {
		if r > 0x20 && r < 0x7F && !strings.ContainsRune("()<>[]{}/%#", r) {
			return r
		}
		return -1
	}, name)
	if clean == "" {
		return "Font"
	}
	return clean
}

// --- Values ---

// pdfNum formats v with at most three decimals.
func pdfNum(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// pdfText encodes a text string: literal for ASCII, UTF-16BE hex otherwise.
func pdfText(s string) string {
	ascii := true
	for _, r := range s {
		if r > 0x7E || r < 0x20 {
			ascii = false
			break
		}
	}
	if ascii {
		r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
		return "(" + r.Replace(s) + ")"
	}
	return "<FEFF" + utf16Hex(s) + ">"
}

func utf16Hex(s string) string {
	var sb strings.Builder
	for _, u := range utf16.Encode([]rune(s)) {
		fmt.Fprintf(&sb, "%04X", u)
	}
	return sb.String()
}
