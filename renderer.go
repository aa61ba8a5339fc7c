package docdeck

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// ImageFormat represents the output image format.
type ImageFormat int

const (
	ImageFormatPNG ImageFormat = iota
	ImageFormatJPEG
)

// RenderOptions configures preview rendering of slides and pages.
type RenderOptions struct {
	// Width is the output image width in pixels. Height follows the aspect
	// ratio of the slide or page. Default: 960
	Width int
	// Format is the output image format (PNG or JPEG).
	Format ImageFormat
	// JPEGQuality is the JPEG quality (1-100). Default: 90.
	JPEGQuality int
	// FontCache should be the cache the content was measured with. If nil,
	// the built-in fonts are used.
	FontCache *FontCache
}

// DefaultRenderOptions returns default rendering options.
func DefaultRenderOptions() *RenderOptions {
	return &RenderOptions{
		Width:       960,
		Format:      ImageFormatPNG,
		JPEGQuality: 90,
	}
}

func (o *RenderOptions) normalized() *RenderOptions {
	out := DefaultRenderOptions()
	if o != nil {
		*out = *o
	}
	if out.Width <= 0 {
		out.Width = 960
	}
	if out.FontCache == nil {
		out.FontCache = NewFontCache()
	}
	return out
}

// RenderSlide draws a slide preview on a canvas of the given layout.
func RenderSlide(slide *Slide, layout SlideLayout, opts *RenderOptions) (image.Image, error) {
	if slide == nil {
		return nil, fmt.Errorf("slide is nil")
	}
	if layout.Width <= 0 || layout.Height <= 0 {
		return nil, fmt.Errorf("invalid slide size %dx%d", layout.Width, layout.Height)
	}
	opts = opts.normalized()

	imgW := opts.Width
	imgH := int(float64(imgW) * float64(layout.Height) / float64(layout.Width))
	scale := float64(imgW) / float64(layout.Width)

	img := image.NewRGBA(image.Rect(0, 0, imgW, imgH))
	bg := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	if slide.background != nil && slide.background.Type == FillSolid {
		bg = argbToRGBA(slide.background.Color)
	}
	draw.Draw(img, img.Bounds(), &image.Uniform{bg}, image.Point{}, draw.Src)

	r := &renderer{img: img, scale: scale, fontCache: opts.FontCache}
	for _, shape := range slide.shapes {
		r.renderShape(shape)
	}
	return img, nil
}

// RenderPage draws a page preview.
func RenderPage(page *Page, background Color, opts *RenderOptions) (image.Image, error) {
	if page == nil {
		return nil, fmt.Errorf("page is nil")
	}
	if page.Width <= 0 || page.Height <= 0 {
		return nil, fmt.Errorf("invalid page size %.1fx%.1f", page.Width, page.Height)
	}
	opts = opts.normalized()

	imgW := opts.Width
	imgH := int(float64(imgW) * page.Height / page.Width)
	scale := float64(imgW) / page.Width

	img := image.NewRGBA(image.Rect(0, 0, imgW, imgH))
	draw.Draw(img, img.Bounds(), &image.Uniform{argbToRGBA(background)}, image.Point{}, draw.Src)

	r := &renderer{img: img, scale: scale, fontCache: opts.FontCache}
	for _, b := range page.Blocks {
		for _, bx := range b.Boxes {
			r.renderBox(bx)
		}
		for _, line := range b.Lines {
			r.renderTextLine(line)
		}
	}
	return img, nil
}

// SaveImage encodes img to path in the format of opts.
func SaveImage(img image.Image, path string, opts *RenderOptions) error {
	opts = opts.normalized()
	return saveAtomic(path, func(f *AtomicFile) error {
		switch opts.Format {
		case ImageFormatJPEG:
			quality := opts.JPEGQuality
			if quality <= 0 || quality > 100 {
				quality = 90
			}
			return jpeg.Encode(f, img, &jpeg.Options{Quality: quality})
		default:
			return png.Encode(f, img)
		}
	})
}

// --- renderer ---

// renderer draws onto img. scale converts EMU (slides) or points (pages)
// to pixels.
type renderer struct {
	img       *image.RGBA
	scale     float64
	fontCache *FontCache
}

func (r *renderer) px(v float64) int {
	return int(v * r.scale)
}

func (r *renderer) emuRect(b *BaseShape) image.Rectangle {
	x := r.px(float64(b.offsetX))
	y := r.px(float64(b.offsetY))
	return image.Rect(x, y, x+r.px(float64(b.width)), y+r.px(float64(b.height)))
}

func argbToRGBA(c Color) color.RGBA {
	return color.RGBA{
		R: c.GetRed(),
		G: c.GetGreen(),
		B: c.GetBlue(),
		A: c.GetAlpha(),
	}
}

func (r *renderer) renderShape(shape Shape) {
	switch s := shape.(type) {
	case *RichTextShape:
		r.renderRichText(s)
	case *AutoShape:
		r.renderAutoShape(s)
	}
}

func (r *renderer) renderAutoShape(s *AutoShape) {
	rect := r.emuRect(&s.BaseShape)
	if s.fill != nil && s.fill.Type == FillSolid {
		draw.Draw(r.img, rect, &image.Uniform{argbToRGBA(s.fill.Color)}, image.Point{}, draw.Over)
	}
	if s.border != nil && s.border.Style != BorderNone {
		pw := r.px(float64(s.border.Width))
		if pw < 1 {
			pw = 1
		}
		r.drawRect(rect, argbToRGBA(s.border.Color), pw)
	}
}

func (r *renderer) renderRichText(s *RichTextShape) {
	rect := r.emuRect(&s.BaseShape)
	if s.fill != nil && s.fill.Type == FillSolid {
		draw.Draw(r.img, rect, &image.Uniform{argbToRGBA(s.fill.Color)}, image.Point{}, draw.Over)
	}
	inner := image.Rect(
		rect.Min.X+r.px(defaultInsetX), rect.Min.Y+r.px(defaultInsetY),
		rect.Max.X-r.px(defaultInsetX), rect.Max.Y-r.px(defaultInsetY),
	)
	r.drawParagraphs(s.paragraphs, inner, s.textAnchor)
}

func (r *renderer) renderBox(bx Box) {
	rect := image.Rect(r.px(bx.X), r.px(bx.Y), r.px(bx.X+bx.W), r.px(bx.Y+bx.H))
	if bx.Fill != nil {
		draw.Draw(r.img, rect, &image.Uniform{argbToRGBA(*bx.Fill)}, image.Point{}, draw.Over)
	}
	if bx.Stroke != nil {
		pw := r.px(bx.StrokeWidth)
		if pw < 1 {
			pw = 1
		}
		r.drawRect(rect, argbToRGBA(*bx.Stroke), pw)
	}
}

func (r *renderer) renderTextLine(line TextLine) {
	if line.Text == "" {
		return
	}
	face := r.getFace(line.Face, line.Size*r.scale)
	d := &font.Drawer{
		Dst:  r.img,
		Src:  &image.Uniform{argbToRGBA(line.Color)},
		Face: face,
		Dot:  fixed.P(r.px(line.X), r.px(line.Baseline)),
	}
	if line.WordSpacing <= 0 {
		d.DrawString(line.Text)
		return
	}
	gap := fixed.Int26_6(line.WordSpacing * r.scale * 64)
	for i, word := range strings.Split(line.Text, " ") {
		if i > 0 {
			d.DrawString(" ")
			d.Dot.X += gap
		}
		d.DrawString(word)
	}
}

// --- Drawing primitives ---

func (r *renderer) drawRect(rect image.Rectangle, c color.RGBA, width int) {
	for i := 0; i < width; i++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			r.setPixel(x, rect.Min.Y+i, c)
			r.setPixel(x, rect.Max.Y-1-i, c)
		}
		for y := rect.Min.Y; y < rect.Max.Y; y++ {
			r.setPixel(rect.Min.X+i, y, c)
			r.setPixel(rect.Max.X-1-i, y, c)
		}
	}
}

func (r *renderer) setPixel(x, y int, c color.RGBA) {
	bounds := r.img.Bounds()
	if x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
		r.img.SetRGBA(x, y, c)
	}
}

// --- Text rendering ---

// minFacePixels is the size below which outlines are unreadable and the
// bitmap face is used instead.
const minFacePixels = 4

// getFace returns a face for drawing at sizePx pixels.
func (r *renderer) getFace(face FontFace, sizePx float64) font.Face {
	if sizePx < minFacePixels {
		return basicfont.Face7x13
	}
	return r.fontCache.GetFace(face, sizePx)
}

// textLine is one wrapped line of a slide paragraph.
type textLine struct {
	text      string
	face      font.Face
	color     color.RGBA
	width     int
	pitch     int // distance to the next baseline
	ascent    int
	after     int // extra space after the last line of a paragraph
	alignment HorizontalAlignment
}

func (r *renderer) drawParagraphs(paragraphs []*TextParagraph, box image.Rectangle, anchor TextAnchorType) {
	var lines []textLine
	for _, para := range paragraphs {
		lines = append(lines, r.layoutParagraph(para, box.Dx())...)
	}

	total := 0
	for _, l := range lines {
		total += l.pitch + l.after
	}
	y := box.Min.Y
	switch anchor {
	case TextAnchorMiddle:
		y += (box.Dy() - total) / 2
	case TextAnchorBottom:
		y = box.Max.Y - total
	}

	for _, l := range lines {
		if y+l.pitch > box.Max.Y+l.pitch/2 {
			break
		}
		x := box.Min.X
		switch l.alignment {
		case HorizontalCenter:
			x += (box.Dx() - l.width) / 2
		case HorizontalRight:
			x = box.Max.X - l.width
		}
		d := &font.Drawer{
			Dst:  r.img,
			Src:  &image.Uniform{l.color},
			Face: l.face,
			Dot:  fixed.P(x, y+l.ascent+(l.pitch-l.face.Metrics().Height.Ceil())/2),
		}
		d.DrawString(l.text)
		y += l.pitch + l.after
	}
}

// layoutParagraph wraps the paragraph text set in the font of its first
// run, which is the only kind of paragraph the slide renderer builds.
func (r *renderer) layoutParagraph(para *TextParagraph, width int) []textLine {
	f := NewFont()
	for _, e := range para.elements {
		if tr, ok := e.(*TextRun); ok {
			f = tr.font
			break
		}
	}
	sizePt := float64(f.Size)
	sizePx := float64(Point(sizePt)) * r.scale
	face := r.getFace(f.face(), sizePx)

	pitch := face.Metrics().Height.Ceil()
	if para.lineSpacing < 0 {
		pitch = int(sizePx * float64(-para.lineSpacing) / 100000)
	}
	after := r.px(float64(Point(float64(para.spaceAfter) / 100)))

	measure := pixelMeasurer{face: face}
	var out []textLine
	for _, s := range wrapText(measure, f.face(), sizePx, float64(width), para.Text()) {
		out = append(out, textLine{
			text:      s,
			face:      face,
			color:     argbToRGBA(f.Color),
			width:     font.MeasureString(face, s).Ceil(),
			pitch:     pitch,
			ascent:    face.Metrics().Ascent.Ceil(),
			alignment: para.alignment,
		})
	}
	if len(out) > 0 {
		out[len(out)-1].after = after
	}
	return out
}

// pixelMeasurer measures with one already-scaled face.
type pixelMeasurer struct {
	face font.Face
}

func (m pixelMeasurer) Width(_ FontFace, _ float64, text string) float64 {
	return fixedToFloat(font.MeasureString(m.face, text))
}

func (m pixelMeasurer) Ascent(_ FontFace, _ float64) float64 {
	return fixedToFloat(m.face.Metrics().Ascent)
}
