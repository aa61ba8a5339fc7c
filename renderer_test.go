package docdeck

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestRenderSlide_Size(t *testing.T) {
	deck, err := NewGenerator(nil, nil).RenderDeck(mustDefaultDeck(t))
	if err != nil {
		t.Fatalf("RenderDeck: %v", err)
	}
	layout := deck.GetLayout()

	img, err := RenderSlide(deck.GetAllSlides()[0], layout, nil)
	if err != nil {
		t.Fatalf("RenderSlide: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 960 {
		t.Errorf("expected width 960, got %d", bounds.Dx())
	}
	// 16:9 => 960:540
	if bounds.Dy() != 540 {
		t.Errorf("expected height 540, got %d", bounds.Dy())
	}
}

func TestRenderSlide_TitleBackground(t *testing.T) {
	th := DefaultTheme()
	slides, err := NewSlideRenderer(FixedMeasurer{}, DefaultSlideLayout()).Render(
		[]SlideSpec{TitleSlide{Title: "Uy-Joy"}}, th)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	img, err := RenderSlide(slides[0], DefaultSlideLayout(), &RenderOptions{Width: 320})
	if err != nil {
		t.Fatalf("RenderSlide: %v", err)
	}
	primary, _ := th.Color(ColorPrimary)
	want := argbToRGBA(primary)
	if got := color.RGBAModel.Convert(img.At(2, 2)).(color.RGBA); got != want {
		t.Errorf("corner pixel = %v, want primary %v", got, want)
	}
}

func TestRenderPage_DrawsBoxes(t *testing.T) {
	th := stripTheme()
	table, err := NewTable([]string{"Name", "Value"}, [][]string{{"Go", "1.22"}})
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	pages := renderFixed(t, DefaultPageGeometry(), th, table)

	bg := NewColor("#FFFFFF")
	img, err := RenderPage(pages[0], bg, &RenderOptions{Width: 595})
	if err != nil {
		t.Fatalf("RenderPage: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 595 || bounds.Dy() != int(595*pages[0].Height/pages[0].Width) {
		t.Errorf("image is %dx%d", bounds.Dx(), bounds.Dy())
	}

	primary, _ := th.Color(ColorPrimary)
	want := argbToRGBA(primary)
	header := pages[0].Blocks[0].Boxes[0].Rect
	scale := float64(bounds.Dx()) / pages[0].Width
	x := int((header.X + 2) * scale)
	y := int((header.Y + 2) * scale)
	if got := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA); got != want {
		t.Errorf("header pixel = %v, want %v", got, want)
	}
	if got := color.RGBAModel.Convert(img.At(bounds.Dx()-1, bounds.Dy()-1)).(color.RGBA); got != argbToRGBA(bg) {
		t.Errorf("page corner = %v, want background", got)
	}
}

func TestRender_Errors(t *testing.T) {
	if _, err := RenderSlide(nil, DefaultSlideLayout(), nil); err == nil {
		t.Error("expected error for nil slide")
	}
	if _, err := RenderSlide(&Slide{}, SlideLayout{}, nil); err == nil {
		t.Error("expected error for empty layout")
	}
	if _, err := RenderPage(nil, ColorWhite, nil); err == nil {
		t.Error("expected error for nil page")
	}
	if _, err := RenderPage(&Page{Number: 1}, ColorWhite, nil); err == nil {
		t.Error("expected error for zero-size page")
	}
}

func TestSaveImage(t *testing.T) {
	_, pages, err := NewGenerator(nil, nil).RenderReport(mustDefaultReport(t))
	if err != nil {
		t.Fatalf("RenderReport: %v", err)
	}
	img, err := RenderPage(pages[0], ColorWhite, &RenderOptions{Width: 200})
	if err != nil {
		t.Fatalf("RenderPage: %v", err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "previews", "page01.png")
	if err := SaveImage(img, path, nil); err != nil {
		t.Fatalf("SaveImage: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("decoded bounds %v, want %v", decoded.Bounds(), img.Bounds())
	}

	jpegPath := filepath.Join(dir, "page01.jpg")
	if err := SaveImage(img, jpegPath, &RenderOptions{Format: ImageFormatJPEG}); err != nil {
		t.Fatalf("SaveImage jpeg: %v", err)
	}
	data, err := os.ReadFile(jpegPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(data) < 2 || data[0] != 0xFF || data[1] != 0xD8 {
		t.Error("output is not a JPEG")
	}
}
