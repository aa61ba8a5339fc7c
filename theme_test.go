package docdeck

import (
	"errors"
	"slices"
	"testing"
)

func TestDefaultTheme_Valid(t *testing.T) {
	th := DefaultTheme()
	if err := th.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if th.Name() != "uy-joy" {
		t.Errorf("Name() = %q", th.Name())
	}
	for _, name := range []string{
		StyleTitle, StyleSubtitle, StyleLead, StyleNote, StyleHeading1, StyleHeading2, StyleHeading3,
		StyleBody, StyleBullet, StyleCode, StyleTableHeader, StyleTableBody,
		StyleSlideTitle, StyleSlideSubtitle, StyleSlideHeading, StyleSlideBullet, StyleSlideLabel, StyleSlideColumn,
	} {
		if _, err := th.resolve(name); err != nil {
			t.Errorf("resolve(%q): %v", name, err)
		}
	}
	for _, name := range []string{
		LengthPageMargin, LengthBorderRadius, LengthShadowOffset, LengthTitleOffset,
		LengthCellPadX, LengthCellPadY, LengthGridWidth,
	} {
		if _, err := th.Length(name); err != nil {
			t.Errorf("Length(%q): %v", name, err)
		}
	}
}

func TestDefaultTheme_Palette(t *testing.T) {
	th := DefaultTheme()
	tests := map[string]string{
		ColorPrimary:         "FF1E2A38",
		ColorAccent:          "FFC9A86A",
		ColorBackground:      "FFF7F8FA",
		ColorStatusAvailable: "FF4CAF50",
		ColorStatusReserved:  "FFF9A825",
		ColorStatusSold:      "FFE53935",
	}
	for name, want := range tests {
		c, err := th.Color(name)
		if err != nil {
			t.Errorf("Color(%q): %v", name, err)
			continue
		}
		if c.ARGB != want {
			t.Errorf("Color(%q) = %s, want %s", name, c.ARGB, want)
		}
	}
	names := th.ColorNames()
	if !slices.IsSorted(names) || len(names) != 11 {
		t.Errorf("ColorNames() = %v", names)
	}
}

func TestTheme_UnknownTokens(t *testing.T) {
	th := DefaultTheme()
	tests := []struct {
		kind string
		call func() error
	}{
		{"color", func() error { _, err := th.Color("sparkle"); return err }},
		{"font", func() error { _, err := th.Font("script"); return err }},
		{"style", func() error { _, err := th.Style("caption"); return err }},
		{"length", func() error { _, err := th.Length("gutter"); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			var tokenErr *UnknownTokenError
			if err := tt.call(); !errors.As(err, &tokenErr) || tokenErr.Kind != tt.kind {
				t.Errorf("expected UnknownTokenError of kind %s, got %v", tt.kind, err)
			}
		})
	}
}

func TestTheme_WithColors(t *testing.T) {
	base := DefaultTheme()
	teal := NewColor("0F766E")

	derived, err := base.WithColors(map[string]Color{ColorPrimary: teal})
	if err != nil {
		t.Fatalf("WithColors: %v", err)
	}
	if c, _ := derived.Color(ColorPrimary); c != teal {
		t.Errorf("derived primary = %s, want %s", c.ARGB, teal.ARGB)
	}
	if c, _ := base.Color(ColorPrimary); c == teal {
		t.Error("WithColors modified the base theme")
	}

	if _, err := base.WithColors(map[string]Color{"sparkle": teal}); err == nil {
		t.Error("expected error for unknown color token")
	}
	if _, err := base.WithColors(map[string]Color{ColorAccent: {ARGB: "zz"}}); err == nil {
		t.Error("expected error for invalid color value")
	}
}

func TestTheme_ValidateReportsDanglingReferences(t *testing.T) {
	th := DefaultTheme().clone()
	delete(th.fonts, FontMono)
	var tokenErr *UnknownTokenError
	if err := th.Validate(); !errors.As(err, &tokenErr) || tokenErr.Name != FontMono {
		t.Errorf("expected missing mono font, got %v", err)
	}
}

func TestTextStyle_LineHeight(t *testing.T) {
	if got := (TextStyle{Size: 10}).LineHeight(); got != 12 {
		t.Errorf("default leading = %v, want 12", got)
	}
	if got := (TextStyle{Size: 10, Leading: 14}).LineHeight(); got != 14 {
		t.Errorf("explicit leading = %v, want 14", got)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "#1e2a38", want: "FF1E2A38"},
		{in: "801E2A38", want: "801E2A38"},
		{in: " C9A86A ", want: "FFC9A86A"},
		{in: "navy", wantErr: true},
		{in: "#12345", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := ParseColor(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %s", c.ARGB)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColor: %v", err)
			}
			if c.ARGB != tt.want {
				t.Errorf("ParseColor(%q) = %s, want %s", tt.in, c.ARGB, tt.want)
			}
		})
	}
	if c := NewColor("bogus"); c != ColorBlack {
		t.Errorf("NewColor(bogus) = %s, want black", c.ARGB)
	}
	c := NewColor("#1E2A38")
	if c.GetRed() != 0x1E || c.GetGreen() != 0x2A || c.GetBlue() != 0x38 || c.GetAlpha() != 0xFF {
		t.Errorf("components of %s = %d %d %d %d", c.ARGB, c.GetRed(), c.GetGreen(), c.GetBlue(), c.GetAlpha())
	}
	if colorRGB(c) != "1E2A38" {
		t.Errorf("colorRGB = %s", colorRGB(c))
	}
}
