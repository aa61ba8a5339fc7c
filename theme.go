package docdeck

import (
	"fmt"
	"maps"
	"slices"
)

// Color tokens.
const (
	ColorPrimary         = "primary"
	ColorAccent          = "accent"
	ColorBackground      = "background"
	ColorSurface         = "surface"
	ColorText            = "text"
	ColorMuted           = "muted"
	ColorGrid            = "grid"
	ColorOnPrimary       = "on-primary"
	ColorStatusAvailable = "status-available"
	ColorStatusReserved  = "status-reserved"
	ColorStatusSold      = "status-sold"
)

// Font roles.
const (
	FontHeading = "heading"
	FontBody    = "body"
	FontMono    = "mono"
)

// Text style tokens used by the page renderer.
const (
	StyleTitle       = "title"
	StyleSubtitle    = "subtitle"
	StyleLead        = "lead"
	StyleNote        = "note"
	StyleHeading1    = "heading-1"
	StyleHeading2    = "heading-2"
	StyleHeading3    = "heading-3"
	StyleBody        = "body"
	StyleBullet      = "bullet"
	StyleCode        = "code"
	StyleTableHeader = "table-header"
	StyleTableBody   = "table-body"
)

// Text style tokens used by the slide renderer.
const (
	StyleSlideTitle    = "slide-title"
	StyleSlideSubtitle = "slide-subtitle"
	StyleSlideHeading  = "slide-heading"
	StyleSlideBullet   = "slide-bullet"
	StyleSlideLabel    = "slide-label"
	StyleSlideColumn   = "slide-column"
)

// Length tokens, in points.
const (
	LengthPageMargin   = "page-margin"
	LengthBorderRadius = "border-radius"
	LengthShadowOffset = "shadow-offset"
	LengthTitleOffset  = "title-offset"
	LengthCellPadX     = "cell-padding-x"
	LengthCellPadY     = "cell-padding-y"
	LengthGridWidth    = "grid-width"
)

// TextStyle describes how one kind of text is set.
type TextStyle struct {
	Font        string  // font role
	Size        int     // points
	Leading     float64 // baseline distance in points; 0 means 1.2 x Size
	SpaceBefore float64
	SpaceAfter  float64
	Color       string // color token
	Align       HorizontalAlignment
	Indent      float64 // left indent in points
}

// LineHeight returns the baseline-to-baseline distance in points.
func (s TextStyle) LineHeight() float64 {
	if s.Leading > 0 {
		return s.Leading
	}
	return float64(s.Size) * 1.2
}

// Theme is an immutable table of named colors, fonts, text styles and
// lengths. It is passed by pointer into both renderers and never modified
// after construction; use WithColors to derive a variant.
type Theme struct {
	name    string
	colors  map[string]Color
	fonts   map[string]FontFace
	styles  map[string]TextStyle
	lengths map[string]float64
}

// DefaultTheme returns the Uy-Joy design system: navy and gold on a light
// background, Poppins headings and Inter body text.
func DefaultTheme() *Theme {
	return &Theme{
		name: "uy-joy",
		colors: map[string]Color{
			ColorPrimary:         NewColor("#1E2A38"),
			ColorAccent:          NewColor("#C9A86A"),
			ColorBackground:      NewColor("#F7F8FA"),
			ColorSurface:         NewColor("#FFFFFF"),
			ColorText:            NewColor("#374151"),
			ColorMuted:           NewColor("#6B7280"),
			ColorGrid:            NewColor("#E5E7EB"),
			ColorOnPrimary:       NewColor("#FFFFFF"),
			ColorStatusAvailable: NewColor("#4CAF50"),
			ColorStatusReserved:  NewColor("#F9A825"),
			ColorStatusSold:      NewColor("#E53935"),
		},
		fonts: map[string]FontFace{
			FontHeading: {Family: "Poppins", Bold: true},
			FontBody:    {Family: "Inter"},
			FontMono:    {Family: "Courier New", Mono: true},
		},
		styles: map[string]TextStyle{
			StyleTitle:       {Font: FontHeading, Size: 24, SpaceAfter: 30, Color: ColorPrimary, Align: HorizontalCenter},
			StyleSubtitle:    {Font: FontBody, Size: 14, SpaceAfter: 30, Color: ColorAccent, Align: HorizontalCenter},
			StyleLead:        {Font: FontBody, Size: 18, SpaceBefore: 36, SpaceAfter: 50, Color: ColorPrimary, Align: HorizontalCenter},
			StyleNote:        {Font: FontBody, Size: 10, SpaceBefore: 72, Color: ColorMuted, Align: HorizontalCenter},
			StyleHeading1:    {Font: FontHeading, Size: 16, SpaceBefore: 20, SpaceAfter: 10, Color: ColorPrimary, Align: HorizontalLeft},
			StyleHeading2:    {Font: FontHeading, Size: 12, SpaceBefore: 15, SpaceAfter: 8, Color: ColorPrimary, Align: HorizontalLeft},
			StyleHeading3:    {Font: FontHeading, Size: 11, SpaceBefore: 12, SpaceAfter: 6, Color: ColorPrimary, Align: HorizontalLeft},
			StyleBody:        {Font: FontBody, Size: 10, Leading: 14, SpaceAfter: 8, Color: ColorText, Align: HorizontalJustify},
			StyleBullet:      {Font: FontBody, Size: 10, Leading: 14, SpaceAfter: 4, Color: ColorText, Align: HorizontalLeft, Indent: 20},
			StyleCode:        {Font: FontMono, Size: 8, Leading: 11, SpaceAfter: 8, Color: ColorText, Align: HorizontalLeft},
			StyleTableHeader: {Font: FontHeading, Size: 9, Leading: 11, Color: ColorOnPrimary, Align: HorizontalLeft},
			StyleTableBody:   {Font: FontBody, Size: 9, Leading: 11, SpaceAfter: 12, Color: ColorText, Align: HorizontalLeft},

			StyleSlideTitle:    {Font: FontHeading, Size: 48, Color: ColorOnPrimary, Align: HorizontalCenter},
			StyleSlideSubtitle: {Font: FontBody, Size: 24, Color: ColorAccent, Align: HorizontalCenter},
			StyleSlideHeading:  {Font: FontHeading, Size: 32, Color: ColorOnPrimary, Align: HorizontalLeft},
			StyleSlideBullet:   {Font: FontBody, Size: 22, SpaceAfter: 12, Color: ColorText, Align: HorizontalLeft},
			StyleSlideLabel:    {Font: FontHeading, Size: 20, Color: ColorAccent, Align: HorizontalLeft},
			StyleSlideColumn:   {Font: FontBody, Size: 18, SpaceAfter: 8, Color: ColorText, Align: HorizontalLeft},
		},
		lengths: map[string]float64{
			LengthPageMargin:   CentimeterToPoint(2),
			LengthBorderRadius: 7.5, // 10px
			LengthShadowOffset: 3,   // 4px
			LengthTitleOffset:  InchToPoint(2),
			LengthCellPadX:     6,
			LengthCellPadY:     6,
			LengthGridWidth:    1,
		},
	}
}

// Name returns the theme name.
func (t *Theme) Name() string { return t.name }

// Color looks up a color token.
func (t *Theme) Color(name string) (Color, error) {
	c, ok := t.colors[name]
	if !ok {
		return Color{}, &UnknownTokenError{Kind: "color", Name: name}
	}
	return c, nil
}

// Font looks up a font role.
func (t *Theme) Font(role string) (FontFace, error) {
	f, ok := t.fonts[role]
	if !ok {
		return FontFace{}, &UnknownTokenError{Kind: "font", Name: role}
	}
	return f, nil
}

// Style looks up a text style.
func (t *Theme) Style(name string) (TextStyle, error) {
	s, ok := t.styles[name]
	if !ok {
		return TextStyle{}, &UnknownTokenError{Kind: "style", Name: name}
	}
	return s, nil
}

// Length looks up a length in points.
func (t *Theme) Length(name string) (float64, error) {
	v, ok := t.lengths[name]
	if !ok {
		return 0, &UnknownTokenError{Kind: "length", Name: name}
	}
	return v, nil
}

// ColorNames returns the defined color tokens in sorted order.
func (t *Theme) ColorNames() []string {
	return slices.Sorted(maps.Keys(t.colors))
}

// WithColors returns a copy of the theme with the given colors replaced.
// Only existing tokens can be overridden.
func (t *Theme) WithColors(overrides map[string]Color) (*Theme, error) {
	out := t.clone()
	for name, c := range overrides {
		if _, ok := out.colors[name]; !ok {
			return nil, &UnknownTokenError{Kind: "color", Name: name}
		}
		if !isValidARGB(c.ARGB) {
			return nil, fmt.Errorf("theme: color %q: invalid value %q", name, c.ARGB)
		}
		out.colors[name] = c
	}
	return out, nil
}

func (t *Theme) clone() *Theme {
	return &Theme{
		name:    t.name,
		colors:  maps.Clone(t.colors),
		fonts:   maps.Clone(t.fonts),
		styles:  maps.Clone(t.styles),
		lengths: maps.Clone(t.lengths),
	}
}

// resolved is a text style with its tokens looked up.
type resolved struct {
	TextStyle
	face  FontFace
	color Color
}

// resolve looks up a style together with the font and color it names.
func (t *Theme) resolve(name string) (resolved, error) {
	s, err := t.Style(name)
	if err != nil {
		return resolved{}, err
	}
	face, err := t.Font(s.Font)
	if err != nil {
		return resolved{}, fmt.Errorf("style %q: %w", name, err)
	}
	c, err := t.Color(s.Color)
	if err != nil {
		return resolved{}, fmt.Errorf("style %q: %w", name, err)
	}
	return resolved{TextStyle: s, face: face, color: c}, nil
}

// Validate checks that every style names a defined font role and color.
func (t *Theme) Validate() error {
	for _, name := range slices.Sorted(maps.Keys(t.styles)) {
		if _, err := t.resolve(name); err != nil {
			return err
		}
	}
	return nil
}
