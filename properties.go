package docdeck

// PresentationProperties holds viewer settings written into presProps.xml
// and viewProps.xml.
type PresentationProperties struct {
	zoom          float64
	lastView      ViewType
	slideshowType SlideshowType
	loop          bool
}

// ViewType represents the view a deck opens in.
type ViewType int

const (
	ViewSlide ViewType = iota
	ViewOutline
	ViewSlideSorter
)

// SlideshowType represents the slideshow type.
type SlideshowType int

const (
	SlideshowTypePresent SlideshowType = iota
	SlideshowTypeBrowse
	SlideshowTypeKiosk
)

// NewPresentationProperties creates new presentation properties with defaults.
func NewPresentationProperties() *PresentationProperties {
	return &PresentationProperties{
		zoom:          1.0,
		lastView:      ViewSlide,
		slideshowType: SlideshowTypePresent,
	}
}

// GetZoom returns the zoom level.
func (pp *PresentationProperties) GetZoom() float64 {
	return pp.zoom
}

// SetZoom sets the zoom level (clamped to 0.1–4.0).
func (pp *PresentationProperties) SetZoom(zoom float64) {
	if zoom < 0.1 {
		zoom = 0.1
	}
	if zoom > 4.0 {
		zoom = 4.0
	}
	pp.zoom = zoom
}

// GetLastView returns the last view type.
func (pp *PresentationProperties) GetLastView() ViewType {
	return pp.lastView
}

// SetLastView sets the last view type.
func (pp *PresentationProperties) SetLastView(view ViewType) {
	pp.lastView = view
}

// GetSlideshowType returns the slideshow type.
func (pp *PresentationProperties) GetSlideshowType() SlideshowType {
	return pp.slideshowType
}

// SetSlideshowType sets the slideshow type.
func (pp *PresentationProperties) SetSlideshowType(t SlideshowType) {
	pp.slideshowType = t
}

// IsLoop reports whether the slideshow restarts after the last slide.
func (pp *PresentationProperties) IsLoop() bool {
	return pp.loop
}

// SetLoop sets whether the slideshow restarts after the last slide.
func (pp *PresentationProperties) SetLoop(loop bool) {
	pp.loop = loop
}

func (v ViewType) xmlName() string {
	switch v {
	case ViewOutline:
		return "outlineView"
	case ViewSlideSorter:
		return "sldSorterView"
	default:
		return "sldView"
	}
}
