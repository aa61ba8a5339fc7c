package config

import "errors"

// Configuration validation errors returned by Config.Validate. They are
// sentinels so callers can match them with errors.Is.
var (
	// ErrNoOutput is returned when neither a PDF nor a PPTX output path is set.
	ErrNoOutput = errors.New("no output specified: set a pdf or pptx path")

	// ErrInvalidPageSize is returned for a page size other than a4 or letter.
	ErrInvalidPageSize = errors.New("invalid page size: must be a4 or letter")

	// ErrInvalidMargin is returned when the margin is negative or leaves no
	// room for content.
	ErrInvalidMargin = errors.New("invalid margin: must be between 0 and 8 cm")

	// ErrInvalidPreviewWidth is returned when previews are requested with a
	// non-positive width.
	ErrInvalidPreviewWidth = errors.New("invalid preview width: must be positive")

	// ErrInvalidColor is returned when a color override is not a hex RGB or
	// ARGB value.
	ErrInvalidColor = errors.New("invalid color: must be RRGGBB or AARRGGBB")

	// ErrInvalidDate is returned when the metadata date is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date: must be YYYY-MM-DD")
)
