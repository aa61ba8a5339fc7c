package docdeck

import "fmt"

// Version information for the docdeck library.
const (
	VersionMajor = 1
	VersionMinor = 0
	VersionPatch = 0
)

// Version is the full version string of the docdeck library. It is written
// into the metadata of every PPTX and PDF file.
var Version = fmt.Sprintf("%d.%d.%d", VersionMajor, VersionMinor, VersionPatch)
