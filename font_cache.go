package docdeck

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// Built-in font names. They are always registered and are what every face
// falls back to, so layout is the same on every machine unless fonts are
// added explicitly.
const (
	BuiltinRegular = "go"
	BuiltinBold    = "go bold"
	BuiltinMono    = "go mono"
)

// fontKey uniquely identifies a font face by resolved name and size.
type fontKey struct {
	name string
	size float64
}

// fontEntry is a parsed font together with its file bytes, which the PDF
// writer embeds.
type fontEntry struct {
	name string
	font *opentype.Font
	data []byte
}

// FontCache manages font loading and face caching. The Go fonts are
// registered up front; the given directories are scanned lazily for .ttf
// and .otf files on first lookup.
type FontCache struct {
	mu           sync.RWMutex
	dirs         []string              // directories to search for fonts
	fonts        map[string]*fontEntry // lowercase font name -> parsed font
	faces        map[fontKey]font.Face // cached render faces (HintingFull)
	measureFaces map[fontKey]font.Face // cached measure faces (HintingNone)
	scanned      bool
}

// NewFontCache creates a FontCache that searches the given directories.
// Pass SystemFontDirs() to pick up installed fonts.
func NewFontCache(dirs ...string) *FontCache {
	fc := &FontCache{
		dirs:         dirs,
		fonts:        make(map[string]*fontEntry),
		faces:        make(map[fontKey]font.Face),
		measureFaces: make(map[fontKey]font.Face),
	}
	for name, data := range map[string][]byte{
		BuiltinRegular: goregular.TTF,
		BuiltinBold:    gobold.TTF,
		BuiltinMono:    gomono.TTF,
	} {
		f, err := opentype.Parse(data)
		if err != nil {
			panic(fmt.Sprintf("docdeck: parse builtin font %q: %v", name, err))
		}
		fc.fonts[name] = &fontEntry{name: name, font: f, data: data}
	}
	return fc
}

// GetFace returns a hinted font.Face for drawing previews.
func (fc *FontCache) GetFace(face FontFace, sizePt float64) font.Face {
	return fc.cachedFace(fc.faces, face, sizePt, font.HintingFull)
}

// GetMeasureFace returns a font.Face with HintingNone for text measurement.
// Unhinted advances scale linearly with size, which keeps line breaks stable
// between the measurer and the PDF glyph widths.
func (fc *FontCache) GetMeasureFace(face FontFace, sizePt float64) font.Face {
	return fc.cachedFace(fc.measureFaces, face, sizePt, font.HintingNone)
}

func (fc *FontCache) cachedFace(cache map[fontKey]font.Face, face FontFace, sizePt float64, hinting font.Hinting) font.Face {
	e := fc.lookup(face)
	key := fontKey{name: e.name, size: sizePt}

	fc.mu.RLock()
	if f, ok := cache[key]; ok {
		fc.mu.RUnlock()
		return f
	}
	fc.mu.RUnlock()

	f, err := opentype.NewFace(e.font, &opentype.FaceOptions{
		Size:    sizePt,
		DPI:     72,
		Hinting: hinting,
	})
	if err != nil {
		// Parsed fonts only fail here on invalid options.
		panic(fmt.Sprintf("docdeck: new face %q %.1fpt: %v", e.name, sizePt, err))
	}

	fc.mu.Lock()
	cache[key] = f
	fc.mu.Unlock()
	return f
}

// Resolve returns the registered name the face maps to.
func (fc *FontCache) Resolve(face FontFace) string {
	return fc.lookup(face).name
}

// lookup finds the font for a face, trying style variants of the family
// before the built-in fallbacks.
func (fc *FontCache) lookup(face FontFace) *fontEntry {
	fc.ensureScanned()

	fc.mu.RLock()
	defer fc.mu.RUnlock()

	lower := strings.ToLower(face.Family)
	if lower != "" {
		if face.Bold {
			// Windows uses "arialbd", others " bold".
			for _, suffix := range []string{" bold", "bd", "-bold", "b"} {
				if e, ok := fc.fonts[lower+suffix]; ok {
					return e
				}
			}
		}
		if e, ok := fc.fonts[lower]; ok && !face.Bold {
			return e
		}
	}

	switch {
	case face.Mono:
		return fc.fonts[BuiltinMono]
	case face.Bold:
		return fc.fonts[BuiltinBold]
	default:
		return fc.fonts[BuiltinRegular]
	}
}

// LoadFont manually loads a TrueType/OpenType font file and registers it under the given name.
// Returns an error if the file exceeds maxFontFileSize.
func (fc *FontCache) LoadFont(name string, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Size() > maxFontFileSize {
		return fmt.Errorf("font file too large: %d bytes (max %d)", info.Size(), maxFontFileSize)
	}
	data, err := os.ReadFile(path) //nolint:gosec // font path is chosen by the caller
	if err != nil {
		return err
	}
	return fc.LoadFontData(name, data)
}

// LoadFontData registers a TrueType/OpenType font from raw bytes.
func (fc *FontCache) LoadFontData(name string, data []byte) error {
	f, err := opentype.Parse(data)
	if err != nil {
		return err
	}
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.register(strings.ToLower(name), f, data)
	return nil
}

func (fc *FontCache) ensureScanned() {
	fc.mu.RLock()
	scanned := fc.scanned
	fc.mu.RUnlock()
	if scanned {
		return
	}

	fc.mu.Lock()
	defer fc.mu.Unlock()
	if fc.scanned {
		return
	}
	fc.scanned = true

	for _, dir := range fc.dirs {
		fc.scanDirDepth(dir, 0)
	}
}

// maxFontScanDepth limits recursive directory traversal when scanning for fonts.
const maxFontScanDepth = 3

// maxFontFileSize limits the size of individual font files loaded into memory.
const maxFontFileSize = 20 << 20 // 20 MB

func (fc *FontCache) scanDirDepth(dir string, depth int) {
	if depth > maxFontScanDepth {
		return
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			fc.scanDirDepth(filepath.Join(dir, entry.Name()), depth+1)
			continue
		}
		name := entry.Name()
		lower := strings.ToLower(name)
		// Collections are skipped: the PDF writer embeds whole font files.
		if !strings.HasSuffix(lower, ".ttf") && !strings.HasSuffix(lower, ".otf") {
			continue
		}

		info, err := entry.Info()
		if err != nil || info.Size() > maxFontFileSize {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name)) //nolint:gosec // scanning configured font dirs
		if err != nil {
			continue
		}
		f, err := opentype.Parse(data)
		if err != nil {
			continue
		}
		fc.register(strings.TrimSuffix(lower, filepath.Ext(lower)), f, data)
	}
}

// register adds a font under name and under its internal family and full
// names. Built-in names are never replaced. Callers hold fc.mu.
func (fc *FontCache) register(name string, f *opentype.Font, data []byte) {
	add := func(key string) {
		if key == "" || key == BuiltinRegular || key == BuiltinBold || key == BuiltinMono {
			return
		}
		fc.fonts[key] = &fontEntry{name: key, font: f, data: data}
	}
	add(name)
	if family, err := f.Name(nil, sfnt.NameIDFamily); err == nil {
		add(strings.ToLower(family))
	}
	if full, err := f.Name(nil, sfnt.NameIDFull); err == nil {
		add(strings.ToLower(full))
	}
}

// isOpenTypeCFF reports whether font data holds CFF outlines rather than
// TrueType glyphs.
func isOpenTypeCFF(data []byte) bool {
	return bytes.HasPrefix(data, []byte("OTTO"))
}

// SystemFontDirs returns OS-specific font directories.
func SystemFontDirs() []string {
	switch runtime.GOOS {
	case "windows":
		windir := os.Getenv("WINDIR")
		if windir == "" {
			windir = `C:\Windows`
		}
		localAppData := os.Getenv("LOCALAPPDATA")
		dirs := []string{filepath.Join(windir, "Fonts")}
		if localAppData != "" {
			dirs = append(dirs, filepath.Join(localAppData, "Microsoft", "Windows", "Fonts"))
		}
		return dirs
	case "darwin":
		home, _ := os.UserHomeDir()
		dirs := []string{
			"/System/Library/Fonts",
			"/Library/Fonts",
		}
		if home != "" {
			dirs = append(dirs, filepath.Join(home, "Library", "Fonts"))
		}
		return dirs
	default: // linux, freebsd, etc.
		home, _ := os.UserHomeDir()
		dirs := []string{
			"/usr/share/fonts",
			"/usr/local/share/fonts",
		}
		if home != "" {
			dirs = append(dirs, filepath.Join(home, ".local", "share", "fonts"))
			dirs = append(dirs, filepath.Join(home, ".fonts"))
		}
		return dirs
	}
}
