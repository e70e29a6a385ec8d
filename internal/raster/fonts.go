package raster

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Fonts hands out sticker faces by pixel size, parsing the font once.
type Fonts struct {
	font  *opentype.Font
	mu    sync.Mutex
	faces map[float64]font.Face
}

// DefaultFonts uses the Go regular font. It has no emoji; glyphs it lacks
// render as its missing-glyph box.
func DefaultFonts() *Fonts {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		panic(fmt.Sprintf("raster: parse embedded font: %v", err))
	}
	return NewFonts(f)
}

func NewFonts(f *opentype.Font) *Fonts {
	return &Fonts{font: f, faces: make(map[float64]font.Face)}
}

// LoadFonts reads a TrueType/OpenType file, e.g. a monochrome emoji font.
func LoadFonts(path string) (*Fonts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", path, err)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	return NewFonts(f), nil
}

// Face returns a face rendering at px pixels per em.
func (fs *Fonts) Face(px float64) (font.Face, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if face, ok := fs.faces[px]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(fs.font, &opentype.FaceOptions{
		Size:    px,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("font face %.1fpx: %w", px, err)
	}
	fs.faces[px] = face
	return face, nil
}
