// Package fonts provides font faces for measuring text items.
//
// The default face is the fixed 7x13 bitmap face from golang.org/x/image,
// which needs no font files and measures identically everywhere. TrueType and
// OpenType faces can be loaded from disk with [Load]; loaded faces are cached
// per path and size and may be shared between goroutines.
package fonts

import (
	"fmt"
	"image"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// DiagramFontFamily is the font list used for scene-tree diagram labels.
const DiagramFontFamily = "Helvetica,Arial,sans-serif"

// DefaultSize is the point size used when Load is given a non-positive size.
const DefaultSize = 13

// Default returns the built-in 7x13 face.
func Default() font.Face {
	return basicfont.Face7x13
}

type faceKey struct {
	path string
	size float64
}

var (
	faces   = map[faceKey]font.Face{}
	facesMu sync.Mutex
)

// Load parses the font file at path and returns a face of the given point
// size at 72 DPI. An empty path returns [Default].
func Load(path string, size float64) (font.Face, error) {
	if path == "" {
		return Default(), nil
	}
	if size <= 0 {
		size = DefaultSize
	}

	key := faceKey{path, size}
	facesMu.Lock()
	defer facesMu.Unlock()
	if f, ok := faces[key]; ok {
		return f, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Parse(data, size)
	if err != nil {
		return nil, fmt.Errorf("font %s: %w", path, err)
	}
	shared := &syncFace{face: f}
	faces[key] = shared
	return shared, nil
}

// Parse builds a face from TrueType or OpenType data.
func Parse(data []byte, size float64) (font.Face, error) {
	otf, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return opentype.NewFace(otf, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

// syncFace serializes access to a face. opentype faces keep scratch
// buffers and are not safe for concurrent use. Masks returned by Glyph are
// only valid until the next call.
type syncFace struct {
	mu   sync.Mutex
	face font.Face
}

func (s *syncFace) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.face.Close()
}

func (s *syncFace) Glyph(dot fixed.Point26_6, r rune) (image.Rectangle, image.Image, image.Point, fixed.Int26_6, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.face.Glyph(dot, r)
}

func (s *syncFace) GlyphBounds(r rune) (fixed.Rectangle26_6, fixed.Int26_6, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.face.GlyphBounds(r)
}

func (s *syncFace) GlyphAdvance(r rune) (fixed.Int26_6, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.face.GlyphAdvance(r)
}

func (s *syncFace) Kern(r0, r1 rune) fixed.Int26_6 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.face.Kern(r0, r1)
}

func (s *syncFace) Metrics() font.Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.face.Metrics()
}
