package ui2d

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	firstGlyph  = 32
	lastGlyph   = 126
	atlasCols   = 16
	glyphW      = 7
	glyphH      = 13
	glyphAscent = 11
)

// Font is a fixed-width bitmap font packed into an alpha atlas.
type Font struct {
	atlas *image.Alpha
	rows  int

	// texture is the GL texture holding atlas, created on first upload.
	texture uint32
}

// NewFont rasterizes the printable ASCII range of the 7x13 basic face.
func NewFont() *Font {
	count := lastGlyph - firstGlyph + 1
	rows := (count + atlasCols - 1) / atlasCols

	atlas := image.NewAlpha(image.Rect(0, 0, atlasCols*glyphW, rows*glyphH))
	d := &font.Drawer{
		Dst:  atlas,
		Src:  image.Opaque,
		Face: basicfont.Face7x13,
	}
	for r := firstGlyph; r <= lastGlyph; r++ {
		i := r - firstGlyph
		d.Dot = fixed.P((i%atlasCols)*glyphW, (i/atlasCols)*glyphH+glyphAscent)
		d.DrawString(string(rune(r)))
	}

	return &Font{atlas: atlas, rows: rows}
}

// Atlas returns the glyph atlas image.
func (f *Font) Atlas() *image.Alpha {
	return f.atlas
}

// GlyphSize returns the size of one glyph cell in pixels.
func (f *Font) GlyphSize() (int, int) {
	return glyphW, glyphH
}

// GetGlyphUV returns the atlas UV rectangle for a rune. Runes outside the
// atlas map to '?'.
func (f *Font) GetGlyphUV(r rune) (u0, v0, u1, v1 float32) {
	if r < firstGlyph || r > lastGlyph {
		r = '?'
	}
	i := int(r - firstGlyph)
	col, row := i%atlasCols, i/atlasCols

	w := float32(f.atlas.Rect.Dx())
	h := float32(f.atlas.Rect.Dy())
	u0 = float32(col*glyphW) / w
	v0 = float32(row*glyphH) / h
	u1 = float32((col+1)*glyphW) / w
	v1 = float32((row+1)*glyphH) / h
	return u0, v0, u1, v1
}

// MeasureText returns the width and height of text at the given scale.
// Newlines start a new line.
func (f *Font) MeasureText(text string, scale float32) (float32, float32) {
	lines, longest, current := 1, 0, 0
	for _, r := range text {
		if r == '\n' {
			lines++
			current = 0
			continue
		}
		current++
		if current > longest {
			longest = current
		}
	}
	return float32(longest*glyphW) * scale, float32(lines*glyphH) * scale
}
