package ui2d

// DrawList collects the quads of one UI frame.
type DrawList struct {
	// Solid vertices: x, y, z, r, g, b, a (7 floats)
	Solid []float32
	// Text vertices: x, y, z, u, v, r, g, b, a (9 floats)
	Text []float32

	font *Font
}

// NewDrawList creates an empty draw list using font for text.
func NewDrawList(font *Font) *DrawList {
	return &DrawList{
		Solid: make([]float32, 0, 4096),
		Text:  make([]float32, 0, 4096),
		font:  font,
	}
}

// Reset empties the list.
func (d *DrawList) Reset() {
	d.Solid = d.Solid[:0]
	d.Text = d.Text[:0]
}

// Font returns the font used for text.
func (d *DrawList) Font() *Font {
	return d.font
}

// DrawRect draws a filled rectangle.
func (d *DrawList) DrawRect(x, y, width, height float32, color Color) {
	d.addQuad(x, y, width, height, color)
}

// DrawRectOutline draws a rectangle outline.
func (d *DrawList) DrawRectOutline(x, y, width, height, thickness float32, color Color) {
	d.addQuad(x, y, width, thickness, color)
	d.addQuad(x, y+height-thickness, width, thickness, color)
	d.addQuad(x, y+thickness, thickness, height-thickness*2, color)
	d.addQuad(x+width-thickness, y+thickness, thickness, height-thickness*2, color)
}

// DrawPanel draws a panel with border.
func (d *DrawList) DrawPanel(x, y, width, height float32, bg, border Color) {
	d.DrawRect(x, y, width, height, bg)
	d.DrawRectOutline(x, y, width, height, 1, border)
}

func (d *DrawList) addQuad(x, y, w, h float32, c Color) {
	d.Solid = append(d.Solid,
		x, y, 0, c.R, c.G, c.B, c.A,
		x+w, y, 0, c.R, c.G, c.B, c.A,
		x+w, y+h, 0, c.R, c.G, c.B, c.A,
		x, y, 0, c.R, c.G, c.B, c.A,
		x+w, y+h, 0, c.R, c.G, c.B, c.A,
		x, y+h, 0, c.R, c.G, c.B, c.A,
	)
}

func (d *DrawList) addTexturedQuad(x, y, w, h float32, u0, v0, u1, v1 float32, c Color) {
	d.Text = append(d.Text,
		x, y, 0, u0, v0, c.R, c.G, c.B, c.A,
		x+w, y, 0, u1, v0, c.R, c.G, c.B, c.A,
		x+w, y+h, 0, u1, v1, c.R, c.G, c.B, c.A,
		x, y, 0, u0, v0, c.R, c.G, c.B, c.A,
		x+w, y+h, 0, u1, v1, c.R, c.G, c.B, c.A,
		x, y+h, 0, u0, v1, c.R, c.G, c.B, c.A,
	)
}

// DrawText draws text with its top-left corner at x, y.
func (d *DrawList) DrawText(x, y float32, text string, scale float32, color Color) {
	if d.font == nil {
		return
	}

	gw, gh := d.font.GlyphSize()
	charW := float32(gw) * scale
	charH := float32(gh) * scale

	curX := x
	for _, char := range text {
		if char == '\n' {
			curX = x
			y += charH
			continue
		}
		if char != ' ' {
			u0, v0, u1, v1 := d.font.GetGlyphUV(char)
			d.addTexturedQuad(curX, y, charW, charH, u0, v0, u1, v1, color)
		}
		curX += charW
	}
}

// MeasureText returns the width and height of rendered text.
func (d *DrawList) MeasureText(text string, scale float32) (float32, float32) {
	if d.font == nil {
		return 0, 0
	}
	return d.font.MeasureText(text, scale)
}

// QuadCount returns the number of solid and text quads queued.
func (d *DrawList) QuadCount() (solid, text int) {
	return len(d.Solid) / (7 * 6), len(d.Text) / (9 * 6)
}
