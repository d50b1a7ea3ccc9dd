package ui2d

// Color represents an RGBA color with float components (0.0 to 1.0).
type Color struct {
	R, G, B, A float32
}

// Predefined colors for UI theming.
var (
	ColorTransparent = Color{0, 0, 0, 0}
	ColorWhite       = Color{1, 1, 1, 1}

	// Night-sky theme
	ColorPanelBg      = Color{0.03, 0.03, 0.08, 0.92}
	ColorPanelBorder  = Color{0.35, 0.4, 0.6, 1}
	ColorButtonNormal = Color{0.1, 0.1, 0.2, 1}
	ColorButtonHover  = Color{0.2, 0.22, 0.38, 1}
	ColorButtonActive = Color{0.3, 0.35, 0.65, 1}
	ColorText         = Color{0.92, 0.92, 0.96, 1}
	ColorTextDim      = Color{0.55, 0.58, 0.7, 1}
	ColorHighlight    = Color{0.55, 0.7, 1, 1}
)

// RGBA creates a color from 8-bit RGBA values (0-255).
func RGBA(r, g, b, a uint8) Color {
	return Color{
		R: float32(r) / 255.0,
		G: float32(g) / 255.0,
		B: float32(b) / 255.0,
		A: float32(a) / 255.0,
	}
}

// RGB creates a color from 8-bit RGB values with full alpha.
func RGB(r, g, b uint8) Color {
	return RGBA(r, g, b, 255)
}

// FromFloat3 creates an opaque color from a float triple.
func FromFloat3(c [3]float32) Color {
	return Color{c[0], c[1], c[2], 1}
}

// WithAlpha returns a copy of the color with a different alpha value.
func (c Color) WithAlpha(a float32) Color {
	return Color{c.R, c.G, c.B, a}
}

// Lighten returns a lighter version of the color.
func (c Color) Lighten(factor float32) Color {
	return Color{
		R: c.R + (1-c.R)*factor,
		G: c.G + (1-c.G)*factor,
		B: c.B + (1-c.B)*factor,
		A: c.A,
	}
}
