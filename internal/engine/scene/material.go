package scene

import "image"

// Texture is an image that may still be loading.
type Texture interface {
	Get() (*image.RGBA, bool)
}

// Material describes how a geometry group is shaded.
type Material struct {
	Color    [3]float32
	Emissive [3]float32
	Opacity  float32
	Texture  Texture

	// Unlit materials ignore scene lights.
	Unlit bool
	// Invisible materials are never drawn but still take part in picking.
	Invisible bool
	// DoubleSided disables back-face culling.
	DoubleSided bool
	// Transparent blends with the texture alpha even at full opacity.
	Transparent bool
}

// DefaultMaterial returns an opaque white lit material.
func DefaultMaterial() Material {
	return Material{Color: [3]float32{1, 1, 1}, Opacity: 1}
}

// Standard returns a lit material of the given colour.
func Standard(color [3]float32) Material {
	return Material{Color: color, Opacity: 1}
}

// Basic returns an unlit material of the given colour.
func Basic(color [3]float32) Material {
	return Material{Color: color, Opacity: 1, Unlit: true}
}

// Textured returns an unlit material sampling tex.
func Textured(tex Texture) Material {
	return Material{Color: [3]float32{1, 1, 1}, Opacity: 1, Texture: tex, Unlit: true}
}

// HitVolume returns the material of an invisible picking volume.
func HitVolume() Material {
	return Material{Opacity: 0, Invisible: true}
}
