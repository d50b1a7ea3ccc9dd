// Package lighting gathers scene lights into uniform arrays for the mesh
// shader.
package lighting

import (
	"github.com/Faultbox/armillary/internal/engine/scene"
)

// MaxPointLights is the maximum number of point lights supported in shaders.
const MaxPointLights = 32

// PointLight represents a point light source for GPU upload.
type PointLight struct {
	Position  [3]float32 // World position
	Color     [3]float32 // RGB color (0-1 range)
	Range     float32    // Cutoff distance, 0 for none
	Intensity float32    // Light intensity multiplier
}

// PointLightBuffer holds lights for GPU upload.
type PointLightBuffer struct {
	Lights []PointLight
	Count  int

	// Ambient is the summed colour of every ambient light.
	Ambient [3]float32
}

// NewPointLightBuffer creates an empty point light buffer.
func NewPointLightBuffer() *PointLightBuffer {
	return &PointLightBuffer{
		Lights: make([]PointLight, 0, MaxPointLights),
	}
}

// Collect refills the buffer from the visible lights of s. Hidden lights
// and lights under hidden groups contribute nothing. Point lights past
// MaxPointLights are dropped; the return value reports how many were.
func (b *PointLightBuffer) Collect(s *scene.Scene) int {
	b.Clear()
	dropped := 0
	s.Walk(func(n *scene.Node) bool {
		if !n.Visible {
			return false
		}
		switch n.Kind {
		case scene.KindAmbientLight:
			for i := 0; i < 3; i++ {
				b.Ambient[i] += n.Light.Color[i] * n.Light.Intensity
			}
		case scene.KindPointLight:
			light := PointLight{
				Position:  n.WorldPosition().Array(),
				Color:     clampColor(n.Light.Color),
				Range:     n.Light.Distance,
				Intensity: n.Light.Intensity,
			}
			if !b.AddLight(light) {
				dropped++
			}
		}
		return true
	})
	return dropped
}

func clampColor(c [3]float32) [3]float32 {
	for i := range c {
		if c[i] > 1.0 {
			c[i] = 1.0
		}
		if c[i] < 0.0 {
			c[i] = 0.0
		}
	}
	return c
}

// Clear removes all lights from the buffer.
func (b *PointLightBuffer) Clear() {
	b.Lights = b.Lights[:0]
	b.Count = 0
	b.Ambient = [3]float32{}
}

// AddLight adds a point light to the buffer.
// Returns false if buffer is full.
func (b *PointLightBuffer) AddLight(light PointLight) bool {
	if b.Count >= MaxPointLights {
		return false
	}
	b.Lights = append(b.Lights, light)
	b.Count++
	return true
}

// Positions returns positions as a flat slice: [x0, y0, z0, x1, ...].
func (b *PointLightBuffer) Positions() []float32 {
	result := make([]float32, 0, b.Count*3)
	for _, light := range b.Lights {
		result = append(result, light.Position[:]...)
	}
	return result
}

// Colors returns colours as a flat slice: [r0, g0, b0, r1, ...].
func (b *PointLightBuffer) Colors() []float32 {
	result := make([]float32, 0, b.Count*3)
	for _, light := range b.Lights {
		result = append(result, light.Color[:]...)
	}
	return result
}

// Ranges returns ranges as a flat slice.
func (b *PointLightBuffer) Ranges() []float32 {
	result := make([]float32, b.Count)
	for i, light := range b.Lights {
		result[i] = light.Range
	}
	return result
}

// Intensities returns intensities as a flat slice.
func (b *PointLightBuffer) Intensities() []float32 {
	result := make([]float32, b.Count)
	for i, light := range b.Lights {
		result[i] = light.Intensity
	}
	return result
}
