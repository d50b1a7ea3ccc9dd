package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/armillary/internal/engine/camera"
	"github.com/Faultbox/armillary/internal/engine/framebuffer"
	"github.com/Faultbox/armillary/internal/engine/scene"
	"github.com/Faultbox/armillary/internal/engine/shader"
)

// OutlineSettings control the highlight drawn around selected objects.
type OutlineSettings struct {
	Color     [3]float32
	Thickness float32 // pixels
	Strength  float32
}

// Composer renders the scene offscreen, outlines the selection and
// resolves to the default framebuffer through FXAA.
type Composer struct {
	renderer *Renderer
	Outline  OutlineSettings

	sceneFB   *framebuffer.Framebuffer
	maskFB    *framebuffer.Framebuffer
	outlineFB *framebuffer.Framebuffer

	outline *shader.Program
	fxaa    *shader.Program
	quadVAO uint32

	selection  []*scene.Node
	width      int32
	height     int32
	resolution [2]float32
}

// NewComposer creates the pass targets at the given size.
func NewComposer(r *Renderer, width, height int, outline OutlineSettings) (*Composer, error) {
	c := &Composer{
		renderer: r,
		Outline:  outline,
		width:    int32(width),
		height:   int32(height),
	}

	var err error
	if c.sceneFB, err = framebuffer.New(c.width, c.height, true); err != nil {
		return nil, fmt.Errorf("scene target: %w", err)
	}
	if c.maskFB, err = framebuffer.New(c.width, c.height, false); err != nil {
		c.Close()
		return nil, fmt.Errorf("mask target: %w", err)
	}
	if c.outlineFB, err = framebuffer.New(c.width, c.height, false); err != nil {
		c.Close()
		return nil, fmt.Errorf("outline target: %w", err)
	}
	if c.outline, err = shader.New(fullscreenVertexShader, outlineFragmentShader); err != nil {
		c.Close()
		return nil, fmt.Errorf("outline shader: %w", err)
	}
	if c.fxaa, err = shader.New(fullscreenVertexShader, fxaaFragmentShader); err != nil {
		c.Close()
		return nil, fmt.Errorf("fxaa shader: %w", err)
	}
	gl.GenVertexArrays(1, &c.quadVAO)

	c.SetResolution(1/float32(c.width), 1/float32(c.height))
	return c, nil
}

// SetSelection replaces the outlined objects.
func (c *Composer) SetSelection(nodes []*scene.Node) {
	c.selection = append(c.selection[:0], nodes...)
}

// Selection returns the outlined objects.
func (c *Composer) Selection() []*scene.Node {
	return c.selection
}

// SetSize resizes every pass target.
func (c *Composer) SetSize(width, height int) {
	c.width, c.height = int32(width), int32(height)
	c.sceneFB.Resize(c.width, c.height)
	c.maskFB.Resize(c.width, c.height)
	c.outlineFB.Resize(c.width, c.height)
}

// SetResolution sets the FXAA texel size, normally (1/width, 1/height).
func (c *Composer) SetResolution(x, y float32) {
	c.resolution = [2]float32{x, y}
}

// Resolution returns the FXAA texel size.
func (c *Composer) Resolution() (float32, float32) {
	return c.resolution[0], c.resolution[1]
}

// Render draws one frame of s into the default framebuffer.
func (c *Composer) Render(s *scene.Scene, cam *camera.PerspectiveCamera) {
	bg := s.Background

	c.sceneFB.Bind()
	c.sceneFB.Clear(bg[0], bg[1], bg[2], 1)
	c.renderer.Draw(s, cam)

	c.maskFB.Bind()
	c.maskFB.Clear(0, 0, 0, 0)
	c.renderer.DrawMask(c.selection, cam)

	gl.Disable(gl.DEPTH_TEST)
	gl.BindVertexArray(c.quadVAO)

	c.outlineFB.Bind()
	c.outline.Use()
	c.outline.SetInt("uScene", 0)
	c.outline.SetInt("uMask", 1)
	c.outline.SetVec2("uTexel", 1/float32(c.width), 1/float32(c.height))
	c.outline.SetVec3("uEdgeColor", c.Outline.Color)
	c.outline.SetFloat("uThickness", c.Outline.Thickness)
	c.outline.SetFloat("uStrength", c.Outline.Strength)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, c.sceneFB.ColorTexture())
	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_2D, c.maskFB.ColorTexture())
	gl.DrawArrays(gl.TRIANGLES, 0, 3)

	c.outlineFB.Unbind()
	gl.Viewport(0, 0, c.width, c.height)
	c.fxaa.Use()
	c.fxaa.SetInt("uInput", 0)
	c.fxaa.SetVec2("uResolution", c.resolution[0], c.resolution[1])
	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, c.outlineFB.ColorTexture())
	gl.DrawArrays(gl.TRIANGLES, 0, 3)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.BindVertexArray(0)
	gl.UseProgram(0)
	gl.Enable(gl.DEPTH_TEST)
}

// ReadPixels reads the default framebuffer as bottom-up RGBA rows. Call it
// after Render and before the buffers are swapped.
func (c *Composer) ReadPixels() ([]byte, int, int) {
	w, h := int(c.width), int(c.height)
	pixels := make([]byte, w*h*4)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, c.width, c.height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

// Close releases pass resources.
func (c *Composer) Close() {
	for _, fb := range []*framebuffer.Framebuffer{c.sceneFB, c.maskFB, c.outlineFB} {
		if fb != nil {
			fb.Destroy()
		}
	}
	if c.outline != nil {
		c.outline.Delete()
	}
	if c.fxaa != nil {
		c.fxaa.Delete()
	}
	if c.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &c.quadVAO)
	}
}
