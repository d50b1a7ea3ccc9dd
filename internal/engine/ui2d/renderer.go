// Package ui2d provides a simple immediate-mode 2D UI drawn with OpenGL on
// top of the 3D scene.
package ui2d

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/armillary/internal/engine/shader"
)

// Renderer turns a DrawList into GL draw calls. A headless renderer only
// records the list, which is what tests use.
type Renderer struct {
	*DrawList

	screenWidth  int
	screenHeight int

	gpu *gpuState
}

type gpuState struct {
	solidShader uint32
	textShader  uint32

	solidVAO uint32
	solidVBO uint32
	textVAO  uint32
	textVBO  uint32

	fontTex uint32

	locSolidProj int32
	locTextProj  int32
	locTextTex   int32
}

// New creates a 2D UI renderer. A GL context must be current.
func New(width, height int) (*Renderer, error) {
	r := NewHeadless(width, height)

	g := &gpuState{}
	var err error
	g.solidShader, err = shader.CompileProgram(solidVertexShader, solidFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("create solid shader: %w", err)
	}
	g.textShader, err = shader.CompileProgram(textVertexShader, textFragmentShader)
	if err != nil {
		gl.DeleteProgram(g.solidShader)
		return nil, fmt.Errorf("create text shader: %w", err)
	}
	g.locSolidProj = shader.GetUniform(g.solidShader, "uProjection")
	g.locTextProj = shader.GetUniform(g.textShader, "uProjection")
	g.locTextTex = shader.GetUniform(g.textShader, "uTexture")

	g.solidVAO, g.solidVBO = createBuffers([]int32{3, 4})
	g.textVAO, g.textVBO = createBuffers([]int32{3, 2, 4})
	g.fontTex = uploadAtlas(r.font)

	r.gpu = g
	return r, nil
}

// NewHeadless creates a renderer that records draw lists without GL.
func NewHeadless(width, height int) *Renderer {
	return &Renderer{
		DrawList:     NewDrawList(NewFont()),
		screenWidth:  width,
		screenHeight: height,
	}
}

// Resize updates the screen dimensions.
func (r *Renderer) Resize(width, height int) {
	r.screenWidth = width
	r.screenHeight = height
}

// GetScreenSize returns the current screen dimensions.
func (r *Renderer) GetScreenSize() (int, int) {
	return r.screenWidth, r.screenHeight
}

// Begin starts a new UI frame.
func (r *Renderer) Begin() {
	r.Reset()
}

// End finishes the UI frame and renders all queued elements.
func (r *Renderer) End() {
	if r.gpu == nil {
		return
	}
	g := r.gpu

	var prevBlend, prevDepth, prevCull int32
	gl.GetIntegerv(gl.BLEND, &prevBlend)
	gl.GetIntegerv(gl.DEPTH_TEST, &prevDepth)
	gl.GetIntegerv(gl.CULL_FACE, &prevCull)

	gl.Viewport(0, 0, int32(r.screenWidth), int32(r.screenHeight))
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)

	proj := orthoMatrix(0, float32(r.screenWidth), float32(r.screenHeight), 0, -1, 1)

	if len(r.Solid) > 0 {
		gl.UseProgram(g.solidShader)
		gl.UniformMatrix4fv(g.locSolidProj, 1, false, &proj[0])
		gl.BindVertexArray(g.solidVAO)
		gl.BindBuffer(gl.ARRAY_BUFFER, g.solidVBO)
		gl.BufferData(gl.ARRAY_BUFFER, len(r.Solid)*4, unsafe.Pointer(&r.Solid[0]), gl.STREAM_DRAW)
		gl.DrawArrays(gl.TRIANGLES, 0, int32(len(r.Solid)/7))
	}

	// Text on top
	if len(r.Text) > 0 {
		gl.UseProgram(g.textShader)
		gl.UniformMatrix4fv(g.locTextProj, 1, false, &proj[0])
		gl.Uniform1i(g.locTextTex, 0)
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, g.fontTex)
		gl.BindVertexArray(g.textVAO)
		gl.BindBuffer(gl.ARRAY_BUFFER, g.textVBO)
		gl.BufferData(gl.ARRAY_BUFFER, len(r.Text)*4, unsafe.Pointer(&r.Text[0]), gl.STREAM_DRAW)
		gl.DrawArrays(gl.TRIANGLES, 0, int32(len(r.Text)/9))
	}

	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.UseProgram(0)

	if prevBlend == gl.FALSE {
		gl.Disable(gl.BLEND)
	}
	if prevDepth == gl.TRUE {
		gl.Enable(gl.DEPTH_TEST)
	}
	if prevCull == gl.TRUE {
		gl.Enable(gl.CULL_FACE)
	}
}

// Close releases renderer resources.
func (r *Renderer) Close() {
	g := r.gpu
	if g == nil {
		return
	}
	gl.DeleteTextures(1, &g.fontTex)
	gl.DeleteVertexArrays(1, &g.solidVAO)
	gl.DeleteBuffers(1, &g.solidVBO)
	gl.DeleteVertexArrays(1, &g.textVAO)
	gl.DeleteBuffers(1, &g.textVBO)
	gl.DeleteProgram(g.solidShader)
	gl.DeleteProgram(g.textShader)
	r.gpu = nil
}

// createBuffers creates a VAO/VBO pair with tightly packed float
// attributes of the given sizes at locations 0..n-1.
func createBuffers(sizes []int32) (vao, vbo uint32) {
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)

	var stride int32
	for _, s := range sizes {
		stride += s * 4
	}
	var offset uintptr
	for i, s := range sizes {
		gl.VertexAttribPointerWithOffset(uint32(i), s, gl.FLOAT, false, stride, offset)
		gl.EnableVertexAttribArray(uint32(i))
		offset += uintptr(s * 4)
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return vao, vbo
}

func uploadAtlas(f *Font) uint32 {
	atlas := f.Atlas()
	w, h := int32(atlas.Rect.Dx()), int32(atlas.Rect.Dy())

	// Expand to RGBA so the text shader can read .a.
	pix := make([]uint8, 0, len(atlas.Pix)*4)
	for _, a := range atlas.Pix {
		pix = append(pix, 255, 255, 255, a)
	}

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, w, h, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	f.texture = tex
	return tex
}

// orthoMatrix creates an orthographic projection matrix.
func orthoMatrix(left, right, bottom, top, near, far float32) [16]float32 {
	return [16]float32{
		2 / (right - left), 0, 0, 0,
		0, 2 / (top - bottom), 0, 0,
		0, 0, -2 / (far - near), 0,
		-(right + left) / (right - left), -(top + bottom) / (top - bottom), -(far + near) / (far - near), 1,
	}
}

const solidVertexShader = `#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec4 aColor;

uniform mat4 uProjection;

out vec4 vColor;

void main() {
	gl_Position = uProjection * vec4(aPos, 1.0);
	vColor = aColor;
}
`

const solidFragmentShader = `#version 410 core
in vec4 vColor;
out vec4 FragColor;

void main() {
	FragColor = vColor;
}
`

const textVertexShader = `#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec2 aTexCoord;
layout (location = 2) in vec4 aColor;

uniform mat4 uProjection;

out vec2 vTexCoord;
out vec4 vColor;

void main() {
	gl_Position = uProjection * vec4(aPos, 1.0);
	vTexCoord = aTexCoord;
	vColor = aColor;
}
`

const textFragmentShader = `#version 410 core
uniform sampler2D uTexture;

in vec2 vTexCoord;
in vec4 vColor;
out vec4 FragColor;

void main() {
	float alpha = texture(uTexture, vTexCoord).a;
	FragColor = vec4(vColor.rgb, vColor.a * alpha);
}
`
