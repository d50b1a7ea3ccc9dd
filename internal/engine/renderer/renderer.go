// Package renderer draws the scene graph with OpenGL and runs the
// post-processing passes.
package renderer

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/armillary/internal/engine/camera"
	"github.com/Faultbox/armillary/internal/engine/lighting"
	"github.com/Faultbox/armillary/internal/engine/scene"
	"github.com/Faultbox/armillary/internal/engine/shader"
)

// Renderer draws scene meshes with point and ambient lighting.
// IMPORTANT: New must be called after the OpenGL context is created.
type Renderer struct {
	mesh *shader.Program
	mask *shader.Program

	meshes   map[*scene.Geometry]*gpuMesh
	textures map[*image.RGBA]uint32
	white    uint32

	lights *lighting.PointLightBuffer
	items  []Item

	log *zap.Logger
}

// New initializes OpenGL and compiles the scene shaders.
func New(log *zap.Logger) (*Renderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	r := &Renderer{
		meshes:   make(map[*scene.Geometry]*gpuMesh),
		textures: make(map[*image.RGBA]uint32),
		lights:   lighting.NewPointLightBuffer(),
		log:      log,
	}

	var err error
	r.mesh, err = shader.New(meshVertexShader, meshFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("mesh shader: %w", err)
	}
	r.mask, err = shader.New(maskVertexShader, maskFragmentShader)
	if err != nil {
		r.mesh.Delete()
		return nil, fmt.Errorf("mask shader: %w", err)
	}
	r.white = whiteTexture()

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	return r, nil
}

// Draw renders every visible mesh of s from cam into the bound target.
func (r *Renderer) Draw(s *scene.Scene, cam *camera.PerspectiveCamera) {
	if dropped := r.lights.Collect(s); dropped > 0 {
		r.log.Debug("point lights dropped", zap.Int("count", dropped))
	}
	r.items = Collect(s, cam.Position, r.items)

	viewProj := cam.ViewProjection()

	p := r.mesh
	p.Use()
	p.SetMat4("uViewProj", viewProj)
	p.SetVec3("uCameraPos", cam.Position.Array())
	p.SetVec3("uAmbient", r.lights.Ambient)
	p.SetInt("uPointLightCount", int32(r.lights.Count))
	p.SetVec3Array("uPointLightPositions", r.lights.Positions())
	p.SetVec3Array("uPointLightColors", r.lights.Colors())
	p.SetFloatArray("uPointLightRanges", r.lights.Ranges())
	p.SetFloatArray("uPointLightIntensities", r.lights.Intensities())
	p.SetInt("uTexture", 0)
	gl.ActiveTexture(gl.TEXTURE0)

	gl.Enable(gl.DEPTH_TEST)
	blending := false
	for _, it := range r.items {
		m := r.meshFor(it.Node.Geometry)
		if m.vao == 0 {
			continue
		}

		if it.Transparent() != blending {
			blending = it.Transparent()
			if blending {
				gl.Enable(gl.BLEND)
				gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
				gl.DepthMask(false)
			} else {
				gl.Disable(gl.BLEND)
				gl.DepthMask(true)
			}
		}
		if it.Material.DoubleSided {
			gl.Disable(gl.CULL_FACE)
		} else {
			gl.Enable(gl.CULL_FACE)
		}

		mat := it.Material
		p.SetMat4("uModel", it.Model)
		p.SetMat3("uNormalMatrix", it.Model.Normal3x3())
		p.SetVec3("uColor", mat.Color)
		p.SetVec3("uEmissive", mat.Emissive)
		p.SetFloat("uOpacity", mat.Opacity)
		if mat.Unlit {
			p.SetInt("uUnlit", 1)
		} else {
			p.SetInt("uUnlit", 0)
		}
		gl.BindTexture(gl.TEXTURE_2D, r.textureFor(mat.Texture))

		gl.BindVertexArray(m.vao)
		gl.DrawElementsWithOffset(gl.TRIANGLES, int32(it.Group.Count), gl.UNSIGNED_INT, uintptr(it.Group.Start*4))
	}

	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.Disable(gl.BLEND)
	gl.Disable(gl.CULL_FACE)
	gl.DepthMask(true)
}

// DrawMask renders nodes as solid white into the bound target.
func (r *Renderer) DrawMask(nodes []*scene.Node, cam *camera.PerspectiveCamera) {
	r.items = CollectSelection(nodes, r.items)
	if len(r.items) == 0 {
		return
	}

	r.mask.Use()
	r.mask.SetMat4("uViewProj", cam.ViewProjection())
	gl.Disable(gl.DEPTH_TEST)
	for _, it := range r.items {
		m := r.meshFor(it.Node.Geometry)
		if m.vao == 0 {
			continue
		}
		r.mask.SetMat4("uModel", it.Model)
		gl.BindVertexArray(m.vao)
		gl.DrawElementsWithOffset(gl.TRIANGLES, int32(it.Group.Count), gl.UNSIGNED_INT, uintptr(it.Group.Start*4))
	}
	gl.BindVertexArray(0)
	gl.Enable(gl.DEPTH_TEST)
}

func (r *Renderer) meshFor(geo *scene.Geometry) *gpuMesh {
	m, ok := r.meshes[geo]
	if !ok {
		m = uploadMesh(geo)
		r.meshes[geo] = m
	}
	return m
}

// textureFor uploads a ready texture on first use. Pending or failed
// textures draw with the white fallback.
func (r *Renderer) textureFor(tex scene.Texture) uint32 {
	if tex == nil {
		return r.white
	}
	img, ok := tex.Get()
	if !ok || img == nil {
		return r.white
	}
	id, ok := r.textures[img]
	if !ok {
		id = uploadTexture(img)
		r.textures[img] = id
	}
	if id == 0 {
		return r.white
	}
	return id
}

// Close releases GPU resources.
func (r *Renderer) Close() {
	for _, m := range r.meshes {
		m.destroy()
	}
	r.meshes = nil
	for _, id := range r.textures {
		if id != 0 {
			gl.DeleteTextures(1, &id)
		}
	}
	r.textures = nil
	if r.white != 0 {
		gl.DeleteTextures(1, &r.white)
	}
	r.mesh.Delete()
	r.mask.Delete()
}
