package scene

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/armillary/internal/engine/picking"
)

// Shape selects the hit test used for a geometry.
type Shape int

const (
	ShapeBox Shape = iota
	ShapeSphere
)

// Group is a range of indices drawn with one material.
type Group struct {
	Start    int
	Count    int
	Material int
}

// Geometry is an indexed triangle mesh with interleavable attributes.
type Geometry struct {
	Positions []float32 // xyz
	Normals   []float32 // xyz
	UVs       []float32 // uv
	Indices   []uint32
	Groups    []Group

	Bounds picking.AABB
	Shape  Shape
	Radius float32
}

// VertexCount returns the number of vertices.
func (g *Geometry) VertexCount() int {
	return len(g.Positions) / 3
}

func (g *Geometry) vertex(px, py, pz, nx, ny, nz, u, v float32) {
	g.Positions = append(g.Positions, px, py, pz)
	g.Normals = append(g.Normals, nx, ny, nz)
	g.UVs = append(g.UVs, u, v)
}

// Box builds a box centred on the origin with one group per face, in the
// order +X, -X, +Y, -Y, +Z, -Z.
func Box(width, height, depth float32) *Geometry {
	g := &Geometry{Shape: ShapeBox}
	hw, hh, hd := width/2, height/2, depth/2

	faces := []struct {
		n      [3]float32
		u, v   [3]float32
		origin [3]float32
	}{
		{[3]float32{1, 0, 0}, [3]float32{0, 0, -depth}, [3]float32{0, height, 0}, [3]float32{hw, -hh, hd}},
		{[3]float32{-1, 0, 0}, [3]float32{0, 0, depth}, [3]float32{0, height, 0}, [3]float32{-hw, -hh, -hd}},
		{[3]float32{0, 1, 0}, [3]float32{width, 0, 0}, [3]float32{0, 0, -depth}, [3]float32{-hw, hh, hd}},
		{[3]float32{0, -1, 0}, [3]float32{width, 0, 0}, [3]float32{0, 0, depth}, [3]float32{-hw, -hh, -hd}},
		{[3]float32{0, 0, 1}, [3]float32{width, 0, 0}, [3]float32{0, height, 0}, [3]float32{-hw, -hh, hd}},
		{[3]float32{0, 0, -1}, [3]float32{-width, 0, 0}, [3]float32{0, height, 0}, [3]float32{hw, -hh, -hd}},
	}

	for i, f := range faces {
		base := uint32(g.VertexCount())
		for _, c := range [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}} {
			g.vertex(
				f.origin[0]+f.u[0]*c[0]+f.v[0]*c[1],
				f.origin[1]+f.u[1]*c[0]+f.v[1]*c[1],
				f.origin[2]+f.u[2]*c[0]+f.v[2]*c[1],
				f.n[0], f.n[1], f.n[2],
				c[0], c[1],
			)
		}
		g.Groups = append(g.Groups, Group{Start: len(g.Indices), Count: 6, Material: i})
		g.Indices = append(g.Indices, base, base+1, base+2, base, base+2, base+3)
	}

	g.Bounds = picking.NewAABB(-hw, -hh, -hd, hw, hh, hd)
	return g
}

// Torus builds a torus in the XY plane around the Z axis.
func Torus(radius, tube float32, radialSegments, tubularSegments int) *Geometry {
	g := &Geometry{Shape: ShapeBox}

	for j := 0; j <= radialSegments; j++ {
		for i := 0; i <= tubularSegments; i++ {
			u := float32(i) / float32(tubularSegments) * 2 * math32.Pi
			v := float32(j) / float32(radialSegments) * 2 * math32.Pi
			su, cu := math32.Sincos(u)
			sv, cv := math32.Sincos(v)

			x := (radius + tube*cv) * cu
			y := (radius + tube*cv) * su
			z := tube * sv

			// Normal points from the tube centre line to the surface.
			nx, ny, nz := x-radius*cu, y-radius*su, z
			l := math32.Sqrt(nx*nx + ny*ny + nz*nz)
			if l > 0 {
				nx, ny, nz = nx/l, ny/l, nz/l
			}

			g.vertex(x, y, z, nx, ny, nz,
				float32(i)/float32(tubularSegments), float32(j)/float32(radialSegments))
		}
	}

	stride := uint32(tubularSegments + 1)
	for j := 1; j <= radialSegments; j++ {
		for i := 1; i <= tubularSegments; i++ {
			a := stride*uint32(j) + uint32(i) - 1
			b := stride*uint32(j-1) + uint32(i) - 1
			c := stride*uint32(j-1) + uint32(i)
			d := stride*uint32(j) + uint32(i)
			g.Indices = append(g.Indices, a, b, d, b, c, d)
		}
	}
	g.Groups = []Group{{Start: 0, Count: len(g.Indices)}}

	r := radius + tube
	g.Bounds = picking.NewAABB(-r, -r, -tube, r, r, tube)
	return g
}

// Sphere builds a UV sphere centred on the origin.
func Sphere(radius float32, widthSegments, heightSegments int) *Geometry {
	g := &Geometry{Shape: ShapeSphere, Radius: radius}

	for y := 0; y <= heightSegments; y++ {
		v := float32(y) / float32(heightSegments)
		st, ct := math32.Sincos(v * math32.Pi)
		for x := 0; x <= widthSegments; x++ {
			u := float32(x) / float32(widthSegments)
			sp, cp := math32.Sincos(u * 2 * math32.Pi)

			nx, ny, nz := -cp*st, ct, sp*st
			g.vertex(nx*radius, ny*radius, nz*radius, nx, ny, nz, u, 1-v)
		}
	}

	stride := uint32(widthSegments + 1)
	for y := 0; y < heightSegments; y++ {
		for x := 0; x < widthSegments; x++ {
			a := uint32(y)*stride + uint32(x) + 1
			b := uint32(y)*stride + uint32(x)
			c := uint32(y+1)*stride + uint32(x)
			d := uint32(y+1)*stride + uint32(x) + 1
			if y != 0 {
				g.Indices = append(g.Indices, a, b, d)
			}
			if y != heightSegments-1 {
				g.Indices = append(g.Indices, b, c, d)
			}
		}
	}
	g.Groups = []Group{{Start: 0, Count: len(g.Indices)}}

	g.Bounds = picking.NewAABB(-radius, -radius, -radius, radius, radius, radius)
	return g
}

// Plane builds a quad in the XY plane facing +Z.
func Plane(width, height float32) *Geometry {
	g := &Geometry{Shape: ShapeBox}
	hw, hh := width/2, height/2

	g.vertex(-hw, -hh, 0, 0, 0, 1, 0, 0)
	g.vertex(hw, -hh, 0, 0, 0, 1, 1, 0)
	g.vertex(hw, hh, 0, 0, 0, 1, 1, 1)
	g.vertex(-hw, hh, 0, 0, 0, 1, 0, 1)
	g.Indices = []uint32{0, 1, 2, 0, 2, 3}
	g.Groups = []Group{{Start: 0, Count: 6}}

	g.Bounds = picking.NewAABB(-hw, -hh, 0, hw, hh, 0)
	return g
}
