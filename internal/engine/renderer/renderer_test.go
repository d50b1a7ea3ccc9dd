package renderer

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/armillary/internal/engine/scene"
	"github.com/Faultbox/armillary/pkg/math"
)

func TestCollectSkipsHiddenAndInvisible(t *testing.T) {
	s := scene.New()

	dice := scene.NewMesh("dice", scene.Box(3, 3, 3))
	hit := scene.NewMesh("hit", scene.Box(11, 11, 11), scene.HitVolume())
	hidden := scene.NewMesh("title", scene.Plane(4, 1))
	hidden.Visible = false
	light := scene.NewPointLight("light", [3]float32{1, 1, 1}, 1, 0)

	group := scene.NewGroup("group")
	group.Visible = false
	group.Add(scene.NewMesh("inner", scene.Sphere(1, 8, 6)))

	s.Add(dice, hit, hidden, light, group)

	items := Collect(s, math.Vec3{Z: 30}, nil)
	require.Len(t, items, 6, "one item per dice face")
	for _, it := range items {
		assert.Same(t, dice, it.Node)
	}
	assert.Equal(t, 5, items[5].Group.Material)
}

func TestCollectOrdersTransparentLast(t *testing.T) {
	s := scene.New()

	near := scene.NewMesh("near", scene.Plane(1, 1), scene.Material{Color: [3]float32{1, 1, 1}, Opacity: 0.5})
	near.Position = math.Vec3{Z: 10}
	far := scene.NewMesh("far", scene.Plane(1, 1), scene.Material{Color: [3]float32{1, 1, 1}, Opacity: 0.5})
	far.Position = math.Vec3{Z: -10}
	solid := scene.NewMesh("solid", scene.Plane(1, 1))

	s.Add(near, far, solid)

	items := Collect(s, math.Vec3{Z: 30}, nil)
	require.Len(t, items, 3)
	assert.Same(t, solid, items[0].Node)
	assert.Same(t, far, items[1].Node)
	assert.Same(t, near, items[2].Node)
}

func TestCollectSelectionIncludesHitVolumes(t *testing.T) {
	hit := scene.NewMesh("hit", scene.Box(1, 1, 1), scene.HitVolume())
	hidden := scene.NewMesh("hidden", scene.Box(1, 1, 1))
	hidden.Visible = false

	items := CollectSelection([]*scene.Node{hit, nil, hidden}, nil)
	assert.Len(t, items, 6)
}

func TestCollectUsesWorldMatrix(t *testing.T) {
	s := scene.New()
	parent := scene.NewGroup("p")
	parent.Position = math.Vec3{X: 5}
	child := scene.NewMesh("c", scene.Plane(1, 1))
	child.Position = math.Vec3{Y: 2}
	parent.Add(child)
	s.Add(parent)

	items := Collect(s, math.Vec3{}, nil)
	require.Len(t, items, 1)
	assert.Equal(t, math.Vec3{X: 5, Y: 2}, items[0].Model.Translation())
}

func TestInterleave(t *testing.T) {
	geo := scene.Plane(2, 2)
	v := interleave(geo)
	require.Len(t, v, 4*vertexFloats)

	// Second vertex: (1,-1,0), normal +Z, uv (1,0)
	assert.Equal(t, []float32{1, -1, 0, 0, 0, 1, 1, 0}, v[vertexFloats:2*vertexFloats])

	bare := &scene.Geometry{Positions: []float32{1, 2, 3}}
	assert.Equal(t, []float32{1, 2, 3, 0, 0, 0, 0, 0}, interleave(bare))
}

func TestFlipRows(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 2))
	copy(img.Pix, []byte{1, 1, 1, 1, 2, 2, 2, 2})

	assert.Equal(t, []byte{2, 2, 2, 2, 1, 1, 1, 1}, flipRows(img))
}
