package scene

import (
	"github.com/Faultbox/armillary/pkg/math"
)

// Kind identifies what a node contributes to the frame.
type Kind int

const (
	KindGroup Kind = iota
	KindMesh
	KindPointLight
	KindAmbientLight
)

func (k Kind) String() string {
	switch k {
	case KindMesh:
		return "mesh"
	case KindPointLight:
		return "point-light"
	case KindAmbientLight:
		return "ambient-light"
	default:
		return "group"
	}
}

// RotationOrder is the order Euler angles are applied in.
type RotationOrder int

const (
	OrderXYZ RotationOrder = iota
	OrderYXZ
)

// Light holds the parameters of a light node.
type Light struct {
	Color     [3]float32
	Intensity float32
	Distance  float32 // 0 means infinite range
}

// Node is an element of the scene graph.
type Node struct {
	Name string
	Kind Kind

	Position math.Vec3
	Rotation math.Vec3 // Euler angles in radians
	Scale    math.Vec3
	Order    RotationOrder

	// Visible controls drawing and hit-testing.
	Visible bool
	// Pickable is false for nodes the pointer must never select.
	Pickable bool

	Geometry  *Geometry
	Materials []Material
	Light     Light

	parent   *Node
	children []*Node
}

func newNode(name string, kind Kind) *Node {
	return &Node{
		Name:     name,
		Kind:     kind,
		Scale:    math.Vec3{X: 1, Y: 1, Z: 1},
		Visible:  true,
		Pickable: true,
	}
}

// NewGroup creates an empty grouping node.
func NewGroup(name string) *Node {
	return newNode(name, KindGroup)
}

// NewMesh creates a drawable node. Materials are matched to geometry groups
// by index; a single material covers every group.
func NewMesh(name string, geo *Geometry, materials ...Material) *Node {
	n := newNode(name, KindMesh)
	n.Geometry = geo
	n.Materials = materials
	return n
}

// NewPointLight creates a point light.
func NewPointLight(name string, color [3]float32, intensity, distance float32) *Node {
	n := newNode(name, KindPointLight)
	n.Pickable = false
	n.Light = Light{Color: color, Intensity: intensity, Distance: distance}
	return n
}

// NewAmbientLight creates an ambient light.
func NewAmbientLight(name string, color [3]float32, intensity float32) *Node {
	n := newNode(name, KindAmbientLight)
	n.Pickable = false
	n.Light = Light{Color: color, Intensity: intensity}
	return n
}

// Add attaches children to n, detaching them from any previous parent.
func (n *Node) Add(children ...*Node) {
	for _, c := range children {
		if c == nil || c == n {
			continue
		}
		if c.parent != nil {
			c.parent.Remove(c)
		}
		c.parent = n
		n.children = append(n.children, c)
	}
}

// Remove detaches child from n. It reports whether child was found.
func (n *Node) Remove(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

// Children returns the direct children. The slice must not be modified.
func (n *Node) Children() []*Node {
	return n.children
}

// Parent returns the parent node or nil.
func (n *Node) Parent() *Node {
	return n.parent
}

// MaterialFor returns the material used by geometry group i.
func (n *Node) MaterialFor(i int) Material {
	switch {
	case len(n.Materials) == 0:
		return DefaultMaterial()
	case i < len(n.Materials):
		return n.Materials[i]
	default:
		return n.Materials[0]
	}
}

// LocalMatrix returns translation * rotation * scale.
func (n *Node) LocalMatrix() math.Mat4 {
	t := math.Translate(n.Position.X, n.Position.Y, n.Position.Z)
	s := math.Scale(n.Scale.X, n.Scale.Y, n.Scale.Z)
	return t.Mul(n.rotationMatrix()).Mul(s)
}

func (n *Node) rotationMatrix() math.Mat4 {
	rx := math.RotateX(n.Rotation.X)
	ry := math.RotateY(n.Rotation.Y)
	rz := math.RotateZ(n.Rotation.Z)
	if n.Order == OrderYXZ {
		return ry.Mul(rx).Mul(rz)
	}
	return rx.Mul(ry).Mul(rz)
}

// WorldMatrix returns the node transform composed with its ancestors.
func (n *Node) WorldMatrix() math.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul(m)
	}
	return m
}

// WorldPosition returns the node origin in world space.
func (n *Node) WorldPosition() math.Vec3 {
	return n.WorldMatrix().Translation()
}

// SetVisible sets Visible on n. It is safe on a nil node.
func (n *Node) SetVisible(v bool) {
	if n != nil {
		n.Visible = v
	}
}
