// Package scene provides the scene graph: nodes, geometry, materials and
// the hit tests used for pointer picking.
package scene

// Scene is the root of a scene graph.
type Scene struct {
	Background [3]float32

	root *Node
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{root: NewGroup("root")}
}

// Add inserts nodes directly under the root.
func (s *Scene) Add(nodes ...*Node) {
	s.root.Add(nodes...)
}

// Remove detaches a top-level node.
func (s *Scene) Remove(n *Node) bool {
	return s.root.Remove(n)
}

// Children returns the top-level nodes.
func (s *Scene) Children() []*Node {
	return s.root.Children()
}

// Root returns the root group.
func (s *Scene) Root() *Node {
	return s.root
}

// Walk visits every node depth-first. Returning false from fn skips the
// node's descendants.
func (s *Scene) Walk(fn func(*Node) bool) {
	walk(s.root, fn)
}

func walk(n *Node, fn func(*Node) bool) {
	for _, c := range n.children {
		if fn(c) {
			walk(c, fn)
		}
	}
}
