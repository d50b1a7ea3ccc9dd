package interaction

import (
	"github.com/Faultbox/armillary/internal/engine/picking"
	"github.com/Faultbox/armillary/internal/engine/scene"
	"github.com/Faultbox/armillary/pkg/math"
)

// Projector supplies the matrix used to unproject pointer positions.
type Projector interface {
	InverseViewProjection() math.Mat4
}

// Resolver finds the scene node under the pointer.
//
// Only direct children of the scene root are tested; nodes nested in
// groups are never hit. Only visible, pickable meshes take part.
type Resolver struct {
	scene  *scene.Scene
	camera Projector
}

// NewResolver creates a resolver for s seen through camera.
func NewResolver(s *scene.Scene, camera Projector) *Resolver {
	return &Resolver{scene: s, camera: camera}
}

// Resolve returns the nearest node hit by the ray through the NDC point
// (x, y), or nil.
func (r *Resolver) Resolve(x, y float32) *scene.Node {
	ray := picking.FromNDC(x, y, r.camera.InverseViewProjection())
	hit, _ := Nearest(ray, r.scene.Children())
	return hit
}

// Nearest returns the closest eligible candidate hit by ray and its
// distance. Ties keep the earlier candidate.
func Nearest(ray picking.Ray, candidates []*scene.Node) (*scene.Node, float32) {
	var (
		best     *scene.Node
		bestDist float32
	)
	for _, n := range candidates {
		if !eligible(n) {
			continue
		}
		d, ok := n.Intersect(ray)
		if !ok {
			continue
		}
		if best == nil || d < bestDist {
			best, bestDist = n, d
		}
	}
	return best, bestDist
}

func eligible(n *scene.Node) bool {
	return n != nil && n.Kind == scene.KindMesh && n.Visible && n.Pickable && n.Geometry != nil
}
