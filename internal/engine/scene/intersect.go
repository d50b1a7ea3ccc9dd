package scene

import (
	"github.com/Faultbox/armillary/internal/engine/picking"
	"github.com/Faultbox/armillary/pkg/math"
)

// Intersect tests ray against the node's geometry. The ray is moved into
// the node's local space, so rotated and scaled boxes are tested exactly.
// The returned distance is measured along the world-space ray.
func (n *Node) Intersect(ray picking.Ray) (float32, bool) {
	if n.Geometry == nil {
		return 0, false
	}

	local := ray.Transform(n.WorldMatrix().Inverse())

	if n.Geometry.Shape == ShapeSphere {
		return local.IntersectSphere(math.Vec3{}, n.Geometry.Radius)
	}
	return local.IntersectAABB(n.Geometry.Bounds)
}
