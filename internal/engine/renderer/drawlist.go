package renderer

import (
	"sort"

	"github.com/Faultbox/armillary/internal/engine/scene"
	"github.com/Faultbox/armillary/pkg/math"
)

// Item is one geometry group to draw with its material and transform.
type Item struct {
	Node     *scene.Node
	Group    scene.Group
	Material scene.Material
	Model    math.Mat4
}

// Transparent reports whether the item needs blending.
func (it Item) Transparent() bool {
	return it.Material.Transparent || it.Material.Opacity < 1
}

// Collect appends the drawable items of s to items and returns the result.
// Hidden nodes prune their subtree and invisible materials are skipped.
// Opaque items come first in scene order; transparent items follow, far
// to near from eye.
func Collect(s *scene.Scene, eye math.Vec3, items []Item) []Item {
	items = items[:0]
	s.Walk(func(n *scene.Node) bool {
		if !n.Visible {
			return false
		}
		items = appendNode(items, n, false)
		return true
	})

	sort.SliceStable(items, func(i, j int) bool {
		ti, tj := items[i].Transparent(), items[j].Transparent()
		if ti != tj {
			return !ti
		}
		if !ti {
			return false
		}
		di := items[i].Model.Translation().Distance(eye)
		dj := items[j].Model.Translation().Distance(eye)
		return di > dj
	})
	return items
}

// CollectSelection returns items for the given nodes regardless of
// material visibility, for drawing the outline mask.
func CollectSelection(nodes []*scene.Node, items []Item) []Item {
	items = items[:0]
	for _, n := range nodes {
		if n == nil || !n.Visible {
			continue
		}
		items = appendNode(items, n, true)
	}
	return items
}

func appendNode(items []Item, n *scene.Node, includeInvisible bool) []Item {
	if n.Kind != scene.KindMesh || n.Geometry == nil || len(n.Geometry.Indices) == 0 {
		return items
	}
	model := n.WorldMatrix()

	groups := n.Geometry.Groups
	if len(groups) == 0 {
		groups = []scene.Group{{Start: 0, Count: len(n.Geometry.Indices), Material: 0}}
	}
	for _, g := range groups {
		mat := n.MaterialFor(g.Material)
		if mat.Invisible && !includeInvisible {
			continue
		}
		items = append(items, Item{Node: n, Group: g, Material: mat, Model: model})
	}
	return items
}
