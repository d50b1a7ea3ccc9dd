package landing

import (
	"fmt"
	"image"
	"math/rand"

	"golang.org/x/image/font/opentype"

	"github.com/Faultbox/armillary/internal/assets"
	"github.com/Faultbox/armillary/internal/config"
	"github.com/Faultbox/armillary/internal/engine/scene"
	"github.com/Faultbox/armillary/internal/interaction"
	"github.com/Faultbox/armillary/pkg/math"
)

// Widget geometry.
const (
	diceSize       = 3
	ringTube       = 0.1
	ringRadialSeg  = 16
	ringTubularSeg = 100
	hitBoxSize     = 11
	titleHeight    = 1.6
	titleOffsetY   = 7.5
	titleFontSize  = 64
	titlePadding   = 4
	lightIntensity = 40
	lightDistance  = 25
)

var ringRadii = [3]float32{5, 5.2, 5.4}

// Widget holds the nodes of one armillary-sphere menu.
type Widget struct {
	ID          string
	Dice        *scene.Node
	Rings       [3]*scene.Node
	Hit         *scene.Node
	SphereLight *scene.Node
	TitleLight  *scene.Node
	Title       *assets.Future[*scene.Node]
}

// Decorations returns the interaction decorations of w.
func (w *Widget) Decorations() *interaction.Decorations {
	return &interaction.Decorations{
		Highlight:   w.Dice,
		Rings:       w.Rings[:],
		SphereLight: w.SphereLight,
		TitleLight:  w.TitleLight,
		Title:       w.Title,
	}
}

// buildWidget creates the nodes of a menu and adds them at the scene
// root so each is hit-testable on its own. The title is built once font
// resolves and added to s at that time.
func buildWidget(s *scene.Scene, mc config.MenuConfig, loader *assets.Loader, font *assets.Future[*opentype.Font]) *Widget {
	pos := math.V3(mc.Position)
	w := &Widget{ID: mc.ID}

	w.Dice = scene.NewMesh(mc.ID+"/dice", scene.Box(diceSize, diceSize, diceSize), faceMaterials(mc.Faces, loader)...)
	w.Dice.Position = pos

	for i := range w.Rings {
		ring := scene.NewMesh(fmt.Sprintf("%s/ring%d", mc.ID, i),
			scene.Torus(ringRadii[i], ringTube, ringRadialSeg, ringTubularSeg),
			scene.Standard(mc.RingColors[i]))
		ring.Position = pos
		w.Rings[i] = ring
	}

	w.Hit = scene.NewMesh(mc.ID+"/hit", scene.Box(hitBoxSize, hitBoxSize, hitBoxSize), scene.HitVolume())
	w.Hit.Position = pos

	w.SphereLight = scene.NewPointLight(mc.ID+"/sphere-light", mc.LightColor, lightIntensity, lightDistance)
	w.SphereLight.Position = pos
	w.SphereLight.Visible = false

	w.TitleLight = scene.NewPointLight(mc.ID+"/title-light", [3]float32{1, 1, 1}, lightIntensity/2, lightDistance)
	w.TitleLight.Position = pos.Add(math.Vec3{Y: titleOffsetY, Z: 2})
	w.TitleLight.Visible = false

	s.Add(w.Hit, w.Dice, w.Rings[0], w.Rings[1], w.Rings[2], w.SphereLight, w.TitleLight)

	title := mc.Title
	if title == "" {
		title = mc.ID
	}
	w.Title = assets.Map(font, func(f *opentype.Font) (*scene.Node, error) {
		img, err := assets.RenderText(f, title, titleFontSize, titlePadding)
		if err != nil {
			return nil, fmt.Errorf("render title %q: %w", title, err)
		}
		node := titleNode(mc.ID+"/title", img)
		node.Position = pos.Add(math.Vec3{Y: titleOffsetY})
		s.Add(node)
		return node, nil
	})
	return w
}

// titleNode creates a hidden, unpickable quad showing img at titleHeight
// world units tall.
func titleNode(name string, img *image.RGBA) *scene.Node {
	b := img.Bounds()
	aspect := float32(b.Dx()) / float32(b.Dy())

	mat := scene.Textured(assets.Ready(img))
	mat.Transparent = true
	mat.DoubleSided = true

	node := scene.NewMesh(name, scene.Plane(titleHeight*aspect, titleHeight), mat)
	node.Order = scene.OrderYXZ
	node.Visible = false
	node.Pickable = false
	return node
}

// faceMaterials returns six dice face materials. Textures are reused in
// order when fewer than six are given.
func faceMaterials(faces []string, loader *assets.Loader) []scene.Material {
	if len(faces) == 0 || loader == nil {
		return []scene.Material{scene.Standard([3]float32{0.8, 0.8, 0.8})}
	}
	mats := make([]scene.Material, 6)
	for i := range mats {
		mats[i] = scene.Textured(loader.Texture(faces[i%len(faces)]))
	}
	return mats
}

// buildStars scatters count small spheres uniformly through a cube of
// side spread centred on the origin. One geometry is shared.
func buildStars(rng *rand.Rand, count int, spread, radius float32) []*scene.Node {
	geo := scene.Sphere(radius, 24, 24)
	mat := scene.Standard([3]float32{1, 1, 1})
	mat.Emissive = [3]float32{0.6, 0.6, 0.6}

	stars := make([]*scene.Node, count)
	for i := range stars {
		star := scene.NewMesh(fmt.Sprintf("star%d", i), geo, mat)
		star.Position = math.Vec3{
			X: randSpread(rng, spread),
			Y: randSpread(rng, spread),
			Z: randSpread(rng, spread),
		}
		stars[i] = star
	}
	return stars
}

// randSpread returns a value in [-spread/2, spread/2).
func randSpread(rng *rand.Rand, spread float32) float32 {
	return spread * (rng.Float32() - 0.5)
}

// buildSkydome creates a textured sphere seen from inside. It stays
// hidden until the texture is ready.
func buildSkydome(tex *assets.Future[*image.RGBA], radius float32) *scene.Node {
	mat := scene.Textured(tex)
	mat.DoubleSided = true
	dome := scene.NewMesh("skydome", scene.Sphere(radius, 32, 16), mat)
	dome.Pickable = false
	dome.Visible = false
	tex.OnReady(func(*image.RGBA) {
		dome.Visible = true
	})
	return dome
}
