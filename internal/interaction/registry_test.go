package interaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/armillary/internal/engine/scene"
	"github.com/Faultbox/armillary/pkg/math"
)

func TestRegisterAndLookup(t *testing.T) {
	reg := NewRegistry(nil)
	w := newWidget("about", math.Vec3{})

	e, err := reg.Register(w.id, w.hitbox, w.deco)
	require.NoError(t, err)

	assert.Same(t, e, reg.Lookup(w.hitbox))
	assert.Same(t, e, reg.Lookup(w.dice), "highlight decoration resolves to its entry")
	assert.Same(t, e, reg.LookupID("about"))
	assert.Nil(t, reg.Lookup(nil))
	assert.Nil(t, reg.Lookup(w.title))
	assert.Nil(t, reg.LookupID("About"), "ids are exact-match")
}

func TestRegisterDuplicateKeepsFirst(t *testing.T) {
	reg := NewRegistry(nil)
	first := newWidget("pups", math.Vec3{})
	second := newWidget("pups", math.Vec3{X: 5})

	e1, err := reg.Register(first.id, first.hitbox, first.deco)
	require.NoError(t, err)

	e2, err := reg.Register(second.id, second.hitbox, second.deco)
	assert.ErrorIs(t, err, ErrDuplicateEntry)
	assert.Nil(t, e2)

	got := reg.LookupID("pups")
	assert.Same(t, e1, got)
	assert.Same(t, first.hitbox, got.HitTarget)
	assert.Nil(t, reg.Lookup(second.hitbox), "rejected entry's nodes stay unowned")
	assert.Equal(t, 1, reg.Len())
}

func TestRegisterInvalid(t *testing.T) {
	reg := NewRegistry(nil)

	_, err := reg.Register("", scene.NewMesh("x", scene.Box(1, 1, 1)), nil)
	assert.ErrorIs(t, err, ErrInvalidEntry)

	_, err = reg.Register("social", nil, nil)
	assert.ErrorIs(t, err, ErrInvalidEntry)
	assert.Zero(t, reg.Len())
}

func TestSharedNodeKeepsFirstOwner(t *testing.T) {
	reg := NewRegistry(nil)
	shared := scene.NewMesh("dice", scene.Box(1, 1, 1))

	a, err := reg.Register("a", scene.NewMesh("a-hit", scene.Box(1, 1, 1)), &Decorations{Highlight: shared})
	require.NoError(t, err)
	_, err = reg.Register("b", scene.NewMesh("b-hit", scene.Box(1, 1, 1)), &Decorations{Highlight: shared})
	require.NoError(t, err)

	assert.Same(t, a, reg.Lookup(shared))
}

func TestForEachRegistrationOrder(t *testing.T) {
	reg := NewRegistry(nil)
	ids := []string{"about", "projects", "pups", "social"}
	for _, id := range ids {
		_, err := reg.Register(id, scene.NewMesh(id, scene.Box(1, 1, 1)), nil)
		require.NoError(t, err)
	}

	var got []string
	reg.ForEach(func(e *MenuEntry) { got = append(got, e.ID) })
	assert.Equal(t, ids, got)
}

func TestPrimaryFallsBackToHitTarget(t *testing.T) {
	hit := scene.NewMesh("hit", scene.Box(1, 1, 1))
	assert.Same(t, hit, (&MenuEntry{HitTarget: hit}).Primary())
	assert.Same(t, hit, (&MenuEntry{HitTarget: hit, Decorations: &Decorations{}}).Primary())
}

func TestRegisterHighlightIsHitTarget(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	reg := NewRegistry(zap.New(core))
	w := newWidget("social", math.Vec3{})
	w.deco.Highlight = w.hitbox

	e, err := reg.Register(w.id, w.hitbox, w.deco)
	require.NoError(t, err)

	assert.Same(t, e, reg.Lookup(w.hitbox))
	assert.Same(t, w.hitbox, e.Primary())
	assert.Zero(t, logs.Len(), "no ownership warning for the entry's own node")
}
