package archetypes

import (
	"github.com/yohamta/donburi"

	"github.com/strafelabs/hovertank/components"
	"github.com/strafelabs/hovertank/tags"
)

var (
	Game = newArchetype(
		components.Game,
	)
	Vehicle = newArchetype(
		tags.Vehicle,
		components.Vehicle,
		components.Transform,
		components.Body,
		components.Input,
		components.Health,
		components.Fuel,
		components.Weapon,
		components.Modules,
	)
	Turret = newArchetype(
		tags.Turret,
		components.Turret,
		components.Transform,
		components.Health,
	)
	Projectile = newArchetype(
		tags.Projectile,
		components.Projectile,
		components.Transform,
	)
	Wall = newArchetype(
		tags.Wall,
		components.Wall,
		components.Transform,
		components.Health,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(w donburi.World, cs ...donburi.IComponentType) *donburi.Entry {
	e := w.Entry(w.Create(
		append(a.components, cs...)...,
	))
	return e
}
