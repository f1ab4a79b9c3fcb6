package factory

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"

	"github.com/strafelabs/hovertank/archetypes"
	"github.com/strafelabs/hovertank/components"
)

// CreateTurret spawns a stationary emplacement target.
func CreateTurret(w donburi.World, team int, pos mgl64.Vec3, health float64) *donburi.Entry {
	e := archetypes.Turret.Spawn(w)
	components.Turret.Set(e, &components.TurretData{Team: team})
	components.Transform.Set(e, &components.TransformData{
		Position: pos,
		Rotation: mgl64.QuatIdent(),
	})
	components.Health.Set(e, &components.HealthData{Current: health, Max: health})
	return e
}
