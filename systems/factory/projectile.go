package factory

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"

	"github.com/strafelabs/hovertank/archetypes"
	"github.com/strafelabs/hovertank/components"
	cfg "github.com/strafelabs/hovertank/config"
)

// CreateProjectile spawns one ballistic round. dir must be a unit
// vector; damage overrides the spec's base damage so scatter pellets and
// cluster children can carry fractions of it.
func CreateProjectile(w donburi.World, owner *donburi.Entry, ownerTeam int, spec cfg.WeaponSpec, pos, dir mgl64.Vec3, damage float64, tick int64, isChild bool) *donburi.Entry {
	e := archetypes.Projectile.Spawn(w)
	components.Transform.Set(e, &components.TransformData{
		Position: pos,
		Rotation: mgl64.QuatIdent(),
	})
	components.Projectile.Set(e, &components.ProjectileData{
		Owner:     owner,
		OwnerTeam: ownerTeam,
		Spec:      spec,
		Velocity:  dir.Mul(spec.Speed),
		Damage:    damage,
		SpawnTick: tick,
		TTL:       int64(spec.TTL),
		IsChild:   isChild,
	})
	return e
}
