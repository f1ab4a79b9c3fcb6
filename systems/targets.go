package systems

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"

	"github.com/strafelabs/hovertank/components"
	cfg "github.com/strafelabs/hovertank/config"
	"github.com/strafelabs/hovertank/tags"
)

// EachEnemy visits every living target opposing team: vehicles and
// stationary turret emplacements. radius is the target's hit radius
// (turret bases are larger than vehicles).
func EachEnemy(w donburi.World, team int, fn func(e *donburi.Entry, pos mgl64.Vec3, radius float64)) {
	tags.Vehicle.Each(w, func(e *donburi.Entry) {
		v := components.Vehicle.Get(e)
		h := components.Health.Get(e)
		if v.Team == team || !v.Alive || !h.Alive() {
			return
		}
		fn(e, components.Transform.Get(e).Position, cfg.Combat.VehicleHitRadius)
	})
	tags.Turret.Each(w, func(e *donburi.Entry) {
		t := components.Turret.Get(e)
		h := components.Health.Get(e)
		if t.Team == team || !h.Alive() {
			return
		}
		fn(e, components.Transform.Get(e).Position, cfg.Combat.TurretHitRadius)
	})
}

// NearestEnemy returns the closest living enemy within maxRange of from,
// skipping entity ids in exclude. Returns false when none is in range.
func NearestEnemy(w donburi.World, team int, from mgl64.Vec3, maxRange float64, exclude map[donburi.Entity]struct{}) (*donburi.Entry, mgl64.Vec3, bool) {
	var best *donburi.Entry
	var bestPos mgl64.Vec3
	bestDist := maxRange
	EachEnemy(w, team, func(e *donburi.Entry, pos mgl64.Vec3, _ float64) {
		if exclude != nil {
			if _, skip := exclude[e.Entity()]; skip {
				return
			}
		}
		if d := pos.Sub(from).Len(); d <= bestDist {
			bestDist = d
			best = e
			bestPos = pos
		}
	})
	return best, bestPos, best != nil
}

// IsFriendly reports whether target is on the same team as team.
func IsFriendly(target *donburi.Entry, team int) bool {
	if target.HasComponent(components.Vehicle) {
		return components.Vehicle.Get(target).Team == team
	}
	if target.HasComponent(components.Turret) {
		return components.Turret.Get(target).Team == team
	}
	return false
}
