package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"

	"github.com/strafelabs/hovertank/components"
	cfg "github.com/strafelabs/hovertank/config"
	"github.com/strafelabs/hovertank/gamemath"
	"github.com/strafelabs/hovertank/physics"
	"github.com/strafelabs/hovertank/systems/factory"
)

const recoilVisualTime = 0.25 // seconds for the recoil offset to decay

// UpdateFireControl fires held triggers. Cooldown gating lives in Fire,
// so holding the trigger fires at exactly the weapon's rate.
func UpdateFireControl(w donburi.World) {
	components.Vehicle.Each(w, func(e *donburi.Entry) {
		input := components.Input.Get(e)
		if input.Action(cfg.ActionFire).Pressed {
			Fire(w, e)
		}
	})
}

// Fire attempts one shot from the vehicle's weapon. It is a silent no-op
// when the vehicle is dead, reloading, or the cooldown has not elapsed.
// On success it records the shot time, starts the reload window, applies
// recoil to the hull, notifies the shot callback, and spawns the
// archetype's projectiles (or resolves instantly for beam weapons).
func Fire(w donburi.World, e *donburi.Entry) bool {
	g := components.MustGame(w)
	v := components.Vehicle.Get(e)
	weapon := components.Weapon.Get(e)
	if v == nil || weapon == nil || !v.Alive || v.Phase != components.RespawnNone {
		return false
	}
	if !weapon.Ready(g.Tick) {
		return false
	}

	body := components.Body.Get(e).Body
	weapon.LastShotTick = g.Tick
	weapon.Reloading = true
	scheduleReloadClear(g, e, v, weapon)

	// Muzzle pose: yaw from the turret, pitch from the camera aim, so
	// shots track where the player aims regardless of hull tilt.
	aim := gamemath.DirFromYawPitch(v.TurretYaw, components.Input.Get(e).AimPitch)
	muzzle := body.Position().
		Add(mgl64.Vec3{0, cfg.Vehicle.Height * 0.5, 0}).
		Add(aim.Mul(weapon.Spec.MuzzleOffset))

	applyRecoil(v, body, aim, weapon.Spec)

	g.NotifyFire(muzzle, weapon.Spec.Name)
	g.NotifyShot(components.ShotEvent{
		Position:  muzzle,
		Direction: aim,
		AimPitch:  components.Input.Get(e).AimPitch,
		Damage:    weapon.Spec.Damage,
		WeaponID:  weapon.Spec.Name,
		Tick:      g.Tick,
	})

	spawnShot(w, g, e, v, weapon.Spec, muzzle, aim)
	return true
}

// scheduleReloadClear arms the timer that clears Reloading at the
// weapon's effective cooldown deadline. Called again when the cooldown
// scale changes mid-reload, so the active reload shortens or lengthens
// with the scale.
func scheduleReloadClear(g *components.GameData, e *donburi.Entry, v *components.VehicleData, weapon *components.WeaponData) {
	weapon.ReloadTimer.Cancel()
	remaining := weapon.LastShotTick + weapon.CooldownTicks() - g.Tick
	if remaining <= 0 {
		weapon.Reloading = false
		return
	}
	gen := v.Generation
	weapon.ReloadTimer = g.Scheduler.Schedule(remaining, func() {
		if !e.Valid() {
			return
		}
		if cur := components.Vehicle.Get(e); cur == nil || cur.Generation != gen {
			return
		}
		weapon.Reloading = false
	})
}

func applyRecoil(v *components.VehicleData, body physics.Body, aim mgl64.Vec3, spec cfg.WeaponSpec) {
	mass := body.Mass()
	inertia := mass * cfg.Vehicle.InertiaFactor
	kick := gamemath.Horizontal(aim)
	if l := kick.Len(); l > 1e-6 {
		kick = kick.Mul(1 / l)
	}
	body.ApplyImpulse(kick.Mul(-spec.RecoilImpulse * mass))
	// Pitch the nose up against the shot.
	right := gamemath.Right(body.Orientation())
	body.ApplyAngularImpulse(right.Mul(-spec.RecoilTorque * inertia))

	v.Kick(spec.RecoilImpulse*0.1, recoilVisualTime)
}

func spawnShot(w donburi.World, g *components.GameData, e *donburi.Entry, v *components.VehicleData, spec cfg.WeaponSpec, muzzle, aim mgl64.Vec3) {
	switch spec.Name {
	case cfg.WeaponScatter:
		for i := 0; i < spec.PelletCount; i++ {
			dir := jitterDirection(g, aim, spec.SpreadRad)
			factory.CreateProjectile(w, e, v.Team, spec, muzzle, dir, spec.Damage*spec.PelletDamage, g.Tick, false)
		}
	case cfg.WeaponBeam:
		resolveBeam(w, g, e, v, spec, muzzle, aim)
	default:
		factory.CreateProjectile(w, e, v.Team, spec, muzzle, aim, spec.Damage, g.Tick, false)
	}
}

// jitterDirection perturbs dir by a random angular offset within spread.
func jitterDirection(g *components.GameData, dir mgl64.Vec3, spread float64) mgl64.Vec3 {
	yaw := math.Atan2(dir.X(), dir.Z()) + (g.Rand.Float64()*2-1)*spread
	pitch := math.Asin(gamemath.Clamp(dir.Y(), -1, 1)) + (g.Rand.Float64()*2-1)*spread
	return gamemath.DirFromYawPitch(yaw, pitch)
}

// resolveBeam resolves a support beam instantly with a ray query: it
// damages the first enemy along the ray, heals the firer when it strikes
// a friendly, and is occluded by arena obstacles.
func resolveBeam(w donburi.World, g *components.GameData, firer *donburi.Entry, v *components.VehicleData, spec cfg.WeaponSpec, origin, dir mgl64.Vec3) {
	maxDist := spec.BeamRange
	if hit, ok := g.Arena.Raycast(origin, dir, spec.BeamRange); ok {
		maxDist = hit.Point.Sub(origin).Len()
	}

	var best *donburi.Entry
	bestDist := maxDist
	eachTarget(w, func(t *donburi.Entry, pos mgl64.Vec3, radius float64) {
		if t == firer {
			return
		}
		d, ok := raySphere(origin, dir, pos, radius)
		if ok && d < bestDist {
			bestDist = d
			best = t
		}
	})
	if best == nil {
		return
	}

	point := origin.Add(dir.Mul(bestDist))
	if IsFriendly(best, v.Team) {
		Heal(w, firer, spec.BeamHeal)
		g.NotifyHit(point, best)
		return
	}
	DealDamage(w, best, spec.Damage, firer)
	g.NotifyHit(point, best)
}

// eachTarget visits every living vehicle and turret regardless of team.
func eachTarget(w donburi.World, fn func(e *donburi.Entry, pos mgl64.Vec3, radius float64)) {
	components.Vehicle.Each(w, func(e *donburi.Entry) {
		v := components.Vehicle.Get(e)
		h := components.Health.Get(e)
		if !v.Alive || !h.Alive() {
			return
		}
		fn(e, components.Transform.Get(e).Position, cfg.Combat.VehicleHitRadius)
	})
	components.Turret.Each(w, func(e *donburi.Entry) {
		if !components.Health.Get(e).Alive() {
			return
		}
		fn(e, components.Transform.Get(e).Position, cfg.Combat.TurretHitRadius)
	})
}

// raySphere returns the distance along the ray (unit dir) to the sphere,
// and false when the ray misses.
func raySphere(origin, dir, center mgl64.Vec3, radius float64) (float64, bool) {
	oc := center.Sub(origin)
	t := oc.Dot(dir)
	if t < 0 {
		return 0, false
	}
	perp2 := oc.Dot(oc) - t*t
	if perp2 > radius*radius {
		return 0, false
	}
	return t - math.Sqrt(radius*radius-perp2), true
}

// UpdateWeaponCosmetics decays recoil offsets. Frame-rate driven.
func UpdateWeaponCosmetics(w donburi.World) {
	g := components.MustGame(w)
	components.Vehicle.Each(w, func(e *donburi.Entry) {
		components.Vehicle.Get(e).UpdateRecoil(g.FrameDT)
	})
}
