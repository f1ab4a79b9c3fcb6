package systems

import (
	"github.com/yohamta/donburi"

	"github.com/strafelabs/hovertank/components"
	cfg "github.com/strafelabs/hovertank/config"
	"github.com/strafelabs/hovertank/systems/factory"
)

// DealDamage applies amount to target, routing by entity kind. attacker
// may be nil (environmental damage). Returns the damage actually applied
// after mitigation.
//
// The invulnerability window is advisory only: presentation layers read
// it, the health subtraction here does not. Armor mitigation is the only
// modifier.
func DealDamage(w donburi.World, target *donburi.Entry, amount float64, attacker *donburi.Entry) float64 {
	if target == nil || !target.Valid() || amount <= 0 {
		return 0
	}
	g := components.MustGame(w)

	if target.HasComponent(components.Wall) {
		return damageWall(w, g, target, amount)
	}

	health := components.Health.Get(target)
	if health == nil || !health.Alive() {
		return 0
	}

	if target.HasComponent(components.Vehicle) {
		v := components.Vehicle.Get(target)
		amount *= v.ArmorFactor
	}

	health.Current -= amount
	if health.Current < 0 {
		health.Current = 0
	}
	g.NotifyHealth(health.Current, health.Max)
	if attacker != nil && attacker.Valid() {
		g.RecordDamage(amount)
	}

	if health.Current == 0 {
		kill(w, g, target, attacker)
	}
	return amount
}

// Heal restores health, clamped at max.
func Heal(w donburi.World, target *donburi.Entry, amount float64) {
	if target == nil || !target.Valid() || amount <= 0 {
		return
	}
	health := components.Health.Get(target)
	if health == nil || !health.Alive() {
		return
	}
	health.Current += amount
	if health.Current > health.Max {
		health.Current = health.Max
	}
	components.MustGame(w).NotifyHealth(health.Current, health.Max)
}

func damageWall(w donburi.World, g *components.GameData, e *donburi.Entry, amount float64) float64 {
	health := components.Health.Get(e)
	if health == nil || !health.Alive() {
		return 0
	}
	health.Current -= amount
	if health.Current <= 0 {
		health.Current = 0
		factory.RetireWall(w, g, e)
	}
	return amount
}

func kill(w donburi.World, g *components.GameData, target *donburi.Entry, attacker *donburi.Entry) {
	if attacker != nil && attacker.Valid() {
		g.RecordKill()
	}
	if tf := components.Transform.Get(target); tf != nil {
		g.NotifyExplosion(tf.Position, 4.0)
	}

	// Turrets are simply destroyed.
	if !target.HasComponent(components.Vehicle) {
		w.Remove(target.Entity())
		return
	}

	v := components.Vehicle.Get(target)
	v.Alive = false
	v.Phase = components.RespawnWaiting
	cancelLifeTimers(target, v)

	if body := components.Body.Get(target); body != nil {
		body.Body.SetLinearVelocity(body.Body.LinearVelocity().Mul(0.25))
	}

	// The respawn callback belongs to the next life; it re-checks
	// validity because the session may remove the vehicle outright.
	gen := v.Generation
	g.Scheduler.Schedule(int64(cfg.Recovery.RespawnDelay), func() {
		if !target.Valid() {
			return
		}
		cur := components.Vehicle.Get(target)
		if cur.Generation != gen || cur.Alive {
			return
		}
		Respawn(w, target)
	})
}

// cancelLifeTimers invalidates every pending callback tied to the life
// that just ended, so a stale reload or module deactivation cannot
// mutate the reset vehicle.
func cancelLifeTimers(e *donburi.Entry, v *components.VehicleData) {
	v.Generation++

	if weapon := components.Weapon.Get(e); weapon != nil {
		weapon.ReloadTimer.Cancel()
		weapon.Reloading = false
		weapon.CooldownScale = 1.0
	}
	if mods := components.Modules.Get(e); mods != nil {
		for i := range mods.Mods {
			mods.Mods[i].Deactivate.Cancel()
			mods.Mods[i].State = components.ModuleIdle
			mods.Mods[i].CooldownUntil = 0
		}
		mods.JumpCharging = false
		mods.JumpCharge = 0
	}
	v.ArmorFactor = 1.0
}

// Respawn resets the vehicle to baseline stats and teleports it to its
// spawn pose. The body is held kinematic for a few physics steps so the
// teleport settles before forces resume.
func Respawn(w donburi.World, e *donburi.Entry) {
	g := components.MustGame(w)
	v := components.Vehicle.Get(e)
	body := components.Body.Get(e).Body

	health := components.Health.Get(e)
	health.Current = health.Max
	fuel := components.Fuel.Get(e)
	fuel.Current = fuel.Max
	weapon := components.Weapon.Get(e)
	weapon.Reloading = false
	weapon.CooldownScale = 1.0

	v.Alive = true
	v.ArmorFactor = 1.0
	v.SmoothedThrottle = 0
	v.SmoothedSteer = 0
	v.SmoothedTurret = 0
	v.TurretYaw = v.SpawnYaw
	v.RecoveryGrace = 0
	v.Invulnerable = true
	v.InvulnUntil = g.Tick + int64(cfg.Recovery.InvulnTicks)

	teleportHold(v, body, physicsSpawnPos(g, v))

	g.NotifyHealth(health.Current, health.Max)
	g.NotifyFuel(fuel.Current, fuel.Max)
}
