package systems

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/strafelabs/hovertank/components"
	cfg "github.com/strafelabs/hovertank/config"
	"github.com/strafelabs/hovertank/physics"
	"github.com/strafelabs/hovertank/systems/factory"
)

func TestDealDamageReducesHealth(t *testing.T) {
	w, _ := newTestWorld()
	e := spawnVehicle(w, 0, cfg.WeaponStandard, mgl64.Vec3{0, 2, 0})

	applied := DealDamage(w, e, 30, nil)
	if applied != 30 {
		t.Errorf("applied = %v, want 30", applied)
	}
	if got := healthOf(e); got != cfg.Vehicle.Health-30 {
		t.Errorf("health = %v, want %v", got, cfg.Vehicle.Health-30)
	}
}

func TestDamageClampsAtZero(t *testing.T) {
	w, _ := newTestWorld()
	e := spawnVehicle(w, 0, cfg.WeaponStandard, mgl64.Vec3{0, 2, 0})

	DealDamage(w, e, 10*cfg.Vehicle.Health, nil)
	if got := healthOf(e); got != 0 {
		t.Errorf("health = %v after overkill, want 0", got)
	}
}

func TestHealClampsAtMax(t *testing.T) {
	w, _ := newTestWorld()
	e := spawnVehicle(w, 0, cfg.WeaponStandard, mgl64.Vec3{0, 2, 0})
	components.Health.Get(e).Current = 90

	Heal(w, e, 50)
	if got := healthOf(e); got != cfg.Vehicle.Health {
		t.Errorf("health = %v after heal, want max %v", got, cfg.Vehicle.Health)
	}
}

func TestInvulnerabilityIsAdvisoryOnly(t *testing.T) {
	w, g := newTestWorld()
	e := spawnVehicle(w, 0, cfg.WeaponStandard, mgl64.Vec3{0, 2, 0})
	v := components.Vehicle.Get(e)
	v.Invulnerable = true
	v.InvulnUntil = g.Tick + 1000

	DealDamage(w, e, 25, nil)
	if got := healthOf(e); got != cfg.Vehicle.Health-25 {
		t.Errorf("health = %v, want %v: the flag must not alter the damage math", got, cfg.Vehicle.Health-25)
	}
}

func TestKillEntersRespawnWait(t *testing.T) {
	w, _ := newTestWorld()
	e := spawnVehicle(w, 0, cfg.WeaponStandard, mgl64.Vec3{0, 2, 0})
	v := components.Vehicle.Get(e)

	DealDamage(w, e, cfg.Vehicle.Health, nil)
	if v.Alive {
		t.Fatal("vehicle alive at zero health")
	}
	if v.Phase != components.RespawnWaiting {
		t.Errorf("phase = %v after death, want RespawnWaiting", v.Phase)
	}
}

func TestRespawnSequence(t *testing.T) {
	w, g := newTestWorld()
	spawn := mgl64.Vec3{10, 2, -10}
	e := factory.CreateVehicle(w, 0, cfg.WeaponStandard, spawn, 0)
	v := components.Vehicle.Get(e)
	body := vehicleBody(e)

	DealDamage(w, e, cfg.Vehicle.Health, nil)

	// Nothing happens until the respawn delay elapses.
	for i := 0; i < cfg.Recovery.RespawnDelay-1; i++ {
		stepVehicle(w, g)
	}
	if v.Alive {
		t.Fatal("respawned before the delay elapsed")
	}

	stepVehicle(w, g)
	if !v.Alive {
		t.Fatal("not respawned after the delay")
	}
	if healthOf(e) != cfg.Vehicle.Health {
		t.Errorf("health = %v after respawn, want full", healthOf(e))
	}
	if body.MotionType() != physics.Kinematic {
		t.Error("body not held kinematic right after the teleport")
	}
	if v.Phase != components.RespawnHolding {
		t.Errorf("phase = %v, want RespawnHolding", v.Phase)
	}
	if !v.Invulnerable {
		t.Error("advisory invulnerability not granted on respawn")
	}

	// The hold releases after a fixed number of physics steps.
	for i := 0; i < cfg.Recovery.KinematicHold+1; i++ {
		stepVehicle(w, g)
	}
	if body.MotionType() != physics.Dynamic {
		t.Error("body still kinematic after the hold window")
	}
	if v.Phase != components.RespawnNone {
		t.Errorf("phase = %v after release, want RespawnNone", v.Phase)
	}

	// Spawn pose: near the spawn point, slightly above hover height.
	pos := body.Position()
	if math.Abs(pos.X()-spawn.X()) > 1 || math.Abs(pos.Z()-spawn.Z()) > 1 {
		t.Errorf("respawned at %v, want near %v", pos, spawn)
	}
}

func TestDeathCancelsPendingTimers(t *testing.T) {
	w, g := newTestWorld()
	e := spawnVehicle(w, 0, cfg.WeaponStandard, mgl64.Vec3{0, 2, 0})
	v := components.Vehicle.Get(e)
	weapon := components.Weapon.Get(e)

	// A reload and an active module are in flight when the vehicle dies.
	// The boost mitigates incoming damage, so the hit must be lethal
	// after mitigation.
	Fire(w, e)
	TryActivate(w, e, components.ModuleArmorBoost)
	DealDamage(w, e, cfg.Vehicle.Health/cfg.Modules.ArmorMitigation, nil)

	if v.Alive {
		t.Fatal("vehicle survived lethal post-mitigation damage")
	}
	if weapon.Reloading {
		t.Error("reload state survived death")
	}
	if v.ArmorFactor != 1.0 {
		t.Errorf("armor factor = %v after death, want reset", v.ArmorFactor)
	}

	// Firing the stale deadlines must not disturb the reset state.
	advance(g, cfg.Modules.ArmorBoost.Duration+10)
	mods := components.Modules.Get(e)
	if got := mods.Get(components.ModuleArmorBoost).State; got != components.ModuleIdle {
		t.Errorf("module state = %v after stale deadline, want idle", got)
	}
	if weapon.Reloading {
		t.Error("stale reload timer re-armed the weapon state")
	}
}

func TestTurretDestroyedOutright(t *testing.T) {
	w, _ := newTestWorld()
	turret := factory.CreateTurret(w, 1, mgl64.Vec3{5, 0, 5}, 50)

	DealDamage(w, turret, 50, nil)
	if turret.Valid() {
		t.Error("turret entity survived lethal damage")
	}
}

func TestWallDamageRouting(t *testing.T) {
	w, g := newTestWorld()
	owner := spawnVehicle(w, 0, cfg.WeaponStandard, mgl64.Vec3{0, 2, 0})
	wall := factory.CreateWall(w, g, owner, mgl64.Vec3{0, 2.5, 6}, 0)

	// Three 40-damage hits: the wall survives two and falls on the third.
	DealDamage(w, wall, 40, nil)
	DealDamage(w, wall, 40, nil)
	if !wall.Valid() {
		t.Fatal("wall destroyed before its health ran out")
	}
	DealDamage(w, wall, 40, nil)
	if wall.Valid() {
		t.Error("wall survived cumulative lethal damage")
	}
}

func TestEnvironmentalDamageHasNoAttacker(t *testing.T) {
	w, _ := newTestWorld()
	e := spawnVehicle(w, 0, cfg.WeaponStandard, mgl64.Vec3{0, 2, 0})

	// Must not panic or record score with a nil attacker.
	DealDamage(w, e, cfg.Vehicle.Health, nil)
	if components.Vehicle.Get(e).Alive {
		t.Error("vehicle survived lethal environmental damage")
	}
}
