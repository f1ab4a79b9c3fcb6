package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"

	"github.com/strafelabs/hovertank/components"
	cfg "github.com/strafelabs/hovertank/config"
	"github.com/strafelabs/hovertank/gamemath"
	"github.com/strafelabs/hovertank/systems/factory"
)

// moduleSpec returns the timing table entry for a module kind.
func moduleSpec(kind components.ModuleKind) cfg.ModuleSpec {
	switch kind {
	case components.ModuleRapidReload:
		return cfg.Modules.RapidReload
	case components.ModuleAutoAim:
		return cfg.Modules.AutoAim
	case components.ModuleEvasive:
		return cfg.Modules.Evasive
	case components.ModuleWall:
		return cfg.Modules.Wall
	case components.ModuleJump:
		return cfg.Modules.Jump
	case components.ModuleArmorBoost:
		return cfg.Modules.ArmorBoost
	}
	return cfg.ModuleSpec{}
}

var moduleActions = [components.ModuleCount]cfg.ActionID{
	components.ModuleRapidReload: cfg.ActionModuleReload,
	components.ModuleAutoAim:     cfg.ActionModuleAutoAim,
	components.ModuleEvasive:     cfg.ActionModuleEvasive,
	components.ModuleWall:        cfg.ActionModuleWall,
	components.ModuleJump:        cfg.ActionModuleJump,
	components.ModuleArmorBoost:  cfg.ActionModuleArmor,
}

// UpdateModules drives the six ability state machines: activation from
// input, per-tick active effects, and the charged-jump hold/release
// mechanic. Deactivations run through scheduled callbacks.
func UpdateModules(w donburi.World) {
	g := components.MustGame(w)
	components.Vehicle.Each(w, func(e *donburi.Entry) {
		v := components.Vehicle.Get(e)
		if !v.Alive || v.Phase != components.RespawnNone {
			return
		}
		input := components.Input.Get(e)
		mods := components.Modules.Get(e)

		for kind := components.ModuleKind(0); kind < components.ModuleCount; kind++ {
			if kind == components.ModuleJump {
				continue // hold/release semantics below
			}
			if input.Action(moduleActions[kind]).JustPressed {
				TryActivate(w, e, kind)
			}
		}

		updateJump(w, g, e, v, mods, input)

		if mods.Active(components.ModuleAutoAim) {
			runAutoAim(w, g, e, v)
		}
		if mods.Active(components.ModuleEvasive) {
			runEvasive(w, g, e, v, mods)
		}
	})
}

// TryActivate starts a module if it is idle and off cooldown. Activating
// an active or cooling module is a no-op that does not reset its timers.
func TryActivate(w donburi.World, e *donburi.Entry, kind components.ModuleKind) bool {
	g := components.MustGame(w)
	v := components.Vehicle.Get(e)
	mods := components.Modules.Get(e)
	if !v.Alive || !mods.CanActivate(kind, g.Tick) {
		return false
	}
	spec := moduleSpec(kind)
	mod := mods.Get(kind)

	// Instantaneous modules skip the active window entirely.
	if spec.Duration == 0 {
		switch kind {
		case components.ModuleWall:
			deployWall(w, g, e, v)
		case components.ModuleJump:
			// Release path applies the impulse; cooldown set there.
			return false
		}
		mod.State = components.ModuleCoolingDown
		mod.CooldownUntil = g.Tick + int64(spec.Cooldown)
		return true
	}

	// A stale pending deactivation from a previous activation must never
	// fire into this one.
	mod.Deactivate.Cancel()
	mod.State = components.ModuleActive
	mod.ActivatedTick = g.Tick

	applyModuleEffect(w, e, v, kind, true)

	gen := v.Generation
	mod.Deactivate = g.Scheduler.Schedule(int64(spec.Duration), func() {
		if !e.Valid() {
			return
		}
		cur := components.Vehicle.Get(e)
		if cur == nil || cur.Generation != gen {
			return
		}
		deactivateModule(w, e, cur, kind)
	})
	return true
}

func deactivateModule(w donburi.World, e *donburi.Entry, v *components.VehicleData, kind components.ModuleKind) {
	g := components.MustGame(w)
	mods := components.Modules.Get(e)
	mod := mods.Get(kind)
	if mod.State != components.ModuleActive {
		return
	}
	applyModuleEffect(w, e, v, kind, false)
	mod.State = components.ModuleCoolingDown
	mod.CooldownUntil = g.Tick + int64(moduleSpec(kind).Cooldown)
}

// applyModuleEffect toggles the stat effects that hold for the whole
// active window. Per-tick effects (auto-aim, evasive) run in
// UpdateModules instead.
func applyModuleEffect(w donburi.World, e *donburi.Entry, v *components.VehicleData, kind components.ModuleKind, active bool) {
	switch kind {
	case components.ModuleRapidReload:
		weapon := components.Weapon.Get(e)
		if active {
			weapon.CooldownScale = cfg.Modules.ReloadFactor
		} else {
			weapon.CooldownScale = 1.0
		}
		// An in-flight reload tracks the new scale too.
		if weapon.Reloading {
			scheduleReloadClear(components.MustGame(w), e, v, weapon)
		}
	case components.ModuleArmorBoost:
		if active {
			v.ArmorFactor = cfg.Modules.ArmorMitigation
		} else {
			v.ArmorFactor = 1.0
		}
	}
}

// deployWall spawns a barrier ahead of the vehicle, recycling the oldest
// wall when the per-vehicle cap is reached.
func deployWall(w donburi.World, g *components.GameData, e *donburi.Entry, v *components.VehicleData) {
	var owned []*donburi.Entry
	components.Wall.Each(w, func(we *donburi.Entry) {
		if components.Wall.Get(we).Owner == e {
			owned = append(owned, we)
		}
	})
	for len(owned) >= cfg.Modules.WallCap {
		oldest := owned[0]
		oldestTick := components.Wall.Get(oldest).SpawnTick
		for _, we := range owned[1:] {
			if t := components.Wall.Get(we).SpawnTick; t < oldestTick {
				oldest = we
				oldestTick = t
			}
		}
		factory.RetireWall(w, g, oldest)
		next := owned[:0]
		for _, we := range owned {
			if we != oldest {
				next = append(next, we)
			}
		}
		owned = next
	}

	body := components.Body.Get(e).Body
	yaw := gamemath.YawOf(body.Orientation())
	fwd := gamemath.DirFromYawPitch(yaw, 0)
	pos := body.Position().Add(fwd.Mul(cfg.Modules.WallDistance))
	ground := g.Arena.GroundHeight(pos.X(), pos.Z())
	pos = mgl64.Vec3{pos.X(), ground + cfg.Modules.WallHalfH, pos.Z()}

	factory.CreateWall(w, g, e, pos, yaw)
}

// updateJump handles the charged jump's hold/release state: charge
// accumulates toward 1 over the full hold window, release fires one
// upward impulse scaled between base and max.
func updateJump(w donburi.World, g *components.GameData, e *donburi.Entry, v *components.VehicleData, mods *components.ModulesData, input *components.InputData) {
	body := components.Body.Get(e).Body
	action := input.Action(cfg.ActionModuleJump)

	if action.JustPressed && !mods.JumpCharging {
		if !mods.CanActivate(components.ModuleJump, g.Tick) {
			return
		}
		// No charging while already airborne and falling: double-jump abuse.
		ground := g.Arena.GroundHeight(body.Position().X(), body.Position().Z())
		airborne := body.Position().Y()-ground > v.RideHeight*1.5
		if airborne && body.LinearVelocity().Y() < cfg.Modules.JumpFallLimit {
			return
		}
		mods.JumpCharging = true
		mods.JumpCharge = 0
		return
	}

	if mods.JumpCharging && action.Pressed {
		mods.JumpCharge = math.Min(1, mods.JumpCharge+g.FrameDT/cfg.Modules.JumpChargeTime)
	}

	if mods.JumpCharging && action.JustReleased {
		mods.JumpCharging = false
		scale := gamemath.Lerp(1, cfg.Modules.JumpMaxScale, mods.JumpCharge)
		impulse := cfg.Modules.JumpBase * scale * body.Mass()
		body.ApplyImpulse(mgl64.Vec3{0, impulse, 0})
		mods.JumpCharge = 0

		mod := mods.Get(components.ModuleJump)
		mod.State = components.ModuleCoolingDown
		mod.CooldownUntil = g.Tick + int64(cfg.Modules.Jump.Cooldown)
	}
}

// runAutoAim slews the turret toward the nearest enemy at a bounded rate
// and fires once the aim error is inside the threshold.
func runAutoAim(w donburi.World, g *components.GameData, e *donburi.Entry, v *components.VehicleData) {
	body := components.Body.Get(e).Body
	_, targetPos, ok := NearestEnemy(w, v.Team, body.Position(), cfg.Modules.AutoAimRange, nil)
	if !ok {
		return
	}
	to := targetPos.Sub(body.Position())
	wantYaw := math.Atan2(to.X(), to.Z())
	err := gamemath.WrapAngle(wantYaw - v.TurretYaw)

	maxStep := cfg.Modules.AutoAimRate * g.FrameDT
	v.TurretYaw = gamemath.WrapAngle(v.TurretYaw + gamemath.ClampSpeed(err, maxStep))

	if math.Abs(err) <= cfg.Modules.AutoAimThreshold {
		Fire(w, e)
	}
}

// runEvasive applies a periodically-flipping lateral impulse plus a
// small retreating impulse while an enemy is in range.
func runEvasive(w donburi.World, g *components.GameData, e *donburi.Entry, v *components.VehicleData, mods *components.ModulesData) {
	body := components.Body.Get(e).Body
	if _, _, ok := NearestEnemy(w, v.Team, body.Position(), cfg.Modules.EvasiveRange, nil); !ok {
		return
	}

	if g.Tick-mods.EvasiveLastFlip >= int64(cfg.Modules.EvasiveFlip) {
		mods.EvasiveDir = -mods.EvasiveDir
		mods.EvasiveLastFlip = g.Tick
	}

	rot := body.Orientation()
	right := gamemath.Horizontal(gamemath.Right(rot))
	fwd := gamemath.Horizontal(gamemath.Forward(rot))
	mass := body.Mass()
	dt := g.FrameDT

	impulse := right.Mul(mods.EvasiveDir * cfg.Modules.EvasiveImpulse * mass * dt).
		Sub(fwd.Mul(cfg.Modules.EvasiveRetreat * mass * dt))
	if gamemath.IsFiniteVec(impulse) {
		body.ApplyImpulse(impulse)
	}
}
