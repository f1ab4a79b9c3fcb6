package main

import (
	"math"
	"math/rand"

	"github.com/yohamta/donburi"

	"github.com/strafelabs/hovertank/components"
	cfg "github.com/strafelabs/hovertank/config"
	"github.com/strafelabs/hovertank/gamemath"
	"github.com/strafelabs/hovertank/sim"
	"github.com/strafelabs/hovertank/systems"
)

// botDriver writes synthetic input for one vehicle each frame: chase the
// nearest enemy, line the turret up, fire when aligned, and poke ability
// modules at random intervals.
type botDriver struct {
	sim        *sim.Sim
	entry      *donburi.Entry
	rng        *rand.Rand
	nextModule int64
}

func newBotDriver(s *sim.Sim, e *donburi.Entry, seed int64) *botDriver {
	return &botDriver{
		sim:   s,
		entry: e,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

func (b *botDriver) drive() {
	e := b.entry
	if !e.Valid() || !e.HasComponent(components.Input) {
		return
	}
	in := components.Input.Get(e)
	for i := range in.Current {
		in.Current[i] = false
	}

	v := components.Vehicle.Get(e)
	if !v.Alive {
		return
	}
	body := components.Body.Get(e).Body
	pos := body.Position()

	target, targetPos, ok := systems.NearestEnemy(b.sim.World, v.Team, pos, math.Inf(1), nil)
	if !ok || target == nil {
		return
	}

	to := targetPos.Sub(pos)
	dist := gamemath.HorizontalSpeed(to)
	wantYaw := math.Atan2(to.X(), to.Z())

	// Hull steers toward the target, throttle held until close.
	hullErr := gamemath.WrapAngle(wantYaw - gamemath.YawOf(body.Orientation()))
	if hullErr > 0.1 {
		in.Current[cfg.ActionSteerLeft] = true
	} else if hullErr < -0.1 {
		in.Current[cfg.ActionSteerRight] = true
	}
	if dist > 20 {
		in.Current[cfg.ActionForward] = true
	} else if dist < 10 {
		in.Current[cfg.ActionReverse] = true
	}

	// Turret tracks independently and fires inside a small cone.
	turretErr := gamemath.WrapAngle(wantYaw - v.TurretYaw)
	if turretErr > 0.03 {
		in.Current[cfg.ActionTurretLeft] = true
	} else if turretErr < -0.03 {
		in.Current[cfg.ActionTurretRight] = true
	}
	in.AimPitch = 0
	if math.Abs(turretErr) < 0.08 && dist < 90 {
		in.Current[cfg.ActionFire] = true
	}

	g := b.sim.Game()
	if g.Tick >= b.nextModule {
		b.nextModule = g.Tick + 120 + b.rng.Int63n(480)
		in.Current[b.randomModuleAction()] = true
	}
}

func (b *botDriver) randomModuleAction() cfg.ActionID {
	actions := []cfg.ActionID{
		cfg.ActionModuleReload, cfg.ActionModuleAutoAim, cfg.ActionModuleEvasive,
		cfg.ActionModuleWall, cfg.ActionModuleJump, cfg.ActionModuleArmor,
	}
	return actions[b.rng.Intn(len(actions))]
}
