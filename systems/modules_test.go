package systems

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"

	"github.com/strafelabs/hovertank/components"
	cfg "github.com/strafelabs/hovertank/config"
	"github.com/strafelabs/hovertank/gamemath"
	"github.com/strafelabs/hovertank/systems/factory"
)

func TestModuleLifecycle(t *testing.T) {
	w, g := newTestWorld()
	e := spawnVehicle(w, 0, cfg.WeaponStandard, mgl64.Vec3{0, 2, 0})
	mods := components.Modules.Get(e)
	weapon := components.Weapon.Get(e)
	spec := cfg.Modules.RapidReload

	if !TryActivate(w, e, components.ModuleRapidReload) {
		t.Fatal("activation refused from idle")
	}
	if !mods.Active(components.ModuleRapidReload) {
		t.Fatal("module not active after activation")
	}
	if weapon.CooldownScale != cfg.Modules.ReloadFactor {
		t.Errorf("cooldown scale = %v, want %v", weapon.CooldownScale, cfg.Modules.ReloadFactor)
	}

	// The active window expires through the scheduler, then the cooldown
	// must hold until its deadline.
	advance(g, spec.Duration)
	if mods.Active(components.ModuleRapidReload) {
		t.Fatal("module still active past its duration")
	}
	if weapon.CooldownScale != 1.0 {
		t.Errorf("cooldown scale = %v after deactivation, want 1", weapon.CooldownScale)
	}
	if TryActivate(w, e, components.ModuleRapidReload) {
		t.Fatal("activation accepted during cooldown")
	}

	advance(g, spec.Cooldown)
	if !TryActivate(w, e, components.ModuleRapidReload) {
		t.Fatal("activation refused after cooldown elapsed")
	}
}

func TestActivateWhileActiveDoesNotResetTimers(t *testing.T) {
	w, g := newTestWorld()
	e := spawnVehicle(w, 0, cfg.WeaponStandard, mgl64.Vec3{0, 2, 0})
	mods := components.Modules.Get(e)

	TryActivate(w, e, components.ModuleArmorBoost)
	started := mods.Get(components.ModuleArmorBoost).ActivatedTick

	advance(g, 100)
	if TryActivate(w, e, components.ModuleArmorBoost) {
		t.Fatal("re-activation accepted while active")
	}
	if got := mods.Get(components.ModuleArmorBoost).ActivatedTick; got != started {
		t.Errorf("activation tick moved on failed attempt: %d -> %d", started, got)
	}

	// The window still ends at the original deadline.
	advance(g, cfg.Modules.ArmorBoost.Duration - 100)
	if mods.Active(components.ModuleArmorBoost) {
		t.Error("failed re-activation extended the active window")
	}
}

func TestArmorBoostMitigation(t *testing.T) {
	w, g := newTestWorld()
	e := spawnVehicle(w, 0, cfg.WeaponStandard, mgl64.Vec3{0, 2, 0})
	health := components.Health.Get(e)

	TryActivate(w, e, components.ModuleArmorBoost)
	DealDamage(w, e, 40, nil)
	want := cfg.Vehicle.Health - 40*cfg.Modules.ArmorMitigation
	if math.Abs(health.Current-want) > 1e-9 {
		t.Fatalf("health = %v under armor boost, want %v", health.Current, want)
	}

	// Full damage again once the window closes.
	advance(g, cfg.Modules.ArmorBoost.Duration)
	before := health.Current
	DealDamage(w, e, 10, nil)
	if math.Abs(health.Current-(before-10)) > 1e-9 {
		t.Errorf("health = %v after boost expired, want %v", health.Current, before-10)
	}
}

func TestWallDeployment(t *testing.T) {
	w, _ := newTestWorld()
	e := spawnVehicle(w, 0, cfg.WeaponStandard, mgl64.Vec3{0, 2, 0})
	mods := components.Modules.Get(e)

	if !TryActivate(w, e, components.ModuleWall) {
		t.Fatal("wall deployment refused")
	}
	if got := countWalls(w); got != 1 {
		t.Fatalf("wall count = %d, want 1", got)
	}
	if mods.Get(components.ModuleWall).State != components.ModuleCoolingDown {
		t.Error("instantaneous module not cooling down after use")
	}

	// The wall sits ahead of the hull at deploy distance, facing +Z.
	components.Wall.Each(w, func(we *donburi.Entry) {
		pos := components.Transform.Get(we).Position
		if math.Abs(pos.Z()-cfg.Modules.WallDistance) > 1e-9 || math.Abs(pos.X()) > 1e-9 {
			t.Errorf("wall deployed at %v, want %v ahead on Z", pos, cfg.Modules.WallDistance)
		}
	})
}

func TestWallCapRetiresOldest(t *testing.T) {
	w, g := newTestWorld()
	e := spawnVehicle(w, 0, cfg.WeaponStandard, mgl64.Vec3{0, 2, 0})
	v := components.Vehicle.Get(e)

	// Deploy up to the cap with distinct spawn ticks. Track versioned
	// entity ids; entry pointers get recycled for new entities.
	var walls []donburi.Entity
	for i := 0; i < cfg.Modules.WallCap; i++ {
		g.FrameTick++
		pos := mgl64.Vec3{float64(i) * 10, cfg.Modules.WallHalfH, 20}
		walls = append(walls, factory.CreateWall(w, g, e, pos, 0).Entity())
	}
	if got := countWalls(w); got != cfg.Modules.WallCap {
		t.Fatalf("wall count = %d, want %d", got, cfg.Modules.WallCap)
	}

	// The next deployment recycles the oldest wall instead of exceeding
	// the cap.
	deployWall(w, g, e, v)
	if got := countWalls(w); got != cfg.Modules.WallCap {
		t.Errorf("wall count = %d after recycle, want %d", got, cfg.Modules.WallCap)
	}
	if w.Valid(walls[0]) {
		t.Error("oldest wall survived the recycle")
	}
	for _, we := range walls[1:] {
		if !w.Valid(we) {
			t.Error("newer wall retired instead of the oldest")
		}
	}
}

func TestJumpChargeScaling(t *testing.T) {
	w, g := newTestWorld()
	e := spawnVehicle(w, 0, cfg.WeaponStandard, mgl64.Vec3{0, 2, 0})
	body := vehicleBody(e)
	mods := components.Modules.Get(e)

	holdTicks := 60 // a tenth of the full charge window

	pressAction(e, cfg.ActionModuleJump)
	UpdateModules(w)
	LatchInput(w)
	if !mods.JumpCharging {
		t.Fatal("jump did not start charging on press")
	}

	for i := 0; i < holdTicks; i++ {
		advance(g, 1)
		UpdateModules(w)
		LatchInput(w)
	}
	charge := mods.JumpCharge
	wantCharge := float64(holdTicks) * g.FrameDT / cfg.Modules.JumpChargeTime
	if math.Abs(charge-wantCharge) > 1e-9 {
		t.Fatalf("charge = %v after %d frames, want %v", charge, holdTicks, wantCharge)
	}

	releaseAction(e, cfg.ActionModuleJump)
	advance(g, 1)
	UpdateModules(w)
	LatchInput(w)

	wantVy := cfg.Modules.JumpBase * gamemath.Lerp(1, cfg.Modules.JumpMaxScale, charge)
	if got := body.LinearVelocity().Y(); math.Abs(got-wantVy) > 1e-9 {
		t.Errorf("jump velocity = %v, want %v", got, wantVy)
	}
	if mods.CanActivate(components.ModuleJump, g.Tick) {
		t.Error("jump not on cooldown after release")
	}
}

func TestAutoAimTracksAndFires(t *testing.T) {
	w, g := newTestWorld()
	e := spawnVehicle(w, 0, cfg.WeaponStandard, mgl64.Vec3{0, 2, 0})
	spawnVehicle(w, 1, cfg.WeaponStandard, mgl64.Vec3{20, 2, 0})
	v := components.Vehicle.Get(e)

	if !TryActivate(w, e, components.ModuleAutoAim) {
		t.Fatal("auto-aim activation refused")
	}

	// Target bearing is +X, a quarter turn from the initial turret yaw.
	wantYaw := math.Pi / 2
	for i := 0; i < 120; i++ {
		advance(g, 1)
		UpdateModules(w)
		LatchInput(w)
	}

	if err := math.Abs(gamemath.WrapAngle(wantYaw - v.TurretYaw)); err > cfg.Modules.AutoAimThreshold {
		t.Errorf("turret error = %v after tracking, want <= %v", err, cfg.Modules.AutoAimThreshold)
	}
	if got := countProjectiles(w); got == 0 {
		t.Error("auto-aim never fired on an aligned target")
	}
}

func TestEvasiveAppliesImpulses(t *testing.T) {
	w, g := newTestWorld()
	e := spawnVehicle(w, 0, cfg.WeaponStandard, mgl64.Vec3{0, 2, 0})
	spawnVehicle(w, 1, cfg.WeaponStandard, mgl64.Vec3{10, 2, 0})
	body := vehicleBody(e)

	if !TryActivate(w, e, components.ModuleEvasive) {
		t.Fatal("evasive activation refused")
	}
	for i := 0; i < 10; i++ {
		advance(g, 1)
		UpdateModules(w)
		LatchInput(w)
	}
	if body.LinearVelocity().Len() == 0 {
		t.Error("evasive applied no impulses with an enemy in range")
	}
}

func TestEvasiveIdleWithoutEnemies(t *testing.T) {
	w, g := newTestWorld()
	e := spawnVehicle(w, 0, cfg.WeaponStandard, mgl64.Vec3{0, 2, 0})
	body := vehicleBody(e)

	TryActivate(w, e, components.ModuleEvasive)
	for i := 0; i < 10; i++ {
		advance(g, 1)
		UpdateModules(w)
		LatchInput(w)
	}
	if body.LinearVelocity().Len() != 0 {
		t.Error("evasive dodged with no enemy in range")
	}
}

func TestJumpChargeTracksFrameTime(t *testing.T) {
	w, g := newTestWorld()
	e := spawnVehicle(w, 0, cfg.WeaponStandard, mgl64.Vec3{0, 2, 0})
	mods := components.Modules.Get(e)

	// Frame updates decoupled from physics steps at twice the rate.
	g.FrameDT = 1.0 / 120.0

	pressAction(e, cfg.ActionModuleJump)
	UpdateModules(w)
	LatchInput(w)
	for i := 0; i < 120; i++ { // one simulated second of frames
		advance(g, 1)
		UpdateModules(w)
		LatchInput(w)
	}

	want := 1.0 / cfg.Modules.JumpChargeTime
	if math.Abs(mods.JumpCharge-want) > 1e-9 {
		t.Errorf("charge = %v after one second at 120 fps, want %v", mods.JumpCharge, want)
	}
}
