package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"

	"github.com/strafelabs/hovertank/components"
	cfg "github.com/strafelabs/hovertank/config"
	"github.com/strafelabs/hovertank/gamemath"
	"github.com/strafelabs/hovertank/physics"
)

// UpdateLocomotion turns player input into drive force and turn torque.
// Runs once per physics step after UpdateStabilization; drive force and
// yaw torque each accumulate into one call per tick.
func UpdateLocomotion(w donburi.World) {
	g := components.MustGame(w)
	components.Vehicle.Each(w, func(e *donburi.Entry) {
		v := components.Vehicle.Get(e)
		body := components.Body.Get(e).Body
		if !v.Alive || v.Phase != components.RespawnNone || body.MotionType() != physics.Dynamic {
			return
		}
		input := components.Input.Get(e)
		fuel := components.Fuel.Get(e)
		drive(g, v, input, fuel, body)
	})
}

func drive(g *components.GameData, v *components.VehicleData, input *components.InputData, fuel *components.FuelData, body physics.Body) {
	dt := g.DT
	throttleTarget := input.ThrottleTarget()
	steerTarget := input.SteerTarget()
	turretTarget := input.TurretTarget()

	// Fuel drains while the player commands motion; at zero fuel the
	// smoothed scalars are forced to zero regardless of input.
	commanding := math.Abs(throttleTarget) > cfg.Drive.InputDeadzone ||
		math.Abs(steerTarget) > cfg.Drive.InputDeadzone
	if commanding && !fuel.Empty() {
		before := fuel.Current
		fuel.Current = math.Max(0, fuel.Current-fuel.Drain*dt)
		if fuel.Current != before {
			g.NotifyFuel(fuel.Current, fuel.Max)
		}
	}
	if fuel.Empty() {
		throttleTarget = 0
		steerTarget = 0
	}

	// Low-pass the raw targets. Steer reacts faster than throttle.
	v.SmoothedThrottle = gamemath.MoveToward(v.SmoothedThrottle, throttleTarget, cfg.Drive.ThrottleLPF*dt)
	v.SmoothedSteer = gamemath.MoveToward(v.SmoothedSteer, steerTarget, cfg.Drive.SteerLPF*dt)
	v.SmoothedTurret = gamemath.MoveToward(v.SmoothedTurret, turretTarget, cfg.Drive.TurretLPF*dt)

	// Turret tracks its own yaw so shots follow the camera independent
	// of hull orientation.
	v.TurretYaw = gamemath.WrapAngle(v.TurretYaw + v.SmoothedTurret*cfg.Drive.TurretRate*dt)

	vel := body.LinearVelocity()
	rot := body.Orientation()
	mass := body.Mass()
	inertia := mass * cfg.Vehicle.InertiaFactor
	fwd := gamemath.Horizontal(gamemath.Forward(rot))
	if l := fwd.Len(); l > 1e-6 {
		fwd = fwd.Mul(1 / l)
	} else {
		fwd = mgl64.Vec3{0, 0, 1}
	}

	// --- Drive force channel ---
	maxSpeed := cfg.Drive.MaxSpeed
	if v.SmoothedThrottle < 0 {
		maxSpeed *= cfg.Drive.ReverseFactor
	}
	desired := v.SmoothedThrottle * maxSpeed
	current := vel.Dot(fwd)
	speedErr := desired - current

	gain := cfg.Drive.AccelGain
	if math.Abs(desired) < math.Abs(current) || desired*current < 0 {
		// Braking bites harder than launching.
		gain = cfg.Drive.DecelGain
	}
	force := fwd.Mul(speedErr * gain * mass)

	// Forward share of the obstacle climb assist.
	if v.ObstacleFound && v.ObstacleHeight <= cfg.Vehicle.Height && v.SmoothedThrottle > 0.1 {
		ratio := v.ObstacleHeight / cfg.Vehicle.Height
		force = force.Add(fwd.Mul(cfg.Obstacle.ForwardBoost * mass * ratio))
	}

	// Idle damping: bring the hull to a controlled stop instead of
	// relying on engine damping alone.
	idle := math.Abs(throttleTarget) <= cfg.Drive.InputDeadzone &&
		math.Abs(steerTarget) <= cfg.Drive.InputDeadzone
	if idle {
		residual := gamemath.Horizontal(vel)
		force = force.Add(residual.Mul(-cfg.Drive.IdleDrag * mass))
	}

	if gamemath.IsFiniteVec(force) {
		body.ApplyForce(force)
	} else {
		g.Faultf("drive", int64(cfg.Sim.LogThrottle), "non-finite drive force skipped (tick %d)", g.Tick)
	}

	// --- Yaw torque channel ---
	agility := 1 + cfg.Drive.LowSpeedBoost*(1-gamemath.Clamp(math.Abs(current)/cfg.Drive.BoostFadeSpeed, 0, 1))
	desiredYaw := v.SmoothedSteer * cfg.Drive.MaxYawRate * agility
	yawRate := body.AngularVelocity().Y()
	torqueY := (desiredYaw - yawRate) * cfg.Drive.YawGain * inertia
	if idle {
		torqueY += -yawRate * cfg.Drive.IdleYawDrag * inertia
	}
	if gamemath.IsFinite(torqueY) {
		body.ApplyTorque(mgl64.Vec3{0, torqueY, 0})
	} else {
		g.Faultf("yaw", int64(cfg.Sim.LogThrottle), "non-finite yaw torque skipped (tick %d)", g.Tick)
	}
}
