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

// UpdateStabilization is the closed-loop part of the locomotion
// controller: hover spring, upright correction, emergency lift and the
// obstacle climb assist's vertical share. It runs once per physics step,
// before integration, so it always observes the previous step's resolved
// state. All vertical contributions accumulate into one force call and
// all tilt contributions into one torque call.
func UpdateStabilization(w donburi.World) {
	g := components.MustGame(w)
	components.Vehicle.Each(w, func(e *donburi.Entry) {
		v := components.Vehicle.Get(e)
		body := components.Body.Get(e).Body
		if !v.Alive || v.Phase != components.RespawnNone || body.MotionType() != physics.Dynamic {
			return
		}
		stabilize(g, v, body)
	})
}

func stabilize(g *components.GameData, v *components.VehicleData, body physics.Body) {
	pos := body.Position()
	vel := body.LinearVelocity()
	rot := body.Orientation()
	angv := body.AngularVelocity()
	mass := body.Mass()
	inertia := mass * cfg.Vehicle.InertiaFactor

	up := gamemath.Up(rot)
	horizSpeed := gamemath.HorizontalSpeed(vel)

	// --- Vertical channel ---
	vertical := hoverForce(g, v, pos, vel, mass, horizSpeed)

	// Emergency lift when the vehicle is nearly sideways or inverted.
	if up.Y() < cfg.Stab.EmergencyUpY {
		vertical += cfg.Stab.EmergencyLift * mass
	}

	// Obstacle climb assist shares the vertical channel and its clamp
	// with the hover spring, so the two can never stack past the cap.
	if v.ObstacleFound && v.ObstacleHeight <= cfg.Vehicle.Height && v.SmoothedThrottle > 0.1 {
		ratio := v.ObstacleHeight / cfg.Vehicle.Height
		vertical += cfg.Obstacle.LiftGain * mass * ratio
	}

	vertical = clampVertical(vertical, vel.Y(), mass)
	if gamemath.IsFinite(vertical) && vertical != 0 {
		body.ApplyForce(mgl64.Vec3{0, vertical, 0})
	} else if !gamemath.IsFinite(vertical) {
		g.Faultf("hover", int64(cfg.Sim.LogThrottle), "non-finite hover force skipped (tick %d)", g.Tick)
	}

	// --- Correctional torque channel ---
	torque := uprightTorque(up, angv, inertia, vel, rot)
	if gamemath.IsFiniteVec(torque) {
		body.ApplyTorque(torque)
	} else {
		g.Faultf("upright", int64(cfg.Sim.LogThrottle), "non-finite correction torque skipped (tick %d)", g.Tick)
	}
}

// hoverForce computes the spring-damper share of the vertical channel.
func hoverForce(g *components.GameData, v *components.VehicleData, pos, vel mgl64.Vec3, mass, horizSpeed float64) float64 {
	ground := g.Arena.GroundHeight(pos.X(), pos.Z())
	height := pos.Y() - ground
	deltaY := v.RideHeight - height
	vy := vel.Y()

	if deltaY <= 0 {
		// Above ride height: damp only, never pull the vehicle down with
		// a spring, so it falls back naturally instead of flying.
		return -cfg.Hover.DescentDampFactor * vy * mass
	}

	k := cfg.Hover.Stiffness
	c := cfg.Hover.Damping
	if horizSpeed > cfg.Hover.MovingThreshold {
		// Softer while translating: a stiff spring fighting the drive
		// force produces visible jitter.
		k *= cfg.Hover.MovingScale
		c *= cfg.Hover.MovingScale
	}
	return (k*deltaY - c*vy) * mass
}

// clampVertical bounds the vertical force, stricter at higher vertical
// speeds so the controller cannot pump energy into the body.
func clampVertical(force, vy, mass float64) float64 {
	limit := cfg.Hover.MaxForceFactor * mass
	if math.Abs(vy) > cfg.Hover.FastVySpeed {
		limit = cfg.Hover.FastForceFactor * mass
	}
	return gamemath.ClampSpeed(force, limit)
}

// uprightTorque builds the single PD correction torque for both tilt
// axes. Gains scale up through severity tiers and are damped while the
// vehicle translates forward, because aggressive correction at speed
// reads as shaking.
func uprightTorque(up, angv mgl64.Vec3, inertia float64, vel mgl64.Vec3, rot mgl64.Quat) mgl64.Vec3 {
	tiltX, tiltZ := gamemath.TiltAngles(up)
	tilt := gamemath.TiltAngle(up)
	if tilt < 1e-4 && angv.X() == 0 && angv.Z() == 0 {
		return mgl64.Vec3{}
	}

	gain := 1.0
	switch {
	case tilt >= cfg.Stab.RecoverableMax:
		// Past the recoverable band the PD torque cannot right the
		// hull; the stuck/inverted reset takes over. Damping only.
		gain = 0
	case tilt >= cfg.Stab.CriticalTilt:
		gain = cfg.Stab.CriticalGain
	case tilt >= cfg.Stab.SevereTilt:
		gain = cfg.Stab.SevereGain
	case tilt >= cfg.Stab.ModerateTilt:
		gain = cfg.Stab.ModerateGain
	case tilt < cfg.Stab.SlightTilt:
		// Near-level dead band: a proportional term here shimmers
		// around the setpoint. Damping only.
		gain = 0
	}

	forwardSpeed := vel.Dot(gamemath.Forward(rot))
	if forwardSpeed > cfg.Hover.MovingThreshold {
		gain *= cfg.Stab.MovingDamp
	}

	kp := cfg.Stab.Kp * gain * inertia
	kd := cfg.Stab.Kd * inertia

	torque := mgl64.Vec3{
		-tiltX*kp - angv.X()*kd,
		0,
		-tiltZ*kp - angv.Z()*kd,
	}
	return gamemath.ClampVecLen(torque, cfg.Stab.MaxTorqueFrac*inertia)
}
