package systems

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"

	"github.com/strafelabs/hovertank/components"
	cfg "github.com/strafelabs/hovertank/config"
	"github.com/strafelabs/hovertank/gamemath"
	"github.com/strafelabs/hovertank/physics"
)

// UpdateRecovery advances the tick-driven respawn sequence and watches
// for vehicles that ended up inverted or wedged. A grace timer filters
// transient states; past it the vehicle is force-reset to its spawn pose.
func UpdateRecovery(w donburi.World) {
	g := components.MustGame(w)
	components.Vehicle.Each(w, func(e *donburi.Entry) {
		v := components.Vehicle.Get(e)
		body := components.Body.Get(e).Body

		// Advisory invulnerability window expiry.
		v.Invulnerable = g.Tick < v.InvulnUntil

		switch v.Phase {
		case components.RespawnHolding:
			v.PhaseTicks--
			if v.PhaseTicks <= 0 {
				body.SetMotionType(physics.Dynamic)
				v.Phase = components.RespawnNone
			}
			return
		case components.RespawnWaiting:
			return
		}

		if !v.Alive {
			return
		}

		up := gamemath.Up(body.Orientation())
		tilt := gamemath.TiltAngle(up)
		slow := body.LinearVelocity().Len() < cfg.Recovery.StuckSpeedEps &&
			body.AngularVelocity().Len() < cfg.Recovery.StuckSpeedEps

		inverted := up.Y() < cfg.Recovery.InvertedUpY
		stuck := tilt > cfg.Recovery.StuckTilt && slow

		if inverted || stuck {
			v.RecoveryGrace++
		} else if v.RecoveryGrace > 0 {
			v.RecoveryGrace--
		}

		if v.RecoveryGrace > cfg.Recovery.GraceTicks {
			v.RecoveryGrace = 0
			g.Log.Warn("force reset", "tilt", tilt, "inverted", inverted)
			teleportHold(v, body, physicsSpawnPos(g, v))
		}
	})
}

// physicsSpawnPos places the vehicle slightly above its hover height so
// it settles onto the cushion instead of clipping the ground.
func physicsSpawnPos(g *components.GameData, v *components.VehicleData) mgl64.Vec3 {
	ground := g.Arena.GroundHeight(v.SpawnPos.X(), v.SpawnPos.Z())
	return mgl64.Vec3{
		v.SpawnPos.X(),
		ground + v.RideHeight + cfg.Recovery.SpawnDropHeight,
		v.SpawnPos.Z(),
	}
}

// teleportHold freezes the body, teleports it, and holds it kinematic
// for a fixed number of physics steps before releasing it to dynamic.
// Tick counts, not wall-clock delays, drive the sequence.
func teleportHold(v *components.VehicleData, body physics.Body, pos mgl64.Vec3) {
	body.SetLinearVelocity(mgl64.Vec3{})
	body.SetAngularVelocity(mgl64.Vec3{})
	body.SetTargetTransform(pos, mgl64.QuatRotate(v.SpawnYaw, mgl64.Vec3{0, 1, 0}))
	body.SetMotionType(physics.Kinematic)
	v.Phase = components.RespawnHolding
	v.PhaseTicks = cfg.Recovery.KinematicHold
}
