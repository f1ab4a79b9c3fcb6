package systems

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"

	"github.com/strafelabs/hovertank/arena"
	"github.com/strafelabs/hovertank/components"
	cfg "github.com/strafelabs/hovertank/config"
	"github.com/strafelabs/hovertank/physics"
	"github.com/strafelabs/hovertank/systems/factory"
)

// newTestWorld builds a world over a flat 200x200 arena with the game
// singleton spawned and a quiet logger.
func newTestWorld() (donburi.World, *components.GameData) {
	w := donburi.NewWorld()
	a := arena.New(200, 200)
	factory.CreateGame(w, a, log.New(io.Discard), 1)
	return w, components.MustGame(w)
}

// advance moves the simulation clock n ticks, firing due timers. It does
// not run any systems.
func advance(g *components.GameData, n int) {
	for i := 0; i < n; i++ {
		g.Tick++
		g.FrameTick++
		g.Scheduler.Advance(g.Tick)
	}
}

func spawnVehicle(w donburi.World, team int, weapon string, pos mgl64.Vec3) *donburi.Entry {
	return factory.CreateVehicle(w, team, weapon, pos, 0)
}

func vehicleBody(e *donburi.Entry) *physics.RigidBody {
	return components.Body.Get(e).Body.(*physics.RigidBody)
}

func countProjectiles(w donburi.World) int {
	n := 0
	components.Projectile.Each(w, func(*donburi.Entry) { n++ })
	return n
}

func countWalls(w donburi.World) int {
	n := 0
	components.Wall.Each(w, func(*donburi.Entry) { n++ })
	return n
}

func healthOf(e *donburi.Entry) float64 {
	return components.Health.Get(e).Current
}

// stepVehicle runs one physics tick for every vehicle: timers, the
// controller passes, then integration and transform mirroring.
func stepVehicle(w donburi.World, g *components.GameData) {
	g.Tick++
	g.Scheduler.Advance(g.Tick)
	UpdateObstacleAssist(w)
	UpdateRecovery(w)
	UpdateStabilization(w)
	UpdateLocomotion(w)
	components.Vehicle.Each(w, func(e *donburi.Entry) {
		body := components.Body.Get(e).Body
		if rb, ok := body.(*physics.RigidBody); ok {
			pos := rb.Position()
			rb.Integrate(g.DT, g.Arena.GroundHeight(pos.X(), pos.Z()))
		}
		tf := components.Transform.Get(e)
		tf.Position = body.Position()
		tf.Rotation = body.Orientation()
	})
}

func pressAction(e *donburi.Entry, id cfg.ActionID) {
	components.Input.Get(e).Current[id] = true
}

func releaseAction(e *donburi.Entry, id cfg.ActionID) {
	components.Input.Get(e).Current[id] = false
}
