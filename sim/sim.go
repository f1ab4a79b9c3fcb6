// Package sim wires the world together: the donburi world, the two
// system lists (physics-step and frame-update), body integration, and
// the tick clock. The stabilization controller always runs before
// integration, so it observes the previous step's resolved state.
package sim

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/yohamta/donburi"

	"github.com/strafelabs/hovertank/arena"
	"github.com/strafelabs/hovertank/components"
	cfg "github.com/strafelabs/hovertank/config"
	"github.com/strafelabs/hovertank/physics"
	"github.com/strafelabs/hovertank/systems"
	"github.com/strafelabs/hovertank/systems/factory"
)

// System is one per-tick update pass.
type System func(w donburi.World)

type namedSystem struct {
	name string
	fn   System
}

// Sim owns one simulated match.
type Sim struct {
	World donburi.World

	// PreFrame, when set, runs at the start of every frame update,
	// before any frame system. Input drivers hook in here.
	PreFrame func()

	game    *components.GameData
	physics []namedSystem
	frame   []namedSystem
}

// New creates an empty simulation over the given arena.
func New(a *arena.Arena, logger *log.Logger, seed int64) *Sim {
	w := donburi.NewWorld()
	factory.CreateGame(w, a, logger, seed)

	s := &Sim{
		World: w,
		game:  components.MustGame(w),
	}

	// Physics-step systems: controller passes that feed forces into the
	// bodies before integration.
	s.addPhysics("obstacle", systems.UpdateObstacleAssist)
	s.addPhysics("recovery", systems.UpdateRecovery)
	s.addPhysics("stabilization", systems.UpdateStabilization)
	s.addPhysics("locomotion", systems.UpdateLocomotion)

	// Frame-update systems: weapons, projectiles, modules, cosmetics.
	s.addFrame("modules", systems.UpdateModules)
	s.addFrame("fire", systems.UpdateFireControl)
	s.addFrame("projectiles", systems.UpdateProjectiles)
	s.addFrame("walls", systems.UpdateWalls)
	s.addFrame("cosmetics", systems.UpdateWeaponCosmetics)
	s.addFrame("input-latch", systems.LatchInput)

	return s
}

func (s *Sim) addPhysics(name string, fn System) {
	s.physics = append(s.physics, namedSystem{name, fn})
}

func (s *Sim) addFrame(name string, fn System) {
	s.frame = append(s.frame, namedSystem{name, fn})
}

// Game exposes the world singleton (hooks, clock, arena).
func (s *Sim) Game() *components.GameData { return s.game }

// Step advances one physics tick: fire due timers, run the controller
// systems, then integrate every vehicle body and mirror its transform.
func (s *Sim) Step() {
	g := s.game
	g.Tick++
	g.Scheduler.Advance(g.Tick)

	for _, sys := range s.physics {
		s.run(sys)
	}

	components.Vehicle.Each(s.World, func(e *donburi.Entry) {
		body := components.Body.Get(e).Body
		pos := body.Position()
		if rb, ok := body.(*physics.RigidBody); ok {
			ground := g.Arena.GroundHeight(pos.X(), pos.Z())
			rb.Integrate(g.DT, ground)
		}
		tf := components.Transform.Get(e)
		tf.Position = body.Position()
		tf.Rotation = body.Orientation()
	})
}

// Frame runs one frame-update pass. It may be invoked zero or more
// times between physics steps; hit testing tolerates either rate.
func (s *Sim) Frame() {
	s.game.FrameTick++
	if s.PreFrame != nil {
		s.PreFrame()
	}
	for _, sys := range s.frame {
		s.run(sys)
	}
}

// Tick runs one physics step followed by one frame update, the standard
// cadence for the headless server and tests.
func (s *Sim) Tick() {
	s.Step()
	s.Frame()
}

// run isolates a system pass: a panic in one system aborts that pass for
// the tick, logged with throttling, without halting the loop for the
// rest of the simulation.
func (s *Sim) run(sys namedSystem) {
	defer func() {
		if r := recover(); r != nil {
			s.game.Faultf("system:"+sys.name, int64(cfg.Sim.LogThrottle),
				"system %s panicked: %v", sys.name, fmt.Sprint(r))
		}
	}()
	sys.fn(s.World)
}
