package factory

import (
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/yohamta/donburi"

	"github.com/strafelabs/hovertank/archetypes"
	"github.com/strafelabs/hovertank/arena"
	"github.com/strafelabs/hovertank/components"
	cfg "github.com/strafelabs/hovertank/config"
	"github.com/strafelabs/hovertank/sched"
)

// CreateGame spawns the per-world singleton holding the clock, arena,
// scheduler and hooks. Must be created before any other entity.
func CreateGame(w donburi.World, a *arena.Arena, logger *log.Logger, seed int64) *donburi.Entry {
	e := archetypes.Game.Spawn(w)
	components.Game.Set(e, &components.GameData{
		DT:        1.0 / float64(cfg.Sim.TickRate),
		FrameDT:   1.0 / float64(cfg.Sim.FrameRate),
		Arena:     a,
		Scheduler: sched.New(),
		Rand:      rand.New(rand.NewSource(seed)),
		Log:       logger,
	})
	return e
}
