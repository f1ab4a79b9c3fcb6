package sim

import (
	"time"

	"github.com/charmbracelet/log"
)

// GameLoop drives a Sim at a fixed tick rate on a real-time clock.
type GameLoop struct {
	sim      *Sim
	tickRate int
	running  bool
	stopChan chan struct{}
	log      *log.Logger
}

func NewGameLoop(s *Sim, tickRate int, logger *log.Logger) *GameLoop {
	return &GameLoop{
		sim:      s,
		tickRate: tickRate,
		stopChan: make(chan struct{}),
		log:      logger,
	}
}

// Run blocks until Stop is called. Missed ticks are not replayed; the
// simulation clock only advances when the loop fires.
func (g *GameLoop) Run() {
	g.running = true
	ticker := time.NewTicker(time.Second / time.Duration(g.tickRate))
	defer ticker.Stop()

	if g.log != nil {
		g.log.Info("game loop started", "tickRate", g.tickRate)
	}

	for {
		select {
		case <-g.stopChan:
			g.running = false
			if g.log != nil {
				g.log.Info("game loop stopped")
			}
			return
		case <-ticker.C:
			g.sim.Tick()
		}
	}
}

func (g *GameLoop) Stop() {
	close(g.stopChan)
}
