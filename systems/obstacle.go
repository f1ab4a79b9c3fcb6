package systems

import (
	"github.com/yohamta/donburi"

	"github.com/strafelabs/hovertank/components"
	cfg "github.com/strafelabs/hovertank/config"
	"github.com/strafelabs/hovertank/gamemath"
	"github.com/strafelabs/hovertank/physics"
)

// UpdateObstacleAssist refreshes each vehicle's cached forward
// obstruction query. Two rays cover curb-height and taller obstacles.
// The result is reused for a few ticks to bound query cost; hover and
// drive consume the cache on the same tick.
func UpdateObstacleAssist(w donburi.World) {
	g := components.MustGame(w)
	components.Vehicle.Each(w, func(e *donburi.Entry) {
		v := components.Vehicle.Get(e)
		body := components.Body.Get(e).Body
		if !v.Alive || body.MotionType() != physics.Dynamic {
			v.ObstacleFound = false
			return
		}

		if v.ObstacleTicks > 0 {
			v.ObstacleTicks--
			return
		}
		v.ObstacleTicks = cfg.Obstacle.CacheTicks

		fwd := gamemath.Horizontal(gamemath.Forward(body.Orientation()))
		if fwd.Len() < 1e-6 {
			v.ObstacleFound = false
			return
		}

		height, found := g.Arena.ObstructionHeight(
			body.Position(), fwd,
			cfg.Obstacle.RayLength,
			cfg.Obstacle.LowRayHeight,
			cfg.Obstacle.HighRayHeight,
		)
		v.ObstacleFound = found
		v.ObstacleHeight = height
	})
}
