package factory

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"

	"github.com/strafelabs/hovertank/archetypes"
	"github.com/strafelabs/hovertank/components"
	cfg "github.com/strafelabs/hovertank/config"
)

// CreateWall spawns a deployable barrier at pos facing yaw. It rises out
// of the ground and auto-expires unless destroyed first.
func CreateWall(w donburi.World, g *components.GameData, owner *donburi.Entry, pos mgl64.Vec3, yaw float64) *donburi.Entry {
	e := archetypes.Wall.Spawn(w)

	components.Transform.Set(e, &components.TransformData{
		Position: pos,
		Rotation: mgl64.QuatRotate(yaw, mgl64.Vec3{0, 1, 0}),
	})
	components.Health.Set(e, &components.HealthData{
		Current: cfg.Modules.WallHealth,
		Max:     cfg.Modules.WallHealth,
	})

	wall := &components.WallData{
		Owner:     owner,
		Yaw:       yaw,
		Half:      mgl64.Vec3{cfg.Modules.WallHalfW, cfg.Modules.WallHalfH, cfg.Modules.WallHalfD},
		SpawnTick: g.FrameTick,
	}
	wall.StartRise(cfg.Modules.WallHalfH*2, cfg.Modules.WallRise)
	components.Wall.Set(e, wall)

	wall.ExpireTimer = g.Scheduler.Schedule(int64(cfg.Modules.WallLife), func() {
		RetireWall(w, g, e)
	})
	return e
}

// RetireWall removes a wall, whether it expired, was destroyed, or was
// recycled by the cap. Safe to call on an already-removed entry.
func RetireWall(w donburi.World, g *components.GameData, e *donburi.Entry) {
	if e == nil || !e.Valid() {
		return
	}
	wall := components.Wall.Get(e)
	if wall != nil && wall.ExpireTimer != nil {
		wall.ExpireTimer.Cancel()
	}
	if tf := components.Transform.Get(e); tf != nil {
		g.NotifyExplosion(tf.Position, 1.5)
	}
	w.Remove(e.Entity())
}
