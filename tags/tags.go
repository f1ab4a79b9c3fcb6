package tags

import "github.com/yohamta/donburi"

var (
	Vehicle    = donburi.NewTag().SetName("Vehicle")
	Turret     = donburi.NewTag().SetName("Turret")
	Projectile = donburi.NewTag().SetName("Projectile")
	Wall       = donburi.NewTag().SetName("Wall")
)

// Resolv tag for arena footprint queries.
const ResolvObstacle = "obstacle"
