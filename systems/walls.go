package systems

import (
	"github.com/yohamta/donburi"

	"github.com/strafelabs/hovertank/components"
)

// UpdateWalls advances the rise-from-ground animation on deployed walls.
func UpdateWalls(w donburi.World) {
	g := components.MustGame(w)
	components.Wall.Each(w, func(e *donburi.Entry) {
		components.Wall.Get(e).UpdateRise(g.FrameDT)
	})
}
