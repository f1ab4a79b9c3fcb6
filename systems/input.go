package systems

import (
	"github.com/yohamta/donburi"

	"github.com/strafelabs/hovertank/components"
)

// LatchInput copies each vehicle's current input frame into the previous
// frame. Must run after every system that reads JustPressed/JustReleased.
func LatchInput(w donburi.World) {
	components.Input.Each(w, func(e *donburi.Entry) {
		components.Input.Get(e).Latch()
	})
}
