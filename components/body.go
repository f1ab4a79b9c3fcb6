package components

import (
	"github.com/yohamta/donburi"

	"github.com/strafelabs/hovertank/physics"
)

// BodyData wraps the dynamics body adapter for an entity. The locomotion
// controller and the weapon system's recoil are its only writers.
type BodyData struct {
	Body physics.Body
}

var Body = donburi.NewComponentType[BodyData]()
