package components

import "github.com/yohamta/donburi"

// TurretData marks a stationary emplacement target. Turrets have a
// larger hit radius than vehicles and no locomotion.
type TurretData struct {
	Team int
}

var Turret = donburi.NewComponentType[TurretData]()
