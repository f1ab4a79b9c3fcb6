package components

import "github.com/yohamta/donburi"

// FuelData gates locomotion: at zero fuel, smoothed throttle/steer are
// forced to zero until refueled.
type FuelData struct {
	Current float64
	Max     float64
	Drain   float64 // units per second while inputs are nonzero
}

var Fuel = donburi.NewComponentType[FuelData]()

func (f *FuelData) Empty() bool { return f.Current <= 0 }

// Refuel adds fuel, clamped at Max.
func (f *FuelData) Refuel(amount float64) {
	f.Current += amount
	if f.Current > f.Max {
		f.Current = f.Max
	}
}
