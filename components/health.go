package components

import "github.com/yohamta/donburi"

type HealthData struct {
	Current float64
	Max     float64
}

var Health = donburi.NewComponentType[HealthData]()

// Alive reports whether the entity has health left.
func (h *HealthData) Alive() bool { return h.Current > 0 }
