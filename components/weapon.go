package components

import (
	"github.com/yohamta/donburi"

	cfg "github.com/strafelabs/hovertank/config"
	"github.com/strafelabs/hovertank/sched"
)

// WeaponData tracks the firing state of a vehicle's main weapon.
type WeaponData struct {
	Spec cfg.WeaponSpec

	LastShotTick int64
	Reloading    bool
	ReloadTimer  *sched.Handle

	// CooldownScale is mutated by the rapid-reload module; 1 at baseline.
	CooldownScale float64
}

var Weapon = donburi.NewComponentType[WeaponData]()

// CooldownTicks returns the effective cooldown under the current scale.
func (w *WeaponData) CooldownTicks() int64 {
	return int64(float64(w.Spec.Cooldown) * w.CooldownScale)
}

// Ready reports whether the cooldown has elapsed at the given tick.
// LastShotTick starts far in the past so the first shot always succeeds.
func (w *WeaponData) Ready(tick int64) bool {
	if w.Reloading {
		return false
	}
	return tick-w.LastShotTick >= w.CooldownTicks()
}
