package components

import (
	"github.com/yohamta/donburi"

	"github.com/strafelabs/hovertank/sched"
)

// ModuleKind identifies one of the six ability modules.
type ModuleKind int

const (
	ModuleRapidReload ModuleKind = iota
	ModuleAutoAim
	ModuleEvasive
	ModuleWall
	ModuleJump
	ModuleArmorBoost
	ModuleCount // Must be last - used for array sizing
)

func (k ModuleKind) String() string {
	switch k {
	case ModuleRapidReload:
		return "rapid-reload"
	case ModuleAutoAim:
		return "auto-aim"
	case ModuleEvasive:
		return "evasive"
	case ModuleWall:
		return "wall"
	case ModuleJump:
		return "jump"
	case ModuleArmorBoost:
		return "armor-boost"
	}
	return "unknown"
}

// ModuleState is the per-module state machine.
type ModuleState int

const (
	ModuleIdle ModuleState = iota
	ModuleActive
	ModuleCoolingDown
)

// Module tracks one ability's timed state. Exactly one timer (Deactivate
// for the active window, or the CooldownUntil deadline) governs each
// transition.
type Module struct {
	State         ModuleState
	ActivatedTick int64
	CooldownUntil int64
	Deactivate    *sched.Handle
}

// ModulesData holds all six module state machines plus the scratch state
// the active effects need between ticks.
type ModulesData struct {
	Mods [ModuleCount]Module

	// Charged jump.
	JumpCharging bool
	JumpCharge   float64 // ratio 0..1

	// Evasive maneuver lateral flip state.
	EvasiveDir      float64
	EvasiveLastFlip int64
}

var Modules = donburi.NewComponentType[ModulesData]()

// Get returns the state machine for kind.
func (m *ModulesData) Get(kind ModuleKind) *Module {
	return &m.Mods[kind]
}

// CanActivate reports whether kind may be (re)activated at tick: it must
// be idle and its cooldown must have elapsed. Attempting to activate an
// active or cooling module never touches its timers.
func (m *ModulesData) CanActivate(kind ModuleKind, tick int64) bool {
	mod := &m.Mods[kind]
	if mod.State == ModuleActive {
		return false
	}
	return tick >= mod.CooldownUntil
}

// Active reports whether kind is currently active.
func (m *ModulesData) Active(kind ModuleKind) bool {
	return m.Mods[kind].State == ModuleActive
}
