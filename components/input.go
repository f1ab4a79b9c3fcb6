package components

import (
	cfg "github.com/strafelabs/hovertank/config"
	"github.com/yohamta/donburi"
)

// ActionState represents the temporal state of an action.
type ActionState struct {
	Pressed      bool // Currently held down
	JustPressed  bool // Pressed this frame
	JustReleased bool // Released this frame
}

// InputData stores the current and previous frame's pressed state for
// all vehicle actions plus the continuous aim pitch coming from the
// camera. The core never parses raw device events; an input driver
// writes this component.
type InputData struct {
	Current  [cfg.ActionCount]bool
	Previous [cfg.ActionCount]bool

	// AimPitch is the weapon elevation in radians, positive upward,
	// independent of body tilt.
	AimPitch float64
}

var Input = donburi.NewComponentType[InputData]()

// Action returns the temporal state of one action.
func (in *InputData) Action(id cfg.ActionID) ActionState {
	return ActionState{
		Pressed:      in.Current[id],
		JustPressed:  in.Current[id] && !in.Previous[id],
		JustReleased: !in.Current[id] && in.Previous[id],
	}
}

// ThrottleTarget derives the raw throttle target in [-1, 1].
func (in *InputData) ThrottleTarget() float64 {
	t := 0.0
	if in.Current[cfg.ActionForward] {
		t += 1
	}
	if in.Current[cfg.ActionReverse] {
		t -= 1
	}
	return t
}

// SteerTarget derives the raw steer target in [-1, 1]. Positive steers
// toward +yaw.
func (in *InputData) SteerTarget() float64 {
	s := 0.0
	if in.Current[cfg.ActionSteerLeft] {
		s += 1
	}
	if in.Current[cfg.ActionSteerRight] {
		s -= 1
	}
	return s
}

// TurretTarget derives the raw turret-turn target in [-1, 1].
func (in *InputData) TurretTarget() float64 {
	s := 0.0
	if in.Current[cfg.ActionTurretLeft] {
		s += 1
	}
	if in.Current[cfg.ActionTurretRight] {
		s -= 1
	}
	return s
}

// Latch copies the current frame into the previous frame. Called once
// per frame after all systems have read the input.
func (in *InputData) Latch() {
	in.Previous = in.Current
}
