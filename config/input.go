package config

// ActionID represents a logical vehicle action.
type ActionID int

const (
	ActionNone ActionID = iota
	ActionForward
	ActionReverse
	ActionSteerLeft
	ActionSteerRight
	ActionTurretLeft
	ActionTurretRight
	ActionFire
	ActionModuleReload
	ActionModuleAutoAim
	ActionModuleEvasive
	ActionModuleWall
	ActionModuleJump
	ActionModuleArmor
	ActionCount // Must be last - used for array sizing
)
