package components

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
)

// RespawnPhase sequences the forced reset: teleport, hold the body
// kinematic for a few physics steps so the teleport settles, then
// release it to dynamic. Tick-driven, never wall-clock.
type RespawnPhase int

const (
	RespawnNone RespawnPhase = iota
	RespawnWaiting
	RespawnHolding
)

// VehicleData is the per-vehicle simulation state outside of
// health/fuel/weapon, which have their own components.
type VehicleData struct {
	Team int

	RideHeight float64
	Alive      bool

	// Generation increments on every respawn. Scheduled callbacks capture
	// the generation they were created under and abandon themselves if the
	// vehicle has since died or respawned.
	Generation int64

	// Low-pass filtered input scalars.
	SmoothedThrottle float64
	SmoothedSteer    float64
	SmoothedTurret   float64

	// TurretYaw is the turret heading in world space, driven by turret
	// input or the auto-aim module.
	TurretYaw float64

	// Armor mitigation multiplier applied to incoming damage. 1 when no
	// armor bonus is active.
	ArmorFactor float64

	// Advisory invulnerability window after respawn. Presentation layers
	// may read it; the damage math does not.
	Invulnerable bool
	InvulnUntil  int64

	// Recoil is a decaying visual offset for the weapon pose.
	RecoilOffset float64
	recoilTween  *gween.Tween

	// Fall/stuck recovery.
	RecoveryGrace int
	Phase         RespawnPhase
	PhaseTicks    int
	SpawnPos      mgl64.Vec3
	SpawnYaw      float64

	// Obstacle-assist query cache.
	ObstacleTicks  int
	ObstacleHeight float64
	ObstacleFound  bool
}

var Vehicle = donburi.NewComponentType[VehicleData]()

// Kick starts a recoil offset that decays back to zero over dur seconds.
func (v *VehicleData) Kick(offset float64, dur float64) {
	v.recoilTween = gween.New(float32(offset), 0, float32(dur), ease.OutQuad)
	v.RecoilOffset = offset
}

// UpdateRecoil advances the recoil decay by dt seconds.
func (v *VehicleData) UpdateRecoil(dt float64) {
	if v.recoilTween == nil {
		return
	}
	val, done := v.recoilTween.Update(float32(dt))
	v.RecoilOffset = float64(val)
	if done {
		v.recoilTween = nil
		v.RecoilOffset = 0
	}
}
