// Package physics defines the dynamics body contract the simulation core
// drives, plus a self-contained rigid body that satisfies it for the
// headless server and tests. A real engine body can be adapted to Body
// without touching any system code.
package physics

import "github.com/go-gl/mathgl/mgl64"

// MotionType selects how a body responds to forces.
type MotionType int

const (
	// Dynamic bodies integrate forces and impulses normally.
	Dynamic MotionType = iota
	// Kinematic bodies ignore forces; they move only via SetTargetTransform.
	// Used while a vehicle is held in place during the respawn sequence.
	Kinematic
)

// Body is the minimal rigid-body contract the core consumes. Forces
// accumulate until the owning stepper integrates them; impulses apply
// immediately to velocity.
type Body interface {
	ApplyForce(f mgl64.Vec3)
	ApplyForceAt(f, point mgl64.Vec3)
	ApplyImpulse(imp mgl64.Vec3)
	ApplyTorque(t mgl64.Vec3)
	ApplyAngularImpulse(imp mgl64.Vec3)

	LinearVelocity() mgl64.Vec3
	SetLinearVelocity(v mgl64.Vec3)
	AngularVelocity() mgl64.Vec3
	SetAngularVelocity(w mgl64.Vec3)

	Position() mgl64.Vec3
	Orientation() mgl64.Quat
	Mass() float64

	MotionType() MotionType
	SetMotionType(mt MotionType)

	// SetTargetTransform teleports the body. Only used during forced
	// respawn/reset, never during normal simulation.
	SetTargetTransform(pos mgl64.Vec3, rot mgl64.Quat)
}
