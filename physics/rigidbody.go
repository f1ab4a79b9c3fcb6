package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// RigidBody is the reference Body implementation: semi-implicit Euler
// integration with a uniform scalar inertia. The vehicle never relies on
// engine-side collision response beyond the ground plane, so all
// interesting behavior comes from the controller forces.
type RigidBody struct {
	pos  mgl64.Vec3
	rot  mgl64.Quat
	vel  mgl64.Vec3
	angv mgl64.Vec3

	mass       float64
	invMass    float64
	inertia    float64
	invInertia float64

	forceAcc  mgl64.Vec3
	torqueAcc mgl64.Vec3

	gravity    float64
	linDamping float64
	angDamping float64

	motion MotionType
}

// NewRigidBody creates a dynamic body at pos with identity orientation.
// inertiaFactor scales the uniform rotational inertia relative to mass.
func NewRigidBody(pos mgl64.Vec3, mass, inertiaFactor, gravity float64) *RigidBody {
	inertia := mass * inertiaFactor
	return &RigidBody{
		pos:        pos,
		rot:        mgl64.QuatIdent(),
		mass:       mass,
		invMass:    1 / mass,
		inertia:    inertia,
		invInertia: 1 / inertia,
		gravity:    gravity,
		linDamping: 0.05,
		angDamping: 0.10,
		motion:     Dynamic,
	}
}

func (b *RigidBody) ApplyForce(f mgl64.Vec3) {
	if b.motion != Dynamic {
		return
	}
	b.forceAcc = b.forceAcc.Add(f)
}

func (b *RigidBody) ApplyForceAt(f, point mgl64.Vec3) {
	if b.motion != Dynamic {
		return
	}
	b.forceAcc = b.forceAcc.Add(f)
	b.torqueAcc = b.torqueAcc.Add(point.Sub(b.pos).Cross(f))
}

func (b *RigidBody) ApplyImpulse(imp mgl64.Vec3) {
	if b.motion != Dynamic {
		return
	}
	b.vel = b.vel.Add(imp.Mul(b.invMass))
}

func (b *RigidBody) ApplyTorque(t mgl64.Vec3) {
	if b.motion != Dynamic {
		return
	}
	b.torqueAcc = b.torqueAcc.Add(t)
}

func (b *RigidBody) ApplyAngularImpulse(imp mgl64.Vec3) {
	if b.motion != Dynamic {
		return
	}
	b.angv = b.angv.Add(imp.Mul(b.invInertia))
}

func (b *RigidBody) LinearVelocity() mgl64.Vec3     { return b.vel }
func (b *RigidBody) SetLinearVelocity(v mgl64.Vec3) { b.vel = v }
func (b *RigidBody) AngularVelocity() mgl64.Vec3    { return b.angv }
func (b *RigidBody) SetAngularVelocity(w mgl64.Vec3) {
	b.angv = w
}

func (b *RigidBody) Position() mgl64.Vec3    { return b.pos }
func (b *RigidBody) Orientation() mgl64.Quat { return b.rot }
func (b *RigidBody) Mass() float64           { return b.mass }

func (b *RigidBody) MotionType() MotionType { return b.motion }

func (b *RigidBody) SetMotionType(mt MotionType) {
	b.motion = mt
	if mt == Kinematic {
		b.vel = mgl64.Vec3{}
		b.angv = mgl64.Vec3{}
		b.forceAcc = mgl64.Vec3{}
		b.torqueAcc = mgl64.Vec3{}
	}
}

func (b *RigidBody) SetTargetTransform(pos mgl64.Vec3, rot mgl64.Quat) {
	b.pos = pos
	b.rot = rot.Normalize()
}

// Integrate advances the body by dt seconds and clears accumulated
// forces. groundY is the supporting ground height under the body; the
// body is kept above it with a dead stop (no restitution) so the hover
// spring, not the contact solver, produces the ride height.
func (b *RigidBody) Integrate(dt, groundY float64) {
	defer func() {
		b.forceAcc = mgl64.Vec3{}
		b.torqueAcc = mgl64.Vec3{}
	}()

	if b.motion != Dynamic || dt <= 0 {
		return
	}

	accel := b.forceAcc.Mul(b.invMass)
	accel = accel.Add(mgl64.Vec3{0, -b.gravity, 0})
	b.vel = b.vel.Add(accel.Mul(dt))
	b.vel = b.vel.Mul(1 / (1 + b.linDamping*dt))

	angAccel := b.torqueAcc.Mul(b.invInertia)
	b.angv = b.angv.Add(angAccel.Mul(dt))
	b.angv = b.angv.Mul(1 / (1 + b.angDamping*dt))

	b.pos = b.pos.Add(b.vel.Mul(dt))

	if w := b.angv.Len(); w > 1e-9 {
		dq := mgl64.QuatRotate(w*dt, b.angv.Mul(1/w))
		b.rot = dq.Mul(b.rot).Normalize()
	}

	// Ground plane contact.
	if b.pos.Y() < groundY {
		b.pos = mgl64.Vec3{b.pos.X(), groundY, b.pos.Z()}
		if b.vel.Y() < 0 {
			b.vel = mgl64.Vec3{b.vel.X(), 0, b.vel.Z()}
		}
	}

	// Velocity can go non-finite if a caller slipped a bad force past the
	// per-term guards; clamp rather than propagate.
	b.vel = sanitize(b.vel)
	b.angv = sanitize(b.angv)
}

func sanitize(v mgl64.Vec3) mgl64.Vec3 {
	for i := 0; i < 3; i++ {
		if math.IsNaN(v[i]) || math.IsInf(v[i], 0) {
			return mgl64.Vec3{}
		}
	}
	return v
}
