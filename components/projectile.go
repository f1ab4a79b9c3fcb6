package components

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"

	cfg "github.com/strafelabs/hovertank/config"
)

// ProjectileData is a transient ballistic entity. It is polled once per
// frame until it resolves, times out, or leaves the world envelope;
// disposal is exclusive and happens at most once.
type ProjectileData struct {
	Owner     *donburi.Entry
	OwnerTeam int

	Spec     cfg.WeaponSpec
	Velocity mgl64.Vec3
	Damage   float64

	Ricochets int
	SpawnTick int64
	TTL       int64

	// Traveled accumulates flight distance; cluster rounds split when it
	// passes Spec.SplitDistance.
	Traveled float64
	IsChild  bool // cluster children never split again

	// HitTargets records targets already damaged, so piercing and chain
	// rounds resolve each target at most once. Keyed on the versioned
	// entity id: donburi recycles entry pointers, a stale pointer may
	// alias a freshly created entity.
	HitTargets map[donburi.Entity]struct{}

	// Struck is the first resolved target, once any.
	Struck *donburi.Entry

	Disposed bool
}

var Projectile = donburi.NewComponentType[ProjectileData]()

// AlreadyHit reports whether target was previously damaged by this round.
func (p *ProjectileData) AlreadyHit(target *donburi.Entry) bool {
	_, ok := p.HitTargets[target.Entity()]
	return ok
}

// MarkHit records target as damaged.
func (p *ProjectileData) MarkHit(target *donburi.Entry) {
	if p.HitTargets == nil {
		p.HitTargets = make(map[donburi.Entity]struct{})
	}
	p.HitTargets[target.Entity()] = struct{}{}
	if p.Struck == nil {
		p.Struck = target
	}
}
