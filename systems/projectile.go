package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"

	"github.com/strafelabs/hovertank/components"
	cfg "github.com/strafelabs/hovertank/config"
	"github.com/strafelabs/hovertank/gamemath"
	"github.com/strafelabs/hovertank/systems/factory"
)

// UpdateProjectiles polls every live round once per frame. Hit testing
// is distance-based rather than collision-event based: engine collision
// callbacks are not reliable for fast thin projectiles, so the round is
// flown and tested explicitly. Resolution is exclusive: the first
// branch that resolves disposes the round and returns.
func UpdateProjectiles(w donburi.World) {
	g := components.MustGame(w)
	dt := g.FrameDT

	// Snapshot the live rounds first: resolution removes entities and
	// cluster splits add them, neither is safe mid-iteration.
	var rounds []*donburi.Entry
	components.Projectile.Each(w, func(e *donburi.Entry) {
		rounds = append(rounds, e)
	})

	for _, e := range rounds {
		if !e.Valid() {
			continue
		}
		p := components.Projectile.Get(e)
		if p.Disposed {
			continue
		}
		tf := components.Transform.Get(e)

		flyProjectile(w, g, p, tf, dt)

		if p.Spec.Name == cfg.WeaponCluster && !p.IsChild && p.Traveled >= p.Spec.SplitDistance {
			splitCluster(w, g, p, tf)
			dispose(w, e, p)
			continue
		}

		resolveProjectile(w, g, e, p, tf)
	}
}

// flyProjectile advances the round: homing steer or ballistic drop, then
// translation.
func flyProjectile(w donburi.World, g *components.GameData, p *components.ProjectileData, tf *components.TransformData, dt float64) {
	if p.Spec.Name == cfg.WeaponHoming {
		// Blend current heading toward the nearest target, preserving speed.
		if _, targetPos, ok := NearestEnemy(w, p.OwnerTeam, tf.Position, p.Spec.SeekRange, p.HitTargets); ok {
			speed := p.Velocity.Len()
			if speed > 1e-6 {
				heading := p.Velocity.Mul(1 / speed)
				want := targetPos.Sub(tf.Position)
				if l := want.Len(); l > 1e-6 {
					want = want.Mul(1 / l)
					blended := heading.Mul(1 - p.Spec.SeekStrength).Add(want.Mul(p.Spec.SeekStrength))
					if bl := blended.Len(); bl > 1e-6 {
						p.Velocity = blended.Mul(speed / bl)
					}
				}
			}
		}
	} else {
		p.Velocity = p.Velocity.Add(mgl64.Vec3{0, -cfg.Combat.ProjectileGravity * dt, 0})
	}

	step := p.Velocity.Mul(dt)
	tf.Position = tf.Position.Add(step)
	p.Traveled += step.Len()
}

// splitCluster replaces the round with its children, fired outward
// around the current heading from the split point.
func splitCluster(w donburi.World, g *components.GameData, p *components.ProjectileData, tf *components.TransformData) {
	g.NotifyExplosion(tf.Position, 1.0)
	dir := p.Velocity
	if l := dir.Len(); l > 1e-6 {
		dir = dir.Mul(1 / l)
	} else {
		dir = mgl64.Vec3{0, 0, 1}
	}
	baseYaw := math.Atan2(dir.X(), dir.Z())
	basePitch := math.Asin(gamemath.Clamp(dir.Y(), -1, 1))
	for i := 0; i < p.Spec.SplitCount; i++ {
		frac := float64(i)/float64(p.Spec.SplitCount)*2 - 1 // -1..1 fan
		childDir := gamemath.DirFromYawPitch(baseYaw+frac*p.Spec.SplitSpread, basePitch)
		factory.CreateProjectile(w, p.Owner, p.OwnerTeam, p.Spec, tf.Position, childDir,
			p.Spec.Damage*p.Spec.ChildDamage, g.Tick, true)
	}
}

func resolveProjectile(w donburi.World, g *components.GameData, e *donburi.Entry, p *components.ProjectileData, tf *components.TransformData) {
	pos := tf.Position

	// 1. Deployable walls: point-in-oriented-box in the wall's frame.
	if wallEntry := wallAt(w, pos); wallEntry != nil {
		DealDamage(w, wallEntry, p.Damage, p.Owner)
		g.NotifyHit(pos, wallEntry)
		if p.Spec.Name == cfg.WeaponExplosive {
			explode(w, g, p, pos)
		}
		dispose(w, e, p)
		return
	}

	// 2. Vehicle and turret targets, by distance to center. Fixed hit
	// radii are robust against fast movement where mesh tests are not.
	var struck *donburi.Entry
	EachEnemy(w, p.OwnerTeam, func(t *donburi.Entry, tpos mgl64.Vec3, radius float64) {
		if struck != nil || p.AlreadyHit(t) {
			return
		}
		if tpos.Sub(pos).Len() <= radius {
			struck = t
		}
	})
	if struck != nil {
		if resolveHit(w, g, e, p, struck, pos) {
			return
		}
		// Piercing rounds fall through and keep flying.
	}

	// 3. Shallow-angle ricochet off the ground or the map-edge walls.
	if ricochet(g, p, tf) {
		return
	}

	// 4. Arena obstacles stop rounds outright.
	ground := g.Arena.GroundHeight(pos.X(), pos.Z())
	if pos.Y() <= ground {
		if p.Spec.Name == cfg.WeaponExplosive {
			explode(w, g, p, pos)
		}
		dispose(w, e, p)
		return
	}

	// 5. Bounds / lifetime expiry.
	if g.Tick-p.SpawnTick > p.TTL ||
		!g.Arena.Contains(pos, cfg.Combat.BoundsMargin) ||
		pos.Y() > cfg.Sim.WorldCeiling {
		dispose(w, e, p)
	}
}

// resolveHit applies the archetype's damage behavior against the struck
// target. It reports whether the round was consumed.
func resolveHit(w donburi.World, g *components.GameData, e *donburi.Entry, p *components.ProjectileData, target *donburi.Entry, pos mgl64.Vec3) bool {
	p.MarkHit(target)

	switch p.Spec.Name {
	case cfg.WeaponExplosive:
		explode(w, g, p, pos)
		dispose(w, e, p)
		return true

	case cfg.WeaponChain:
		chainHit(w, g, p, target, pos)
		dispose(w, e, p)
		return true

	case cfg.WeaponPiercing:
		DealDamage(w, target, p.Damage, p.Owner)
		g.NotifyHit(pos, target)
		p.Damage *= p.Spec.PierceDecay
		if p.Damage < p.Spec.PierceFloor {
			dispose(w, e, p)
			return true
		}
		return false // keeps flying through

	default:
		DealDamage(w, target, p.Damage, p.Owner)
		g.NotifyHit(pos, target)
		dispose(w, e, p)
		return true
	}
}

// explode damages every living enemy within the blast radius with linear
// falloff: full damage at the center, half at the edge.
func explode(w donburi.World, g *components.GameData, p *components.ProjectileData, center mgl64.Vec3) {
	radius := p.Spec.BlastRadius
	g.NotifyExplosion(center, radius)

	// Damaging can destroy turret entities, so collect before applying.
	type blastHit struct {
		target *donburi.Entry
		dist   float64
	}
	var hits []blastHit
	EachEnemy(w, p.OwnerTeam, func(t *donburi.Entry, tpos mgl64.Vec3, _ float64) {
		if d := tpos.Sub(center).Len(); d <= radius {
			hits = append(hits, blastHit{t, d})
		}
	})
	for _, h := range hits {
		falloff := 1 - 0.5*(h.dist/radius)
		DealDamage(w, h.target, p.Damage*falloff, p.Owner)
	}
}

// chainHit damages the struck target, then arcs to the nearest not-yet-
// hit enemy within chain range at 70% of the previous hop's damage,
// until the hop budget runs out or no target is in range.
func chainHit(w donburi.World, g *components.GameData, p *components.ProjectileData, first *donburi.Entry, pos mgl64.Vec3) {
	DealDamage(w, first, p.Damage, p.Owner)
	g.NotifyHit(pos, first)

	from := components.Transform.Get(first).Position
	damage := p.Damage
	for hop := 0; hop < p.Spec.ChainMaxHops; hop++ {
		next, nextPos, ok := NearestEnemy(w, p.OwnerTeam, from, p.Spec.ChainRange, p.HitTargets)
		if !ok {
			return
		}
		damage *= p.Spec.ChainDecay
		p.MarkHit(next)
		DealDamage(w, next, damage, p.Owner)
		g.NotifyHit(nextPos, next)
		from = nextPos
	}
}

// ricochet reflects the round off the ground or a map-edge wall when the
// incidence is shallow, at reduced speed, up to the bounce cap. Past the
// cap the round continues and expires normally.
func ricochet(g *components.GameData, p *components.ProjectileData, tf *components.TransformData) bool {
	if p.Ricochets >= cfg.Combat.MaxRicochets {
		return false
	}
	speed := p.Velocity.Len()
	if speed < 1e-6 {
		return false
	}

	// Ground graze.
	ground := g.Arena.GroundHeight(tf.Position.X(), tf.Position.Z())
	if tf.Position.Y()-ground <= cfg.Combat.RicochetMaxHeight && p.Velocity.Y() < 0 {
		incidence := math.Asin(-p.Velocity.Y() / speed)
		if incidence <= cfg.Combat.RicochetMaxAngle {
			p.Velocity = gamemath.Reflect(p.Velocity, mgl64.Vec3{0, 1, 0}).Mul(cfg.Combat.RicochetSpeed)
			p.Ricochets++
			return true
		}
	}

	// Map-edge wall graze.
	if normal, outside := g.Arena.BoundaryNormal(tf.Position); outside {
		toward := -p.Velocity.Dot(normal) // positive when flying outward
		if toward > 0 {
			incidence := math.Asin(gamemath.Clamp(toward/speed, 0, 1))
			if incidence <= cfg.Combat.RicochetMaxAngle {
				p.Velocity = gamemath.Reflect(p.Velocity, normal).Mul(cfg.Combat.RicochetSpeed)
				p.Ricochets++
				return true
			}
		}
	}
	return false
}

// wallAt returns the wall entry containing the point, if any.
func wallAt(w donburi.World, pos mgl64.Vec3) *donburi.Entry {
	var found *donburi.Entry
	components.Wall.Each(w, func(e *donburi.Entry) {
		if found != nil {
			return
		}
		wall := components.Wall.Get(e)
		center := components.Transform.Get(e).Position.Add(mgl64.Vec3{0, wall.RiseOffset, 0})
		if wall.ContainsPoint(center, pos) {
			found = e
		}
	})
	return found
}

// dispose removes a round exactly once.
func dispose(w donburi.World, e *donburi.Entry, p *components.ProjectileData) {
	if p.Disposed {
		return
	}
	p.Disposed = true
	w.Remove(e.Entity())
}
