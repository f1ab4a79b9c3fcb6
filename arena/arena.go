// Package arena implements the scene-query side of the simulation: a
// flat ground plane with axis-aligned obstacle blocks of varying height,
// world bounds, and spawn points. Obstacle footprints live in a resolv
// space for cheap broad-phase lookups; precise tests run against the
// stored extents.
package arena

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/solarlune/resolv"

	"github.com/strafelabs/hovertank/tags"
)

const cellSize = 4 // resolv cell size in meters

// Obstacle is one solid block on the ground plane.
type Obstacle struct {
	MinX, MinZ float64
	MaxX, MaxZ float64
	Height     float64 // top of the block above ground
}

// Spawn is a vehicle spawn point.
type Spawn struct {
	Pos mgl64.Vec3
	Yaw float64
}

// Hit is a raycast result.
type Hit struct {
	Point    mgl64.Vec3
	Obstacle *Obstacle
}

// Arena owns the static world the vehicles fight in.
type Arena struct {
	width  float64 // extent along X
	depth  float64 // extent along Z
	ground float64 // ground plane height

	space     *resolv.Space
	probe     *resolv.Object
	obstacles []*Obstacle
	spawns    []Spawn
}

// New creates an empty arena of the given extents centered on the origin.
func New(width, depth float64) *Arena {
	cw := int(math.Ceil(width/cellSize)) + 2
	cd := int(math.Ceil(depth/cellSize)) + 2
	a := &Arena{
		width: width,
		depth: depth,
		space: resolv.NewSpace(cw*cellSize, cd*cellSize, cellSize, cellSize),
	}
	a.probe = resolv.NewObject(0, 0, 0.5, 0.5)
	a.space.Add(a.probe)
	return a
}

// AddObstacle registers a solid block. x/z are the footprint minimum
// corner in world coordinates, w/d its extents, height its top.
func (a *Arena) AddObstacle(x, z, w, d, height float64) {
	o := &Obstacle{MinX: x, MinZ: z, MaxX: x + w, MaxZ: z + d, Height: height}
	a.obstacles = append(a.obstacles, o)

	obj := resolv.NewObject(a.toSpaceX(x), a.toSpaceZ(z), w, d, tags.ResolvObstacle)
	obj.Data = o
	a.space.Add(obj)
}

// AddSpawn registers a vehicle spawn point.
func (a *Arena) AddSpawn(pos mgl64.Vec3, yaw float64) {
	a.spawns = append(a.spawns, Spawn{Pos: pos, Yaw: yaw})
}

// Spawns returns the registered spawn points.
func (a *Arena) Spawns() []Spawn { return a.spawns }

// GroundHeight returns the supporting ground height at a world position:
// the ground plane, or the top of an obstacle whose footprint contains it.
func (a *Arena) GroundHeight(x, z float64) float64 {
	h := a.ground
	for _, o := range a.obstaclesNear(x, z) {
		if x >= o.MinX && x <= o.MaxX && z >= o.MinZ && z <= o.MaxZ && a.ground+o.Height > h {
			h = a.ground + o.Height
		}
	}
	return h
}

// Contains reports whether pos is inside the arena footprint expanded by
// margin on every side.
func (a *Arena) Contains(pos mgl64.Vec3, margin float64) bool {
	hw := a.width/2 + margin
	hd := a.depth/2 + margin
	return pos.X() >= -hw && pos.X() <= hw && pos.Z() >= -hd && pos.Z() <= hd
}

// Bounds returns the arena extents.
func (a *Arena) Bounds() (width, depth float64) { return a.width, a.depth }

// BoundaryNormal returns the inward normal of the nearest boundary wall
// if pos is outside the arena footprint, and false otherwise.
func (a *Arena) BoundaryNormal(pos mgl64.Vec3) (mgl64.Vec3, bool) {
	hw, hd := a.width/2, a.depth/2
	switch {
	case pos.X() < -hw:
		return mgl64.Vec3{1, 0, 0}, true
	case pos.X() > hw:
		return mgl64.Vec3{-1, 0, 0}, true
	case pos.Z() < -hd:
		return mgl64.Vec3{0, 0, 1}, true
	case pos.Z() > hd:
		return mgl64.Vec3{0, 0, -1}, true
	}
	return mgl64.Vec3{}, false
}

// Raycast marches from origin along dir (not required to be normalized)
// up to maxDist and returns the first obstacle intersection. The march
// step is half the broad-phase cell, which is ample for vehicle-scale
// queries; this is a game query, not a solver.
func (a *Arena) Raycast(origin, dir mgl64.Vec3, maxDist float64) (Hit, bool) {
	l := dir.Len()
	if l == 0 || maxDist <= 0 {
		return Hit{}, false
	}
	dir = dir.Mul(1 / l)

	const step = cellSize / 2.0
	for t := 0.0; t <= maxDist; t += step {
		p := origin.Add(dir.Mul(t))
		for _, o := range a.obstaclesNear(p.X(), p.Z()) {
			if p.X() >= o.MinX && p.X() <= o.MaxX &&
				p.Z() >= o.MinZ && p.Z() <= o.MaxZ &&
				p.Y() <= a.ground+o.Height {
				return Hit{Point: p, Obstacle: o}, true
			}
		}
	}
	return Hit{}, false
}

// ObstructionHeight casts the two climb-assist rays (low and raised) from
// origin along dir and returns the tallest obstruction top relative to
// the ground, or false when the path is clear.
func (a *Arena) ObstructionHeight(origin, dir mgl64.Vec3, length, lowY, highY float64) (float64, bool) {
	best := 0.0
	found := false
	for _, y := range [2]float64{lowY, highY} {
		from := mgl64.Vec3{origin.X(), a.ground + y, origin.Z()}
		if hit, ok := a.Raycast(from, mgl64.Vec3{dir.X(), 0, dir.Z()}, length); ok {
			if hit.Obstacle.Height > best {
				best = hit.Obstacle.Height
			}
			found = true
		}
	}
	return best, found
}

// obstaclesNear returns obstacles whose footprints share broad-phase
// cells with the given point.
func (a *Arena) obstaclesNear(x, z float64) []*Obstacle {
	a.probe.X = a.toSpaceX(x) - a.probe.W/2
	a.probe.Y = a.toSpaceZ(z) - a.probe.H/2
	a.probe.Update()

	check := a.probe.Check(0, 0, tags.ResolvObstacle)
	if check == nil {
		return nil
	}
	objs := check.ObjectsByTags(tags.ResolvObstacle)
	out := make([]*Obstacle, 0, len(objs))
	for _, obj := range objs {
		if o, ok := obj.Data.(*Obstacle); ok {
			out = append(out, o)
		}
	}
	return out
}

// resolv spaces are anchored at (0,0); the arena is centered on the
// origin, so footprints are shifted into space coordinates.
func (a *Arena) toSpaceX(x float64) float64 { return x + a.width/2 + cellSize }
func (a *Arena) toSpaceZ(z float64) float64 { return z + a.depth/2 + cellSize }
