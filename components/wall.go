package components

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"

	"github.com/strafelabs/hovertank/sched"
)

// WallData is a deployable barrier spawned by the wall module. It blocks
// projectiles with a point-in-oriented-box test in its local frame and
// is destructible.
type WallData struct {
	Owner *donburi.Entry
	Yaw   float64

	// Half extents in the wall's local frame: width (X), height (Y),
	// thickness (Z).
	Half mgl64.Vec3

	SpawnTick   int64
	ExpireTimer *sched.Handle

	// RiseOffset animates the wall up out of the ground after spawn.
	RiseOffset float64
	riseTween  *gween.Tween
}

var Wall = donburi.NewComponentType[WallData]()

// StartRise begins the rise-from-ground animation over dur seconds.
func (w *WallData) StartRise(height float64, dur float64) {
	w.riseTween = gween.New(float32(-height), 0, float32(dur), ease.OutQuad)
	w.RiseOffset = -height
}

// UpdateRise advances the rise animation by dt seconds.
func (w *WallData) UpdateRise(dt float64) {
	if w.riseTween == nil {
		return
	}
	val, done := w.riseTween.Update(float32(dt))
	w.RiseOffset = float64(val)
	if done {
		w.riseTween = nil
		w.RiseOffset = 0
	}
}

// ContainsPoint tests a world-space point against the wall's oriented
// box by transforming it into the wall's local frame.
func (w *WallData) ContainsPoint(center, p mgl64.Vec3) bool {
	d := p.Sub(center)
	// Rotate by -yaw around Y to enter the local frame.
	sin, cos := math.Sincos(-w.Yaw)
	lx := d.X()*cos + d.Z()*sin
	lz := -d.X()*sin + d.Z()*cos
	ly := d.Y()
	return lx >= -w.Half.X() && lx <= w.Half.X() &&
		ly >= -w.Half.Y() && ly <= w.Half.Y() &&
		lz >= -w.Half.Z() && lz <= w.Half.Z()
}
