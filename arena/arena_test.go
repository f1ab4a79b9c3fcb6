package arena

import (
	"math"
	"testing"
	"testing/fstest"

	"github.com/go-gl/mathgl/mgl64"
)

func newTestArena() *Arena {
	a := New(100, 100)
	// 10x10 block, 5m tall, spanning x in [10,20] and z in [-5,5].
	a.AddObstacle(10, -5, 10, 10, 5)
	return a
}

func TestGroundHeight(t *testing.T) {
	a := newTestArena()
	tests := []struct {
		name string
		x, z float64
		want float64
	}{
		{"open ground", 0, 0, 0},
		{"on obstacle", 15, 0, 5},
		{"obstacle edge", 10, 0, 5},
		{"just outside footprint", 9.4, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.GroundHeight(tt.x, tt.z); got != tt.want {
				t.Errorf("GroundHeight(%v, %v) = %v, want %v", tt.x, tt.z, got, tt.want)
			}
		})
	}
}

func TestContains(t *testing.T) {
	a := newTestArena()
	if !a.Contains(mgl64.Vec3{49, 0, -49}, 0) {
		t.Error("interior point reported outside")
	}
	if a.Contains(mgl64.Vec3{51, 0, 0}, 0) {
		t.Error("exterior point reported inside")
	}
	if !a.Contains(mgl64.Vec3{51, 0, 0}, 5) {
		t.Error("margin not applied")
	}
}

func TestBoundaryNormal(t *testing.T) {
	a := newTestArena()
	tests := []struct {
		name string
		pos  mgl64.Vec3
		want mgl64.Vec3
		ok   bool
	}{
		{"inside", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{}, false},
		{"past +X", mgl64.Vec3{60, 0, 0}, mgl64.Vec3{-1, 0, 0}, true},
		{"past -X", mgl64.Vec3{-60, 0, 0}, mgl64.Vec3{1, 0, 0}, true},
		{"past +Z", mgl64.Vec3{0, 0, 60}, mgl64.Vec3{0, 0, -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := a.BoundaryNormal(tt.pos)
			if ok != tt.ok || (ok && n != tt.want) {
				t.Errorf("BoundaryNormal(%v) = %v, %v; want %v, %v", tt.pos, n, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestRaycastHitsObstacle(t *testing.T) {
	a := newTestArena()
	hit, ok := a.Raycast(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{1, 0, 0}, 50)
	if !ok {
		t.Fatal("ray through the obstacle missed")
	}
	if hit.Obstacle == nil || hit.Obstacle.Height != 5 {
		t.Errorf("unexpected obstacle: %+v", hit.Obstacle)
	}
	if hit.Point.X() < 10 || hit.Point.X() > 20 {
		t.Errorf("hit point outside footprint: %v", hit.Point)
	}
}

func TestRaycastPassesOverObstacle(t *testing.T) {
	a := newTestArena()
	if _, ok := a.Raycast(mgl64.Vec3{0, 10, 0}, mgl64.Vec3{1, 0, 0}, 50); ok {
		t.Error("ray above the obstacle top reported a hit")
	}
}

func TestRaycastRespectsMaxDist(t *testing.T) {
	a := newTestArena()
	if _, ok := a.Raycast(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{1, 0, 0}, 5); ok {
		t.Error("hit reported beyond max distance")
	}
}

func TestRaycastDegenerate(t *testing.T) {
	a := newTestArena()
	if _, ok := a.Raycast(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{}, 50); ok {
		t.Error("zero direction produced a hit")
	}
	if _, ok := a.Raycast(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{1, 0, 0}, 0); ok {
		t.Error("zero max distance produced a hit")
	}
}

func TestObstructionHeight(t *testing.T) {
	a := newTestArena()
	origin := mgl64.Vec3{5, 2, 0}
	h, found := a.ObstructionHeight(origin, mgl64.Vec3{1, 0, 0}, 6, 0.4, 1.6)
	if !found {
		t.Fatal("obstruction ahead not detected")
	}
	if h != 5 {
		t.Errorf("obstruction height = %v, want 5", h)
	}

	// Facing away from the block the path is clear.
	if _, found := a.ObstructionHeight(origin, mgl64.Vec3{-1, 0, 0}, 4, 0.4, 1.6); found {
		t.Error("obstruction reported on a clear path")
	}
}

const testTMX = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" renderorder="right-down"
     width="40" height="40" tilewidth="16" tileheight="16" nextobjectid="4">
 <objectgroup id="2" name="Obstacles">
  <object id="1" x="320" y="320" width="64" height="64">
   <properties>
    <property name="height" type="float" value="3.5"/>
   </properties>
  </object>
 </objectgroup>
 <objectgroup id="3" name="Spawns">
  <object id="2" x="80" y="80">
   <properties>
    <property name="yaw" type="float" value="1.5"/>
   </properties>
  </object>
  <object id="3" x="560" y="560"/>
 </objectgroup>
</map>
`

func TestLoadTMX(t *testing.T) {
	fsys := fstest.MapFS{
		"maps/test.tmx": &fstest.MapFile{Data: []byte(testTMX)},
	}
	a, err := Load(fsys, "maps/test.tmx")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// 40 tiles * 16 px * 0.25 m/px = 160 m per side.
	w, d := a.Bounds()
	if w != 160 || d != 160 {
		t.Errorf("bounds = %v x %v, want 160 x 160", w, d)
	}

	// Obstacle at 320px,320px => 80m - 80m = 0m corner, 16m square, 3.5m tall.
	if got := a.GroundHeight(8, 8); got != 3.5 {
		t.Errorf("obstacle ground height = %v, want 3.5", got)
	}

	spawns := a.Spawns()
	if len(spawns) != 2 {
		t.Fatalf("spawn count = %d, want 2", len(spawns))
	}
	if spawns[0].Yaw != 1.5 {
		t.Errorf("spawn yaw = %v, want 1.5", spawns[0].Yaw)
	}
	if math.Abs(spawns[0].Pos.X()-(-60)) > 1e-9 {
		t.Errorf("spawn X = %v, want -60", spawns[0].Pos.X())
	}
}

func TestLoadUsesFallbackSpawn(t *testing.T) {
	const emptyTMX = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" renderorder="right-down"
     width="10" height="10" tilewidth="16" tileheight="16" nextobjectid="1">
</map>
`
	fsys := fstest.MapFS{"empty.tmx": &fstest.MapFile{Data: []byte(emptyTMX)}}
	a, err := Load(fsys, "empty.tmx")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(a.Spawns()) != 1 {
		t.Fatalf("fallback spawn missing, got %d spawns", len(a.Spawns()))
	}
}
