package systems

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/strafelabs/hovertank/components"
	cfg "github.com/strafelabs/hovertank/config"
	"github.com/strafelabs/hovertank/gamemath"
)

func TestHoverSettlesAtRideHeight(t *testing.T) {
	w, g := newTestWorld()
	e := spawnVehicle(w, 0, cfg.WeaponStandard, mgl64.Vec3{0, 4, 0})
	body := vehicleBody(e)

	for i := 0; i < 600; i++ {
		stepVehicle(w, g)
	}

	height := body.Position().Y()
	if math.Abs(height-cfg.Vehicle.RideHeight) > 0.5 {
		t.Errorf("settled height = %v, want near %v", height, cfg.Vehicle.RideHeight)
	}
	if vy := math.Abs(body.LinearVelocity().Y()); vy > 0.5 {
		t.Errorf("vertical speed = %v after settling, want near 0", vy)
	}
}

func TestUprightRecoveryFromTilt(t *testing.T) {
	tilts := []struct {
		name  string
		angle float64
	}{
		{"slight", 0.2},
		{"moderate", 0.6},
		{"severe", 1.0},
		{"near critical", 1.3},
	}
	for _, tc := range tilts {
		t.Run(tc.name, func(t *testing.T) {
			w, g := newTestWorld()
			e := spawnVehicle(w, 0, cfg.WeaponStandard, mgl64.Vec3{0, 2, 0})
			body := vehicleBody(e)
			body.SetTargetTransform(mgl64.Vec3{0, 2, 0}, mgl64.QuatRotate(tc.angle, mgl64.Vec3{1, 0, 0}))

			for i := 0; i < 900; i++ {
				stepVehicle(w, g)
			}

			tilt := gamemath.TiltAngle(gamemath.Up(body.Orientation()))
			if tilt > 0.1 {
				t.Errorf("residual tilt = %v after recovery from %v, want < 0.1", tilt, tc.angle)
			}
		})
	}
}

func TestVerticalForceClamp(t *testing.T) {
	mass := cfg.Vehicle.Mass
	tests := []struct {
		name  string
		force float64
		vy    float64
		want  float64
	}{
		{"within limit", 1000, 0, 1000},
		{"over limit at rest", 1e9, 0, cfg.Hover.MaxForceFactor * mass},
		{"negative over limit", -1e9, 0, -cfg.Hover.MaxForceFactor * mass},
		{"strict limit at speed", 1e9, cfg.Hover.FastVySpeed + 1, cfg.Hover.FastForceFactor * mass},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clampVertical(tt.force, tt.vy, mass); got != tt.want {
				t.Errorf("clampVertical(%v, %v) = %v, want %v", tt.force, tt.vy, got, tt.want)
			}
		})
	}
}

func TestEmergencyLiftWhenInverted(t *testing.T) {
	w, g := newTestWorld()
	e := spawnVehicle(w, 0, cfg.WeaponStandard, mgl64.Vec3{0, 5, 0})
	body := vehicleBody(e)
	// Almost fully inverted: up.Y is far below the emergency threshold.
	body.SetTargetTransform(mgl64.Vec3{0, 5, 0}, mgl64.QuatRotate(3.0, mgl64.Vec3{1, 0, 0}))

	UpdateStabilization(w)
	body.Integrate(g.DT, 0)

	// Above ride height gravity would win outright; the emergency lift
	// must push the net vertical acceleration positive.
	if vy := body.LinearVelocity().Y(); vy <= 0 {
		t.Errorf("vertical velocity = %v under emergency lift, want positive", vy)
	}
}

func TestStabilizationSkipsDeadVehicles(t *testing.T) {
	w, g := newTestWorld()
	e := spawnVehicle(w, 0, cfg.WeaponStandard, mgl64.Vec3{0, 2, 0})
	body := vehicleBody(e)
	body.SetTargetTransform(mgl64.Vec3{0, 2, 0}, mgl64.QuatRotate(0.8, mgl64.Vec3{1, 0, 0}))
	components.Vehicle.Get(e).Alive = false

	UpdateStabilization(w)
	body.Integrate(g.DT, 0)

	if body.AngularVelocity().Len() != 0 {
		t.Error("correction torque applied to a dead vehicle")
	}
}

func TestObstacleAssistCacheRefresh(t *testing.T) {
	w, g := newTestWorld()
	g.Arena.AddObstacle(-2, 3, 4, 4, 1.0) // low block directly ahead
	e := spawnVehicle(w, 0, cfg.WeaponStandard, mgl64.Vec3{0, 2, 0})
	v := components.Vehicle.Get(e)

	UpdateObstacleAssist(w)
	if !v.ObstacleFound {
		t.Fatal("obstacle ahead not detected")
	}
	if v.ObstacleHeight != 1.0 {
		t.Errorf("cached obstruction height = %v, want 1", v.ObstacleHeight)
	}

	// The cache holds for CacheTicks updates before the next query.
	if v.ObstacleTicks != cfg.Obstacle.CacheTicks {
		t.Errorf("cache window = %d, want %d", v.ObstacleTicks, cfg.Obstacle.CacheTicks)
	}
}

func TestObstacleAssistLiftsWhileClimbing(t *testing.T) {
	w, g := newTestWorld()
	g.Arena.AddObstacle(-2, 3, 4, 4, 1.0)
	e := spawnVehicle(w, 0, cfg.WeaponStandard, mgl64.Vec3{0, 2, 0})
	v := components.Vehicle.Get(e)
	body := vehicleBody(e)

	UpdateObstacleAssist(w)
	v.SmoothedThrottle = 1 // climbing requires forward intent

	UpdateStabilization(w)
	body.Integrate(g.DT, 0)
	withAssist := body.LinearVelocity().Y()

	// Same setup without the assist cache.
	w2, g2 := newTestWorld()
	e2 := spawnVehicle(w2, 0, cfg.WeaponStandard, mgl64.Vec3{0, 2, 0})
	components.Vehicle.Get(e2).SmoothedThrottle = 1
	body2 := vehicleBody(e2)
	UpdateStabilization(w2)
	body2.Integrate(g2.DT, 0)

	if withAssist <= body2.LinearVelocity().Y() {
		t.Errorf("assist lift %v not greater than baseline %v", withAssist, body2.LinearVelocity().Y())
	}
}

func TestUprightTorqueBands(t *testing.T) {
	// At rest with zero angular velocity, the proportional term is the
	// only torque source, so angular velocity after one step tells
	// whether the controller engaged.
	tests := []struct {
		name   string
		angle  float64
		engage bool
	}{
		{"near level dead band", cfg.Stab.SlightTilt * 0.5, false},
		{"moderate tilt", 0.6, true},
		{"past recoverable band", cfg.Stab.RecoverableMax + 0.2, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, g := newTestWorld()
			e := spawnVehicle(w, 0, cfg.WeaponStandard, mgl64.Vec3{0, 2, 0})
			body := vehicleBody(e)
			body.SetTargetTransform(mgl64.Vec3{0, 2, 0}, mgl64.QuatRotate(tc.angle, mgl64.Vec3{1, 0, 0}))

			UpdateStabilization(w)
			body.Integrate(g.DT, 0)

			spinning := body.AngularVelocity().Len() > 1e-12
			if spinning != tc.engage {
				t.Errorf("correction engaged = %v at tilt %v, want %v", spinning, tc.angle, tc.engage)
			}
		})
	}
}
