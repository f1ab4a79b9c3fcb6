package factory

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"

	"github.com/strafelabs/hovertank/archetypes"
	"github.com/strafelabs/hovertank/components"
	cfg "github.com/strafelabs/hovertank/config"
	"github.com/strafelabs/hovertank/physics"
)

// CreateVehicle spawns a hovering vehicle at pos facing yaw, with a
// fresh dynamics body and baseline stats.
func CreateVehicle(w donburi.World, team int, weapon string, pos mgl64.Vec3, yaw float64) *donburi.Entry {
	e := archetypes.Vehicle.Spawn(w)

	body := physics.NewRigidBody(pos, cfg.Vehicle.Mass, cfg.Vehicle.InertiaFactor, cfg.Sim.Gravity)
	rot := mgl64.QuatRotate(yaw, mgl64.Vec3{0, 1, 0})
	body.SetTargetTransform(pos, rot)

	components.Body.Set(e, &components.BodyData{Body: body})
	components.Transform.Set(e, &components.TransformData{Position: pos, Rotation: rot})
	components.Vehicle.Set(e, &components.VehicleData{
		Team:        team,
		RideHeight:  cfg.Vehicle.RideHeight,
		Alive:       true,
		ArmorFactor: 1.0,
		TurretYaw:   yaw,
		SpawnPos:    pos,
		SpawnYaw:    yaw,
	})
	components.Health.Set(e, &components.HealthData{
		Current: cfg.Vehicle.Health,
		Max:     cfg.Vehicle.Health,
	})
	components.Fuel.Set(e, &components.FuelData{
		Current: cfg.Vehicle.Fuel,
		Max:     cfg.Vehicle.Fuel,
		Drain:   cfg.Vehicle.FuelDrain,
	})

	spec, ok := cfg.Weapons[weapon]
	if !ok {
		spec = cfg.Weapons[cfg.WeaponStandard]
	}
	components.Weapon.Set(e, &components.WeaponData{
		Spec:          spec,
		LastShotTick:  math.MinInt64 / 2,
		CooldownScale: 1.0,
	})
	components.Input.Set(e, &components.InputData{})
	components.Modules.Set(e, &components.ModulesData{EvasiveDir: 1})

	return e
}
