package config

// All durations are in simulation ticks at TickRate unless noted.
// Distances are meters, masses kilograms, angles radians.

// SimConfig contains tick scheduling configuration.
type SimConfig struct {
	TickRate     int     // physics steps per second
	FrameRate    int     // projectile/module update passes per second
	Gravity      float64 // m/s^2
	LogThrottle  int     // min ticks between repeated fault log lines per site
	WorldCeiling float64 // expiry envelope above the arena
}

// VehicleConfig contains hovering vehicle baseline stats.
type VehicleConfig struct {
	Mass          float64
	InertiaFactor float64 // uniform inertia = Mass * InertiaFactor
	Height        float64 // hull height, used by obstacle assist
	RideHeight    float64 // target hover offset above ground

	Health float64
	Fuel   float64
	// FuelDrain is fuel units per second while throttle or steer is nonzero.
	FuelDrain float64
}

// HoverConfig tunes the vertical spring-damper.
type HoverConfig struct {
	Stiffness float64 // N per meter of ride-height error, per kg
	Damping   float64 // N per m/s vertical speed, per kg
	// MovingScale reduces both gains while translating horizontally so the
	// hover spring does not fight the drive force.
	MovingScale     float64
	MovingThreshold float64 // horizontal speed above which MovingScale applies

	// Vertical force clamp, stricter at higher vertical speeds.
	MaxForceFactor    float64 // clamp = Mass * MaxForceFactor at rest
	FastVySpeed       float64 // |vy| above which the strict clamp applies
	FastForceFactor   float64
	DescentDampFactor float64 // damping-only gain applied above ride height
}

// StabilizeConfig tunes the upright-correction PD controller.
type StabilizeConfig struct {
	Kp float64 // torque per radian of tilt, per unit inertia
	Kd float64 // torque per rad/s of angular velocity, per unit inertia

	// Severity tiers: tilt thresholds and the gain multiplier each adds.
	SlightTilt    float64
	ModerateTilt  float64
	SevereTilt    float64
	CriticalTilt  float64
	ModerateGain  float64
	SevereGain    float64
	CriticalGain  float64
	MovingDamp    float64 // global gain damp while moving forward
	MaxTorqueFrac float64 // torque clamp as a fraction of inertia

	// Emergency lift when the up vector's vertical component collapses.
	EmergencyUpY   float64
	EmergencyLift  float64 // extra upward force per kg
	RecoverableMax float64 // beyond this tilt, recovery takes over
}

// DriveConfig tunes locomotion.
type DriveConfig struct {
	MaxSpeed       float64 // m/s forward
	ReverseFactor  float64 // reverse speed fraction of MaxSpeed
	AccelGain      float64 // force per m/s of speed error, per kg
	DecelGain      float64 // higher gain when slowing down
	ThrottleLPF    float64 // throttle smoothing rate, units per second
	SteerLPF       float64 // steer smoothing rate (faster than throttle)
	TurretLPF      float64 // turret turn smoothing rate
	TurretRate     float64 // turret yaw speed at full input, rad/s
	MaxYawRate     float64 // rad/s at full steer
	YawGain        float64 // torque per rad/s of yaw-rate error, per unit inertia
	LowSpeedBoost  float64 // extra yaw-rate multiplier when stationary
	BoostFadeSpeed float64 // boost fades to 1 by this forward speed
	InputDeadzone  float64
	IdleDrag       float64 // residual velocity drag gain when inputs ~0
	IdleYawDrag    float64
}

// ObstacleConfig tunes the climb-assist raycasts.
type ObstacleConfig struct {
	LowRayHeight  float64 // catches curb-height obstacles
	HighRayHeight float64 // catches taller obstacles
	RayLength     float64
	CacheTicks    int     // query result reuse window
	LiftGain      float64 // upward force per kg, scaled by height ratio
	ForwardBoost  float64 // forward force per kg while climbing
}

// RecoveryConfig tunes fall/stuck detection and the respawn sequence.
type RecoveryConfig struct {
	InvertedUpY    float64 // up.Y below this counts as severely inverted
	StuckTilt      float64 // tilt above this with no motion counts as stuck
	StuckSpeedEps  float64
	GraceTicks     int // condition must persist this long
	KinematicHold  int // physics steps held kinematic after teleport
	RespawnDelay   int // ticks between death and teleport
	InvulnTicks    int // advisory invulnerability window after respawn
	SpawnDropHeight float64
}

// WeaponSpec describes one projectile archetype.
type WeaponSpec struct {
	Name     string
	Cooldown int     // ticks between shots
	Damage   float64 // base damage per projectile
	Speed    float64 // muzzle speed, m/s
	TTL      int     // projectile lifetime in ticks

	RecoilImpulse float64 // backward impulse per kg of firer
	RecoilTorque  float64 // pitch-up angular impulse
	MuzzleOffset  float64 // spawn distance ahead of the turret

	// Piercing
	PierceDecay float64 // damage retained per pierced target
	PierceFloor float64 // dispose below this damage

	// Explosive
	BlastRadius float64

	// Homing
	SeekRange    float64
	SeekStrength float64 // heading blend factor per tick

	// Chain
	ChainRange   float64
	ChainDecay   float64
	ChainMaxHops int

	// Scatter
	PelletCount  int
	SpreadRad    float64
	PelletDamage float64 // fraction of Damage per pellet

	// Cluster
	SplitDistance float64
	SplitCount    int
	SplitSpread   float64
	ChildDamage   float64 // fraction of Damage per child

	// Beam
	BeamRange float64
	BeamHeal  float64 // healing applied on friendly hit
}

// CombatConfig contains hit testing and ricochet tuning.
type CombatConfig struct {
	VehicleHitRadius float64
	TurretHitRadius  float64 // larger than vehicles, turret bases are big

	RicochetMaxHeight float64 // projectile must be this close to ground
	RicochetMaxAngle  float64 // incidence angle vs surface below this reflects
	RicochetSpeed     float64 // speed retained per bounce
	MaxRicochets      int

	ProjectileGravity float64 // ballistic drop, gentler than world gravity
	BoundsMargin      float64 // expiry envelope beyond the arena edge
}

// ModuleSpec describes one ability module's timing.
type ModuleSpec struct {
	Duration int // active window; 0 = instantaneous
	Cooldown int
}

// ModulesConfig contains per-module tuning.
type ModulesConfig struct {
	RapidReload ModuleSpec
	AutoAim     ModuleSpec
	Evasive     ModuleSpec
	Wall        ModuleSpec
	Jump        ModuleSpec
	ArmorBoost  ModuleSpec

	ReloadFactor float64 // weapon cooldown multiplier while rapid reload active

	AutoAimRate      float64 // max turret slew, rad/s
	AutoAimRange     float64
	AutoAimThreshold float64 // fire when aim error is inside this

	EvasiveImpulse float64 // lateral impulse per kg
	EvasiveRetreat float64 // retreating impulse per kg
	EvasiveFlip    int     // ticks between lateral direction flips
	EvasiveRange   float64 // only dodge while an enemy is this close

	WallHealth   float64
	WallCap      int // concurrent walls per vehicle
	WallLife     int
	WallRise     float64 // rise-from-ground animation seconds
	WallDistance float64 // spawn distance ahead of the vehicle
	WallHalfW    float64
	WallHalfH    float64
	WallHalfD    float64

	JumpChargeTime float64 // seconds held from 0 to full charge
	JumpBase       float64 // upward impulse per kg at zero charge
	JumpMaxScale   float64 // full-charge multiplier over JumpBase
	JumpFallLimit  float64 // refuse to charge when falling faster than this

	ArmorMitigation float64 // damage multiplier while armor boost active
}

// Config is the root simulation configuration.
type Config struct {
	Sim      SimConfig
	Vehicle  VehicleConfig
	Hover    HoverConfig
	Stab     StabilizeConfig
	Drive    DriveConfig
	Obstacle ObstacleConfig
	Recovery RecoveryConfig
	Combat   CombatConfig
	Modules  ModulesConfig
	Weapons  map[string]WeaponSpec
}

var C *Config
var Sim SimConfig
var Vehicle VehicleConfig
var Hover HoverConfig
var Stab StabilizeConfig
var Drive DriveConfig
var Obstacle ObstacleConfig
var Recovery RecoveryConfig
var Combat CombatConfig
var Modules ModulesConfig
var Weapons map[string]WeaponSpec

// Weapon archetype names.
const (
	WeaponStandard  = "standard"
	WeaponPiercing  = "piercing"
	WeaponExplosive = "explosive"
	WeaponHoming    = "homing"
	WeaponChain     = "chain"
	WeaponScatter   = "scatter"
	WeaponCluster   = "cluster"
	WeaponBeam      = "beam"
)

func init() {
	Sim = SimConfig{
		TickRate:     60,
		FrameRate:    60,
		Gravity:      9.81,
		LogThrottle:  300, // 5 seconds
		WorldCeiling: 200.0,
	}

	Vehicle = VehicleConfig{
		Mass:          1200.0,
		InertiaFactor: 2.5,
		Height:        2.2,
		RideHeight:    2.0,
		Health:        100.0,
		Fuel:          100.0,
		FuelDrain:     1.5,
	}

	Hover = HoverConfig{
		Stiffness:         30.0,
		Damping:           9.0,
		MovingScale:       0.55,
		MovingThreshold:   2.0,
		MaxForceFactor:    40.0,
		FastVySpeed:       6.0,
		FastForceFactor:   18.0,
		DescentDampFactor: 3.0,
	}

	Stab = StabilizeConfig{
		Kp:             9.0,
		Kd:             5.0,
		SlightTilt:     0.10, // ~6 degrees
		ModerateTilt:   0.35,
		SevereTilt:     0.80,
		CriticalTilt:   1.20,
		ModerateGain:   1.5,
		SevereGain:     2.4,
		CriticalGain:   3.5,
		MovingDamp:     0.6,
		MaxTorqueFrac:  30.0,
		EmergencyUpY:   0.35,
		EmergencyLift:  14.0,
		RecoverableMax: 2.6,
	}

	Drive = DriveConfig{
		MaxSpeed:       18.0,
		ReverseFactor:  0.5,
		AccelGain:      1.4,
		DecelGain:      2.6, // braking is crisper than launching
		ThrottleLPF:    2.5,
		SteerLPF:       6.0, // steer reacts faster than throttle
		TurretLPF:      8.0,
		TurretRate:     2.4,
		MaxYawRate:     1.8,
		YawGain:        6.0,
		LowSpeedBoost:  1.8,
		BoostFadeSpeed: 10.0,
		InputDeadzone:  0.05,
		IdleDrag:       2.2,
		IdleYawDrag:    4.0,
	}

	Obstacle = ObstacleConfig{
		LowRayHeight:  0.4,
		HighRayHeight: 1.6,
		RayLength:     4.0,
		CacheTicks:    5,
		LiftGain:      22.0,
		ForwardBoost:  6.0,
	}

	Recovery = RecoveryConfig{
		InvertedUpY:     -0.2,
		StuckTilt:       0.9,
		StuckSpeedEps:   0.15,
		GraceTicks:      120, // 2 seconds
		KinematicHold:   6,
		RespawnDelay:    180,
		InvulnTicks:     180, // 3 second advisory window
		SpawnDropHeight: 0.5,
	}

	Combat = CombatConfig{
		VehicleHitRadius:  2.4,
		TurretHitRadius:   3.2,
		RicochetMaxHeight: 0.8,
		RicochetMaxAngle:  0.35, // ~20 degrees of grazing incidence
		RicochetSpeed:     0.8,
		MaxRicochets:      3,
		ProjectileGravity: 2.5,
		BoundsMargin:      50.0,
	}

	Modules = ModulesConfig{
		RapidReload: ModuleSpec{Duration: 600, Cooldown: 900},
		AutoAim:     ModuleSpec{Duration: 600, Cooldown: 1200},
		Evasive:     ModuleSpec{Duration: 600, Cooldown: 720},
		Wall:        ModuleSpec{Duration: 0, Cooldown: 600},
		Jump:        ModuleSpec{Duration: 0, Cooldown: 300},
		ArmorBoost:  ModuleSpec{Duration: 600, Cooldown: 1200},

		ReloadFactor: 0.5,

		AutoAimRate:      3.0,
		AutoAimRange:     80.0,
		AutoAimThreshold: 0.06,

		EvasiveImpulse: 5.5,
		EvasiveRetreat: 2.0,
		EvasiveFlip:    30,
		EvasiveRange:   60.0,

		WallHealth:   100.0,
		WallCap:      3,
		WallLife:     600,
		WallRise:     0.6,
		WallDistance: 6.0,
		WallHalfW:    4.0,
		WallHalfH:    2.5,
		WallHalfD:    0.5,

		JumpChargeTime: 10.0,
		JumpBase:       6.0,
		JumpMaxScale:   25.0,
		JumpFallLimit:  -1.5,

		ArmorMitigation: 0.5,
	}

	Weapons = map[string]WeaponSpec{
		WeaponStandard: {
			Name:          WeaponStandard,
			Cooldown:      45,
			Damage:        20.0,
			Speed:         60.0,
			TTL:           360, // 6 seconds
			RecoilImpulse: 1.2,
			RecoilTorque:  0.4,
			MuzzleOffset:  3.0,
		},
		WeaponPiercing: {
			Name:          WeaponPiercing,
			Cooldown:      60,
			Damage:        26.0,
			Speed:         80.0,
			TTL:           360,
			RecoilImpulse: 1.6,
			RecoilTorque:  0.5,
			MuzzleOffset:  3.0,
			PierceDecay:   0.7, // 30% damage shed per target
			PierceFloor:   4.0,
		},
		WeaponExplosive: {
			Name:          WeaponExplosive,
			Cooldown:      90,
			Damage:        35.0,
			Speed:         45.0,
			TTL:           360,
			RecoilImpulse: 2.4,
			RecoilTorque:  0.8,
			MuzzleOffset:  3.0,
			BlastRadius:   8.0,
		},
		WeaponHoming: {
			Name:          WeaponHoming,
			Cooldown:      75,
			Damage:        18.0,
			Speed:         40.0,
			TTL:           360,
			RecoilImpulse: 1.0,
			RecoilTorque:  0.3,
			MuzzleOffset:  3.0,
			SeekRange:     70.0,
			SeekStrength:  0.08,
		},
		WeaponChain: {
			Name:          WeaponChain,
			Cooldown:      80,
			Damage:        22.0,
			Speed:         55.0,
			TTL:           360,
			RecoilImpulse: 1.2,
			RecoilTorque:  0.4,
			MuzzleOffset:  3.0,
			ChainRange:    15.0,
			ChainDecay:    0.7,
			ChainMaxHops:  4,
		},
		WeaponScatter: {
			Name:          WeaponScatter,
			Cooldown:      70,
			Damage:        24.0,
			Speed:         50.0,
			TTL:           240,
			RecoilImpulse: 2.0,
			RecoilTorque:  0.6,
			MuzzleOffset:  3.0,
			PelletCount:   6,
			SpreadRad:     0.12,
			PelletDamage:  0.3,
		},
		WeaponCluster: {
			Name:          WeaponCluster,
			Cooldown:      100,
			Damage:        30.0,
			Speed:         48.0,
			TTL:           360,
			RecoilImpulse: 1.8,
			RecoilTorque:  0.6,
			MuzzleOffset:  3.0,
			SplitDistance: 25.0,
			SplitCount:    5,
			SplitSpread:   0.35,
			ChildDamage:   0.4,
		},
		WeaponBeam: {
			Name:          WeaponBeam,
			Cooldown:      50,
			Damage:        12.0,
			Speed:         0,
			TTL:           0,
			RecoilImpulse: 0.3,
			RecoilTorque:  0.1,
			MuzzleOffset:  3.0,
			BeamRange:     90.0,
			BeamHeal:      10.0,
		},
	}

	C = &Config{
		Sim:      Sim,
		Vehicle:  Vehicle,
		Hover:    Hover,
		Stab:     Stab,
		Drive:    Drive,
		Obstacle: Obstacle,
		Recovery: Recovery,
		Combat:   Combat,
		Modules:  Modules,
		Weapons:  Weapons,
	}
}
