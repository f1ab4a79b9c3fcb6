package components

import (
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"

	"github.com/strafelabs/hovertank/arena"
	"github.com/strafelabs/hovertank/sched"
)

// EffectsHook receives fire-and-forget presentation events. The core
// never reads state back from it.
type EffectsHook interface {
	CreateExplosion(pos mgl64.Vec3, radius float64)
	ShowHitMarker(target *donburi.Entry)
	PlayHit(pos mgl64.Vec3)
	PlayFire(pos mgl64.Vec3, weapon string)
}

// HUDHook receives per-change vehicle status updates.
type HUDHook interface {
	SetHealth(current, max float64)
	SetFuel(current, max float64)
}

// ScoreHook receives progression events.
type ScoreHook interface {
	RecordDamageDealt(amount float64)
	RecordKill()
}

// ShotEvent describes one successful fire for server-authoritative
// replication. The core invokes the callback and does not await anything.
type ShotEvent struct {
	Position  mgl64.Vec3
	Direction mgl64.Vec3
	AimPitch  float64
	Damage    float64
	WeaponID  string
	Tick      int64
}

// ShotCallback is invoked once per successful fire.
type ShotCallback func(ShotEvent)

// GameData is the per-world singleton every system reads: the tick
// clock, the arena, the timer scheduler, and the outward hooks. All hook
// fields may be nil; use the notify helpers.
type GameData struct {
	Tick      int64 // physics step counter
	FrameTick int64 // frame update counter
	DT        float64
	FrameDT   float64

	Arena     *arena.Arena
	Scheduler *sched.Scheduler
	Rand      *rand.Rand
	Log       *log.Logger

	Effects EffectsHook
	HUD     HUDHook
	Score   ScoreHook
	OnShot  ShotCallback

	// lastFault throttles repeated per-tick fault logging per site.
	lastFault map[string]int64
}

var Game = donburi.NewComponentType[GameData]()

// MustGame returns the singleton GameData, which factory.CreateGame must
// have spawned first.
func MustGame(w donburi.World) *GameData {
	e, ok := Game.First(w)
	if !ok {
		panic("game singleton not created")
	}
	return Game.Get(e)
}

// Faultf logs a per-tick fault at most once per throttle window per site,
// so a persistent degenerate state cannot storm the log.
func (g *GameData) Faultf(site string, throttle int64, format string, args ...any) {
	if g.lastFault == nil {
		g.lastFault = make(map[string]int64)
	}
	if last, ok := g.lastFault[site]; ok && g.Tick-last < throttle {
		return
	}
	g.lastFault[site] = g.Tick
	if g.Log != nil {
		g.Log.Errorf(format, args...)
	}
}

// NotifyExplosion, NotifyHit, NotifyFire, NotifyShot and the HUD/score
// helpers guard the nil-able hooks.
func (g *GameData) NotifyExplosion(pos mgl64.Vec3, radius float64) {
	if g.Effects != nil {
		g.Effects.CreateExplosion(pos, radius)
	}
}

func (g *GameData) NotifyHit(pos mgl64.Vec3, target *donburi.Entry) {
	if g.Effects != nil {
		g.Effects.PlayHit(pos)
		g.Effects.ShowHitMarker(target)
	}
}

func (g *GameData) NotifyFire(pos mgl64.Vec3, weapon string) {
	if g.Effects != nil {
		g.Effects.PlayFire(pos, weapon)
	}
}

func (g *GameData) NotifyShot(ev ShotEvent) {
	if g.OnShot != nil {
		g.OnShot(ev)
	}
}

func (g *GameData) NotifyHealth(current, max float64) {
	if g.HUD != nil {
		g.HUD.SetHealth(current, max)
	}
}

func (g *GameData) NotifyFuel(current, max float64) {
	if g.HUD != nil {
		g.HUD.SetFuel(current, max)
	}
}

func (g *GameData) RecordDamage(amount float64) {
	if g.Score != nil {
		g.Score.RecordDamageDealt(amount)
	}
}

func (g *GameData) RecordKill() {
	if g.Score != nil {
		g.Score.RecordKill()
	}
}
