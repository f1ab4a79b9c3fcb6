package main

import (
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/strafelabs/hovertank/arena"
	cfg "github.com/strafelabs/hovertank/config"
	"github.com/strafelabs/hovertank/sim"
	"github.com/strafelabs/hovertank/systems/factory"
)

func main() {
	arenaPath := flag.String("arena", "", "Arena TMX file (empty = built-in flat arena)")
	tickRate := flag.Int("tickrate", cfg.Sim.TickRate, "Simulation tick rate (steps per second)")
	bots := flag.Int("bots", 4, "Number of bot-driven vehicles")
	teams := flag.Int("teams", 2, "Number of teams to cycle bots across")
	seed := flag.Int64("seed", time.Now().UnixNano(), "RNG seed")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "hovertankd",
	})

	a, err := loadArena(*arenaPath)
	if err != nil {
		logger.Fatal("failed to load arena", "path", *arenaPath, "err", err)
	}

	s := sim.New(a, logger, *seed)

	weapons := []string{
		cfg.WeaponStandard, cfg.WeaponPiercing, cfg.WeaponExplosive,
		cfg.WeaponHoming, cfg.WeaponChain, cfg.WeaponScatter,
		cfg.WeaponCluster, cfg.WeaponBeam,
	}
	spawns := a.Spawns()
	var drivers []*botDriver
	for i := 0; i < *bots; i++ {
		sp := spawns[i%len(spawns)]
		team := i % *teams
		e := factory.CreateVehicle(s.World, team, weapons[i%len(weapons)], sp.Pos, sp.Yaw)
		drivers = append(drivers, newBotDriver(s, e, *seed+int64(i)))
	}
	s.PreFrame = func() {
		for _, d := range drivers {
			d.drive()
		}
	}

	loop := sim.NewGameLoop(s, *tickRate, logger)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("shutting down")
		loop.Stop()
	}()

	logger.Info("starting simulation",
		"bots", *bots, "teams", *teams, "tickRate", *tickRate, "seed", *seed)
	loop.Run()
}

func loadArena(path string) (*arena.Arena, error) {
	if path == "" {
		return defaultArena(), nil
	}
	dir, file := splitPath(path)
	return arena.Load(os.DirFS(dir), file)
}

func defaultArena() *arena.Arena {
	a := arena.New(200, 200)
	a.AddObstacle(-30, -30, 10, 10, 5)
	a.AddObstacle(30, 30, 10, 10, 5)
	a.AddObstacle(-30, 30, 8, 8, 1.5)
	a.AddObstacle(30, -30, 8, 8, 1.5)
	for i, sp := range [][3]float64{
		{-70, 0, -70}, {70, 0, 70}, {-70, 0, 70}, {70, 0, -70},
	} {
		yaw := float64(i) * 1.5707963267948966
		a.AddSpawn(spawnPos(a, sp[0], sp[2]), yaw)
	}
	return a
}

func spawnPos(a *arena.Arena, x, z float64) mgl64.Vec3 {
	y := a.GroundHeight(x, z) + cfg.Vehicle.RideHeight
	return mgl64.Vec3{x, y, z}
}

func splitPath(path string) (dir, file string) {
	dir, file = filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	return dir, file
}
