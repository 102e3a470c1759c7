package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/pkg/profile"

	"github.com/colon-crab-colon/game/internal/clock"
	"github.com/colon-crab-colon/game/internal/config"
	"github.com/colon-crab-colon/game/internal/gui"
	"github.com/colon-crab-colon/game/internal/input"
	"github.com/colon-crab-colon/game/internal/logger"
	"github.com/colon-crab-colon/game/internal/physics"
	"github.com/colon-crab-colon/game/internal/renderer"
	"github.com/colon-crab-colon/game/internal/scheduler"
	"github.com/colon-crab-colon/game/internal/worldgen"
	"github.com/colon-crab-colon/game/internal/worldstate"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func main() {
	configPath := flag.String("config", "", "engine config file (default "+config.DefaultPath+")")
	profileMode := flag.String("profile", "", "write a profile: cpu or mem")
	flag.Parse()

	switch *profileMode {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	}

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg := config.Load(configPath)
	log, ring := logger.New(cfg.LogPath, slog.LevelInfo)

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Info("engine starting", "seed", seed, "fixed_dt", cfg.FixedDt)

	rend, err := renderer.Open(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height, log)
	if err != nil {
		return err
	}
	defer rend.Close()

	world := physics.NewWorld(physics.Config{
		Gravity: physics.DefaultConfig().Gravity,
		FixedDt: float32(cfg.FixedDt),
	}, log)

	genOpts := worldgen.DefaultOptions(seed)
	for _, def := range worldgen.Terrain(genOpts) {
		if _, err := world.Spawn(def); err != nil {
			log.Warn("terrain tile dropped", "err", err)
		}
	}
	for _, def := range worldgen.CubeRain(genOpts) {
		if _, err := world.Spawn(def); err != nil {
			log.Warn("cube dropped", "err", err)
		}
	}

	sched := scheduler.New(scheduler.Options{
		Log:      log,
		Clock:    clock.New(cfg.FixedDt, cfg.MaxStepsPerFrame),
		World:    world,
		State:    worldstate.NewState(),
		Renderer: rend,
		Sampler:  input.NewSampler(),
		Camera:   rend.Camera(),
		Ring:     ring,
		Gui:      gui.State{ShowOverlay: cfg.Overlay},
	})

	for !sched.Done() {
		if err := sched.RunFrame(float64(rl.GetFrameTime())); err != nil {
			return err
		}
	}

	log.Info("engine stopped", "ticks", world.Tick())
	return nil
}
