package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/pipes/ecs/entity"
)

func main() {
	seed := flag.Uint64("seed", 0, "walker seed (0 picks one from the clock)")
	policy := flag.String("policy", "", "walker policy: free or vertical (default from prefabs/generator.yaml)")
	size := flag.Float64("size", 0, "spawn cube side length (default from prefabs/generator.yaml)")
	interval := flag.Float64("interval", 0, "seconds between walker steps (default from prefabs/generator.yaml)")
	debug := flag.Bool("debug", false, "enable debug mode")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowTitle("pipes")

	var logger *log.Logger
	if *debug {
		logger = log.Default()
	}
	game, err := NewGame(entity.GeneratorOptions{
		Seed:     *seed,
		Policy:   *policy,
		Size:     *size,
		Interval: *interval,
		Logger:   logger,
	}, *debug)
	if err != nil {
		log.Fatalf("pipes: %v", err)
	}

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
