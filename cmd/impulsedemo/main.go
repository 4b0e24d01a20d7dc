// impulsedemo loads a scene description and steps its simulation, printing
// each live body's pose every step. No rendering: it exercises
// physics/scene and physics.World end to end without a render loop.
//
// CONTROLS: none. Run with a scene file and a step count:
//
//	impulsedemo -scene drop.yaml -steps 120
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/silt-engine/impulse3d/physics/scene"
)

func main() {
	scenePath := flag.String("scene", "", "path to a yaml scene description")
	steps := flag.Int("steps", 60, "number of fixed 1/60s steps to simulate")
	dt := flag.Float64("dt", 1.0/60, "fixed step size in seconds")
	flag.Parse()

	if *scenePath == "" {
		slog.Error("impulsedemo: -scene is required")
		os.Exit(1)
	}

	data, err := os.ReadFile(*scenePath)
	if err != nil {
		slog.Error("impulsedemo: reading scene", "error", err)
		os.Exit(1)
	}

	world, ids, err := scene.Load(data)
	if err != nil {
		slog.Error("impulsedemo: loading scene", "error", err)
		os.Exit(1)
	}

	names := make(map[uint32]string, len(ids))
	for name, id := range ids {
		names[uint32(id)] = name
	}

	for step := 0; step < *steps; step++ {
		world.Simulate(*dt)
		for _, b := range world.Bodies() {
			name := names[uint32(b.Id())]
			p := b.OriginPoint()
			slog.Info("body", "step", step, "name", name, "x", p.X, "y", p.Y, "z", p.Z)
		}
	}
}
