package component

import "github.com/milk9111/pipes/walker"

// Generator drives one walker from the frame clock. Elapsed and NextTick are
// in seconds since the generator was built.
type Generator struct {
	Walker   *walker.Walker
	Seed     uint64
	Elapsed  float64
	NextTick float64
	Started  bool
	Paused   bool
	// ResetFillRatio is the share of the cube that, once filled, asks for a
	// new scene. Zero never resets.
	ResetFillRatio float64
	// Full is set once the fill ratio has been reported.
	Full bool
}

var GeneratorComponent = NewComponent[Generator]()

// GeneratorStats counts what the spawner produced.
type GeneratorStats struct {
	Pipes       int
	Joints      int
	Runs        int
	Relocations int
	Saturated   int
}

var GeneratorStatsComponent = NewComponent[GeneratorStats]()
