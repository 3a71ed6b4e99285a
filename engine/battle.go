package engine

import (
	"github.com/rs/zerolog"

	"github.com/flak-sim/flak/flak"
)

// UnitResult is the final recorded outcome for one unit, once a Battle has
// run to completion.
type UnitResult struct {
	Index        int
	ID           int
	Owner        int
	EndingStatus int
}

// Battle wraps a Setup and Environment into a playable, replayable battle.
// It owns one Algorithm and is not itself safe for concurrent use; run
// independent playouts of the same Setup from independent Battles.
type Battle struct {
	setup *flak.Setup
	env   flak.Environment
	alg   *Algorithm
}

// NewBattle builds a Battle. setup must already have had InitAfterSetup run
// on it.
func NewBattle(setup *flak.Setup, env flak.Environment, log zerolog.Logger) *Battle {
	return &Battle{
		setup: setup,
		env:   env,
		alg:   NewAlgorithm(setup, env, log),
	}
}

// Algorithm exposes the underlying Algorithm for callers that want to drive
// ticks themselves against a live Visualizer.
func (b *Battle) Algorithm() *Algorithm { return b.alg }

// PlayToCompletion runs Init and then every tick to termination against
// vis. Pass NullVisualizer{} to compute only the final outcome cheaply.
func (b *Battle) PlayToCompletion(vis Visualizer) {
	b.alg.Init(vis)
	for b.alg.PlayCycle(vis) {
	}
}

// Results reports the final EndingStatus of every unit. The battle must
// already have terminated (IsTerminated() true); outside supplies the
// randomness used to adjudicate any contested planet captures.
func (b *Battle) Results(outside flak.OutsideRNG) []UnitResult {
	n := b.alg.NumUnits()
	res := make([]UnitResult, n)
	for i := 0; i < n; i++ {
		u := b.alg.Unit(i)
		res[i] = UnitResult{
			Index:        i,
			ID:           u.Data.ID,
			Owner:        u.Data.Owner,
			EndingStatus: b.alg.findEndingStatus(i, outside),
		}
	}
	return res
}
