// Package flakproxy is the out-of-scope "proxy/worker harness" collaborator:
// it drives an engine.Algorithm on a background goroutine in bounded
// batches and hands swapped-out, zstd-compressed event buffers to whatever
// is consuming them (a websocket bridge, a test, a CLI's own log).
package flakproxy

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/flak-sim/flak/engine"
)

// BatchSize is how many ticks the Proxy plays per scheduler slice before
// handing a batch of buffers to the consumer. Keeping it small bounds how
// much event data accumulates in memory between swaps, per §5.
const BatchSize = 20

// TickBatch is one scheduler slice's worth of events: a single compressed
// buffer swapped out at the end of the slice, holding all of its ticks in
// order, plus whether the battle terminated during this batch.
type TickBatch struct {
	Buffers     [][]byte
	Terminated  bool
}

// Proxy drives one Algorithm to completion on a background goroutine,
// delivering one compressed event buffer per batch over Batches. It is built
// around errgroup.Group so a consumer failure (e.g. a broken websocket
// write) can cancel the simulation the same way the teacher's server
// cancels its game loop on shutdown.
type Proxy struct {
	alg *engine.Algorithm
	rec *engine.EventRecorder

	Batches chan TickBatch
}

// New wraps alg and rec into a Proxy. rec is used as the Algorithm's
// Visualizer for the whole run; the caller must not also drive alg
// directly.
func New(alg *engine.Algorithm, rec *engine.EventRecorder) *Proxy {
	return &Proxy{
		alg:     alg,
		rec:     rec,
		Batches: make(chan TickBatch, 1),
	}
}

// Run plays the battle to completion, emitting a TickBatch every BatchSize
// ticks (and a final short batch on termination), then closes Batches. It
// returns ctx.Err() if the context is canceled mid-battle, and otherwise
// nil once the battle terminates.
func (p *Proxy) Run(ctx context.Context) error {
	defer close(p.Batches)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p.alg.Init(p.rec)
		if err := p.sendBatch(ctx, false); err != nil {
			return err
		}

		count := 0
		for p.alg.PlayCycle(p.rec) {
			count++
			if count >= BatchSize {
				if err := p.sendBatch(ctx, false); err != nil {
					return err
				}
				count = 0
			}
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		return p.sendBatch(ctx, true)
	})
	return g.Wait()
}

func (p *Proxy) sendBatch(ctx context.Context, terminated bool) error {
	compressed, err := p.rec.SwapCompressed()
	if err != nil {
		return err
	}
	select {
	case p.Batches <- TickBatch{Buffers: [][]byte{compressed}, Terminated: terminated}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
