// Command flaksim plays a FLAK battle container to completion and reports
// each unit's final outcome. It is the CLI entry point wiring vcrfile,
// flakenv, engine, flakproxy, and flakstore together, the way the
// teacher's main.go wires server.NewServer() into an HTTP listener.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"

	"github.com/flak-sim/flak/engine"
	"github.com/flak-sim/flak/flak"
	"github.com/flak-sim/flak/flakenv"
	"github.com/flak-sim/flak/flakproxy"
	"github.com/flak-sim/flak/flakstore"
	"github.com/flak-sim/flak/vcrfile"
)

type options struct {
	Config  string `long:"config" description:"Environment configuration file (yaml/json/toml) for weapon tables and rule options" required:"true"`
	Listen  string `long:"listen" description:"If set, serve a websocket event bridge at this address (e.g. :8080) while playing"`
	Store   string `long:"store" description:"If set, a Postgres DSN to persist final unit outcomes to"`
	Verbose bool   `short:"v" long:"verbose" description:"Enable debug-level logging"`

	Args struct {
		File string `positional-arg-name:"file" description:"FLAK battle container (.vcr)" required:"true"`
	} `positional-args:"yes"`
}

func main() {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	parser.Name = "flaksim"
	parser.LongDescription = "Plays FLAK battle container records to completion and reports final per-unit outcomes."

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	level := zerolog.InfoLevel
	if opts.Verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).Level(level).With().Timestamp().Logger()

	if err := run(opts, log); err != nil {
		log.Fatal().Err(err).Msg("flaksim failed")
	}
}

func run(opts options, log zerolog.Logger) error {
	data, err := os.ReadFile(opts.Args.File)
	if err != nil {
		return fmt.Errorf("read battle file: %w", err)
	}
	container, err := vcrfile.Decode(data)
	if err != nil {
		return fmt.Errorf("decode battle container: %w", err)
	}

	env, err := flakenv.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("load environment: %w", err)
	}
	cfg := flak.DefaultConfiguration()

	var bridge *flakproxy.Bridge
	if opts.Listen != "" {
		bridge = flakproxy.NewBridge()
		mux := http.NewServeMux()
		mux.HandleFunc("/ws", bridge.HandleWebSocket)
		srv := &http.Server{Addr: opts.Listen, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error().Err(err).Msg("event bridge listener failed")
			}
		}()
		log.Info().Str("addr", opts.Listen).Msg("serving battle event bridge")
	}

	var store *flakstore.Store
	if opts.Store != "" {
		ctx := context.Background()
		store, err = flakstore.Open(ctx, opts.Store)
		if err != nil {
			return fmt.Errorf("open result store: %w", err)
		}
		defer store.Close()
	}

	outside := mathRandRNG{r: rand.New(rand.NewSource(time.Now().UnixNano()))}

	for i, rawBattle := range container.Battles {
		battleLog := log.With().Int("battle", i).Logger()

		setup := rawBattle.ToSetup(env, cfg)
		rng := flak.NewRNG(setup.Seed)
		if err := setup.InitAfterSetup(cfg, env, rng); err != nil {
			battleLog.Error().Err(err).Msg("setup invariant violated, skipping battle")
			continue
		}

		battle := engine.NewBattle(setup, env, battleLog)

		if bridge != nil {
			if err := playWithBridge(battle, bridge); err != nil {
				battleLog.Error().Err(err).Msg("battle playback canceled")
				continue
			}
		} else {
			battle.PlayToCompletion(engine.NullVisualizer{})
		}

		results := battle.Results(outside)
		for _, r := range results {
			fmt.Printf("battle %d: unit %d (id %d, owner %d) ending status %d\n", i, r.Index, r.ID, r.Owner, r.EndingStatus)
		}

		if store != nil {
			battleID, err := store.SaveResults(context.Background(), results)
			if err != nil {
				battleLog.Error().Err(err).Msg("save battle results")
				continue
			}
			battleLog.Info().Str("battle_id", battleID.String()).Msg("saved battle results")
		}
	}
	return nil
}

// playWithBridge drives battle through a flakproxy.Proxy instead of
// PlayToCompletion, so tick events reach connected viewers as the battle
// runs rather than only after it finishes.
func playWithBridge(battle *engine.Battle, bridge *flakproxy.Bridge) error {
	rec := engine.NewEventRecorder()
	proxy := flakproxy.New(battle.Algorithm(), rec)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for batch := range proxy.Batches {
			for _, buf := range batch.Buffers {
				bridge.Broadcast(buf)
			}
		}
	}()

	err := proxy.Run(ctx)
	<-done
	return err
}

// mathRandRNG adapts math/rand to flak.OutsideRNG for the captor-resolution
// coin flips findEndingStatus needs once a battle has terminated. It is
// deliberately not the deterministic tick LCG: this randomness decides
// host-side adjudication, not tick playback, so it does not need to be
// reproducible.
type mathRandRNG struct {
	r *rand.Rand
}

func (m mathRandRNG) Next(max uint16) uint16 {
	if max == 0 {
		return 0
	}
	return uint16(m.r.Intn(int(max)))
}
