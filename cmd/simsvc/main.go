package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"heroes/internal/combat"
	"heroes/internal/config"
	"heroes/internal/logs"
	"heroes/internal/util"
)

type world struct {
	settings  *config.Settings
	templates []combat.Template
	catalog   *config.Catalog
	roster    *config.RosterConfig
	log       *zap.Logger
}

func main() {
	var settingsPath, catalogPath, rosterPath, out string
	var seed int64
	var n, workers int
	var record bool
	flag.StringVar(&settingsPath, "settings", "", "settings file (yaml/json/toml), defaults when empty")
	flag.StringVar(&catalogPath, "catalog", "", "unit catalog, defaults to <assets>/units.yaml")
	flag.StringVar(&rosterPath, "roster", "", "hand-placed player army; generated when empty")
	flag.StringVar(&out, "out", "out.json", "output file (single) or summary file (batch)")
	flag.Int64Var(&seed, "seed", 0, "seed, overrides settings when non-zero")
	flag.IntVar(&n, "n", 1, "number of battles")
	flag.IntVar(&workers, "workers", runtime.NumCPU(), "parallel battles in batch mode")
	flag.BoolVar(&record, "events", true, "include the event log in single-battle output")
	flag.Parse()

	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "settings:", err)
		os.Exit(1)
	}
	log := logs.New("simsvc", settings.Log)
	defer func() { _ = log.Sync() }()

	if seed != 0 {
		settings.Seed = seed
	}
	if settings.Seed == 0 {
		settings.Seed = time.Now().UnixNano()
	}
	if catalogPath == "" {
		catalogPath = filepath.Join(settings.Assets, "units.yaml")
	}
	cat, err := config.LoadCatalog(catalogPath)
	if err != nil {
		log.Fatal("load catalog", zap.String("path", catalogPath), zap.Error(err))
	}
	w := &world{settings: settings, catalog: cat, templates: combat.TemplatesFrom(cat), log: log}
	if rosterPath != "" {
		if w.roster, err = config.LoadRoster(rosterPath); err != nil {
			log.Fatal("load roster", zap.String("path", rosterPath), zap.Error(err))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if n <= 1 {
		if err := runSingle(ctx, w, record, out); err != nil {
			log.Fatal("single battle", zap.Error(err))
		}
		return
	}
	if err := runBatch(ctx, w, n, workers, out); err != nil {
		log.Fatal("batch", zap.Error(err))
	}
}

// setup builds both armies and a simulator for one battle. Nothing it returns is shared
// with another battle.
func (w *world) setup(rng *rand.Rand, narrate combat.BattleLog, quiet bool) (*combat.Simulator, *combat.Army, *combat.Army, error) {
	s := w.settings
	log := w.log
	if quiet {
		log = zap.NewNop()
	}
	move := combat.Board{Width: s.Move.Width, Height: s.Move.Height}
	spawn := combat.Board{Width: s.Spawn.Width, Height: s.Spawn.Height}

	arsenal := &combat.Arsenal{
		Melee:  combat.NewTargetSelector(combat.TargetPolicy(s.Melee), log),
		Ranged: combat.NewTargetSelector(combat.TargetPolicy(s.Ranged), log),
		Paths:  combat.NewPathfinder(move, combat.SearchStrategy(s.Search), log),
	}
	builder := combat.NewBuilder(log)
	builder.Ranking = combat.Ranking(s.Preset.Ranking)
	builder.MaxPerType = s.Preset.MaxPerType
	builder.Attempts = s.Preset.Attempts
	builder.FillBudget = s.Preset.Fill
	builder.Spawn = spawn
	builder.NewProgram = arsenal.ProgramFor

	var player *combat.Army
	if w.roster != nil {
		var err error
		if player, err = combat.ArmyFromRoster(w.roster, w.catalog, spawn); err != nil {
			return nil, nil, nil, err
		}
		arsenal.Arm(player)
	} else {
		pb := *builder
		pb.Side = combat.SideA
		player = pb.Generate(w.templates, s.Preset.Budget, rng)
	}
	computer := builder.Generate(w.templates, s.Preset.Budget, rng)
	combat.Deploy(computer, move)

	return combat.NewSimulator(narrate, log, s.MaxRounds), player, computer, nil
}

func runSingle(ctx context.Context, w *world, record bool, out string) error {
	rec := &combat.Recorder{}
	narrate := combat.MultiLog{combat.ZapLog{L: w.log.Named("battle")}, rec}
	sim, player, computer, err := w.setup(util.New(w.settings.Seed), narrate, false)
	if err != nil {
		return err
	}
	res := sim.Simulate(ctx, player, computer)

	type dump struct {
		Seed   int64          `json:"seed"`
		Result combat.Result  `json:"result"`
		Kills  map[string]int `json:"kills"`
		Events []combat.Event `json:"events,omitempty"`
	}
	d := dump{Seed: w.settings.Seed, Result: res, Kills: rec.Kills()}
	if record {
		d.Events = rec.Events
	}
	if err := writeJSON(out, d); err != nil {
		return err
	}
	fmt.Printf("Battle %s finished. Outcome=%s, rounds=%d, actions=%d -> %s\n",
		res.BattleID, res.Outcome, res.Rounds, res.Actions, out)
	return nil
}

// tally aggregates batch results. Battles cancelled between rounds are counted as
// interrupted, those cancelled mid-round as aborted.
type tally struct {
	outcomes  map[combat.Outcome]int
	sumRounds int
	stalled   int
}

func newTally() *tally { return &tally{outcomes: map[combat.Outcome]int{}} }

func (t *tally) add(res combat.Result) {
	t.outcomes[res.Outcome]++
	t.sumRounds += res.Rounds
	if res.Stalled {
		t.stalled++
	}
}

func (t *tally) summary(n int, seed int64) map[string]any {
	rate := func(o combat.Outcome) float64 { return float64(t.outcomes[o]) / float64(n) }
	return map[string]any{
		"runs":        n,
		"seed":        seed,
		"side_a_win":  rate(combat.OutcomeSideAWon),
		"side_b_win":  rate(combat.OutcomeSideBWon),
		"draw":        rate(combat.OutcomeDraw),
		"aborted":     t.outcomes[combat.OutcomeAborted],
		"interrupted": t.outcomes[combat.OutcomeActive],
		"impossible":  t.outcomes[combat.OutcomeImpossible],
		"stalled":     t.stalled,
		"avg_rounds":  float64(t.sumRounds) / float64(n),
	}
}

func runBatch(ctx context.Context, w *world, n, workers int, out string) error {
	st := newTally()
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, workers))
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			sim, player, computer, err := w.setup(util.Derive(w.settings.Seed, i), nil, true)
			if err != nil {
				return err
			}
			res := sim.Simulate(gctx, player, computer)

			mu.Lock()
			defer mu.Unlock()
			st.add(res)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := writeJSON(out, st.summary(n, w.settings.Seed)); err != nil {
		return err
	}
	w.log.Info("batch done", zap.Int("runs", n), zap.String("out", filepath.Base(out)))
	return nil
}

// writeJSON writes v as indented JSON to path.
func writeJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
