package combat

import (
	"fmt"
	"math/rand"
	"sort"

	"go.uber.org/zap"

	"heroes/internal/util"
)

type Ranking string

const (
	// RankComposite orders by attack/cost + health/cost.
	RankComposite Ranking = "composite"
	// RankLexicographic orders by attack/cost, then health/cost.
	RankLexicographic Ranking = "lexicographic"
)

const (
	DefaultMaxPerType = 11
	DefaultAttempts   = 100
)

// Builder generates an army within a point budget, placing every unit on its own cell of
// the spawn board.
type Builder struct {
	Side       Side
	Ranking    Ranking
	MaxPerType int
	Attempts   int
	Spawn      Board
	// FillBudget repeats the ranked pass until a pass adds nothing. Off means a single
	// pass, at most one unit per template.
	FillBudget bool
	// NewProgram, when set, gives each generated soldier its program.
	NewProgram func(*Soldier) Program
	Log        *zap.Logger
}

func NewBuilder(log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{
		Side:       SideB,
		Ranking:    RankComposite,
		MaxPerType: DefaultMaxPerType,
		Attempts:   DefaultAttempts,
		Spawn:      SpawnBoard,
		Log:        log,
	}
}

// Generate spends up to budget points on templates, best ranked first, and returns an army
// of b.Side placed on distinct cells of the spawn board. A unit that cannot be placed is
// skipped without spending points. rng is only used for placement; nil falls back to a
// clock-seeded generator.
func (b *Builder) Generate(templates []Template, budget int, rng *rand.Rand) *Army {
	if rng == nil {
		rng = util.NewUnseeded()
	}
	log := b.log()
	army := NewArmy(b.Side)

	ranked := b.rank(templates)
	used := map[Cell]bool{}
	count := map[string]int{}
	remaining := budget

	for {
		added := 0
		for _, tpl := range ranked {
			if tpl.Cost > remaining {
				continue
			}
			if count[tpl.Type] >= b.maxPerType() {
				continue
			}
			pos, ok := b.place(used, rng)
			if !ok {
				log.Warn("no free cell for unit", zap.String("type", tpl.Type),
					zap.Int("attempts", b.attempts()))
				continue
			}
			count[tpl.Type]++
			s := NewSoldier(fmt.Sprintf("%s %d", tpl.Type, count[tpl.Type]), tpl, pos)
			if b.NewProgram != nil {
				s.SetProgram(b.NewProgram(s))
			}
			army.Add(s)
			used[pos] = true
			remaining -= tpl.Cost
			added++
			log.Debug("unit added", zap.String("name", s.Name()),
				zap.Stringer("pos", pos), zap.Int("points_left", remaining))
		}
		if !b.FillBudget || added == 0 {
			break
		}
	}
	log.Info("army generated", zap.Int("units", army.Len()),
		zap.Int("spent", budget-remaining), zap.Int("budget", budget))
	return army
}

// rank drops templates without a positive cost and sorts the rest, best first.
func (b *Builder) rank(templates []Template) []Template {
	ranked := make([]Template, 0, len(templates))
	for _, t := range templates {
		if t.Cost <= 0 {
			b.log().Warn("template skipped: cost must be positive",
				zap.String("type", t.Type), zap.Int("cost", t.Cost))
			continue
		}
		ranked = append(ranked, t)
	}
	atk := func(t Template) float64 { return float64(t.BaseAttack) / float64(t.Cost) }
	hp := func(t Template) float64 { return float64(t.Health) / float64(t.Cost) }

	sort.SliceStable(ranked, func(i, j int) bool {
		x, y := ranked[i], ranked[j]
		if b.Ranking == RankLexicographic {
			if atk(x) != atk(y) {
				return atk(x) > atk(y)
			}
			return hp(x) > hp(y)
		}
		return atk(x)+hp(x) > atk(y)+hp(y)
	})
	return ranked
}

func (b *Builder) place(used map[Cell]bool, rng *rand.Rand) (Cell, bool) {
	if b.Spawn.Width <= 0 || b.Spawn.Height <= 0 {
		return Cell{}, false
	}
	for i := 0; i < b.attempts(); i++ {
		c := Cell{X: rng.Intn(b.Spawn.Width), Y: rng.Intn(b.Spawn.Height)}
		if !used[c] {
			return c, true
		}
	}
	return Cell{}, false
}

func (b *Builder) maxPerType() int {
	if b.MaxPerType <= 0 {
		return DefaultMaxPerType
	}
	return b.MaxPerType
}

func (b *Builder) attempts() int {
	if b.Attempts <= 0 {
		return DefaultAttempts
	}
	return b.Attempts
}

func (b *Builder) log() *zap.Logger {
	if b.Log == nil {
		return zap.NewNop()
	}
	return b.Log
}

// Deploy moves every soldier of army onto the move board. Side A keeps its spawn columns;
// side B is mirrored to the right edge.
func Deploy(army *Army, move Board) {
	if army.Side != SideB {
		return
	}
	for _, u := range army.Units() {
		if s, ok := u.(*Soldier); ok {
			s.MoveTo(move.Mirror(s.Position()))
		}
	}
}
