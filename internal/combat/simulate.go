package combat

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"heroes/internal/util"
)

type Result struct {
	BattleID  string  `json:"battleId"`
	Outcome   Outcome `json:"outcome"`
	Rounds    int     `json:"rounds"`
	Actions   int     `json:"actions"`
	SurvivorA int     `json:"survivorsA"`
	SurvivorB int     `json:"survivorsB"`
	Stalled   bool    `json:"stalled,omitempty"`
}

// Simulator runs round-based battles. Each round every living unit acts once, strongest
// base attack first. A Simulator holds no per-battle state and may be shared by
// concurrent battles as long as Log is safe for that.
type Simulator struct {
	Log       BattleLog
	Logger    *zap.Logger
	MaxRounds int // 0 means no cap
}

func NewSimulator(log BattleLog, logger *zap.Logger, maxRounds int) *Simulator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Simulator{Log: log, Logger: logger, MaxRounds: maxRounds}
}

type actor struct {
	unit Unit
	side Side
}

// roundState is the per-round snapshot: the living units of each side at round start,
// minus those killed so far this round.
type roundState struct {
	order   [2][]Unit
	present [2]map[Unit]bool
	left    [2]int
	sideOf  map[Unit]Side
}

func newRoundState(a, b *Army) *roundState {
	rs := &roundState{sideOf: map[Unit]Side{}}
	for s, army := range [2]*Army{a, b} {
		living := army.Living()
		rs.order[s] = living
		rs.present[s] = make(map[Unit]bool, len(living))
		for _, u := range living {
			rs.present[s][u] = true
			rs.sideOf[u] = Side(s)
		}
		rs.left[s] = len(living)
	}
	return rs
}

func (rs *roundState) remove(u Unit) {
	s, ok := rs.sideOf[u]
	if !ok || !rs.present[s][u] {
		return
	}
	delete(rs.present[s], u)
	rs.left[s]--
}

func (rs *roundState) units(s Side) []Unit {
	out := make([]Unit, 0, rs.left[s])
	for _, u := range rs.order[s] {
		if rs.present[s][u] {
			out = append(out, u)
		}
	}
	return out
}

func (rs *roundState) exhausted() bool { return rs.left[SideA] == 0 || rs.left[SideB] == 0 }

// turnOrder merges both sides, side A first, and stable-sorts by descending base attack.
func (rs *roundState) turnOrder() []actor {
	order := make([]actor, 0, rs.left[SideA]+rs.left[SideB])
	for s := range rs.order {
		for _, u := range rs.order[s] {
			order = append(order, actor{unit: u, side: Side(s)})
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].unit.BaseAttack() > order[j].unit.BaseAttack()
	})
	return order
}

// Simulate fights a against b until one side is empty or ctx is done. Dead units are pruned
// from both armies at the end of every round.
func (s *Simulator) Simulate(ctx context.Context, a, b *Army) Result {
	res := Result{BattleID: util.NewBattleID()}
	log := s.Logger.With(zap.String("battle_id", res.BattleID))

	if len(a.Living()) == 0 || len(b.Living()) == 0 {
		log.Info("battle impossible: an army has no living units",
			zap.Int("side_a", len(a.Living())), zap.Int("side_b", len(b.Living())))
		res.Outcome = OutcomeImpossible
		res.SurvivorA, res.SurvivorB = len(a.Living()), len(b.Living())
		return res
	}

	seq := 0
	for a.Len() > 0 && b.Len() > 0 {
		if ctx.Err() != nil {
			log.Info("battle interrupted between rounds", zap.Int("round", res.Rounds))
			res.Outcome = classify(a, b)
			res.SurvivorA, res.SurvivorB = a.Len(), b.Len()
			return res
		}
		if s.MaxRounds > 0 && res.Rounds >= s.MaxRounds {
			log.Warn("round cap reached", zap.Int("max_rounds", s.MaxRounds))
			res.Outcome = OutcomeDraw
			res.Stalled = true
			res.SurvivorA, res.SurvivorB = a.Len(), b.Len()
			return res
		}
		res.Rounds++
		round := res.Rounds

		rs := newRoundState(a, b)
		log.Info("round start", zap.Int("round", round),
			zap.Int("side_a", rs.left[SideA]), zap.Int("side_b", rs.left[SideB]))

		for _, act := range rs.turnOrder() {
			if rs.exhausted() {
				break
			}
			if ctx.Err() != nil {
				log.Info("battle aborted mid-round", zap.Int("round", round))
				a.PruneDead()
				b.PruneDead()
				res.Outcome = OutcomeAborted
				res.SurvivorA, res.SurvivorB = a.Len(), b.Len()
				return res
			}
			u := act.unit
			if !rs.present[act.side][u] || !u.Alive() {
				continue
			}

			var target Unit
			if p := u.Program(); p != nil {
				target = p.Attack(Turn{
					Round:   round,
					Actor:   u,
					Side:    act.side,
					Allies:  rs.units(act.side),
					Enemies: rs.units(act.side.Opponent()),
				})
			}
			res.Actions++
			seq++
			s.record(res.BattleID, round, seq, act, target)

			if target != nil && !target.Alive() {
				rs.remove(target)
			}
		}

		a.PruneDead()
		b.PruneDead()
		log.Debug("round end", zap.Int("round", round),
			zap.Int("side_a", a.Len()), zap.Int("side_b", b.Len()))
	}

	res.Outcome = classify(a, b)
	res.SurvivorA, res.SurvivorB = a.Len(), b.Len()
	log.Info("battle over", zap.Stringer("outcome", res.Outcome),
		zap.Int("rounds", res.Rounds), zap.Int("actions", res.Actions))
	return res
}

func (s *Simulator) record(battleID string, round, seq int, act actor, target Unit) {
	if s.Log == nil {
		return
	}
	ev := Event{BattleID: battleID, Round: round, Seq: seq, Actor: act.unit.Name(), Side: act.side.String()}
	if target != nil {
		ev.Target = target.Name()
		ev.TargetHP = target.Health()
		ev.Killed = !target.Alive()
	}
	s.Log.Record(ev)
}

func classify(a, b *Army) Outcome {
	switch {
	case a.Len() == 0 && b.Len() == 0:
		return OutcomeDraw
	case b.Len() == 0:
		return OutcomeSideAWon
	case a.Len() == 0:
		return OutcomeSideBWon
	}
	return OutcomeActive
}
