package combat

import (
	"sort"

	"go.uber.org/zap"
)

type TargetPolicy string

const (
	// PolicyFrontOnly exposes only the front unit of each lane.
	PolicyFrontOnly TargetPolicy = "front_only"
	// PolicyEdgeBypass exposes every unblocked unit, and every unit of the edge lane.
	PolicyEdgeBypass TargetPolicy = "edge_bypass"
)

// TargetSelector decides which enemy units are exposed to an attacker.
//
// Lanes are given left to right. A unit is blocked when the lane one step toward the
// attacker holds a living unit with the same y.
type TargetSelector struct {
	Policy TargetPolicy
	Log    *zap.Logger
}

func NewTargetSelector(policy TargetPolicy, log *zap.Logger) *TargetSelector {
	if policy == "" {
		policy = PolicyFrontOnly
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &TargetSelector{Policy: policy, Log: log}
}

// Attackable returns the exposed units of lanes, in lane order. Lane i is blocked by lane
// i-1 when the attacker is on the left and by lane i+1 otherwise. PolicyFrontOnly considers
// only each lane's front unit; PolicyEdgeBypass considers every living unit and never blocks
// the edge lane, the last lane for a left attacker and lane 0 for a right one.
func (ts *TargetSelector) Attackable(lanes [][]Unit, attackerOnLeft bool) []Unit {
	toward, edge := 1, 0
	if attackerOnLeft {
		toward, edge = -1, len(lanes)-1
	}

	// y coordinates held by living units, per lane
	held := make([]map[int]bool, len(lanes))
	for i, lane := range lanes {
		held[i] = map[int]bool{}
		for _, u := range lane {
			if u != nil && u.Alive() {
				held[i][u.Position().Y] = true
			}
		}
	}
	blocked := func(lane int, u Unit) bool {
		next := lane + toward
		return next >= 0 && next < len(lanes) && held[next][u.Position().Y]
	}

	var out []Unit
	for i, lane := range lanes {
		if ts.Policy == PolicyEdgeBypass {
			for _, u := range lane {
				if u == nil || !u.Alive() {
					continue
				}
				if i == edge || !blocked(i, u) {
					out = append(out, u)
				}
			}
			continue
		}
		front := frontOf(lane, attackerOnLeft)
		if front != nil && !blocked(i, front) {
			out = append(out, front)
		}
	}

	if len(out) == 0 {
		ts.log().Debug("no suitable units",
			zap.Int("lanes", len(lanes)), zap.Bool("attacker_on_left", attackerOnLeft),
			zap.String("policy", string(ts.Policy)))
	}
	return out
}

func (ts *TargetSelector) log() *zap.Logger {
	if ts.Log == nil {
		return zap.NewNop()
	}
	return ts.Log
}

// frontOf returns the last living unit of the lane when the attacker is on the left,
// otherwise the first.
func frontOf(lane []Unit, attackerOnLeft bool) Unit {
	if attackerOnLeft {
		for i := len(lane) - 1; i >= 0; i-- {
			if u := lane[i]; u != nil && u.Alive() {
				return u
			}
		}
		return nil
	}
	for _, u := range lane {
		if u != nil && u.Alive() {
			return u
		}
	}
	return nil
}

// LanesOf groups living units into lanes by x, left to right, each lane ordered by y.
// Lanes span every column from the leftmost to the rightmost unit, so an empty column
// still separates its neighbours.
func LanesOf(units []Unit) [][]Unit {
	var living []Unit
	minX, maxX := 0, -1
	for _, u := range units {
		if !u.Alive() {
			continue
		}
		x := u.Position().X
		if len(living) == 0 || x < minX {
			minX = x
		}
		if len(living) == 0 || x > maxX {
			maxX = x
		}
		living = append(living, u)
	}
	if len(living) == 0 {
		return nil
	}
	lanes := make([][]Unit, maxX-minX+1)
	for _, u := range living {
		i := u.Position().X - minX
		lanes[i] = append(lanes[i], u)
	}
	for _, lane := range lanes {
		sort.SliceStable(lane, func(i, j int) bool {
			return lane[i].Position().Y < lane[j].Position().Y
		})
	}
	return lanes
}
