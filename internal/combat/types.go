package combat

import "fmt"

type Side int

const (
	SideA Side = iota
	SideB
)

func (s Side) String() string {
	if s == SideA {
		return "A"
	}
	return "B"
}

func (s Side) Opponent() Side { return 1 - s }

// Unit is what the battle core reads from a combatant. Damage is applied by the unit's own
// Program; the core only looks at health and position and drops dead units.
type Unit interface {
	Name() string
	Type() string
	Health() int
	Alive() bool
	BaseAttack() int
	Cost() int
	Position() Cell
	AttackBonus(unitType string) float64
	DefenceBonus(unitType string) float64
	Program() Program
}

// Program decides what a unit does on its turn. It returns the unit it attacked, or nil.
type Program interface {
	Attack(turn Turn) Unit
}

// Turn is the round-scoped view handed to an acting unit.
type Turn struct {
	Round   int
	Actor   Unit
	Side    Side
	Allies  []Unit
	Enemies []Unit
}

// AttackerOnLeft reports whether the actor attacks from the left edge of the board.
func (t Turn) AttackerOnLeft() bool { return t.Side == SideA }

// Everyone returns the living units of both sides, used as pathfinding obstacles.
func (t Turn) Everyone() []Unit {
	out := make([]Unit, 0, len(t.Allies)+len(t.Enemies))
	out = append(out, t.Allies...)
	return append(out, t.Enemies...)
}

type Event struct {
	BattleID string `json:"battleId,omitempty"`
	Round    int    `json:"round"`
	Seq      int    `json:"seq"`
	Actor    string `json:"actor"`
	Side     string `json:"side"`
	Target   string `json:"target,omitempty"`
	TargetHP int    `json:"targetHp,omitempty"`
	Killed   bool   `json:"killed,omitempty"`
}

func (e Event) String() string {
	if e.Target == "" {
		return fmt.Sprintf("r%d %s(%s) waits", e.Round, e.Actor, e.Side)
	}
	if e.Killed {
		return fmt.Sprintf("r%d %s(%s) kills %s", e.Round, e.Actor, e.Side, e.Target)
	}
	return fmt.Sprintf("r%d %s(%s) hits %s (hp %d)", e.Round, e.Actor, e.Side, e.Target, e.TargetHP)
}

// BattleLog receives one event per action. Implementations must not block the battle.
type BattleLog interface {
	Record(ev Event)
}

type Outcome int

const (
	OutcomeActive Outcome = iota
	OutcomeSideAWon
	OutcomeSideBWon
	OutcomeDraw
	OutcomeImpossible
	OutcomeAborted
)

var outcomeNames = map[Outcome]string{
	OutcomeActive:     "Active",
	OutcomeSideAWon:   "SideAWon",
	OutcomeSideBWon:   "SideBWon",
	OutcomeDraw:       "Draw",
	OutcomeImpossible: "Impossible",
	OutcomeAborted:    "Aborted",
}

func (o Outcome) String() string {
	if s, ok := outcomeNames[o]; ok {
		return s
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

func (o Outcome) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// Finished reports whether o is a terminal classification of a completed battle.
func (o Outcome) Finished() bool {
	return o == OutcomeSideAWon || o == OutcomeSideBWon || o == OutcomeDraw
}
