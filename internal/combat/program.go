package combat

import (
	"math"
	"sort"
)

// Damageable is implemented by units the stock programs can hurt.
type Damageable interface {
	Unit
	TakeDamage(dmg int) int
}

// Damage is base attack scaled by the attacker's bonus against the target type and the
// target's defence against the attacker type. Never below 1.
func Damage(attacker, target Unit) int {
	v := float64(attacker.BaseAttack()) * attacker.AttackBonus(target.Type()) / target.DefenceBonus(attacker.Type())
	d := int(math.Round(v))
	if d < 1 {
		d = 1
	}
	return d
}

func strike(attacker, target Unit) Unit {
	if d, ok := target.(Damageable); ok {
		d.TakeDamage(Damage(attacker, target))
	}
	return target
}

// MeleeProgram attacks the exposed front unit it can reach by the shortest path.
type MeleeProgram struct {
	Targets *TargetSelector
	Paths   *Pathfinder
}

func (p *MeleeProgram) Attack(turn Turn) Unit {
	lanes := LanesOf(turn.Enemies)
	cands := p.Targets.Attackable(lanes, turn.AttackerOnLeft())
	if len(cands) == 0 {
		return nil
	}
	everyone := turn.Everyone()
	var best Unit
	bestSteps := math.MaxInt
	for _, c := range cands {
		path := p.Paths.FindUnitPath(turn.Actor, c, everyone)
		if path.Empty() {
			continue
		}
		if path.Steps() < bestSteps {
			best, bestSteps = c, path.Steps()
		}
	}
	if best == nil {
		return nil
	}
	return strike(turn.Actor, best)
}

// RangedProgram shoots the weakest exposed unit, ties broken by name.
type RangedProgram struct {
	Targets *TargetSelector
}

func (p *RangedProgram) Attack(turn Turn) Unit {
	lanes := LanesOf(turn.Enemies)
	cands := p.Targets.Attackable(lanes, turn.AttackerOnLeft())
	if len(cands) == 0 {
		return nil
	}
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Health() != cands[j].Health() {
			return cands[i].Health() < cands[j].Health()
		}
		return cands[i].Name() < cands[j].Name()
	})
	return strike(turn.Actor, cands[0])
}

// Arsenal hands out the stock programs by attack type.
type Arsenal struct {
	Melee  *TargetSelector
	Ranged *TargetSelector
	Paths  *Pathfinder
}

func (a *Arsenal) ProgramFor(s *Soldier) Program {
	if s.AttackType() == "ranged" {
		return &RangedProgram{Targets: a.Ranged}
	}
	return &MeleeProgram{Targets: a.Melee, Paths: a.Paths}
}

// Arm gives every soldier of army its program.
func (a *Arsenal) Arm(army *Army) {
	for _, u := range army.Units() {
		if s, ok := u.(*Soldier); ok {
			s.SetProgram(a.ProgramFor(s))
		}
	}
}
