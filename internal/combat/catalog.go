package combat

import (
	"fmt"

	"heroes/internal/config"
)

func TemplatesFrom(cat *config.Catalog) []Template {
	if cat == nil {
		return nil
	}
	out := make([]Template, 0, len(cat.Units))
	for _, u := range cat.Units {
		out = append(out, templateOf(u))
	}
	return out
}

func templateOf(u config.UnitDef) Template {
	t := Template{
		Type:           u.Type,
		Health:         u.Health,
		BaseAttack:     u.BaseAttack,
		Cost:           u.Cost,
		AttackType:     u.AttackType,
		AttackBonuses:  map[string]float64{},
		DefenceBonuses: map[string]float64{},
	}
	for k, v := range u.AttackBonuses {
		t.AttackBonuses[k] = v
	}
	for k, v := range u.DefenceBonuses {
		t.DefenceBonuses[k] = v
	}
	return t
}

// ArmyFromRoster builds a side-A army from hand-placed units. Positions must be unique and
// inside spawn.
func ArmyFromRoster(r *config.RosterConfig, cat *config.Catalog, spawn Board) (*Army, error) {
	army := NewArmy(SideA)
	used := map[Cell]string{}
	count := map[string]int{}
	for i, ru := range r.Units {
		def, ok := cat.Lookup(ru.Type)
		if !ok {
			return nil, fmt.Errorf("roster unit #%d: unknown type %q: %w", i, ru.Type, config.ErrInvalidUnit)
		}
		pos := Cell{X: ru.Pos[0], Y: ru.Pos[1]}
		if !spawn.Contains(pos) {
			return nil, fmt.Errorf("roster unit #%d: %v outside %dx%d spawn board: %w",
				i, pos, spawn.Width, spawn.Height, config.ErrInvalidUnit)
		}
		if other, taken := used[pos]; taken {
			return nil, fmt.Errorf("roster unit #%d: %v already holds %s: %w", i, pos, other, config.ErrInvalidUnit)
		}
		count[ru.Type]++
		name := ru.Name
		if name == "" {
			name = fmt.Sprintf("%s %d", ru.Type, count[ru.Type])
		}
		used[pos] = name
		army.Add(NewSoldier(name, templateOf(def), pos))
	}
	return army, nil
}
