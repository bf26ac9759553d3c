package config

import "fmt"

type Catalog struct {
	Units []UnitDef `yaml:"units"`
}

type UnitDef struct {
	Type           string             `yaml:"type"`
	Health         int                `yaml:"health"`
	BaseAttack     int                `yaml:"base_attack"`
	Cost           int                `yaml:"cost"`
	AttackType     string             `yaml:"attack_type"` // melee | ranged
	AttackBonuses  map[string]float64 `yaml:"attack_bonuses"`
	DefenceBonuses map[string]float64 `yaml:"defence_bonuses"`
	Note           string             `yaml:"note"`
}

func (u *UnitDef) applyDefaults() {
	if u.AttackType == "" {
		u.AttackType = "melee"
	}
}

func (u *UnitDef) validate() error {
	switch {
	case u.Type == "":
		return fmt.Errorf("missing type: %w", ErrInvalidUnit)
	case u.Health <= 0:
		return fmt.Errorf("%s: health must be positive: %w", u.Type, ErrInvalidUnit)
	case u.Cost <= 0:
		return fmt.Errorf("%s: cost must be positive: %w", u.Type, ErrInvalidUnit)
	case u.BaseAttack < 0:
		return fmt.Errorf("%s: negative base_attack: %w", u.Type, ErrInvalidUnit)
	case u.AttackType != "melee" && u.AttackType != "ranged":
		return fmt.Errorf("%s: unknown attack_type %q: %w", u.Type, u.AttackType, ErrInvalidUnit)
	}
	return nil
}

func (c *Catalog) Lookup(unitType string) (UnitDef, bool) {
	for _, u := range c.Units {
		if u.Type == unitType {
			return u, true
		}
	}
	return UnitDef{}, false
}

type RosterConfig struct {
	Units []RosterUnit `yaml:"units"`
}

type RosterUnit struct {
	Type string `yaml:"type"`
	Name string `yaml:"name"`
	Pos  [2]int `yaml:"pos"` // x, y
}
