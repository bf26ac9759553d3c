package combat

// Template is a catalog entry: the stats a generated unit inherits.
type Template struct {
	Type           string
	Health         int
	BaseAttack     int
	Cost           int
	AttackType     string
	AttackBonuses  map[string]float64
	DefenceBonuses map[string]float64
}

// Soldier is the concrete unit used by generated and configured armies.
type Soldier struct {
	name    string
	tpl     Template
	health  int
	pos     Cell
	program Program
}

func NewSoldier(name string, tpl Template, pos Cell) *Soldier {
	return &Soldier{name: name, tpl: tpl, health: tpl.Health, pos: pos}
}

func (s *Soldier) Name() string       { return s.name }
func (s *Soldier) Type() string       { return s.tpl.Type }
func (s *Soldier) Health() int        { return s.health }
func (s *Soldier) Alive() bool        { return s.health > 0 }
func (s *Soldier) BaseAttack() int    { return s.tpl.BaseAttack }
func (s *Soldier) Cost() int          { return s.tpl.Cost }
func (s *Soldier) Position() Cell     { return s.pos }
func (s *Soldier) AttackType() string { return s.tpl.AttackType }
func (s *Soldier) Program() Program   { return s.program }

func (s *Soldier) SetProgram(p Program) { s.program = p }
func (s *Soldier) MoveTo(c Cell)        { s.pos = c }

// AttackBonus is the damage multiplier against unitType, 1 when unlisted.
func (s *Soldier) AttackBonus(unitType string) float64 {
	return bonus(s.tpl.AttackBonuses, unitType)
}

// DefenceBonus divides damage taken from unitType, 1 when unlisted.
func (s *Soldier) DefenceBonus(unitType string) float64 {
	return bonus(s.tpl.DefenceBonuses, unitType)
}

func bonus(table map[string]float64, unitType string) float64 {
	if v, ok := table[unitType]; ok && v > 0 {
		return v
	}
	return 1.0
}

// TakeDamage lowers health, never below zero, and returns the health left.
func (s *Soldier) TakeDamage(dmg int) int {
	if dmg < 0 {
		dmg = 0
	}
	s.health -= dmg
	if s.health < 0 {
		s.health = 0
	}
	return s.health
}
