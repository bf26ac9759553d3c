package combat

func soldier(name string, x, y, hp, atk int) *Soldier {
	return NewSoldier(name, Template{Type: name, Health: hp, BaseAttack: atk, Cost: 1}, Cell{X: x, Y: y})
}

func kill(u Unit) {
	if s, ok := u.(*Soldier); ok {
		s.TakeDamage(s.Health())
	}
}

type programFunc func(Turn) Unit

func (f programFunc) Attack(t Turn) Unit { return f(t) }

// killFirst kills the first enemy it is shown.
var killFirst = programFunc(func(t Turn) Unit {
	if len(t.Enemies) == 0 {
		return nil
	}
	kill(t.Enemies[0])
	return t.Enemies[0]
})

var idle = programFunc(func(Turn) Unit { return nil })

func names(units []Unit) []string {
	out := make([]string, len(units))
	for i, u := range units {
		out[i] = u.Name()
	}
	return out
}

func sameNames(got []Unit, want ...string) bool {
	g := names(got)
	if len(g) != len(want) {
		return false
	}
	for i := range g {
		if g[i] != want[i] {
			return false
		}
	}
	return true
}
