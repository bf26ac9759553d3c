package combat

// Army is the roster of one side. Order is the enumeration order used for turn-order ties.
type Army struct {
	Side  Side
	units []Unit
}

func NewArmy(side Side, units ...Unit) *Army {
	a := &Army{Side: side}
	a.units = append(a.units, units...)
	return a
}

func (a *Army) Units() []Unit { return a.units }
func (a *Army) Len() int      { return len(a.units) }
func (a *Army) Add(u Unit)    { a.units = append(a.units, u) }

func (a *Army) Remove(u Unit) bool {
	for i, x := range a.units {
		if x == u {
			a.units = append(a.units[:i], a.units[i+1:]...)
			return true
		}
	}
	return false
}

// Living returns the living units in enumeration order.
func (a *Army) Living() []Unit {
	out := make([]Unit, 0, len(a.units))
	for _, u := range a.units {
		if u.Alive() {
			out = append(out, u)
		}
	}
	return out
}

// PruneDead drops dead units in place and returns how many were removed.
func (a *Army) PruneDead() int {
	dst := a.units[:0]
	for _, u := range a.units {
		if u.Alive() {
			dst = append(dst, u)
		}
	}
	removed := len(a.units) - len(dst)
	for i := len(dst); i < len(a.units); i++ {
		a.units[i] = nil
	}
	a.units = dst
	return removed
}

func (a *Army) Cost() int {
	total := 0
	for _, u := range a.units {
		total += u.Cost()
	}
	return total
}
