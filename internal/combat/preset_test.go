package combat

import (
	"fmt"
	"testing"

	"heroes/internal/util"
)

func stockTemplates() []Template {
	return []Template{
		{Type: "Swordsman", Health: 100, BaseAttack: 20, Cost: 40, AttackType: "melee"},
		{Type: "Pikeman", Health: 120, BaseAttack: 15, Cost: 45, AttackType: "melee"},
		{Type: "Archer", Health: 60, BaseAttack: 25, Cost: 50, AttackType: "ranged"},
		{Type: "Knight", Health: 200, BaseAttack: 40, Cost: 120, AttackType: "melee"},
	}
}

func checkArmy(t *testing.T, army *Army, budget int, spawn Board) {
	t.Helper()
	if army.Cost() > budget {
		t.Fatalf("army costs %d, budget %d", army.Cost(), budget)
	}
	seen := map[Cell]string{}
	perType := map[string]int{}
	for _, u := range army.Units() {
		p := u.Position()
		if !spawn.Contains(p) {
			t.Fatalf("%s placed off the spawn board at %v", u.Name(), p)
		}
		if other, ok := seen[p]; ok {
			t.Fatalf("%s and %s share %v", u.Name(), other, p)
		}
		seen[p] = u.Name()
		perType[u.Type()]++
	}
	for typ, n := range perType {
		if n > DefaultMaxPerType {
			t.Fatalf("%d units of %s", n, typ)
		}
	}
}

func TestGenerate_NothingToBuild(t *testing.T) {
	b := NewBuilder(nil)
	if army := b.Generate(nil, 1000, util.New(1)); army.Len() != 0 {
		t.Fatalf("no templates should give an empty army, got %d", army.Len())
	}
	if army := b.Generate(stockTemplates(), 0, util.New(1)); army.Len() != 0 {
		t.Fatalf("zero budget should give an empty army, got %d", army.Len())
	}
	if army := b.Generate(stockTemplates(), 39, util.New(1)); army.Len() != 0 {
		t.Fatalf("budget below the cheapest unit should give an empty army, got %d", army.Len())
	}
}

func TestGenerate_PerTypeCap(t *testing.T) {
	tpls := make([]Template, 12)
	for i := range tpls {
		tpls[i] = Template{Type: "Swordsman", Health: 10, BaseAttack: 5, Cost: 1}
	}
	for _, fill := range []bool{false, true} {
		b := NewBuilder(nil)
		b.FillBudget = fill
		army := b.Generate(tpls, 100, util.New(7))
		if army.Len() != 11 {
			t.Fatalf("fill=%v: expected 11 units, got %d", fill, army.Len())
		}
		if army.Cost() != 11 {
			t.Fatalf("fill=%v: skipped twelfth must not spend points, cost %d", fill, army.Cost())
		}
		checkArmy(t, army, 100, SpawnBoard)
	}
}

func TestGenerate_RespectsBudgetAndCells(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		for _, fill := range []bool{false, true} {
			b := NewBuilder(nil)
			b.FillBudget = fill
			army := b.Generate(stockTemplates(), 1500, util.New(seed))
			checkArmy(t, army, 1500, SpawnBoard)
			if army.Side != SideB {
				t.Fatalf("generated army should be side B")
			}
		}
	}
}

func TestGenerate_SinglePassTakesEachTemplateOnce(t *testing.T) {
	army := NewBuilder(nil).Generate(stockTemplates(), 1500, util.New(3))
	if army.Len() != 4 {
		t.Fatalf("expected one unit per template, got %d", army.Len())
	}
	for _, u := range army.Units() {
		if u.Name() != u.Type()+" 1" {
			t.Fatalf("unexpected name %q", u.Name())
		}
	}
}

func TestGenerate_FillSpendsBudget(t *testing.T) {
	b := NewBuilder(nil)
	b.FillBudget = true
	army := b.Generate(stockTemplates(), 1500, util.New(3))
	if army.Len() <= 4 {
		t.Fatalf("fill should add more than one unit per template, got %d", army.Len())
	}
	if left := 1500 - army.Cost(); left >= 40 {
		t.Fatalf("fill stopped with %d points left, enough for a Swordsman", left)
	}
}

func TestGenerate_Ranking(t *testing.T) {
	// strike: attack/cost 1.0, health/cost 0.1; tank: 0.5 and 2.0
	tpls := []Template{
		{Type: "strike", Health: 1, BaseAttack: 10, Cost: 10},
		{Type: "tank", Health: 20, BaseAttack: 5, Cost: 10},
	}
	tests := []struct {
		ranking Ranking
		want    string
	}{
		{RankComposite, "tank"},
		{RankLexicographic, "strike"},
	}
	for _, tt := range tests {
		b := NewBuilder(nil)
		b.Ranking = tt.ranking
		army := b.Generate(tpls, 10, util.New(1))
		if army.Len() != 1 || army.Units()[0].Type() != tt.want {
			t.Fatalf("%s: expected a single %s, got %v", tt.ranking, tt.want, names(army.Units()))
		}
	}
}

func TestGenerate_PlacementFailureSpendsNothing(t *testing.T) {
	b := NewBuilder(nil)
	b.Spawn = Board{Width: 1, Height: 1}
	tpls := []Template{
		{Type: "big", Health: 10, BaseAttack: 10, Cost: 5},
		{Type: "small", Health: 1, BaseAttack: 1, Cost: 3},
	}
	army := b.Generate(tpls, 8, util.New(1))
	if army.Len() != 1 || army.Units()[0].Type() != "big" {
		t.Fatalf("expected only the first unit placed, got %v", names(army.Units()))
	}
	if army.Cost() != 5 {
		t.Fatalf("failed placement must not spend points, cost %d", army.Cost())
	}
}

func TestGenerate_SkipsNonPositiveCost(t *testing.T) {
	tpls := []Template{
		{Type: "free", Health: 10, BaseAttack: 10, Cost: 0},
		{Type: "Swordsman", Health: 10, BaseAttack: 5, Cost: 10},
	}
	army := NewBuilder(nil).Generate(tpls, 10, util.New(1))
	if !sameNames(army.Units(), "Swordsman 1") {
		t.Fatalf("expected only the Swordsman, got %v", names(army.Units()))
	}
}

func TestGenerate_DeterministicForSeed(t *testing.T) {
	b := NewBuilder(nil)
	b.FillBudget = true
	one := b.Generate(stockTemplates(), 1500, util.New(42))
	two := b.Generate(stockTemplates(), 1500, util.New(42))
	if one.Len() != two.Len() {
		t.Fatalf("sizes differ: %d vs %d", one.Len(), two.Len())
	}
	for i := range one.Units() {
		x, y := one.Units()[i], two.Units()[i]
		if x.Name() != y.Name() || x.Position() != y.Position() {
			t.Fatalf("unit %d differs: %s%v vs %s%v", i, x.Name(), x.Position(), y.Name(), y.Position())
		}
	}
}

func TestGenerate_UsesBuilderSide(t *testing.T) {
	b := NewBuilder(nil)
	if army := b.Generate(stockTemplates(), 200, util.New(1)); army.Side != SideB {
		t.Fatalf("default side should be B, got %s", army.Side)
	}
	b.Side = SideA
	army := b.Generate(stockTemplates(), 200, util.New(1))
	if army.Side != SideA || army.Len() == 0 {
		t.Fatalf("expected a non-empty side A army, got side %s with %d units", army.Side, army.Len())
	}
}

func TestGenerate_AttachesPrograms(t *testing.T) {
	b := NewBuilder(nil)
	var calls int
	b.NewProgram = func(s *Soldier) Program {
		calls++
		return idle
	}
	army := b.Generate(stockTemplates(), 1500, util.New(1))
	if calls != army.Len() {
		t.Fatalf("expected %d programs, got %d", army.Len(), calls)
	}
	for _, u := range army.Units() {
		if u.Program() == nil {
			t.Fatalf("%s has no program", u.Name())
		}
	}
}

func TestDeploy_MirrorsSideB(t *testing.T) {
	army := NewArmy(SideB, soldier("b0", 0, 4, 10, 1), soldier("b2", 2, 7, 10, 1))
	Deploy(army, MoveBoard)
	want := []Cell{{26, 4}, {24, 7}}
	for i, u := range army.Units() {
		if u.Position() != want[i] {
			t.Fatalf("%s: want %v got %v", u.Name(), want[i], u.Position())
		}
	}

	a := NewArmy(SideA, soldier("a0", 1, 1, 10, 1))
	Deploy(a, MoveBoard)
	if a.Units()[0].Position() != (Cell{1, 1}) {
		t.Fatal("side A must keep its spawn cells")
	}
}

func ExampleBuilder_Generate() {
	b := NewBuilder(nil)
	army := b.Generate([]Template{{Type: "Archer", Health: 60, BaseAttack: 25, Cost: 50}}, 120, util.New(1))
	fmt.Println(army.Len(), army.Cost())
	// Output: 1 50
}
