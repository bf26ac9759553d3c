package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadCatalog(t *testing.T) {
	p := writeFile(t, "units.yaml", `
units:
  - type: Swordsman
    health: 50
    base_attack: 20
    cost: 100
    attack_bonuses: { Archer: 1.5 }
  - type: Archer
    health: 30
    base_attack: 25
    cost: 120
    attack_type: ranged
`)
	cat, err := LoadCatalog(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cat.Units) != 2 {
		t.Fatalf("expected 2 units, got %d", len(cat.Units))
	}
	sw, ok := cat.Lookup("Swordsman")
	if !ok {
		t.Fatal("Swordsman not found")
	}
	if sw.AttackType != "melee" {
		t.Fatalf("attack_type should default to melee, got %q", sw.AttackType)
	}
	if sw.AttackBonuses["Archer"] != 1.5 {
		t.Fatalf("bonus not loaded: %v", sw.AttackBonuses)
	}
	if _, ok := cat.Lookup("Dragon"); ok {
		t.Fatal("unexpected Dragon")
	}
}

func TestLoadCatalog_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing type", "units:\n  - { health: 5, cost: 1 }\n"},
		{"zero health", "units:\n  - { type: A, health: 0, cost: 1 }\n"},
		{"zero cost", "units:\n  - { type: A, health: 5, cost: 0 }\n"},
		{"negative attack", "units:\n  - { type: A, health: 5, cost: 1, base_attack: -1 }\n"},
		{"bad attack type", "units:\n  - { type: A, health: 5, cost: 1, attack_type: magic }\n"},
		{"duplicate", "units:\n  - { type: A, health: 5, cost: 1 }\n  - { type: A, health: 6, cost: 2 }\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCatalog(writeFile(t, "units.yaml", tt.body))
			if !errors.Is(err, ErrInvalidUnit) {
				t.Fatalf("expected ErrInvalidUnit, got %v", err)
			}
		})
	}
}

func TestLoadCatalog_BadFile(t *testing.T) {
	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if _, err := LoadCatalog(writeFile(t, "broken.yaml", "units: [")); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestLoadRoster(t *testing.T) {
	p := writeFile(t, "roster.yaml", `
units:
  - { type: Knight, pos: [2, 4] }
  - { type: Archer, name: Robin, pos: [0, 7] }
`)
	r, err := LoadRoster(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(r.Units) != 2 || r.Units[1].Name != "Robin" || r.Units[0].Pos != [2]int{2, 4} {
		t.Fatalf("unexpected roster: %+v", r.Units)
	}

	_, err = LoadRoster(writeFile(t, "roster.yaml", "units:\n  - { pos: [0, 0] }\n"))
	if !errors.Is(err, ErrInvalidUnit) {
		t.Fatalf("missing type should be rejected, got %v", err)
	}
}

func TestLoadSettings_Defaults(t *testing.T) {
	s, err := LoadSettings("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Move != (BoardConfig{27, 21}) || s.Spawn != (BoardConfig{3, 21}) {
		t.Fatalf("unexpected boards: %+v %+v", s.Move, s.Spawn)
	}
	if s.Search != "astar" || s.Melee != "front_only" || s.Ranged != "edge_bypass" {
		t.Fatalf("unexpected strategies: %+v", s)
	}
	if s.Preset.MaxPerType != 11 || s.Preset.Attempts != 100 || s.Preset.Fill {
		t.Fatalf("unexpected preset: %+v", s.Preset)
	}
	if s.MaxRounds != 1000 || s.Log.Level != "info" {
		t.Fatalf("unexpected settings: %+v", s)
	}
}

func TestLoadSettings_FileAndEnv(t *testing.T) {
	p := writeFile(t, "settings.yaml", `
search: uniform
preset:
  budget: 300
  ranking: lexicographic
`)
	t.Setenv("HEROES_PRESET_BUDGET", "900")
	t.Setenv("HEROES_LOG_LEVEL", "debug")

	s, err := LoadSettings(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Search != "uniform" || s.Preset.Ranking != "lexicographic" {
		t.Fatalf("file values not applied: %+v", s)
	}
	if s.Preset.Budget != 900 {
		t.Fatalf("env should override the file, budget %d", s.Preset.Budget)
	}
	if s.Log.Level != "debug" {
		t.Fatalf("env log level not applied: %q", s.Log.Level)
	}
	if s.Spawn.Width != 3 {
		t.Fatalf("unset keys keep defaults, spawn %+v", s.Spawn)
	}
}

func TestLoadSettings_Invalid(t *testing.T) {
	tests := []string{
		"search: dijkstra\n",
		"melee_policy: anyone\n",
		"preset: { ranking: random }\n",
		"preset: { budget: -5 }\n",
		"spawn_board: { width: 0, height: 21 }\n",
	}
	for _, body := range tests {
		_, err := LoadSettings(writeFile(t, "settings.yaml", body))
		if !errors.Is(err, ErrInvalidSettings) {
			t.Fatalf("%q: expected ErrInvalidSettings, got %v", body, err)
		}
	}
	if _, err := LoadSettings(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("missing settings file should fail")
	}
}
