package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Settings struct {
	Assets    string       `mapstructure:"assets"`
	Move      BoardConfig  `mapstructure:"move_board"`
	Spawn     BoardConfig  `mapstructure:"spawn_board"`
	Search    string       `mapstructure:"search"`        // astar | uniform
	Melee     string       `mapstructure:"melee_policy"`  // front_only | edge_bypass
	Ranged    string       `mapstructure:"ranged_policy"` // front_only | edge_bypass
	Preset    PresetConfig `mapstructure:"preset"`
	MaxRounds int          `mapstructure:"max_rounds"`
	Seed      int64        `mapstructure:"seed"`
	Log       LogConfig    `mapstructure:"log"`
}

// BoardConfig sizes one grid. The move board and the spawn board are independent.
type BoardConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

type PresetConfig struct {
	Budget     int    `mapstructure:"budget"`
	Ranking    string `mapstructure:"ranking"` // composite | lexicographic
	MaxPerType int    `mapstructure:"max_per_type"`
	Attempts   int    `mapstructure:"attempts"`
	Fill       bool   `mapstructure:"fill"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	FileDir    string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
	Dev        bool   `mapstructure:"dev"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("assets", "assets")
	v.SetDefault("move_board.width", 27)
	v.SetDefault("move_board.height", 21)
	v.SetDefault("spawn_board.width", 3)
	v.SetDefault("spawn_board.height", 21)
	v.SetDefault("search", "astar")
	v.SetDefault("melee_policy", "front_only")
	v.SetDefault("ranged_policy", "edge_bypass")
	v.SetDefault("preset.budget", 1500)
	v.SetDefault("preset.ranking", "composite")
	v.SetDefault("preset.max_per_type", 11)
	v.SetDefault("preset.attempts", 100)
	v.SetDefault("preset.fill", false)
	v.SetDefault("max_rounds", 1000)
	v.SetDefault("seed", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 7)
	v.SetDefault("log.file", "")
	v.SetDefault("log.compress", false)
	v.SetDefault("log.dev", false)
}

// LoadSettings reads path when it is not empty, then applies HEROES_* environment
// overrides (HEROES_PRESET_BUDGET=900 sets preset.budget).
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("heroes")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read settings %s: %w", path, err)
		}
	}
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

var ErrInvalidSettings = errors.New("invalid settings")

func (s *Settings) validate() error {
	for name, b := range map[string]BoardConfig{"move_board": s.Move, "spawn_board": s.Spawn} {
		if b.Width <= 0 || b.Height <= 0 {
			return fmt.Errorf("%s %dx%d: %w", name, b.Width, b.Height, ErrInvalidSettings)
		}
	}
	if s.Search != "astar" && s.Search != "uniform" {
		return fmt.Errorf("search %q: %w", s.Search, ErrInvalidSettings)
	}
	for _, p := range []string{s.Melee, s.Ranged} {
		if p != "front_only" && p != "edge_bypass" {
			return fmt.Errorf("target policy %q: %w", p, ErrInvalidSettings)
		}
	}
	if s.Preset.Ranking != "composite" && s.Preset.Ranking != "lexicographic" {
		return fmt.Errorf("preset.ranking %q: %w", s.Preset.Ranking, ErrInvalidSettings)
	}
	if s.Preset.Budget < 0 {
		return fmt.Errorf("preset.budget %d: %w", s.Preset.Budget, ErrInvalidSettings)
	}
	return nil
}
