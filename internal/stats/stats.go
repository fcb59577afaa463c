// Package stats carries the per-level tuning data: speed percentages,
// the scatter/chase phase schedule, and the fright window length.
// Levels are loaded from YAML and addressed 1-based; past the last
// defined level the table clamps, so late levels reuse the final row.
package stats

import (
	"fmt"
	"os"

	"github.com/gridmunch/server/internal/ghost"
	"gopkg.in/yaml.v3"
)

// Phase is one entry of a level's scatter/chase schedule. Ticks <= 0
// marks a terminal phase that holds until the level ends.
type Phase struct {
	Mode  ghost.Mode
	Ticks int
}

// Level is one row of the tuning table.
type Level struct {
	GhostSpeedPct  int
	TunnelSpeedPct int
	FrightSpeedPct int
	PlayerSpeedPct int

	FrightTicks int

	// The shadow ghost speeds up once the dot count drops to
	// ElroyDots. Zero disables the acceleration for the level.
	ElroyDots     int
	ElroySpeedPct int

	Phases []Phase
}

// Table holds all loaded levels.
type Table struct {
	levels []Level
}

type phaseSpec struct {
	Mode  string `yaml:"mode"`
	Ticks int    `yaml:"ticks"`
}

type levelSpec struct {
	GhostSpeedPct  int `yaml:"ghost_speed_pct"`
	TunnelSpeedPct int `yaml:"tunnel_speed_pct"`
	FrightSpeedPct int `yaml:"fright_speed_pct"`
	PlayerSpeedPct int `yaml:"player_speed_pct"`

	FrightTicks int `yaml:"fright_ticks"`

	ElroyDots     int `yaml:"elroy_dots"`
	ElroySpeedPct int `yaml:"elroy_speed_pct"`

	Phases []phaseSpec `yaml:"phases"`
}

type levelListFile struct {
	Levels []levelSpec `yaml:"levels"`
}

// LoadTable loads the level tuning table from a level_list.yaml file.
func LoadTable(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level list %s: %w", path, err)
	}
	var file levelListFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse level list: %w", err)
	}
	if len(file.Levels) == 0 {
		return nil, fmt.Errorf("level list %s: no levels defined", path)
	}

	t := &Table{levels: make([]Level, 0, len(file.Levels))}
	for i, spec := range file.Levels {
		lv, err := buildLevel(spec)
		if err != nil {
			return nil, fmt.Errorf("level %d: %w", i+1, err)
		}
		t.levels = append(t.levels, lv)
	}
	return t, nil
}

// Count returns the number of defined levels.
func (t *Table) Count() int { return len(t.levels) }

// Level returns the 1-based level row, clamped to the last defined one.
func (t *Table) Level(n int) Level {
	if n < 1 {
		n = 1
	}
	if n > len(t.levels) {
		n = len(t.levels)
	}
	return t.levels[n-1]
}

func buildLevel(spec levelSpec) (Level, error) {
	lv := Level{
		GhostSpeedPct:  spec.GhostSpeedPct,
		TunnelSpeedPct: spec.TunnelSpeedPct,
		FrightSpeedPct: spec.FrightSpeedPct,
		PlayerSpeedPct: spec.PlayerSpeedPct,
		FrightTicks:    spec.FrightTicks,
		ElroyDots:      spec.ElroyDots,
		ElroySpeedPct:  spec.ElroySpeedPct,
	}
	for _, pct := range []int{lv.GhostSpeedPct, lv.TunnelSpeedPct, lv.FrightSpeedPct, lv.PlayerSpeedPct} {
		if pct <= 0 {
			return Level{}, fmt.Errorf("speed percentage must be positive, got %d", pct)
		}
	}
	if len(spec.Phases) == 0 {
		return Level{}, fmt.Errorf("no scatter/chase phases")
	}
	for i, ps := range spec.Phases {
		mode, err := parsePhaseMode(ps.Mode)
		if err != nil {
			return Level{}, fmt.Errorf("phase %d: %w", i, err)
		}
		terminal := i == len(spec.Phases)-1
		if !terminal && ps.Ticks <= 0 {
			return Level{}, fmt.Errorf("phase %d: only the final phase may run forever", i)
		}
		lv.Phases = append(lv.Phases, Phase{Mode: mode, Ticks: ps.Ticks})
	}
	return lv, nil
}

func parsePhaseMode(s string) (ghost.Mode, error) {
	switch s {
	case "scatter":
		return ghost.ModeScatter, nil
	case "chase":
		return ghost.ModeChase, nil
	}
	return 0, fmt.Errorf("unknown phase mode %q", s)
}
