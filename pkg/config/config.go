// Package config loads optional engine-tuning overrides from a kestrel.toml
// file. Absence of the file is not an error: every field falls back to the
// engine's hardcoded defaults.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the subset of engine and evaluation parameters a user may
// want to tune without recompiling.
type Config struct {
	Hash                  uint
	Depth                 uint
	Noise                 uint
	EndgamePhaseThreshold uint
}

// Default returns the engine's hardcoded defaults.
func Default() Config {
	return Config{
		Hash:                  64,
		Depth:                 0,
		Noise:                 10,
		EndgamePhaseThreshold: 4,
	}
}

// file mirrors the on-disk TOML layout.
type file struct {
	Engine struct {
		Hash  uint `toml:"hash"`
		Depth uint `toml:"depth"`
		Noise uint `toml:"noise"`
	} `toml:"engine"`
	Eval struct {
		EndgamePhaseThreshold uint `toml:"endgame_phase_threshold"`
	} `toml:"eval"`
}

// Load reads path and overlays any set fields onto Default. If path does not
// exist or fails to parse, Load returns Default unchanged.
func Load(path string) Config {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg
	}

	var f file
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return cfg
	}

	if f.Engine.Hash > 0 {
		cfg.Hash = f.Engine.Hash
	}
	cfg.Depth = f.Engine.Depth
	if f.Engine.Noise > 0 {
		cfg.Noise = f.Engine.Noise
	}
	if f.Eval.EndgamePhaseThreshold > 0 {
		cfg.EndgamePhaseThreshold = f.Eval.EndgamePhaseThreshold
	}
	return cfg
}
