package main

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// manifest is the TOML batch description. Top-level values are defaults for
// every entry; each [[field]] block overrides them per asset. Relative paths
// resolve against the manifest's directory.
//
//	output_size = 32
//	spread = 16
//	threshold = 128
//
//	[[field]]
//	input = "glyphs/a.png"
//	output = "build/a.dfield"
//
//	[[field]]
//	input = "raw/logo.dat"
//	output = "build/logo.dfield"
//	input_width = 256
//	input_height = 256
//	spread = 24
type manifest struct {
	InputSize    int32           `toml:"input_size"`
	OutputSize   int32           `toml:"output_size"`
	InputWidth   int32           `toml:"input_width"`
	InputHeight  int32           `toml:"input_height"`
	OutputWidth  int32           `toml:"output_width"`
	OutputHeight int32           `toml:"output_height"`
	Spread       int32           `toml:"spread"`
	Threshold    uint8           `toml:"threshold"`
	Workers      int             `toml:"workers"`
	Fields       []manifestField `toml:"field"`
}

// manifestField is one [[field]] entry.
type manifestField struct {
	Input        string `toml:"input"`
	Output       string `toml:"output"`
	InputSize    int32  `toml:"input_size"`
	OutputSize   int32  `toml:"output_size"`
	InputWidth   int32  `toml:"input_width"`
	InputHeight  int32  `toml:"input_height"`
	OutputWidth  int32  `toml:"output_width"`
	OutputHeight int32  `toml:"output_height"`
	Spread       int32  `toml:"spread"`
	Threshold    uint8  `toml:"threshold"`
}

// loadManifest parses a manifest file into validated jobs.
func loadManifest(path string) ([]job, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load manifest: %w", err)
	}
	var m manifest
	if err := toml.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if len(m.Fields) == 0 {
		return nil, fmt.Errorf("manifest %s lists no fields", path)
	}

	base := filepath.Dir(path)
	jobs := make([]job, 0, len(m.Fields))
	for i, f := range m.Fields {
		j := job{
			Input:        resolvePath(base, f.Input),
			Output:       resolvePath(base, f.Output),
			InputWidth:   pick32(f.InputWidth, m.InputWidth),
			InputHeight:  pick32(f.InputHeight, m.InputHeight),
			OutputWidth:  pick32(f.OutputWidth, m.OutputWidth),
			OutputHeight: pick32(f.OutputHeight, m.OutputHeight),
			Spread:       pick32(f.Spread, m.Spread),
			Threshold:    f.Threshold,
			Workers:      m.Workers,
		}
		if f.Threshold == 0 {
			j.Threshold = m.Threshold
		}
		if s := pick32(f.InputSize, m.InputSize); s > 0 && f.InputWidth == 0 && f.InputHeight == 0 {
			j.InputWidth, j.InputHeight = s, s
		}
		if s := pick32(f.OutputSize, m.OutputSize); s > 0 && f.OutputWidth == 0 && f.OutputHeight == 0 {
			j.OutputWidth, j.OutputHeight = s, s
		}
		if err := validateJob(&j); err != nil {
			return nil, fmt.Errorf("manifest %s field %d: %w", path, i, err)
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

// pick32 returns the per-field value when set, else the manifest default.
func pick32(field, fallback int32) int32 {
	if field != 0 {
		return field
	}
	return fallback
}

func resolvePath(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
