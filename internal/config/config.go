// Package config loads the TOML machine description consumed by the
// coilpos CLI. The library packages themselves take plain structs; this
// is the only place file formats appear.
package config

import (
	"github.com/BurntSushi/toml"

	"github.com/matzehuels/coilpos/pkg/errors"
	"github.com/matzehuels/coilpos/pkg/layout"
)

// Machine holds the plasma shape parameters.
type Machine struct {
	R0     float64 `toml:"r_0"`          // major radius [m]
	Aspect float64 `toml:"aspect_ratio"` // R0 / minor radius
	Kappa  float64 `toml:"kappa"`        // elongation
	Delta  float64 `toml:"delta"`        // triangularity
	Type   string  `toml:"reactor_type"` // "Normal" or "ST"
}

// Coils holds the coil-count and solenoid parameters.
type Coils struct {
	NPF    int     `toml:"n_pf"`
	NCS    int     `toml:"n_cs"`
	XCS    float64 `toml:"x_cs"`      // solenoid radial centre [m]
	TkCS   float64 `toml:"tk_cs"`     // solenoid half thickness [m]
	Gap    float64 `toml:"cs_gap"`    // gap between CS modules [m]
	Layout string  `toml:"cs_layout"` // "ITER" or "DEMO"
	DCoil  float64 `toml:"d_coil"`    // PF starter cross-section [m]
}

// Track holds the synthetic reference-track parameters.
type Track struct {
	Extension float64 `toml:"extension"` // degrees past each midplane crossing
	Offset    float64 `toml:"offset"`    // plasma-to-track clearance [m]
	Points    int     `toml:"points"`
}

// Config is the full machine description.
type Config struct {
	Machine Machine `toml:"machine"`
	Coils   Coils   `toml:"coils"`
	Track   Track   `toml:"track"`
}

// Default returns an EU-DEMO-like machine description.
func Default() *Config {
	return &Config{
		Machine: Machine{R0: 9.0, Aspect: 3.1, Kappa: 1.6, Delta: 0.33, Type: string(layout.Normal)},
		Coils:   Coils{NPF: 6, NCS: 5, XCS: 2.9, TkCS: 0.5, Gap: 0.1, Layout: string(layout.DEMO), DCoil: 0.5},
		Track:   Track{Extension: 25, Offset: 1.5, Points: 200},
	}
}

// Load reads a TOML machine description. Missing fields fall back to the
// defaults; the result is validated before being returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, errors.Wrap(errors.CodeConfigInvalid, err, "load %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the physical plausibility of the description.
func (c *Config) Validate() error {
	switch {
	case c.Machine.R0 <= 0:
		return errors.New(errors.CodeConfigInvalid, "r_0 must be positive, got %g", c.Machine.R0)
	case c.Machine.Aspect <= 1:
		return errors.New(errors.CodeConfigInvalid, "aspect_ratio must exceed 1, got %g", c.Machine.Aspect)
	case c.Machine.Kappa <= 0:
		return errors.New(errors.CodeConfigInvalid, "kappa must be positive, got %g", c.Machine.Kappa)
	case c.Coils.NPF < 1:
		return errors.New(errors.CodeConfigInvalid, "n_pf must be at least 1, got %d", c.Coils.NPF)
	case c.Coils.NCS < 0:
		return errors.New(errors.CodeConfigInvalid, "n_cs must not be negative, got %d", c.Coils.NCS)
	case c.Track.Points < 2:
		return errors.New(errors.CodeConfigInvalid, "track points must be at least 2, got %d", c.Track.Points)
	}
	switch layout.ReactorType(c.Machine.Type) {
	case layout.Normal, layout.ST:
	default:
		return errors.New(errors.CodeConfigInvalid, "reactor_type %q: choose Normal or ST", c.Machine.Type)
	}
	return nil
}

// Positioner builds the layout generator described by the config. The
// caller supplies the track and logger.
func (c *Config) Positioner() *layout.Positioner {
	return &layout.Positioner{
		R0:     c.Machine.R0,
		A:      c.Machine.Aspect,
		Delta:  c.Machine.Delta,
		Kappa:  c.Machine.Kappa,
		XCS:    c.Coils.XCS,
		TkCS:   c.Coils.TkCS,
		NPF:    c.Coils.NPF,
		NCS:    c.Coils.NCS,
		Gap:    c.Coils.Gap,
		RType:  layout.ReactorType(c.Machine.Type),
		Layout: layout.CSLayout(c.Coils.Layout),
	}
}
