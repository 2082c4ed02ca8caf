// Copyright 2015 Dorival de Moraes Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nsga2

import (
	"encoding/json"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/rnd"
)

// Config holds every tunable of one NSGA-II run: population size,
// generations, crossover/mutation rates, per-gene bounds, SBX/mutation
// distribution indices, RNG seed, optional parallelism degree, and a log
// directory field that the driver itself does not use. A JSON-unmarshalled struct validated by
// CalcDerived before use.
type Config struct {
	// sizes
	PopulationSize int `json:"populationSize"`
	Generations    int `json:"generations"`

	// genome bounds (length L); both required and must match in length
	LowerBounds []float64 `json:"lowerBounds"`
	UpperBounds []float64 `json:"upperBounds"`

	// crossover and mutation
	CrossoverRate float64 `json:"crossoverRate"`
	MutationRate  float64 `json:"mutationRate"` // 0 means "use 1/L"
	SBXEta        float64 `json:"sbxEta"`
	MutationEta   float64 `json:"mutationEta"`

	// execution
	Seed        int    `json:"seed"`
	Parallelism int    `json:"parallelism"` // <=1 means sequential
	LogDir      string `json:"logDir"`      // not read by Driver; per-generation output goes through Driver.OnGeneration

	// derived
	L int `json:"-"`
}

// DefaultConfig returns sensible defaults for everything except the
// problem-specific genome bounds, which callers must set.
func DefaultConfig() Config {
	return Config{
		PopulationSize: 50,
		Generations:    100,
		CrossoverRate:  0.9,
		SBXEta:         20,
		MutationEta:    20,
		Parallelism:    1,
	}
}

// Read loads JSON-encoded overrides from filenamepath on top of
// DefaultConfig, then validates via CalcDerived.
func Read(filenamepath string) (cfg Config) {
	cfg = DefaultConfig()
	b, err := io.ReadFile(filenamepath)
	if err != nil {
		chk.Panic("nsga2: cannot read config file %q: %v", filenamepath, err)
	}
	if err := json.Unmarshal(b, &cfg); err != nil {
		chk.Panic("nsga2: cannot unmarshal config file %q: %v", filenamepath, err)
	}
	cfg.CalcDerived()
	return cfg
}

// CalcDerived computes L and fails fast on any configuration inconsistency.
func (c *Config) CalcDerived() {
	if c.PopulationSize < 2 || c.PopulationSize%2 != 0 {
		chk.Panic("nsga2: PopulationSize must be even and >= 2, got %d", c.PopulationSize)
	}
	if c.Generations < 0 {
		chk.Panic("nsga2: Generations must be non-negative, got %d", c.Generations)
	}
	if len(c.LowerBounds) == 0 {
		chk.Panic("nsga2: gene length (len(LowerBounds)) must be > 0")
	}
	chk.IntAssert(len(c.UpperBounds), len(c.LowerBounds))
	for i := range c.LowerBounds {
		if c.LowerBounds[i] > c.UpperBounds[i] {
			chk.Panic("nsga2: gene %d has LowerBounds > UpperBounds (%g > %g)",
				i, c.LowerBounds[i], c.UpperBounds[i])
		}
	}
	c.L = len(c.LowerBounds)
	if c.MutationRate <= 0 {
		c.MutationRate = 1.0 / float64(c.L)
	}
	if c.Parallelism < 1 {
		c.Parallelism = 1
	}
	rnd.Init(c.Seed)
}

// EnforceRange clamps gene i of x into [lo, hi].
func (c *Config) EnforceRange(i int, x float64) float64 {
	if x < c.LowerBounds[i] {
		return c.LowerBounds[i]
	}
	if x > c.UpperBounds[i] {
		return c.UpperBounds[i]
	}
	return x
}
