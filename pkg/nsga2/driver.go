// Copyright 2015 Dorival de Moraes Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package nsga2 implements a two-objective NSGA-II driver: binary
// tournament selection, SBX crossover, polynomial mutation, fast
// non-dominated sorting, crowding-distance, and front-fill environmental
// selection, with optional worker-pool parallel evaluation.
package nsga2

import (
	"sync"

	"go.uber.org/zap"
)

// EvalFunc maps a gene vector to its objective values. Both objectives are
// minimised; callers negate anything they want maximised before returning.
// Implementations must be safe to call concurrently from multiple
// goroutines with no shared mutable state, since Driver.Run may invoke it
// from a worker pool.
type EvalFunc func(genes []float64) []float64

// Driver runs one NSGA-II optimisation. OnGeneration, if set, is called
// after each generation's environmental selection with the generation
// index (0-based) and the resulting population, letting a caller log
// per-generation CSV output without nsga2 depending on any I/O package.
type Driver struct {
	Config       Config
	Eval         EvalFunc
	OnGeneration func(gen int, pop Population)
	Log          *zap.Logger // optional; nil disables progress logging
}

// NewDriver constructs a Driver. Config must already be validated via
// CalcDerived (Read does this automatically).
func NewDriver(cfg Config, eval EvalFunc) *Driver {
	return &Driver{Config: cfg, Eval: eval, Log: zap.NewNop()}
}

// Run executes the full evolutionary loop and returns the final population,
// sorted best-first under the crowded-comparison operator.
func (d *Driver) Run() Population {
	cfg := d.Config
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	d.Log.Info("nsga2: starting evolution",
		zap.Int("populationSize", cfg.PopulationSize),
		zap.Int("generations", cfg.Generations),
		zap.Float64("crossoverRate", cfg.CrossoverRate),
		zap.Float64("mutationRate", cfg.MutationRate),
		zap.Int("parallelism", cfg.Parallelism),
	)

	pop := NewRandomPopulation(cfg.PopulationSize, cfg)
	d.evaluateAll(pop)
	d.rankAndCrowd(pop)
	pop.SortByBest()
	d.reportGeneration(0, pop)

	for gen := 1; gen <= cfg.Generations; gen++ {
		offspring := d.makeOffspring(pop)
		d.evaluateAll(offspring)

		combined := make(Population, 0, len(pop)+len(offspring))
		combined = append(combined, pop...)
		combined = append(combined, offspring...)

		pop = environmentalSelect(combined, cfg.PopulationSize)
		pop.SortByBest()
		d.reportGeneration(gen, pop)
	}
	d.Log.Info("nsga2: evolution complete", zap.Int("finalFrontSize", countFront0(pop)))
	return pop
}

func (d *Driver) reportGeneration(gen int, pop Population) {
	d.Log.Debug("nsga2: generation complete",
		zap.Int("gen", gen),
		zap.Int("front0Size", countFront0(pop)),
	)
	if d.OnGeneration != nil {
		d.OnGeneration(gen, pop)
	}
}

func countFront0(pop Population) int {
	n := 0
	for _, ind := range pop {
		if ind.FrontId == 0 {
			n++
		}
	}
	return n
}

// makeOffspring produces exactly cfg.PopulationSize children via repeated
// binary-tournament-selection + SBX + polynomial-mutation pairs.
func (d *Driver) makeOffspring(pop Population) Population {
	cfg := d.Config
	offspring := make(Population, 0, cfg.PopulationSize)
	for len(offspring) < cfg.PopulationSize {
		p1 := TournamentSelect(pop)
		p2 := TournamentSelect(pop)
		c1, c2 := MakeOffspring(p1, p2, cfg)
		offspring = append(offspring, c1)
		if len(offspring) < cfg.PopulationSize {
			offspring = append(offspring, c2)
		}
	}
	return offspring
}

// evaluateAll fills in Ova for every individual in pop. With
// Config.Parallelism <= 1 it runs sequentially; otherwise it fans out over
// a bounded worker pool, grounded on the reference NSGA-II's
// channel-plus-WaitGroup parallel evaluation shape. Evaluation order across
// workers is unspecified, but every downstream step (sorting, crowding,
// selection) reads pop by index afterward, so result order is still
// deterministic given a deterministic Eval and RNG seed.
func (d *Driver) evaluateAll(pop Population) {
	if d.Config.Parallelism <= 1 || len(pop) == 0 {
		for _, ind := range pop {
			ind.Ova = d.Eval(ind.Genes)
		}
		return
	}
	workers := d.Config.Parallelism
	if workers > len(pop) {
		workers = len(pop)
	}
	workChan := make(chan int, len(pop))
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range workChan {
				pop[i].Ova = d.Eval(pop[i].Genes)
			}
		}()
	}
	for i := range pop {
		workChan <- i
	}
	close(workChan)
	wg.Wait()
}

// rankAndCrowd runs fast non-dominated sorting followed by crowding
// distance within every resulting front.
func (d *Driver) rankAndCrowd(pop Population) {
	fronts := FastNonDominatedSort(pop)
	for _, front := range fronts {
		CrowdingDistance(front)
	}
}

// environmentalSelect fills the next generation front-by-front, truncating
// the last admitted front by descending crowding distance when it would
// overflow targetSize — the standard NSGA-II survivor-selection rule.
func environmentalSelect(combined Population, targetSize int) Population {
	fronts := FastNonDominatedSort(combined)
	next := make(Population, 0, targetSize)
	for _, front := range fronts {
		CrowdingDistance(front)
		if len(next)+len(front) <= targetSize {
			next = append(next, front...)
			continue
		}
		remaining := targetSize - len(next)
		sorted := make(Population, len(front))
		copy(sorted, front)
		sorted.SortByBest()
		next = append(next, sorted[:remaining]...)
		break
	}
	return next
}
