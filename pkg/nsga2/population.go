// Copyright 2015 Dorival de Moraes Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nsga2

import (
	"sort"

	"github.com/cpmech/gosl/rnd"
)

// Population is a sortable slice of Individuals, ordered by the
// crowded-comparison operator (front, then crowding distance) instead of
// fitness-proportionate rank, since NSGA-II selects by Pareto dominance,
// not a scalar fitness.
type Population []*Individual

func (p Population) Len() int           { return len(p) }
func (p Population) Less(i, j int) bool { return betterThan(p[i], p[j]) }
func (p Population) Swap(i, j int)      { p[i], p[j] = p[j], p[i] }

// SortByBest orders the population best-first under the crowded-comparison
// operator. Requires FrontId/DistCrowd to already be populated.
func (p Population) SortByBest() { sort.Stable(p) }

// NewRandomPopulation allocates size individuals with genes drawn uniformly
// from [lo[i], hi[i]) for each gene i.
func NewRandomPopulation(size int, cfg Config) Population {
	pop := make(Population, size)
	for i := range pop {
		ind := NewIndividual(cfg.L, 2)
		for g := 0; g < cfg.L; g++ {
			ind.Genes[g] = rnd.Float64(cfg.LowerBounds[g], cfg.UpperBounds[g])
		}
		pop[i] = ind
	}
	return pop
}
