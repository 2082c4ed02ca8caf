// Copyright 2015 Dorival de Moraes Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nsga2

// Individual is one genome plus its evaluated objectives and the
// bookkeeping NSGA-II's ranking and crowding stages attach to it.
type Individual struct {
	Genes     []float64
	Ova       []float64 // objective values, both minimised
	FrontId   int        // 0-based Pareto front index after sorting
	DistCrowd float64    // crowding distance within FrontId; +Inf at front boundaries
}

// NewIndividual allocates an Individual with L genes and nobj objectives.
func NewIndividual(L, nobj int) *Individual {
	return &Individual{
		Genes: make([]float64, L),
		Ova:   make([]float64, nobj),
	}
}

// Clone returns a deep copy.
func (ind *Individual) Clone() *Individual {
	out := &Individual{
		Genes:     make([]float64, len(ind.Genes)),
		Ova:       make([]float64, len(ind.Ova)),
		FrontId:   ind.FrontId,
		DistCrowd: ind.DistCrowd,
	}
	copy(out.Genes, ind.Genes)
	copy(out.Ova, ind.Ova)
	return out
}

// betterThan implements the crowded-comparison operator: lower front wins;
// within the same front, larger crowding distance wins.
func betterThan(a, b *Individual) bool {
	if a.FrontId != b.FrontId {
		return a.FrontId < b.FrontId
	}
	return a.DistCrowd > b.DistCrowd
}
