// Copyright 2015 Dorival de Moraes Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nsga2

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/utl"
)

var posInf = math.Inf(1)

// Dominates reports whether a Pareto-dominates b under plain minimisation.
// There is no constraint channel here — every gene is kept in range by
// construction — so this is a direct call into gosl's own Pareto-dominance
// test over the two objective vectors.
func Dominates(a, b *Individual) bool {
	aDominates, _ := utl.DblsParetoMin(a.Ova, b.Ova)
	return aDominates
}

// FastNonDominatedSort partitions pop into Pareto fronts (front 0 is
// non-dominated), assigning FrontId on every Individual and returning the
// fronts themselves in ascending order. Implements the classic
// Deb-Pratap-Agarwal-Meyarivan algorithm.
func FastNonDominatedSort(pop []*Individual) [][]*Individual {
	n := len(pop)
	dominatedBy := make([][]int, n) // indices this one dominates
	dominationCount := make([]int, n)
	var fronts [][]*Individual
	front0 := []int{}

	for p := 0; p < n; p++ {
		for q := 0; q < n; q++ {
			if p == q {
				continue
			}
			if Dominates(pop[p], pop[q]) {
				dominatedBy[p] = append(dominatedBy[p], q)
			} else if Dominates(pop[q], pop[p]) {
				dominationCount[p]++
			}
		}
		if dominationCount[p] == 0 {
			pop[p].FrontId = 0
			front0 = append(front0, p)
		}
	}

	curr := front0
	frontIdx := 0
	for len(curr) > 0 {
		var members []*Individual
		for _, p := range curr {
			members = append(members, pop[p])
		}
		fronts = append(fronts, members)

		var next []int
		for _, p := range curr {
			for _, q := range dominatedBy[p] {
				dominationCount[q]--
				if dominationCount[q] == 0 {
					pop[q].FrontId = frontIdx + 1
					next = append(next, q)
				}
			}
		}
		curr = next
		frontIdx++
	}
	return fronts
}

// CrowdingDistance assigns DistCrowd within one front, per objective-wise
// normalised gap summation; boundary individuals get +Inf so they are never
// truncated ahead of interior ones.
func CrowdingDistance(front []*Individual) {
	m := len(front)
	if m == 0 {
		return
	}
	for _, ind := range front {
		ind.DistCrowd = 0
	}
	if m <= 2 {
		for _, ind := range front {
			ind.DistCrowd = posInf
		}
		return
	}
	nobj := len(front[0].Ova)
	idx := make([]int, m)
	for i := range idx {
		idx[i] = i
	}
	for k := 0; k < nobj; k++ {
		sortByObjective(front, idx, k)
		lo := front[idx[0]].Ova[k]
		hi := front[idx[m-1]].Ova[k]
		front[idx[0]].DistCrowd = posInf
		front[idx[m-1]].DistCrowd = posInf
		span := hi - lo
		if span <= 0 {
			continue
		}
		for i := 1; i < m-1; i++ {
			prev := front[idx[i-1]].Ova[k]
			next := front[idx[i+1]].Ova[k]
			front[idx[i]].DistCrowd += (next - prev) / span
		}
	}
}

func sortByObjective(front []*Individual, idx []int, k int) {
	sort.Slice(idx, func(i, j int) bool {
		return front[idx[i]].Ova[k] < front[idx[j]].Ova[k]
	})
}
