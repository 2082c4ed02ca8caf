// Copyright 2015 Dorival de Moraes Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nsga2

import (
	"math"

	"github.com/cpmech/gosl/rnd"
)

// TournamentSelect runs one binary tournament over pop (already ranked and
// crowded) and returns the winner under the crowded-comparison operator.
func TournamentSelect(pop Population) *Individual {
	idx := rnd.IntGetUniqueN(0, len(pop), 2)
	a, b := pop[idx[0]], pop[idx[1]]
	if betterThan(a, b) {
		return a
	}
	return b
}

const sbxEqualEps = 1e-14

// SBX performs bounded simulated binary crossover on one gene pair. Parents
// within sbxEqualEps of each other pass through unchanged — crossing over
// two identical values only adds floating-point noise. Otherwise children
// are drawn from the bound-aware beta/alpha construction and their order is
// swapped with probability 0.5 before clamping to [lo, hi].
func SBX(x1, x2, lo, hi, eta float64) (c1, c2 float64) {
	if math.Abs(x1-x2) < sbxEqualEps {
		return x1, x2
	}
	y1, y2 := math.Min(x1, x2), math.Max(x1, x2)
	u := rnd.Float64(0, 1)
	beta := 1 + 2*(y1-lo)/(y2-y1)
	alpha := 2 - math.Pow(beta, -(eta+1))
	var betaq float64
	if u <= 1/alpha {
		betaq = math.Pow(u*alpha, 1/(eta+1))
	} else {
		betaq = math.Pow(1/(2-u*alpha), 1/(eta+1))
	}
	a := 0.5 * ((y1 + y2) - betaq*(y2-y1))
	b := 0.5 * ((y1 + y2) + betaq*(y2-y1))
	if rnd.FlipCoin(0.5) {
		a, b = b, a
	}
	return clamp(a, lo, hi), clamp(b, lo, hi)
}

// PolynomialMutation perturbs a single gene value within [lo, hi] using the
// bound-aware polynomial mutation operator with distribution index eta.
func PolynomialMutation(x, lo, hi, eta float64) float64 {
	delta := hi - lo
	if delta <= 0 {
		return x
	}
	d1 := (x - lo) / delta
	d2 := (hi - x) / delta
	u := rnd.Float64(0, 1)
	var deltaq float64
	if u < 0.5 {
		deltaq = math.Pow(2*u+(1-2*u)*math.Pow(1-d1, eta+1), 1/(eta+1)) - 1
	} else {
		deltaq = 1 - math.Pow(2*(1-u)+2*(u-0.5)*math.Pow(1-d2, eta+1), 1/(eta+1))
	}
	return clamp(x+deltaq*delta, lo, hi)
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// MakeOffspring produces one child pair from two parents. One trial at
// crossoverRate decides for the whole pair whether SBX is applied to every
// gene or the parents' genes are copied; polynomial mutation is then tried
// gene-wise, per child, at mutationRate.
func MakeOffspring(p1, p2 *Individual, cfg Config) (c1, c2 *Individual) {
	c1 = NewIndividual(cfg.L, len(p1.Ova))
	c2 = NewIndividual(cfg.L, len(p1.Ova))
	crossover := rnd.FlipCoin(cfg.CrossoverRate)
	for g := 0; g < cfg.L; g++ {
		x1, x2 := p1.Genes[g], p2.Genes[g]
		if crossover {
			x1, x2 = SBX(x1, x2, cfg.LowerBounds[g], cfg.UpperBounds[g], cfg.SBXEta)
		}
		if rnd.FlipCoin(cfg.MutationRate) {
			x1 = PolynomialMutation(x1, cfg.LowerBounds[g], cfg.UpperBounds[g], cfg.MutationEta)
		}
		if rnd.FlipCoin(cfg.MutationRate) {
			x2 = PolynomialMutation(x2, cfg.LowerBounds[g], cfg.UpperBounds[g], cfg.MutationEta)
		}
		c1.Genes[g] = x1
		c2.Genes[g] = x2
	}
	return c1, c2
}
