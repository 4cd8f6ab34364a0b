// SPDX-License-Identifier: MIT

package evolution

import "github.com/katalvlaran/evotsp/chromosome"

// replaceGlobal sorts the pooled candidates and writes the best len(pool)
// of them into the drawn slots, best first into the lowest slot. The
// candidates of ⌊k/2⌋ pairs always number at least k for k ≥ 2. The parent
// left unpaired by an odd k contributes no candidate.
func (e *Engine) replaceGlobal(pool []int) {
	chromosome.Sort(e.candidates)
	for n, idx := range pool {
		e.population[idx] = e.candidates[n]
	}
}

// replacePair keeps the best two of a pair's parents and children in the
// pair's own slots, the better one in slot i.
func (e *Engine) replacePair(i, j int, child1, child2 *chromosome.Chromosome) {
	four := [4]*chromosome.Chromosome{child1, child2, e.population[i], e.population[j]}
	chromosome.Sort(four[:])
	e.population[i], e.population[j] = four[0], four[1]
}
