package ga

import "math"

// frequency tallies the assignments of the bits at indices across the
// population; diversity calls it with a single locus. Assignment k sets bit j
// of k for indices[j].
func frequency(pop *Population, indices []int) []int {
	perms := make([]int, 1<<uint(len(indices)))

	for _, c := range pop.Chromosomes {
		index := 0
		for j := len(indices) - 1; j >= 0; j-- {
			if c.Gene.Has(indices[j]) {
				index += 1 << uint(j)
			}
		}
		perms[index]++
	}

	return perms
}

// entropy computes the Shannon entropy in nats of a frequency table over size samples.
func entropy(freqs []int, size int) float64 {
	p := 0.0
	for _, f := range freqs {
		if f > 0 {
			p += -(float64(f) / float64(size)) * (math.Log(float64(f)) - math.Log(float64(size)))
		}
	}
	return p
}

// diversity is the mean per-locus entropy in bits: 0 for a population of
// identical genes, 1 when every locus is evenly split.
func diversity(pop *Population) float64 {
	length := pop.Length()
	if length == 0 || pop.Size() == 0 {
		return 0
	}
	total := 0.0
	index := make([]int, 1)
	for i := 0; i < length; i++ {
		index[0] = i
		total += entropy(frequency(pop, index), pop.Size())
	}
	return total / float64(length) / math.Ln2
}
