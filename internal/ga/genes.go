package ga

// BinaryGenes returns n random bits
func BinaryGenes(n int, r Rand) []int {
	genes := make([]int, n)
	for i := range genes {
		genes[i] = r.Int(0, 2)
	}
	return genes
}

// RuneGenes returns n random runes in [lo, hi]
func RuneGenes(n int, lo, hi rune, r Rand) []rune {
	genes := make([]rune, n)
	for i := range genes {
		genes[i] = rune(r.Int(int(lo), int(hi)+1))
	}
	return genes
}

// FloatGenes returns n random floats in [lo, hi)
func FloatGenes(n int, lo, hi float64, r Rand) []float64 {
	genes := make([]float64, n)
	for i := range genes {
		genes[i] = Float64Range(r, lo, hi)
	}
	return genes
}

// PermutationGenes returns a random permutation of 0..n-1
func PermutationGenes(n int, r Rand) []int {
	genes := make([]int, n)
	for i := range genes {
		genes[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := r.Int(0, i+1)
		genes[i], genes[j] = genes[j], genes[i]
	}
	return genes
}

// BinaryToInt reads bits most significant first
func BinaryToInt(bits []int) int {
	v := 0
	for _, b := range bits {
		v = v<<1 | (b & 1)
	}
	return v
}
