package similarity

import "math"

// vectorSpace is a dense TF-IDF space over a fixed corpus. Term indexes are
// assigned in order of first appearance so results do not depend on map order.
type vectorSpace struct {
	index   map[string]int
	vectors [][]float64
}

// fitTransform builds smoothed TF-IDF vectors, idf = ln((1+n)/(1+df)) + 1,
// each normalised to unit length.
func fitTransform(corpus []string) *vectorSpace {
	index := make(map[string]int)
	counts := make([]map[int]int, len(corpus))
	var df []int

	for d, text := range corpus {
		counts[d] = make(map[int]int)
		for _, tok := range tokenize(text) {
			i, ok := index[tok]
			if !ok {
				i = len(index)
				index[tok] = i
				df = append(df, 0)
			}
			if counts[d][i] == 0 {
				df[i]++
			}
			counts[d][i]++
		}
	}

	n := float64(len(corpus))
	idf := make([]float64, len(df))
	for i, f := range df {
		idf[i] = math.Log((1+n)/(1+float64(f))) + 1
	}

	vectors := make([][]float64, len(corpus))
	for d := range corpus {
		vec := make([]float64, len(index))
		for i, c := range counts[d] {
			vec[i] = float64(c) * idf[i]
		}
		normalize(vec)
		vectors[d] = vec
	}

	return &vectorSpace{index: index, vectors: vectors}
}

func normalize(vec []float64) {
	var sum float64
	for _, v := range vec {
		sum += v * v
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range vec {
		vec[i] /= norm
	}
}

// cosine returns the cosine similarity of a and b. Zero vectors score 0.
func cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	s := dot / (math.Sqrt(na) * math.Sqrt(nb))
	return math.Max(0, math.Min(1, s))
}
