package trajectory

// DefaultDecay is the time decay constant k of Score.
const DefaultDecay = 0.1

// Similarity returns the fraction of predicted's cells that exactly match
// actual at the same index. Indices past the shorter trajectory count as
// misses; the denominator is always predicted.Len(). An empty prediction
// scores 0.
//
// The metric is per cell, not per shape: a guess with the right moves but a
// wrong start scores 0.
func Similarity(predicted, actual Trajectory) float64 {
	if predicted.Len() == 0 {
		return 0
	}
	n := min(predicted.Len(), actual.Len())
	matches := 0
	for i := 0; i < n; i++ {
		if predicted.cells[i].Equal(actual.cells[i]) {
			matches++
		}
	}
	return float64(matches) / float64(predicted.Len())
}

// Score turns a similarity into game points, decaying with elapsed time:
//
//	score = similarity * 100 * 1/(1 + elapsedSeconds*k)
//
// Negative elapsed time is treated as zero.
func Score(similarity, elapsedSeconds, k float64) float64 {
	if elapsedSeconds < 0 {
		elapsedSeconds = 0
	}
	return similarity * 100 * (1 / (1 + elapsedSeconds*k))
}
