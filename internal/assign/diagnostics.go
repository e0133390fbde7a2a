package assign

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// HistogramSummary reports the participation-weighted mean and standard
// deviation of the wish rank students actually received, for the solve
// summary line the CLI prints after a run.
type HistogramSummary struct {
	MeanRank      float64
	StdDevRank    float64
	TotalUnwished int
}

// SummarizeWishHistogram reduces a WishHistogram to a single weighted mean
// and standard deviation over ranks 1..5; the "unwished" bucket (index 5)
// is reported separately since it has no rank to average in.
func SummarizeWishHistogram(hist [6]int) HistogramSummary {
	var ranks, weights []float64
	for k := 0; k < 5; k++ {
		if hist[k] == 0 {
			continue
		}
		ranks = append(ranks, float64(k+1))
		weights = append(weights, float64(hist[k]))
	}
	if len(ranks) == 0 {
		return HistogramSummary{TotalUnwished: hist[5]}
	}
	mean, variance := stat.MeanVariance(ranks, weights)
	return HistogramSummary{
		MeanRank:      mean,
		StdDevRank:    math.Sqrt(variance),
		TotalUnwished: hist[5],
	}
}
