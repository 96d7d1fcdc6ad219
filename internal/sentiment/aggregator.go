// Package sentiment reduces per-headline polarity scores into a single
// market mood label. Scoring of raw headline text lives in lexicon.go; the
// aggregation here is pure arithmetic over already-materialized scores.
package sentiment

import (
	"errors"
	"fmt"

	"github.com/hualei/FinGenie/internal/models"
)

// ErrInsufficientData signals an empty score batch. An empty batch never
// yields a spurious neutral result.
var ErrInsufficientData = errors.New("insufficient sentiment data")

const (
	// DefaultBullishThreshold and DefaultBearishThreshold are the label
	// cutoffs used when no configuration overrides them. They are product
	// defaults, not invariants of the math.
	DefaultBullishThreshold = 0.15
	DefaultBearishThreshold = -0.15
)

// Aggregator labels mean polarity scores against configurable thresholds.
type Aggregator struct {
	bullish float64
	bearish float64
}

// NewAggregator builds an aggregator with the given thresholds. Zero values
// fall back to the defaults; the bearish threshold must sit below the
// bullish one.
func NewAggregator(bullishThreshold, bearishThreshold float64) *Aggregator {
	if bullishThreshold == 0 && bearishThreshold == 0 {
		bullishThreshold = DefaultBullishThreshold
		bearishThreshold = DefaultBearishThreshold
	}
	return &Aggregator{bullish: bullishThreshold, bearish: bearishThreshold}
}

// Aggregate computes the mean of the scores and buckets it into bullish,
// bearish, or neutral. Each score must lie in [-1, 1].
func (a *Aggregator) Aggregate(scores []float64) (*models.SentimentResult, error) {
	if len(scores) == 0 {
		return nil, ErrInsufficientData
	}

	sum := 0.0
	for i, s := range scores {
		if s < -1 || s > 1 {
			return nil, fmt.Errorf("score %d out of range [-1, 1]: %v", i, s)
		}
		sum += s
	}
	mean := sum / float64(len(scores))

	label := models.SentimentNeutral
	switch {
	case mean > a.bullish:
		label = models.SentimentBullish
	case mean < a.bearish:
		label = models.SentimentBearish
	}

	return &models.SentimentResult{
		Label:      label,
		Score:      mean,
		SampleSize: len(scores),
	}, nil
}
