package sentiment

import (
	"regexp"
	"strings"
)

// HeadlineScorer assigns a polarity score in [-1, 1] to a headline using
// keyword pattern matching. It is a deterministic stand-in for a hosted
// polarity model, used when a turn arrives with raw headlines instead of
// pre-scored data.
type HeadlineScorer struct {
	positive []*regexp.Regexp
	negative []*regexp.Regexp
}

// NewHeadlineScorer builds a scorer with the built-in financial news
// lexicon.
func NewHeadlineScorer() *HeadlineScorer {
	return &HeadlineScorer{
		positive: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(surge[sd]?|soar[sd]?|rall(y|ies|ied)|gain[sd]?|jump[sd]?|climb[sd]?)\b`),
			regexp.MustCompile(`(?i)\b(beat[s]?|record|upgrade[sd]?|outperform[sd]?|strong|growth|profit[s]?)\b`),
			regexp.MustCompile(`(?i)\b(bullish|optimis(m|tic)|recover(y|s|ed)|breakthrough|expand[sd]?)\b`),
		},
		negative: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(plunge[sd]?|sink[s]?|tumble[sd]?|slump[sd]?|drop[sd]?|fall[s]?|fell|crash(es|ed)?)\b`),
			regexp.MustCompile(`(?i)\b(miss(es|ed)?|downgrade[sd]?|underperform[sd]?|weak|loss(es)?|layoff[s]?|lawsuit[s]?)\b`),
			regexp.MustCompile(`(?i)\b(bearish|pessimis(m|tic)|recession|default[sd]?|bankrupt(cy)?|fraud)\b`),
		},
	}
}

// Score returns (positive - negative) / (positive + negative) match counts,
// or 0 when no lexicon word appears.
func (hs *HeadlineScorer) Score(headline string) float64 {
	text := strings.ToLower(headline)

	pos, neg := 0, 0
	for _, p := range hs.positive {
		pos += len(p.FindAllString(text, -1))
	}
	for _, p := range hs.negative {
		neg += len(p.FindAllString(text, -1))
	}

	total := pos + neg
	if total == 0 {
		return 0
	}
	return float64(pos-neg) / float64(total)
}

// ScoreAll scores a batch of headlines in order.
func (hs *HeadlineScorer) ScoreAll(headlines []string) []float64 {
	scores := make([]float64, len(headlines))
	for i, h := range headlines {
		scores[i] = hs.Score(h)
	}
	return scores
}
