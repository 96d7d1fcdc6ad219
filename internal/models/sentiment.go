package models

// SentimentLabel is the market mood bucket for an aggregated score.
type SentimentLabel string

const (
	SentimentBullish SentimentLabel = "bullish"
	SentimentBearish SentimentLabel = "bearish"
	SentimentNeutral SentimentLabel = "neutral"
)

// SentimentResult reduces a batch of per-headline polarity scores to a
// single label with the mean score and the number of samples behind it.
type SentimentResult struct {
	Label      SentimentLabel `json:"label"`
	Score      float64        `json:"score"`
	SampleSize int            `json:"sample_size"`
}
