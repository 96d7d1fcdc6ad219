package sentiment

import (
	"errors"
	"math"
	"testing"

	"github.com/hualei/FinGenie/internal/models"
)

func TestAggregateLabels(t *testing.T) {
	a := NewAggregator(0, 0)

	tests := []struct {
		name   string
		scores []float64
		want   models.SentimentLabel
	}{
		{"strongly positive", []float64{0.9, 0.9}, models.SentimentBullish},
		{"strongly negative", []float64{-0.5, -0.4}, models.SentimentBearish},
		{"mild", []float64{0.1}, models.SentimentNeutral},
		{"mixed cancels out", []float64{0.8, -0.8}, models.SentimentNeutral},
		{"exactly at threshold stays neutral", []float64{0.15}, models.SentimentNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := a.Aggregate(tt.scores)
			if err != nil {
				t.Fatalf("Aggregate failed: %v", err)
			}
			if result.Label != tt.want {
				t.Errorf("label = %q, want %q", result.Label, tt.want)
			}
			if result.SampleSize != len(tt.scores) {
				t.Errorf("sample size = %d, want %d", result.SampleSize, len(tt.scores))
			}
		})
	}
}

func TestAggregateMean(t *testing.T) {
	result, err := NewAggregator(0, 0).Aggregate([]float64{0.2, 0.4, 0.9})
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if math.Abs(result.Score-0.5) > 1e-12 {
		t.Errorf("mean = %v, want 0.5", result.Score)
	}
}

func TestAggregateEmptyBatch(t *testing.T) {
	_, err := NewAggregator(0, 0).Aggregate(nil)
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("err = %v, want ErrInsufficientData", err)
	}
	_, err = NewAggregator(0, 0).Aggregate([]float64{})
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("empty slice: err = %v, want ErrInsufficientData", err)
	}
}

func TestAggregateRejectsOutOfRangeScores(t *testing.T) {
	if _, err := NewAggregator(0, 0).Aggregate([]float64{0.2, 1.5}); err == nil {
		t.Error("expected error for score above 1")
	}
	if _, err := NewAggregator(0, 0).Aggregate([]float64{-1.01}); err == nil {
		t.Error("expected error for score below -1")
	}
}

func TestAggregateCustomThresholds(t *testing.T) {
	a := NewAggregator(0.5, -0.5)

	result, err := a.Aggregate([]float64{0.3})
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if result.Label != models.SentimentNeutral {
		t.Errorf("0.3 against 0.5 cutoff: label = %q, want neutral", result.Label)
	}

	result, err = a.Aggregate([]float64{0.6})
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if result.Label != models.SentimentBullish {
		t.Errorf("0.6 against 0.5 cutoff: label = %q, want bullish", result.Label)
	}
}

func TestHeadlineScorer(t *testing.T) {
	hs := NewHeadlineScorer()

	tests := []struct {
		headline string
		check    func(float64) bool
	}{
		{"Tech stocks surge on record profits", func(s float64) bool { return s > 0 }},
		{"Shares plunge after earnings miss", func(s float64) bool { return s < 0 }},
		{"Company schedules annual shareholder meeting", func(s float64) bool { return s == 0 }},
		{"Strong growth despite lawsuit", func(s float64) bool { return s > 0 && s < 1 }},
	}

	for _, tt := range tests {
		score := hs.Score(tt.headline)
		if score < -1 || score > 1 {
			t.Errorf("%q: score %v outside [-1, 1]", tt.headline, score)
		}
		if !tt.check(score) {
			t.Errorf("%q: unexpected score %v", tt.headline, score)
		}
	}
}

func TestScoreAllPreservesOrder(t *testing.T) {
	hs := NewHeadlineScorer()
	headlines := []string{
		"Markets rally on upbeat data",
		"Bank defaults trigger bearish outlook",
	}
	scores := hs.ScoreAll(headlines)
	if len(scores) != 2 {
		t.Fatalf("got %d scores, want 2", len(scores))
	}
	if scores[0] <= 0 {
		t.Errorf("first score = %v, want positive", scores[0])
	}
	if scores[1] >= 0 {
		t.Errorf("second score = %v, want negative", scores[1])
	}
}
