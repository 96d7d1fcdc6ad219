package intent

import (
	"testing"

	"github.com/hualei/FinGenie/internal/models"
	"github.com/hualei/FinGenie/internal/session"
)

func TestClassify(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		utterance string
		want      models.Intent
	}{
		{"how should I pay off my loans", models.IntentLoanAdvice},
		{"compare avalanche and snowball for my debts", models.IntentLoanAdvice},
		{"calculate my dti", models.IntentPlanningMetric},
		{"how much is 1000 dollars worth after inflation", models.IntentPlanningMetric},
		{"what's the sentiment around tesla headlines", models.IntentSentimentQuery},
		{"price of AAPL stock", models.IntentStockQuery},
		{"I spent 50 on groceries", models.IntentBudgetEntry},
		{"show my budget summary", models.IntentBudgetEntry},
		{"how can I raise my credit score", models.IntentCreditAdvice},
		{"search for the latest news", models.IntentWebLookup},
		{"what is compound interest", models.IntentLiteracyQuestion},
		{"hello there", models.IntentGeneralChat},
		{"zzz qqq nothing matches here", models.IntentGeneralChat},
	}

	for _, tt := range tests {
		t.Run(tt.utterance, func(t *testing.T) {
			got := c.Classify(tt.utterance, &session.State{})
			if got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.utterance, got, tt.want)
			}
		})
	}
}

func TestClassifyAlwaysReturnsValidIntent(t *testing.T) {
	c := NewClassifier()
	inputs := []string{"", "   ", "!!!", "1234567890", "emoji only \U0001F4B8"}
	for _, in := range inputs {
		if got := c.Classify(in, nil); !got.Valid() {
			t.Errorf("Classify(%q) = %q, not in the intent set", in, got)
		}
	}
}

func TestClassifyPendingSlotFallback(t *testing.T) {
	c := NewClassifier()
	state := &session.State{
		LastIntent:  models.IntentLoanAdvice,
		PendingSlot: "debts",
	}

	// An unmatched utterance during clarification is almost certainly the
	// answer to the question, not a topic change.
	if got := c.Classify("umm sure ok", state); got != models.IntentLoanAdvice {
		t.Errorf("got %q, want loan_advice fallback", got)
	}

	// Without a pending slot the same utterance is just chat.
	if got := c.Classify("umm sure ok", &session.State{LastIntent: models.IntentLoanAdvice}); got != models.IntentGeneralChat {
		t.Errorf("got %q, want general_chat", got)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	c := NewClassifier()
	first := c.Classify("what about my loan and my stocks", &session.State{})
	for i := 0; i < 10; i++ {
		if got := c.Classify("what about my loan and my stocks", &session.State{}); got != first {
			t.Fatalf("classification flapped: %q then %q", first, got)
		}
	}
}
