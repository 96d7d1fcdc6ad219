// Package intent maps raw user utterances onto the closed intent
// enumeration with keyword pattern scoring. Classification is deterministic
// for a given utterance and session context, never fails on malformed text,
// and reads but never writes session state.
package intent

import (
	"regexp"
	"strings"

	"github.com/hualei/FinGenie/internal/models"
	"github.com/hualei/FinGenie/internal/session"
)

// Classifier scores utterances against per-intent pattern sets.
type Classifier struct {
	patterns map[models.Intent][]*regexp.Regexp
}

// NewClassifier builds a classifier with the built-in pattern sets.
func NewClassifier() *Classifier {
	return &Classifier{
		patterns: map[models.Intent][]*regexp.Regexp{
			models.IntentLoanAdvice: {
				regexp.MustCompile(`(?i)\b(loan[s]?|debt[s]?|owe|repay|repayment|payoff|pay off)\b`),
				regexp.MustCompile(`(?i)\b(avalanche|snowball|minimum payment[s]?)\b`),
			},
			models.IntentPlanningMetric: {
				regexp.MustCompile(`(?i)\b(dti|debt.to.income|net worth|inflation|purchasing power)\b`),
				regexp.MustCompile(`(?i)\b(assets?|liabilit(y|ies))\b`),
			},
			models.IntentSentimentQuery: {
				regexp.MustCompile(`(?i)\b(sentiment|mood|headline[s]?)\b`),
				regexp.MustCompile(`(?i)\bnews\b.*\b(about|on|around)\b`),
				regexp.MustCompile(`(?i)\b(bullish|bearish)\b`),
			},
			models.IntentStockQuery: {
				regexp.MustCompile(`(?i)\b(stock[s]?|share[s]?|ticker|quote|price[s]?)\b`),
				regexp.MustCompile(`(?i)\b(trading at|market cap|forecast|analyst)\b`),
			},
			models.IntentBudgetEntry: {
				regexp.MustCompile(`(?i)\b(spent|paid|earned|received|invested)\b`),
				regexp.MustCompile(`(?i)\b(budget|expense[s]?|income|transaction[s]?|summary)\b`),
			},
			models.IntentCreditAdvice: {
				regexp.MustCompile(`(?i)\bcredit\b`),
				regexp.MustCompile(`(?i)\b(score|report|utilization)\b`),
			},
			models.IntentWebLookup: {
				regexp.MustCompile(`(?i)\b(search|look up|lookup|find out|latest news)\b`),
			},
			models.IntentLiteracyQuestion: {
				regexp.MustCompile(`(?i)\b(what is|what are|explain|how does|how do|difference between|mean[s]?)\b`),
				regexp.MustCompile(`(?i)\b(compound interest|diversification|etf[s]?|index fund[s]?|apr|apy|mortgage)\b`),
			},
			models.IntentGeneralChat: {
				regexp.MustCompile(`(?i)^\s*(hi|hello|hey|yo|thanks|thank you|good (morning|afternoon|evening))\b`),
				regexp.MustCompile(`(?i)\bwho are you\b`),
			},
		},
	}
}

// Classify maps an utterance to an intent. When no pattern matches, a
// conversation with a pending slot sticks to its last intent (the utterance
// is most likely answering the clarification); otherwise the fallback is
// general chat.
func (c *Classifier) Classify(utterance string, state *session.State) models.Intent {
	text := strings.TrimSpace(utterance)
	if text == "" {
		return fallback(state)
	}

	best := models.IntentGeneralChat
	bestScore := 0
	// Precedence order makes tie scores deterministic.
	for _, it := range models.AllIntents {
		score := 0
		for _, p := range c.patterns[it] {
			score += len(p.FindAllString(text, -1))
		}
		if score > bestScore {
			best = it
			bestScore = score
		}
	}

	if bestScore == 0 {
		return fallback(state)
	}
	return best
}

func fallback(state *session.State) models.Intent {
	if state != nil && state.PendingSlot != "" && state.LastIntent != "" {
		return state.LastIntent
	}
	return models.IntentGeneralChat
}
