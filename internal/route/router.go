// Package route owns the intent → handler dispatch. The router consults
// session state, invokes exactly one handler per turn, and turns every
// failure into a structured result: a clarification request, a typed
// calculator error, or a handler-unavailable wrapper. Nothing a handler
// does can propagate past dispatch.
package route

import (
	"context"
	"errors"
	"fmt"

	"github.com/hualei/FinGenie/internal/forecast"
	"github.com/hualei/FinGenie/internal/intent"
	"github.com/hualei/FinGenie/internal/metrics"
	"github.com/hualei/FinGenie/internal/models"
	"github.com/hualei/FinGenie/internal/planner"
	"github.com/hualei/FinGenie/internal/sentiment"
	"github.com/hualei/FinGenie/internal/session"
)

// QuoteProvider supplies current stock quotes. Implementations live outside
// the core and may hit the network; the router only sees typed results or
// errors.
type QuoteProvider interface {
	Quote(ctx context.Context, symbol string) (*models.Quote, error)
}

// Ledger records budget transactions and summarizes them.
type Ledger interface {
	Record(ctx context.Context, entry models.TransactionEntry) (*models.Transaction, error)
	Summary(ctx context.Context, months []string) (*models.BudgetSummary, error)
}

// Config carries the tunables the router passes down to its calculators.
type Config struct {
	BullishThreshold    float64
	BearishThreshold    float64
	PayoffHorizonMonths int
}

// Option customizes a router with optional collaborators.
type Option func(*Router)

// WithQuoteProvider injects a market data backend for stock queries that
// arrive without pre-fetched forecast data.
func WithQuoteProvider(p QuoteProvider) Option {
	return func(r *Router) { r.quotes = p }
}

// WithLedger injects the budget transaction ledger.
func WithLedger(l Ledger) Option {
	return func(r *Router) { r.ledger = l }
}

// Router dispatches classified intents to their handlers.
type Router struct {
	classifier *intent.Classifier
	planner    *planner.Planner
	aggregator *sentiment.Aggregator
	scorer     *sentiment.HeadlineScorer
	sessions   *session.Store

	quotes QuoteProvider
	ledger Ledger
}

// New builds a router with fresh session state.
func New(cfg Config, opts ...Option) *Router {
	r := &Router{
		classifier: intent.NewClassifier(),
		planner:    planner.New(cfg.PayoffHorizonMonths),
		aggregator: sentiment.NewAggregator(cfg.BullishThreshold, cfg.BearishThreshold),
		scorer:     sentiment.NewHeadlineScorer(),
		sessions:   session.NewStore(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Sessions exposes the session store so callers can reset conversations.
func (r *Router) Sessions() *session.Store { return r.sessions }

// HandleTurn runs one conversation turn: classify, dispatch, update session.
// Turns for the same conversation id are serialized; distinct conversations
// run concurrently. When the previous turn left a slot pending and this
// turn's data supplies it, dispatch resumes the original intent without
// reclassifying.
func (r *Router) HandleTurn(ctx context.Context, conversationID, utterance string, data *models.ExternalData) models.StructuredResult {
	if data == nil {
		data = &models.ExternalData{}
	}

	conv := r.sessions.Get(conversationID)
	conv.Lock()
	defer conv.Unlock()
	state := &conv.State

	var it models.Intent
	if state.PendingSlot != "" && state.LastIntent != "" && supplies(state.PendingSlot, data) {
		it = state.LastIntent
		state.PendingSlot = ""
	} else {
		it = r.classifier.Classify(utterance, state)
	}

	result := r.dispatch(ctx, it, utterance, state, data)
	state.LastIntent = it

	result.ConversationID = conversationID
	result.Intent = it
	result.Utterance = utterance
	return result
}

// supplies reports whether the turn's external data answers a pending slot.
func supplies(slot string, data *models.ExternalData) bool {
	switch slot {
	case "debts":
		return len(data.Debts) > 0
	case "metric":
		return data.Metric != nil
	case "headlines":
		return data.HeadlineScores != nil || len(data.Headlines) > 0
	case "symbol":
		return data.Symbol != ""
	default:
		return false
	}
}

// dispatch is a closed switch over the intent enumeration; adding an intent
// without a case here fails the exhaustiveness test in router_test.go.
func (r *Router) dispatch(ctx context.Context, it models.Intent, utterance string, state *session.State, data *models.ExternalData) (result models.StructuredResult) {
	defer func() {
		if rec := recover(); rec != nil {
			result = unavailable(it, false, fmt.Sprintf("handler panic: %v", rec))
		}
	}()

	switch it {
	case models.IntentLoanAdvice:
		return r.handleLoanAdvice(state, data)
	case models.IntentPlanningMetric:
		return r.handlePlanningMetric(state, data)
	case models.IntentSentimentQuery:
		return r.handleSentimentQuery(state, data)
	case models.IntentStockQuery:
		return r.handleStockQuery(ctx, state, data)
	case models.IntentBudgetEntry:
		return r.handleBudgetEntry(ctx, data)
	case models.IntentCreditAdvice, models.IntentLiteracyQuestion, models.IntentWebLookup, models.IntentGeneralChat:
		// No algorithmic content: the calling layer renders these from the
		// utterance alone.
		return models.StructuredResult{Kind: models.ResultAnswer}
	default:
		return unavailable(it, false, fmt.Sprintf("no handler bound for intent %q", it))
	}
}

func (r *Router) handleLoanAdvice(state *session.State, data *models.ExternalData) models.StructuredResult {
	if len(data.Debts) == 0 {
		return clarify(state, "debts")
	}

	strategy := data.Strategy
	if strategy == "" {
		strategy = models.StrategyAvalanche
	}

	if strategy == models.StrategyCompare {
		comparison, err := r.planner.Compare(data.Debts, data.MonthlyBudget)
		if err != nil {
			return errorResult(err)
		}
		return models.StructuredResult{Kind: models.ResultAnswer, Comparison: comparison}
	}

	plan, err := r.planner.Plan(data.Debts, data.MonthlyBudget, strategy)
	if err != nil {
		return errorResult(err)
	}
	return models.StructuredResult{Kind: models.ResultAnswer, Plan: plan}
}

func (r *Router) handlePlanningMetric(state *session.State, data *models.ExternalData) models.StructuredResult {
	if data.Metric == nil {
		return clarify(state, "metric")
	}
	metric, err := metrics.Evaluate(*data.Metric)
	if err != nil {
		return errorResult(err)
	}
	return models.StructuredResult{Kind: models.ResultAnswer, Metric: metric}
}

func (r *Router) handleSentimentQuery(state *session.State, data *models.ExternalData) models.StructuredResult {
	scores := data.HeadlineScores
	if scores == nil && len(data.Headlines) > 0 {
		scores = r.scorer.ScoreAll(data.Headlines)
	}
	if scores == nil {
		return clarify(state, "headlines")
	}

	result, err := r.aggregator.Aggregate(scores)
	if err != nil {
		return errorResult(err)
	}
	return models.StructuredResult{Kind: models.ResultAnswer, Sentiment: result}
}

func (r *Router) handleStockQuery(ctx context.Context, state *session.State, data *models.ExternalData) models.StructuredResult {
	if data.Symbol == "" {
		return clarify(state, "symbol")
	}

	if len(data.Forecast) > 0 {
		series, err := forecast.Normalize(data.Symbol, data.Forecast)
		if err != nil {
			return errorResult(err)
		}
		return models.StructuredResult{Kind: models.ResultAnswer, Forecast: series}
	}

	if r.quotes == nil {
		return unavailable(models.IntentStockQuery, false, "no market data provider configured")
	}
	quote, err := r.quotes.Quote(ctx, data.Symbol)
	if err != nil {
		return unavailable(models.IntentStockQuery, true, err.Error())
	}
	return models.StructuredResult{Kind: models.ResultAnswer, Quote: quote}
}

func (r *Router) handleBudgetEntry(ctx context.Context, data *models.ExternalData) models.StructuredResult {
	if r.ledger == nil {
		return unavailable(models.IntentBudgetEntry, false, "no ledger configured")
	}

	if data.Entry != nil {
		receipt, err := r.ledger.Record(ctx, *data.Entry)
		if err != nil {
			return unavailable(models.IntentBudgetEntry, true, err.Error())
		}
		return models.StructuredResult{Kind: models.ResultAnswer, Receipt: receipt}
	}

	summary, err := r.ledger.Summary(ctx, data.SummaryMonths)
	if err != nil {
		return unavailable(models.IntentBudgetEntry, true, err.Error())
	}
	return models.StructuredResult{Kind: models.ResultAnswer, Summary: summary}
}

func clarify(state *session.State, slot string) models.StructuredResult {
	state.PendingSlot = slot
	return models.StructuredResult{
		Kind:        models.ResultClarificationNeeded,
		PendingSlot: slot,
	}
}

func unavailable(it models.Intent, retryable bool, cause string) models.StructuredResult {
	return models.StructuredResult{
		Kind: models.ResultHandlerUnavailable,
		Unavailable: &models.UnavailableInfo{
			Intent:    it,
			Retryable: retryable,
			Cause:     cause,
		},
	}
}

// errorResult passes a calculator error through with its kind preserved.
func errorResult(err error) models.StructuredResult {
	return models.StructuredResult{
		Kind: models.ResultError,
		Err:  &models.ErrorInfo{Kind: kindOf(err), Detail: err.Error()},
	}
}

func kindOf(err error) models.ErrorKind {
	switch {
	case errors.Is(err, planner.ErrInsufficientBudget):
		return models.ErrKindInsufficientBudget
	case errors.Is(err, planner.ErrNonConvergent):
		return models.ErrKindNonConvergent
	case errors.Is(err, metrics.ErrDivisionByZero):
		return models.ErrKindDivisionByZero
	case errors.Is(err, forecast.ErrMalformedForecast):
		return models.ErrKindMalformedForecast
	case errors.Is(err, sentiment.ErrInsufficientData):
		return models.ErrKindInsufficientData
	default:
		return models.ErrKindInvalidInput
	}
}
