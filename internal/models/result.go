package models

// ResultKind tells the caller what shape a StructuredResult takes.
type ResultKind string

const (
	// ResultAnswer carries a computed payload for the classified intent.
	ResultAnswer ResultKind = "answer"
	// ResultClarificationNeeded means a required slot is missing; the
	// pending slot name is recorded on the session and echoed here.
	ResultClarificationNeeded ResultKind = "clarification_needed"
	// ResultHandlerUnavailable wraps a collaborator failure with a
	// retryability flag. The handler was selected but could not run.
	ResultHandlerUnavailable ResultKind = "handler_unavailable"
	// ResultError passes a typed calculator error through unchanged.
	ResultError ResultKind = "error"
)

// ErrorKind names the typed failure carried by a ResultError.
type ErrorKind string

const (
	ErrKindInsufficientBudget ErrorKind = "insufficient_budget"
	ErrKindNonConvergent      ErrorKind = "non_convergent"
	ErrKindDivisionByZero     ErrorKind = "division_by_zero"
	ErrKindMalformedForecast  ErrorKind = "malformed_forecast"
	ErrKindInsufficientData   ErrorKind = "insufficient_data"
	ErrKindInvalidInput       ErrorKind = "invalid_input"
)

// ErrorInfo describes a calculator error plus the conversation context the
// router attaches. The router never rewrites the kind.
type ErrorInfo struct {
	Kind   ErrorKind `json:"kind"`
	Detail string    `json:"detail"`
}

// UnavailableInfo describes a collaborator failure surfaced at the router
// boundary.
type UnavailableInfo struct {
	Intent    Intent `json:"intent"`
	Retryable bool   `json:"retryable"`
	Cause     string `json:"cause"`
}

// StructuredResult is the router's answer for one turn. Exactly one payload
// field matching the intent is populated for ResultAnswer; the calling layer
// turns it into prose.
type StructuredResult struct {
	ConversationID string     `json:"conversation_id"`
	Intent         Intent     `json:"intent"`
	Kind           ResultKind `json:"kind"`
	Utterance      string     `json:"utterance,omitempty"`

	PendingSlot string           `json:"pending_slot,omitempty"`
	Err         *ErrorInfo       `json:"error,omitempty"`
	Unavailable *UnavailableInfo `json:"unavailable,omitempty"`

	Plan       *RepaymentPlan      `json:"plan,omitempty"`
	Comparison *StrategyComparison `json:"comparison,omitempty"`
	Metric     *MetricResult       `json:"metric,omitempty"`
	Forecast   *ForecastResult     `json:"forecast,omitempty"`
	Sentiment  *SentimentResult    `json:"sentiment,omitempty"`
	Quote      *Quote              `json:"quote,omitempty"`
	Receipt    *Transaction        `json:"receipt,omitempty"`
	Summary    *BudgetSummary      `json:"summary,omitempty"`
}

// ExternalData carries pre-fetched collaborator data into a turn: current
// debt records, raw forecast points, headline scores. The core never fetches
// any of it itself.
type ExternalData struct {
	Debts         []Debt
	MonthlyBudget float64
	Strategy      Strategy

	Metric *FinancialMetricRequest

	Symbol   string
	Forecast []RawForecastPoint

	Headlines      []string
	HeadlineScores []float64

	Entry         *TransactionEntry
	SummaryMonths []string
}
