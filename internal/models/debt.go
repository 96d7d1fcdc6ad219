package models

// Strategy selects the debt payoff ordering.
type Strategy string

const (
	StrategyAvalanche Strategy = "avalanche"
	StrategySnowball  Strategy = "snowball"
	StrategyCompare   Strategy = "compare"
)

// Debt is a single liability as entered by the user. Order within a debt
// set carries no meaning; the planner sorts per strategy.
type Debt struct {
	ID             string  `json:"id"`
	Principal      float64 `json:"principal"`
	AnnualRate     float64 `json:"annual_rate"`
	MinimumPayment float64 `json:"minimum_payment"`
}

// PaymentEvent records one payment against one debt in one month of a
// simulated schedule.
type PaymentEvent struct {
	Month            int     `json:"month"`
	DebtID           string  `json:"debt_id"`
	AmountPaid       float64 `json:"amount_paid"`
	RemainingBalance float64 `json:"remaining_balance"`
}

// RepaymentPlan is a fully simulated payoff schedule. Plans are derived
// values, recomputed on every planning request and never persisted.
type RepaymentPlan struct {
	Strategy          Strategy       `json:"strategy"`
	Events            []PaymentEvent `json:"events"`
	TotalDebt         float64        `json:"total_debt"`
	TotalInterestPaid float64        `json:"total_interest_paid"`
	MonthsToPayoff    int            `json:"months_to_payoff"`
}

// StrategyOutcome summarizes one strategy inside a comparison.
type StrategyOutcome struct {
	TotalInterestPaid float64 `json:"total_interest_paid"`
	MonthsToPayoff    int     `json:"months_to_payoff"`
}

// StrategyComparison reports both strategies side by side with the savings
// the avalanche ordering achieves over snowball.
type StrategyComparison struct {
	Avalanche     StrategyOutcome `json:"avalanche"`
	Snowball      StrategyOutcome `json:"snowball"`
	InterestSaved float64         `json:"interest_saved"`
	MonthsSaved   int             `json:"months_saved"`
	Recommended   Strategy        `json:"recommended"`
}
