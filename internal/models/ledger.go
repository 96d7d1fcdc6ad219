package models

// TransactionType distinguishes money coming in from money going out.
// Investments are recorded as expenses with an investment category, matching
// how users phrase them.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// TransactionEntry is a ledger write request for one turn.
type TransactionEntry struct {
	Type     TransactionType `json:"type"`
	Category string          `json:"category"`
	Amount   float64         `json:"amount"`
	Date     string          `json:"date,omitempty"` // YYYY-MM-DD, today when empty
}

// Transaction is a stored ledger row.
type Transaction struct {
	ID       int64           `json:"id"`
	Date     string          `json:"date"`
	Type     TransactionType `json:"type"`
	Category string          `json:"category"`
	Amount   float64         `json:"amount"`
}

// BudgetSummary aggregates income and expenses, optionally restricted to a
// set of YYYY-MM months.
type BudgetSummary struct {
	Months        []string           `json:"months,omitempty"` // empty means all time
	TotalIncome   float64            `json:"total_income"`
	TotalExpenses float64            `json:"total_expenses"`
	Balance       float64            `json:"balance"`
	ByCategory    map[string]float64 `json:"by_category"` // expense breakdown
}
