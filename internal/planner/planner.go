// Package planner simulates debt payoff schedules under the avalanche and
// snowball strategies. The simulation runs month by month: interest accrues
// on every open balance, minimum payments are made on all debts, and the
// remaining budget surplus rolls onto the highest-priority debt until the
// whole set is cleared.
package planner

import (
	"errors"
	"fmt"
	"sort"

	"github.com/hualei/FinGenie/internal/models"
)

var (
	// ErrInsufficientBudget signals a monthly budget below the sum of
	// minimum payments. The planner does not attempt partial plans.
	ErrInsufficientBudget = errors.New("insufficient monthly budget")
	// ErrNonConvergent signals a payoff that would run past the horizon,
	// typically a budget that interest outpaces.
	ErrNonConvergent = errors.New("payoff does not converge within horizon")
	// ErrInvalidDebt signals a debt record outside the planner's domain.
	ErrInvalidDebt = errors.New("invalid debt input")
)

// DefaultHorizonMonths bounds the simulation. 100 years of monthly steps is
// past any real repayment schedule.
const DefaultHorizonMonths = 1200

// A balance below this is considered cleared.
const balanceEpsilon = 1e-9

// Planner runs payoff simulations bounded by a month horizon.
type Planner struct {
	horizon int
}

// New returns a planner with the given horizon; non-positive values fall
// back to DefaultHorizonMonths.
func New(horizonMonths int) *Planner {
	if horizonMonths <= 0 {
		horizonMonths = DefaultHorizonMonths
	}
	return &Planner{horizon: horizonMonths}
}

// Plan simulates the payoff schedule for the given strategy.
func (p *Planner) Plan(debts []models.Debt, monthlyBudget float64, strategy models.Strategy) (*models.RepaymentPlan, error) {
	if strategy != models.StrategyAvalanche && strategy != models.StrategySnowball {
		return nil, fmt.Errorf("%w: unknown strategy %q", ErrInvalidDebt, strategy)
	}
	if err := validate(debts, monthlyBudget); err != nil {
		return nil, err
	}
	return p.simulate(debts, monthlyBudget, strategy)
}

// Compare runs both strategies over the same inputs and reports the
// interest and months the avalanche ordering saves over snowball.
func (p *Planner) Compare(debts []models.Debt, monthlyBudget float64) (*models.StrategyComparison, error) {
	if err := validate(debts, monthlyBudget); err != nil {
		return nil, err
	}

	avalanche, err := p.simulate(debts, monthlyBudget, models.StrategyAvalanche)
	if err != nil {
		return nil, err
	}
	snowball, err := p.simulate(debts, monthlyBudget, models.StrategySnowball)
	if err != nil {
		return nil, err
	}

	recommended := models.StrategyAvalanche
	if snowball.TotalInterestPaid < avalanche.TotalInterestPaid {
		recommended = models.StrategySnowball
	}

	return &models.StrategyComparison{
		Avalanche: models.StrategyOutcome{
			TotalInterestPaid: avalanche.TotalInterestPaid,
			MonthsToPayoff:    avalanche.MonthsToPayoff,
		},
		Snowball: models.StrategyOutcome{
			TotalInterestPaid: snowball.TotalInterestPaid,
			MonthsToPayoff:    snowball.MonthsToPayoff,
		},
		InterestSaved: snowball.TotalInterestPaid - avalanche.TotalInterestPaid,
		MonthsSaved:   snowball.MonthsToPayoff - avalanche.MonthsToPayoff,
		Recommended:   recommended,
	}, nil
}

func validate(debts []models.Debt, monthlyBudget float64) error {
	if len(debts) == 0 {
		return fmt.Errorf("%w: debt set is empty", ErrInvalidDebt)
	}
	if monthlyBudget <= 0 {
		return fmt.Errorf("%w: monthly budget must be positive", ErrInvalidDebt)
	}

	seen := make(map[string]bool, len(debts))
	minimums := 0.0
	for _, d := range debts {
		if d.ID == "" {
			return fmt.Errorf("%w: debt id is empty", ErrInvalidDebt)
		}
		if seen[d.ID] {
			return fmt.Errorf("%w: duplicate debt id %q", ErrInvalidDebt, d.ID)
		}
		seen[d.ID] = true
		if d.Principal <= 0 {
			return fmt.Errorf("%w: debt %q principal must be positive", ErrInvalidDebt, d.ID)
		}
		if d.AnnualRate < 0 {
			return fmt.Errorf("%w: debt %q annual rate must be non-negative", ErrInvalidDebt, d.ID)
		}
		if d.MinimumPayment < 0 {
			return fmt.Errorf("%w: debt %q minimum payment must be non-negative", ErrInvalidDebt, d.ID)
		}
		minimums += d.MinimumPayment
	}

	if monthlyBudget < minimums {
		return fmt.Errorf("%w: budget %.2f below total minimum payments %.2f",
			ErrInsufficientBudget, monthlyBudget, minimums)
	}
	return nil
}

// order sorts a copy of the debt set into payoff priority. Avalanche pays
// the highest rate first, smaller principal breaking ties so an equal-rate
// debt clears sooner. Snowball pays the smallest principal first, higher
// rate breaking ties.
func order(debts []models.Debt, strategy models.Strategy) []models.Debt {
	sorted := make([]models.Debt, len(debts))
	copy(sorted, debts)

	switch strategy {
	case models.StrategySnowball:
		sort.SliceStable(sorted, func(i, j int) bool {
			if sorted[i].Principal != sorted[j].Principal {
				return sorted[i].Principal < sorted[j].Principal
			}
			return sorted[i].AnnualRate > sorted[j].AnnualRate
		})
	default: // avalanche
		sort.SliceStable(sorted, func(i, j int) bool {
			if sorted[i].AnnualRate != sorted[j].AnnualRate {
				return sorted[i].AnnualRate > sorted[j].AnnualRate
			}
			return sorted[i].Principal < sorted[j].Principal
		})
	}
	return sorted
}

func (p *Planner) simulate(debts []models.Debt, monthlyBudget float64, strategy models.Strategy) (*models.RepaymentPlan, error) {
	sorted := order(debts, strategy)

	balances := make(map[string]float64, len(sorted))
	totalDebt := 0.0
	for _, d := range sorted {
		balances[d.ID] = d.Principal
		totalDebt += d.Principal
	}

	var events []models.PaymentEvent
	totalInterest := 0.0

	for month := 1; ; month++ {
		if month > p.horizon {
			return nil, fmt.Errorf("%w: still unpaid after %d months", ErrNonConvergent, p.horizon)
		}

		// Interest accrues on the opening balance before any payment.
		for _, d := range sorted {
			bal := balances[d.ID]
			if bal <= balanceEpsilon {
				continue
			}
			interest := bal * d.AnnualRate / 12
			balances[d.ID] = bal + interest
			totalInterest += interest
		}

		available := monthlyBudget
		paid := make(map[string]float64, len(sorted))

		// Minimum payments on every open debt, capped at the balance.
		for _, d := range sorted {
			bal := balances[d.ID]
			if bal <= balanceEpsilon || available <= 0 {
				continue
			}
			payment := d.MinimumPayment
			if payment > bal {
				payment = bal
			}
			if payment > available {
				payment = available
			}
			balances[d.ID] = bal - payment
			available -= payment
			paid[d.ID] += payment
		}

		// Surplus rolls onto the first open debt in priority order; once
		// that clears, the remainder rolls to the next within the same
		// month. Surplus left after every debt is zero is not carried.
		for _, d := range sorted {
			if available <= 0 {
				break
			}
			bal := balances[d.ID]
			if bal <= balanceEpsilon {
				continue
			}
			extra := available
			if extra > bal {
				extra = bal
			}
			balances[d.ID] = bal - extra
			available -= extra
			paid[d.ID] += extra
		}

		allPaid := true
		for _, d := range sorted {
			if amount := paid[d.ID]; amount > 0 {
				events = append(events, models.PaymentEvent{
					Month:            month,
					DebtID:           d.ID,
					AmountPaid:       amount,
					RemainingBalance: balances[d.ID],
				})
			}
			if balances[d.ID] > balanceEpsilon {
				allPaid = false
			}
		}

		if allPaid {
			return &models.RepaymentPlan{
				Strategy:          strategy,
				Events:            events,
				TotalDebt:         totalDebt,
				TotalInterestPaid: totalInterest,
				MonthsToPayoff:    month,
			}, nil
		}
	}
}
