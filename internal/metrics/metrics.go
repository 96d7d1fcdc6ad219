// Package metrics implements the pure financial ratio and metric
// calculators: debt-to-income, inflation adjustment, and net worth. All
// functions are stateless and total over their validated domains; an error
// is always a typed signal, never a zero standing in for "could not
// compute".
package metrics

import (
	"errors"
	"fmt"
	"math"

	"github.com/hualei/FinGenie/internal/models"
)

var (
	// ErrDivisionByZero signals a ratio whose denominator would be zero,
	// such as DTI with no income.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrInvalidInput signals an argument outside the metric's domain.
	ErrInvalidInput = errors.New("invalid metric input")
)

// DTI returns monthly debt service divided by gross monthly income, as a
// plain ratio. Income must be strictly positive.
func DTI(monthlyDebtPayments, grossMonthlyIncome float64) (float64, error) {
	if monthlyDebtPayments < 0 {
		return 0, fmt.Errorf("%w: monthly debt payments must be non-negative", ErrInvalidInput)
	}
	if grossMonthlyIncome <= 0 {
		return 0, fmt.Errorf("%w: gross monthly income must be positive", ErrDivisionByZero)
	}
	return monthlyDebtPayments / grossMonthlyIncome, nil
}

// InflationAdjusted returns the present value of a nominal amount after the
// given number of years at the given annual inflation rate:
// nominal / (1 + rate)^years. The rate may be any real greater than -1.
func InflationAdjusted(nominalAmount, annualRate, years float64) (float64, error) {
	if years < 0 {
		return 0, fmt.Errorf("%w: years must be non-negative", ErrInvalidInput)
	}
	if annualRate < -1 {
		return 0, fmt.Errorf("%w: annual rate must be >= -1", ErrInvalidInput)
	}
	if annualRate == -1 && years > 0 {
		return 0, fmt.Errorf("%w: annual rate of -100%% collapses the denominator", ErrDivisionByZero)
	}
	return nominalAmount / math.Pow(1+annualRate, years), nil
}

// NetWorth returns total assets minus total liabilities along with both
// totals. Empty maps are valid and contribute zero.
func NetWorth(assets, liabilities map[string]float64) (net, totalAssets, totalLiabilities float64) {
	for _, v := range assets {
		totalAssets += v
	}
	for _, v := range liabilities {
		totalLiabilities += v
	}
	return totalAssets - totalLiabilities, totalAssets, totalLiabilities
}

// Evaluate dispatches a tagged metric request to the matching calculator.
func Evaluate(req models.FinancialMetricRequest) (*models.MetricResult, error) {
	switch req.Kind {
	case models.MetricDTI:
		if req.DTI == nil {
			return nil, fmt.Errorf("%w: dti request body missing", ErrInvalidInput)
		}
		ratio, err := DTI(req.DTI.MonthlyDebtPayments, req.DTI.GrossMonthlyIncome)
		if err != nil {
			return nil, err
		}
		return &models.MetricResult{Kind: models.MetricDTI, Value: ratio}, nil

	case models.MetricInflationAdjustment:
		if req.Inflation == nil {
			return nil, fmt.Errorf("%w: inflation request body missing", ErrInvalidInput)
		}
		adjusted, err := InflationAdjusted(req.Inflation.NominalAmount, req.Inflation.AnnualRate, req.Inflation.Years)
		if err != nil {
			return nil, err
		}
		return &models.MetricResult{Kind: models.MetricInflationAdjustment, Value: adjusted}, nil

	case models.MetricNetWorth:
		if req.NetWorth == nil {
			return nil, fmt.Errorf("%w: net worth request body missing", ErrInvalidInput)
		}
		net, assets, liabilities := NetWorth(req.NetWorth.Assets, req.NetWorth.Liabilities)
		return &models.MetricResult{
			Kind:             models.MetricNetWorth,
			Value:            net,
			TotalAssets:      assets,
			TotalLiabilities: liabilities,
		}, nil

	default:
		return nil, fmt.Errorf("%w: unknown metric kind %q", ErrInvalidInput, req.Kind)
	}
}
