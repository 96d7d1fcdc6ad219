package planner

import (
	"errors"
	"math"
	"testing"

	"github.com/hualei/FinGenie/internal/models"
)

func twoDebts() []models.Debt {
	return []models.Debt{
		{ID: "card", Principal: 500, AnnualRate: 0.20, MinimumPayment: 25},
		{ID: "car", Principal: 2000, AnnualRate: 0.05, MinimumPayment: 50},
	}
}

func TestPlanAvalancheFirstMonth(t *testing.T) {
	p := New(0)

	plan, err := p.Plan(twoDebts(), 150, models.StrategyAvalanche)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	if plan.Strategy != models.StrategyAvalanche {
		t.Errorf("strategy = %q, want avalanche", plan.Strategy)
	}
	if plan.TotalDebt != 2500 {
		t.Errorf("total debt = %v, want 2500", plan.TotalDebt)
	}

	// Month 1: the 20% card gets its minimum plus the whole surplus, the
	// car only its minimum.
	var cardPaid, carPaid float64
	for _, e := range plan.Events {
		if e.Month != 1 {
			continue
		}
		switch e.DebtID {
		case "card":
			cardPaid += e.AmountPaid
		case "car":
			carPaid += e.AmountPaid
		}
	}
	if math.Abs(cardPaid-100) > 1e-9 {
		t.Errorf("card month-1 payment = %v, want 100", cardPaid)
	}
	if math.Abs(carPaid-50) > 1e-9 {
		t.Errorf("car month-1 payment = %v, want 50", carPaid)
	}
}

func TestPlanOneEventPerDebtPerMonth(t *testing.T) {
	p := New(0)
	plan, err := p.Plan(twoDebts(), 150, models.StrategyAvalanche)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	type key struct {
		month int
		id    string
	}
	seen := make(map[key]bool)
	for _, e := range plan.Events {
		k := key{e.Month, e.DebtID}
		if seen[k] {
			t.Fatalf("debt %s has two events in month %d", e.DebtID, e.Month)
		}
		seen[k] = true
	}
}

func TestPlanFullMonthSpendsWholeBudget(t *testing.T) {
	p := New(0)
	plan, err := p.Plan(twoDebts(), 150, models.StrategyAvalanche)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if plan.MonthsToPayoff < 2 {
		t.Fatalf("expected a multi-month plan, got %d months", plan.MonthsToPayoff)
	}

	var month1 float64
	for _, e := range plan.Events {
		if e.Month == 1 {
			month1 += e.AmountPaid
		}
	}
	if math.Abs(month1-150) > 1e-9 {
		t.Errorf("month-1 total payments = %v, want full budget 150", month1)
	}
}

func TestPlanFinalBalancesAreZero(t *testing.T) {
	p := New(0)
	for _, strategy := range []models.Strategy{models.StrategyAvalanche, models.StrategySnowball} {
		plan, err := p.Plan(twoDebts(), 150, strategy)
		if err != nil {
			t.Fatalf("Plan(%s) failed: %v", strategy, err)
		}

		final := make(map[string]float64)
		for _, e := range plan.Events {
			final[e.DebtID] = e.RemainingBalance
		}
		for id, bal := range final {
			if bal > 1e-6 {
				t.Errorf("%s: debt %s ends with balance %v", strategy, id, bal)
			}
		}
	}
}

func TestOrderTieBreaks(t *testing.T) {
	sameRate := []models.Debt{
		{ID: "big", Principal: 1000, AnnualRate: 0.10, MinimumPayment: 10},
		{ID: "small", Principal: 400, AnnualRate: 0.10, MinimumPayment: 10},
	}
	if got := order(sameRate, models.StrategyAvalanche); got[0].ID != "small" {
		t.Errorf("avalanche equal-rate tie: first = %s, want small", got[0].ID)
	}

	samePrincipal := []models.Debt{
		{ID: "cheap", Principal: 500, AnnualRate: 0.05, MinimumPayment: 10},
		{ID: "dear", Principal: 500, AnnualRate: 0.15, MinimumPayment: 10},
	}
	if got := order(samePrincipal, models.StrategySnowball); got[0].ID != "dear" {
		t.Errorf("snowball equal-principal tie: first = %s, want dear", got[0].ID)
	}
}

func TestPlanPaymentsConserveMoney(t *testing.T) {
	p := New(0)
	for _, strategy := range []models.Strategy{models.StrategyAvalanche, models.StrategySnowball} {
		plan, err := p.Plan(twoDebts(), 150, strategy)
		if err != nil {
			t.Fatalf("Plan(%s) failed: %v", strategy, err)
		}

		var totalPaid float64
		for _, e := range plan.Events {
			totalPaid += e.AmountPaid
		}
		want := plan.TotalDebt + plan.TotalInterestPaid
		if math.Abs(totalPaid-want) > 1e-6 {
			t.Errorf("%s: total paid %v, want principal+interest %v", strategy, totalPaid, want)
		}
	}
}

func TestStrategiesDivergeOnInvertedRanks(t *testing.T) {
	// Rate rank and principal rank point at different debts, so the two
	// strategies must send the surplus to different places in month 1.
	debts := []models.Debt{
		{ID: "big-expensive", Principal: 5000, AnnualRate: 0.20, MinimumPayment: 100},
		{ID: "small-cheap", Principal: 500, AnnualRate: 0.05, MinimumPayment: 25},
	}
	p := New(0)

	month1 := func(strategy models.Strategy) map[string]float64 {
		plan, err := p.Plan(debts, 300, strategy)
		if err != nil {
			t.Fatalf("Plan(%s) failed: %v", strategy, err)
		}
		paid := make(map[string]float64)
		for _, e := range plan.Events {
			if e.Month == 1 {
				paid[e.DebtID] += e.AmountPaid
			}
		}
		return paid
	}

	avalanche := month1(models.StrategyAvalanche)
	snowball := month1(models.StrategySnowball)

	// Surplus is 175 after minimums. Avalanche adds it to the high-rate
	// debt, snowball to the small one.
	if math.Abs(avalanche["big-expensive"]-275) > 1e-9 || math.Abs(avalanche["small-cheap"]-25) > 1e-9 {
		t.Errorf("avalanche month 1 = %v, want big-expensive=275 small-cheap=25", avalanche)
	}
	if math.Abs(snowball["small-cheap"]-200) > 1e-9 || math.Abs(snowball["big-expensive"]-100) > 1e-9 {
		t.Errorf("snowball month 1 = %v, want small-cheap=200 big-expensive=100", snowball)
	}
}

func TestCompareRecommendsAvalancheWhenOrdersDiverge(t *testing.T) {
	// High-rate debt is also the largest, so the two strategies walk
	// different paths.
	debts := []models.Debt{
		{ID: "big-expensive", Principal: 5000, AnnualRate: 0.20, MinimumPayment: 100},
		{ID: "small-cheap", Principal: 500, AnnualRate: 0.05, MinimumPayment: 25},
	}

	cmp, err := New(0).Compare(debts, 300)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}

	if cmp.Avalanche.TotalInterestPaid > cmp.Snowball.TotalInterestPaid {
		t.Errorf("avalanche interest %v exceeds snowball %v",
			cmp.Avalanche.TotalInterestPaid, cmp.Snowball.TotalInterestPaid)
	}
	if cmp.Recommended != models.StrategyAvalanche {
		t.Errorf("recommended = %q, want avalanche", cmp.Recommended)
	}
	if cmp.InterestSaved < 0 {
		t.Errorf("interest saved = %v, want >= 0", cmp.InterestSaved)
	}
	wantSaved := cmp.Snowball.TotalInterestPaid - cmp.Avalanche.TotalInterestPaid
	if math.Abs(cmp.InterestSaved-wantSaved) > 1e-9 {
		t.Errorf("interest saved = %v, want %v", cmp.InterestSaved, wantSaved)
	}
}

func TestPlanInsufficientBudget(t *testing.T) {
	debts := []models.Debt{
		{ID: "a", Principal: 1000, AnnualRate: 0.10, MinimumPayment: 100},
		{ID: "b", Principal: 1000, AnnualRate: 0.10, MinimumPayment: 50},
	}
	_, err := New(0).Plan(debts, 100, models.StrategyAvalanche)
	if !errors.Is(err, ErrInsufficientBudget) {
		t.Errorf("err = %v, want ErrInsufficientBudget", err)
	}
}

func TestPlanNonConvergent(t *testing.T) {
	// 10% monthly interest against a 60/month budget: the balance grows
	// every month.
	debts := []models.Debt{
		{ID: "shark", Principal: 1000, AnnualRate: 1.2, MinimumPayment: 50},
	}
	_, err := New(120).Plan(debts, 60, models.StrategyAvalanche)
	if !errors.Is(err, ErrNonConvergent) {
		t.Errorf("err = %v, want ErrNonConvergent", err)
	}
}

func TestPlanValidation(t *testing.T) {
	p := New(0)
	tests := []struct {
		name     string
		debts    []models.Debt
		budget   float64
		strategy models.Strategy
	}{
		{"empty debts", nil, 100, models.StrategyAvalanche},
		{"zero budget", twoDebts(), 0, models.StrategyAvalanche},
		{"duplicate ids", []models.Debt{
			{ID: "x", Principal: 100, MinimumPayment: 1},
			{ID: "x", Principal: 200, MinimumPayment: 1},
		}, 100, models.StrategyAvalanche},
		{"zero principal", []models.Debt{
			{ID: "x", Principal: 0, MinimumPayment: 1},
		}, 100, models.StrategySnowball},
		{"negative rate", []models.Debt{
			{ID: "x", Principal: 100, AnnualRate: -0.1, MinimumPayment: 1},
		}, 100, models.StrategySnowball},
		{"unknown strategy", twoDebts(), 150, models.Strategy("compare")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Plan(tt.debts, tt.budget, tt.strategy)
			if !errors.Is(err, ErrInvalidDebt) {
				t.Errorf("err = %v, want ErrInvalidDebt", err)
			}
		})
	}
}

func TestPlanZeroInterestDebtStillClears(t *testing.T) {
	debts := []models.Debt{
		{ID: "friend", Principal: 300, AnnualRate: 0, MinimumPayment: 0},
	}
	plan, err := New(0).Plan(debts, 100, models.StrategySnowball)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if plan.MonthsToPayoff != 3 {
		t.Errorf("months = %d, want 3", plan.MonthsToPayoff)
	}
	if plan.TotalInterestPaid != 0 {
		t.Errorf("interest = %v, want 0", plan.TotalInterestPaid)
	}
}
