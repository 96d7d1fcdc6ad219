package models

// MetricKind tags the variant carried by a FinancialMetricRequest.
type MetricKind string

const (
	MetricDTI                 MetricKind = "dti"
	MetricInflationAdjustment MetricKind = "inflation_adjustment"
	MetricNetWorth            MetricKind = "net_worth"
)

// DTIRequest asks for a debt-to-income ratio.
type DTIRequest struct {
	MonthlyDebtPayments float64 `json:"monthly_debt_payments"`
	GrossMonthlyIncome  float64 `json:"gross_monthly_income"`
}

// InflationRequest asks for the present value of a nominal amount after a
// number of years of inflation.
type InflationRequest struct {
	NominalAmount float64 `json:"nominal_amount"`
	AnnualRate    float64 `json:"annual_rate"`
	Years         float64 `json:"years"`
}

// NetWorthRequest asks for assets minus liabilities. Empty maps are valid
// and contribute zero.
type NetWorthRequest struct {
	Assets      map[string]float64 `json:"assets"`
	Liabilities map[string]float64 `json:"liabilities"`
}

// FinancialMetricRequest is a tagged variant: exactly the field matching
// Kind is set.
type FinancialMetricRequest struct {
	Kind      MetricKind        `json:"kind"`
	DTI       *DTIRequest       `json:"dti,omitempty"`
	Inflation *InflationRequest `json:"inflation,omitempty"`
	NetWorth  *NetWorthRequest  `json:"net_worth,omitempty"`
}

// MetricResult is the computed value of a metric request. Value carries the
// headline number; the breakdown fields are populated for net worth only.
type MetricResult struct {
	Kind             MetricKind `json:"kind"`
	Value            float64    `json:"value"`
	TotalAssets      float64    `json:"total_assets,omitempty"`
	TotalLiabilities float64    `json:"total_liabilities,omitempty"`
}
