package models

// Intent is the closed set of query categories the router dispatches on.
// A turn's intent is immutable once classified.
type Intent string

const (
	IntentStockQuery       Intent = "stock_query"
	IntentBudgetEntry      Intent = "budget_entry"
	IntentLoanAdvice       Intent = "loan_advice"
	IntentCreditAdvice     Intent = "credit_advice"
	IntentPlanningMetric   Intent = "planning_metric"
	IntentSentimentQuery   Intent = "sentiment_query"
	IntentLiteracyQuestion Intent = "literacy_question"
	IntentWebLookup        Intent = "web_lookup"
	IntentGeneralChat      Intent = "general_chat"
)

// AllIntents lists every intent in classifier precedence order: more
// specific categories first so that tie scores resolve deterministically.
var AllIntents = []Intent{
	IntentLoanAdvice,
	IntentPlanningMetric,
	IntentSentimentQuery,
	IntentStockQuery,
	IntentBudgetEntry,
	IntentCreditAdvice,
	IntentWebLookup,
	IntentLiteracyQuestion,
	IntentGeneralChat,
}

func (i Intent) String() string {
	return string(i)
}

// Valid reports whether the intent belongs to the closed enumeration.
func (i Intent) Valid() bool {
	for _, known := range AllIntents {
		if i == known {
			return true
		}
	}
	return false
}
