package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hualei/FinGenie/internal/models"
)

var (
	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")).
			MarginBottom(1)

	answerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#10B981")).
			Padding(0, 1).
			Width(76)

	clarifyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B")).
			Bold(true)

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3B82F6"))
)

func printBanner() {
	fmt.Println(bannerStyle.Render("FinGenie: your personal finance assistant"))
	fmt.Println(dimStyle.Render(`Ask about debt payoff, budgets, stock quotes, news sentiment, or
financial metrics. Type "reset" to start over, "exit" to quit.`))
	fmt.Println()
}

// RenderResult formats a structured result for the terminal. This is the
// deterministic fallback when no language model is configured.
func RenderResult(result models.StructuredResult) string {
	switch result.Kind {
	case models.ResultClarificationNeeded:
		return clarifyStyle.Render(clarificationPrompt(result.PendingSlot))

	case models.ResultHandlerUnavailable:
		msg := fmt.Sprintf("Sorry, I can't handle that right now: %s", result.Unavailable.Cause)
		if result.Unavailable.Retryable {
			msg += " (try again in a moment)"
		}
		return errStyle.Render(msg)

	case models.ResultError:
		return errStyle.Render(errorMessage(result.Err))

	default:
		return renderAnswer(result)
	}
}

func clarificationPrompt(slot string) string {
	switch slot {
	case "debts":
		return "I need your debt details first. Tell me about them and I'll walk you through entry."
	case "metric":
		return "Which metric would you like, and with what numbers?"
	case "headlines":
		return "Which company or topic should I read the news for?"
	case "symbol":
		return "Which stock are you asking about?"
	default:
		return fmt.Sprintf("I need one more thing: %s", slot)
	}
}

func errorMessage(info *models.ErrorInfo) string {
	switch info.Kind {
	case models.ErrKindInsufficientBudget:
		return "Your monthly budget doesn't cover the minimum payments. " + info.Detail
	case models.ErrKindNonConvergent:
		return "That plan never pays off within the simulation horizon; the budget barely covers interest. " + info.Detail
	case models.ErrKindDivisionByZero:
		return "I can't compute that ratio: " + info.Detail
	case models.ErrKindMalformedForecast:
		return "The forecast data looks corrupted: " + info.Detail
	case models.ErrKindInsufficientData:
		return "Not enough data to judge sentiment: " + info.Detail
	default:
		return "I couldn't compute that: " + info.Detail
	}
}

func renderAnswer(result models.StructuredResult) string {
	switch {
	case result.Plan != nil:
		return renderPlan(result.Plan)
	case result.Comparison != nil:
		return renderComparison(result.Comparison)
	case result.Metric != nil:
		return renderMetric(result.Metric)
	case result.Forecast != nil:
		return renderForecast(result.Forecast)
	case result.Sentiment != nil:
		return renderSentiment(result.Sentiment)
	case result.Quote != nil:
		return renderQuote(result.Quote)
	case result.Receipt != nil:
		return renderReceipt(result.Receipt)
	case result.Summary != nil:
		return renderSummary(result.Summary)
	default:
		return dimStyle.Render("Noted. Ask me about debts, budgets, stocks, or sentiment for a computed answer.")
	}
}

func renderPlan(plan *models.RepaymentPlan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", headingStyle.Render(fmt.Sprintf("Repayment plan (%s)", plan.Strategy)))
	fmt.Fprintf(&b, "Total debt:      $%.2f\n", plan.TotalDebt)
	fmt.Fprintf(&b, "Months to clear: %d (%.1f years)\n", plan.MonthsToPayoff, float64(plan.MonthsToPayoff)/12)
	fmt.Fprintf(&b, "Interest paid:   $%.2f\n", plan.TotalInterestPaid)

	// The first month shows where the money goes; the full schedule would
	// drown the terminal.
	fmt.Fprintf(&b, "\nFirst month:\n")
	for _, event := range plan.Events {
		if event.Month > 1 {
			break
		}
		fmt.Fprintf(&b, "  %-16s $%.2f (balance $%.2f)\n", event.DebtID, event.AmountPaid, event.RemainingBalance)
	}
	return answerStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func renderComparison(cmp *models.StrategyComparison) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", headingStyle.Render("Avalanche vs snowball"))
	fmt.Fprintf(&b, "Avalanche: %d months, $%.2f interest\n", cmp.Avalanche.MonthsToPayoff, cmp.Avalanche.TotalInterestPaid)
	fmt.Fprintf(&b, "Snowball:  %d months, $%.2f interest\n", cmp.Snowball.MonthsToPayoff, cmp.Snowball.TotalInterestPaid)
	fmt.Fprintf(&b, "\nRecommended: %s", cmp.Recommended)
	if cmp.InterestSaved > 0 {
		fmt.Fprintf(&b, " (saves $%.2f", cmp.InterestSaved)
		if cmp.MonthsSaved > 0 {
			fmt.Fprintf(&b, " and %d months", cmp.MonthsSaved)
		}
		b.WriteString(")")
	}
	return answerStyle.Render(b.String())
}

func renderMetric(metric *models.MetricResult) string {
	var b strings.Builder
	switch metric.Kind {
	case models.MetricDTI:
		fmt.Fprintf(&b, "%s\n", headingStyle.Render("Debt-to-income ratio"))
		fmt.Fprintf(&b, "DTI: %.1f%%\n", metric.Value*100)
		switch {
		case metric.Value < 0.36:
			b.WriteString("That's within the healthy range lenders look for.")
		case metric.Value < 0.43:
			b.WriteString("That's getting high; most lenders cap around 43%.")
		default:
			b.WriteString("That's above typical lending limits. Paying down debt should come first.")
		}
	case models.MetricInflationAdjustment:
		fmt.Fprintf(&b, "%s\n", headingStyle.Render("Inflation-adjusted value"))
		fmt.Fprintf(&b, "Today's purchasing power: $%.2f", metric.Value)
	case models.MetricNetWorth:
		fmt.Fprintf(&b, "%s\n", headingStyle.Render("Net worth"))
		fmt.Fprintf(&b, "Assets:      $%.2f\n", metric.TotalAssets)
		fmt.Fprintf(&b, "Liabilities: $%.2f\n", metric.TotalLiabilities)
		fmt.Fprintf(&b, "Net worth:   $%.2f", metric.Value)
	default:
		fmt.Fprintf(&b, "%s: %.4f", metric.Kind, metric.Value)
	}
	return answerStyle.Render(b.String())
}

func renderForecast(fc *models.ForecastResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", headingStyle.Render(fmt.Sprintf("Forecast for %s", fc.Symbol)))
	for _, p := range fc.Points {
		if p.Gap {
			fmt.Fprintf(&b, "  %s  (no data)\n", p.Timestamp.Format("2006-01-02"))
			continue
		}
		fmt.Fprintf(&b, "  %s  $%.2f  [$%.2f, $%.2f]\n",
			p.Timestamp.Format("2006-01-02"), p.Estimate, p.Lower, p.Upper)
	}
	return answerStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func renderSentiment(s *models.SentimentResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", headingStyle.Render("News sentiment"))
	fmt.Fprintf(&b, "Reading: %s (score %.2f across %d headlines)", s.Label, s.Score, s.SampleSize)
	return answerStyle.Render(b.String())
}

func renderQuote(q *models.Quote) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", headingStyle.Render(q.Symbol))
	fmt.Fprintf(&b, "Price:  %s %s\n", q.Price.StringFixed(2), q.Currency)
	fmt.Fprintf(&b, "Change: %s (%s%%)\n", q.Change.StringFixed(2), q.ChangePercent.StringFixed(2))
	fmt.Fprintf(&b, "Volume: %d\n", q.Volume)
	fmt.Fprintf(&b, "As of:  %s", q.AsOf.Format("2006-01-02 15:04"))
	return answerStyle.Render(b.String())
}

func renderReceipt(tx *models.Transaction) string {
	return answerStyle.Render(fmt.Sprintf("Recorded %s of $%.2f under %q on %s (#%d)",
		tx.Type, tx.Amount, tx.Category, tx.Date, tx.ID))
}

func renderSummary(summary *models.BudgetSummary) string {
	var b strings.Builder
	title := "Budget summary"
	if len(summary.Months) > 0 {
		title += " for " + strings.Join(summary.Months, ", ")
	}
	fmt.Fprintf(&b, "%s\n", headingStyle.Render(title))
	fmt.Fprintf(&b, "Income:   $%.2f\n", summary.TotalIncome)
	fmt.Fprintf(&b, "Expenses: $%.2f\n", summary.TotalExpenses)
	fmt.Fprintf(&b, "Balance:  $%.2f\n", summary.Balance)

	if len(summary.ByCategory) > 0 {
		b.WriteString("\nSpending by category:\n")
		categories := make([]string, 0, len(summary.ByCategory))
		for category := range summary.ByCategory {
			categories = append(categories, category)
		}
		sort.Slice(categories, func(i, j int) bool {
			return summary.ByCategory[categories[i]] > summary.ByCategory[categories[j]]
		})
		for _, category := range categories {
			fmt.Fprintf(&b, "  %-16s $%.2f\n", category, summary.ByCategory[category])
		}
	}
	return answerStyle.Render(strings.TrimRight(b.String(), "\n"))
}
