package cli

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/hualei/FinGenie/internal/dataflows"
	"github.com/hualei/FinGenie/internal/models"
)

var (
	spentPattern  = regexp.MustCompile(`(?i)\b(spent|paid|invested)\b\s*\$?(\d+(?:\.\d+)?)\s*(?:on|for)?\s*([a-zA-Z ]*)`)
	earnedPattern = regexp.MustCompile(`(?i)\b(earned|received)\b\s*\$?(\d+(?:\.\d+)?)\s*(?:from)?\s*([a-zA-Z ]*)`)
	monthPattern  = regexp.MustCompile(`\b(\d{4})-(\d{2})\b`)
)

// parseTransaction extracts a ledger entry from phrasings like
// "I spent 45.50 on groceries" or "earned 3000 from salary".
func parseTransaction(utterance string) *models.TransactionEntry {
	if m := spentPattern.FindStringSubmatch(utterance); m != nil {
		amount, err := strconv.ParseFloat(m[2], 64)
		if err != nil || amount <= 0 {
			return nil
		}
		category := strings.TrimSpace(m[3])
		if category == "" {
			category = "uncategorized"
		}
		if strings.EqualFold(m[1], "invested") && !strings.Contains(strings.ToLower(category), "investment") {
			category += " investment"
		}
		return &models.TransactionEntry{
			Type:     models.TransactionExpense,
			Category: strings.ToLower(category),
			Amount:   amount,
		}
	}

	if m := earnedPattern.FindStringSubmatch(utterance); m != nil {
		amount, err := strconv.ParseFloat(m[2], 64)
		if err != nil || amount <= 0 {
			return nil
		}
		category := strings.TrimSpace(m[3])
		if category == "" {
			category = "income"
		}
		return &models.TransactionEntry{
			Type:     models.TransactionIncome,
			Category: strings.ToLower(category),
			Amount:   amount,
		}
	}

	return nil
}

// parseMonths collects YYYY-MM references plus bare month names, which are
// resolved against the current year.
func parseMonths(utterance string) []string {
	var months []string
	for _, m := range monthPattern.FindAllStringSubmatch(utterance, -1) {
		months = append(months, m[1]+"-"+m[2])
	}

	lower := strings.ToLower(utterance)
	for i := time.January; i <= time.December; i++ {
		name := strings.ToLower(i.String())
		if strings.Contains(lower, name) {
			months = append(months, time.Date(time.Now().Year(), i, 1, 0, 0, 0, 0, time.UTC).Format("2006-01"))
		}
	}
	return months
}

// parseStrategy picks up an explicit strategy mention.
func parseStrategy(utterance string) models.Strategy {
	lower := strings.ToLower(utterance)
	switch {
	case strings.Contains(lower, "compare"):
		return models.StrategyCompare
	case strings.Contains(lower, "snowball"):
		return models.StrategySnowball
	case strings.Contains(lower, "avalanche"):
		return models.StrategyAvalanche
	default:
		return ""
	}
}

var tickerWordPattern = regexp.MustCompile(`^[A-Z]{1,5}(\.[A-Z]+)?$`)

var commonWords = map[string]bool{
	"I": true, "A": true, "THE": true, "IS": true, "OF": true, "ON": true,
	"IN": true, "MY": true, "TO": true, "FOR": true, "AND": true, "WHAT": true,
	"HOW": true, "ARE": true, "YOU": true, "NEWS": true, "BUY": true,
	"SELL": true, "USD": true,
}

// parseSymbol finds a ticker or a known company name in the utterance. A
// bare token only counts as a ticker when the user wrote it in uppercase;
// otherwise ordinary words like "groceries" would pass symbol validation.
func parseSymbol(utterance string) string {
	for _, word := range strings.Fields(utterance) {
		cleaned := strings.Trim(word, ".,!?:;\"'()")
		if cleaned == "" || commonWords[strings.ToUpper(cleaned)] {
			continue
		}
		symbol, err := dataflows.ResolveSymbol(cleaned)
		if err != nil {
			continue
		}
		if symbol != strings.ToUpper(cleaned) {
			// Resolved through the company-name table.
			return symbol
		}
		if cleaned == strings.ToUpper(cleaned) && tickerWordPattern.MatchString(cleaned) {
			return symbol
		}
	}
	return ""
}
