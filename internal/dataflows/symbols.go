package dataflows

import (
	"fmt"
	"regexp"
	"strings"
)

// Well-known company names mapped to tickers so common queries skip the
// provider lookup.
var knownSymbols = map[string]string{
	"apple":     "AAPL",
	"microsoft": "MSFT",
	"amazon":    "AMZN",
	"google":    "GOOGL",
	"alphabet":  "GOOGL",
	"tesla":     "TSLA",
	"infosys":   "INFY",
	"nvidia":    "NVDA",
	"meta":      "META",
	"netflix":   "NFLX",
}

var tickerPattern = regexp.MustCompile(`^[A-Z0-9.-]{1,10}$`)

// ResolveSymbol maps a company name or ticker-looking string to a ticker
// symbol.
func ResolveSymbol(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", fmt.Errorf("symbol is empty")
	}

	if symbol, ok := knownSymbols[strings.ToLower(trimmed)]; ok {
		return symbol, nil
	}

	upper := strings.ToUpper(trimmed)
	if tickerPattern.MatchString(upper) {
		return upper, nil
	}

	return "", fmt.Errorf("cannot resolve %q to a ticker symbol", input)
}

// ValidateSymbol rejects strings that cannot be ticker symbols.
func ValidateSymbol(symbol string) error {
	if !tickerPattern.MatchString(strings.ToUpper(strings.TrimSpace(symbol))) {
		return fmt.Errorf("invalid ticker symbol %q", symbol)
	}
	return nil
}
