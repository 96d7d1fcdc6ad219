package dataflows

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/piquette/finance-go/quote"
	"github.com/shopspring/decimal"

	"github.com/hualei/FinGenie/internal/models"
)

// YahooClient fetches current quotes from Yahoo Finance.
type YahooClient struct {
	cache *Cache
}

// NewYahooClient creates a Yahoo quote provider with a short-lived cache.
func NewYahooClient(cacheEnabled bool) *YahooClient {
	return &YahooClient{
		cache: NewCache(15*time.Minute, cacheEnabled),
	}
}

// Quote returns the current quote for a ticker symbol.
func (yc *YahooClient) Quote(ctx context.Context, symbol string) (*models.Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if err := ValidateSymbol(symbol); err != nil {
		return nil, err
	}

	if cached, ok := yc.cache.Get("quote:" + symbol); ok {
		if q, ok := cached.(*models.Quote); ok {
			return q, nil
		}
	}

	q, err := quote.Get(symbol)
	if err != nil {
		return nil, fmt.Errorf("fetch quote for %s: %w", symbol, err)
	}
	if q == nil {
		return nil, fmt.Errorf("no quote data for %s", symbol)
	}

	result := &models.Quote{
		Symbol:        symbol,
		Price:         decimal.NewFromFloat(q.RegularMarketPrice),
		Change:        decimal.NewFromFloat(q.RegularMarketChange),
		ChangePercent: decimal.NewFromFloat(q.RegularMarketChangePercent),
		Volume:        int64(q.RegularMarketVolume),
		Currency:      q.CurrencyID,
		AsOf:          time.Now(),
	}

	yc.cache.Set("quote:"+symbol, result)
	return result, nil
}
