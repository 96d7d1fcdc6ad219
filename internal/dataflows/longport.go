package dataflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	lpconfig "github.com/longportapp/openapi-go/config"
	lpquote "github.com/longportapp/openapi-go/quote"
	"github.com/shopspring/decimal"

	"github.com/hualei/FinGenie/config"
	"github.com/hualei/FinGenie/internal/models"
)

// LongportClient serves quotes through the Longport broker API, for users
// whose accounts live there.
type LongportClient struct {
	quoteCtx *lpquote.QuoteContext
	cache    *Cache
}

// NewLongportClient builds a Longport-backed quote provider from API
// credentials in the config.
func NewLongportClient(cfg *config.Config) (*LongportClient, error) {
	if cfg.LongportAppKey == "" || cfg.LongportAppSecret == "" || cfg.LongportAccessToken == "" {
		return nil, errors.New("longport API credentials not configured")
	}

	conf, err := lpconfig.New(lpconfig.WithConfigKey(cfg.LongportAppKey, cfg.LongportAppSecret, cfg.LongportAccessToken))
	if err != nil {
		return nil, err
	}

	quoteCtx, err := lpquote.NewFromCfg(conf)
	if err != nil {
		return nil, err
	}

	return &LongportClient{
		quoteCtx: quoteCtx,
		cache:    NewCache(15*time.Minute, cfg.CacheEnabled),
	}, nil
}

// Quote derives a current quote from the two most recent daily candles.
func (lc *LongportClient) Quote(ctx context.Context, symbol string) (*models.Quote, error) {
	if err := ValidateSymbol(symbol); err != nil {
		return nil, err
	}

	if cached, ok := lc.cache.Get("quote:" + symbol); ok {
		if q, ok := cached.(*models.Quote); ok {
			return q, nil
		}
	}

	sticks, err := lc.quoteCtx.Candlesticks(ctx, symbol, lpquote.PeriodDay, 2, lpquote.AdjustTypeNo)
	if err != nil {
		return nil, fmt.Errorf("fetch candlesticks for %s: %w", symbol, err)
	}
	if len(sticks) == 0 {
		return nil, fmt.Errorf("no candlestick data for %s", symbol)
	}

	last := sticks[len(sticks)-1]
	lastClose, _ := last.Close.Float64()

	change := 0.0
	changePct := 0.0
	if len(sticks) > 1 {
		prevClose, _ := sticks[len(sticks)-2].Close.Float64()
		change = lastClose - prevClose
		if prevClose != 0 {
			changePct = change / prevClose * 100
		}
	}

	result := &models.Quote{
		Symbol:        symbol,
		Price:         decimal.NewFromFloat(lastClose),
		Change:        decimal.NewFromFloat(change),
		ChangePercent: decimal.NewFromFloat(changePct),
		Volume:        last.Volume,
		AsOf:          time.Unix(last.Timestamp, 0),
	}

	lc.cache.Set("quote:"+symbol, result)
	return result, nil
}
