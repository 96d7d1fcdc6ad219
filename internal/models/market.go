package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote is a point-in-time stock quote from a market data provider.
type Quote struct {
	Symbol        string          `json:"symbol"`
	Price         decimal.Decimal `json:"price"`
	Change        decimal.Decimal `json:"change"`
	ChangePercent decimal.Decimal `json:"change_percent"`
	Volume        int64           `json:"volume"`
	Currency      string          `json:"currency,omitempty"`
	AsOf          time.Time       `json:"as_of"`
}
