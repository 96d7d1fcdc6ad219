package models

import "time"

// RawForecastPoint is one point exactly as an external forecast provider
// produced it: possibly out of order, duplicated, or marked missing.
type RawForecastPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Estimate  float64   `json:"estimate"`
	Lower     float64   `json:"lower"`
	Upper     float64   `json:"upper"`
	Missing   bool      `json:"missing,omitempty"`
}

// ForecastPoint is a normalized point. Gap marks a slot the provider had no
// data for; gaps are reported explicitly, never interpolated over.
type ForecastPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Estimate  float64   `json:"estimate"`
	Lower     float64   `json:"lower"`
	Upper     float64   `json:"upper"`
	Gap       bool      `json:"gap,omitempty"`
}

// ForecastResult holds a normalized series: ascending timestamps, no
// duplicates.
type ForecastResult struct {
	Symbol string          `json:"symbol"`
	Points []ForecastPoint `json:"points"`
}
