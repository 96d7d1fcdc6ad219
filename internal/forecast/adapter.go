// Package forecast normalizes external forecast-model output into a common
// time-series shape. It performs no forecasting math of its own: the
// predictive model is a black box whose points arrive already materialized.
package forecast

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/hualei/FinGenie/internal/models"
)

// ErrMalformedForecast signals provider output that violates the series
// contract: a missing symbol, or bounds that do not bracket the estimate.
var ErrMalformedForecast = errors.New("malformed forecast")

// Normalize turns raw provider points into a ForecastResult: timestamps
// ascending, duplicate timestamps collapsed last-write-wins, missing-data
// markers mapped to explicit gap points. It never invents values.
func Normalize(symbol string, raw []models.RawForecastPoint) (*models.ForecastResult, error) {
	if symbol == "" {
		return nil, fmt.Errorf("%w: symbol is required", ErrMalformedForecast)
	}

	// Later occurrences of the same timestamp overwrite earlier ones;
	// input order is write order.
	byTime := make(map[int64]models.ForecastPoint, len(raw))
	for _, rp := range raw {
		point, err := normalizePoint(rp)
		if err != nil {
			return nil, err
		}
		byTime[rp.Timestamp.UnixNano()] = point
	}

	keys := make([]int64, 0, len(byTime))
	for k := range byTime {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	points := make([]models.ForecastPoint, 0, len(keys))
	for _, k := range keys {
		points = append(points, byTime[k])
	}

	return &models.ForecastResult{Symbol: symbol, Points: points}, nil
}

func normalizePoint(rp models.RawForecastPoint) (models.ForecastPoint, error) {
	if rp.Missing || math.IsNaN(rp.Estimate) {
		// Explicit gap; numeric fields are meaningless and zeroed.
		return models.ForecastPoint{Timestamp: rp.Timestamp, Gap: true}, nil
	}
	if math.IsNaN(rp.Lower) || math.IsNaN(rp.Upper) {
		return models.ForecastPoint{}, fmt.Errorf("%w: NaN bound at %s", ErrMalformedForecast, rp.Timestamp)
	}
	if rp.Lower > rp.Estimate || rp.Estimate > rp.Upper {
		return models.ForecastPoint{}, fmt.Errorf("%w: bounds [%v, %v] do not bracket estimate %v at %s",
			ErrMalformedForecast, rp.Lower, rp.Upper, rp.Estimate, rp.Timestamp)
	}
	return models.ForecastPoint{
		Timestamp: rp.Timestamp,
		Estimate:  rp.Estimate,
		Lower:     rp.Lower,
		Upper:     rp.Upper,
	}, nil
}
