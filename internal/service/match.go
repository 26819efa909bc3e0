package service

import (
	"errors"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nikskoz/AutoAdvisor/internal/model"
	"github.com/Nikskoz/AutoAdvisor/internal/utils"
)

// errDegenerateBound marks a zero bound that would make a sub-formula divide
// by zero. The whole score falls back to the neutral default in that case.
var errDegenerateBound = errors.New("degenerate filter bound")

// MatchScorer computes the 30-100 relevance score of a listing against the
// user's explicit filters. Weights are configurable; defaults are
// 0.40 price + 0.35 mileage + 0.25 age.
type MatchScorer struct {
	weightPrice   float64
	weightMileage float64
	weightAge     float64
	now           func() time.Time
}

// NewMatchScorer creates a match scorer with the given sub-score weights.
func NewMatchScorer(weightPrice, weightMileage, weightAge float64) *MatchScorer {
	return &MatchScorer{
		weightPrice:   weightPrice,
		weightMileage: weightMileage,
		weightAge:     weightAge,
		now:           time.Now,
	}
}

// Score computes the final match score. It never fails: degenerate inputs
// fall back to the neutral score of 50.
func (s *MatchScorer) Score(listing model.Listing, info model.ModelInfo, filters *model.SearchFilters) float64 {
	if filters == nil {
		filters = &model.SearchFilters{}
	}

	price := utils.ParseDigits(listing.Price)
	priceScore, err := priceSubScore(price, filters.Price.Min, filters.Price.Max)
	if err != nil {
		return 50
	}

	mileage := utils.ParseDigits(listing.Mileage)
	mileageScore, err := rangeSubScore(mileage, filters.Mileage.Min, filters.Mileage.Max, unconstrainedMileageScore)
	if err != nil {
		return 50
	}

	year, hasYear := utils.ParseYear(listing.Year)
	ageScore := ageSubScore(year, hasYear, filters.Price.Max, s.now().Year())

	log.Debug().
		Str("id", listing.ID).
		Float64("price_score", priceScore).
		Float64("mileage_score", mileageScore).
		Float64("age_score", ageScore).
		Msg("Match sub-scores")

	score := priceScore*s.weightPrice + mileageScore*s.weightMileage + ageScore*s.weightAge

	return math.Min(math.Max(score*100, 30), 100)
}

// priceSubScore scores the price dimension in roughly [0,1].
func priceSubScore(price int, min, max *int) (float64, error) {
	return rangeSubScore(price, min, max, unconstrainedPriceScore)
}

// rangeSubScore is the shared formula family for price and mileage: both
// dimensions prefer lower in-range values, with partial credit outside the
// range and a logarithmic preference when no bound is given.
func rangeSubScore(value int, min, max *int, unconstrained func(int) float64) (float64, error) {
	switch {
	case min != nil && max != nil:
		span := float64(*max - *min)
		if span <= 0 {
			return 0, nil
		}
		if value >= *min && value <= *max {
			// Linear: min = 1.0, max = 0.7.
			return 0.7 + 0.3*(1-float64(value-*min)/span), nil
		}
		distance := math.Min(math.Abs(float64(value-*min)), math.Abs(float64(value-*max)))
		return math.Max(0, 0.7-distance/span), nil

	case min != nil:
		if value >= *min {
			return 0.8, nil
		}
		return math.Max(0.3, 0.8*float64(value)/float64(*min)), nil

	case max != nil:
		if *max <= 0 {
			return 0, errDegenerateBound
		}
		if value <= *max {
			return 0.7 + 0.3*(1-float64(value)/float64(*max)), nil
		}
		return math.Max(0, 0.7-0.5*float64(value-*max)/float64(*max)), nil

	default:
		return unconstrained(value), nil
	}
}

// unconstrainedPriceScore prefers lower prices on a log scale:
// €5,000 -> 1.0, €10,000 -> 0.9, €50,000 -> 0.67, floored at 0.5.
func unconstrainedPriceScore(price int) float64 {
	p := math.Max(5000, float64(price))
	return math.Max(0.5, 1-(math.Log10(p)-math.Log10(5000))/3)
}

// unconstrainedMileageScore prefers lower mileage on a log scale, floored
// at 0.4.
func unconstrainedMileageScore(mileage int) float64 {
	m := math.Max(1, float64(mileage))
	return math.Max(0.4, 1-(math.Log10(m)-3)/5)
}

// ageSubScore scores the age dimension. With a price ceiling the expected
// maximum age shrinks as the budget grows; without one, fixed age bands
// apply. A missing year scores a flat 0.4.
func ageSubScore(year int, hasYear bool, priceMax *int, currentYear int) float64 {
	if !hasYear {
		return 0.4
	}

	age := float64(currentYear - year)

	if priceMax != nil {
		expectedMaxAge := 5 + 15*(1-math.Min(float64(*priceMax), 50000)/50000)
		return math.Max(0.3, 1-age/expectedMaxAge)
	}

	switch {
	case age <= 3:
		return 1.0 - age/30
	case age <= 7:
		return 0.9 - (age-3)/40
	case age <= 15:
		return 0.7 - (age-7)/40
	default:
		return math.Max(0.3, 0.4-(age-15)/100)
	}
}
