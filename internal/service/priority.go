package service

import (
	"math"
	"sort"
	"time"

	"github.com/Nikskoz/AutoAdvisor/internal/model"
	"github.com/Nikskoz/AutoAdvisor/internal/utils"
)

// PriorityScorer assigns a coarse 0-100 rank from year and mileage alone,
// used only to cap the candidate pool before model-info lookups and the
// language-model call.
type PriorityScorer struct {
	now func() time.Time
}

// NewPriorityScorer creates a priority scorer.
func NewPriorityScorer() *PriorityScorer {
	return &PriorityScorer{now: time.Now}
}

// Score computes the priority score for one listing. It has no failure mode:
// missing or unparsable fields contribute their defaults.
func (s *PriorityScorer) Score(listing model.Listing) float64 {
	currentYear := s.now().Year()

	yearScore := 0.0
	if year, ok := utils.ParseYear(listing.Year); ok && year >= 1950 {
		// 1950 as a baseline: newer cars score higher with no hard age cutoff.
		yearScore = float64(year-1950) / float64(currentYear-1950)
	}

	mileage := utils.ParseDigits(listing.Mileage)

	// Logarithmic mileage scale: 50,000km ~0.80, 150,000km ~0.60,
	// 300,000km ~0.40, 500,000km ~0.20, never quite reaching 0.
	mileageScore := 1.0
	if mileage > 0 {
		mileageScore = math.Max(0.1, 1-(math.Log10(float64(mileage))-4)/3)
	}

	return (yearScore*0.5 + mileageScore*0.5) * 100
}

// TopByPriority scores every listing, sorts by priority descending and
// returns at most limit listings. The returned slice is a copy; source rows
// are not reordered.
func (s *PriorityScorer) TopByPriority(listings []model.Listing, limit int) []model.Listing {
	ranked := make([]model.Listing, len(listings))
	copy(ranked, listings)

	for i := range ranked {
		ranked[i].PriorityScore = s.Score(ranked[i])
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].PriorityScore > ranked[j].PriorityScore
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
