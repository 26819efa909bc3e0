package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Nikskoz/AutoAdvisor/internal/model"
	"github.com/Nikskoz/AutoAdvisor/internal/utils"
)

// Candidate is a listing enriched with its resolved model reference data.
type Candidate struct {
	Listing model.Listing
	Info    model.ModelInfo
}

// promptPayload is the JSON body sent to the language model. valid_ids is
// the allow-list of every candidate, even those the token budget excludes
// from the listings array.
type promptPayload struct {
	SearchCriteria searchCriteria  `json:"search_criteria"`
	ValidIDs       []string        `json:"valid_ids"`
	Listings       []promptListing `json:"listings"`
}

type searchCriteria struct {
	PriceRange   string `json:"price_range"`
	MileageRange string `json:"mileage_range"`
	FuelType     string `json:"fuel_type"`
	Color        string `json:"color"`
}

type promptListing struct {
	ID             string          `json:"id"`
	MakeModel      string          `json:"make_model"`
	Year           int             `json:"year"`
	Price          string          `json:"price"`
	Mileage        string          `json:"mileage"`
	Engine         string          `json:"engine"`
	Transmission   string          `json:"transmission"`
	Color          string          `json:"color"`
	BodyType       string          `json:"body_type"`
	TechInspection string          `json:"tech_inspection"`
	Features       []string        `json:"features"`
	Description    string          `json:"description"`
	URL            string          `json:"url"`
	Image          string          `json:"image"`
	ModelInfo      model.ModelInfo `json:"model_info"`
	PriorityScore  float64         `json:"priority_score"`
	MatchScore     float64         `json:"match_score"`
}

// PayloadPacker serializes candidates into a token-budgeted request body.
type PayloadPacker struct {
	counter   TokenCounter
	maxTokens int
}

// NewPayloadPacker creates a packer with a hard input-token ceiling.
func NewPayloadPacker(counter TokenCounter, maxTokens int) *PayloadPacker {
	return &PayloadPacker{counter: counter, maxTokens: maxTokens}
}

// Pack builds the request body from an ordered candidate sequence. Packing
// is greedy and order-preserving: the running total starts at the header's
// own cost and packing stops at the first candidate that would overflow the
// ceiling. Later candidates are never considered, even if individually
// smaller.
func (p *PayloadPacker) Pack(filters *model.SearchFilters, candidates []Candidate) ([]byte, int, error) {
	payload := promptPayload{
		SearchCriteria: buildSearchCriteria(filters),
		ValidIDs:       make([]string, 0, len(candidates)),
		Listings:       []promptListing{},
	}
	for _, c := range candidates {
		payload.ValidIDs = append(payload.ValidIDs, strings.TrimSpace(c.Listing.ID))
	}

	header, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to marshal payload header: %w", err)
	}
	total := p.counter.Count(string(header))

	for _, c := range candidates {
		item := buildPromptListing(c)
		encoded, err := json.Marshal(item)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to marshal listing %s: %w", item.ID, err)
		}
		cost := p.counter.Count(string(encoded))
		if total+cost > p.maxTokens {
			break
		}
		payload.Listings = append(payload.Listings, item)
		total += cost
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to marshal payload: %w", err)
	}

	log.Info().
		Int("candidates", len(candidates)).
		Int("packed", len(payload.Listings)).
		Int("tokens", total).
		Msg("Prepared listings for analysis")

	return body, len(payload.Listings), nil
}

func buildSearchCriteria(filters *model.SearchFilters) searchCriteria {
	if filters == nil {
		filters = &model.SearchFilters{}
	}
	return searchCriteria{
		PriceRange:   fmt.Sprintf("€%s-%s", orDefault(filters.Price.Min, "0"), orDefault(filters.Price.Max, "unlimited")),
		MileageRange: fmt.Sprintf("%s-%s km", orDefault(filters.Mileage.Min, "0"), orDefault(filters.Mileage.Max, "unlimited")),
		FuelType:     orDefaultStr(filters.FuelType, "any"),
		Color:        orDefaultStr(filters.Color, "any"),
	}
}

func buildPromptListing(c Candidate) promptListing {
	year, _ := utils.ParseYear(c.Listing.Year)
	return promptListing{
		ID:             strings.TrimSpace(c.Listing.ID),
		MakeModel:      c.Listing.MakeModel,
		Year:           year,
		Price:          utils.CleanNumeric(c.Listing.Price, "€"),
		Mileage:        utils.CleanNumeric(c.Listing.Mileage, "km"),
		Engine:         c.Listing.Engine,
		Transmission:   c.Listing.Transmission,
		Color:          c.Listing.Color,
		BodyType:       c.Listing.BodyType,
		TechInspection: c.Listing.TechInspection,
		Features:       utils.ExtractFeatures(c.Listing.Options),
		Description:    c.Listing.Description,
		URL:            c.Listing.URL,
		Image:          c.Listing.Image,
		ModelInfo:      c.Info,
		PriorityScore:  c.Listing.PriorityScore,
		MatchScore:     c.Listing.MatchScore,
	}
}

func orDefault(v *int, def string) string {
	if v == nil {
		return def
	}
	return fmt.Sprintf("%d", *v)
}

func orDefaultStr(v *string, def string) string {
	if v == nil || *v == "" {
		return def
	}
	return *v
}
