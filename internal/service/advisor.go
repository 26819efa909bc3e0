package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Nikskoz/AutoAdvisor/internal/model"
	"github.com/Nikskoz/AutoAdvisor/internal/utils"
)

// ListingSource provides filtered listing rows.
type ListingSource interface {
	SearchWithFilters(ctx context.Context, filters *model.SearchFilters) ([]model.Listing, error)
}

// ModelInfoSource resolves model reference data. Implementations never fail;
// absence degrades to the empty ModelInfo.
type ModelInfoSource interface {
	Resolve(ctx context.Context, modelName string, year int, engineType string) model.ModelInfo
}

// ChatClient performs one system+user chat completion.
type ChatClient interface {
	ChatCompletion(ctx context.Context, system, user string) (string, error)
}

// AdvisorService runs the full search pipeline: filter, priority-cap,
// enrich, match-score, pack, analyze, extract.
type AdvisorService struct {
	listings       ListingSource
	models         ModelInfoSource
	chat           ChatClient
	priority       *PriorityScorer
	matcher        *MatchScorer
	packer         *PayloadPacker
	candidateLimit int
}

// NewAdvisorService creates the advisor service.
func NewAdvisorService(
	listings ListingSource,
	models ModelInfoSource,
	chat ChatClient,
	priority *PriorityScorer,
	matcher *MatchScorer,
	packer *PayloadPacker,
	candidateLimit int,
) *AdvisorService {
	return &AdvisorService{
		listings:       listings,
		models:         models,
		chat:           chat,
		priority:       priority,
		matcher:        matcher,
		packer:         packer,
		candidateLimit: candidateLimit,
	}
}

// Search executes one search request end to end. An empty filter result is
// a successful empty response, not an error.
func (s *AdvisorService) Search(ctx context.Context, filters *model.SearchFilters) ([]model.Recommendation, error) {
	listings, err := s.listings.SearchWithFilters(ctx, filters)
	if err != nil {
		log.Error().Err(err).Msg("Listing search failed")
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	log.Info().Int("count", len(listings)).Msg("Found matching listings")

	if len(listings) == 0 {
		return []model.Recommendation{}, nil
	}

	top := s.priority.TopByPriority(listings, s.candidateLimit)

	candidates := make([]Candidate, 0, len(top))
	for _, listing := range top {
		_, carModel := utils.ParseMakeModel(listing.MakeModel)
		year, _ := utils.ParseYear(listing.Year)

		info := s.models.Resolve(ctx, carModel, year, listing.Engine)
		listing.MatchScore = s.matcher.Score(listing, info, filters)

		candidates = append(candidates, Candidate{Listing: listing, Info: info})
	}

	payload, packed, err := s.packer.Pack(filters, candidates)
	if err != nil {
		return nil, fmt.Errorf("failed to pack payload: %w", err)
	}
	log.Debug().Int("packed", packed).Int("bytes", len(payload)).Msg("Payload ready")

	content, err := s.chat.ChatCompletion(ctx, systemPrompt, string(payload))
	if err != nil {
		if errors.Is(err, ErrRateLimited) {
			return nil, err
		}
		log.Error().Err(err).Msg("Error getting AI analysis")
		return nil, fmt.Errorf("analysis call failed: %w", err)
	}

	recommendations, err := ExtractRecommendations(content, candidates)
	if err != nil {
		return nil, err
	}
	return recommendations, nil
}
