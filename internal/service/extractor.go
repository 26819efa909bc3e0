package service

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Nikskoz/AutoAdvisor/internal/model"
	"github.com/Nikskoz/AutoAdvisor/internal/utils"
)

var selectedIDsRe = regexp.MustCompile(`SELECTED_IDS:\s*\[(.*?)\]`)

// analysisBlock is the outer shape of one per-car fragment in the reply.
// The analysis fields stay loosely typed until normalization.
type analysisBlock struct {
	ID       string         `json:"id"`
	Analysis map[string]any `json:"analysis"`
}

// ExtractRecommendations parses the language model's free-text reply into
// ordered recommendations. The reply is treated as an untrusted, partially
// malformed format: a missing or broken block for one ID is logged and
// dropped, while SELECTED_IDS missing entirely, zero locatable blocks, or
// zero assembled recommendations fail the whole request.
func ExtractRecommendations(content string, candidates []Candidate) ([]model.Recommendation, error) {
	idMatch := selectedIDsRe.FindStringSubmatch(content)
	if idMatch == nil {
		return nil, ErrNoSelection
	}

	var selectedIDs []string
	for _, raw := range strings.Split(idMatch[1], ",") {
		if id := strings.Trim(raw, ` "'`); id != "" {
			selectedIDs = append(selectedIDs, id)
		}
	}
	log.Info().Strs("ids", selectedIDs).Msg("Found selected IDs")

	byID := make(map[string]Candidate, len(candidates))
	for _, c := range candidates {
		byID[strings.TrimSpace(c.Listing.ID)] = c
	}

	// Locate the raw block for each selected ID independently; intervening
	// content between blocks is tolerated.
	type locatedBlock struct {
		id  string
		raw string
	}
	var blocks []locatedBlock
	for _, id := range selectedIDs {
		raw := findAnalysisBlock(content, id)
		if raw == "" {
			log.Warn().Str("id", id).Msg("Could not find analysis block for car ID")
			continue
		}
		blocks = append(blocks, locatedBlock{id: id, raw: raw})
	}
	if len(blocks) == 0 {
		return nil, ErrNoAnalyses
	}
	log.Info().Int("count", len(blocks)).Msg("Extracted analysis blocks")

	var recommendations []model.Recommendation
	for _, b := range blocks {
		var parsed analysisBlock
		if err := json.Unmarshal([]byte(utils.RepairJSON(b.raw)), &parsed); err != nil {
			log.Error().Err(err).Str("id", b.id).
				Str("json", utils.TruncateString(b.raw, 200)).
				Msg("Error parsing analysis JSON")
			continue
		}

		candidate, ok := byID[strings.TrimSpace(b.id)]
		if !ok {
			log.Warn().Str("id", b.id).Msg("No listing found for car ID")
			continue
		}

		recommendations = append(recommendations, assembleRecommendation(candidate, parsed.Analysis))
		log.Info().Str("id", b.id).Msg("Processed recommendation")
	}

	if len(recommendations) == 0 {
		return nil, ErrNoRecommendations
	}
	return recommendations, nil
}

// findAnalysisBlock locates the balanced {"id": "<id>", "analysis": {...}}
// object for one ID.
func findAnalysisBlock(content, id string) string {
	re, err := regexp.Compile(`\{\s*"id":\s*"` + regexp.QuoteMeta(id) + `"`)
	if err != nil {
		return ""
	}
	loc := re.FindStringIndex(content)
	if loc == nil {
		return ""
	}
	return utils.ExtractBalancedObject(content[loc[0]:])
}

// assembleRecommendation joins one candidate with its parsed analysis,
// normalizing loosely-typed fields and backfilling empty lists from the
// model reference data.
func assembleRecommendation(c Candidate, analysis map[string]any) model.Recommendation {
	listing := c.Listing
	info := c.Info

	carMake, carModel := utils.ParseMakeModel(listing.MakeModel)
	year, _ := utils.ParseYear(listing.Year)

	strengths := asStringList(analysis["strengths"])
	if len(strengths) == 0 {
		strengths = info.Positives
	}
	considerations := asStringList(analysis["considerations"])
	if len(considerations) == 0 {
		considerations = info.Negatives
	}

	checklist := asChecklist(analysis["checklistItems"])
	checklistText := strings.Join(checklist, "\n")
	if checklistText == "" {
		checklistText = info.CommonIssues
	}

	comparison := asString(analysis["comparison"])
	if comparison == "" {
		comparison = info.HighMileageConsiderations
	}

	summary := asString(analysis["summary"]) + "\n\n" + asString(analysis["recommendation"])

	return model.Recommendation{
		CarDetails: model.CarDetails{
			ID:                  listing.ID,
			Make:                carMake,
			Model:               carModel,
			Title:               fmt.Sprintf("%s %s (%d)", carMake, carModel, year),
			Price:               listing.Price,
			Year:                year,
			Mileage:             listing.Mileage,
			FuelType:            listing.Engine,
			Transmission:        listing.Transmission,
			Color:               listing.Color,
			Condition:           "Used",
			Location:            "Latvia",
			SellerType:          "Private",
			ImageURL:            listing.Image,
			URL:                 listing.URL,
			Features:            utils.ExtractFeatures(listing.Options),
			EngineDetails:       listing.Engine,
			BodyType:            listing.BodyType,
			TechnicalInspection: listing.TechInspection,
			Description:         listing.Description,
		},
		AIAnalysis: model.AIAnalysis{
			MatchScore:          asInt(analysis["matchScore"], 70),
			Strengths:           strengths,
			Considerations:      considerations,
			CommonProblems:      asStringOr(analysis["commonProblems"], info.CommonIssues),
			HighMileageConcerns: asStringOr(analysis["highMileageConcerns"], info.HighMileageConsiderations),
			ValueAssessment:     asString(analysis["valueAssessment"]),
			Recommendation:      asString(analysis["recommendation"]),
			Summary:             summary,
			Pros:                strengths,
			Cons:                considerations,
		},
		ChecklistItems: checklistText,
		Comparison:     comparison,
		Summary:        summary,
	}
}

// asStringList accepts an array of strings or a single period-delimited
// string and returns trimmed non-empty entries.
func asStringList(v any) []string {
	switch t := v.(type) {
	case []any:
		var out []string
		for _, item := range t {
			if s := strings.TrimSpace(asString(item)); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		var out []string
		for _, part := range strings.Split(t, ".") {
			if s := strings.TrimSpace(part); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// asChecklist accepts an array of strings or a newline-delimited string.
func asChecklist(v any) []string {
	if s, ok := v.(string); ok {
		var out []string
		for _, line := range strings.Split(s, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				out = append(out, line)
			}
		}
		return out
	}
	if items, ok := v.([]any); ok {
		var out []string
		for _, item := range items {
			if s := strings.TrimSpace(asString(item)); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}

func asStringOr(v any, fallback string) string {
	if s := asString(v); s != "" {
		return s
	}
	return fallback
}

func asInt(v any, fallback int) int {
	switch t := v.(type) {
	case float64:
		return int(t)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return n
		}
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return int(n)
		}
	}
	return fallback
}
