package service

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/Nikskoz/AutoAdvisor/internal/model"
)

// byteCounter charges one token per byte, making budgets easy to reason
// about in tests.
type byteCounter struct{}

func (byteCounter) Count(text string) int { return len(text) }

func testCandidate(id, description string) Candidate {
	return Candidate{
		Listing: model.Listing{ID: id, MakeModel: "BMW 320d", Description: description},
	}
}

func headerCost(t *testing.T, filters *model.SearchFilters, candidates []Candidate) int {
	t.Helper()
	payload := promptPayload{
		SearchCriteria: buildSearchCriteria(filters),
		ValidIDs:       []string{},
		Listings:       []promptListing{},
	}
	for _, c := range candidates {
		payload.ValidIDs = append(payload.ValidIDs, strings.TrimSpace(c.Listing.ID))
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal header: %v", err)
	}
	return len(encoded)
}

func itemCost(t *testing.T, c Candidate) int {
	t.Helper()
	encoded, err := json.Marshal(buildPromptListing(c))
	if err != nil {
		t.Fatalf("marshal item: %v", err)
	}
	return len(encoded)
}

func TestPayloadPacker_AllFit(t *testing.T) {
	candidates := []Candidate{
		testCandidate("a1", "first"),
		testCandidate("b2", "second"),
	}

	packer := NewPayloadPacker(byteCounter{}, 1<<20)
	body, packed, err := packer.Pack(nil, candidates)
	if err != nil {
		t.Fatalf("Pack returned error: %v", err)
	}
	if packed != 2 {
		t.Errorf("packed = %d, want 2", packed)
	}

	var payload promptPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if len(payload.Listings) != 2 {
		t.Errorf("listings = %d, want 2", len(payload.Listings))
	}
	if payload.Listings[0].ID != "a1" || payload.Listings[1].ID != "b2" {
		t.Errorf("listing order broken: %q, %q", payload.Listings[0].ID, payload.Listings[1].ID)
	}
	if payload.SearchCriteria.PriceRange != "€0-unlimited" {
		t.Errorf("price_range = %q, want %q", payload.SearchCriteria.PriceRange, "€0-unlimited")
	}
}

func TestPayloadPacker_CeilingBelowHeader(t *testing.T) {
	candidates := []Candidate{testCandidate("a1", "first")}

	packer := NewPayloadPacker(byteCounter{}, 1)
	body, packed, err := packer.Pack(nil, candidates)
	if err != nil {
		t.Fatalf("Pack returned error: %v", err)
	}
	if packed != 0 {
		t.Errorf("packed = %d, want 0", packed)
	}

	// The payload must still be valid and keep every candidate in valid_ids.
	var payload promptPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if len(payload.ValidIDs) != 1 || payload.ValidIDs[0] != "a1" {
		t.Errorf("valid_ids = %v, want [a1]", payload.ValidIDs)
	}
	if len(payload.Listings) != 0 {
		t.Errorf("listings = %d, want 0", len(payload.Listings))
	}
}

func TestPayloadPacker_StopsAtFirstOverflow(t *testing.T) {
	// The second candidate overflows the budget; the third would fit but must
	// never be considered.
	candidates := []Candidate{
		testCandidate("small-1", "x"),
		testCandidate("huge", strings.Repeat("y", 4096)),
		testCandidate("small-2", "z"),
	}

	budget := headerCost(t, nil, candidates) + itemCost(t, candidates[0]) + itemCost(t, candidates[2])
	packer := NewPayloadPacker(byteCounter{}, budget)

	body, packed, err := packer.Pack(nil, candidates)
	if err != nil {
		t.Fatalf("Pack returned error: %v", err)
	}
	if packed != 1 {
		t.Fatalf("packed = %d, want 1 (packing must stop at the first overflow)", packed)
	}

	var payload promptPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if payload.Listings[0].ID != "small-1" {
		t.Errorf("packed listing = %q, want %q", payload.Listings[0].ID, "small-1")
	}
	if len(payload.ValidIDs) != 3 {
		t.Errorf("valid_ids = %d entries, want 3", len(payload.ValidIDs))
	}
}

func TestPayloadPacker_TrimsIDs(t *testing.T) {
	candidates := []Candidate{testCandidate("  a1  ", "first")}

	packer := NewPayloadPacker(byteCounter{}, 1<<20)
	body, _, err := packer.Pack(nil, candidates)
	if err != nil {
		t.Fatalf("Pack returned error: %v", err)
	}

	var payload promptPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if payload.ValidIDs[0] != "a1" {
		t.Errorf("valid_ids[0] = %q, want %q", payload.ValidIDs[0], "a1")
	}
	if payload.Listings[0].ID != "a1" {
		t.Errorf("listing id = %q, want %q", payload.Listings[0].ID, "a1")
	}
}

func TestBuildSearchCriteria(t *testing.T) {
	fuel := "diesel"
	filters := &model.SearchFilters{
		Price:    model.Range{Min: intPtr(5000), Max: intPtr(15000)},
		Mileage:  model.Range{Max: intPtr(200000)},
		FuelType: &fuel,
	}

	got := buildSearchCriteria(filters)
	if got.PriceRange != "€5000-15000" {
		t.Errorf("price_range = %q, want %q", got.PriceRange, "€5000-15000")
	}
	if got.MileageRange != "0-200000 km" {
		t.Errorf("mileage_range = %q, want %q", got.MileageRange, "0-200000 km")
	}
	if got.FuelType != "diesel" {
		t.Errorf("fuel_type = %q, want %q", got.FuelType, "diesel")
	}
	if got.Color != "any" {
		t.Errorf("color = %q, want %q", got.Color, "any")
	}
}

func TestBuildPromptListing(t *testing.T) {
	c := Candidate{
		Listing: model.Listing{
			ID:        "x9",
			MakeModel: "BMW 530d",
			Year:      "2015 marts",
			Price:     "12 500 €",
			Mileage:   "180,000 km",
			Options:   "Comfort: heated seats | Safety: ABS",
		},
		Info: model.ModelInfo{ModelName: "BMW 5 Series (F10)"},
	}

	got := buildPromptListing(c)
	if got.Year != 2015 {
		t.Errorf("year = %d, want 2015", got.Year)
	}
	if got.Price != "12500" {
		t.Errorf("price = %q, want %q", got.Price, "12500")
	}
	if got.Mileage != "180000" {
		t.Errorf("mileage = %q, want %q", got.Mileage, "180000")
	}
	if len(got.Features) != 2 {
		t.Errorf("features = %v, want 2 entries", got.Features)
	}
	if got.ModelInfo.ModelName != "BMW 5 Series (F10)" {
		t.Errorf("model_info not carried through")
	}
}
