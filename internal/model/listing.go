package model

// Listing represents one used-car listing row from the cars table.
// Price, mileage and year come straight from the scraped source and keep
// their original formatting (currency symbols, unit suffixes, locale words).
type Listing struct {
	ID             string `json:"id" db:"id"`
	MakeModel      string `json:"make_model" db:"make_model"`
	Year           string `json:"year" db:"year"`
	Price          string `json:"price" db:"price"`
	Mileage        string `json:"mileage" db:"mileage"`
	Engine         string `json:"engine" db:"engine"`
	Transmission   string `json:"transmission" db:"transmission"`
	Color          string `json:"color" db:"color"`
	BodyType       string `json:"body_type" db:"body_type"`
	TechInspection string `json:"tech_inspection" db:"tech_inspection"`
	Options        string `json:"options" db:"options"`
	Description    string `json:"description" db:"description"`
	Image          string `json:"image" db:"image"`
	URL            string `json:"url" db:"url"`

	// Derived scores, attached during a search request. Never persisted.
	PriorityScore float64 `json:"priority_score" db:"-"`
	MatchScore    float64 `json:"match_score" db:"-"`
}

// ModelInfo is the reference record for a BMW model variant.
// The zero value (all fields empty) is the valid "no match" result.
type ModelInfo struct {
	ModelName                 string   `json:"model_name"`
	ProductionYears           string   `json:"production_years"`
	EngineSpecifications      string   `json:"engine_specifications"`
	EngineCode                string   `json:"engine_code"`
	FuelType                  string   `json:"fuel_type"`
	Positives                 []string `json:"positives"`
	Negatives                 []string `json:"negatives"`
	CommonIssues              string   `json:"common_issues"`
	HighMileageConsiderations string   `json:"high_mileage_considerations"`
	OriginalPriceEUR          string   `json:"original_price_eur"`
}
