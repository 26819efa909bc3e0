package model

// CarDetails is the display projection of a Listing used in API responses.
type CarDetails struct {
	ID                  string   `json:"id"`
	Make                string   `json:"make"`
	Model               string   `json:"model"`
	Title               string   `json:"title"`
	Price               string   `json:"price"`
	Year                int      `json:"year"`
	Mileage             string   `json:"mileage"`
	FuelType            string   `json:"fuelType"`
	Transmission        string   `json:"transmission"`
	Color               string   `json:"color"`
	Condition           string   `json:"condition"`
	Location            string   `json:"location"`
	SellerType          string   `json:"sellerType"`
	ImageURL            string   `json:"imageUrl"`
	URL                 string   `json:"url"`
	Features            []string `json:"features"`
	EngineDetails       string   `json:"engineDetails"`
	BodyType            string   `json:"bodyType"`
	TechnicalInspection string   `json:"technicalInspection"`
	Description         string   `json:"description"`
}

// AIAnalysis holds the per-car analysis recovered from the language model
// reply, after loose-field normalization.
type AIAnalysis struct {
	MatchScore          int      `json:"matchScore"`
	Strengths           []string `json:"strengths"`
	Considerations      []string `json:"considerations"`
	CommonProblems      string   `json:"commonProblems"`
	HighMileageConcerns string   `json:"highMileageConcerns"`
	ValueAssessment     string   `json:"valueAssessment"`
	Recommendation      string   `json:"recommendation"`
	Summary             string   `json:"summary"`
	Pros                []string `json:"pros"`
	Cons                []string `json:"cons"`
}

// Recommendation joins one listing's display fields with its parsed analysis.
type Recommendation struct {
	CarDetails     CarDetails `json:"carDetails"`
	AIAnalysis     AIAnalysis `json:"aiAnalysis"`
	ChecklistItems string     `json:"checklistItems"`
	Comparison     string     `json:"comparison"`
	Summary        string     `json:"summary"`
}
