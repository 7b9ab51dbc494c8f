// Package api defines the shared data contracts for the design pipeline.
// Every component (constraint engine, generator, evaluator, learned models)
// exchanges these records; the JSON shape is the wire format for storage
// and transport collaborators.
package api

// Climate is the site climate classification.
type Climate string

const (
	ClimateCold     Climate = "cold"
	ClimateModerate Climate = "moderate"
	ClimateHot      Climate = "hot"
)

// Priority is the sustainability dimension the client cares most about.
type Priority string

const (
	PriorityEnergy    Priority = "energy"
	PriorityWater     Priority = "water"
	PriorityMaterials Priority = "materials"
)

// CarbonLevel is the categorical carbon footprint assessment.
type CarbonLevel string

const (
	CarbonLow    CarbonLevel = "Low"
	CarbonMedium CarbonLevel = "Medium"
	CarbonHigh   CarbonLevel = "High"
)

// RawConstraints is the pre-validation input as received from any transport.
// Pointer fields distinguish "absent" from "zero"; numbers arrive as floats
// so integer-ness of area can be checked rather than assumed.
type RawConstraints struct {
	Area     *float64 `json:"area"`
	Budget   *float64 `json:"budget"`
	Climate  *string  `json:"climate"`
	Priority *string  `json:"priority"`
}

// Constraints is the validated design brief. Immutable once validated.
type Constraints struct {
	Area     int      `json:"area"`   // sq ft, 300-2000
	Budget   float64  `json:"budget"` // relative level, 0-100
	Climate  Climate  `json:"climate"`
	Priority Priority `json:"priority"`
}

// ProcessedConstraints carries the validated constraints plus derived
// categorical and weight features consumed downstream. The embedded
// Constraints are never mutated.
type ProcessedConstraints struct {
	Constraints
	AreaCategory      string   `json:"area_category"`   // small, medium, large
	BudgetCategory    string   `json:"budget_category"` // low, medium, high
	ClimateStrategies []string `json:"climate_strategies"`
	PriorityWeight    float64  `json:"priority_weight"`
}

// LifecycleAnalysis splits carbon into embodied and annual operational parts.
type LifecycleAnalysis struct {
	Embodied    float64 `json:"embodied"`    // kg CO2e / sq ft
	Operational float64 `json:"operational"` // kg CO2e / year
}

// Metrics is the evaluation output attached to a design. All bounded
// scores are clamped to [0, 100] before storage.
type Metrics struct {
	EnergyEfficiency    int               `json:"energyEfficiency"`
	WaterEfficiency     int               `json:"waterEfficiency"`
	MaterialsEfficiency int               `json:"materialsEfficiency"`
	CarbonFootprint     CarbonLevel       `json:"carbonFootprint"`
	SustainabilityIndex int               `json:"sustainabilityIndex"`
	EstimatedCost       int               `json:"estimatedCost"` // currency units
	PaybackPeriodYears  int               `json:"payback_period_years"`
	Lifecycle           LifecycleAnalysis `json:"lifecycle_analysis"`
}

// Ranking is the position assigned by sorting on sustainability index,
// with a snapshot of the key metrics at ranking time.
type Ranking struct {
	Position            int         `json:"position"` // 1-based
	SustainabilityScore int         `json:"sustainability_score"`
	EnergyEfficiency    int         `json:"energy_efficiency"`
	WaterEfficiency     int         `json:"water_efficiency"`
	CarbonLevel         CarbonLevel `json:"carbon_level"`
}

// Design ids for the three fixed variants.
const (
	DesignEcoEfficient    = "design-a"
	DesignCarbonOptimized = "design-b"
	DesignRegenerative    = "design-c"
)

// Design is one generated alternative. Created fresh per request; never
// mutated after creation except to attach Metrics and Ranking.
type Design struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Materials   []string `json:"materials"`
	KeyFeatures []string `json:"keyFeatures"`
	Strategies  []string `json:"strategies"`

	DesignApproach          string  `json:"design_approach"`
	EstimatedEmbodiedCarbon float64 `json:"estimated_embodied_carbon"` // kg CO2e / sq ft

	// Variant-specific flags.
	RenewableReady       bool `json:"renewable_ready,omitempty"`
	ModularDesign        bool `json:"modular_design,omitempty"`
	BiodiversityPositive bool `json:"biodiversity_positive,omitempty"`

	Metrics *Metrics `json:"metrics,omitempty"`
	Ranking *Ranking `json:"ranking,omitempty"`
}

// HistoricalProject is one training input for the recommender: the brief a
// past client brought, which design they chose, and how satisfied they were.
// Read-only once loaded.
type HistoricalProject struct {
	Constraints  Constraints `json:"constraints"`
	ChosenDesign int         `json:"chosen_design"` // 0, 1 or 2
	Satisfaction float64     `json:"satisfaction"`  // 0-1
}

// TrainingRecord is the shared reshaped row produced by the dataset loader.
// Both real datasets and the synthetic generator emit this shape; the
// per-model preparation functions derive their own inputs from it.
type TrainingRecord struct {
	Area             int         `json:"area"`
	Budget           int         `json:"budget"`
	Climate          Climate     `json:"climate"`
	Priority         Priority    `json:"priority"`
	DesignID         int         `json:"design_id"`
	ActualCost       int         `json:"actual_cost"`
	EnergyEfficiency int         `json:"energy_efficiency"`
	WaterEfficiency  int         `json:"water_efficiency"`
	CarbonLevel      CarbonLevel `json:"carbon_level"`
}

// SimilarProject is one piece of supporting evidence for a recommendation.
type SimilarProject struct {
	Constraints  Constraints `json:"constraints"`
	ChosenDesign int         `json:"chosen_design"`
	Satisfaction float64     `json:"satisfaction"`
	Similarity   float64     `json:"similarity"` // 1/(1+distance)
}

// Recommendation is the nearest-neighbor lookup result. RecommendedDesign
// is nil with zero confidence when the recommender has no history.
type Recommendation struct {
	RecommendedDesign *int             `json:"recommended_design"`
	Confidence        float64          `json:"confidence"` // 0-1
	SimilarProjects   []SimilarProject `json:"similar_projects"`
}

// DesignStatistics summarizes which designs were chosen across history.
type DesignStatistics struct {
	Counts              map[int]int     `json:"counts"`
	AverageSatisfaction map[int]float64 `json:"average_satisfaction"`
}

// Characteristics are the variant flags surfaced in comparisons.
type Characteristics struct {
	Approach             string `json:"approach"`
	Modular              bool   `json:"modular"`
	RenewableReady       bool   `json:"renewable_ready"`
	BiodiversityPositive bool   `json:"biodiversity_positive"`
}

// ComparisonEntry is the per-design slice of a comparison.
type ComparisonEntry struct {
	Name            string          `json:"name"`
	Metrics         *Metrics        `json:"metrics"`
	Characteristics Characteristics `json:"characteristics"`
}

// Comparison is the detailed side-by-side of selected designs, keyed by id.
type Comparison struct {
	DesignsCompared int                        `json:"designs_compared"`
	Data            map[string]ComparisonEntry `json:"comparison_data"`
}
