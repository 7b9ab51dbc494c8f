package ml

import (
	"sort"

	"github.com/Ishika-Agrawal10/Mini-Project2nd/pkg/api"
)

// Cost predictions are clamped to a sane construction-cost band so a badly
// extrapolating model can never surface an absurd figure.
const (
	CostFloor   = 10000
	CostCeiling = 500000
)

var costFeatureNames = []string{"area", "budget", "climate", "priority", "design"}

// FeatureImportance pairs a feature name with its normalized weight in the
// fitted cost model.
type FeatureImportance struct {
	Name       string  `json:"name"`
	Importance float64 `json:"importance"`
}

// CostPredictor learns actual construction cost from constraint records.
// Categorical fields are encoded as small ordinals and area/budget are
// scaled, so weight magnitudes stay comparable across features.
type CostPredictor struct {
	model      *linearModel
	importance []FeatureImportance
}

func NewCostPredictor() *CostPredictor {
	return &CostPredictor{}
}

func costFeatures(area, budget float64, climate api.Climate, priority api.Priority, designID int) []float64 {
	return []float64{
		area / 2000,
		budget / 100,
		climateCode(climate),
		priorityCode(priority),
		float64(designID),
	}
}

// Train fits the regressor on actual-cost records. An empty record list is
// a no-op: the predictor stays (or becomes) untrained and Predict reports
// ok=false. A fit failure likewise leaves the predictor untrained rather
// than returning an error, matching the degrade-to-fallback contract.
func (p *CostPredictor) Train(records []api.TrainingRecord) {
	if len(records) == 0 {
		return
	}

	features := make([][]float64, len(records))
	targets := make([]float64, len(records))
	for i, r := range records {
		features[i] = costFeatures(float64(r.Area), float64(r.Budget), r.Climate, r.Priority, r.DesignID)
		targets[i] = float64(r.ActualCost)
	}

	model, err := fitLinear(features, targets)
	if err != nil {
		p.model = nil
		p.importance = nil
		return
	}
	p.model = model
	p.importance = rankImportance(model, features)
}

// Predict estimates the cost of building the given design under the given
// brief. ok is false when the model is untrained or the prediction is not
// usable; callers fall back to the rule-based estimate in that case.
func (p *CostPredictor) Predict(area int, budget float64, climate api.Climate, priority api.Priority, designID string) (float64, bool) {
	if p.model == nil {
		return 0, false
	}
	v, ok := p.model.predict(costFeatures(float64(area), budget, climate, priority, designIndex(designID)))
	if !ok {
		return 0, false
	}
	return clampFloat(v, CostFloor, CostCeiling), true
}

// IsTrained reports whether Train has fitted a usable model.
func (p *CostPredictor) IsTrained() bool {
	return p.model != nil
}

// FeatureImportance returns the fitted model's features ordered by
// descending importance, or nil when untrained.
func (p *CostPredictor) FeatureImportance() []FeatureImportance {
	if p.model == nil {
		return nil
	}
	out := make([]FeatureImportance, len(p.importance))
	copy(out, p.importance)
	return out
}

// rankImportance scores each feature by |weight| * stddev, normalized to
// sum to one, so scale differences between encodings wash out.
func rankImportance(model *linearModel, features [][]float64) []FeatureImportance {
	stds := columnStddevs(features)
	raw := make([]float64, len(costFeatureNames))
	total := 0.0
	for i := range raw {
		raw[i] = absFloat(model.weights[i]) * stds[i]
		total += raw[i]
	}

	out := make([]FeatureImportance, len(costFeatureNames))
	for i, name := range costFeatureNames {
		imp := 0.0
		if total > 0 {
			imp = raw[i] / total
		}
		out[i] = FeatureImportance{Name: name, Importance: imp}
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Importance > out[b].Importance
	})
	return out
}

// designIndex maps a design id to its ordinal position in the fixed
// three-design catalog. Unknown ids map to 0.
func designIndex(id string) int {
	switch id {
	case api.DesignCarbonOptimized:
		return 1
	case api.DesignRegenerative:
		return 2
	default:
		return 0
	}
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
