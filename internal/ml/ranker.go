package ml

import (
	"sort"

	"github.com/Ishika-Agrawal10/Mini-Project2nd/pkg/api"
)

// RankedDesign is one entry in a learned ranking. Learned is false when
// the score came from the rule-based fallback path, in which case Score
// is zero and callers should read metrics.sustainabilityIndex instead.
type RankedDesign struct {
	Design  api.Design `json:"design"`
	Score   float64    `json:"score"` // 0-100
	Learned bool       `json:"learned"`
}

// RankingExample is one training input for the ranker: a brief, the
// designs generated for it with their evaluated metrics, and the client's
// overall satisfaction with the outcome. The single satisfaction scalar
// labels every design in the example; there is no per-design signal in
// the source data.
type RankingExample struct {
	Constraints  api.Constraints `json:"constraints"`
	Designs      []api.Design    `json:"designs"`
	Satisfaction float64         `json:"satisfaction"` // 0-1
}

// Ranker learns a satisfaction score for (brief, design) pairs and ranks
// design alternatives by it. Until trained it ranks by the evaluator's
// composite index.
type Ranker struct {
	model *linearModel
}

func NewRanker() *Ranker {
	return &Ranker{}
}

func rankerFeatures(c api.Constraints, d api.Design) []float64 {
	f := []float64{
		float64(c.Area) / 2000,
		c.Budget / 100,
		climateCode(c.Climate),
		priorityCode(c.Priority),
	}
	if d.Metrics != nil {
		f = append(f,
			float64(d.Metrics.EnergyEfficiency)/100,
			float64(d.Metrics.WaterEfficiency)/100,
			carbonValue(d.Metrics.CarbonFootprint),
			float64(d.Metrics.EstimatedCost)/200000,
		)
	} else {
		f = append(f, 0, 0, 0, 0)
	}
	return f
}

// Train fits the ranker on historical examples. Each example contributes
// one row per design, all sharing the example's satisfaction label. Empty
// input and fit failures leave the ranker untrained.
func (r *Ranker) Train(examples []RankingExample) {
	var features [][]float64
	var targets []float64
	for _, ex := range examples {
		for _, d := range ex.Designs {
			features = append(features, rankerFeatures(ex.Constraints, d))
			targets = append(targets, ex.Satisfaction)
		}
	}
	if len(features) == 0 {
		return
	}

	model, err := fitLinear(features, targets)
	if err != nil {
		r.model = nil
		return
	}
	r.model = model
}

// IsTrained reports whether a fitted model is available.
func (r *Ranker) IsTrained() bool {
	return r.model != nil
}

// Rank orders designs best-first. Trained: predicted satisfaction ×100,
// clamped to [0,100]; a design whose prediction fails gets the neutral
// score 50 instead of aborting the ranking. Untrained: descending
// sustainability index with Learned=false and no score attached.
func (r *Ranker) Rank(designs []api.Design, c api.Constraints) []RankedDesign {
	out := make([]RankedDesign, len(designs))

	if r.model == nil {
		for i, d := range designs {
			out[i] = RankedDesign{Design: d}
		}
		sort.SliceStable(out, func(a, b int) bool {
			return compositeIndex(out[a].Design) > compositeIndex(out[b].Design)
		})
		return out
	}

	for i, d := range designs {
		score := 50.0
		if v, ok := r.model.predict(rankerFeatures(c, d)); ok {
			score = clampFloat(v*100, 0, 100)
		}
		out[i] = RankedDesign{Design: d, Score: score, Learned: true}
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Score > out[b].Score
	})
	return out
}

func compositeIndex(d api.Design) float64 {
	if d.Metrics == nil {
		return 0
	}
	return float64(d.Metrics.SustainabilityIndex)
}
