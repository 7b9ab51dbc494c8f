// Package evaluation scores design alternatives on energy, water, materials
// and carbon, combines them into a priority-weighted sustainability index,
// and ranks designs by it.
//
// Every scoring function starts from a base of 50 and applies additive
// deltas from fixed rule tables keyed on budget, climate, priority match,
// area, and per-variant bonuses. The per-variant bonuses are what
// differentiate the three templates: design-a is energy-strong, design-b
// materials-strong, design-c water-strong. Scores are clamped to [0, 100].
package evaluation

import (
	"math"
	"sort"

	"github.com/Ishika-Agrawal10/Mini-Project2nd/pkg/api"
)

// Per-variant score bonuses, the mechanism behind template strengths.
var (
	energyBonus = map[string]int{
		api.DesignEcoEfficient:    15,
		api.DesignRegenerative:    8,
		api.DesignCarbonOptimized: 6,
	}
	waterBonus = map[string]int{
		api.DesignRegenerative:    22,
		api.DesignCarbonOptimized: 8,
		api.DesignEcoEfficient:    5,
	}
	materialsBonus = map[string]int{
		api.DesignCarbonOptimized: 25,
		api.DesignRegenerative:    15,
		api.DesignEcoEfficient:    10,
	}
)

// Cost per sq ft tiered by budget category.
const (
	costPerSqftLow    = 100
	costPerSqftMedium = 180
	costPerSqftHigh   = 280
)

// Evaluator computes sustainability metrics for generated designs.
type Evaluator struct{}

func NewEvaluator() *Evaluator { return &Evaluator{} }

// Evaluate computes the full metrics record for one design under the given
// constraints. Deterministic: identical inputs yield identical metrics.
func (e *Evaluator) Evaluate(d api.Design, c api.Constraints) api.Metrics {
	energy := e.evaluateEnergy(d, c)
	water := e.evaluateWater(d, c)
	materials := e.evaluateMaterials(d, c)

	return api.Metrics{
		EnergyEfficiency:    energy,
		WaterEfficiency:     water,
		MaterialsEfficiency: materials,
		CarbonFootprint:     e.evaluateCarbon(d, c),
		SustainabilityIndex: sustainabilityIndex(energy, water, materials, c.Priority),
		EstimatedCost:       estimateCost(c.Area, c.Budget),
		PaybackPeriodYears:  estimatePayback(energy, c.Budget),
		Lifecycle: api.LifecycleAnalysis{
			Embodied:    d.EstimatedEmbodiedCarbon,
			Operational: operationalCarbon(c.Area, energy),
		},
	}
}

func (e *Evaluator) evaluateEnergy(d api.Design, c api.Constraints) int {
	score := 50

	if c.Budget >= 75 {
		score += 20
	} else if c.Budget >= 50 {
		score += 10
	}

	// Dominant signal: the client asked for energy performance.
	if c.Priority == api.PriorityEnergy {
		score += 25
	}

	switch c.Climate {
	case api.ClimateCold:
		score += 5
	case api.ClimateHot:
		score -= 5
	}

	if c.Area < 800 {
		score += 8
	} else if c.Area > 1600 {
		score -= 5
	}

	score += energyBonus[d.ID]

	if d.RenewableReady {
		score += 4
	}

	return clampScore(score)
}

func (e *Evaluator) evaluateWater(d api.Design, c api.Constraints) int {
	score := 50

	if c.Priority == api.PriorityWater {
		score += 30
	}

	if c.Budget >= 60 {
		score += 15
	} else if c.Budget < 30 {
		score -= 10
	}

	// Hot climates need water efficiency the most.
	switch c.Climate {
	case api.ClimateHot:
		score += 20
	case api.ClimateModerate:
		score += 10
	}

	if c.Area > 1200 {
		score += 8
	}

	score += waterBonus[d.ID]

	return clampScore(score)
}

func (e *Evaluator) evaluateMaterials(d api.Design, c api.Constraints) int {
	score := 50

	score += materialsBonus[d.ID]

	if c.Priority == api.PriorityMaterials {
		score += 28
	}

	if c.Budget >= 70 {
		score += 10
	} else if c.Budget < 30 {
		score -= 8
	}

	return clampScore(score)
}

// evaluateCarbon assigns the categorical carbon level from the combined
// energy score, budget, and the design's embodied carbon estimate.
func (e *Evaluator) evaluateCarbon(d api.Design, c api.Constraints) api.CarbonLevel {
	energy := e.evaluateEnergy(d, c)

	switch {
	case energy > 75 && c.Budget > 60 && d.EstimatedEmbodiedCarbon < 18:
		return api.CarbonLow
	case energy > 55 || c.Budget > 50:
		return api.CarbonMedium
	default:
		return api.CarbonHigh
	}
}

// sustainabilityIndex is the priority-weighted composite: the metric
// matching the priority gets 0.60, the remaining two 0.25 and 0.15 in
// their fixed order. Unknown priorities fall back to the energy ordering.
func sustainabilityIndex(energy, water, materials int, priority api.Priority) int {
	var index float64
	switch priority {
	case api.PriorityWater:
		index = float64(water)*0.60 + float64(energy)*0.25 + float64(materials)*0.15
	case api.PriorityMaterials:
		index = float64(materials)*0.60 + float64(energy)*0.25 + float64(water)*0.15
	default: // energy, and anything unrecognized
		index = float64(energy)*0.60 + float64(water)*0.25 + float64(materials)*0.15
	}
	return int(math.Round(index))
}

// estimateCost prices the project: tiered cost per sq ft by budget level,
// plus a contingency that shrinks once the budget is comfortable.
func estimateCost(area int, budget float64) int {
	var costPerSqft int
	switch {
	case budget < 33:
		costPerSqft = costPerSqftLow
	case budget < 67:
		costPerSqft = costPerSqftMedium
	default:
		costPerSqft = costPerSqftHigh
	}

	total := float64(area * costPerSqft)

	contingency := 0.10
	if budget < 50 {
		contingency = 0.15
	}

	return int(total + total*contingency)
}

// estimatePayback returns the simple payback period in years for the
// sustainable features, tiered by energy score.
func estimatePayback(energyScore int, budget float64) int {
	var payback float64
	switch {
	case energyScore < 50:
		payback = 12
	case energyScore < 70:
		payback = 8
	case energyScore < 85:
		payback = 5
	default:
		payback = 3
	}

	// Low budgets stretch the payback on the same features.
	if budget < 30 {
		payback *= 1.5
	}

	return int(math.Round(payback))
}

// operationalCarbon estimates annual operational carbon (kg CO2e) from
// floor area and how much the energy score cuts the 3.5 kg/sq ft baseline.
func operationalCarbon(area, energyScore int) float64 {
	annual := float64(area) * 3.5 * float64(100-energyScore) / 100
	return math.Round(annual*10) / 10
}

// RankDesigns sorts designs descending by sustainability index and attaches
// 1-based positions with a snapshot of the key metrics. The sort is stable:
// equal indices keep their input order. The input slice is not modified.
func (e *Evaluator) RankDesigns(designs []api.Design) []api.Design {
	ranked := make([]api.Design, len(designs))
	copy(ranked, designs)

	sort.SliceStable(ranked, func(i, j int) bool {
		return indexOf(ranked[i]) > indexOf(ranked[j])
	})

	for i := range ranked {
		m := ranked[i].Metrics
		r := api.Ranking{Position: i + 1}
		if m != nil {
			r.SustainabilityScore = m.SustainabilityIndex
			r.EnergyEfficiency = m.EnergyEfficiency
			r.WaterEfficiency = m.WaterEfficiency
			r.CarbonLevel = m.CarbonFootprint
		}
		ranked[i].Ranking = &r
	}
	return ranked
}

// CompareDesigns emits the side-by-side comparison for the requested ids.
// Designs are visited in input-list order, not the order of ids.
func (e *Evaluator) CompareDesigns(ids []string, designs []api.Design) api.Comparison {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	cmp := api.Comparison{Data: make(map[string]api.ComparisonEntry)}
	for _, d := range designs {
		if !wanted[d.ID] {
			continue
		}
		cmp.DesignsCompared++
		cmp.Data[d.ID] = api.ComparisonEntry{
			Name:    d.Name,
			Metrics: d.Metrics,
			Characteristics: api.Characteristics{
				Approach:             d.DesignApproach,
				Modular:              d.ModularDesign,
				RenewableReady:       d.RenewableReady,
				BiodiversityPositive: d.BiodiversityPositive,
			},
		}
	}
	return cmp
}

func indexOf(d api.Design) int {
	if d.Metrics == nil {
		return 0
	}
	return d.Metrics.SustainabilityIndex
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
