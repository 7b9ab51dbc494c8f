// Package constraints validates design briefs and derives the categorical
// and weight features the rest of the pipeline consumes.
package constraints

import (
	"fmt"
	"math"

	"github.com/Ishika-Agrawal10/Mini-Project2nd/pkg/api"
)

// Bounds for a valid brief.
const (
	AreaMin   = 300
	AreaMax   = 2000
	BudgetMin = 0
	BudgetMax = 100
)

var validClimates = map[api.Climate]bool{
	api.ClimateCold:     true,
	api.ClimateModerate: true,
	api.ClimateHot:      true,
}

var validPriorities = map[api.Priority]bool{
	api.PriorityEnergy:    true,
	api.PriorityWater:     true,
	api.PriorityMaterials: true,
}

// climateStrategies is the fixed climate -> strategy-tag lookup.
var climateStrategies = map[api.Climate][]string{
	api.ClimateCold:     {"thermal-insulation", "passive-solar-gain", "heat-recovery"},
	api.ClimateModerate: {"natural-ventilation", "passive-cooling", "thermal-mass"},
	api.ClimateHot:      {"thermal-mass", "passive-cooling", "shading", "evaporative-cooling"},
}

// priorityWeights is the fixed priority -> weight multiplier lookup.
var priorityWeights = map[api.Priority]float64{
	api.PriorityEnergy:    1.3,
	api.PriorityWater:     1.3,
	api.PriorityMaterials: 1.2,
}

// Engine validates raw constraint input and derives downstream features.
type Engine struct{}

func NewEngine() *Engine { return &Engine{} }

// Validate checks presence, type and bounds of every field, in field order.
// All violations are collected; it never stops at the first error, so
// callers get the complete list in one pass.
func (e *Engine) Validate(raw api.RawConstraints) (bool, []string) {
	var errs []string

	switch {
	case raw.Area == nil:
		errs = append(errs, "Area is required")
	case *raw.Area != math.Trunc(*raw.Area):
		errs = append(errs, "Area must be an integer")
	case *raw.Area < AreaMin || *raw.Area > AreaMax:
		errs = append(errs, fmt.Sprintf("Area must be between %d and %d sq ft", AreaMin, AreaMax))
	}

	switch {
	case raw.Budget == nil:
		errs = append(errs, "Budget is required")
	case math.IsNaN(*raw.Budget) || *raw.Budget < BudgetMin || *raw.Budget > BudgetMax:
		errs = append(errs, fmt.Sprintf("Budget must be between %d and %d%%", BudgetMin, BudgetMax))
	}

	switch {
	case raw.Climate == nil:
		errs = append(errs, "Climate is required")
	case !validClimates[api.Climate(*raw.Climate)]:
		errs = append(errs, "Climate must be one of: cold, moderate, hot")
	}

	switch {
	case raw.Priority == nil:
		errs = append(errs, "Priority is required")
	case !validPriorities[api.Priority(*raw.Priority)]:
		errs = append(errs, "Priority must be one of: energy, water, materials")
	}

	return len(errs) == 0, errs
}

// FromRaw converts a validated raw brief into typed constraints.
// Only meaningful after Validate reported ok.
func (e *Engine) FromRaw(raw api.RawConstraints) api.Constraints {
	return api.Constraints{
		Area:     int(*raw.Area),
		Budget:   *raw.Budget,
		Climate:  api.Climate(*raw.Climate),
		Priority: api.Priority(*raw.Priority),
	}
}

// Process derives the categorical and weight features. Pure: the input
// constraints are embedded unchanged.
func (e *Engine) Process(c api.Constraints) api.ProcessedConstraints {
	return api.ProcessedConstraints{
		Constraints:       c,
		AreaCategory:      categorizeArea(c.Area),
		BudgetCategory:    categorizeBudget(c.Budget),
		ClimateStrategies: climateStrategies[c.Climate],
		PriorityWeight:    priorityWeight(c.Priority),
	}
}

// CalculateFeasibility scores how realistic the brief is, 0-100.
// Low budgets and extreme areas each reduce feasibility independently.
func (e *Engine) CalculateFeasibility(pc api.ProcessedConstraints) int {
	score := 100

	if pc.Budget < 30 {
		score -= 20
	}
	if pc.Area < 500 || pc.Area > 1800 {
		score -= 10
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func categorizeArea(area int) string {
	switch {
	case area < 700:
		return "small"
	case area < 1300:
		return "medium"
	default:
		return "large"
	}
}

func categorizeBudget(budget float64) string {
	switch {
	case budget < 33:
		return "low"
	case budget < 67:
		return "medium"
	default:
		return "high"
	}
}

func priorityWeight(p api.Priority) float64 {
	if w, ok := priorityWeights[p]; ok {
		return w
	}
	return 1.0
}
