package dataset

import (
	"math/rand"

	"github.com/Ishika-Agrawal10/Mini-Project2nd/internal/ml"
	"github.com/Ishika-Agrawal10/Mini-Project2nd/pkg/api"
)

// Default sample counts when no real dataset is available.
const (
	DefaultCostSamples       = 200
	DefaultPreferenceSamples = 150
	DefaultHistorySamples    = 100
)

var (
	climates   = []api.Climate{api.ClimateCold, api.ClimateModerate, api.ClimateHot}
	priorities = []api.Priority{api.PriorityEnergy, api.PriorityWater, api.PriorityMaterials}
)

// Synthesizer generates plausible training data when no real dataset is
// on disk. Seeded, so a fixed seed reproduces the same dataset.
type Synthesizer struct {
	rng *rand.Rand
}

func NewSynthesizer(seed int64) *Synthesizer {
	return &Synthesizer{rng: rand.New(rand.NewSource(seed))}
}

// CostRecords generates n cost-training records. Cost is a noisy function
// of area, budget, climate and design variant.
func (s *Synthesizer) CostRecords(n int) []api.TrainingRecord {
	climateAdj := map[api.Climate]float64{api.ClimateCold: 1.05, api.ClimateModerate: 1.0, api.ClimateHot: 1.08}
	designAdj := []float64{1.0, 1.05, 1.15}

	records := make([]api.TrainingRecord, 0, n)
	for i := 0; i < n; i++ {
		area := s.intBetween(300, 2000)
		budget := s.intBetween(20, 100)
		climate := climates[s.rng.Intn(len(climates))]
		priority := priorities[s.rng.Intn(len(priorities))]
		designID := s.rng.Intn(3)

		base := float64(area) * 140
		budgetMult := 0.8 + float64(budget)/100*0.6
		noise := 0.95 + s.rng.Float64()*0.1
		cost := int(base * budgetMult * climateAdj[climate] * designAdj[designID] * noise)

		records = append(records, api.TrainingRecord{
			Area:       area,
			Budget:     budget,
			Climate:    climate,
			Priority:   priority,
			DesignID:   designID,
			ActualCost: cost,
		})
	}
	return records
}

// PreferenceExamples generates n ranking examples. Each carries all three
// design variants with metrics skewed by variant and brief priority, and
// a satisfaction label driven by how well the brief matches the variant
// strengths.
func (s *Synthesizer) PreferenceExamples(n int) []ml.RankingExample {
	examples := make([]ml.RankingExample, 0, n)
	for i := 0; i < n; i++ {
		area := s.intBetween(300, 2000)
		budget := s.intBetween(20, 100)
		climate := climates[s.rng.Intn(len(climates))]
		priority := priorities[s.rng.Intn(len(priorities))]

		ids := []string{api.DesignEcoEfficient, api.DesignCarbonOptimized, api.DesignRegenerative}
		designs := make([]api.Design, 0, 3)
		for variant, id := range ids {
			energy, water := 50, 50
			switch variant {
			case 0:
				energy += 20
				if priority == api.PriorityEnergy {
					energy += 15
				}
			case 1:
				energy += 5
				water += 5
			case 2:
				water += 20
				if priority == api.PriorityWater {
					water += 15
				}
			}

			carbon := api.CarbonMedium
			if energy > 70 {
				carbon = api.CarbonLow
			}
			designs = append(designs, api.Design{
				ID: id,
				Metrics: &api.Metrics{
					EnergyEfficiency: clampI(energy, 0, 100),
					WaterEfficiency:  clampI(water, 0, 100),
					CarbonFootprint:  carbon,
					EstimatedCost:    area * 150,
				},
			})
		}

		satisfaction := 0.5
		switch {
		case priority == api.PriorityEnergy && budget > 60:
			satisfaction = 0.92
		case priority == api.PriorityWater && climate == api.ClimateHot:
			satisfaction = 0.90
		case priority == api.PriorityMaterials && budget > 70:
			satisfaction = 0.88
		case budget < 40:
			satisfaction = 0.70
		}

		examples = append(examples, ml.RankingExample{
			Constraints: api.Constraints{
				Area: area, Budget: float64(budget),
				Climate: climate, Priority: priority,
			},
			Designs:      designs,
			Satisfaction: satisfaction,
		})
	}
	return examples
}

// HistoricalProjects generates n historical choices. Clients mostly pick
// the variant matching their priority, with satisfaction noise and a
// penalty for tight budgets.
func (s *Synthesizer) HistoricalProjects(n int) []api.HistoricalProject {
	projects := make([]api.HistoricalProject, 0, n)
	for i := 0; i < n; i++ {
		area := s.intBetween(300, 2000)
		budget := s.intBetween(20, 100)
		climate := climates[s.rng.Intn(len(climates))]
		priority := priorities[s.rng.Intn(len(priorities))]

		var chosen int
		var satisfaction float64
		switch priority {
		case api.PriorityEnergy:
			chosen = 0
			if s.rng.Float64() <= 0.3 {
				chosen = s.intBetween(1, 2)
			}
			satisfaction = 0.85 + s.uniform(-0.15, 0.15)
		case api.PriorityWater:
			chosen = 2
			if s.rng.Float64() <= 0.3 {
				chosen = s.intBetween(0, 1)
			}
			satisfaction = 0.87 + s.uniform(-0.15, 0.15)
		default:
			chosen = 1
			if s.rng.Float64() <= 0.3 {
				chosen = s.intBetween(0, 2)
			}
			satisfaction = 0.86 + s.uniform(-0.15, 0.15)
		}

		if budget < 40 {
			satisfaction -= 0.15
		}

		projects = append(projects, api.HistoricalProject{
			Constraints: api.Constraints{
				Area: area, Budget: float64(budget),
				Climate: climate, Priority: priority,
			},
			ChosenDesign: chosen,
			Satisfaction: clampF(satisfaction, 0.5, 1.0),
		})
	}
	return projects
}

func (s *Synthesizer) intBetween(lo, hi int) int {
	return lo + s.rng.Intn(hi-lo+1)
}

func (s *Synthesizer) uniform(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

func clampI(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
