package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ishika-Agrawal10/Mini-Project2nd/pkg/api"
)

func designWithMetrics(id string, energy, water, index int, carbon api.CarbonLevel) api.Design {
	return api.Design{
		ID: id,
		Metrics: &api.Metrics{
			EnergyEfficiency:    energy,
			WaterEfficiency:     water,
			CarbonFootprint:     carbon,
			SustainabilityIndex: index,
			EstimatedCost:       200000,
		},
	}
}

func energyDrivenExamples() []RankingExample {
	// Satisfaction tracks energy efficiency, so a fitted ranker should
	// prefer higher-energy designs.
	var examples []RankingExample
	for energy := 30; energy <= 90; energy += 10 {
		examples = append(examples, RankingExample{
			Constraints: api.Constraints{
				Area: 1000, Budget: 50,
				Climate: api.ClimateModerate, Priority: api.PriorityEnergy,
			},
			Designs: []api.Design{
				designWithMetrics(api.DesignEcoEfficient, energy, 50, 60, api.CarbonMedium),
			},
			Satisfaction: float64(energy) / 100,
		})
	}
	return examples
}

func TestRankerFeatureCarbonEncoding(t *testing.T) {
	c := api.Constraints{Area: 1000, Budget: 50, Climate: api.ClimateModerate, Priority: api.PriorityEnergy}

	cases := []struct {
		level api.CarbonLevel
		want  float64
	}{
		{api.CarbonLow, 1.0},
		{api.CarbonMedium, 0.5},
		{api.CarbonHigh, 0.0},
		{api.CarbonLevel("Unknown"), 0.0}, // anything but Low/Medium scores zero
		{api.CarbonLevel(""), 0.0},
	}
	for _, tc := range cases {
		f := rankerFeatures(c, designWithMetrics(api.DesignEcoEfficient, 50, 50, 60, tc.level))
		assert.Equal(t, tc.want, f[6], "carbon %q", tc.level)
	}
}

func TestRankerFallbackSortsBySustainabilityIndex(t *testing.T) {
	r := NewRanker()
	require.False(t, r.IsTrained())

	designs := []api.Design{
		designWithMetrics(api.DesignEcoEfficient, 70, 50, 60, api.CarbonMedium),
		designWithMetrics(api.DesignCarbonOptimized, 60, 55, 80, api.CarbonLow),
		designWithMetrics(api.DesignRegenerative, 65, 70, 72, api.CarbonLow),
	}
	ranked := r.Rank(designs, api.Constraints{Area: 1000, Budget: 50, Climate: api.ClimateModerate, Priority: api.PriorityEnergy})

	require.Len(t, ranked, 3)
	assert.Equal(t, api.DesignCarbonOptimized, ranked[0].Design.ID)
	assert.Equal(t, api.DesignRegenerative, ranked[1].Design.ID)
	assert.Equal(t, api.DesignEcoEfficient, ranked[2].Design.ID)
	for _, rd := range ranked {
		assert.False(t, rd.Learned)
		assert.Zero(t, rd.Score)
	}
}

func TestRankerEmptyTrainingIsNoOp(t *testing.T) {
	r := NewRanker()
	r.Train(nil)
	assert.False(t, r.IsTrained())
	r.Train([]RankingExample{{Constraints: api.Constraints{Area: 1000}}})
	assert.False(t, r.IsTrained(), "example without designs contributes no rows")
}

func TestRankerLearnedOrdering(t *testing.T) {
	r := NewRanker()
	r.Train(energyDrivenExamples())
	require.True(t, r.IsTrained())

	designs := []api.Design{
		designWithMetrics(api.DesignEcoEfficient, 40, 50, 90, api.CarbonMedium),
		designWithMetrics(api.DesignCarbonOptimized, 85, 50, 40, api.CarbonMedium),
	}
	ranked := r.Rank(designs, api.Constraints{Area: 1000, Budget: 50, Climate: api.ClimateModerate, Priority: api.PriorityEnergy})

	require.Len(t, ranked, 2)
	assert.Equal(t, api.DesignCarbonOptimized, ranked[0].Design.ID,
		"higher energy design should score higher taking after the training signal")
	for _, rd := range ranked {
		assert.True(t, rd.Learned)
		assert.GreaterOrEqual(t, rd.Score, 0.0)
		assert.LessOrEqual(t, rd.Score, 100.0)
	}
	assert.Greater(t, ranked[0].Score, ranked[1].Score)
}

func TestRankerScoresStayClamped(t *testing.T) {
	r := NewRanker()
	r.Train(energyDrivenExamples())

	// Far outside the training range in every dimension.
	extreme := designWithMetrics(api.DesignRegenerative, 100, 100, 100, api.CarbonLow)
	ranked := r.Rank([]api.Design{extreme}, api.Constraints{Area: 2000, Budget: 100, Climate: api.ClimateHot, Priority: api.PriorityMaterials})

	require.Len(t, ranked, 1)
	assert.GreaterOrEqual(t, ranked[0].Score, 0.0)
	assert.LessOrEqual(t, ranked[0].Score, 100.0)
}
