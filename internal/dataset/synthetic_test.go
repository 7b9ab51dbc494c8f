package dataset

import (
	"reflect"
	"testing"

	"github.com/Ishika-Agrawal10/Mini-Project2nd/pkg/api"
)

func TestSynthesizerCostRecords(t *testing.T) {
	records := NewSynthesizer(42).CostRecords(DefaultCostSamples)
	if len(records) != DefaultCostSamples {
		t.Fatalf("expected %d records, got %d", DefaultCostSamples, len(records))
	}

	for i, r := range records {
		if r.Area < 300 || r.Area > 2000 {
			t.Fatalf("record %d: area %d out of range", i, r.Area)
		}
		if r.Budget < 20 || r.Budget > 100 {
			t.Fatalf("record %d: budget %d out of range", i, r.Budget)
		}
		if r.DesignID < 0 || r.DesignID > 2 {
			t.Fatalf("record %d: design %d out of range", i, r.DesignID)
		}
		// Cheapest case: 300 sqft, budget 20, moderate, design 0, max downward noise.
		if r.ActualCost < int(300*140*0.92*0.95) {
			t.Fatalf("record %d: cost %d implausibly low", i, r.ActualCost)
		}
	}
}

func TestSynthesizerDeterministicForSeed(t *testing.T) {
	a := NewSynthesizer(7).CostRecords(50)
	b := NewSynthesizer(7).CostRecords(50)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same seed must reproduce the same dataset")
	}

	c := NewSynthesizer(8).CostRecords(50)
	if reflect.DeepEqual(a, c) {
		t.Fatal("different seeds should diverge")
	}
}

func TestSynthesizerPreferenceExamples(t *testing.T) {
	examples := NewSynthesizer(42).PreferenceExamples(DefaultPreferenceSamples)
	if len(examples) != DefaultPreferenceSamples {
		t.Fatalf("expected %d examples, got %d", DefaultPreferenceSamples, len(examples))
	}

	for i, ex := range examples {
		if len(ex.Designs) != 3 {
			t.Fatalf("example %d: expected 3 designs, got %d", i, len(ex.Designs))
		}
		if ex.Satisfaction < 0.5 || ex.Satisfaction > 1.0 {
			t.Fatalf("example %d: satisfaction %v out of range", i, ex.Satisfaction)
		}
		for _, d := range ex.Designs {
			if d.Metrics == nil {
				t.Fatalf("example %d: design %s missing metrics", i, d.ID)
			}
			if d.Metrics.EnergyEfficiency < 0 || d.Metrics.EnergyEfficiency > 100 {
				t.Fatalf("example %d: energy %d out of range", i, d.Metrics.EnergyEfficiency)
			}
		}
		// The eco-efficient variant always gets the energy bump.
		eco := ex.Designs[0]
		regen := ex.Designs[2]
		if eco.ID != api.DesignEcoEfficient || regen.ID != api.DesignRegenerative {
			t.Fatalf("example %d: variant order wrong", i)
		}
		if eco.Metrics.EnergyEfficiency <= regen.Metrics.EnergyEfficiency {
			t.Fatalf("example %d: eco variant should lead on energy", i)
		}
		if regen.Metrics.WaterEfficiency <= eco.Metrics.WaterEfficiency {
			t.Fatalf("example %d: regenerative variant should lead on water", i)
		}
	}
}

func TestSynthesizerHistoricalProjects(t *testing.T) {
	projects := NewSynthesizer(42).HistoricalProjects(DefaultHistorySamples)
	if len(projects) != DefaultHistorySamples {
		t.Fatalf("expected %d projects, got %d", DefaultHistorySamples, len(projects))
	}

	choiceByPriority := map[api.Priority]map[int]int{}
	for i, p := range projects {
		if p.ChosenDesign < 0 || p.ChosenDesign > 2 {
			t.Fatalf("project %d: chosen design %d out of range", i, p.ChosenDesign)
		}
		if p.Satisfaction < 0.5 || p.Satisfaction > 1.0 {
			t.Fatalf("project %d: satisfaction %v out of range", i, p.Satisfaction)
		}
		m := choiceByPriority[p.Constraints.Priority]
		if m == nil {
			m = map[int]int{}
			choiceByPriority[p.Constraints.Priority] = m
		}
		m[p.ChosenDesign]++
	}

	// Energy-priority clients should mostly choose the eco-efficient variant.
	energy := choiceByPriority[api.PriorityEnergy]
	if energy[0] <= energy[1] || energy[0] <= energy[2] {
		t.Errorf("energy priority should favor design 0: %v", energy)
	}
}
