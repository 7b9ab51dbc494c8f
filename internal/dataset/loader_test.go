package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Ishika-Agrawal10/Mini-Project2nd/pkg/api"
)

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadUCIEnergy(t *testing.T) {
	csv := "X1,X2,X3,X4,X5,X6,X7,X8,Y1,Y2\n" +
		"0.9,25,300,150,7,2,0.4,3,10,30\n" + // cooling >> heating: hot
		"0.7,20,250,120,5,4,0.1,1,30,12\n" // heating >> cooling: cold
	path := writeFixture(t, t.TempDir(), "energy_efficiency.csv", csv)

	loader := NewLoader(zerolog.Nop())
	records, err := loader.LoadUCIEnergy(path)
	if err != nil {
		t.Fatalf("LoadUCIEnergy: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	first := records[0]
	if first.Area != 1000 { // X2 * 40
		t.Errorf("area = %d, want 1000", first.Area)
	}
	if first.Budget != 54 { // 50 + X7*10
		t.Errorf("budget = %d, want 54", first.Budget)
	}
	if first.Climate != api.ClimateHot {
		t.Errorf("climate = %q, want hot", first.Climate)
	}
	if first.EnergyEfficiency != 70 { // 100 - Y1*3
		t.Errorf("energy = %d, want 70", first.EnergyEfficiency)
	}
	if first.CarbonLevel != api.CarbonMedium {
		t.Errorf("carbon = %q, want Medium for energy 70", first.CarbonLevel)
	}
	if first.Priority != api.PriorityEnergy || first.DesignID != 0 {
		t.Errorf("UCI rows must default to energy priority and design 0")
	}
	// area * 150 * (budget/100) * 1.2
	if first.ActualCost != 97200 {
		t.Errorf("cost = %d, want 97200", first.ActualCost)
	}

	second := records[1]
	if second.Climate != api.ClimateCold {
		t.Errorf("climate = %q, want cold", second.Climate)
	}
	if second.EnergyEfficiency != 10 {
		t.Errorf("energy = %d, want 10", second.EnergyEfficiency)
	}
}

func TestLoadNYCBuildingsFiltersAndMaps(t *testing.T) {
	csv := `Property GFA - Self-Reported (ft²),Site EUI (kBtu/ft²),Water Use (All Water Sources) (kgal),Total GHG Emissions (Metric Tons CO2e),ENERGY STAR Score
"12,000",60,100,200,75
250,60,100,200,75
"60,000",60,100,200,75
5000,300,,"2,000",
`
	path := writeFixture(t, t.TempDir(), "NYC.csv", csv)

	loader := NewLoader(zerolog.Nop())
	records, err := loader.LoadNYCBuildings(path, 100)
	if err != nil {
		t.Fatalf("LoadNYCBuildings: %v", err)
	}
	// Rows 2 and 3 are outside the usable GFA range.
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	first := records[0]
	if first.Area != 1200 { // 12000 / 10
		t.Errorf("area = %d, want 1200", first.Area)
	}
	if first.EnergyEfficiency != 80 { // 100 - 60/3
		t.Errorf("energy = %d, want 80", first.EnergyEfficiency)
	}
	if first.Budget != 75 {
		t.Errorf("budget = %d, want 75", first.Budget)
	}
	if first.CarbonLevel != api.CarbonLow { // 200 < 1200*0.5
		t.Errorf("carbon = %q, want Low", first.CarbonLevel)
	}
	if first.Climate != api.ClimateModerate {
		t.Errorf("climate = %q, want moderate", first.Climate)
	}
	if first.DesignID != 0 {
		t.Errorf("design = %d, want 0 for energy > 70", first.DesignID)
	}
	if first.ActualCost != 162000 { // 1200 * 180 * 0.75
		t.Errorf("cost = %d, want 162000", first.ActualCost)
	}

	second := records[1]
	if second.Area != 500 {
		t.Errorf("area = %d, want 500", second.Area)
	}
	if second.EnergyEfficiency != 0 { // 100 - 300/3, clamped
		t.Errorf("energy = %d, want 0", second.EnergyEfficiency)
	}
	if second.CarbonLevel != api.CarbonHigh { // 2000 > 500*1.5
		t.Errorf("carbon = %q, want High", second.CarbonLevel)
	}
	if second.Budget != 50 { // blank ENERGY STAR score defaults to 50
		t.Errorf("budget = %d, want 50", second.Budget)
	}
	if second.DesignID != 1 {
		t.Errorf("design = %d, want 1 for low energy", second.DesignID)
	}
}

func TestLoadNYCBuildingsRespectsMaxRows(t *testing.T) {
	csv := "Property GFA - Self-Reported (ft²),Site EUI (kBtu/ft²),Water Use (All Water Sources) (kgal),Total GHG Emissions (Metric Tons CO2e),ENERGY STAR Score\n" +
		"5000,60,10,100,60\n5000,60,10,100,60\n5000,60,10,100,60\n"
	path := writeFixture(t, t.TempDir(), "NYC.csv", csv)

	loader := NewLoader(zerolog.Nop())
	records, err := loader.LoadNYCBuildings(path, 2)
	if err != nil {
		t.Fatalf("LoadNYCBuildings: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
}

func TestLoadCustomCSVNativeFormat(t *testing.T) {
	csv := "area,budget,climate,priority,design_id,actual_cost,energy_efficiency,water_efficiency,carbon_level\n" +
		"1200,60,hot,water,2,210000,72,80,Low\n" +
		"bad,60,hot,water,2,210000,72,80,Low\n" +
		"800,40,cold,energy,0,95000,,,\n"
	path := writeFixture(t, t.TempDir(), "training_data.csv", csv)

	loader := NewLoader(zerolog.Nop())
	records, err := loader.LoadCustomCSV(path)
	if err != nil {
		t.Fatalf("LoadCustomCSV: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records (bad row skipped), got %d", len(records))
	}

	first := records[0]
	if first.Area != 1200 || first.Budget != 60 || first.DesignID != 2 || first.ActualCost != 210000 {
		t.Errorf("native row mapped wrong: %+v", first)
	}
	if first.Climate != api.ClimateHot || first.Priority != api.PriorityWater || first.CarbonLevel != api.CarbonLow {
		t.Errorf("native categorical fields mapped wrong: %+v", first)
	}

	second := records[1]
	if second.EnergyEfficiency != 50 || second.WaterEfficiency != 50 {
		t.Errorf("blank efficiencies should default to 50, got %+v", second)
	}
	if second.CarbonLevel != api.CarbonMedium {
		t.Errorf("blank carbon should default to Medium, got %q", second.CarbonLevel)
	}
}

func TestLoadCustomCSVAppliancesFormat(t *testing.T) {
	csv := "date,Appliances,lights,T_out\n" +
		"2016-01-11,100,30,2\n" +
		"2016-01-12,60,20,25\n"
	path := writeFixture(t, t.TempDir(), "energy_data.csv", csv)

	loader := NewLoader(zerolog.Nop())
	records, err := loader.LoadCustomCSV(path)
	if err != nil {
		t.Fatalf("LoadCustomCSV: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	first := records[0]
	if first.Area != 760 { // 500 + 130*2
		t.Errorf("area = %d, want 760", first.Area)
	}
	if first.EnergyEfficiency != 99 { // 100 - 100/100
		t.Errorf("energy = %d, want 99", first.EnergyEfficiency)
	}
	if first.Climate != api.ClimateCold {
		t.Errorf("climate = %q, want cold for T_out 2", first.Climate)
	}
	if records[1].Climate != api.ClimateHot {
		t.Errorf("climate = %q, want hot for T_out 25", records[1].Climate)
	}
}

func TestAutoLoadMissingDir(t *testing.T) {
	loader := NewLoader(zerolog.Nop())
	records := loader.AutoLoad(filepath.Join(t.TempDir(), "nope"))
	if len(records) != 0 {
		t.Fatalf("expected no records for missing dir, got %d", len(records))
	}
}

func TestAutoLoadCombinesSources(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "energy_efficiency.csv",
		"X2,X7,Y1,Y2\n25,0.4,10,30\n")
	writeFixture(t, dir, "training_data.csv",
		"area,budget,climate,priority,design_id,actual_cost\n1000,50,moderate,energy,0,150000\n")

	loader := NewLoader(zerolog.Nop())
	records := loader.AutoLoad(dir)
	if len(records) != 2 {
		t.Fatalf("expected 2 combined records, got %d", len(records))
	}
}

func TestPrepareRankingExamples(t *testing.T) {
	records := []api.TrainingRecord{
		{Area: 1000, Budget: 50, Climate: api.ClimateModerate, Priority: api.PriorityEnergy,
			ActualCost: 150000, EnergyEfficiency: 80, WaterEfficiency: 60, CarbonLevel: api.CarbonLow},
		{Area: 800, Budget: 30, Climate: api.ClimateCold, Priority: api.PriorityWater,
			ActualCost: 90000, EnergyEfficiency: 55, WaterEfficiency: 40, CarbonLevel: api.CarbonMedium},
	}

	examples := PrepareRankingExamples(records)
	if len(examples) != 2 {
		t.Fatalf("expected 2 examples, got %d", len(examples))
	}
	if examples[0].Satisfaction != 0.85 {
		t.Errorf("high-energy record should label 0.85, got %v", examples[0].Satisfaction)
	}
	if examples[1].Satisfaction != 0.65 {
		t.Errorf("low-energy record should label 0.65, got %v", examples[1].Satisfaction)
	}
	if len(examples[0].Designs) != 1 || examples[0].Designs[0].Metrics == nil {
		t.Fatalf("each example should carry one design with metrics")
	}
	if examples[0].Designs[0].Metrics.EstimatedCost != 150000 {
		t.Errorf("metrics should carry the recorded cost")
	}
}

func TestPrepareHistory(t *testing.T) {
	records := []api.TrainingRecord{
		{Area: 1000, Budget: 50, Climate: api.ClimateModerate, Priority: api.PriorityEnergy,
			DesignID: 2, EnergyEfficiency: 80},
		{Area: 800, Budget: 30, Climate: api.ClimateCold, Priority: api.PriorityWater,
			DesignID: 1, EnergyEfficiency: 55},
	}

	projects := PrepareHistory(records)
	if len(projects) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(projects))
	}
	if projects[0].ChosenDesign != 2 || projects[0].Satisfaction != 0.85 {
		t.Errorf("unexpected first project: %+v", projects[0])
	}
	if projects[1].ChosenDesign != 1 || projects[1].Satisfaction != 0.70 {
		t.Errorf("unexpected second project: %+v", projects[1])
	}
}
