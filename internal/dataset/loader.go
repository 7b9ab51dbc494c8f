// Package dataset loads and reshapes training data for the learned models.
// Public building datasets (UCI energy efficiency, NYC energy and water
// disclosure) arrive in wildly different shapes; each loader maps its
// source columns onto the shared TrainingRecord shape, and the Prepare
// functions derive the per-model training inputs from that.
package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Ishika-Agrawal10/Mini-Project2nd/internal/ml"
	"github.com/Ishika-Agrawal10/Mini-Project2nd/pkg/api"
	"github.com/Ishika-Agrawal10/Mini-Project2nd/pkg/errors"
)

// Candidate filenames probed by AutoLoad, in order. The first match per
// group wins, except custom files which all load.
var (
	uciFilenames    = []string{"energy_efficiency.csv", "ENB2012_data.csv"}
	nycFilenames    = []string{"NYC.csv", "nyc_building_energy.csv", "nyc_buildings.csv"}
	customFilenames = []string{"energy_data.csv", "custom_data.csv", "training_data.csv", "sample_training_data.csv", "synthetic_training_data.csv"}
)

const nycMaxRows = 10000

// Loader reads training datasets off disk.
type Loader struct {
	log zerolog.Logger
}

func NewLoader(log zerolog.Logger) *Loader {
	return &Loader{log: log}
}

// AutoLoad scans dataDir for any known dataset file and returns the
// combined training records. A missing directory or individual load
// failure is logged and skipped, never fatal: training simply falls back
// to synthetic data when nothing loads.
func (l *Loader) AutoLoad(dataDir string) []api.TrainingRecord {
	if _, err := os.Stat(dataDir); err != nil {
		l.log.Warn().Str("dir", dataDir).Msg("training data directory not found")
		return nil
	}

	var records []api.TrainingRecord

	for _, name := range uciFilenames {
		path := filepath.Join(dataDir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		rows, err := l.LoadUCIEnergy(path)
		if err != nil {
			l.log.Warn().Err(err).Str("file", path).Msg("failed to load UCI energy dataset")
		} else {
			l.log.Info().Int("records", len(rows)).Str("file", path).Msg("loaded UCI energy dataset")
			records = append(records, rows...)
		}
		break
	}

	for _, name := range nycFilenames {
		path := filepath.Join(dataDir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		rows, err := l.LoadNYCBuildings(path, nycMaxRows)
		if err != nil {
			l.log.Warn().Err(err).Str("file", path).Msg("failed to load NYC building dataset")
		} else {
			l.log.Info().Int("records", len(rows)).Str("file", path).Msg("loaded NYC building dataset")
			records = append(records, rows...)
		}
		break
	}

	for _, name := range customFilenames {
		path := filepath.Join(dataDir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		rows, err := l.LoadCustomCSV(path)
		if err != nil {
			l.log.Warn().Err(err).Str("file", path).Msg("failed to load custom dataset")
			continue
		}
		l.log.Info().Int("records", len(rows)).Str("file", path).Msg("loaded custom dataset")
		records = append(records, rows...)
	}

	if len(records) == 0 {
		l.log.Info().Msg("no datasets found, synthetic data will be used")
	}
	return records
}

// LoadUCIEnergy reads the UCI Energy Efficiency dataset (columns X1-X8 for
// building parameters, Y1/Y2 for heating and cooling loads) and maps each
// row onto a training record: wall area scales to floor area, glazing area
// drives the budget, and the heating/cooling ratio picks the climate.
func (l *Loader) LoadUCIEnergy(path string) ([]api.TrainingRecord, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	var records []api.TrainingRecord
	for _, row := range rows {
		area := field(row, "X2", 0) * 40
		budget := clampF(50+field(row, "X7", 0)*10, 20, 100)

		heating := field(row, "Y1", 15)
		cooling := field(row, "Y2", 15)
		climate := api.ClimateModerate
		if heating > cooling*1.5 {
			climate = api.ClimateCold
		} else if cooling > heating*1.5 {
			climate = api.ClimateHot
		}

		energyEff := clampF(100-heating*3, 0, 100)
		carbon := api.CarbonMedium
		if energyEff > 70 {
			carbon = api.CarbonLow
		}

		records = append(records, api.TrainingRecord{
			Area:             int(area),
			Budget:           int(budget),
			Climate:          climate,
			Priority:         api.PriorityEnergy,
			DesignID:         0,
			ActualCost:       int(area * 150 * (budget / 100) * 1.2),
			EnergyEfficiency: int(energyEff),
			WaterEfficiency:  65,
			CarbonLevel:      carbon,
		})
	}
	return records, nil
}

// LoadNYCBuildings reads the NYC Building Energy & Water disclosure
// dataset, up to maxRows usable rows. Rows with unparseable or
// out-of-range floor area are skipped rather than failing the load.
func (l *Loader) LoadNYCBuildings(path string, maxRows int) ([]api.TrainingRecord, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	var records []api.TrainingRecord
	for _, row := range rows {
		if len(records) >= maxRows {
			break
		}

		rawArea := field(row, "Property GFA - Self-Reported (ft²)", 0)
		if rawArea < 300 || rawArea > 50000 {
			continue
		}
		area := int(clampF(rawArea/10, 300, 2000))

		eui := field(row, "Site EUI (kBtu/ft²)", 100)
		energyEff := clampF(100-eui/3, 0, 100)

		waterUse := field(row, "Water Use (All Water Sources) (kgal)", 0)
		waterEff := clampF(100-waterUse/float64(area)/2, 0, 100)

		ghg := field(row, "Total GHG Emissions (Metric Tons CO2e)", 0)
		carbon := api.CarbonHigh
		if ghg < float64(area)*0.5 {
			carbon = api.CarbonLow
		} else if ghg < float64(area)*1.5 {
			carbon = api.CarbonMedium
		}

		priority := api.PriorityMaterials
		if energyEff > waterEff {
			priority = api.PriorityEnergy
		} else if waterEff > energyEff {
			priority = api.PriorityWater
		}

		budget := int(clampF(field(row, "ENERGY STAR Score", 50), 20, 100))

		designID := 1
		if energyEff > 70 {
			designID = 0
		}

		records = append(records, api.TrainingRecord{
			Area:             area,
			Budget:           budget,
			Climate:          api.ClimateModerate, // NYC
			Priority:         priority,
			DesignID:         designID,
			ActualCost:       int(float64(area) * 180 * (float64(budget) / 100)),
			EnergyEfficiency: int(energyEff),
			WaterEfficiency:  int(waterEff),
			CarbonLevel:      carbon,
		})
	}
	return records, nil
}

// LoadCustomCSV reads either the native training format (area, budget,
// climate, priority, design_id, actual_cost, ...) or the UCI Appliances
// Energy format, detected per-row by which columns are present.
func (l *Loader) LoadCustomCSV(path string) ([]api.TrainingRecord, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	var records []api.TrainingRecord
	for _, row := range rows {
		switch {
		case hasField(row, "area"):
			rec, err := nativeRecord(row)
			if err != nil {
				continue
			}
			records = append(records, rec)
		case hasField(row, "Appliances"):
			appliances := field(row, "Appliances", 0)
			lights := field(row, "lights", 0)
			tOut := field(row, "T_out", 20)

			area := int(500 + (appliances+lights)*2)
			energyEff := clampF(100-appliances/100, 0, 100)

			climate := api.ClimateModerate
			if tOut < 5 {
				climate = api.ClimateCold
			} else if tOut > 20 {
				climate = api.ClimateHot
			}

			carbon := api.CarbonMedium
			if energyEff > 70 {
				carbon = api.CarbonLow
			}

			records = append(records, api.TrainingRecord{
				Area:             area,
				Budget:           int(50 + energyEff/100*50),
				Climate:          climate,
				Priority:         api.PriorityEnergy,
				DesignID:         0,
				ActualCost:       area * 150,
				EnergyEfficiency: int(energyEff),
				WaterEfficiency:  65,
				CarbonLevel:      carbon,
			})
		}
	}
	return records, nil
}

func nativeRecord(row map[string]string) (api.TrainingRecord, error) {
	area, err := strconv.Atoi(strings.TrimSpace(row["area"]))
	if err != nil {
		return api.TrainingRecord{}, err
	}
	budget, err := strconv.Atoi(strings.TrimSpace(row["budget"]))
	if err != nil {
		return api.TrainingRecord{}, err
	}
	designID, err := strconv.Atoi(strings.TrimSpace(row["design_id"]))
	if err != nil {
		return api.TrainingRecord{}, err
	}
	cost, err := strconv.Atoi(strings.TrimSpace(row["actual_cost"]))
	if err != nil {
		return api.TrainingRecord{}, err
	}

	carbon := api.CarbonLevel(row["carbon_level"])
	if carbon == "" {
		carbon = api.CarbonMedium
	}

	return api.TrainingRecord{
		Area:             area,
		Budget:           budget,
		Climate:          api.Climate(row["climate"]),
		Priority:         api.Priority(row["priority"]),
		DesignID:         designID,
		ActualCost:       cost,
		EnergyEfficiency: int(field(row, "energy_efficiency", 50)),
		WaterEfficiency:  int(field(row, "water_efficiency", 50)),
		CarbonLevel:      carbon,
	}, nil
}

// PrepareRankingExamples reshapes training records into ranker examples.
// Each record becomes a single-design example; the satisfaction label is
// derived from the recorded energy efficiency.
func PrepareRankingExamples(records []api.TrainingRecord) []ml.RankingExample {
	examples := make([]ml.RankingExample, 0, len(records))
	for _, r := range records {
		satisfaction := 0.65
		if r.EnergyEfficiency > 70 {
			satisfaction = 0.85
		}
		examples = append(examples, ml.RankingExample{
			Constraints: recordConstraints(r),
			Designs: []api.Design{{
				ID: api.DesignEcoEfficient,
				Metrics: &api.Metrics{
					EnergyEfficiency: r.EnergyEfficiency,
					WaterEfficiency:  r.WaterEfficiency,
					CarbonFootprint:  r.CarbonLevel,
					EstimatedCost:    r.ActualCost,
				},
			}},
			Satisfaction: satisfaction,
		})
	}
	return examples
}

// PrepareHistory reshapes training records into the recommender's
// historical project shape.
func PrepareHistory(records []api.TrainingRecord) []api.HistoricalProject {
	projects := make([]api.HistoricalProject, 0, len(records))
	for _, r := range records {
		satisfaction := 0.70
		if r.EnergyEfficiency > 70 {
			satisfaction = 0.85
		}
		projects = append(projects, api.HistoricalProject{
			Constraints:  recordConstraints(r),
			ChosenDesign: r.DesignID,
			Satisfaction: satisfaction,
		})
	}
	return projects
}

func recordConstraints(r api.TrainingRecord) api.Constraints {
	return api.Constraints{
		Area:     r.Area,
		Budget:   float64(r.Budget),
		Climate:  r.Climate,
		Priority: r.Priority,
	}
}

// readCSV returns each data row as a header-keyed map.
func readCSV(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewDatasetUnreadableError(path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, errors.NewDatasetMalformedError(path, err)
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewDatasetMalformedError(path, err)
		}
		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(record) {
				row[name] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func hasField(row map[string]string, name string) bool {
	_, ok := row[name]
	return ok
}

// field parses a numeric column, tolerating thousands separators and
// blanks. Missing or empty values take the default; everything else
// unparseable yields zero like the column was absent.
func field(row map[string]string, name string, def float64) float64 {
	raw, ok := row[name]
	if !ok {
		return def
	}
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
