package dataset

import (
	"github.com/rs/zerolog"

	"github.com/Ishika-Agrawal10/Mini-Project2nd/internal/ml"
	"github.com/Ishika-Agrawal10/Mini-Project2nd/pkg/api"
)

// DefaultSeed keeps synthetic training reproducible across restarts.
const DefaultSeed = 42

// TrainModels builds and trains the three learned adapters in one pass,
// returning them along with the cost records that backed the training so
// callers can archive them. Real datasets found under dataDir win;
// otherwise models train on synthetic data. Called once at process
// startup, before the models are shared with concurrent readers.
func TrainModels(log zerolog.Logger, dataDir string, seed int64) (*ml.CostPredictor, *ml.Ranker, *ml.Recommender, []api.TrainingRecord) {
	cost := ml.NewCostPredictor()
	ranker := ml.NewRanker()
	recommender := ml.NewRecommender()

	records := NewLoader(log).AutoLoad(dataDir)

	if len(records) > 0 {
		cost.Train(records)
		ranker.Train(PrepareRankingExamples(records))
		recommender.LearnFromHistory(PrepareHistory(records))
		log.Info().Int("records", len(records)).Msg("models trained on loaded datasets")
	} else {
		synth := NewSynthesizer(seed)
		records = synth.CostRecords(DefaultCostSamples)
		cost.Train(records)
		ranker.Train(synth.PreferenceExamples(DefaultPreferenceSamples))
		recommender.LearnFromHistory(synth.HistoricalProjects(DefaultHistorySamples))
		log.Info().Int64("seed", seed).Msg("models trained on synthetic data")
	}

	log.Info().
		Bool("cost_predictor", cost.IsTrained()).
		Bool("ranker", ranker.IsTrained()).
		Bool("recommender", recommender.IsTrained()).
		Msg("model training complete")

	return cost, ranker, recommender, records
}
