package ml

import (
	"math"
	"sort"

	"github.com/Ishika-Agrawal10/Mini-Project2nd/pkg/api"
	"github.com/Ishika-Agrawal10/Mini-Project2nd/pkg/confidence"
)

// DefaultNeighbors is the number of nearest historical projects consulted
// per recommendation.
const DefaultNeighbors = 5

// Recommender answers "which design did clients with a brief like this
// choose" by exact nearest-neighbor search over the historical project
// list. History is stored as-is and never mutated; the feature index is
// rebuilt on every LearnFromHistory call.
type Recommender struct {
	k        int
	history  []api.HistoricalProject
	features [][]float64
}

func NewRecommender() *Recommender {
	return &Recommender{k: DefaultNeighbors}
}

// NewRecommenderK returns a recommender consulting k neighbors. Values
// below 1 fall back to DefaultNeighbors.
func NewRecommenderK(k int) *Recommender {
	if k < 1 {
		k = DefaultNeighbors
	}
	return &Recommender{k: k}
}

// Climate and priority codes are halved here so all four dimensions live
// on comparable scales in distance space. This differs from the cost and
// ranking encodings on purpose.
func recommenderFeatures(c api.Constraints) []float64 {
	return []float64{
		float64(c.Area) / 2000,
		c.Budget / 100,
		climateCode(c.Climate) / 2,
		priorityCode(c.Priority) / 2,
	}
}

// LearnFromHistory stores the project list and builds the neighbor index.
// Empty input is a no-op: previously learned history stays in place.
func (r *Recommender) LearnFromHistory(projects []api.HistoricalProject) {
	if len(projects) == 0 {
		return
	}
	r.history = make([]api.HistoricalProject, len(projects))
	copy(r.history, projects)
	r.features = make([][]float64, len(projects))
	for i, p := range projects {
		r.features[i] = recommenderFeatures(p.Constraints)
	}
}

// IsTrained reports whether any history has been learned.
func (r *Recommender) IsTrained() bool {
	return len(r.history) > 0
}

type neighbor struct {
	index    int
	distance float64
}

// Recommend finds the k nearest historical projects to the brief and lets
// each vote for its chosen design, weighted by satisfaction/(1+distance).
// The winner is the design with the highest total weight; ties break
// toward the lowest design id. Confidence is the winner's share of the
// total vote weight. With no learned history the recommendation is nil
// with zero confidence and no evidence.
func (r *Recommender) Recommend(c api.Constraints, topN int) api.Recommendation {
	if len(r.history) == 0 {
		return api.Recommendation{SimilarProjects: []api.SimilarProject{}}
	}
	if topN < 0 {
		topN = 0
	}

	target := recommenderFeatures(c)
	neighbors := make([]neighbor, len(r.features))
	for i, f := range r.features {
		neighbors[i] = neighbor{index: i, distance: euclidean(target, f)}
	}
	sort.SliceStable(neighbors, func(a, b int) bool {
		return neighbors[a].distance < neighbors[b].distance
	})
	if len(neighbors) > r.k {
		neighbors = neighbors[:r.k]
	}

	votes := map[int]float64{}
	total := 0.0
	for _, n := range neighbors {
		p := r.history[n.index]
		w := confidence.VoteWeight(p.Satisfaction, n.distance)
		votes[p.ChosenDesign] += w
		total += w
	}

	winner, winnerWeight := -1, -1.0
	for id, w := range votes {
		if w > winnerWeight || (w == winnerWeight && id < winner) {
			winner, winnerWeight = id, w
		}
	}

	conf := 0.0
	if total > 0 {
		conf = confidence.Clamp(winnerWeight / total)
	}

	evidence := make([]api.SimilarProject, 0, topN)
	for _, n := range neighbors {
		if len(evidence) == topN {
			break
		}
		p := r.history[n.index]
		evidence = append(evidence, api.SimilarProject{
			Constraints:  p.Constraints,
			ChosenDesign: p.ChosenDesign,
			Satisfaction: p.Satisfaction,
			Similarity:   confidence.Similarity(n.distance),
		})
	}

	return api.Recommendation{
		RecommendedDesign: &winner,
		Confidence:        conf,
		SimilarProjects:   evidence,
	}
}

// DesignStatistics tallies chosen-design counts and average satisfaction
// per design across the learned history in a single pass.
func (r *Recommender) DesignStatistics() api.DesignStatistics {
	counts := map[int]int{}
	sums := map[int]float64{}
	for _, p := range r.history {
		counts[p.ChosenDesign]++
		sums[p.ChosenDesign] += p.Satisfaction
	}
	avgs := make(map[int]float64, len(counts))
	for id, n := range counts {
		avgs[id] = sums[id] / float64(n)
	}
	return api.DesignStatistics{Counts: counts, AverageSatisfaction: avgs}
}

func euclidean(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
