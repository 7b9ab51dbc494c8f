// Package confidence provides confidence score math utilities.
package confidence

// Clamp ensures confidence is in valid range [0, 1].
func Clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// Similarity converts a Euclidean feature-space distance to a 0-1
// similarity: identical points score 1.0, similarity decays with distance.
func Similarity(distance float64) float64 {
	if distance < 0 {
		distance = 0
	}
	return 1.0 / (1.0 + distance)
}

// VoteWeight weighs a neighbor's vote by its outcome quality and its
// distance from the query: satisfied, nearby projects count the most.
func VoteWeight(satisfaction, distance float64) float64 {
	if distance < 0 {
		distance = 0
	}
	return satisfaction / (1.0 + distance)
}
