// Package ml holds the three learned adapters: cost regression, preference
// ranking, and nearest-neighbor recommendation. They share the constraint
// feature vocabulary but keep their historical per-model encodings.
//
// The regressors are ordinary least squares linear models fit via the
// normal equations; a small ridge term keeps the system solvable when
// features are collinear. All models are train-once, read-many: fitting
// must be externally serialized, fitted state is read-only afterwards.
package ml

import (
	"errors"
	"math"
)

var errSingular = errors.New("ml: singular design matrix")

// linearModel is a fitted least-squares regressor. The last weight is the
// intercept.
type linearModel struct {
	weights []float64
}

// fitLinear solves (X'X + ridge*I) w = X'y for w, with a bias column
// appended to X. Returns an error when the system cannot be solved.
func fitLinear(features [][]float64, targets []float64) (*linearModel, error) {
	if len(features) == 0 || len(features) != len(targets) {
		return nil, errors.New("ml: empty or mismatched training data")
	}

	const ridge = 1e-6

	dim := len(features[0]) + 1 // +bias
	// Normal equations accumulators.
	xtx := make([][]float64, dim)
	for i := range xtx {
		xtx[i] = make([]float64, dim)
	}
	xty := make([]float64, dim)

	row := make([]float64, dim)
	for r, f := range features {
		if len(f) != dim-1 {
			return nil, errors.New("ml: inconsistent feature width")
		}
		copy(row, f)
		row[dim-1] = 1.0
		for i := 0; i < dim; i++ {
			for j := 0; j < dim; j++ {
				xtx[i][j] += row[i] * row[j]
			}
			xty[i] += row[i] * targets[r]
		}
	}
	for i := 0; i < dim; i++ {
		xtx[i][i] += ridge
	}

	weights, err := solve(xtx, xty)
	if err != nil {
		return nil, err
	}
	return &linearModel{weights: weights}, nil
}

// predict evaluates the fitted model at x. ok is false when the feature
// width does not match the fitted model or the result is not finite, so
// callers can fall back instead of propagating garbage.
func (m *linearModel) predict(x []float64) (float64, bool) {
	if m == nil || len(x) != len(m.weights)-1 {
		return 0, false
	}
	sum := m.weights[len(m.weights)-1]
	for i, v := range x {
		sum += m.weights[i] * v
	}
	if math.IsNaN(sum) || math.IsInf(sum, 0) {
		return 0, false
	}
	return sum, true
}

// solve runs Gaussian elimination with partial pivoting on a*x = b.
func solve(a [][]float64, b []float64) ([]float64, error) {
	n := len(a)
	for col := 0; col < n; col++ {
		// Pivot.
		pivot := col
		for r := col + 1; r < n; r++ {
			if math.Abs(a[r][col]) > math.Abs(a[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(a[pivot][col]) < 1e-12 {
			return nil, errSingular
		}
		a[col], a[pivot] = a[pivot], a[col]
		b[col], b[pivot] = b[pivot], b[col]

		for r := col + 1; r < n; r++ {
			factor := a[r][col] / a[col][col]
			for c := col; c < n; c++ {
				a[r][c] -= factor * a[col][c]
			}
			b[r] -= factor * b[col]
		}
	}

	x := make([]float64, n)
	for r := n - 1; r >= 0; r-- {
		sum := b[r]
		for c := r + 1; c < n; c++ {
			sum -= a[r][c] * x[c]
		}
		x[r] = sum / a[r][r]
	}
	return x, nil
}

// columnStddevs returns the per-feature standard deviation, used to scale
// weight magnitudes into comparable importances.
func columnStddevs(features [][]float64) []float64 {
	if len(features) == 0 {
		return nil
	}
	dim := len(features[0])
	means := make([]float64, dim)
	for _, f := range features {
		for i, v := range f {
			means[i] += v
		}
	}
	for i := range means {
		means[i] /= float64(len(features))
	}

	stds := make([]float64, dim)
	for _, f := range features {
		for i, v := range f {
			d := v - means[i]
			stds[i] += d * d
		}
	}
	for i := range stds {
		stds[i] = math.Sqrt(stds[i] / float64(len(features)))
	}
	return stds
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
