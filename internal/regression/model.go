package regression

import (
	"errors"
	"fmt"
)

// Training hyperparameters. Fit always runs the full iteration count with no
// early stopping and no gradient clipping; pathological inputs can diverge.
const (
	Iterations   = 1000
	LearningRate = 0.01
)

// Model is a linear regression trained by batch gradient descent. A freshly
// constructed model is unfitted and predicts zero until Fit or a load
// populates the weights.
type Model struct {
	weights      []float64
	bias         float64
	featureNames []string
}

// New creates an unfitted model. featureNames is documentation carried into
// the persisted record; it is never read during prediction.
func New(featureNames []string) *Model {
	return &Model{featureNames: featureNames}
}

// Fitted reports whether the model has weights.
func (m *Model) Fitted() bool { return m.weights != nil }

// Fit trains the model on the design matrix X and targets y. Weights are
// re-initialized to zero first; there is no partial update. Returns an error
// for an empty matrix, a feature/target length mismatch, or ragged rows.
func (m *Model) Fit(X [][]float64, y []float64) error {
	if len(X) == 0 {
		return errors.New("empty training set")
	}
	if len(X) != len(y) {
		return fmt.Errorf("feature/target count mismatch: %d samples, %d targets", len(X), len(y))
	}
	nFeatures := len(X[0])
	for i, row := range X {
		if len(row) != nFeatures {
			return fmt.Errorf("ragged design matrix: row %d has %d features, want %d", i, len(row), nFeatures)
		}
	}

	m.weights = make([]float64, nFeatures)
	m.bias = 0

	n := float64(len(X))
	preds := make([]float64, len(X))
	grads := make([]float64, nFeatures)

	for iter := 0; iter < Iterations; iter++ {
		// Full-batch pass: all samples contribute to each update.
		for i, row := range X {
			preds[i] = m.dot(row)
		}
		for j := range grads {
			grads[j] = 0
		}
		biasGrad := 0.0
		for i, row := range X {
			diff := preds[i] - y[i]
			for j, xj := range row {
				grads[j] += diff * xj
			}
			biasGrad += diff
		}
		for j := range m.weights {
			m.weights[j] -= LearningRate * grads[j] / n
		}
		m.bias -= LearningRate * biasGrad / n
	}
	return nil
}

// Predict returns weights·x + bias, or 0 when the model is unfitted. The
// caller is responsible for passing a vector of the trained dimension; a
// shorter vector silently drops the trailing weights.
func (m *Model) Predict(x []float64) float64 {
	if m.weights == nil {
		return 0
	}
	return m.dot(x)
}

func (m *Model) dot(x []float64) float64 {
	sum := m.bias
	for j, w := range m.weights {
		if j < len(x) {
			sum += w * x[j]
		}
	}
	return sum
}
