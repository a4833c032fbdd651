package regress

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/aeroml/core/model"
	"github.com/YuminosukeSato/aeroml/core/parallel"
	"github.com/YuminosukeSato/aeroml/pkg/errors"
	"github.com/YuminosukeSato/aeroml/preprocessing"
)

// singularTol is the relative singular-value cutoff below which the
// predictor block is treated as rank-deficient beyond recoverable tolerance.
const singularTol = 1e-10

// parallelThreshold is the row count below which prediction loops run
// sequentially.
const parallelThreshold = 1000

// PCR is a Principal Component Regression model.
//
// Fit standardizes the predictors, extracts orthogonal components ordered
// by variance explained via SVD, and regresses the target on the leading
// K component scores with ordinary least squares.
type PCR struct {
	model.BaseEstimator

	k         int
	scaler    *preprocessing.StandardScaler
	loadings  *mat.Dense    // nFeatures × k
	coef      *mat.VecDense // k
	intercept float64
	explained []float64 // fraction of predictor variance per extracted component
	nFeatures int
}

// NewPCR creates a PCR model with k components.
func NewPCR(k int) *PCR {
	return &PCR{k: k, scaler: preprocessing.NewStandardScaler()}
}

// Components returns the configured component count.
func (m *PCR) Components() int {
	return m.k
}

// ExplainedVariance returns the fraction of predictor variance captured by
// each extracted component, ordered by decreasing variance. Nil before Fit.
func (m *PCR) ExplainedVariance() []float64 {
	return m.explained
}

// Fit trains the model on X (n_samples × n_features) and y (n_samples × 1).
func (m *PCR) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "PCR.Fit")

	r, c := X.Dims()
	if err := validateFitInputs("PCR.Fit", X, y, m.k); err != nil {
		return err
	}
	m.nFeatures = c

	Xs, err := m.scaler.FitTransform(X)
	if err != nil {
		return err
	}

	var svd mat.SVD
	if ok := svd.Factorize(Xs, mat.SVDThin); !ok {
		return errors.NewSingularMatrixError("PCR.Fit", r, c)
	}

	values := svd.Values(nil)
	if values[0] <= 0 || values[m.k-1] < singularTol*values[0] {
		// rank-deficient beyond recoverable tolerance
		return errors.NewSingularMatrixError("PCR.Fit", r, c)
	}

	var v mat.Dense
	svd.VTo(&v)
	loadings := mat.DenseCopyOf(v.Slice(0, c, 0, m.k))

	var total float64
	for _, s := range values {
		total += s * s
	}
	explained := make([]float64, m.k)
	for i := 0; i < m.k; i++ {
		explained[i] = values[i] * values[i] / total
	}

	// Score matrix T = Xs · V_k. Columns of Xs have zero mean, so the
	// scores are centered and the intercept is the target mean.
	var scores mat.Dense
	scores.Mul(Xs, loadings)

	yVec := columnVector(y)
	yMean := meanVec(yVec)
	yc := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		yc.SetVec(i, yVec.AtVec(i)-yMean)
	}

	coef := mat.NewVecDense(m.k, nil)
	if err := coef.SolveVec(&scores, yc); err != nil {
		return errors.NewSingularMatrixError("PCR.Fit", r, m.k)
	}
	if err := errors.CheckFinite("PCR.Fit", coef.RawVector().Data); err != nil {
		return err
	}

	m.loadings = loadings
	m.coef = coef
	m.intercept = yMean
	m.explained = explained
	m.SetFitted()
	return nil
}

// Predict returns predictions for X as an n_samples × 1 matrix.
func (m *PCR) Predict(X mat.Matrix) (out mat.Matrix, err error) {
	defer errors.Recover(&err, "PCR.Predict")

	if !m.IsFitted() {
		return nil, errors.NewNotFittedError("PCR", "Predict")
	}

	r, c := X.Dims()
	if c != m.nFeatures {
		return nil, errors.NewDimensionError("PCR.Predict", m.nFeatures, c, 1)
	}

	Xs, err := m.scaler.Transform(X)
	if err != nil {
		return nil, err
	}

	var scores mat.Dense
	scores.Mul(Xs, m.loadings)

	predictions := mat.NewDense(r, 1, nil)
	parallel.ParallelizeWithThreshold(r, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			pred := m.intercept
			for j := 0; j < m.k; j++ {
				pred += scores.At(i, j) * m.coef.AtVec(j)
			}
			predictions.Set(i, 0, pred)
		}
	})

	return predictions, nil
}

// Score computes the coefficient of determination (R²) on X, y.
func (m *PCR) Score(X, y mat.Matrix) (float64, error) {
	return scoreR2("PCR", m, X, y)
}
