package regress

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/aeroml/core/model"
	"github.com/YuminosukeSato/aeroml/core/parallel"
	"github.com/YuminosukeSato/aeroml/pkg/errors"
	"github.com/YuminosukeSato/aeroml/preprocessing"
)

// PLS is a Partial Least Squares regression model (PLS1, single target).
//
// Fit standardizes the predictors and extracts K latent components via
// NIPALS, deflating both the predictor and target blocks after each
// component. Each component maximizes covariance between a predictor
// combination and the remaining target signal.
type PLS struct {
	model.BaseEstimator

	k         int
	scaler    *preprocessing.StandardScaler
	coef      *mat.VecDense // regression vector in standardized predictor space
	weights   *mat.Dense    // nFeatures × k, the NIPALS weight vectors
	xLoadings *mat.Dense    // nFeatures × k
	yLoadings []float64     // k
	intercept float64
	nFeatures int
}

// NewPLS creates a PLS model with k latent components.
func NewPLS(k int) *PLS {
	return &PLS{k: k, scaler: preprocessing.NewStandardScaler()}
}

// Components returns the configured component count.
func (m *PLS) Components() int {
	return m.k
}

// Fit trains the model on X (n_samples × n_features) and y (n_samples × 1).
func (m *PLS) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "PLS.Fit")

	r, c := X.Dims()
	if err := validateFitInputs("PLS.Fit", X, y, m.k); err != nil {
		return err
	}
	m.nFeatures = c

	XsM, err := m.scaler.FitTransform(X)
	if err != nil {
		return err
	}
	E := mat.DenseCopyOf(XsM)

	yVec := columnVector(y)
	yMean := meanVec(yVec)
	f := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		f.SetVec(i, yVec.AtVec(i)-yMean)
	}

	W := mat.NewDense(c, m.k, nil)
	P := mat.NewDense(c, m.k, nil)
	q := make([]float64, m.k)

	w := mat.NewVecDense(c, nil)
	t := mat.NewVecDense(r, nil)
	p := mat.NewVecDense(c, nil)

	for a := 0; a < m.k; a++ {
		// weight vector: direction of maximum covariance with the
		// remaining target signal
		w.MulVec(E.T(), f)
		norm := mat.Norm(w, 2)
		if norm < singularTol {
			// no covariance left to extract
			return errors.NewSingularMatrixError("PLS.Fit", r, c)
		}
		w.ScaleVec(1/norm, w)

		t.MulVec(E, w)
		tt := mat.Dot(t, t)
		if tt < singularTol {
			return errors.NewSingularMatrixError("PLS.Fit", r, c)
		}

		p.MulVec(E.T(), t)
		p.ScaleVec(1/tt, p)
		qa := mat.Dot(f, t) / tt

		// deflate both blocks
		var tp mat.Dense
		tp.Outer(1, t, p)
		E.Sub(E, &tp)
		for i := 0; i < r; i++ {
			f.SetVec(i, f.AtVec(i)-qa*t.AtVec(i))
		}

		W.SetCol(a, vecData(w))
		P.SetCol(a, vecData(p))
		q[a] = qa
	}

	// fold the component model back to a single regression vector:
	// B = W (Pᵀ W)⁻¹ q
	var ptw mat.Dense
	ptw.Mul(P.T(), W)

	z := mat.NewVecDense(m.k, nil)
	if err := z.SolveVec(&ptw, mat.NewVecDense(m.k, q)); err != nil {
		return errors.NewSingularMatrixError("PLS.Fit", m.k, m.k)
	}

	coef := mat.NewVecDense(c, nil)
	coef.MulVec(W, z)
	if err := errors.CheckFinite("PLS.Fit", coef.RawVector().Data); err != nil {
		return err
	}

	m.coef = coef
	m.weights = W
	m.xLoadings = P
	m.yLoadings = q
	m.intercept = yMean
	m.SetFitted()
	return nil
}

// Predict returns predictions for X as an n_samples × 1 matrix.
func (m *PLS) Predict(X mat.Matrix) (out mat.Matrix, err error) {
	defer errors.Recover(&err, "PLS.Predict")

	if !m.IsFitted() {
		return nil, errors.NewNotFittedError("PLS", "Predict")
	}

	r, c := X.Dims()
	if c != m.nFeatures {
		return nil, errors.NewDimensionError("PLS.Predict", m.nFeatures, c, 1)
	}

	Xs, err := m.scaler.Transform(X)
	if err != nil {
		return nil, err
	}

	predictions := mat.NewDense(r, 1, nil)
	parallel.ParallelizeWithThreshold(r, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			pred := m.intercept
			for j := 0; j < c; j++ {
				pred += Xs.At(i, j) * m.coef.AtVec(j)
			}
			predictions.Set(i, 0, pred)
		}
	})

	return predictions, nil
}

// Score computes the coefficient of determination (R²) on X, y.
func (m *PLS) Score(X, y mat.Matrix) (float64, error) {
	return scoreR2("PLS", m, X, y)
}

func vecData(v *mat.VecDense) []float64 {
	out := make([]float64, v.Len())
	for i := range out {
		out[i] = v.AtVec(i)
	}
	return out
}

// meanVec returns the arithmetic mean of v.
func meanVec(v *mat.VecDense) float64 {
	return floats.Sum(vecData(v)) / float64(v.Len())
}

// columnVector converts an n×1 matrix (or vector) to a VecDense copy.
func columnVector(y mat.Matrix) *mat.VecDense {
	r, _ := y.Dims()
	v := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		v.SetVec(i, y.At(i, 0))
	}
	return v
}

// validateFitInputs applies the shared Fit preconditions for PCR and PLS.
func validateFitInputs(op string, X, y mat.Matrix, k int) error {
	r, c := X.Dims()
	ry, cy := y.Dims()

	if r == 0 || c == 0 {
		return errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if ry != r {
		return errors.NewDimensionError(op, r, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError(op, "y must be a column vector")
	}
	if k < 1 {
		return errors.NewValueError(op, "component count must be at least 1")
	}
	if k > c {
		return errors.NewValueError(op, "component count exceeds predictor count")
	}
	if r < c {
		return errors.NewInsufficientDataError(op, r, c, c)
	}
	if r < k+1 {
		return errors.NewInsufficientDataError(op, r, c, k+1)
	}
	// NaN/Inf predictors would silently poison the decomposition
	if err := errors.CheckFiniteMatrix(op, X, r, c); err != nil {
		return err
	}
	if err := errors.CheckFiniteMatrix(op, y, ry, cy); err != nil {
		return err
	}
	return nil
}

// scoreR2 computes R² from a model's predictions.
func scoreR2(name string, m model.Predictor, X, y mat.Matrix) (float64, error) {
	pred, err := m.Predict(X)
	if err != nil {
		return 0, err
	}

	r, _ := y.Dims()
	var yMean float64
	for i := 0; i < r; i++ {
		yMean += y.At(i, 0)
	}
	yMean /= float64(r)

	var tss, rss float64
	for i := 0; i < r; i++ {
		yTrue := y.At(i, 0)
		yHat := pred.At(i, 0)
		tss += (yTrue - yMean) * (yTrue - yMean)
		rss += (yTrue - yHat) * (yTrue - yHat)
	}

	if tss == 0 {
		return 0, errors.Newf("%s.Score: total sum of squares is zero", name)
	}
	if math.IsNaN(rss) {
		return 0, errors.Newf("%s.Score: residuals are not finite", name)
	}
	return 1 - rss/tss, nil
}
