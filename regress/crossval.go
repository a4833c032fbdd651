package regress

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/aeroml/core/model"
	"github.com/YuminosukeSato/aeroml/dataset"
	"github.com/YuminosukeSato/aeroml/pkg/errors"
	"github.com/YuminosukeSato/aeroml/pkg/log"
)

// CurvePoint is the cross-validated prediction error for one candidate
// component count.
type CurvePoint struct {
	K     int
	RMSEP float64
}

// RMSEPCurve is the full RMSEP-vs-component-count curve for one method.
// The curve is the output of cross-validation; selecting a component
// count from it is deliberately left to the caller.
type RMSEPCurve struct {
	Method string
	Points []CurvePoint
}

// Best returns the component count with the lowest RMSEP.
func (c *RMSEPCurve) Best() int {
	best := c.Points[0]
	for _, p := range c.Points[1:] {
		if p.RMSEP < best.RMSEP {
			best = p
		}
	}
	return best.K
}

// DefaultElbowTol is the relative RMSEP improvement below which adding
// another component stops being worth it. Both the command line tool and
// the text report derive their advisory elbow suggestion from it.
const DefaultElbowTol = 0.02

// Elbow suggests the component count at which RMSEP improvement becomes
// marginal: the last count whose relative improvement over its
// predecessor is at least tol. This mirrors the usual practice of
// picking the elbow of the curve rather than the global minimum.
//
// The suggestion is advisory. Callers remain free to pick any count.
func (c *RMSEPCurve) Elbow(tol float64) int {
	elbow := c.Points[0].K
	for i := 1; i < len(c.Points); i++ {
		prev := c.Points[i-1].RMSEP
		improvement := errors.SafeDivide(prev-c.Points[i].RMSEP, prev)
		if improvement < tol {
			break
		}
		elbow = c.Points[i].K
	}
	return elbow
}

// ComponentRange returns the candidate counts lo..hi inclusive.
func ComponentRange(lo, hi int) []int {
	if hi < lo {
		return nil
	}
	ks := make([]int, 0, hi-lo+1)
	for k := lo; k <= hi; k++ {
		ks = append(ks, k)
	}
	return ks
}

// Factory builds a fresh model for a given component count. Each
// cross-validation fit gets its own instance so no state leaks between
// folds.
type Factory func(k int) model.ComponentModel

// CrossValidate runs K-fold cross-validation over the candidate component
// counts ks and returns the pooled RMSEP per count.
//
// For each count, every fold's model is fitted on the fold's training
// rows and evaluated on its held-out rows; squared errors are pooled
// across folds before the root is taken, so every observation contributes
// exactly once.
func CrossValidate(method string, factory Factory, X *mat.Dense, y *mat.VecDense, ks []int, kf *dataset.KFold) (*RMSEPCurve, error) {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return nil, errors.NewModelError("regress.CrossValidate", "empty data", errors.ErrEmptyData)
	}
	if y.Len() != r {
		return nil, errors.NewDimensionError("regress.CrossValidate", r, y.Len(), 0)
	}
	if len(ks) == 0 {
		return nil, errors.NewValueError("regress.CrossValidate", "no candidate component counts")
	}
	// more folds than observations would leave empty test folds
	if kf.NSplits > r {
		return nil, errors.NewInsufficientDataError("regress.CrossValidate", r, c, kf.NSplits)
	}

	folds := kf.Split(r)
	logger := log.Stage("train").With().
		Str(log.OperationKey, "cross_validate").
		Str(log.MethodKey, method).
		Logger()

	curve := &RMSEPCurve{Method: method, Points: make([]CurvePoint, 0, len(ks))}
	for _, k := range ks {
		var sse float64
		var n int

		for foldIdx, fold := range folds {
			trainX, trainY := subset(X, y, fold.TrainIndices)
			testX, testY := subset(X, y, fold.TestIndices)

			m := factory(k)
			if err := m.Fit(trainX, trainY); err != nil {
				return nil, errors.Wrapf(err, "fold %d, %d components", foldIdx, k)
			}

			pred, err := m.Predict(testX)
			if err != nil {
				return nil, errors.Wrapf(err, "fold %d, %d components", foldIdx, k)
			}

			for i := 0; i < testY.Len(); i++ {
				diff := testY.AtVec(i) - pred.At(i, 0)
				sse += diff * diff
			}
			n += testY.Len()

			logger.Trace().
				Int(log.FoldKey, foldIdx).
				Int(log.ComponentsKey, k).
				Int(log.RowsKey, testY.Len()).
				Msg("scored held-out fold")
		}

		rmsep := math.Sqrt(sse / float64(n))
		if err := errors.CheckFiniteScalar("regress.CrossValidate", rmsep); err != nil {
			return nil, err
		}
		logger.Debug().
			Int(log.ComponentsKey, k).
			Float64(log.RMSEPKey, rmsep).
			Msg("cross-validated component count")
		curve.Points = append(curve.Points, CurvePoint{K: k, RMSEP: rmsep})
	}

	return curve, nil
}

// subset extracts the rows of X and y named by indices.
func subset(X *mat.Dense, y *mat.VecDense, indices []int) (*mat.Dense, *mat.VecDense) {
	_, c := X.Dims()
	outX := mat.NewDense(len(indices), c, nil)
	outY := mat.NewVecDense(len(indices), nil)

	for i, idx := range indices {
		for j := 0; j < c; j++ {
			outX.Set(i, j, X.At(idx, j))
		}
		outY.SetVec(i, y.AtVec(idx))
	}
	return outX, outY
}
