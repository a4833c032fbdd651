package regress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/aeroml/pkg/errors"
)

func TestPLSSingleComponentExactFit(t *testing.T) {
	// the second predictor is orthogonal to the first after centering and
	// carries no target signal, so one latent component suffices
	X := mat.NewDense(4, 2, []float64{
		1, 1,
		2, -1,
		3, -1,
		4, 1,
	})
	y := mat.NewVecDense(4, []float64{10, 13, 16, 19}) // 7 + 3·x1

	m := NewPLS(1)
	require.NoError(t, m.Fit(X, y))
	assert.Equal(t, 1, m.Components())

	pred, err := m.Predict(X)
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		assert.InDelta(t, y.AtVec(i), pred.At(i, 0), 1e-9)
	}
}

func TestPLSExactLinearFit(t *testing.T) {
	X, y := syntheticLinear(30, 2, 13)

	m := NewPLS(2)
	require.NoError(t, m.Fit(X, y))

	pred, err := m.Predict(X)
	require.NoError(t, err)
	for i := 0; i < 30; i++ {
		assert.InDelta(t, y.AtVec(i), pred.At(i, 0), 1e-8)
	}

	r2, err := m.Score(X, y)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, r2, 1e-10)
}

func TestPLSScalingInvariance(t *testing.T) {
	X, y := syntheticLinear(40, 3, 17)

	Xscaled := mat.DenseCopyOf(X)
	for i := 0; i < 40; i++ {
		Xscaled.Set(i, 2, X.At(i, 2)*250+40)
	}

	m1 := NewPLS(2)
	require.NoError(t, m1.Fit(X, y))
	m2 := NewPLS(2)
	require.NoError(t, m2.Fit(Xscaled, y))

	p1, err := m1.Predict(X)
	require.NoError(t, err)
	p2, err := m2.Predict(Xscaled)
	require.NoError(t, err)

	for i := 0; i < 40; i++ {
		assert.InDelta(t, p1.At(i, 0), p2.At(i, 0), 1e-6)
	}
}

func TestPLSFirstComponentBeatsPCR(t *testing.T) {
	// PLS aims its first component at the target, so with one component it
	// should never trail PCR by a meaningful margin on the training data
	X, y := syntheticLinear(60, 4, 31)

	pls := NewPLS(1)
	require.NoError(t, pls.Fit(X, y))
	pcr := NewPCR(1)
	require.NoError(t, pcr.Fit(X, y))

	r2PLS, err := pls.Score(X, y)
	require.NoError(t, err)
	r2PCR, err := pcr.Score(X, y)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, r2PLS, r2PCR-1e-10)
}

func TestPLSPredictBeforeFit(t *testing.T) {
	m := NewPLS(2)
	_, err := m.Predict(mat.NewDense(3, 2, nil))
	require.Error(t, err)

	var nf *errors.NotFittedError
	assert.True(t, errors.As(err, &nf))
}

func TestPLSFitValidation(t *testing.T) {
	X, y := syntheticLinear(10, 3, 2)

	t.Run("too many components", func(t *testing.T) {
		err := NewPLS(4).Fit(X, y)
		require.Error(t, err)
		var ve *errors.ValueError
		assert.True(t, errors.As(err, &ve))
	})

	t.Run("constant target", func(t *testing.T) {
		yConst := mat.NewVecDense(10, nil)
		for i := 0; i < 10; i++ {
			yConst.SetVec(i, 4.2)
		}
		err := NewPLS(1).Fit(X, yConst)
		require.Error(t, err)
		var se *errors.SingularMatrixError
		assert.True(t, errors.As(err, &se))
	})
}

func TestPLSPredictDimensionMismatch(t *testing.T) {
	X, y := syntheticLinear(20, 3, 37)

	m := NewPLS(2)
	require.NoError(t, m.Fit(X, y))

	_, err := m.Predict(mat.NewDense(5, 2, nil))
	require.Error(t, err)
	var de *errors.DimensionError
	assert.True(t, errors.As(err, &de))
}
