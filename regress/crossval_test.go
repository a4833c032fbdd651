package regress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/aeroml/core/model"
	"github.com/YuminosukeSato/aeroml/dataset"
	"github.com/YuminosukeSato/aeroml/pkg/errors"
)

func pcrFactory(k int) model.ComponentModel { return NewPCR(k) }
func plsFactory(k int) model.ComponentModel { return NewPLS(k) }

func TestCrossValidateCurveShape(t *testing.T) {
	X, y := syntheticLinear(60, 4, 41)
	kf := dataset.NewKFold(5, true, 42)

	curve, err := CrossValidate("PCR", pcrFactory, X, y, ComponentRange(1, 4), kf)
	require.NoError(t, err)

	assert.Equal(t, "PCR", curve.Method)
	require.Len(t, curve.Points, 4)
	for i, p := range curve.Points {
		assert.Equal(t, i+1, p.K)
		assert.GreaterOrEqual(t, p.RMSEP, 0.0)
	}

	// the target is an exact function of two predictors, so the error
	// collapses once both directions are available
	assert.Less(t, curve.Points[3].RMSEP, 1e-6)
	assert.Greater(t, curve.Points[0].RMSEP, curve.Points[3].RMSEP)
}

func TestCrossValidateDeterministic(t *testing.T) {
	X, y := syntheticLinear(50, 3, 43)

	run := func() *RMSEPCurve {
		curve, err := CrossValidate("PLS", plsFactory, X, y, ComponentRange(1, 3), dataset.NewKFold(5, true, 7))
		require.NoError(t, err)
		return curve
	}

	first := run()
	second := run()
	for i := range first.Points {
		assert.Equal(t, first.Points[i].K, second.Points[i].K)
		assert.Equal(t, first.Points[i].RMSEP, second.Points[i].RMSEP)
	}
}

func TestCrossValidateValidation(t *testing.T) {
	X, y := syntheticLinear(20, 3, 47)
	kf := dataset.NewKFold(4, false, 0)

	t.Run("empty data", func(t *testing.T) {
		var empty mat.Dense
		_, err := CrossValidate("PCR", pcrFactory, &empty, y, []int{1}, kf)
		assert.Error(t, err)
	})

	t.Run("no candidates", func(t *testing.T) {
		_, err := CrossValidate("PCR", pcrFactory, X, y, nil, kf)
		assert.Error(t, err)
	})

	t.Run("mismatched target length", func(t *testing.T) {
		_, err := CrossValidate("PCR", pcrFactory, X, mat.NewVecDense(7, nil), []int{1}, kf)
		assert.Error(t, err)
	})

	t.Run("more folds than rows", func(t *testing.T) {
		small, ySmall := syntheticLinear(8, 2, 53)
		_, err := CrossValidate("PCR", pcrFactory, small, ySmall, []int{1}, dataset.NewKFold(10, true, 42))
		require.Error(t, err)

		var ie *errors.InsufficientDataError
		require.True(t, errors.As(err, &ie))
		assert.Equal(t, 8, ie.Rows)
		assert.Equal(t, 10, ie.Need)
	})
}

func TestRMSEPCurveBest(t *testing.T) {
	curve := &RMSEPCurve{
		Method: "PCR",
		Points: []CurvePoint{{1, 9.0}, {2, 4.0}, {3, 4.5}, {4, 3.9}},
	}
	assert.Equal(t, 4, curve.Best())
}

func TestRMSEPCurveElbow(t *testing.T) {
	curve := &RMSEPCurve{
		Method: "PLS",
		Points: []CurvePoint{{1, 10.0}, {2, 4.0}, {3, 3.8}, {4, 3.79}},
	}

	// the drop from 4.0 to 3.8 is a 5% improvement, below a 10% threshold
	assert.Equal(t, 2, curve.Elbow(0.10))
	// with a looser threshold the third component still counts
	assert.Equal(t, 3, curve.Elbow(0.01))
}

func TestComponentRange(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3}, ComponentRange(1, 3))
	assert.Equal(t, []int{5}, ComponentRange(5, 5))
	assert.Nil(t, ComponentRange(3, 1))
}
