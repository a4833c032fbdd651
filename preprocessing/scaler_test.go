package preprocessing

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/aeroml/pkg/errors"
)

func TestStandardScalerFitTransform(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1.0, 10.0,
		2.0, 20.0,
		3.0, 30.0,
		4.0, 40.0,
	})

	scaler := NewStandardScaler()
	scaled, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}

	// 変換後は各列が平均0、標準偏差1になる
	r, c := scaled.Dims()
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, scaled)

		var sum float64
		for _, v := range col {
			sum += v
		}
		mean := sum / float64(r)
		if math.Abs(mean) > 1e-10 {
			t.Errorf("column %d mean = %v, want 0", j, mean)
		}

		var sumSq float64
		for _, v := range col {
			sumSq += (v - mean) * (v - mean)
		}
		std := math.Sqrt(sumSq / float64(r))
		if math.Abs(std-1.0) > 1e-10 {
			t.Errorf("column %d std = %v, want 1", j, std)
		}
	}
}

func TestStandardScalerInverseRoundTrip(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{
		2.6, 48.9,
		2.0, 47.7,
		2.2, 54.0,
	})

	scaler := NewStandardScaler()
	scaled, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}

	restored, err := scaler.InverseTransform(scaled)
	if err != nil {
		t.Fatalf("InverseTransform() error = %v", err)
	}

	if !mat.EqualApprox(X, restored, 1e-10) {
		t.Error("InverseTransform(Transform(X)) should recover X")
	}
}

func TestStandardScalerConstantColumn(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{5.0, 5.0, 5.0})

	scaler := NewStandardScaler()
	scaled, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}

	// 定数列はスケール1で扱われ、NaNを生まない
	for i := 0; i < 3; i++ {
		if v := scaled.At(i, 0); v != 0 || math.IsNaN(v) {
			t.Errorf("scaled constant column value = %v, want 0", v)
		}
	}
}

func TestStandardScalerNotFitted(t *testing.T) {
	scaler := NewStandardScaler()
	_, err := scaler.Transform(mat.NewDense(1, 1, []float64{1}))
	if err == nil {
		t.Fatal("Transform() before Fit() should fail")
	}

	var nfErr *errors.NotFittedError
	if !errors.As(err, &nfErr) {
		t.Errorf("error should be NotFittedError, got %T", err)
	}
}

func TestStandardScalerDimensionMismatch(t *testing.T) {
	scaler := NewStandardScaler()
	if err := scaler.Fit(mat.NewDense(3, 2, nil)); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	_, err := scaler.Transform(mat.NewDense(3, 3, nil))
	if err == nil {
		t.Fatal("Transform() with wrong feature count should fail")
	}

	var dimErr *errors.DimensionError
	if !errors.As(err, &dimErr) {
		t.Errorf("error should be DimensionError, got %T", err)
	}
}
