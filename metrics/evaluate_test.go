package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// constantShiftModel はターゲットを定数だけずらして予測するスタブ
type constantShiftModel struct {
	shift float64
	k     int
}

func (m *constantShiftModel) Fit(X, y mat.Matrix) error { return nil }

func (m *constantShiftModel) Predict(X mat.Matrix) (mat.Matrix, error) {
	r, _ := X.Dims()
	pred := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		pred.Set(i, 0, X.At(i, 0)+m.shift)
	}
	return pred, nil
}

func (m *constantShiftModel) Components() int { return m.k }

func (m *constantShiftModel) Score(X, y mat.Matrix) (float64, error) { return 0, nil }

func TestEvaluate(t *testing.T) {
	// 予測子の1列目がそのままターゲット: shift=1なら残差は常に1
	X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	y := mat.NewVecDense(4, []float64{1, 2, 3, 4})

	ev, err := Evaluate("PCR", &constantShiftModel{shift: 1, k: 3}, X, y)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	if ev.Method != "PCR" {
		t.Errorf("Method = %q, want PCR", ev.Method)
	}
	if ev.Components != 3 {
		t.Errorf("Components = %d, want 3", ev.Components)
	}
	if math.Abs(ev.RMSE-1.0) > 1e-10 {
		t.Errorf("RMSE = %v, want 1.0", ev.RMSE)
	}
	if ev.R2 > 1.0 {
		t.Errorf("R2 = %v, must not exceed 1", ev.R2)
	}
}

func TestEvaluatePerfect(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{1, 2, 3})
	y := mat.NewVecDense(3, []float64{1, 2, 3})

	ev, err := Evaluate("PLS", &constantShiftModel{shift: 0, k: 1}, X, y)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if ev.RMSE > 1e-12 {
		t.Errorf("RMSE = %v, want 0", ev.RMSE)
	}
	if math.Abs(ev.R2-1.0) > 1e-12 {
		t.Errorf("R2 = %v, want 1", ev.R2)
	}
}
