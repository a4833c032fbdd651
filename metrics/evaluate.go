package metrics

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/aeroml/core/model"
)

// Evaluation は1つの学習済みモデルをテストセットで評価した結果です。
// 実行のたびに再計算され、変更されることはありません。
type Evaluation struct {
	Method     string
	Components int
	RMSE       float64
	R2         float64
}

// Evaluate は学習済みモデルでテストセットの予測を行い、RMSEとR²を計算する。
//
// 入力は変更されない。同じモデル・同じテストセットに対して結果は決定的である。
//
// パラメータ:
//   - method: レポート用のモデル名（"PCR"、"PLS"など）
//   - m: 学習済みのComponentModel
//   - X: テストセットの予測子 (n_samples × n_features)
//   - y: テストセットのターゲット
func Evaluate(method string, m model.ComponentModel, X mat.Matrix, y *mat.VecDense) (Evaluation, error) {
	pred, err := m.Predict(X)
	if err != nil {
		return Evaluation{}, err
	}

	r, _ := pred.Dims()
	predVec := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		predVec.SetVec(i, pred.At(i, 0))
	}

	rmse, err := RMSE(y, predVec)
	if err != nil {
		return Evaluation{}, err
	}
	r2, err := R2Score(y, predVec)
	if err != nil {
		return Evaluation{}, err
	}

	return Evaluation{
		Method:     method,
		Components: m.Components(),
		RMSE:       rmse,
		R2:         r2,
	}, nil
}
