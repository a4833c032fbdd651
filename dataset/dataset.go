package dataset

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/aeroml/pkg/errors"
)

// Dataset はクリーニング済みの数値データセットです。
// Cleanerの出力として生成された後は不変として扱われ、分割や学習の
// 各段階は新しい値を返します。
type Dataset struct {
	// Columns は数値列の名前（ターゲット列を含む）
	Columns []string

	// Dates / Times は各行の観測時刻（モデリングからは除外）
	Dates []string
	Times []string

	// Data は行×列の数値ブロック
	Data *mat.Dense

	// Target はColumnsにおけるターゲット列のインデックス
	Target int
}

// NumRows は観測数を返す
func (ds *Dataset) NumRows() int {
	if ds.Data == nil {
		return 0
	}
	r, _ := ds.Data.Dims()
	return r
}

// NumCols は数値列の数を返す（ターゲット列を含む）
func (ds *Dataset) NumCols() int {
	if ds.Data == nil {
		return 0
	}
	_, c := ds.Data.Dims()
	return c
}

// TargetName はターゲット列の名前を返す
func (ds *Dataset) TargetName() string {
	return ds.Columns[ds.Target]
}

// FeatureNames はターゲットを除く予測子列の名前を返す
func (ds *Dataset) FeatureNames() []string {
	names := make([]string, 0, len(ds.Columns)-1)
	for i, name := range ds.Columns {
		if i == ds.Target {
			continue
		}
		names = append(names, name)
	}
	return names
}

// XY は予測子行列とターゲットベクトルのコピーを返す。
// 返り値は呼び出し元が自由に変更してよい（Datasetは変更されない）。
func (ds *Dataset) XY() (*mat.Dense, *mat.VecDense) {
	r, c := ds.Data.Dims()
	X := mat.NewDense(r, c-1, nil)
	y := mat.NewVecDense(r, nil)

	for i := 0; i < r; i++ {
		k := 0
		for j := 0; j < c; j++ {
			if j == ds.Target {
				y.SetVec(i, ds.Data.At(i, j))
				continue
			}
			X.Set(i, k, ds.Data.At(i, j))
			k++
		}
	}
	return X, y
}

// TargetValues はターゲット列の値のコピーを返す
func (ds *Dataset) TargetValues() []float64 {
	r := ds.NumRows()
	vals := make([]float64, r)
	for i := 0; i < r; i++ {
		vals[i] = ds.Data.At(i, ds.Target)
	}
	return vals
}

// Subset は指定した行インデックスからなる新しいDatasetを返す。
// インデックスが範囲外の場合はValueErrorを返す。
func (ds *Dataset) Subset(indices []int) (*Dataset, error) {
	r, c := ds.Data.Dims()
	data := mat.NewDense(len(indices), c, nil)
	dates := make([]string, len(indices))
	times := make([]string, len(indices))

	for i, idx := range indices {
		if idx < 0 || idx >= r {
			return nil, errors.NewValueError("Dataset.Subset", "row index out of range")
		}
		for j := 0; j < c; j++ {
			data.Set(i, j, ds.Data.At(idx, j))
		}
		dates[i] = ds.Dates[idx]
		times[i] = ds.Times[idx]
	}

	return &Dataset{
		Columns: ds.Columns,
		Dates:   dates,
		Times:   times,
		Data:    data,
		Target:  ds.Target,
	}, nil
}
