// Package cleaning は生のテーブルをモデリング可能なデータセットへ変換します。
//
// 各操作は決められた順序で全体に適用されます（部分的な失敗はなく、
// 回復不能な行は致命的なParseErrorになります）:
//
//  1. 末尾の構造的に不正な列を削除
//  2. 数値への強制変換（小数点コンマ → 小数点ピリオド）
//  3. 単位補正（相対湿度を10で割る）
//  4. センチネル値 -200 を欠損値として扱う
//  5. 列平均による欠損値補完（平均は外れ値除去の前に計算する）
//  6. 日付・時刻が欠損した行の削除
//  7. ターゲット列のみに対するIQR外れ値除去
//
// 外れ値除去をターゲット列に限定するのは意図的な方針であり、
// 予測子列の外れ値は除去しない。
package cleaning

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/aeroml/dataset"
	"github.com/YuminosukeSato/aeroml/pkg/errors"
	"github.com/YuminosukeSato/aeroml/pkg/log"
)

// Config はクリーニングの設定
type Config struct {
	// DateColumn / TimeColumn は観測時刻の列名（モデリングから除外される）
	DateColumn string
	TimeColumn string

	// TargetColumn は外れ値除去の対象となるターゲット列の名前
	TargetColumn string

	// DropTrailing は末尾から削除する構造的に不正な列の数
	DropTrailing int

	// Sentinel は「計測なし」を表すセンチネル値
	Sentinel float64

	// ScaleFactors は取り込み時のスケーリング誤りを補正する係数（列名 → 係数）
	ScaleFactors map[string]float64

	// IQRFactor は外れ値境界の係数（通常は1.5）
	IQRFactor float64
}

// DefaultConfig はUCI Air Qualityデータセット向けのデフォルト設定を返す。
// ターゲットはベンゼン濃度 C6H6(GT)、相対湿度RHは取り込み時の
// スケーリング誤りを補正するため10で割る。
func DefaultConfig() Config {
	return Config{
		DateColumn:   "Date",
		TimeColumn:   "Time",
		TargetColumn: "C6H6(GT)",
		DropTrailing: 2,
		Sentinel:     -200,
		ScaleFactors: map[string]float64{"RH": 0.1},
		IQRFactor:    1.5,
	}
}

// Report はクリーニングの各ステップで何が行われたかの記録です。
type Report struct {
	RowsIn          int
	RowsOut         int
	RowsDropped     int // 日付・時刻が欠損していた行数
	CommaConverted  int // 小数点コンマから変換された値の数
	SentinelValues  int // センチネル値として検出された値の数
	Imputed         map[string]int
	ColumnMeans     map[string]float64
	OutliersRemoved int
	LowerBound      float64
	UpperBound      float64
}

// MarshalZerologObject はzerologのイベントに構造化されたレポートを追加します。
func (r *Report) MarshalZerologObject(e *zerolog.Event) {
	imputed := 0
	for _, n := range r.Imputed {
		imputed += n
	}
	e.Int("rows_in", r.RowsIn).
		Int("rows_out", r.RowsOut).
		Int(log.DroppedKey, r.RowsDropped).
		Int("comma_converted", r.CommaConverted).
		Int("sentinel_values", r.SentinelValues).
		Int(log.ImputedKey, imputed).
		Int(log.OutliersKey, r.OutliersRemoved).
		Float64("outlier_lower", r.LowerBound).
		Float64("outlier_upper", r.UpperBound)
}

// Clean はテーブルにクリーニングパイプラインを適用し、
// 数値のみのデータセットとレポートを返す。
//
// 入力テーブルは変更されない。モデリングに必要な列の値が数値として
// 解釈できない場合はParseErrorを返し、行をスキップしない。
func Clean(tbl *dataset.Table, cfg Config) (*dataset.Dataset, *Report, error) {
	if tbl == nil || tbl.NumRows() == 0 {
		return nil, nil, errors.NewModelError("cleaning.Clean", "empty table", errors.ErrEmptyData)
	}

	// ステップ1: 末尾の不正な列を削除した実効幅を決定する
	width := tbl.NumCols() - cfg.DropTrailing
	if width < 3 {
		return nil, nil, errors.NewValueError("cleaning.Clean", "not enough columns after dropping trailing columns")
	}
	header := tbl.Header[:width]

	dateIdx := indexOf(header, cfg.DateColumn)
	timeIdx := indexOf(header, cfg.TimeColumn)
	if dateIdx < 0 || timeIdx < 0 {
		return nil, nil, errors.NewValueError("cleaning.Clean", "date/time columns not found in header")
	}

	// 数値列の名前（日付・時刻を除く）
	var columns []string
	var colIdx []int
	for j := 0; j < width; j++ {
		if j == dateIdx || j == timeIdx {
			continue
		}
		columns = append(columns, header[j])
		colIdx = append(colIdx, j)
	}

	target := indexOf(columns, cfg.TargetColumn)
	if target < 0 {
		return nil, nil, errors.NewValueError("cleaning.Clean", "target column not found in header")
	}

	report := &Report{
		RowsIn:      tbl.NumRows(),
		Imputed:     make(map[string]int, len(columns)),
		ColumnMeans: make(map[string]float64, len(columns)),
	}

	// ステップ2・6: 数値への強制変換、および日付・時刻が欠損した行の削除。
	// データセット末尾の空行はここで落ちる。
	var rows [][]float64
	var dates, times []string
	for i, record := range tbl.Rows {
		rowNum := i + 2 // ヘッダ込みの1始まり行番号

		date := strings.TrimSpace(record[dateIdx])
		tm := strings.TrimSpace(record[timeIdx])
		if date == "" || tm == "" {
			report.RowsDropped++
			continue
		}

		row := make([]float64, len(colIdx))
		for k, j := range colIdx {
			raw := strings.TrimSpace(record[j])
			if raw == "" {
				// 値そのものが無い場合は欠損として扱い、補完に回す
				row[k] = math.NaN()
				continue
			}
			s := raw
			if strings.Contains(s, ",") {
				s = strings.ReplaceAll(s, ",", ".")
				report.CommaConverted++
			}
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, nil, errors.NewParseError("cleaning.Clean", rowNum, header[j], raw, "not a number")
			}
			row[k] = v
		}
		rows = append(rows, row)
		dates = append(dates, date)
		times = append(times, tm)
	}

	if len(rows) == 0 {
		return nil, nil, errors.NewModelError("cleaning.Clean", "no rows survived timestamp filtering", errors.ErrEmptyData)
	}

	if report.CommaConverted > 0 {
		errors.Warn(errors.NewDataConversionWarning("*", "decimal comma replaced with decimal point", report.CommaConverted))
	}

	// ステップ3: 単位補正。センチネル値は計測値ではないため補正しない
	// （補正するとステップ4で検出できなくなる）。
	for k, name := range columns {
		factor, ok := cfg.ScaleFactors[name]
		if !ok {
			continue
		}
		for _, row := range rows {
			if !math.IsNaN(row[k]) && row[k] != cfg.Sentinel {
				row[k] *= factor
			}
		}
	}

	// ステップ4: センチネル値を欠損値に置き換える
	for _, row := range rows {
		for k := range row {
			if row[k] == cfg.Sentinel {
				row[k] = math.NaN()
				report.SentinelValues++
			}
		}
	}

	// ステップ5: 列平均による補完。平均は外れ値除去の前、
	// 欠損していない観測のみから計算する。
	for k, name := range columns {
		var sum float64
		var n int
		for _, row := range rows {
			if !math.IsNaN(row[k]) {
				sum += row[k]
				n++
			}
		}
		if n == 0 {
			return nil, nil, errors.NewValueError("cleaning.Clean", "column "+name+" has no non-missing values to impute from")
		}
		mean := sum / float64(n)
		report.ColumnMeans[name] = mean

		for _, row := range rows {
			if math.IsNaN(row[k]) {
				row[k] = mean
				report.Imputed[name]++
			}
		}
	}

	// ステップ7: ターゲット列のみに対するIQR外れ値除去
	targetVals := make([]float64, len(rows))
	for i, row := range rows {
		targetVals[i] = row[target]
	}
	sort.Float64s(targetVals)

	q1 := stat.Quantile(0.25, stat.LinInterp, targetVals, nil)
	q3 := stat.Quantile(0.75, stat.LinInterp, targetVals, nil)
	iqr := q3 - q1

	report.LowerBound = q1 - cfg.IQRFactor*iqr
	report.UpperBound = q3 + cfg.IQRFactor*iqr

	if iqr == 0 {
		// 退化した分布: 境界は一点に収縮し、その値に一致する行だけが残る
		errors.Warn(errors.NewDegenerateDistributionWarning(cfg.TargetColumn, q1))
	}

	var kept []int
	for i, row := range rows {
		v := row[target]
		if v >= report.LowerBound && v <= report.UpperBound {
			kept = append(kept, i)
		}
	}
	report.OutliersRemoved = len(rows) - len(kept)
	report.RowsOut = len(kept)

	if len(kept) == 0 {
		return nil, nil, errors.NewModelError("cleaning.Clean", "no rows survived outlier filtering", errors.ErrEmptyData)
	}

	ds := buildDataset(columns, target, rows, dates, times, kept)
	return ds, report, nil
}

func buildDataset(columns []string, target int, rows [][]float64, dates, times []string, kept []int) *dataset.Dataset {
	data := make([]float64, 0, len(kept)*len(columns))
	outDates := make([]string, 0, len(kept))
	outTimes := make([]string, 0, len(kept))
	for _, i := range kept {
		data = append(data, rows[i]...)
		outDates = append(outDates, dates[i])
		outTimes = append(outTimes, times[i])
	}
	return &dataset.Dataset{
		Columns: columns,
		Dates:   outDates,
		Times:   outTimes,
		Data:    mat.NewDense(len(kept), len(columns), data),
		Target:  target,
	}
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}
