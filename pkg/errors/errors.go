// Package errors はパイプライン全体のエラーハンドリングと警告システムを提供します。
// バッチ処理は部分的な結果を持たないため、ここで定義されるエラーはすべて致命的であり、
// 呼び出し元まで伝播して実行を終了させます。
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	グローバル警告ハンドリング
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// デフォルトのハンドラは標準エラー出力にログを出す
		log.Printf("aeroml-Warning: %v\n", w)
	}
)

// SetWarningHandler はライブラリ全体の警告ハンドラを設定します。
// 警告はエラーと異なり実行を止めません。デフォルトでは標準エラーに出力されます。
//
// 例:
//
//	errors.SetWarningHandler(func(w error) {
//	    // 警告を無視する
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// Warn は警告を発生させます。
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	警告型
//
// ===========================================================================

// DegenerateDistributionWarning は分布が退化している（IQRがゼロなど）場合に
// 発生する警告です。外れ値フィルタの境界が一点に収縮したことを通知します。
type DegenerateDistributionWarning struct {
	Field string
	Value float64
}

func (w *DegenerateDistributionWarning) Error() string {
	return fmt.Sprintf("field %q has a degenerate distribution: IQR is zero, outlier bounds collapse to %g (only exact matches are kept)", w.Field, w.Value)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *DegenerateDistributionWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("field", w.Field).
		Float64("value", w.Value).
		Str("type", "DegenerateDistributionWarning")
}

// NewDegenerateDistributionWarning は新しいDegenerateDistributionWarningを作成します。
func NewDegenerateDistributionWarning(field string, value float64) *DegenerateDistributionWarning {
	return &DegenerateDistributionWarning{Field: field, Value: value}
}

// DataConversionWarning はデータが暗黙的に変換された場合に発生する警告です。
// 例えば、小数点コンマ形式の数値を小数点ピリオド形式に変換した場合など。
type DataConversionWarning struct {
	Field  string
	Reason string
	Count  int
}

func (w *DataConversionWarning) Error() string {
	return fmt.Sprintf("%d value(s) in field %q converted: %s", w.Count, w.Field, w.Reason)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *DataConversionWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("field", w.Field).
		Str("reason", w.Reason).
		Int("count", w.Count).
		Str("type", "DataConversionWarning")
}

// NewDataConversionWarning は新しいDataConversionWarningを作成します。
func NewDataConversionWarning(field, reason string, count int) *DataConversionWarning {
	return &DataConversionWarning{Field: field, Reason: reason, Count: count}
}

// ===========================================================================
//
//	構造化されたエラー型
//
// ===========================================================================

// IOError は入力ファイルが読み取れない場合のエラーです。
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("aeroml: %s: cannot read %q: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *IOError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("path", e.Path).
		AnErr("cause", e.Err).
		Str("type", "IOError")
}

// NewIOError は新しいIOErrorを作成し、スタックトレースを付与します。
func NewIOError(op, path string, err error) error {
	ioErr := &IOError{Op: op, Path: path, Err: err}
	return errors.WithStack(ioErr)
}

// ParseError は行または値が不正な形式の場合のエラーです。
// 必須フィールドについては回復不能であり、行をスキップせずに処理を中断します。
type ParseError struct {
	Op     string
	Row    int // 1始まりの行番号（ヘッダを含む）
	Column string
	Value  string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("aeroml: %s: row %d, column %q: cannot parse %q: %s", e.Op, e.Row, e.Column, e.Value, e.Reason)
	}
	return fmt.Sprintf("aeroml: %s: row %d: %s", e.Op, e.Row, e.Reason)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ParseError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("row", e.Row).
		Str("column", e.Column).
		Str("value", e.Value).
		Str("reason", e.Reason).
		Str("type", "ParseError")
}

// NewParseError は新しいParseErrorを作成し、スタックトレースを付与します。
func NewParseError(op string, row int, column, value, reason string) error {
	parseErr := &ParseError{Op: op, Row: row, Column: column, Value: value, Reason: reason}
	return errors.WithStack(parseErr)
}

// SingularMatrixError は予測子の共分散が許容誤差を超えてランク落ちしており、
// モデルの当てはめが実行できない場合のエラーです。
type SingularMatrixError struct {
	Op   string
	Rows int
	Cols int
}

func (e *SingularMatrixError) Error() string {
	return fmt.Sprintf("aeroml: %s: matrix is singular beyond recoverable tolerance (%d rows × %d cols)", e.Op, e.Rows, e.Cols)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *SingularMatrixError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("rows", e.Rows).
		Int("cols", e.Cols).
		Str("type", "SingularMatrixError")
}

// NewSingularMatrixError は新しいSingularMatrixErrorを作成し、スタックトレースを付与します。
func NewSingularMatrixError(op string, rows, cols int) error {
	err := &SingularMatrixError{Op: op, Rows: rows, Cols: cols}
	return errors.WithStack(err)
}

// InsufficientDataError は観測数がモデルの当てはめに必要な数を下回る場合のエラーです。
type InsufficientDataError struct {
	Op   string
	Rows int
	Cols int
	Need int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("aeroml: %s: insufficient data: %d rows × %d cols, need at least %d rows", e.Op, e.Rows, e.Cols, e.Need)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *InsufficientDataError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("rows", e.Rows).
		Int("cols", e.Cols).
		Int("need", e.Need).
		Str("type", "InsufficientDataError")
}

// NewInsufficientDataError は新しいInsufficientDataErrorを作成し、スタックトレースを付与します。
func NewInsufficientDataError(op string, rows, cols, need int) error {
	err := &InsufficientDataError{Op: op, Rows: rows, Cols: cols, Need: need}
	return errors.WithStack(err)
}

// NotFittedError はモデルが未学習の状態で `Predict` や `Transform` を呼び出した場合のエラーです。
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("aeroml: %s: this model is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError は新しいNotFittedErrorを作成し、スタックトレースを付与します。
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// DimensionError は入力データの次元が期待値と異なる場合のエラーです。
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) Error() string {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("aeroml: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", axisName).
		Str("type", "DimensionError")
}

// NewDimensionError は新しいDimensionErrorを作成し、スタックトレースを付与します。
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValueError は引数の値が不適切または不正な場合に発生するエラーです。
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("aeroml: %s: %s", e.Op, e.Message)
}

// NewValueError は新しいValueErrorを作成し、スタックトレースを付与します。
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ModelError は回帰モデルに関する一般的なエラーです。
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("aeroml: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("aeroml: %s: %s", e.Op, e.Kind)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// NewModelError は新しいModelErrorを作成し、スタックトレースを付与します。
func NewModelError(op, kind string, err error) error {
	modelErr := &ModelError{Op: op, Kind: kind, Err: err}
	return errors.WithStack(modelErr)
}

// ===========================================================================
//
//	cockroachdb/errors ラッパー関数
//
// ===========================================================================

// Is はエラーが特定のターゲットエラーかどうかを判定します。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As はエラーが特定の型にキャスト可能かどうかを判定します。
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap は既存のエラーをメッセージ付きでラップします。
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf は既存のエラーをフォーマット文字列でラップします。
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New は新しいエラーを作成します。
func New(message string) error {
	return errors.New(message)
}

// Newf は新しいフォーマット済みエラーを作成します。
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack はエラーにスタックトレースを付与します。
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	共通エラー変数
//
// ===========================================================================

var (
	// ErrEmptyData は空のデータが渡された場合のエラーです。
	ErrEmptyData = New("empty data")

	// ErrSingularMatrix は特異行列の場合のエラーです。
	ErrSingularMatrix = New("singular matrix")
)
