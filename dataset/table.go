// Package dataset はデータの読み込みと、訓練・テスト分割および
// K-分割交差検証のための再現可能な分割を提供します。
package dataset

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/YuminosukeSato/aeroml/pkg/errors"
)

// Table はローダーの出力となる生のテーブルです。
// 全てのセルは未変換の文字列であり、型変換はCleanerの責務です。
type Table struct {
	// Header は1行目から読み取った列名
	Header []string

	// Rows はヘッダを除く全ての行。各行の幅はHeaderと一致する。
	Rows [][]string
}

// NumRows は行数を返す
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// NumCols は列数を返す
func (t *Table) NumCols() int {
	return len(t.Header)
}

// Load は区切り文字付きテキストファイルをTableに読み込む。
//
// ファイルが開けない場合はIOError、行の幅がヘッダと一致しない場合は
// ParseErrorを返す。行のスキップは行わない（致命的エラー）。
//
// パラメータ:
//   - path: 入力ファイルのパス
//   - delim: フィールド区切り文字（UCI Air Qualityデータセットでは ';'）
func Load(path string, delim rune) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIOError("dataset.Load", path, err)
	}
	defer func() { _ = f.Close() }()

	return Read(f, path, delim)
}

// Read はReaderからTableを読み込む。pathはエラーメッセージ用の表示名。
func Read(r io.Reader, path string, delim rune) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = delim
	// 最初の行が列数を確定し、以降の行はそれと一致しなければならない
	cr.FieldsPerRecord = 0

	var header []string
	var rows [][]string

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var csvErr *csv.ParseError
			if errors.As(err, &csvErr) {
				return nil, errors.NewParseError("dataset.Load", csvErr.Line, "", "",
					csvErr.Err.Error())
			}
			return nil, errors.NewIOError("dataset.Load", path, err)
		}

		if header == nil {
			header = record
			continue
		}
		rows = append(rows, record)
	}

	if header == nil {
		return nil, errors.NewParseError("dataset.Load", 1, "", "", "file contains no header row")
	}

	return &Table{Header: header, Rows: rows}, nil
}
