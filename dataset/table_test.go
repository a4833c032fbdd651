package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/aeroml/pkg/errors"
)

const sampleCSV = `Date;Time;CO(GT);C6H6(GT);RH;;
10/03/2004;18.00.00;2,6;11,9;48,9;;
10/03/2004;19.00.00;2;9,4;47,7;;
10/03/2004;20.00.00;2,2;9,0;54,0;;
`

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "air.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("semicolon delimited file", func(t *testing.T) {
		tbl, err := Load(writeTempCSV(t, sampleCSV), ';')
		require.NoError(t, err)

		assert.Equal(t, 7, tbl.NumCols())
		assert.Equal(t, 3, tbl.NumRows())
		assert.Equal(t, "C6H6(GT)", tbl.Header[3])
		// 値は未変換の文字列のまま（小数点コンマを含む）
		assert.Equal(t, "11,9", tbl.Rows[0][3])
	})

	t.Run("missing file is an IOError", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.csv"), ';')
		require.Error(t, err)

		var ioErr *errors.IOError
		assert.True(t, errors.As(err, &ioErr))
	})

	t.Run("inconsistent row width is a ParseError", func(t *testing.T) {
		bad := "a;b;c\n1;2;3\n1;2\n"
		_, err := Load(writeTempCSV(t, bad), ';')
		require.Error(t, err)

		var parseErr *errors.ParseError
		require.True(t, errors.As(err, &parseErr))
		assert.Equal(t, 3, parseErr.Row)
	})

	t.Run("empty file is a ParseError", func(t *testing.T) {
		_, err := Load(writeTempCSV(t, ""), ';')
		require.Error(t, err)

		var parseErr *errors.ParseError
		assert.True(t, errors.As(err, &parseErr))
	})
}

func TestRead(t *testing.T) {
	tbl, err := Read(strings.NewReader(sampleCSV), "inline", ';')
	require.NoError(t, err)
	assert.Len(t, tbl.Rows, 3)
	// 末尾の不正な2列も幅が揃っている限りそのまま読み込まれる
	assert.Equal(t, "", tbl.Rows[0][5])
	assert.Equal(t, "", tbl.Rows[0][6])
}
