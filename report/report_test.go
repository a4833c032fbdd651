package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/aeroml/cleaning"
	"github.com/YuminosukeSato/aeroml/metrics"
	"github.com/YuminosukeSato/aeroml/regress"
)

func sampleCurves() []*regress.RMSEPCurve {
	return []*regress.RMSEPCurve{
		{
			Method: "PCR",
			Points: []regress.CurvePoint{{K: 1, RMSEP: 3.2}, {K: 2, RMSEP: 1.1}, {K: 3, RMSEP: 1.05}},
		},
		{
			Method: "PLS",
			Points: []regress.CurvePoint{{K: 1, RMSEP: 2.4}, {K: 2, RMSEP: 1.0}, {K: 3, RMSEP: 0.98}},
		},
	}
}

func TestWriteReport(t *testing.T) {
	var buf bytes.Buffer

	s := Summary{
		Cleaning: &cleaning.Report{
			RowsIn:          9471,
			RowsOut:         9000,
			RowsDropped:     471,
			SentinelValues:  1200,
			OutliersRemoved: 80,
			LowerBound:      -2.5,
			UpperBound:      35.0,
		},
		Curves: sampleCurves(),
		Evaluations: []metrics.Evaluation{
			{Method: "PCR", Components: 2, RMSE: 1.12, R2: 0.91},
			{Method: "PLS", Components: 2, RMSE: 1.02, R2: 0.93},
		},
	}

	require.NoError(t, Write(&buf, s))
	out := buf.String()

	assert.Contains(t, out, "rows in / out:    9471 / 9000 (471 dropped)")
	assert.Contains(t, out, "outliers removed: 80")
	assert.Contains(t, out, "PCR cross-validation")
	assert.Contains(t, out, "PLS cross-validation")
	assert.Contains(t, out, "Test-set evaluation")
	assert.Contains(t, out, "0.910000")
	assert.Contains(t, out, "0.930000")
}

func TestWriteReportElbowMatchesCurve(t *testing.T) {
	var buf bytes.Buffer
	curves := sampleCurves()

	require.NoError(t, Write(&buf, Summary{Curves: curves}))

	// the printed suggestion must come from the same tolerance the
	// command line tool uses
	for _, curve := range curves {
		want := fmt.Sprintf("%s cross-validation (suggested elbow: %d components)",
			curve.Method, curve.Elbow(regress.DefaultElbowTol))
		assert.Contains(t, buf.String(), want)
	}
}

func TestWriteReportWithoutCleaning(t *testing.T) {
	var buf bytes.Buffer
	s := Summary{Curves: sampleCurves()}

	require.NoError(t, Write(&buf, s))
	assert.NotContains(t, buf.String(), "Cleaning")
	assert.Contains(t, buf.String(), "RMSEP")
}

func TestWriteReportEmptyCurve(t *testing.T) {
	var buf bytes.Buffer
	s := Summary{Curves: []*regress.RMSEPCurve{{Method: "PCR"}}}

	assert.Error(t, Write(&buf, s))
}

func TestPlotRMSEP(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rmsep.png")

	require.NoError(t, PlotRMSEP(sampleCurves(), path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestPlotRMSEPNoCurves(t *testing.T) {
	assert.Error(t, PlotRMSEP(nil, filepath.Join(t.TempDir(), "empty.png")))
}
