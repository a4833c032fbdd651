package report

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/aeroml/pkg/errors"
	"github.com/YuminosukeSato/aeroml/regress"
)

// PlotRMSEP writes a line chart of RMSEP against component count to path,
// one line per method. The file format follows the path extension
// (.png, .svg, .pdf).
func PlotRMSEP(curves []*regress.RMSEPCurve, path string) error {
	if len(curves) == 0 {
		return errors.NewValueError("report.PlotRMSEP", "no curves to plot")
	}

	p := plot.New()
	p.Title.Text = "Cross-validated prediction error"
	p.X.Label.Text = "Components"
	p.Y.Label.Text = "RMSEP"

	for i, curve := range curves {
		xys := make(plotter.XYs, len(curve.Points))
		for j, pt := range curve.Points {
			xys[j] = plotter.XY{X: float64(pt.K), Y: pt.RMSEP}
		}

		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return errors.Wrap(err, "report.PlotRMSEP")
		}
		line.Color = plotutil.Color(i)
		points.Color = plotutil.Color(i)
		points.Shape = plotutil.Shape(i)

		p.Add(line, points)
		p.Legend.Add(curve.Method, line, points)
	}
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.NewIOError("report.PlotRMSEP", path, err)
	}
	return nil
}
