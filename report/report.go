// Package report renders cross-validation curves and test-set evaluations
// as plain text and as line charts.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/YuminosukeSato/aeroml/cleaning"
	"github.com/YuminosukeSato/aeroml/metrics"
	"github.com/YuminosukeSato/aeroml/pkg/errors"
	"github.com/YuminosukeSato/aeroml/regress"
)

// Summary collects everything one pipeline run produces.
type Summary struct {
	Cleaning    *cleaning.Report
	Curves      []*regress.RMSEPCurve
	Evaluations []metrics.Evaluation
}

// Write renders the summary as a plain-text report.
//
// The component-count tables list every candidate so the reader can judge
// the elbow of each curve; nothing here selects a count automatically.
func Write(w io.Writer, s Summary) error {
	if s.Cleaning != nil {
		fmt.Fprintf(w, "Cleaning\n")
		fmt.Fprintf(w, "  rows in / out:    %d / %d (%d dropped)\n",
			s.Cleaning.RowsIn, s.Cleaning.RowsOut, s.Cleaning.RowsDropped)
		fmt.Fprintf(w, "  sentinel values:  %d\n", s.Cleaning.SentinelValues)
		fmt.Fprintf(w, "  outliers removed: %d (target outside [%.4f, %.4f])\n",
			s.Cleaning.OutliersRemoved, s.Cleaning.LowerBound, s.Cleaning.UpperBound)
		fmt.Fprintln(w)
	}

	for _, curve := range s.Curves {
		if len(curve.Points) == 0 {
			return errors.NewValueError("report.Write", "empty RMSEP curve for "+curve.Method)
		}

		fmt.Fprintf(w, "%s cross-validation (suggested elbow: %d components)\n",
			curve.Method, curve.Elbow(regress.DefaultElbowTol))

		tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "  components\tRMSEP")
		for _, p := range curve.Points {
			fmt.Fprintf(tw, "  %d\t%.6f\n", p.K, p.RMSEP)
		}
		if err := tw.Flush(); err != nil {
			return errors.Wrap(err, "report.Write")
		}
		fmt.Fprintln(w)
	}

	if len(s.Evaluations) > 0 {
		fmt.Fprintf(w, "Test-set evaluation\n")
		tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "  method\tcomponents\tRMSE\tR²")
		for _, ev := range s.Evaluations {
			fmt.Fprintf(tw, "  %s\t%d\t%.6f\t%.6f\n", ev.Method, ev.Components, ev.RMSE, ev.R2)
		}
		if err := tw.Flush(); err != nil {
			return errors.Wrap(err, "report.Write")
		}
	}

	return nil
}
