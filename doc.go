// Package aeroml is a batch analysis toolkit for air-quality sensor data,
// built around two dimensionality-reduction regression techniques:
// Principal Component Regression (PCR) and Partial Least Squares
// Regression (PLS).
//
// The toolkit targets the UCI Air Quality dataset: a semicolon-delimited,
// decimal-comma CSV of hourly pollutant and meteorological readings, with
// benzene concentration (C6H6(GT)) as the prediction target.
//
// # Pipeline
//
// Processing is a strictly linear batch pipeline:
//
//	Loader → Cleaner → Splitter → Trainer → Evaluator
//
//   - dataset: delimited-file loading and reproducible train/test and
//     K-fold splitting
//   - cleaning: numeric coercion, sentinel replacement, mean imputation
//     and IQR outlier filtering
//   - preprocessing: train-set standardization
//   - regress: PCR and PLS fitting with cross-validated component-count
//     curves (RMSEP)
//   - metrics: RMSE, MAE and R² evaluation
//   - report: text reports and RMSEP curve plots
//
// Each stage consumes the previous stage's output as a value and returns
// a new value; no shared mutable state crosses stage boundaries.
//
// # Quick Start
//
//	tbl, err := dataset.Load("AirQualityUCI.csv", ';')
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ds, rep, err := cleaning.Clean(tbl, cleaning.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	train, test, err := dataset.TrainTestSplit(ds, 0.75, 42)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pcr := regress.NewPCR(6)
//	X, y := train.XY()
//	if err := pcr.Fit(X, y); err != nil {
//	    log.Fatal(err)
//	}
//
// # Component Selection
//
// The cross-validation layer exposes the full RMSEP-vs-component-count
// curve instead of auto-selecting a count. Elbow detection is provided
// as an advisory heuristic only; the final component count is a caller
// decision.
//
// # License
//
// aeroml is released under the MIT License.
package aeroml
