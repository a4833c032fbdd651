// Command aeroml runs the full air-quality modeling pipeline: load the raw
// sensor CSV, clean it, split into train and test sets, cross-validate PCR
// and PLS over a range of component counts, then fit both models at the
// chosen counts and evaluate them on the held-out test set.
//
// Component counts are picked by the analyst from the printed RMSEP curves;
// the -pcr-k and -pls-k flags pass the choice in, and the logged elbow
// suggestion is advisory only.
package main

import (
	"flag"
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/aeroml/cleaning"
	"github.com/YuminosukeSato/aeroml/core/model"
	"github.com/YuminosukeSato/aeroml/dataset"
	"github.com/YuminosukeSato/aeroml/metrics"
	"github.com/YuminosukeSato/aeroml/pkg/log"
	"github.com/YuminosukeSato/aeroml/regress"
	"github.com/YuminosukeSato/aeroml/report"
)

type options struct {
	input     string
	delimiter string
	target    string
	seed      uint64
	trainFrac float64
	folds     int
	minK      int
	maxK      int
	pcrK      int
	plsK      int
	plotPath  string
	logLevel  string
}

func parseFlags() options {
	var opts options
	flag.StringVar(&opts.input, "input", "AirQualityUCI.csv", "path to the raw sensor CSV")
	flag.StringVar(&opts.delimiter, "delimiter", ";", "CSV field delimiter")
	flag.StringVar(&opts.target, "target", "C6H6(GT)", "target column name")
	flag.Uint64Var(&opts.seed, "seed", 42, "random seed for the train/test split and fold shuffle")
	flag.Float64Var(&opts.trainFrac, "train-frac", 0.75, "fraction of rows used for training")
	flag.IntVar(&opts.folds, "folds", 10, "number of cross-validation folds")
	flag.IntVar(&opts.minK, "min-k", 1, "smallest candidate component count")
	flag.IntVar(&opts.maxK, "max-k", 0, "largest candidate component count (0 = number of predictors)")
	flag.IntVar(&opts.pcrK, "pcr-k", 0, "PCR component count for the final fit (0 = use the elbow suggestion)")
	flag.IntVar(&opts.plsK, "pls-k", 0, "PLS component count for the final fit (0 = use the elbow suggestion)")
	flag.StringVar(&opts.plotPath, "plot", "", "write an RMSEP chart to this path (.png/.svg/.pdf); empty disables")
	flag.StringVar(&opts.logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	flag.Parse()
	return opts
}

func main() {
	opts := parseFlags()
	log.SetLogger(log.NewConsoleLogger(os.Stderr, log.ToLevel(opts.logLevel)))

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "aeroml: %+v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	logger := log.Logger()

	delim := ';'
	if opts.delimiter != "" {
		delim = rune(opts.delimiter[0])
	}

	tbl, err := dataset.Load(opts.input, delim)
	if err != nil {
		return err
	}
	logger.Info().
		Int(log.RowsKey, tbl.NumRows()).
		Int(log.ColsKey, tbl.NumCols()).
		Msg("loaded raw table")

	cfg := cleaning.DefaultConfig()
	cfg.TargetColumn = opts.target
	ds, cleanRep, err := cleaning.Clean(tbl, cfg)
	if err != nil {
		return err
	}
	logger.Info().
		Str(log.TargetKey, ds.TargetName()).
		Object("cleaning", cleanRep).
		Msg("cleaned dataset")

	train, test, err := dataset.TrainTestSplit(ds, opts.trainFrac, opts.seed)
	if err != nil {
		return err
	}
	logger.Info().
		Uint64(log.SeedKey, opts.seed).
		Int("train_rows", train.NumRows()).
		Int("test_rows", test.NumRows()).
		Msg("split dataset")

	Xtrain, ytrain := train.XY()
	Xtest, ytest := test.XY()

	maxK := opts.maxK
	if _, c := Xtrain.Dims(); maxK < 1 || maxK > c {
		maxK = c
	}
	ks := regress.ComponentRange(opts.minK, maxK)
	kf := dataset.NewKFold(opts.folds, true, opts.seed)

	curves := make([]*regress.RMSEPCurve, 0, 2)
	evals := make([]metrics.Evaluation, 0, 2)

	models := []struct {
		method  string
		factory regress.Factory
		chosenK int
	}{
		{"PCR", func(k int) model.ComponentModel { return regress.NewPCR(k) }, opts.pcrK},
		{"PLS", func(k int) model.ComponentModel { return regress.NewPLS(k) }, opts.plsK},
	}

	for _, m := range models {
		curve, err := regress.CrossValidate(m.method, m.factory, Xtrain, ytrain, ks, kf)
		if err != nil {
			return err
		}
		curves = append(curves, curve)

		k := m.chosenK
		suggestion := curve.Elbow(regress.DefaultElbowTol)
		if k < 1 {
			k = suggestion
		}
		logger.Info().
			Str(log.MethodKey, m.method).
			Int(log.ComponentsKey, k).
			Int("elbow_suggestion", suggestion).
			Msg("selected component count")

		ev, err := fitAndEvaluate(m.method, m.factory, k, Xtrain, ytrain, Xtest, ytest)
		if err != nil {
			return err
		}
		logger.Info().
			Str(log.MethodKey, ev.Method).
			Int(log.ComponentsKey, ev.Components).
			Float64(log.RMSEKey, ev.RMSE).
			Float64(log.R2Key, ev.R2).
			Msg("evaluated on test set")
		evals = append(evals, ev)
	}

	if opts.plotPath != "" {
		if err := report.PlotRMSEP(curves, opts.plotPath); err != nil {
			return err
		}
		logger.Info().Str("path", opts.plotPath).Msg("wrote RMSEP chart")
	}

	return report.Write(os.Stdout, report.Summary{
		Cleaning:    cleanRep,
		Curves:      curves,
		Evaluations: evals,
	})
}

func fitAndEvaluate(method string, factory regress.Factory, k int, Xtrain *mat.Dense, ytrain *mat.VecDense, Xtest *mat.Dense, ytest *mat.VecDense) (metrics.Evaluation, error) {
	m := factory(k)
	if err := m.Fit(Xtrain, ytrain); err != nil {
		return metrics.Evaluation{}, err
	}
	return metrics.Evaluate(method, m, Xtest, ytest)
}
