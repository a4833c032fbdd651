// Package log defines standard attribute keys for pipeline operations.
//
// This file contains predefined attribute keys that provide consistency
// across all logging in aeroml. Using these standard keys enables
// structured analysis of pipeline runs: which stage ran, how many rows
// survived cleaning, which component count was evaluated, and so on.
//
// The keys follow a hierarchical naming convention (e.g. "data.rows",
// "model.method") to enable filtering in structured log processors.

package log

// Pipeline and Operation Context
const (
	// StageKey identifies the pipeline stage emitting the event.
	// Standard values: "load", "clean", "split", "train", "evaluate", "report"
	StageKey = "pipeline.stage"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "transform", "cross_validate"
	OperationKey = "ml.operation"

	// MethodKey identifies the regression technique.
	// Standard values: "PCR", "PLS"
	MethodKey = "model.method"

	// ComponentsKey is the number of latent components in use.
	ComponentsKey = "model.components"
)

// Data Shape and Characteristics
const (
	// RowsKey is the number of observations in the data being processed.
	RowsKey = "data.rows"

	// ColsKey is the number of columns (predictors plus target).
	ColsKey = "data.cols"

	// TargetKey names the target column.
	TargetKey = "data.target"

	// ImputedKey is the number of values replaced by mean imputation.
	ImputedKey = "clean.imputed"

	// OutliersKey is the number of rows removed by the IQR filter.
	OutliersKey = "clean.outliers_removed"

	// DroppedKey is the number of rows dropped for missing timestamps.
	DroppedKey = "clean.rows_dropped"
)

// Evaluation Metrics
const (
	// RMSEKey is the root mean squared error on the evaluated set.
	RMSEKey = "metric.rmse"

	// RMSEPKey is the cross-validated root mean squared error of prediction.
	RMSEPKey = "metric.rmsep"

	// R2Key is the coefficient of determination.
	R2Key = "metric.r2"

	// FoldKey is the cross-validation fold index.
	FoldKey = "cv.fold"

	// SeedKey is the random seed governing splits.
	SeedKey = "random.seed"
)
