// Package regress implements the two dimensionality-reduction regression
// techniques used for benzene prediction: Principal Component Regression
// (PCR) and Partial Least Squares Regression (PLS).
//
// Both models standardize the predictors internally using statistics
// computed from the training set only, so predictions are invariant under
// affine rescaling of the inputs:
//   - PCR extracts orthogonal components ordered by variance explained in
//     the predictor block (via SVD of the standardized predictors) and
//     regresses the target on the leading K components with OLS.
//   - PLS extracts K latent components that maximize covariance between
//     predictor combinations and the target (NIPALS with deflation of
//     both blocks).
//
// # Basic Usage
//
//	pcr := regress.NewPCR(6)
//	if err := pcr.Fit(XTrain, yTrain); err != nil {
//	    log.Fatal(err)
//	}
//	pred, _ := pcr.Predict(XTest)
//
// # Component Selection
//
// CrossValidate runs K-fold cross-validation across a range of candidate
// component counts and returns the full RMSEP curve. The curve is data,
// not a decision: the elbow point where improvement becomes marginal is a
// judgment call, so the final component count stays a caller input.
// RMSEPCurve.Elbow implements the marginal-improvement heuristic as an
// advisory suggestion only.
//
//	curve, err := regress.CrossValidate("PCR",
//	    func(k int) model.ComponentModel { return regress.NewPCR(k) },
//	    X, y, regress.ComponentRange(1, 13),
//	    dataset.NewKFold(10, true, 42))
package regress
