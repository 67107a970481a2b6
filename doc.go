// Package lvstat is a regression toolkit over a small dense linear-algebra
// core, reproducing R's lm/glm numerics.
//
// What is inside?
//
//	A pure-Go, context-free library that brings together:
//		• Dense matrices: row-major storage, bounds-checked access, algebra kernels
//		• Least squares: Householder QR with a Jacobi-eigen pseudoinverse fallback
//		• Linear models: OLS fit, t-tests, F-test, R², confidence intervals, ANOVA
//		• Generalized linear models: IRWLS over Gaussian, Binomial, Poisson and Gamma
//		• Influence diagnostics: leverage, Cook's distance, DFFITS, DFBETAS
//
// Packages, leaf to root:
//
//	matrix/        Dense, kernels, QR, BackSolve, LeastSquares, PseudoSolve, Eigen, Inverse
//	dist/          t, F, chi-squared and normal tails; log-densities for AIC
//	design/        missing-value filtering, intercept column, coefficient names
//	family/        exponential families and their links
//	lm/            ordinary least squares
//	glm/           iteratively reweighted least squares
//	diagnostics/   per-observation influence measures and flags
//	config/        YAML model configuration converted to fit options
//
// Quick example:
//
//	x := []float64{1, 2, 3, 4, 5}
//	y := []float64{1, 3, 2, 5, 4}
//	m, err := lm.Fit(y, [][]float64{x})
//	// m.Coefficients ≈ [0.6 0.8], m.RSquared = 0.64
//
// Every fit is synchronous and owns its allocations, so independent fits may
// run on separate goroutines; lm.Anova does exactly that.
//
//	go get github.com/katalvlaran/lvstat
package lvstat
