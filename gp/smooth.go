package gp

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/scviz/singlecell-plotting/common"
	"github.com/scviz/singlecell-plotting/model"
	"github.com/scviz/singlecell-plotting/utils"
)

// SmoothGP fits a Gaussian-process regression of y on x with the given
// kernel and predicts mean and variance on an nPoints grid over [0, 1].
// alpha is the noise term added to the kernel matrix diagonal; pass 0
// to default it to the standard deviation of y.
func SmoothGP(ctx context.Context, x, y []float64, kernel Kernel, alpha float64, nPoints int) (*model.SmoothCurve, error) {
	if err := checkTraining(x, y); err != nil {
		return nil, err
	}
	if kernel == nil {
		return nil, fmt.Errorf("%w: nil kernel", common.ErrorInvalidValue)
	}
	if nPoints <= 0 {
		nPoints = DefaultSmoothPoints
	}
	if alpha <= 0 {
		alpha = stat.StdDev(y, nil)
		if alpha <= 0 || math.IsNaN(alpha) {
			alpha = 1e-10
		}
	}

	n := len(x)
	gram := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		xi := []float64{x[i]}
		for j := i; j < n; j++ {
			v := kernel.Eval(xi, []float64{x[j]})
			if i == j {
				v += alpha
			}
			gram.SetSym(i, j, v)
		}
	}

	var chol mat.Cholesky
	if !chol.Factorize(gram) {
		return nil, fmt.Errorf("%w: kernel matrix is not positive definite (kernel %s, alpha %v)",
			common.ErrorInvalidValue, kernel, alpha)
	}

	var weights mat.VecDense
	if err := chol.SolveVecTo(&weights, mat.NewVecDense(n, y)); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInvalidValue, err)
	}

	grid := utils.Linspace(0, 1, nPoints)
	mean := make([]float64, nPoints)
	variance := make([]float64, nPoints)

	cross := mat.NewVecDense(n, nil)
	var solved mat.VecDense
	for g := 0; g < nPoints; g++ {
		xg := []float64{grid[g]}
		for i := 0; i < n; i++ {
			cross.SetVec(i, kernel.Eval(xg, []float64{x[i]}))
		}
		mean[g] = mat.Dot(cross, &weights)

		if err := chol.SolveVecTo(&solved, cross); err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrorInvalidValue, err)
		}
		v := kernel.Eval(xg, xg) - mat.Dot(cross, &solved)
		if v < 0 {
			v = 0
		}
		variance[g] = v
	}

	return &model.SmoothCurve{Grid: grid, Mean: mean, Variance: variance}, nil
}

// SmoothKRR fits an RBF kernel-ridge regression of y on x and predicts
// on an nPoints grid over [0, 1]. gamma <= 0 defaults to
// 1/(2*DefaultLengthScale^2); lambda <= 0 defaults to 1. No variance is
// produced, only the mean curve.
func SmoothKRR(ctx context.Context, x, y []float64, gamma, lambda float64, nPoints int) (*model.SmoothCurve, error) {
	logger := utils.GetLogger(ctx)

	if err := checkTraining(x, y); err != nil {
		return nil, err
	}
	if nPoints <= 0 {
		nPoints = DefaultSmoothPoints
	}
	if gamma <= 0 {
		gamma = 1 / (2 * DefaultLengthScale * DefaultLengthScale)
		logger.Info("smoothing with KRR using the default length scale",
			zap.Float64("length_scale", DefaultLengthScale), zap.Float64("gamma", gamma))
	}
	if lambda <= 0 {
		lambda = 1
	}

	n := len(x)
	gram := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			d := x[i] - x[j]
			v := math.Exp(-gamma * d * d)
			if i == j {
				v += lambda
			}
			gram.SetSym(i, j, v)
		}
	}

	var chol mat.Cholesky
	if !chol.Factorize(gram) {
		return nil, fmt.Errorf("%w: ridge matrix is not positive definite (gamma %v, lambda %v)",
			common.ErrorInvalidValue, gamma, lambda)
	}

	var weights mat.VecDense
	if err := chol.SolveVecTo(&weights, mat.NewVecDense(n, y)); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInvalidValue, err)
	}

	grid := utils.Linspace(0, 1, nPoints)
	mean := make([]float64, nPoints)
	for g := 0; g < nPoints; g++ {
		var sum float64
		for i := 0; i < n; i++ {
			d := grid[g] - x[i]
			sum += math.Exp(-gamma*d*d) * weights.AtVec(i)
		}
		mean[g] = sum
	}

	return &model.SmoothCurve{Grid: grid, Mean: mean}, nil
}

func checkTraining(x, y []float64) error {
	if len(x) == 0 {
		return fmt.Errorf("%w: no training points", common.ErrorInvalidValue)
	}
	if len(x) != len(y) {
		return fmt.Errorf("%w: %v x values for %v y values", common.ErrorInvalidValue, len(x), len(y))
	}
	return nil
}
