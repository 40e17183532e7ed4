package velo

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/scviz/singlecell-plotting/common"
	"github.com/scviz/singlecell-plotting/gp"
	"github.com/scviz/singlecell-plotting/model"
	"github.com/scviz/singlecell-plotting/utils"
)

type Mode string

const (
	ModeGP  Mode = "gp"
	ModeKRR Mode = "krr"
)

const minSmoothPoints = 3

// Options configures the consistency check. The zero value smooths with
// a Gaussian process over an RBF kernel at the default length scale.
type Options struct {
	Mode    Mode
	NPoints int

	// LengthScale configures the default RBF kernel when no expression
	// is given; 0 selects gp.DefaultLengthScale.
	LengthScale float64

	// KernelExpr and KernelParams override the default kernel. With
	// params but no expression, the table must hold exactly one entry
	// and its key is used as the expression.
	KernelExpr   string
	KernelParams gp.ParamTable

	Alpha  float64 // gp noise term, 0 defaults to std(y)
	Gamma  float64 // krr kernel width, 0 derives from the length scale
	Lambda float64 // krr ridge term, 0 defaults to 1
}

// GeneSeries is the raw per-gene input: expression and optionally
// velocity, both sampled against diffusion pseudotime.
type GeneSeries struct {
	Gene       string
	Pseudotime []float64
	Expression []float64
	Velocity   []float64 // optional, enables scoring
}

// GeneCurves is the render-ready per-gene output: the expression
// scatter, its smoothed curve, the curve's derivative on the smoothing
// grid, and (when velocity was supplied) the consistency score between
// the observed velocities and the derivative.
type GeneCurves struct {
	Gene     string
	Scatter  []model.Point
	Smooth   *model.SmoothCurve
	Gradient []float64
	Score    float64
	HasScore bool
}

// CheckConsistency smooths each gene's expression along pseudotime,
// differentiates the smoothed curve and scores the observed velocities
// against that theoretical derivative. Genes with too few positive
// expression values are skipped with a log entry; one bad gene never
// fails the rest.
func CheckConsistency(ctx context.Context, series []GeneSeries, opts Options) ([]GeneCurves, error) {
	logger := utils.GetLogger(ctx)

	defer func() {
		if err := recover(); err != nil {
			logger.Error("CheckConsistency recover panic error!", zap.Any("err", err),
				zap.String("panic info", utils.GetPanicInfo()))
		}
	}()

	kernel, err := composeKernel(opts)
	if err != nil {
		return nil, err
	}

	var results []GeneCurves
	for _, gene := range series {
		curves, err := checkGene(ctx, gene, kernel, opts)
		if err != nil {
			logger.Error("skipping gene", zap.String("gene", gene.Gene), zap.Error(err))
			continue
		}
		results = append(results, curves)
	}
	return results, nil
}

func composeKernel(opts Options) (gp.Kernel, error) {
	if opts.Mode == ModeKRR {
		// krr smoothing carries its own rbf width
		return nil, nil
	}

	expr := opts.KernelExpr
	table := opts.KernelParams
	if table == nil {
		lengthScale := opts.LengthScale
		if lengthScale <= 0 {
			lengthScale = gp.DefaultLengthScale
		}
		table = gp.ParamTable{"k": {"length_scale": lengthScale}}
		if expr == "" {
			expr = "k"
		}
	}
	if expr == "" {
		if len(table) != 1 {
			return nil, fmt.Errorf("%w: no kernel expression and %v parameter sets to choose from",
				common.ErrorInvalidValue, len(table))
		}
		for name := range table {
			expr = name
		}
	}
	return gp.Compose(expr, table, gp.Options{})
}

func checkGene(ctx context.Context, gene GeneSeries, kernel gp.Kernel, opts Options) (GeneCurves, error) {
	if len(gene.Pseudotime) != len(gene.Expression) {
		return GeneCurves{}, fmt.Errorf("%w: %v pseudotime values for %v expression values",
			common.ErrorInvalidValue, len(gene.Pseudotime), len(gene.Expression))
	}

	// exclude dropouts before smoothing, keep them in the scatter
	var xs, ys []float64
	scatter := make([]model.Point, len(gene.Expression))
	for i, e := range gene.Expression {
		scatter[i] = model.Point{X: gene.Pseudotime[i], Y: e}
		if e > 0 {
			xs = append(xs, gene.Pseudotime[i])
			ys = append(ys, e)
		}
	}
	if len(xs) < minSmoothPoints {
		return GeneCurves{}, fmt.Errorf("%w: only %v positive expression values",
			common.ErrorInvalidValue, len(xs))
	}

	var smooth *model.SmoothCurve
	var err error
	if opts.Mode == ModeKRR {
		smooth, err = gp.SmoothKRR(ctx, xs, ys, opts.Gamma, opts.Lambda, opts.NPoints)
	} else {
		smooth, err = gp.SmoothGP(ctx, xs, ys, kernel, opts.Alpha, opts.NPoints)
	}
	if err != nil {
		return GeneCurves{}, err
	}

	var spacing float64
	if len(smooth.Grid) > 1 {
		spacing = smooth.Grid[1] - smooth.Grid[0]
	}
	gradient := Gradient(smooth.Mean, spacing)

	curves := GeneCurves{
		Gene:     gene.Gene,
		Scatter:  scatter,
		Smooth:   smooth,
		Gradient: gradient,
	}

	if len(gene.Velocity) == len(gene.Pseudotime) && len(gene.Velocity) > 0 {
		observed := make([]model.Point, len(gene.Velocity))
		for i := range gene.Velocity {
			observed[i] = model.Point{X: gene.Pseudotime[i], Y: gene.Velocity[i]}
		}
		theoretical := make([]model.Point, len(smooth.Grid))
		for i := range smooth.Grid {
			theoretical[i] = model.Point{X: smooth.Grid[i], Y: gradient[i]}
		}

		score, err := CurveDistance(observed, theoretical, curveWeights(smooth.Variance))
		if err != nil {
			return GeneCurves{}, err
		}
		curves.Score = score
		curves.HasScore = true
	}

	return curves, nil
}

// curveWeights turns smoothing variance into normalized inverse-stddev
// weights. Nil when the smoother produced no variance.
func curveWeights(variance []float64) []float64 {
	if len(variance) == 0 {
		return nil
	}
	weights := make([]float64, len(variance))
	var total float64
	for i, v := range variance {
		w := 1.0
		if v > 0 {
			w = 1 / math.Sqrt(v)
		}
		weights[i] = w
		total += w
	}
	if total == 0 {
		return nil
	}
	for i := range weights {
		weights[i] /= total
	}
	return weights
}
