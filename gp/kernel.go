package gp

import (
	"fmt"
	"math"

	"github.com/scviz/singlecell-plotting/common"
)

// Kernel is a covariance function over input vectors. The evaluator in
// eval.go only relies on Eval plus the algebra in algebra.go, so any
// positive-semidefinite function of two points fits.
type Kernel interface {
	Eval(x1, x2 []float64) float64
	String() string
}

func sqDist(x1, x2 []float64) float64 {
	var sum float64
	for i := range x1 {
		d := x1[i] - x2[i]
		sum += d * d
	}
	return sum
}

func sameVector(x1, x2 []float64) bool {
	if len(x1) != len(x2) {
		return false
	}
	for i := range x1 {
		if x1[i] != x2[i] {
			return false
		}
	}
	return true
}

// ConstantKernel evaluates to a fixed value everywhere.
type ConstantKernel struct {
	Value float64
}

func (k *ConstantKernel) Eval(x1, x2 []float64) float64 { return k.Value }
func (k *ConstantKernel) String() string                { return fmt.Sprintf("%g", k.Value) }

// WhiteKernel contributes independent noise: noiseLevel on identical
// points, zero elsewhere.
type WhiteKernel struct {
	NoiseLevel float64
}

func (k *WhiteKernel) Eval(x1, x2 []float64) float64 {
	if sameVector(x1, x2) {
		return k.NoiseLevel
	}
	return 0
}

func (k *WhiteKernel) String() string {
	return fmt.Sprintf("White(noise_level=%g)", k.NoiseLevel)
}

// RBF is the radial-basis (squared exponential) kernel.
type RBF struct {
	LengthScale float64
}

func (k *RBF) Eval(x1, x2 []float64) float64 {
	return math.Exp(-sqDist(x1, x2) / (2 * k.LengthScale * k.LengthScale))
}

func (k *RBF) String() string {
	return fmt.Sprintf("RBF(length_scale=%g)", k.LengthScale)
}

// Matern kernel with smoothness nu restricted to the closed-form cases
// 0.5 (absolute exponential), 1.5 and 2.5.
type Matern struct {
	LengthScale float64
	Nu          float64
}

func (k *Matern) Eval(x1, x2 []float64) float64 {
	r := math.Sqrt(sqDist(x1, x2)) / k.LengthScale
	switch k.Nu {
	case 0.5:
		return math.Exp(-r)
	case 1.5:
		s := math.Sqrt(3) * r
		return (1 + s) * math.Exp(-s)
	default: // 2.5, enforced at construction
		s := math.Sqrt(5) * r
		return (1 + s + s*s/3) * math.Exp(-s)
	}
}

func (k *Matern) String() string {
	return fmt.Sprintf("Matern(length_scale=%g, nu=%g)", k.LengthScale, k.Nu)
}

// RationalQuadratic is a scale mixture of RBF kernels.
type RationalQuadratic struct {
	LengthScale float64
	Alpha       float64
}

func (k *RationalQuadratic) Eval(x1, x2 []float64) float64 {
	return math.Pow(1+sqDist(x1, x2)/(2*k.Alpha*k.LengthScale*k.LengthScale), -k.Alpha)
}

func (k *RationalQuadratic) String() string {
	return fmt.Sprintf("RationalQuadratic(length_scale=%g, alpha=%g)", k.LengthScale, k.Alpha)
}

// ExpSineSquared is the periodic kernel.
type ExpSineSquared struct {
	LengthScale float64
	Periodicity float64
}

func (k *ExpSineSquared) Eval(x1, x2 []float64) float64 {
	r := math.Sqrt(sqDist(x1, x2))
	s := math.Sin(math.Pi * r / k.Periodicity)
	return math.Exp(-2 * s * s / (k.LengthScale * k.LengthScale))
}

func (k *ExpSineSquared) String() string {
	return fmt.Sprintf("ExpSineSquared(length_scale=%g, periodicity=%g)", k.LengthScale, k.Periodicity)
}

// DotProduct is the non-stationary linear kernel sigma0^2 + x1.x2.
type DotProduct struct {
	Sigma0 float64
}

func (k *DotProduct) Eval(x1, x2 []float64) float64 {
	var dot float64
	for i := range x1 {
		dot += x1[i] * x2[i]
	}
	return k.Sigma0*k.Sigma0 + dot
}

func (k *DotProduct) String() string {
	return fmt.Sprintf("DotProduct(sigma_0=%g)", k.Sigma0)
}

// Pairwise wraps a generic pairwise metric selected by name.
type Pairwise struct {
	Metric string
	Gamma  float64
}

func (k *Pairwise) Eval(x1, x2 []float64) float64 {
	switch k.Metric {
	case "rbf":
		return math.Exp(-k.Gamma * sqDist(x1, x2))
	case "laplacian":
		var sum float64
		for i := range x1 {
			sum += math.Abs(x1[i] - x2[i])
		}
		return math.Exp(-k.Gamma * sum)
	case "linear":
		var dot float64
		for i := range x1 {
			dot += x1[i] * x2[i]
		}
		return dot
	default: // "cosine", enforced at construction
		var dot, n1, n2 float64
		for i := range x1 {
			dot += x1[i] * x2[i]
			n1 += x1[i] * x1[i]
			n2 += x2[i] * x2[i]
		}
		if n1 == 0 || n2 == 0 {
			return 0
		}
		return dot / math.Sqrt(n1*n2)
	}
}

func (k *Pairwise) String() string {
	return fmt.Sprintf("Pairwise(metric=%s, gamma=%g)", k.Metric, k.Gamma)
}

func validPairwiseMetric(metric string) error {
	switch metric {
	case "rbf", "laplacian", "linear", "cosine":
		return nil
	}
	return fmt.Errorf("%w: unknown pairwise metric %q", common.ErrorInvalidValue, metric)
}
