package gp_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scviz/singlecell-plotting/common"
	"github.com/scviz/singlecell-plotting/gp"
)

func TestRBF_Eval(t *testing.T) {
	k := &gp.RBF{LengthScale: 0.2}

	assert.InDelta(t, 1.0, k.Eval([]float64{0.5}, []float64{0.5}), 1e-12, "identical points")
	assert.InDelta(t, math.Exp(-0.01/(2*0.04)), k.Eval([]float64{0}, []float64{0.1}), 1e-12)
	assert.Equal(t, "RBF(length_scale=0.2)", k.String())
}

func TestWhiteKernel_Eval(t *testing.T) {
	k := &gp.WhiteKernel{NoiseLevel: 0.3}

	assert.Equal(t, 0.3, k.Eval([]float64{1, 2}, []float64{1, 2}))
	assert.Equal(t, 0.0, k.Eval([]float64{1, 2}, []float64{1, 2.5}))
}

func TestMatern_ClosedForms(t *testing.T) {
	x1, x2 := []float64{0}, []float64{0.4}
	r := 0.4 / 0.8

	half := &gp.Matern{LengthScale: 0.8, Nu: 0.5}
	assert.InDelta(t, math.Exp(-r), half.Eval(x1, x2), 1e-12)

	threeHalves := &gp.Matern{LengthScale: 0.8, Nu: 1.5}
	s := math.Sqrt(3) * r
	assert.InDelta(t, (1+s)*math.Exp(-s), threeHalves.Eval(x1, x2), 1e-12)

	fiveHalves := &gp.Matern{LengthScale: 0.8, Nu: 2.5}
	s = math.Sqrt(5) * r
	assert.InDelta(t, (1+s+s*s/3)*math.Exp(-s), fiveHalves.Eval(x1, x2), 1e-12)
}

func TestDotProduct_Eval(t *testing.T) {
	k := &gp.DotProduct{Sigma0: 2}
	assert.InDelta(t, 4+1*3+2*4, k.Eval([]float64{1, 2}, []float64{3, 4}), 1e-12)
}

func TestPairwise_Metrics(t *testing.T) {
	x1, x2 := []float64{1, 0}, []float64{0, 1}

	rbf := &gp.Pairwise{Metric: "rbf", Gamma: 0.5}
	assert.InDelta(t, math.Exp(-0.5*2), rbf.Eval(x1, x2), 1e-12)

	laplacian := &gp.Pairwise{Metric: "laplacian", Gamma: 0.5}
	assert.InDelta(t, math.Exp(-0.5*2), laplacian.Eval(x1, x2), 1e-12)

	linear := &gp.Pairwise{Metric: "linear"}
	assert.Equal(t, 0.0, linear.Eval(x1, x2))

	cosine := &gp.Pairwise{Metric: "cosine"}
	assert.InDelta(t, 0.0, cosine.Eval(x1, x2), 1e-12)
	assert.InDelta(t, 1.0, cosine.Eval(x1, x1), 1e-12)
}

func TestAlgebra_Eval(t *testing.T) {
	a := &gp.ConstantKernel{Value: 2}
	b := &gp.RBF{LengthScale: 1}
	x1, x2 := []float64{0}, []float64{1}
	rbf := b.Eval(x1, x2)

	sum := &gp.Sum{Left: a, Right: b}
	assert.InDelta(t, 2+rbf, sum.Eval(x1, x2), 1e-12)

	product := &gp.Product{Left: a, Right: b}
	assert.InDelta(t, 2*rbf, product.Eval(x1, x2), 1e-12)

	power := &gp.Power{Base: b, Exponent: 2}
	assert.InDelta(t, rbf*rbf, power.Eval(x1, x2), 1e-12)

	scaled := &gp.Scaled{Base: b, Factor: -1}
	assert.InDelta(t, -rbf, scaled.Eval(x1, x2), 1e-12)
}

func TestRegistry_ConstructorValidation(t *testing.T) {
	registry := gp.DefaultRegistry()

	_, err := registry[gp.KernelTypeRBF](gp.ParamSet{"length_scale": -1.0})
	assert.ErrorIs(t, err, common.ErrorInvalidValue, "negative length scale")

	_, err = registry[gp.KernelTypeRBF](gp.ParamSet{"lenght_scale": 0.2})
	assert.ErrorIs(t, err, common.ErrorInvalidValue, "misspelled option must be rejected")

	_, err = registry[gp.KernelTypeMatern](gp.ParamSet{"nu": 2.0})
	assert.ErrorIs(t, err, common.ErrorInvalidValue, "nu outside the closed-form cases")

	_, err = registry[gp.KernelTypePairwise](gp.ParamSet{"metric": "mahalanobis"})
	assert.ErrorIs(t, err, common.ErrorInvalidValue, "unknown pairwise metric")

	k, err := registry[gp.KernelTypeMatern](gp.ParamSet{"length_scale": 0.5, "nu": 2.5})
	require.NoError(t, err)
	assert.Equal(t, "Matern(length_scale=0.5, nu=2.5)", k.String())

	// int values coming from config decoders are accepted as numeric
	k, err = registry[gp.KernelTypeWhite](gp.ParamSet{"noise_level": 2})
	require.NoError(t, err)
	assert.Equal(t, 2.0, k.Eval([]float64{1}, []float64{1}))
}
