package gp

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/scviz/singlecell-plotting/common"
)

// ParamSet holds constructor arguments for one kernel as parsed from
// caller configuration. The optional "type" entry selects the
// constructor (DefaultKernelType when absent); every other entry is
// forwarded to the constructor as a named option.
type ParamSet map[string]any

// ParamTable maps a kernel-expression identifier to its parameter set.
type ParamTable map[string]ParamSet

// Constructor builds a kernel from the non-"type" entries of a
// parameter set.
type Constructor func(params ParamSet) (Kernel, error)

// Registry maps a kernel-type name to its constructor. Callers may pass
// their own to Compose; DefaultRegistry covers the built-in kernels.
type Registry map[string]Constructor

func DefaultRegistry() Registry {
	return Registry{
		KernelTypeConstant:     newConstantKernel,
		KernelTypeWhite:        newWhiteKernel,
		KernelTypeRBF:          newRBFKernel,
		KernelTypeMatern:       newMaternKernel,
		KernelTypeRationalQuad: newRationalQuadraticKernel,
		KernelTypeExpSine:      newExpSineSquaredKernel,
		KernelTypeDotProduct:   newDotProductKernel,
		KernelTypePairwise:     newPairwiseKernel,
	}
}

// LoadParamTable parses a YAML kernel parameter table, e.g.
//
//	k:
//	  type: rbf
//	  length_scale: 0.2
//	noise:
//	  type: white
//	  noise_level: 0.05
func LoadParamTable(data []byte) (ParamTable, error) {
	var table ParamTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInvalidValue, err)
	}
	return table, nil
}

// paramReader pulls typed options out of a ParamSet and rejects the
// ones the constructor does not recognize.
type paramReader struct {
	kernelType string
	params     ParamSet
	seen       map[string]bool
	err        error
}

func newParamReader(kernelType string, params ParamSet) *paramReader {
	return &paramReader{
		kernelType: kernelType,
		params:     params,
		seen:       map[string]bool{},
	}
}

func (r *paramReader) Float(name string, def float64) float64 {
	r.seen[name] = true
	raw, ok := r.params[name]
	if !ok {
		return def
	}
	switch v := raw.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	if r.err == nil {
		r.err = fmt.Errorf("%w: option %q of kernel %q must be numeric, got %T",
			common.ErrorInvalidValue, name, r.kernelType, raw)
	}
	return def
}

func (r *paramReader) String(name string, def string) string {
	r.seen[name] = true
	raw, ok := r.params[name]
	if !ok {
		return def
	}
	if s, ok := raw.(string); ok {
		return s
	}
	if r.err == nil {
		r.err = fmt.Errorf("%w: option %q of kernel %q must be a string, got %T",
			common.ErrorInvalidValue, name, r.kernelType, raw)
	}
	return def
}

func (r *paramReader) Err() error {
	if r.err != nil {
		return r.err
	}
	for name := range r.params {
		if !r.seen[name] {
			return fmt.Errorf("%w: unknown option %q for kernel %q",
				common.ErrorInvalidValue, name, r.kernelType)
		}
	}
	return nil
}

func newConstantKernel(params ParamSet) (Kernel, error) {
	r := newParamReader(KernelTypeConstant, params)
	value := r.Float("constant_value", 1.0)
	if err := r.Err(); err != nil {
		return nil, err
	}
	return &ConstantKernel{Value: value}, nil
}

func newWhiteKernel(params ParamSet) (Kernel, error) {
	r := newParamReader(KernelTypeWhite, params)
	noise := r.Float("noise_level", 1.0)
	if err := r.Err(); err != nil {
		return nil, err
	}
	return &WhiteKernel{NoiseLevel: noise}, nil
}

func newRBFKernel(params ParamSet) (Kernel, error) {
	r := newParamReader(KernelTypeRBF, params)
	length := r.Float("length_scale", 1.0)
	if err := r.Err(); err != nil {
		return nil, err
	}
	if length <= 0 {
		return nil, fmt.Errorf("%w: length_scale must be positive, got %v", common.ErrorInvalidValue, length)
	}
	return &RBF{LengthScale: length}, nil
}

func newMaternKernel(params ParamSet) (Kernel, error) {
	r := newParamReader(KernelTypeMatern, params)
	length := r.Float("length_scale", 1.0)
	nu := r.Float("nu", 1.5)
	if err := r.Err(); err != nil {
		return nil, err
	}
	if length <= 0 {
		return nil, fmt.Errorf("%w: length_scale must be positive, got %v", common.ErrorInvalidValue, length)
	}
	if nu != 0.5 && nu != 1.5 && nu != 2.5 {
		return nil, fmt.Errorf("%w: nu must be one of 0.5, 1.5, 2.5, got %v", common.ErrorInvalidValue, nu)
	}
	return &Matern{LengthScale: length, Nu: nu}, nil
}

func newRationalQuadraticKernel(params ParamSet) (Kernel, error) {
	r := newParamReader(KernelTypeRationalQuad, params)
	length := r.Float("length_scale", 1.0)
	alpha := r.Float("alpha", 1.0)
	if err := r.Err(); err != nil {
		return nil, err
	}
	if length <= 0 || alpha <= 0 {
		return nil, fmt.Errorf("%w: length_scale and alpha must be positive, got %v, %v",
			common.ErrorInvalidValue, length, alpha)
	}
	return &RationalQuadratic{LengthScale: length, Alpha: alpha}, nil
}

func newExpSineSquaredKernel(params ParamSet) (Kernel, error) {
	r := newParamReader(KernelTypeExpSine, params)
	length := r.Float("length_scale", 1.0)
	period := r.Float("periodicity", 1.0)
	if err := r.Err(); err != nil {
		return nil, err
	}
	if length <= 0 || period <= 0 {
		return nil, fmt.Errorf("%w: length_scale and periodicity must be positive, got %v, %v",
			common.ErrorInvalidValue, length, period)
	}
	return &ExpSineSquared{LengthScale: length, Periodicity: period}, nil
}

func newDotProductKernel(params ParamSet) (Kernel, error) {
	r := newParamReader(KernelTypeDotProduct, params)
	sigma0 := r.Float("sigma_0", 1.0)
	if err := r.Err(); err != nil {
		return nil, err
	}
	return &DotProduct{Sigma0: sigma0}, nil
}

func newPairwiseKernel(params ParamSet) (Kernel, error) {
	r := newParamReader(KernelTypePairwise, params)
	metric := r.String("metric", "linear")
	gamma := r.Float("gamma", 1.0)
	if err := r.Err(); err != nil {
		return nil, err
	}
	if err := validPairwiseMetric(metric); err != nil {
		return nil, err
	}
	return &Pairwise{Metric: metric, Gamma: gamma}, nil
}
