package gp

import (
	"fmt"
	"math"

	"github.com/scviz/singlecell-plotting/common"
)

// Options controls identifier resolution during Compose.
type Options struct {
	// DefaultParams is substituted for identifiers missing from the
	// table when SuppressMissing is set. May be nil, which selects the
	// default kernel with its constructor defaults.
	DefaultParams ParamSet

	// SuppressMissing makes unresolved identifiers fall back to
	// DefaultParams instead of failing.
	SuppressMissing bool

	// Registry overrides the kernel constructors; nil selects
	// DefaultRegistry().
	Registry Registry
}

// Compose parses a kernel expression like "k + white" or "0.5 * k ** 2"
// and folds it into a single composed kernel, constructing each named
// kernel from its parameter set in table. The caller's table is never
// mutated; each lookup works on a snapshot of the matched set, so
// repeated Compose calls against the same table are idempotent.
func Compose(expr string, table ParamTable, opts Options) (Kernel, error) {
	root, err := parseExpr(expr)
	if err != nil {
		return nil, err
	}

	registry := opts.Registry
	if registry == nil {
		registry = DefaultRegistry()
	}

	ev := &evaluator{expr: expr, table: table, opts: opts, registry: registry}
	v, err := ev.eval(root)
	if err != nil {
		return nil, err
	}
	if v.isNumber {
		return nil, fmt.Errorf("%w: %q evaluates to the plain number %g, not a kernel",
			common.ErrorUnsupportedExpression, expr, v.number)
	}
	return v.kernel, nil
}

// value is the evaluation result of one subtree: either a composed
// kernel or a plain number waiting to be consumed as a weight or an
// exponent.
type value struct {
	kernel   Kernel
	number   float64
	isNumber bool
}

func numberValue(f float64) value  { return value{number: f, isNumber: true} }
func kernelValue(k Kernel) value   { return value{kernel: k} }
func (v value) asKernel() Kernel {
	if v.isNumber {
		return &ConstantKernel{Value: v.number}
	}
	return v.kernel
}

type evaluator struct {
	expr     string
	table    ParamTable
	opts     Options
	registry Registry
}

func (ev *evaluator) eval(node exprNode) (value, error) {
	switch n := node.(type) {
	case *literalNode:
		return numberValue(n.value), nil

	case *identNode:
		k, err := ev.resolve(n.name)
		if err != nil {
			return value{}, err
		}
		return kernelValue(k), nil

	case *unaryNode:
		operand, err := ev.eval(n.operand)
		if err != nil {
			return value{}, err
		}
		if operand.isNumber {
			return numberValue(-operand.number), nil
		}
		// kernels scale, so the additive inverse exists
		return kernelValue(&Scaled{Base: operand.kernel, Factor: -1}), nil

	case *binaryNode:
		left, err := ev.eval(n.left)
		if err != nil {
			return value{}, err
		}
		right, err := ev.eval(n.right)
		if err != nil {
			return value{}, err
		}
		return ev.apply(n, left, right)
	}

	return value{}, fmt.Errorf("%w: unknown node in %q", common.ErrorUnsupportedExpression, ev.expr)
}

func (ev *evaluator) apply(n *binaryNode, left, right value) (value, error) {
	switch n.op {
	case opAdd:
		if left.isNumber && right.isNumber {
			return numberValue(left.number + right.number), nil
		}
		return kernelValue(&Sum{Left: left.asKernel(), Right: right.asKernel()}), nil

	case opMul:
		if left.isNumber && right.isNumber {
			return numberValue(left.number * right.number), nil
		}
		// a numeric operand acts as a scalar weight
		if left.isNumber {
			return kernelValue(&Scaled{Base: right.kernel, Factor: left.number}), nil
		}
		if right.isNumber {
			return kernelValue(&Scaled{Base: left.kernel, Factor: right.number}), nil
		}
		return kernelValue(&Product{Left: left.kernel, Right: right.kernel}), nil

	default: // opPow
		if !right.isNumber {
			return value{}, fmt.Errorf("%w: right side of ** in %q is %s, not a numeric literal",
				common.ErrorInvalidExponent, ev.expr, right.kernel)
		}
		if left.isNumber {
			return numberValue(math.Pow(left.number, right.number)), nil
		}
		return kernelValue(&Power{Base: left.kernel, Exponent: right.number}), nil
	}
}

// resolve builds the kernel behind one identifier. The matched
// parameter set is copied before the "type" entry is consumed.
func (ev *evaluator) resolve(name string) (Kernel, error) {
	source, ok := ev.table[name]
	if !ok {
		if !ev.opts.SuppressMissing {
			return nil, fmt.Errorf(
				"%w: error while parsing %q: %q is not a key in the parameter table; register it or set SuppressMissing to use the %q kernel with default parameters",
				common.ErrorUnknownKernelIdentifier, ev.expr, name, DefaultKernelType)
		}
		source = ev.opts.DefaultParams
	}

	params := make(ParamSet, len(source))
	for key, v := range source {
		params[key] = v
	}

	kernelType := DefaultKernelType
	if raw, present := params["type"]; present {
		s, isString := raw.(string)
		if !isString {
			return nil, fmt.Errorf("%w: \"type\" of identifier %q must be a string, got %T",
				common.ErrorInvalidValue, name, raw)
		}
		kernelType = s
		delete(params, "type")
	}

	ctor, found := ev.registry[kernelType]
	if !found {
		return nil, fmt.Errorf("%w: %q (selected by identifier %q in %q)",
			common.ErrorUnknownKernelType, kernelType, name, ev.expr)
	}
	return ctor(params)
}
