package gp

import (
	"fmt"
	"math"
)

// The composed-kernel algebra: sums, products, scalar powers and
// scalar weights over Kernel values. Compose folds expression trees
// into these.

type Sum struct {
	Left, Right Kernel
}

func (k *Sum) Eval(x1, x2 []float64) float64 {
	return k.Left.Eval(x1, x2) + k.Right.Eval(x1, x2)
}

func (k *Sum) String() string {
	return fmt.Sprintf("%s + %s", k.Left, k.Right)
}

type Product struct {
	Left, Right Kernel
}

func (k *Product) Eval(x1, x2 []float64) float64 {
	return k.Left.Eval(x1, x2) * k.Right.Eval(x1, x2)
}

func (k *Product) String() string {
	return fmt.Sprintf("%s * %s", k.Left, k.Right)
}

// Power raises a kernel to a fixed scalar exponent.
type Power struct {
	Base     Kernel
	Exponent float64
}

func (k *Power) Eval(x1, x2 []float64) float64 {
	return math.Pow(k.Base.Eval(x1, x2), k.Exponent)
}

func (k *Power) String() string {
	return fmt.Sprintf("%s ** %g", k.Base, k.Exponent)
}

// Scaled multiplies a kernel by a scalar weight. Unary negation in an
// expression folds to a factor of -1.
type Scaled struct {
	Base   Kernel
	Factor float64
}

func (k *Scaled) Eval(x1, x2 []float64) float64 {
	return k.Factor * k.Base.Eval(x1, x2)
}

func (k *Scaled) String() string {
	return fmt.Sprintf("%g * %s", k.Factor, k.Base)
}
