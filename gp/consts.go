package gp

const (
	// registry names for the built-in kernel constructors
	KernelTypeConstant     = "const"
	KernelTypeWhite        = "white"
	KernelTypeRBF          = "rbf"
	KernelTypeMatern       = "mat"
	KernelTypeRationalQuad = "rq"
	KernelTypeExpSine      = "esn"
	KernelTypeDotProduct   = "dp"
	KernelTypePairwise     = "pw"

	// DefaultKernelType is used when a parameter set carries no "type" entry.
	DefaultKernelType = KernelTypeRBF

	DefaultLengthScale  = 0.2
	DefaultSmoothPoints = 100
)
