package config

// Model geometry defaults
const (
	DefaultKmerSize   = 20
	DefaultReadLength = 100
)

// Initial guess parameters
const (
	// Fallback starting point used when the analytic guess degenerates
	// (no distinct k-mers observed at least twice).
	FallbackCoverage  = 1.0
	FallbackErrorRate = 0.5

	// Domain and iteration budget of the monotone-function inverter used
	// for the coverage correction.
	InverterDomainLow     = 1e-9
	InverterBisectionIter = 40
)

// Probability model parameters
const (
	// Below this rate the truncated-Poisson denominator e^lambda - 1 is
	// replaced by lambda to avoid catastrophic cancellation.
	SmallLambdaThreshold = 1e-8

	// Mantissa size (bits) of the extended-precision arithmetic.
	BigFloatPrecision = 256
)

// Repeat model parameters
const (
	// Repeat counts whose prior mass falls below this tolerance are
	// truncated from the mixture.
	RepeatPriorTolerance = 1e-8
)

// Probability cache parameters
const (
	CacheCapacity = 100
)

// Grid search parameters
const (
	GridStep           = 1.1
	GridDepth          = 3
	GridStepDecay      = 0.75
	GridDecayTrigger   = 1.0
	GridMinImprovement = 0.1
	GridFinalStep      = 1.001
)

// Hill climbing parameters
const (
	HillclimbIterations = 1000
)
