package config

// Bench defaults.
const (
	DefaultBenchIterations   = 20
	DefaultBenchSeed         = 20181003
	DefaultBenchDistribution = DistributionUniform
)

// DefaultBenchSizes are the sequence lengths timed by a bench run.
var DefaultBenchSizes = []int{1_000, 10_000, 100_000}

// Check defaults.
const (
	DefaultCheckCases   = 200
	DefaultCheckMaxSize = 2_000
	DefaultCheckWorkers = 4
	DefaultCheckRelTol  = 1e-9
	DefaultCheckAbsTol  = 0.0
)

// Logging defaults.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// DefaultSampleRatio keeps every root span.
const DefaultSampleRatio = 0.0

// Input distributions understood by the generator.
const (
	DistributionUniform    = "uniform"
	DistributionNormal     = "normal"
	DistributionDuplicates = "duplicates"
	DistributionSorted     = "sorted"
)

// Distributions lists every supported distribution.
var Distributions = []string{
	DistributionUniform,
	DistributionNormal,
	DistributionDuplicates,
	DistributionSorted,
}
