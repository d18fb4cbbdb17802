package constants

const (
	// DefaultSampleSize is the number of hospital admissions sampled when no
	// size is specified
	DefaultSampleSize = 3000

	// DefaultSeed seeds the admission sampler so repeated runs over the same
	// archive produce an identical subset
	DefaultSeed = 42

	// DefaultChunkSize is the number of rows read per chunk when scanning
	// tables too large to hold in memory (CHARTEVENTS, LABEVENTS)
	DefaultChunkSize = 100000

	// DefaultMaxLabsPerSubject caps the number of lab events retained per
	// patient in the LABEVENTS sample
	DefaultMaxLabsPerSubject = 20
)
