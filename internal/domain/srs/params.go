package srs

// Params defines all configurable parameters for the SRS algorithm
type Params struct {
	// Core limits
	MinEaseFactor float64

	// PassingQuality is the lowest quality counted as a correct recall.
	// Qualities below it reset the interval and leave the ease untouched.
	PassingQuality int

	// Intervals for the first two successful reviews, in days
	FirstInterval  float64
	SecondInterval float64

	// Status promotion thresholds
	MasteredFamiliarity  float64
	MasteredIntervalDays float64
	KnownFamiliarity     float64
}

// ParamsConfig allows overriding the default parameters when creating a new Params instance
type ParamsConfig struct {
	MinEaseFactor        float64
	PassingQuality       int
	FirstInterval        float64
	SecondInterval       float64
	MasteredFamiliarity  float64
	MasteredIntervalDays float64
	KnownFamiliarity     float64
}

// NewDefaultParams creates a new Params instance with default values
func NewDefaultParams() *Params {
	return &Params{
		MinEaseFactor:  1.3,
		PassingQuality: 3,

		FirstInterval:  1,
		SecondInterval: 6,

		MasteredFamiliarity:  0.9,
		MasteredIntervalDays: 21,
		KnownFamiliarity:     0.7,
	}
}

// NewParams creates a new Params instance with custom configuration
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.MinEaseFactor > 0 {
		params.MinEaseFactor = config.MinEaseFactor
	}
	if config.PassingQuality > 0 {
		params.PassingQuality = config.PassingQuality
	}
	if config.FirstInterval > 0 {
		params.FirstInterval = config.FirstInterval
	}
	if config.SecondInterval > 0 {
		params.SecondInterval = config.SecondInterval
	}
	if config.MasteredFamiliarity > 0 {
		params.MasteredFamiliarity = config.MasteredFamiliarity
	}
	if config.MasteredIntervalDays > 0 {
		params.MasteredIntervalDays = config.MasteredIntervalDays
	}
	if config.KnownFamiliarity > 0 {
		params.KnownFamiliarity = config.KnownFamiliarity
	}

	return params
}
