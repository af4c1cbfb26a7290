package engine

import "math/rand/v2"

// JitterSource supplies the bounded random perturbation applied to predicted
// application counts. Implementations must be safe for concurrent use or
// per-call local; the predictor shares one source across requests.
type JitterSource interface {
	// Uniform returns a uniformly distributed value in [min, max).
	Uniform(min, max float64) float64
}

type defaultJitter struct{}

func (defaultJitter) Uniform(min, max float64) float64 {
	return min + rand.Float64()*(max-min)
}

// NewJitterSource returns the production randomness source backed by
// math/rand/v2, which is safe for concurrent use.
func NewJitterSource() JitterSource {
	return defaultJitter{}
}
