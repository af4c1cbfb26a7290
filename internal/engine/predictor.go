package engine

import (
	"fmt"
	"math"

	"hirescope/internal/config"
	"hirescope/internal/types"
)

// Application volume categories and their hiring difficulty counterparts.
// Difficulty is the inverse of volume: scarce applications make hiring hard.
const (
	VolumeLow    = "Low"
	VolumeMedium = "Medium"
	VolumeHigh   = "High"

	DifficultyHard   = "Hard"
	DifficultyMedium = "Medium"
	DifficultyEasy   = "Easy"
)

const (
	defaultBaseVolume = 100.0
	defaultJitterMin  = 0.9
	defaultJitterMax  = 1.1
)

// Multiplier tables keyed by exact attribute values. Unknown values fall back
// to the neutral 1.0 multiplier instead of failing.
var (
	experienceMultipliers = map[string]float64{
		"Entry":  1.5,
		"Mid":    1.0,
		"Senior": 0.7,
	}

	jobTypeMultipliers = map[string]float64{
		"Full-time": 1.2,
		"Part-time": 0.8,
		"Contract":  0.9,
	}

	companySizeMultipliers = map[string]float64{
		"1-10":      0.6,
		"11-50":     0.8,
		"51-200":    1.0,
		"201-500":   1.2,
		"501-1000":  1.3,
		"1001-5000": 1.4,
		"5000+":     1.5,
	}
)

// Predictor estimates expected application volume for a job posting by
// applying a fixed multiplier chain over the posting's attributes plus a
// bounded random jitter. It holds no mutable state and is safe for concurrent
// use as long as its jitter source is.
type Predictor struct {
	baseVolume float64
	jitterMin  float64
	jitterMax  float64
	jitter     JitterSource
}

// NewPredictor creates a predictor from engine configuration. Zero config
// values fall back to the built-in defaults (base 100, jitter [0.9, 1.1]);
// a nil jitter source falls back to the production randomness source.
func NewPredictor(cfg *config.EngineConfig, jitter JitterSource) *Predictor {
	p := &Predictor{
		baseVolume: defaultBaseVolume,
		jitterMin:  defaultJitterMin,
		jitterMax:  defaultJitterMax,
		jitter:     jitter,
	}

	if cfg != nil {
		if cfg.BaseVolume > 0 {
			p.baseVolume = cfg.BaseVolume
		}
		if cfg.JitterMin > 0 {
			p.jitterMin = cfg.JitterMin
		}
		if cfg.JitterMax > 0 {
			p.jitterMax = cfg.JitterMax
		}
	}

	if p.jitter == nil {
		p.jitter = NewJitterSource()
	}

	return p
}

// Predict runs the multiplier chain over the posting attributes in fixed
// order and categorizes the rounded result.
func (p *Predictor) Predict(job types.JobPosting) types.PredictionResult {
	volume := p.baseVolume
	volume *= multiplierFor(experienceMultipliers, job.ExperienceLevel)
	volume *= multiplierFor(jobTypeMultipliers, job.JobType)
	volume *= multiplierFor(companySizeMultipliers, job.CompanySize)

	if job.RemoteOption {
		volume *= 1.3
	}

	volume *= salaryMultiplier(job.MaxSalary)
	volume *= skillCountMultiplier(len(job.Skills))
	volume *= p.jitter.Uniform(p.jitterMin, p.jitterMax)

	count := int(math.Round(volume))
	category, difficulty := categorizeVolume(count)

	return types.PredictionResult{
		Count:       count,
		Category:    category,
		Difficulty:  difficulty,
		Explanation: explainVolume(category, job),
	}
}

func multiplierFor(table map[string]float64, key string) float64 {
	if m, ok := table[key]; ok {
		return m
	}
	return 1.0
}

// salaryMultiplier rates offer attractiveness on the posted maximum salary.
// Postings without a stated salary land in the lowest tier.
func salaryMultiplier(maxSalary float64) float64 {
	switch {
	case maxSalary > 150000:
		return 1.2
	case maxSalary > 100000:
		return 1.1
	case maxSalary < 50000:
		return 0.8
	default:
		return 1.0
	}
}

func skillCountMultiplier(count int) float64 {
	switch {
	case count > 5:
		return 0.9 // long requirement lists deter applicants
	case count < 2:
		return 1.1 // fewer barriers to apply
	default:
		return 1.0
	}
}

func categorizeVolume(count int) (category, difficulty string) {
	switch {
	case count < 100:
		return VolumeLow, DifficultyHard
	case count < 200:
		return VolumeMedium, DifficultyMedium
	default:
		return VolumeHigh, DifficultyEasy
	}
}

func explainVolume(category string, job types.JobPosting) string {
	switch category {
	case VolumeLow:
		return "This position may receive fewer applications due to specific requirements. Consider broadening criteria or increasing visibility."
	case VolumeMedium:
		return fmt.Sprintf("Expected moderate interest. This is typical for %s-level positions in this industry.", job.ExperienceLevel)
	case VolumeHigh:
		driver := "Competitive salary"
		if job.RemoteOption {
			driver = "Remote work option"
		}
		return fmt.Sprintf("High application volume expected! %s makes this position attractive.", driver)
	default:
		return "Application volume prediction based on job characteristics."
	}
}
