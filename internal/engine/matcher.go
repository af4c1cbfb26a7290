package engine

import (
	"math"
	"strings"
	"sync/atomic"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"hirescope/internal/config"
	"hirescope/internal/types"
)

// Match categories by ascending score threshold, with the screening priority
// each one carries.
const (
	MatchPoor      = "Poor"
	MatchAverage   = "Average"
	MatchGood      = "Good"
	MatchExcellent = "Excellent"

	PriorityVeryLow = "Very Low"
	PriorityLow     = "Low"
	PriorityMedium  = "Medium"
	PriorityHigh    = "High"
)

const (
	// Raw word overlap against free text is usually low; treating 20% overlap
	// as a near-perfect match recalibrates scores into a usable range.
	scoreBoost = 4.0
	scoreCap   = 95.0

	defaultSkillListLimit = 10
)

// Matcher scores resumes against job descriptions by lexical token overlap
// and reports matched/missing skills from its catalog. The catalog can be
// swapped at runtime (hot reload); Match is safe for concurrent use.
type Matcher struct {
	catalog        atomic.Pointer[Catalog]
	skillListLimit int
}

// NewMatcher creates a matcher over the given catalog. A nil catalog falls
// back to the built-in one; a nil or zero config falls back to the default
// skill list limit.
func NewMatcher(catalog *Catalog, cfg *config.EngineConfig) *Matcher {
	if catalog == nil {
		catalog = DefaultCatalog()
	}

	limit := defaultSkillListLimit
	if cfg != nil && cfg.SkillListLimit > 0 {
		limit = cfg.SkillListLimit
	}

	m := &Matcher{skillListLimit: limit}
	m.catalog.Store(catalog)
	return m
}

// SetCatalog atomically replaces the matcher's skill catalog. In-flight
// matches keep the catalog they started with.
func (m *Matcher) SetCatalog(catalog *Catalog) {
	if catalog == nil {
		return
	}
	m.catalog.Store(catalog)
}

// Catalog returns the catalog currently in use.
func (m *Matcher) Catalog() *Catalog {
	return m.catalog.Load()
}

// Match scores how well a resume fits a job description. Both inputs are
// expected to be normalized already; Match does not normalize. Empty inputs
// degrade to score 0 and empty skill lists rather than failing.
func (m *Matcher) Match(resumeText, jobText string) types.MatchResult {
	score := overlapScore(resumeText, jobText)
	matched, missing := m.extractSkills(resumeText, jobText)
	category, priority := categorizeMatch(score)

	return types.MatchResult{
		Score:          score,
		Category:       category,
		Priority:       priority,
		MatchedSkills:  matched,
		MissingSkills:  missing,
		Recommendation: recommendationFor(category),
	}
}

// overlapScore computes the share of distinct job-description tokens that
// also appear in the resume, boosted and capped at scoreCap, rounded to one
// decimal place.
func overlapScore(resumeText, jobText string) float64 {
	jobTokens := tokenSet(jobText)
	if len(jobTokens) == 0 {
		return 0
	}

	resumeTokens := tokenSet(resumeText)
	common := 0
	for token := range jobTokens {
		if _, ok := resumeTokens[token]; ok {
			common++
		}
	}

	raw := float64(common) / float64(len(jobTokens)) * 100
	adjusted := math.Min(raw*scoreBoost, scoreCap)
	return math.Round(adjusted*10) / 10
}

func tokenSet(text string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(text))
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// extractSkills tests every catalog term for case-insensitive substring
// presence in the job description and the resume independently. Terms found
// in both are matched; terms only in the job description are missing; terms
// only in the resume are ignored. Each list is capped at the skill list
// limit, in catalog order, title-cased for display.
func (m *Matcher) extractSkills(resumeText, jobText string) (matched, missing []string) {
	resumeLower := strings.ToLower(resumeText)
	jobLower := strings.ToLower(jobText)

	matched = make([]string, 0, m.skillListLimit)
	missing = make([]string, 0, m.skillListLimit)

	title := cases.Title(language.English)
	for _, skill := range m.catalog.Load().terms {
		inJob := strings.Contains(jobLower, skill)
		if !inJob {
			continue
		}
		if strings.Contains(resumeLower, skill) {
			if len(matched) < m.skillListLimit {
				matched = append(matched, title.String(skill))
			}
		} else {
			if len(missing) < m.skillListLimit {
				missing = append(missing, title.String(skill))
			}
		}
	}
	return matched, missing
}

func categorizeMatch(score float64) (category, priority string) {
	switch {
	case score >= 80:
		return MatchExcellent, PriorityHigh
	case score >= 60:
		return MatchGood, PriorityMedium
	case score >= 40:
		return MatchAverage, PriorityLow
	default:
		return MatchPoor, PriorityVeryLow
	}
}

func recommendationFor(category string) string {
	switch category {
	case MatchExcellent:
		return "Strong candidate! Recommend immediate interview. Skills and experience align very well with requirements."
	case MatchGood:
		return "Qualified candidate. Schedule interview to assess cultural fit and specific expertise."
	case MatchAverage:
		return "Potential candidate. May require additional training or development in key areas."
	default:
		return "Skills gap identified. Consider only if candidate shows strong potential in other areas."
	}
}
