package store

import (
	"math"
	"sort"
	"sync"
	"time"

	"hirescope/internal/config"
	"hirescope/internal/types"

	"github.com/google/uuid"
)

const (
	defaultMaxRecords    = 500
	defaultRecentJobs    = 20
	defaultTopCandidates = 10
)

// Store keeps scored jobs and resumes in memory for the analytics dashboard.
// Retention is bounded per kind; appending beyond the limit evicts the oldest
// record, and summary statistics cover the retained window only.
type Store struct {
	mu sync.RWMutex

	maxRecords    int
	recentJobs    int
	topCandidates int

	jobs    []types.JobRecord
	resumes []types.ResumeRecord
}

// New creates an analytics store, falling back to defaults for unset limits
func New(cfg *config.StorageConfig) *Store {
	maxRecords := defaultMaxRecords
	recentJobs := defaultRecentJobs
	topCandidates := defaultTopCandidates
	if cfg != nil {
		if cfg.MaxRecords > 0 {
			maxRecords = cfg.MaxRecords
		}
		if cfg.RecentJobs > 0 {
			recentJobs = cfg.RecentJobs
		}
		if cfg.TopCandidates > 0 {
			topCandidates = cfg.TopCandidates
		}
	}

	return &Store{
		maxRecords:    maxRecords,
		recentJobs:    recentJobs,
		topCandidates: topCandidates,
	}
}

// AddJob records a scored job posting and returns the stored entry
func (s *Store) AddJob(title string, prediction types.PredictionResult) types.JobRecord {
	record := types.JobRecord{
		ID:                    uuid.NewString(),
		Title:                 title,
		PredictedApplications: prediction.Count,
		Category:              prediction.Category,
		Timestamp:             time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = append(s.jobs, record)
	if len(s.jobs) > s.maxRecords {
		s.jobs = s.jobs[len(s.jobs)-s.maxRecords:]
	}

	return record
}

// AddResume records a scored resume and returns the stored entry
func (s *Store) AddResume(result types.MatchResult) types.ResumeRecord {
	matched := make([]string, len(result.MatchedSkills))
	copy(matched, result.MatchedSkills)

	record := types.ResumeRecord{
		ID:            uuid.NewString(),
		Score:         result.Score,
		Category:      result.Category,
		MatchedSkills: matched,
		Timestamp:     time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.resumes = append(s.resumes, record)
	if len(s.resumes) > s.maxRecords {
		s.resumes = s.resumes[len(s.resumes)-s.maxRecords:]
	}

	return record
}

// Counts returns how many records of each kind are currently retained
func (s *Store) Counts() (jobs, resumes int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs), len(s.resumes)
}

// Snapshot assembles the dashboard payload: summary statistics over the
// retained window, the most recent jobs in insertion order, and the
// highest-scoring resumes in stable descending order.
func (s *Store) Snapshot() types.DashboardSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summary := types.DashboardSummary{
		TotalJobs:    len(s.jobs),
		TotalResumes: len(s.resumes),
	}

	if len(s.jobs) > 0 {
		total := 0
		for _, job := range s.jobs {
			total += job.PredictedApplications
		}
		summary.AvgPredictedApplications = round1dp(float64(total) / float64(len(s.jobs)))
	}

	if len(s.resumes) > 0 {
		top := s.resumes[0].Score
		for _, resume := range s.resumes[1:] {
			if resume.Score > top {
				top = resume.Score
			}
		}
		summary.TopMatchScore = round1dp(top)
	}

	recent := len(s.jobs)
	if recent > s.recentJobs {
		recent = s.recentJobs
	}
	jobs := make([]types.JobRecord, recent)
	copy(jobs, s.jobs[len(s.jobs)-recent:])

	ranked := make([]types.ResumeRecord, len(s.resumes))
	copy(ranked, s.resumes)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if len(ranked) > s.topCandidates {
		ranked = ranked[:s.topCandidates]
	}

	return types.DashboardSnapshot{
		Summary:       summary,
		Jobs:          jobs,
		TopCandidates: ranked,
	}
}

func round1dp(x float64) float64 {
	return math.Round(x*10) / 10
}
