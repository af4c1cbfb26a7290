package types

import "time"

// JobPosting represents a job opening submitted for application volume prediction
type JobPosting struct {
	Title           string   `json:"jobTitle"`
	Skills          []string `json:"skills"`
	ExperienceLevel string   `json:"experienceLevel"` // "Entry", "Mid", or "Senior"
	MinSalary       float64  `json:"minSalary"`
	MaxSalary       float64  `json:"maxSalary"`
	JobType         string   `json:"jobType"` // "Full-time", "Part-time", or "Contract"
	RemoteOption    bool     `json:"remoteOption"`
	CompanySize     string   `json:"companySize"` // headcount bucket, e.g. "51-200"
	Industry        string   `json:"industry"`
}

// PredictionResult represents the predicted application volume for a job posting
type PredictionResult struct {
	Count       int    `json:"count"`
	Category    string `json:"category"`   // "Low", "Medium", or "High"
	Difficulty  string `json:"difficulty"` // hiring difficulty: "Hard", "Medium", or "Easy"
	Explanation string `json:"explanation"`
}

// MatchResult represents how well a resume matches a job description
type MatchResult struct {
	Score          float64  `json:"score"` // 0-95, one decimal place
	Category       string   `json:"category"`
	Priority       string   `json:"priority"` // screening priority
	MatchedSkills  []string `json:"matched_skills"`
	MissingSkills  []string `json:"missing_skills"`
	Recommendation string   `json:"recommendation"`
}

// JobRecord is a dashboard entry for a scored job posting
type JobRecord struct {
	ID                    string    `json:"id"`
	Title                 string    `json:"title"`
	PredictedApplications int       `json:"predicted_applications"`
	Category              string    `json:"category"`
	Timestamp             time.Time `json:"timestamp"`
}

// ResumeRecord is a dashboard entry for a scored resume
type ResumeRecord struct {
	ID            string    `json:"id"`
	Score         float64   `json:"score"`
	Category      string    `json:"category"`
	MatchedSkills []string  `json:"matched_skills"`
	Timestamp     time.Time `json:"timestamp"`
}

// DashboardSummary aggregates the retained analytics window
type DashboardSummary struct {
	TotalJobs                int     `json:"totalJobs"`
	AvgPredictedApplications float64 `json:"avgPredictedApplications"`
	TotalResumes             int     `json:"totalResumes"`
	TopMatchScore            float64 `json:"topMatchScore"`
}

// DashboardSnapshot is the payload served to the analytics dashboard
type DashboardSnapshot struct {
	Summary       DashboardSummary `json:"summary"`
	Jobs          []JobRecord      `json:"jobs"`          // most recent jobs, oldest first
	TopCandidates []ResumeRecord   `json:"topCandidates"` // highest scoring resumes
}
