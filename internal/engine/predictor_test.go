package engine

import (
	"strings"
	"testing"

	"hirescope/internal/config"
	"hirescope/internal/types"
)

// fixedJitter pins the random factor so the multiplier chain is exact.
type fixedJitter float64

func (f fixedJitter) Uniform(min, max float64) float64 {
	return float64(f)
}

func TestPredictMultiplierChain(t *testing.T) {
	predictor := NewPredictor(nil, fixedJitter(1.0))

	tests := []struct {
		name           string
		job            types.JobPosting
		wantCount      int
		wantCategory   string
		wantDifficulty string
	}{
		{
			name: "all neutral attributes score the base volume",
			job: types.JobPosting{
				Title:           "Backend Engineer",
				Skills:          []string{"go", "sql"},
				ExperienceLevel: "Mid",
				JobType:         "Internship", // not in the table, neutral
				MaxSalary:       60000,
				CompanySize:     "51-200",
			},
			wantCount:      100,
			wantCategory:   VolumeMedium,
			wantDifficulty: DifficultyMedium,
		},
		{
			name: "entry level remote full-time at a huge company with a big salary",
			job: types.JobPosting{
				Title:           "Junior Developer",
				Skills:          nil, // fewer than 2 skills lowers the barrier
				ExperienceLevel: "Entry",
				JobType:         "Full-time",
				MaxSalary:       200000,
				RemoteOption:    true,
				CompanySize:     "5000+",
			},
			// 100 * 1.5 * 1.2 * 1.5 * 1.3 * 1.2 * 1.1 = 463.32
			wantCount:      463,
			wantCategory:   VolumeHigh,
			wantDifficulty: DifficultyEasy,
		},
		{
			name: "senior contract role at a tiny company with low pay and a long skill list",
			job: types.JobPosting{
				Title:           "Staff Engineer",
				Skills:          []string{"go", "sql", "aws", "docker", "k8s", "terraform", "python"},
				ExperienceLevel: "Senior",
				JobType:         "Contract",
				MaxSalary:       30000,
				CompanySize:     "1-10",
			},
			// 100 * 0.7 * 0.9 * 0.6 * 0.8 * 0.9 = 27.216
			wantCount:      27,
			wantCategory:   VolumeLow,
			wantDifficulty: DifficultyHard,
		},
		{
			name: "unrecognized enum values all fall back to neutral",
			job: types.JobPosting{
				Title:           "Engineer",
				Skills:          []string{"go", "sql", "aws"},
				ExperienceLevel: "Principal",
				JobType:         "Gig",
				MaxSalary:       75000,
				CompanySize:     "100-500", // legacy default bucket, not in the table
			},
			wantCount:      100,
			wantCategory:   VolumeMedium,
			wantDifficulty: DifficultyMedium,
		},
		{
			name: "absent salary counts as a low offer",
			job: types.JobPosting{
				Title:           "Engineer",
				Skills:          []string{"go", "sql"},
				ExperienceLevel: "Mid",
				JobType:         "Internship",
				CompanySize:     "51-200",
			},
			wantCount:      80,
			wantCategory:   VolumeLow,
			wantDifficulty: DifficultyHard,
		},
		{
			name: "remote boost alone",
			job: types.JobPosting{
				Title:           "Engineer",
				Skills:          []string{"go", "sql"},
				ExperienceLevel: "Mid",
				JobType:         "Internship",
				MaxSalary:       60000,
				RemoteOption:    true,
				CompanySize:     "51-200",
			},
			wantCount:      130,
			wantCategory:   VolumeMedium,
			wantDifficulty: DifficultyMedium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := predictor.Predict(tt.job)

			if result.Count != tt.wantCount {
				t.Errorf("Count = %d, want %d", result.Count, tt.wantCount)
			}
			if result.Category != tt.wantCategory {
				t.Errorf("Category = %q, want %q", result.Category, tt.wantCategory)
			}
			if result.Difficulty != tt.wantDifficulty {
				t.Errorf("Difficulty = %q, want %q", result.Difficulty, tt.wantDifficulty)
			}
			if result.Explanation == "" {
				t.Error("Explanation is empty")
			}
		})
	}
}

func TestPredictJitterApplied(t *testing.T) {
	neutral := types.JobPosting{
		Skills:          []string{"go", "sql"},
		ExperienceLevel: "Mid",
		JobType:         "Internship",
		MaxSalary:       60000,
		CompanySize:     "51-200",
	}

	low := NewPredictor(nil, fixedJitter(0.9)).Predict(neutral)
	if low.Count != 90 {
		t.Errorf("Count with 0.9 jitter = %d, want 90", low.Count)
	}
	if low.Category != VolumeLow {
		t.Errorf("Category with 0.9 jitter = %q, want %q", low.Category, VolumeLow)
	}

	high := NewPredictor(nil, fixedJitter(1.1)).Predict(neutral)
	if high.Count != 110 {
		t.Errorf("Count with 1.1 jitter = %d, want 110", high.Count)
	}
}

func TestPredictConfigOverrides(t *testing.T) {
	cfg := &config.EngineConfig{BaseVolume: 250}
	predictor := NewPredictor(cfg, fixedJitter(1.0))

	result := predictor.Predict(types.JobPosting{
		Skills:          []string{"go", "sql"},
		ExperienceLevel: "Mid",
		JobType:         "Internship",
		MaxSalary:       60000,
		CompanySize:     "51-200",
	})

	if result.Count != 250 {
		t.Errorf("Count = %d, want 250", result.Count)
	}
	if result.Category != VolumeHigh {
		t.Errorf("Category = %q, want %q", result.Category, VolumeHigh)
	}
}

func TestSalaryMultiplier(t *testing.T) {
	tests := []struct {
		salary float64
		want   float64
	}{
		{0, 0.8},
		{30000, 0.8},
		{49999, 0.8},
		{50000, 1.0},
		{75000, 1.0},
		{100000, 1.0},
		{100001, 1.1},
		{150000, 1.1},
		{150001, 1.2},
		{250000, 1.2},
	}

	for _, tt := range tests {
		if got := salaryMultiplier(tt.salary); got != tt.want {
			t.Errorf("salaryMultiplier(%v) = %v, want %v", tt.salary, got, tt.want)
		}
	}
}

func TestSkillCountMultiplier(t *testing.T) {
	tests := []struct {
		count int
		want  float64
	}{
		{0, 1.1},
		{1, 1.1},
		{2, 1.0},
		{5, 1.0},
		{6, 0.9},
		{20, 0.9},
	}

	for _, tt := range tests {
		if got := skillCountMultiplier(tt.count); got != tt.want {
			t.Errorf("skillCountMultiplier(%d) = %v, want %v", tt.count, got, tt.want)
		}
	}
}

func TestCategorizeVolumeBoundaries(t *testing.T) {
	tests := []struct {
		count          int
		wantCategory   string
		wantDifficulty string
	}{
		{0, VolumeLow, DifficultyHard},
		{99, VolumeLow, DifficultyHard},
		{100, VolumeMedium, DifficultyMedium},
		{199, VolumeMedium, DifficultyMedium},
		{200, VolumeHigh, DifficultyEasy},
		{1000, VolumeHigh, DifficultyEasy},
	}

	for _, tt := range tests {
		category, difficulty := categorizeVolume(tt.count)
		if category != tt.wantCategory || difficulty != tt.wantDifficulty {
			t.Errorf("categorizeVolume(%d) = (%q, %q), want (%q, %q)",
				tt.count, category, difficulty, tt.wantCategory, tt.wantDifficulty)
		}
	}
}

func TestCategorizeVolumeMonotonic(t *testing.T) {
	rank := map[string]int{VolumeLow: 0, VolumeMedium: 1, VolumeHigh: 2}

	prev := -1
	for count := 0; count <= 400; count++ {
		category, _ := categorizeVolume(count)
		if rank[category] < prev {
			t.Fatalf("tier decreased at count %d: %q", count, category)
		}
		prev = rank[category]
	}
}

func TestExplanations(t *testing.T) {
	predictor := NewPredictor(nil, fixedJitter(1.0))

	t.Run("low category text", func(t *testing.T) {
		result := predictor.Predict(types.JobPosting{
			ExperienceLevel: "Senior",
			JobType:         "Contract",
			CompanySize:     "1-10",
			Skills:          []string{"go", "sql"},
			MaxSalary:       60000,
		})
		want := "This position may receive fewer applications due to specific requirements. Consider broadening criteria or increasing visibility."
		if result.Explanation != want {
			t.Errorf("Explanation = %q, want %q", result.Explanation, want)
		}
	})

	t.Run("medium category interpolates experience level", func(t *testing.T) {
		result := predictor.Predict(types.JobPosting{
			ExperienceLevel: "Mid",
			JobType:         "Internship",
			CompanySize:     "51-200",
			Skills:          []string{"go", "sql"},
			MaxSalary:       60000,
		})
		want := "Expected moderate interest. This is typical for Mid-level positions in this industry."
		if result.Explanation != want {
			t.Errorf("Explanation = %q, want %q", result.Explanation, want)
		}
	})

	t.Run("high category mentions remote work when remote", func(t *testing.T) {
		result := predictor.Predict(types.JobPosting{
			ExperienceLevel: "Entry",
			JobType:         "Full-time",
			CompanySize:     "5000+",
			RemoteOption:    true,
			MaxSalary:       200000,
			Skills:          []string{"go", "sql"},
		})
		if !strings.Contains(result.Explanation, "Remote work option") {
			t.Errorf("Explanation = %q, want mention of remote work", result.Explanation)
		}
	})

	t.Run("high category mentions salary when not remote", func(t *testing.T) {
		result := predictor.Predict(types.JobPosting{
			ExperienceLevel: "Entry",
			JobType:         "Full-time",
			CompanySize:     "5000+",
			MaxSalary:       200000,
			Skills:          []string{"go", "sql"},
		})
		if result.Category != VolumeHigh {
			t.Fatalf("Category = %q, want %q", result.Category, VolumeHigh)
		}
		if !strings.Contains(result.Explanation, "Competitive salary") {
			t.Errorf("Explanation = %q, want mention of competitive salary", result.Explanation)
		}
	})
}

func TestJitterSourceBounds(t *testing.T) {
	src := NewJitterSource()
	for range 1000 {
		v := src.Uniform(0.9, 1.1)
		if v < 0.9 || v >= 1.1 {
			t.Fatalf("Uniform(0.9, 1.1) = %v, out of range", v)
		}
	}
}

func BenchmarkPredict(b *testing.B) {
	predictor := NewPredictor(nil, NewJitterSource())
	job := types.JobPosting{
		Title:           "Senior Backend Engineer",
		Skills:          []string{"go", "sql", "aws", "docker"},
		ExperienceLevel: "Senior",
		JobType:         "Full-time",
		MaxSalary:       180000,
		RemoteOption:    true,
		CompanySize:     "201-500",
	}

	for b.Loop() {
		predictor.Predict(job)
	}
}
