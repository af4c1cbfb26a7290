package cli

import (
	"fmt"

	"hirescope/internal/common"
	"hirescope/internal/engine"
	"hirescope/internal/types"

	"github.com/spf13/cobra"
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict the application volume for a job posting",
	Long: `Predict how many applications a job posting will attract. The posting is
described entirely through flags (title, skills, experience level, salary
range, job type, company size); unset flags fall back to the same defaults
the dashboard form preselects.`,
	Args: cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if predictConfig.OutputFormat == "" {
			predictConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(predictConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runPredict,
}

var (
	predictConfig common.CommandConfig
	predictJob    types.JobPosting
)

func init() {
	predictCmd.Flags().StringVar(&predictJob.Title, "title", "", "Job title")
	predictCmd.Flags().StringSliceVar(&predictJob.Skills, "skills", nil, "Required skills (comma-separated or repeated)")
	predictCmd.Flags().StringVar(&predictJob.ExperienceLevel, "experience-level", "Mid", "Experience level: Entry, Mid, or Senior")
	predictCmd.Flags().Float64Var(&predictJob.MinSalary, "min-salary", 0, "Minimum offered salary")
	predictCmd.Flags().Float64Var(&predictJob.MaxSalary, "max-salary", 0, "Maximum offered salary")
	predictCmd.Flags().StringVar(&predictJob.JobType, "job-type", "Full-time", "Job type: Full-time, Part-time, or Contract")
	predictCmd.Flags().BoolVar(&predictJob.RemoteOption, "remote", false, "Position can be performed remotely")
	predictCmd.Flags().StringVar(&predictJob.CompanySize, "company-size", "100-500", "Company size bracket, e.g. 51-200")
	predictCmd.Flags().StringVar(&predictJob.Industry, "industry", "Technology", "Industry the company operates in")
	predictCmd.Flags().StringVarP(&predictConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	predictCmd.Flags().StringVar(&predictConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	// Add completion for format flag
	_ = predictCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
	_ = predictCmd.RegisterFlagCompletionFunc("experience-level", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"Entry", "Mid", "Senior"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = predictCmd.RegisterFlagCompletionFunc("job-type", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"Full-time", "Part-time", "Contract"}, cobra.ShellCompDirectiveNoFileComp
	})
}

func runPredict(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	logger.Info("Starting application volume prediction",
		"job_title", predictJob.Title,
		"skills", len(predictJob.Skills),
		"output_format", predictConfig.OutputFormat)

	predictor := engine.NewPredictor(&cfg.Engine, engine.NewJitterSource())
	result := predictor.Predict(predictJob)

	output := common.NewOutputHandler(logger)
	if err := output.HandleOutput(result, predictConfig); err != nil {
		return fmt.Errorf("failed to predict application volume: %w", err)
	}

	logger.Info("Application volume prediction completed successfully",
		"predicted_count", result.Count,
		"category", result.Category)
	return nil
}
