package cli

import (
	"context"
	"fmt"

	"hirescope/internal/common"
	"hirescope/internal/engine"
	"hirescope/internal/extract"
	"hirescope/internal/textnorm"
	"hirescope/internal/types"

	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:   "match [resume-file] [job-description-file]",
	Short: "Score a resume against a job description",
	Long: `Score how well a resume matches a job description. The command takes two
arguments: the path to the resume and the path to the job description.
PDF, DOCX and plain text files are accepted; binary documents are run
through the text extractors before scoring.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if matchConfig.OutputFormat == "" {
			matchConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(matchConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runMatch,
}

var matchConfig common.CommandConfig

// matchInput carries the extracted text of both documents
type matchInput struct {
	Resume         string
	JobDescription string
}

func init() {
	matchCmd.Flags().StringVarP(&matchConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	matchCmd.Flags().StringVar(&matchConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	// Add completion for format flag
	_ = matchCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runMatch(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	catalog, _ := loadCatalog(cfg, logger)
	matcher := engine.NewMatcher(catalog, &cfg.Engine)
	files := common.NewDocumentProcessor(logger, extract.NewService(&cfg.Extract, logger))

	createInput := func(contents []string) (matchInput, error) {
		if len(contents) != 2 {
			return matchInput{}, fmt.Errorf("expected 2 file paths, got %d", len(contents))
		}
		return matchInput{
			Resume:         textnorm.Normalize(contents[0]),
			JobDescription: textnorm.Normalize(contents[1]),
		}, nil
	}

	logDetails := func(input matchInput, cfg common.CommandConfig) {
		logger.Info("Starting resume match",
			"resume_chars", len(input.Resume),
			"job_chars", len(input.JobDescription),
			"output_format", cfg.OutputFormat)
	}

	matchOperation := func(ctx context.Context, input matchInput) (types.MatchResult, error) {
		return matcher.Match(input.Resume, input.JobDescription), nil
	}

	err := common.RunFileCommand(
		cmd.Context(),
		logger,
		files,
		matchConfig,
		args,
		createInput,
		matchOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to match resume: %w", err)
	}
	logger.Info("Resume match completed successfully")
	return nil
}
