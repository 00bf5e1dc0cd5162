package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/talentsift/resume-ranker/internal/ai"
	"github.com/talentsift/resume-ranker/internal/ai/gemini"
	"github.com/talentsift/resume-ranker/internal/export"
	"github.com/talentsift/resume-ranker/internal/intake"
	"github.com/talentsift/resume-ranker/internal/logger"
	"github.com/talentsift/resume-ranker/internal/matching"
	"github.com/talentsift/resume-ranker/internal/secrets"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptShowRanked    = "Show ranked candidates"
	PromptShowKeyTerms  = "Show job key terms"
	PromptExportCSV     = "Export results to CSV"
	PromptExportJSON    = "Export results to JSON"
	PromptExit          = "Exit"

	defaultOutputCSV  = "results.csv"
	defaultOutputJSON = "results.json"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptShowRanked, PromptShowKeyTerms, PromptExportCSV, PromptExportJSON, PromptExit},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the matching batch and rank all candidates",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("auto-approve", "y", false, "skip the action prompt and export the CSV directly")
	runCmd.Flags().StringP("output", "o", "", "output file for exports. Default is results.csv / results.json")

	viper.BindPFlag("output", runCmd.Flags().Lookup("output"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	// The batch supports user-initiated cancellation: interrupt stops
	// dispatching new candidates while keeping already-scored records.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the resume-ranker", zap.String("version", version))

	if config == nil {
		logger.Fatal("config is required")
	}

	if config.Job == nil || strings.TrimSpace(config.Job.File) == "" {
		logger.Fatal("job description file is required under job.file")
	}
	if strings.TrimSpace(config.Manifest) == "" {
		logger.Fatal("parsed-document manifest is required under manifest")
	}

	jobText, err := os.ReadFile(config.Job.File)
	if err != nil {
		logger.Fatal("reading job description", zap.Error(err))
	}

	job, err := matching.NewJobDescription(string(jobText))
	if err != nil {
		logger.Fatal("invalid job description", zap.Error(err))
	}

	docs, err := intake.LoadManifest(config.Manifest)
	if err != nil {
		logger.Fatal("loading parsed-document manifest", zap.Error(err))
	}

	batch := matching.FromDocuments(docs)
	if batch.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no candidates in manifest"))
		return
	}

	logger.Info("loaded candidate batch",
		zap.Int("count", batch.Len()),
		zap.String("manifest", config.Manifest),
	)

	matchingConfig := buildMatchingConfig(config)
	if err := matchingConfig.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	augmenter := prepareAugmenter(ctx, config.LLM, matchingConfig, logger)

	coordinator := matching.NewCoordinator(matchingConfig, augmenter, logger)

	result, err := coordinator.Run(ctx, job, batch)
	if err != nil {
		logger.Fatal("matching failed", zap.Error(err))
	}

	for _, record := range result.Ranked {
		if record.Status != matching.StatusShortlisted {
			continue
		}
		logger.Info("shortlisted candidate",
			zap.String("candidate_id", record.CandidateID),
			zap.Float64("combined_score", record.CombinedScore),
			zap.String("recommendation", record.Recommendation),
		)
	}

	action := PromptExportCSV
	autoApprove := cmd.Flag("auto-approve").Value.String() == "true"
	for {
		if !autoApprove {
			var err error
			_, action, err = prompt.Run()
			if err != nil {
				logger.Fatal("exiting", zap.Error(err))
			}
		}

		if err := handleAction(action, result, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}

		if autoApprove {
			return
		}
	}
}

func handleAction(action string, result *matching.Result, logger *zap.Logger) error {
	switch action {
	case PromptShowRanked:
		for i, record := range result.Ranked {
			logger.Info("ranked candidate",
				zap.Int("rank", i+1),
				zap.String("candidate_id", record.CandidateID),
				zap.Float64("lexical_score", record.LexicalScore),
				zap.Float64("combined_score", record.CombinedScore),
				zap.String("status", string(record.Status)),
				zap.String("recommendation", record.Recommendation),
				zap.Strings("matched_terms", record.MatchedTerms),
			)
		}
		return nil
	case PromptShowKeyTerms:
		for _, term := range result.JobKeyTerms {
			logger.Info("job key term",
				zap.String("term", term.Term),
				zap.Float64("weight", term.Weight),
			)
		}
		return nil
	case PromptExportCSV:
		path := outputPath(defaultOutputCSV)
		if err := export.ToFile(path, result, export.WriteCSV); err != nil {
			return fmt.Errorf("export csv: %w", err)
		}
		logger.Info("exported results", zap.String("filename", path))
		return nil
	case PromptExportJSON:
		path := outputPath(defaultOutputJSON)
		if err := export.ToFile(path, result, export.WriteJSON); err != nil {
			return fmt.Errorf("export json: %w", err)
		}
		logger.Info("exported results", zap.String("filename", path))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func outputPath(fallback string) string {
	if path := strings.TrimSpace(viper.GetString("output")); path != "" {
		return path
	}
	return fallback
}

func buildMatchingConfig(config *Config) *matching.Config {
	cfg := &matching.Config{
		SimilarityThreshold: config.Job.SimilarityThreshold,
		BlendWeight:         matching.DefaultBlendWeight,
		Workers:             config.Workers,
		StopWords:           config.StopWords,
	}

	if config.LLM != nil {
		cfg.LLMEnabled = config.LLM.Enabled
		cfg.BlendWeight = config.LLM.BlendWeight
		cfg.LLMTimeout = time.Duration(config.LLM.TimeoutSeconds) * time.Second
		cfg.LLMMaxRetries = config.LLM.MaxRetries
	}

	return cfg
}

// prepareAugmenter builds the semantic scoring path. The path is entirely
// optional: a missing credential or an unsupported provider logs a warning
// and the batch proceeds with lexical scores only.
func prepareAugmenter(ctx context.Context, config *LLMConfig, matchingConfig *matching.Config, logger *zap.Logger) ai.Augmenter {
	if config == nil || !config.Enabled {
		return nil
	}

	augmenter, err := newGeminiAugmenter(ctx, config, matchingConfig, logger)
	if err != nil {
		logger.Warn("skipping semantic augmentation", zap.Error(err))
		return nil
	}

	return augmenter
}

func newGeminiAugmenter(ctx context.Context, config *LLMConfig, matchingConfig *matching.Config, log *zap.Logger) (ai.Augmenter, error) {
	provider := strings.TrimSpace(strings.ToLower(config.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported llm provider: %s", config.Provider)
	}

	if config.Gemini == nil {
		return nil, fmt.Errorf("gemini configuration is required when the llm path is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: config.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set llm.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, config.Gemini.Model)
	if err != nil {
		return nil, err
	}

	augmenterLogger := logger.WithProviderFields(log, "gemini", generator.Model())

	return gemini.NewAugmenter(
		generator,
		matchingConfig.LLMTimeout,
		matchingConfig.LLMMaxRetries,
		config.Gemini.MaxLogLength,
		augmenterLogger,
	), nil
}
