package cmd

import (
	"log"

	"github.com/talentsift/resume-ranker/internal/matching"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "resume-ranker"
)

type Config struct {
	Job *struct {
		File                string  `mapstructure:"file"`
		SimilarityThreshold float64 `mapstructure:"similarity-threshold"`
	} `mapstructure:"job"`
	Manifest  string     `mapstructure:"manifest"`
	Workers   int        `mapstructure:"workers"`
	StopWords []string   `mapstructure:"stop-words"`
	LLM       *LLMConfig `mapstructure:"llm"`
}

type LLMConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	Provider       string        `mapstructure:"provider"`
	BlendWeight    float64       `mapstructure:"blend-weight"`
	TimeoutSeconds int           `mapstructure:"timeout-seconds"`
	MaxRetries     int           `mapstructure:"max-retries"`
	Gemini         *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resume-ranker matches a batch of parsed resumes against a job description and produces a ranked shortlist",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("llm.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	viper.SetDefault("job.similarity-threshold", matching.DefaultThreshold)
	viper.SetDefault("llm.blend-weight", matching.DefaultBlendWeight)
	viper.SetDefault("llm.timeout-seconds", 30)
	viper.SetDefault("llm.max-retries", 2)

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resume-ranker.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config needed only for run command now. If there is no config, we can skip initialization
	if runCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
