package cmd

import (
	"errors"
	"log"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "cv-matcher"
)

type Config struct {
	AI    *AIConfig    `mapstructure:"ai"`
	Match *MatchConfig `mapstructure:"match"`
}

type AIConfig struct {
	Embedding    *EmbeddingConfig  `mapstructure:"embedding"`
	Generation   *GenerationConfig `mapstructure:"generation"`
	Ollama       *OllamaConfig     `mapstructure:"ollama"`
	Gemini       *GeminiConfig     `mapstructure:"gemini"`
	Timeout      time.Duration     `mapstructure:"timeout"`
	MaxLogLength int               `mapstructure:"max-log-length"`
}

type EmbeddingConfig struct {
	Provider string `mapstructure:"provider"`
	Model    string `mapstructure:"model"`
	// DemoFallback substitutes random vectors for failed embeddings. Scores become meaningless.
	DemoFallback bool `mapstructure:"demo-fallback"`
}

type GenerationConfig struct {
	Provider   string `mapstructure:"provider"`
	Model      string `mapstructure:"model"`
	MaxRetries int    `mapstructure:"max-retries"`
}

type OllamaConfig struct {
	BaseURL string `mapstructure:"base-url"`
}

type GeminiConfig struct {
	APIKeyFile string `mapstructure:"api-key-file"`
}

type MatchConfig struct {
	MinimumScore float64  `mapstructure:"minimum-score"`
	Exclude      []string `mapstructure:"exclude"`
	ExcludeFile  string   `mapstructure:"exclude-file"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "cv-matcher scores how well candidate profiles fit a job using embeddings and LLMs",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	bindEnv("ai.ollama.base-url", "OLLAMA_API_BASE")
	bindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE")
	bindEnv("ai.embedding.model", "EMBEDDING_MODEL")

	viper.SetDefault("ai.embedding.provider", "ollama")
	viper.SetDefault("ai.generation.provider", "ollama")
	viper.SetDefault("ai.generation.max-retries", 3)
	viper.SetDefault("ai.timeout", "60s")
	viper.SetDefault("ai.max-log-length", 200)

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is cv-matcher.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func bindEnv(key, env string) {
	if err := viper.BindEnv(key, env); err != nil {
		log.Fatalf("binding %s environment variable: %v", env, err)
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
	}

	// Without an explicit --config the file is optional: defaults and env cover local Ollama.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}
	if config.AI == nil {
		config.AI = &AIConfig{}
	}
	if config.AI.Embedding == nil {
		config.AI.Embedding = &EmbeddingConfig{}
	}
	if config.AI.Generation == nil {
		config.AI.Generation = &GenerationConfig{}
	}
	if config.AI.Ollama == nil {
		config.AI.Ollama = &OllamaConfig{}
	}
	if config.AI.Gemini == nil {
		config.AI.Gemini = &GeminiConfig{}
	}
	if config.Match == nil {
		config.Match = &MatchConfig{}
	}

	return config, nil
}
