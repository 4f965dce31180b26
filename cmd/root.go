package cmd

import (
	"context"
	"errors"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/kindredlabs/matchcore/internal/ai/gemini"
	"github.com/kindredlabs/matchcore/internal/extract"
	"github.com/kindredlabs/matchcore/internal/secrets"
	"github.com/kindredlabs/matchcore/internal/store"
)

const (
	app = "matchcore"
)

type Config struct {
	Database *DatabaseConfig `mapstructure:"database"`
	AI       *AIConfig       `mapstructure:"ai"`
}

type DatabaseConfig struct {
	DSN     string `mapstructure:"dsn"`
	DSNFile string `mapstructure:"dsn-file"`
}

type AIConfig struct {
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "matchcore is the compatibility engine behind the match pool: it scores onboarding answers and computes pairwise matches",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}
	if err := viper.BindEnv("database.dsn-file", "MATCHCORE_DSN_FILE"); err != nil {
		log.Fatalf("binding MATCHCORE_DSN_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is matchcore.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)

		// An explicitly requested config file must parse.
		if err := viper.ReadInConfig(); err != nil {
			log.Fatal(err)
		}
		return
	}

	viper.AddConfigPath(".")
	viper.SetConfigName(app + ".yaml")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

var (
	errDatabaseRequired = errors.New("database configuration is required (set database.dsn or database.dsn-file)")
	errGeminiRequired   = errors.New("gemini configuration is required (set ai.gemini in the config file)")
)

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}

// openStore resolves the database DSN and connects the score store.
func openStore(config *Config, logger *zap.Logger) (store.Store, error) {
	if config == nil || config.Database == nil {
		return nil, errDatabaseRequired
	}

	dsn, err := secrets.Load(secrets.Source{
		Name:  "database dsn",
		Value: config.Database.DSN,
		File:  config.Database.DSNFile,
	})
	if err != nil {
		return nil, err
	}

	return store.Open(dsn, logger)
}

// newScoreExtractor wires the Gemini-backed extraction pipeline against the
// provided store.
func newScoreExtractor(ctx context.Context, config *Config, st store.Store, logger *zap.Logger) (*extract.Extractor, error) {
	if config == nil || config.AI == nil || config.AI.Gemini == nil {
		return nil, errGeminiRequired
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: config.AI.Gemini.APIKey,
		File:  config.AI.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, err
	}

	genLogger := logger.With(
		zap.String("provider", "gemini"),
		zap.String("model", config.AI.Gemini.Model),
	)

	generator, err := gemini.NewGenerator(ctx, apiKey, config.AI.Gemini.Model, config.AI.Gemini.MaxRetries, genLogger)
	if err != nil {
		return nil, err
	}

	aiExtractor := gemini.NewExtractor(generator, genLogger, config.AI.Gemini.MaxLogLength)

	return extract.New(aiExtractor, st, logger), nil
}
