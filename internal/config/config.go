package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	DB         DBConfig
	Generation GenerationConfig
	Logger     LoggerConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DBConfig struct {
	Path          string
	MigrationsDir string
}

// GenerationConfig selects and configures the text-generation backend.
// An empty API key is not an error; the service then runs in fallback-only mode.
type GenerationConfig struct {
	Source string // "gemini" or "openai"
	Gemini GeminiConfig
	OpenAI OpenAIConfig
}

type GeminiConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

type OpenAIConfig struct {
	APIKey string
	Model  string
}

type LoggerConfig struct {
	Env   string
	Level string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetDefault("server.port", 8000)
	viper.SetDefault("server.read_timeout", 20)
	viper.SetDefault("server.write_timeout", 75)
	viper.SetDefault("db.path", "quiz.db")
	viper.SetDefault("db.migrations_dir", "database/migrations")
	viper.SetDefault("generation.source", "gemini")
	viper.SetDefault("generation.gemini.base_url", "https://generativelanguage.googleapis.com/v1beta")
	viper.SetDefault("generation.gemini.model", "gemini-2.5-flash")
	viper.SetDefault("generation.openai.model", "gpt-4o-mini")
	viper.SetDefault("logger.env", "development")
	viper.SetDefault("logger.level", "info")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Config file is optional; env vars and defaults are enough to run.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
		},
		DB: DBConfig{
			Path:          viper.GetString("db.path"),
			MigrationsDir: viper.GetString("db.migrations_dir"),
		},
		Generation: GenerationConfig{
			Source: viper.GetString("generation.source"),
			Gemini: GeminiConfig{
				APIKey:  viper.GetString("generation.gemini.api_key"),
				BaseURL: viper.GetString("generation.gemini.base_url"),
				Model:   viper.GetString("generation.gemini.model"),
			},
			OpenAI: OpenAIConfig{
				APIKey: viper.GetString("generation.openai.api_key"),
				Model:  viper.GetString("generation.openai.model"),
			},
		},
		Logger: LoggerConfig{
			Env:   viper.GetString("logger.env"),
			Level: viper.GetString("logger.level"),
		},
	}

	// Override with environment variables if set
	if port := os.Getenv("SERVER_PORT"); port != "" {
		config.Server.Port = viper.GetInt("SERVER_PORT")
	}
	if dbPath := os.Getenv("DB_PATH"); dbPath != "" {
		config.DB.Path = dbPath
	}
	if source := os.Getenv("GENERATION_SOURCE"); source != "" {
		config.Generation.Source = source
	}
	if geminiKey := os.Getenv("GEMINI_API_KEY"); geminiKey != "" {
		config.Generation.Gemini.APIKey = geminiKey
	}
	if geminiURL := os.Getenv("GEMINI_BASE_URL"); geminiURL != "" {
		config.Generation.Gemini.BaseURL = geminiURL
	}
	if openAIKey := os.Getenv("OPENAI_API_KEY"); openAIKey != "" {
		config.Generation.OpenAI.APIKey = openAIKey
	}
	if env := os.Getenv("ENV"); env != "" {
		config.Logger.Env = env
	}

	return config, nil
}
