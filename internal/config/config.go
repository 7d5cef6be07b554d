package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Pixabay  PixabayConfig  `mapstructure:"pixabay"`
	Keywords KeywordsConfig `mapstructure:"keywords"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	GeminiAI GeminiAIConfig `mapstructure:"gemini"`
	Storage  StorageConfig  `mapstructure:"storage"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type CORSConfig struct {
	AllowOrigins     []string `mapstructure:"allow_origins"`
	AllowMethods     []string `mapstructure:"allow_methods"`
	AllowHeaders     []string `mapstructure:"allow_headers"`
	ExposeHeaders    []string `mapstructure:"expose_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
}

// PixabayConfig describes the media provider. PageSize is the combined volume and is
// split evenly between the image and video endpoints.
type PixabayConfig struct {
	APIKey     string        `mapstructure:"api_key"`
	ImageURL   string        `mapstructure:"image_url"`
	VideoURL   string        `mapstructure:"video_url"`
	Language   string        `mapstructure:"language"`
	PageSize   int           `mapstructure:"page_size"`
	MaxRetries int           `mapstructure:"max_retries"`
	RetryDelay time.Duration `mapstructure:"retry_delay"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// KeywordsConfig selects the language model used to turn scene text into search terms.
// Provider is one of "gemini", "openai" or "none".
type KeywordsConfig struct {
	Provider string `mapstructure:"provider"`
}

type OpenAIConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type GeminiAIConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type StorageConfig struct {
	Bucket          string `mapstructure:"bucket"`
	CredentialsJSON string `mapstructure:"credentials_json"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "5001")
	v.SetDefault("log.level", "info")

	v.SetDefault("cors.allow_origins", []string{"*"})
	v.SetDefault("cors.allow_methods", []string{"GET", "POST", "OPTIONS"})
	v.SetDefault("cors.allow_headers", []string{"Origin", "Content-Type", "Accept"})
	v.SetDefault("cors.expose_headers", []string{"Content-Length", "X-Request-ID"})
	v.SetDefault("cors.allow_credentials", false)

	v.SetDefault("pixabay.api_key", "")
	v.SetDefault("pixabay.image_url", "https://pixabay.com/api/")
	v.SetDefault("pixabay.video_url", "https://pixabay.com/api/videos/")
	v.SetDefault("pixabay.language", "es")
	v.SetDefault("pixabay.page_size", 50)
	v.SetDefault("pixabay.max_retries", 3)
	v.SetDefault("pixabay.retry_delay", time.Second)
	v.SetDefault("pixabay.timeout", 15*time.Second)

	v.SetDefault("keywords.provider", "gemini")
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", "gemini-1.5-flash")

	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.credentials_json", "")
}

// LoadConfig reads the optional .env file and yaml file, then overlays the environment.
// Either path may be empty or point to a missing file.
func LoadConfig(configPath string, envPath string) (*Config, error) {
	// Load .env file first
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Names used by the original deployment.
	_ = v.BindEnv("storage.bucket", "STORAGE_BUCKET", "GCS_BUCKET_NAME")
	_ = v.BindEnv("storage.credentials_json", "STORAGE_CREDENTIALS_JSON", "GCS_CREDENTIALS_JSON")
	_ = v.BindEnv("server.port", "SERVER_PORT", "PORT")

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			v.SetConfigFile(configPath)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, err
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
