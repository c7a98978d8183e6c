package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App     App     `mapstructure:"app"`
	AI      AI      `mapstructure:"ai"`
	News    News    `mapstructure:"news"`
	Fetch   Fetch   `mapstructure:"fetch"`
	TTS     TTS     `mapstructure:"tts"`
	Survey  Survey  `mapstructure:"survey"`
	Logging Logging `mapstructure:"logging"`
}

// App holds general application configuration
type App struct {
	Debug      bool   `mapstructure:"debug"`
	DataDir    string `mapstructure:"data_dir"`
	ConfigFile string `mapstructure:"config_file"`
}

// AI holds LLM configuration
type AI struct {
	Gemini GeminiConfig `mapstructure:"gemini"`
}

// GeminiConfig holds Google Gemini configuration
type GeminiConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	Timeout     string  `mapstructure:"timeout"`
	MaxTokens   int32   `mapstructure:"max_tokens"`
	Temperature float32 `mapstructure:"temperature"`
}

// News holds news search provider configuration
type News struct {
	Provider string      `mapstructure:"provider"`
	Display  int         `mapstructure:"display"`
	Timeout  string      `mapstructure:"timeout"`
	Naver    NaverConfig `mapstructure:"naver"`
}

// NaverConfig holds Naver Open API credentials
type NaverConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
}

// Fetch holds article fetching configuration
type Fetch struct {
	UserAgent string `mapstructure:"user_agent"`
	Timeout   string `mapstructure:"timeout"`
}

// TTS holds text-to-speech configuration
type TTS struct {
	Enabled    bool             `mapstructure:"enabled"`
	Speed      float64          `mapstructure:"speed"`
	CacheDir   string           `mapstructure:"cache_dir"`
	Timeout    string           `mapstructure:"timeout"`
	ElevenLabs ElevenLabsConfig `mapstructure:"elevenlabs"`
}

// ElevenLabsConfig holds ElevenLabs credentials and voice selection
type ElevenLabsConfig struct {
	APIKey  string `mapstructure:"api_key"`
	VoiceID string `mapstructure:"voice_id"`
}

// Survey holds survey-mode configuration
type Survey struct {
	MaxCategories     int `mapstructure:"max_categories"`
	SamplesPerSection int `mapstructure:"samples_per_section"`
}

// Logging holds logging configuration
type Logging struct {
	Level string `mapstructure:"level"`
}

var globalConfig *Config

// Load loads the configuration from .env, config file, environment and
// defaults, in the usual viper precedence order.
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	// Load .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Printf("Warning: Error loading .env file: %v\n", err)
		}
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".ceobot")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	bindEnvironmentVariables()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary.
func Get() *Config {
	if globalConfig == nil {
		config, err := Load("")
		if err != nil {
			panic(fmt.Sprintf("Failed to load configuration: %v", err))
		}
		return config
	}
	return globalConfig
}

// Reset forgets the loaded configuration. Intended for tests.
func Reset() {
	globalConfig = nil
	viper.Reset()
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.data_dir", ".ceobot-cache")

	viper.SetDefault("ai.gemini.model", "gemini-2.0-flash")
	viper.SetDefault("ai.gemini.timeout", "30s")
	viper.SetDefault("ai.gemini.max_tokens", 4096)
	viper.SetDefault("ai.gemini.temperature", 0.2)

	viper.SetDefault("news.provider", "naver")
	viper.SetDefault("news.display", 5)
	viper.SetDefault("news.timeout", "15s")

	viper.SetDefault("fetch.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	viper.SetDefault("fetch.timeout", "20s")

	viper.SetDefault("tts.enabled", true)
	viper.SetDefault("tts.speed", 1.3)
	viper.SetDefault("tts.cache_dir", "audio")
	viper.SetDefault("tts.timeout", "60s")

	viper.SetDefault("survey.max_categories", 6)
	viper.SetDefault("survey.samples_per_section", 3)

	viper.SetDefault("logging.level", "info")
}

// bindEnvironmentVariables sets up flexible environment variable binding
func bindEnvironmentVariables() {
	bindEnvKeys("ai.gemini.api_key", []string{
		"GEMINI_API_KEY",
		"GOOGLE_GEMINI_API_KEY",
		"GOOGLE_AI_API_KEY",
	})

	bindEnvKeys("news.naver.client_id", []string{
		"NAVER_CLIENT_ID",
	})
	bindEnvKeys("news.naver.client_secret", []string{
		"NAVER_CLIENT_SECRET",
	})

	bindEnvKeys("tts.elevenlabs.api_key", []string{
		"ELEVENLABS_API_KEY",
		"ELEVEN_LABS_API_KEY",
		"XI_API_KEY",
	})
	bindEnvKeys("tts.elevenlabs.voice_id", []string{
		"ELEVENLABS_VOICE_ID",
		"VOICE_ID",
	})
}

// bindEnvKeys binds a config key to its environment variable aliases
func bindEnvKeys(configKey string, envKeys []string) {
	for _, envKey := range envKeys {
		if err := viper.BindEnv(configKey, envKey); err != nil {
			fmt.Printf("Warning: Failed to bind %s to %s: %v\n", configKey, envKey, err)
		}
	}
}

// validateConfig checks settings that would otherwise fail deep inside a turn
func validateConfig(config *Config) error {
	if config.News.Display <= 0 {
		return fmt.Errorf("news.display must be positive, got %d", config.News.Display)
	}
	if config.TTS.Speed < 0.5 || config.TTS.Speed > 2.0 {
		return fmt.Errorf("tts.speed must be between 0.5 and 2.0, got %g", config.TTS.Speed)
	}
	return nil
}
