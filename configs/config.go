package configs

import (
	"log"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config struct
type Config struct {
	App       `mapstructure:"app"`
	Postgres  `mapstructure:"postgres"`
	Telegram  `mapstructure:"telegram"`
	OpenAI    `mapstructure:"openai"`
	Retry     `mapstructure:"retry"`
	RateLimit `mapstructure:"rate_limit"`
	Auth      `mapstructure:"auth"`
	Session   `mapstructure:"session"`
}

// App struct
type App struct {
	Debug bool   `mapstructure:"debug"`
	Env   string `mapstructure:"env"`
	Port  string `mapstructure:"port"`
}

// Postgres struct - Optional durable session storage; in-memory when Host is empty
type Postgres struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DbName   string `mapstructure:"database"`
	SSLMode  bool   `mapstructure:"sslmode"`
}

// Telegram struct
type Telegram struct {
	BotToken      string `mapstructure:"bot_token"`
	WebhookURL    string `mapstructure:"webhook_url"`
	WebhookSecret string `mapstructure:"webhook_secret"`
}

// OpenAI struct
type OpenAI struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
}

// Retry struct - LLM gateway retry policy
type Retry struct {
	MaxRetries  int `mapstructure:"max_retries"`
	BaseDelayMs int `mapstructure:"base_delay_ms"`
}

// RateLimit struct - Daily per-user quota
type RateLimit struct {
	Enabled           bool `mapstructure:"enabled"`
	DailyMessageLimit int  `mapstructure:"daily_message_limit"`
	ResetHour         int  `mapstructure:"reset_hour"`
}

// Auth struct - Code-word gate for chats
type Auth struct {
	Enabled  bool   `mapstructure:"enabled"`
	CodeWord string `mapstructure:"code_word"`
}

// Session struct
type Session struct {
	ExpiryHours int `mapstructure:"expiry_hours"`
}

var config Config

// InitViper func
func InitViper(path, env string) {
	getConfig(path, env)
}

// GetViper func
func GetViper() *Config {
	return &config
}

func getConfig(path, env string) {
	viper.SetConfigName("config")
	viper.AddConfigPath(path)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	err := viper.ReadInConfig()
	if err != nil {
		// Env-only deployments carry no config file
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			panic(err)
		}
	} else {
		viper.WatchConfig()
		viper.OnConfigChange(func(e fsnotify.Event) {
			log.Println("Config file has changed: ", e.Name)
		})
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		log.Fatalln(err)
	}
}

func setDefaults() {
	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.port", "3000")

	viper.SetDefault("postgres.host", "")
	viper.SetDefault("postgres.port", "")
	viper.SetDefault("postgres.username", "")
	viper.SetDefault("postgres.password", "")
	viper.SetDefault("postgres.database", "")
	viper.SetDefault("postgres.sslmode", false)

	viper.SetDefault("telegram.bot_token", "")
	viper.SetDefault("telegram.webhook_url", "")
	viper.SetDefault("telegram.webhook_secret", "")

	viper.SetDefault("openai.base_url", "https://api.openai.com")
	viper.SetDefault("openai.api_key", "")
	viper.SetDefault("openai.model", "gpt-4o-mini")

	viper.SetDefault("retry.max_retries", 3)
	viper.SetDefault("retry.base_delay_ms", 1000)

	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.daily_message_limit", 50)
	viper.SetDefault("rate_limit.reset_hour", 0)

	viper.SetDefault("auth.enabled", true)
	viper.SetDefault("auth.code_word", "translate")

	viper.SetDefault("session.expiry_hours", 24)
}
