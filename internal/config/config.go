package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	StorageMongo  = "mongo"
	StorageMySQL  = "mysql"
	StorageMemory = "memory"
)

type Config struct {
	AppPort    string `env:"APP_PORT" env-default:"8080"`
	AppName    string `env:"APP_NAME" env-default:"devflow"`
	AppVersion string `env:"APP_VERSION" env-default:"dev"`

	StorageDriver string `env:"STORAGE_DRIVER" env-default:"mongo"`

	MongoURI      string `env:"MONGO_URI" env-default:"mongodb://mongo:27017"`
	MongoDatabase string `env:"MONGO_DATABASE" env-default:"devflow"`

	DbHost     string `env:"MYSQL_HOST" env-default:"db"`
	DbPort     string `env:"MYSQL_PORT" env-default:"3306"`
	DbUser     string `env:"MYSQL_USER" env-default:"devflow"`
	DbPassword string `env:"MYSQL_PASSWORD" env-default:"devflow"`
	DbName     string `env:"MYSQL_DATABASE" env-default:"devflow"`
	DbParams   string `env:"MYSQL_PARAMS" env-default:"parseTime=true&multiStatements=true"`

	RedisURL string `env:"REDIS_URL"`

	SessionSecret string        `env:"SESSION_SECRET"`
	SessionTTL    time.Duration `env:"SESSION_TTL" env-default:"720h"`

	TelegramBotToken   string        `env:"TELEGRAM_BOT_TOKEN"`
	TelegramAuthMaxAge time.Duration `env:"TELEGRAM_AUTH_MAX_AGE" env-default:"24h"`

	TranslationFolder string        `env:"TRANSLATION_FOLDER" env-default:"pkg/translator/translation"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"30s"`

	RawPromoFitEmails string `env:"PROMO_FIT_EMAILS"`
	RawTrustedProxies string `env:"TRUSTED_PROXIES"`

	// Parsed from the raw values above.
	PromoFitEmails []string
	TrustedProxies []string
}

// LoadConfig reads .env (when present) and the process environment once.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	cfg.PromoFitEmails = parseList(cfg.RawPromoFitEmails, strings.ToLower)
	cfg.TrustedProxies = parseList(cfg.RawTrustedProxies, nil)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.StorageDriver {
	case StorageMongo, StorageMySQL, StorageMemory:
	default:
		return fmt.Errorf("STORAGE_DRIVER must be one of %s, %s, %s; got %q",
			StorageMongo, StorageMySQL, StorageMemory, c.StorageDriver)
	}
	if strings.TrimSpace(c.SessionSecret) == "" {
		return errors.New("SESSION_SECRET is required")
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	return nil
}

func parseList(value string, normalize func(string) string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		if normalize != nil {
			item = normalize(item)
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		return nil
	}

	return items
}
