package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
)

const (
	CallProviderSimulated = "simulated"
	CallProviderWebhook   = "webhook"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	// An empty DBHost runs the service on the in-memory store.
	DBHost     string `env:"DB_HOST"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"shipping"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	// Without brokers domain events are only logged.
	KafkaBrokers            []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaParcelChangedTopic string   `env:"KAFKA_PARCEL_CHANGED_TOPIC" envDefault:"parcel.changed"`

	SessionSecret string        `env:"SESSION_SECRET" envDefault:"local-development-session-secret"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	TariffRatePerKg float64 `env:"TARIFF_RATE_PER_KG" envDefault:"15"`
	TariffFXRate    float64 `env:"TARIFF_FX_RATE" envDefault:"83"`

	CallProvider          string        `env:"CALL_PROVIDER" envDefault:"simulated"`
	CallProviderURL       string        `env:"CALL_PROVIDER_URL"`
	CallProviderAPIKey    string        `env:"CALL_PROVIDER_API_KEY"`
	CallCallbackURL       string        `env:"CALL_CALLBACK_URL"`
	CallWebhookSecret     string        `env:"CALL_WEBHOOK_SECRET"`
	CallTimeout           time.Duration `env:"CALL_TIMEOUT" envDefault:"2m"`
	SimulatedConnectAfter time.Duration `env:"SIMULATED_CONNECT_AFTER" envDefault:"2s"`
	SimulatedAnswerAfter  time.Duration `env:"SIMULATED_ANSWER_AFTER" envDefault:"3s"`

	StaleCallSchedule string        `env:"STALE_CALL_SCHEDULE" envDefault:"@every 1m"`
	StaleCallAfter    time.Duration `env:"STALE_CALL_AFTER" envDefault:"5m"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// LoadConfig reads .env when present and then the process environment.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errList []error
	switch c.CallProvider {
	case CallProviderSimulated:
	case CallProviderWebhook:
		if c.CallProviderURL == "" {
			errList = append(errList, errors.New("CALL_PROVIDER_URL is required for the webhook provider"))
		}
		if c.CallWebhookSecret == "" {
			errList = append(errList, errors.New("CALL_WEBHOOK_SECRET is required for the webhook provider"))
		}
	default:
		errList = append(errList, fmt.Errorf("unknown CALL_PROVIDER %q", c.CallProvider))
	}
	if c.CallTimeout <= 0 {
		errList = append(errList, errors.New("CALL_TIMEOUT must be positive"))
	}
	if c.StaleCallAfter <= c.CallTimeout {
		errList = append(errList, errors.New("STALE_CALL_AFTER must exceed CALL_TIMEOUT"))
	}
	return errors.Join(errList...)
}

// UsesDatabase reports whether PostgreSQL is configured.
func (c Config) UsesDatabase() bool {
	return c.DBHost != ""
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
