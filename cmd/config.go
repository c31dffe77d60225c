package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort   string `env:"HTTP_PORT" envDefault:"8080"`
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	AppMode  string `env:"APP_MODE" envDefault:"production"`

	// Without brokers, events are only logged.
	KafkaBrokers          []string      `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaOrderEventsTopic string        `env:"KAFKA_ORDER_EVENTS_TOPIC" envDefault:"marketplace.events"`
	KafkaBreakerFailures  uint32        `env:"KAFKA_BREAKER_FAILURES" envDefault:"5"`
	KafkaBreakerTimeout   time.Duration `env:"KAFKA_BREAKER_TIMEOUT" envDefault:"30s"`
	KafkaPublishTimeout   time.Duration `env:"KAFKA_PUBLISH_TIMEOUT" envDefault:"2s"`

	TxMaxAttempts     int           `env:"TX_MAX_ATTEMPTS" envDefault:"5"`
	TxInitialBackoff  time.Duration `env:"TX_INITIAL_BACKOFF" envDefault:"20ms"`
	TxMaxBackoff      time.Duration `env:"TX_MAX_BACKOFF" envDefault:"500ms"`
	PayoutMinAmount   int64         `env:"PAYOUT_MIN_AMOUNT" envDefault:"1"`
	SettlementJobSpec string        `env:"SETTLEMENT_JOB_SCHEDULE" envDefault:"*/30 * * * * *"`
	LedgerAuditSpec   string        `env:"LEDGER_AUDIT_SCHEDULE" envDefault:"0 */5 * * * *"`
}

// LoadConfig reads .env files when present, then the process environment.
// Variables already set in the environment win over .env values.
func LoadConfig(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", file, err)
		}
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
	if c.DBUser == "" {
		errList = append(errList, errors.New("DB_USER is required"))
	}
	if c.DBName == "" {
		errList = append(errList, errors.New("DB_NAME is required"))
	}
	if c.TxMaxAttempts < 1 {
		errList = append(errList, fmt.Errorf("TX_MAX_ATTEMPTS must be positive, got %d", c.TxMaxAttempts))
	}
	if c.PayoutMinAmount < 1 {
		errList = append(errList, fmt.Errorf("PAYOUT_MIN_AMOUNT must be positive, got %d", c.PayoutMinAmount))
	}
	return errors.Join(errList...)
}

// DSN is the PostgreSQL connection URL used by both GORM and the migrator.
func (c Config) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     c.DBName,
		RawQuery: url.Values{"sslmode": {c.DBSslMode}}.Encode(),
	}
	return u.String()
}
