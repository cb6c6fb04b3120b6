package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: values that differ between environments (port, DB, provider keys)
// - default: values common across all environments (timeouts, retry policy)
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	CORS    CORSConfig
	Log     LogConfig
	JWT     JWTConfig
	Mail    MailConfig
	Payment PaymentConfig
	Queue   QueueConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
}

type JWTConfig struct {
	Secret   string        `envconfig:"JWT_SECRET" required:"true"`
	Duration time.Duration `envconfig:"JWT_DURATION" default:"24h"`
}

// MailConfig configures the transactional mail provider (Brevo-compatible HTTP API).
type MailConfig struct {
	APIKey    string        `envconfig:"MAIL_API_KEY" required:"true"`
	Endpoint  string        `envconfig:"MAIL_ENDPOINT" default:"https://api.brevo.com/v3/smtp/email"`
	FromEmail string        `envconfig:"MAIL_FROM_EMAIL" required:"true"`
	FromName  string        `envconfig:"MAIL_FROM_NAME" default:"Room Reservations"`
	Timeout   time.Duration `envconfig:"MAIL_TIMEOUT" default:"10s"`
}

// PaymentConfig configures the checkout provider (Stripe-compatible HTTP API).
type PaymentConfig struct {
	SecretKey      string        `envconfig:"PAYMENT_SECRET_KEY" required:"true"`
	PublishableKey string        `envconfig:"PAYMENT_PUBLISHABLE_KEY" required:"true"`
	WebhookSecret  string        `envconfig:"PAYMENT_WEBHOOK_SECRET" required:"true"`
	BaseURL        string        `envconfig:"PAYMENT_BASE_URL" default:"https://api.stripe.com"`
	SuccessURL     string        `envconfig:"PAYMENT_SUCCESS_URL" required:"true"`
	CancelURL      string        `envconfig:"PAYMENT_CANCEL_URL" required:"true"`
	Timeout        time.Duration `envconfig:"PAYMENT_TIMEOUT" default:"15s"`
}

// QueueConfig configures the email dispatch queue.
type QueueConfig struct {
	MaxAttempts   int32         `envconfig:"QUEUE_MAX_ATTEMPTS" default:"3"`
	RetryBackoff  time.Duration `envconfig:"QUEUE_RETRY_BACKOFF" default:"5m"`
	DrainInterval time.Duration `envconfig:"QUEUE_DRAIN_INTERVAL" default:"30s"`
	BatchSize     int32         `envconfig:"QUEUE_BATCH_SIZE" default:"50"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

// NewTestConfig returns a fully populated Config for tests that assemble the
// application without environment variables. Outbound endpoints point at
// unroutable addresses so nothing leaves the test environment.
func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
		},
		CORS: CORSConfig{
			AllowOrigins:  []string{"http://localhost:3000"},
			AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders: []string{"Content-Length"},
			MaxAge:        12 * time.Hour,
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{
			Secret:   "e2e-test-secret",
			Duration: time.Hour,
		},
		Mail: MailConfig{
			APIKey:    "test-api-key",
			Endpoint:  "http://127.0.0.1:1/v3/smtp/email",
			FromEmail: "noreply@example.com",
			FromName:  "Room Reservations",
			Timeout:   2 * time.Second,
		},
		Payment: PaymentConfig{
			SecretKey:      "sk_test_e2e",
			PublishableKey: "pk_test_e2e",
			WebhookSecret:  "whsec_e2e_test",
			BaseURL:        "http://127.0.0.1:1",
			SuccessURL:     "http://localhost:3000/checkout/success",
			CancelURL:      "http://localhost:3000/checkout/cancel",
			Timeout:        2 * time.Second,
		},
		Queue: QueueConfig{
			MaxAttempts:   3,
			RetryBackoff:  5 * time.Minute,
			DrainInterval: 30 * time.Second,
			BatchSize:     50,
		},
	}
}
