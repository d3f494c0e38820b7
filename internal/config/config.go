package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is loaded once in main and passed by injection. Nothing in the
// request path reads the environment directly.
type Config struct {
	AppPort string `envconfig:"APP_PORT" default:"3000"`
	AppEnv  string `envconfig:"APP_ENV" default:"development"`

	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD" default:"postgres"`
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBName     string `envconfig:"DB_NAME" default:"stream_sync_lite"`

	// Access and refresh tokens are signed with distinct secrets so that
	// one class can never be presented in place of the other.
	JWTAccessSecret  string        `envconfig:"JWT_ACCESS_SECRET" required:"true"`
	JWTRefreshSecret string        `envconfig:"JWT_REFRESH_SECRET" required:"true"`
	JWTAccessExpiry  time.Duration `envconfig:"JWT_ACCESS_EXPIRY" default:"15m"`
	JWTRefreshExpiry time.Duration `envconfig:"JWT_REFRESH_EXPIRY" default:"168h"`

	NATSURL string `envconfig:"NATS_URL" default:"nats://localhost:4222"`

	OTELExporterEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT" default:""`

	S3Endpoint string `envconfig:"S3_ENDPOINT" default:""`
	S3Bucket   string `envconfig:"S3_BUCKET" default:"stream-sync-assets"`
	S3Region   string `envconfig:"S3_REGION" default:"us-east-1"`

	APNSAuthKeyPath string `envconfig:"APNS_AUTH_KEY_PATH" default:""`
	APNSKeyID       string `envconfig:"APNS_KEY_ID" default:""`
	APNSTeamID      string `envconfig:"APNS_TEAM_ID" default:""`
	APNSTopic       string `envconfig:"APNS_TOPIC" default:""`
	APNSMode        string `envconfig:"APNS_MODE" default:"development"`
}

func Load() (Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	return c, err
}

func (c Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}
