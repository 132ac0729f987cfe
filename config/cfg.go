package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	httpapi "github.com/hireai/waitlist-manager/internal/api/http"
	"github.com/hireai/waitlist-manager/internal/apisrv/auth"
	"github.com/hireai/waitlist-manager/internal/bucket"
	"github.com/hireai/waitlist-manager/internal/mail"
	"github.com/hireai/waitlist-manager/internal/ratelimit"
	"github.com/hireai/waitlist-manager/internal/sms"
	"github.com/hireai/waitlist-manager/internal/store"
	"github.com/hireai/waitlist-manager/internal/store/bunt"
	"github.com/hireai/waitlist-manager/internal/verification"
	"github.com/hireai/waitlist-manager/internal/waitlist"
	"github.com/hireai/waitlist-manager/log"
	"github.com/spf13/viper"
)

const (
	StorageMySQL = "mysql"
	StorageBunt  = "bunt"
)

// StorageConfig selects the storage backend.
type StorageConfig struct {
	Type string `mapstructure:"type"`
}

// Config represents the global configuration for the service.
type Config struct {
	Storage      StorageConfig       `mapstructure:"storage"`
	DB           store.Config        `mapstructure:"mysql"`
	Bunt         bunt.Config         `mapstructure:"bunt"`
	Logger       log.Config          `mapstructure:"logger"`
	HTTP         httpapi.Config      `mapstructure:"http"`
	Auth         auth.Config         `mapstructure:"auth"`
	Bucket       bucket.Config       `mapstructure:"bucket"`
	Mailer       mail.Config         `mapstructure:"mailer"`
	SMS          sms.Config          `mapstructure:"sms"`
	Verification verification.Config `mapstructure:"verification"`
	Waitlist     waitlist.Config     `mapstructure:"waitlist"`
	RateLimit    ratelimit.Config    `mapstructure:"ratelimit"`
}

// LoadConfig loads the configuration from a file and/or environment variables.
// Environment variables take precedence over config file values.
// Env vars use underscores and uppercase, e.g., MYSQL_DSN, AUTH_JWT_SECRET
// Nested config keys use double underscore, e.g., MYSQL__DSN for mysql.dsn
func LoadConfig(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("toml")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "__", "-", "__"))

	setDefaults(v)
	bindEnvVars(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/config/waitlist-manager")
		v.AddConfigPath("/etc/waitlist-manager")
		if err := v.ReadInConfig(); err != nil {
			var nf viper.ConfigFileNotFoundError
			if !errors.As(err, &nf) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config into struct: %w", err)
	}

	// Handle MySQL DSN construction from individual env vars if DSN is not set
	if config.DB.DSN == "" {
		mysqlHost := os.Getenv("MYSQL_HOST")
		mysqlPort := os.Getenv("MYSQL_PORT")
		mysqlUser := os.Getenv("MYSQL_USER")
		mysqlPassword := os.Getenv("MYSQL_PASSWORD")
		mysqlDatabase := os.Getenv("MYSQL_DATABASE")

		if mysqlHost != "" && mysqlUser != "" && mysqlPassword != "" && mysqlDatabase != "" {
			if mysqlPort == "" {
				mysqlPort = "3306"
			}
			config.DB.DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true",
				mysqlUser, mysqlPassword, mysqlHost, mysqlPort, mysqlDatabase)
			if config.DB.TLSCAPath != "" {
				config.DB.DSN += "&tls=custom"
			}
		}
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) validate() error {
	switch c.Storage.Type {
	case StorageMySQL:
		if c.DB.DSN == "" {
			return fmt.Errorf("mysql storage selected but mysql.dsn is empty")
		}
	case StorageBunt:
	default:
		return fmt.Errorf("unknown storage type %q", c.Storage.Type)
	}
	switch c.Verification.Channel {
	case "", verification.ChannelEmail:
	case verification.ChannelSMS:
		if !c.SMS.Enabled() {
			return fmt.Errorf("sms verification channel selected but sms is not configured")
		}
	default:
		return fmt.Errorf("unknown verification channel %q", c.Verification.Channel)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.type", StorageBunt)
	v.SetDefault("http.port", "8081")
	v.SetDefault("http.address", "0.0.0.0")
	v.SetDefault("http.request_timeout", "30s")
	v.SetDefault("auth.jwt_ttl", "24h")
	v.SetDefault("mailer.worker_interval", "1m")
	v.SetDefault("verification.code_ttl", "10m")
	v.SetDefault("verification.delivery_timeout", "10s")
	v.SetDefault("verification.channel", verification.ChannelEmail)
	v.SetDefault("waitlist.default_phone_region", "US")
	v.SetDefault("ratelimit.enabled", true)
}

// bindEnvVars binds environment variables to config keys
// This allows using both nested keys (MYSQL__DSN) and flat keys (MYSQL_DSN)
func bindEnvVars(v *viper.Viper) {
	// Storage
	v.BindEnv("storage.type", "STORAGE_TYPE")
	v.BindEnv("bunt.path", "BUNT_PATH")

	// MySQL
	v.BindEnv("mysql.dsn", "MYSQL_DSN")
	v.BindEnv("mysql.automigrate", "MYSQL_AUTOMIGRATE")
	v.BindEnv("mysql.max_open_connections", "MYSQL_MAX_OPEN_CONNECTIONS")
	v.BindEnv("mysql.max_idle_connections", "MYSQL_MAX_IDLE_CONNECTIONS")
	v.BindEnv("mysql.tls_ca_path", "MYSQL_TLS_CA_PATH")

	// Logger
	v.BindEnv("logger.level", "LOG_LEVEL")
	v.BindEnv("logger.add_source", "LOG_ADD_SOURCE")

	// HTTP
	v.BindEnv("http.port", "HTTP_PORT", "PORT")
	v.BindEnv("http.address", "HTTP_ADDRESS")
	v.BindEnv("http.allowed_origins", "HTTP_ALLOWED_ORIGINS")
	v.BindEnv("http.request_timeout", "HTTP_REQUEST_TIMEOUT")

	// Auth
	v.BindEnv("auth.jwt_secret", "AUTH_JWT_SECRET")
	v.BindEnv("auth.jwt_ttl", "AUTH_JWT_TTL")
	v.BindEnv("auth.bcrypt_cost", "AUTH_BCRYPT_COST")

	// Bucket
	v.BindEnv("bucket.s3_access_key", "BUCKET_S3_ACCESS_KEY")
	v.BindEnv("bucket.s3_secret_access_key", "BUCKET_S3_SECRET_ACCESS_KEY")
	v.BindEnv("bucket.s3_endpoint", "BUCKET_S3_ENDPOINT")
	v.BindEnv("bucket.s3_bucket_name", "BUCKET_S3_BUCKET_NAME")
	v.BindEnv("bucket.s3_bucket_location", "BUCKET_S3_BUCKET_LOCATION")
	v.BindEnv("bucket.base_folder", "BUCKET_BASE_FOLDER")
	v.BindEnv("bucket.subdomain_endpoint", "BUCKET_SUBDOMAIN_ENDPOINT")
	v.BindEnv("bucket.insecure", "BUCKET_INSECURE")

	// Mailer
	v.BindEnv("mailer.sendgrid_api_key", "MAILER_SENDGRID_API_KEY")
	v.BindEnv("mailer.from_email", "MAILER_FROM_EMAIL")
	v.BindEnv("mailer.from_email_name", "MAILER_FROM_EMAIL_NAME")
	v.BindEnv("mailer.reply_to", "MAILER_REPLY_TO")
	v.BindEnv("mailer.worker_interval", "MAILER_WORKER_INTERVAL")
	v.BindEnv("mailer.sandbox_mode", "MAILER_SANDBOX_MODE")

	// SMS
	v.BindEnv("sms.twilio_account_sid", "SMS_TWILIO_ACCOUNT_SID")
	v.BindEnv("sms.twilio_auth_token", "SMS_TWILIO_AUTH_TOKEN")
	v.BindEnv("sms.from_phone", "SMS_FROM_PHONE")
	v.BindEnv("sms.org_name", "SMS_ORG_NAME")

	// Verification
	v.BindEnv("verification.code_ttl", "VERIFICATION_CODE_TTL")
	v.BindEnv("verification.delivery_timeout", "VERIFICATION_DELIVERY_TIMEOUT")
	v.BindEnv("verification.channel", "VERIFICATION_CHANNEL")

	// Waitlist
	v.BindEnv("waitlist.require_phone", "WAITLIST_REQUIRE_PHONE")
	v.BindEnv("waitlist.default_phone_region", "WAITLIST_DEFAULT_PHONE_REGION")

	// Rate limits
	v.BindEnv("ratelimit.enabled", "RATELIMIT_ENABLED")
	v.BindEnv("ratelimit.register_per_hour", "RATELIMIT_REGISTER_PER_HOUR")
	v.BindEnv("ratelimit.verify_per_minute", "RATELIMIT_VERIFY_PER_MINUTE")
	v.BindEnv("ratelimit.verify_per_code_ttl", "RATELIMIT_VERIFY_PER_CODE_TTL")
	v.BindEnv("ratelimit.resend_per_hour", "RATELIMIT_RESEND_PER_HOUR")
	v.BindEnv("ratelimit.login_per_minute", "RATELIMIT_LOGIN_PER_MINUTE")
	v.BindEnv("ratelimit.login_email_per_hour", "RATELIMIT_LOGIN_EMAIL_PER_HOUR")
}
