package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "BFINANCIAL"

const (
	ProviderBFlex       = "bflex"
	ProviderMercadoPago = "mercadopago"
)

// Config holds the relay service configuration.
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Gateway      GatewayConfig      `mapstructure:"gateway"`
	MercadoPago  MercadoPagoConfig  `mapstructure:"mercadopago"`
	Verification VerificationConfig `mapstructure:"verification"`
	DynamoDB     DynamoDBConfig     `mapstructure:"dynamodb"`
	Redis        RedisConfig        `mapstructure:"redis"`
	Log          LogConfig          `mapstructure:"log"`
	QRCode       QRCodeConfig       `mapstructure:"qrcode"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

// GatewayConfig selects and tunes the payment gateway client.
type GatewayConfig struct {
	Provider         string        `mapstructure:"provider"` // bflex or mercadopago
	BaseURL          string        `mapstructure:"base_url"`
	AuthKey          string        `mapstructure:"auth_key"`
	Timeout          time.Duration `mapstructure:"timeout"`
	FailureThreshold uint32        `mapstructure:"failure_threshold"`
	OpenTimeout      time.Duration `mapstructure:"open_timeout"`
	Mock             bool          `mapstructure:"mock"`
}

type MercadoPagoConfig struct {
	AccessToken string `mapstructure:"access_token"`
}

type VerificationConfig struct {
	PollInterval     time.Duration `mapstructure:"poll_interval"`
	MaxAttempts      int           `mapstructure:"max_attempts"`
	TransportRetries int           `mapstructure:"transport_retries"`
	Timeout          time.Duration `mapstructure:"timeout"`
}

// DynamoDBConfig holds the table names and the (local-friendly) connection
// settings. Endpoint is optional, e.g. http://dynamodb:8000.
type DynamoDBConfig struct {
	Region             string `mapstructure:"region"`
	Endpoint           string `mapstructure:"endpoint"`
	AccessKeyID        string `mapstructure:"access_key_id"`
	SecretAccessKey    string `mapstructure:"secret_access_key"`
	PaymentsTable      string `mapstructure:"payments_table"`
	VerificationsTable string `mapstructure:"verifications_table"`
}

// RedisConfig holds the status cache connection. An empty Address disables
// the cache.
type RedisConfig struct {
	Address   string        `mapstructure:"address"`
	Password  string        `mapstructure:"password"`
	DB        int           `mapstructure:"db"`
	StatusTTL time.Duration `mapstructure:"status_ttl"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type QRCodeConfig struct {
	Size int `mapstructure:"size"`
}

// Load reads config.yaml (optional) and the environment. Every key can be set
// as BFINANCIAL_<SECTION>_<KEY>; the plain deployment variable names
// (PORT, AWS_REGION, MERCADOPAGO_ACCESS_TOKEN, ...) are also
// honored.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := bindLegacyEnv(v); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects combinations the service cannot start with.
func (c *Config) Validate() error {
	switch c.Gateway.Provider {
	case ProviderBFlex:
		if !c.Gateway.Mock && c.Gateway.BaseURL == "" {
			return errors.New("config: gateway.base_url is required for the bflex provider")
		}
	case ProviderMercadoPago:
	default:
		return fmt.Errorf("config: unknown gateway.provider %q", c.Gateway.Provider)
	}
	if c.Verification.PollInterval < 0 {
		return errors.New("config: verification.poll_interval must not be negative")
	}
	if c.Verification.MaxAttempts < 0 || c.Verification.TransportRetries < 0 {
		return errors.New("config: verification attempts must not be negative")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")

	v.SetDefault("gateway.provider", ProviderBFlex)
	v.SetDefault("gateway.base_url", "")
	v.SetDefault("gateway.auth_key", "")
	v.SetDefault("gateway.timeout", 15*time.Second)
	v.SetDefault("gateway.failure_threshold", 5)
	v.SetDefault("gateway.open_timeout", 30*time.Second)
	v.SetDefault("gateway.mock", false)

	v.SetDefault("mercadopago.access_token", "")

	v.SetDefault("verification.poll_interval", 5*time.Second)
	v.SetDefault("verification.max_attempts", 0)
	v.SetDefault("verification.transport_retries", 3)
	v.SetDefault("verification.timeout", 10*time.Minute)

	v.SetDefault("dynamodb.region", "us-east-1")
	v.SetDefault("dynamodb.endpoint", "")
	v.SetDefault("dynamodb.access_key_id", "local")
	v.SetDefault("dynamodb.secret_access_key", "local")
	v.SetDefault("dynamodb.payments_table", "payment_records")
	v.SetDefault("dynamodb.verifications_table", "verification_runs")

	v.SetDefault("redis.address", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.status_ttl", 5*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("qrcode.size", 256)
}

func bindLegacyEnv(v *viper.Viper) error {
	legacy := map[string][]string{
		"server.port":                  {"PORT"},
		"gateway.mock":                 {"PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK"},
		"mercadopago.access_token":     {"MERCADOPAGO_ACCESS_TOKEN"},
		"dynamodb.region":              {"AWS_REGION"},
		"dynamodb.endpoint":            {"DYNAMODB_ENDPOINT"},
		"dynamodb.access_key_id":       {"AWS_ACCESS_KEY_ID"},
		"dynamodb.secret_access_key":   {"AWS_SECRET_ACCESS_KEY"},
		"dynamodb.payments_table":      {"DYNAMODB_PAYMENTS_TABLE"},
		"dynamodb.verifications_table": {"DYNAMODB_VERIFICATIONS_TABLE"},
	}
	for key, names := range legacy {
		prefixed := envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(append([]string{key, prefixed}, names...)...); err != nil {
			return err
		}
	}
	return nil
}
