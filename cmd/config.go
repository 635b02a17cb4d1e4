package cmd

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

// EnvPrefix scopes environment overrides. Nested keys are separated by a
// double underscore: FULFILLMENT_HTTP__PORT sets http.port.
const EnvPrefix = "FULFILLMENT_"

type Config struct {
	HTTP     HTTPConfig     `koanf:"http"`
	DB       DBConfig       `koanf:"db"`
	Store    StoreConfig    `koanf:"store"`
	Redis    RedisConfig    `koanf:"redis"`
	Kafka    KafkaConfig    `koanf:"kafka"`
	Auth     AuthConfig     `koanf:"auth"`
	Identity IdentityConfig `koanf:"identity"`
	Blob     BlobConfig     `koanf:"blob"`
	Jobs     JobsConfig     `koanf:"jobs"`
	Log      LogConfig      `koanf:"log"`
}

type HTTPConfig struct {
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type DBConfig struct {
	DSN          string `koanf:"dsn"`
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
}

// StoreConfig bounds every unit of work.
type StoreConfig struct {
	OperationTimeout time.Duration `koanf:"operation_timeout"`
}

type RedisConfig struct {
	Addr     string        `koanf:"addr"`
	Password string        `koanf:"password"`
	DB       int           `koanf:"db"`
	CartTTL  time.Duration `koanf:"cart_ttl"`
}

// KafkaConfig configures the order event stream. When disabled, events are
// counted and dropped.
type KafkaConfig struct {
	Enabled bool     `koanf:"enabled"`
	Brokers []string `koanf:"brokers"`
	Topic   string   `koanf:"topic"`
}

type AuthConfig struct {
	JWTSecret string `koanf:"jwt_secret"`
	Issuer    string `koanf:"issuer"`
}

type IdentityConfig struct {
	BaseURL    string        `koanf:"base_url"`
	ServiceKey string        `koanf:"service_key"`
	Timeout    time.Duration `koanf:"timeout"`
}

type BlobConfig struct {
	BucketURL     string `koanf:"bucket_url"`
	PublicBaseURL string `koanf:"public_base_url"`
}

type JobsConfig struct {
	GaugeSchedule string `koanf:"gauge_schedule"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Pretty bool   `koanf:"pretty"`
}

func getDefaults() map[string]any {
	return map[string]any{
		"http.port":               8080,
		"http.read_timeout":       "15s",
		"http.write_timeout":      "30s",
		"http.shutdown_timeout":   "10s",
		"db.dsn":                  "host=localhost port=5432 user=postgres password=postgres dbname=fulfillment sslmode=disable",
		"db.max_open_conns":       20,
		"db.max_idle_conns":       5,
		"store.operation_timeout": "5s",
		"redis.addr":              "localhost:6379",
		"redis.db":                0,
		"redis.cart_ttl":          "168h",
		"kafka.enabled":           false,
		"kafka.brokers":           []string{"localhost:9092"},
		"kafka.topic":             "fulfillment.order-events",
		"auth.issuer":             "",
		"identity.timeout":        "10s",
		"blob.bucket_url":         "mem://",
		"blob.public_base_url":    "http://localhost:8080/images",
		"jobs.gauge_schedule":     "@every 30s",
		"log.level":               "info",
		"log.pretty":              false,
	}
}

// LoadConfig reads an optional .env file, the YAML file at path (skipped when
// path is empty) and then FULFILLMENT_ environment variables, each layer
// overriding the previous one.
func LoadConfig(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, errors.Wrap(err, "load .env")
	}

	k := koanf.New(".")
	for key, value := range getDefaults() {
		if err := k.Set(key, value); err != nil {
			return Config{}, errors.Wrapf(err, "set default %s", key)
		}
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, errors.Wrapf(err, "read config %s", path)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: transformEnv,
	}), nil); err != nil {
		return Config{}, errors.Wrap(err, "load env variables")
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			TagName:          "koanf",
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}); err != nil {
		return Config{}, errors.Wrap(err, "unmarshal config")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// transformEnv maps FULFILLMENT_KAFKA__BROKERS to kafka.brokers.
func transformEnv(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	return strings.ReplaceAll(key, "__", "."), value
}

// Validate checks the settings that have no usable default.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return errors.New("auth.jwt_secret is required")
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return errors.Errorf("http.port %d is out of range", c.HTTP.Port)
	}
	if c.Kafka.Enabled && (len(c.Kafka.Brokers) == 0 || c.Kafka.Topic == "") {
		return errors.New("kafka.brokers and kafka.topic are required when kafka is enabled")
	}
	return nil
}

// NewLogger builds the process logger. Pretty output uses the text handler.
func NewLogger(cfg LogConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Pretty {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
