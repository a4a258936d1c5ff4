package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

const (
	ServiceName       = "store-admin-service"
	configFileEnvName = "CONFIG_FILE"
)

// DBConfig holds database configuration
type DBConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	LogLevel        string        `mapstructure:"log_level"`
}

// GetDSN returns the PostgreSQL connection string
func (c *DBConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// GetURL returns the connection URL understood by the migration driver
func (c *DBConfig) GetURL() string {
	u := url.URL{
		Scheme:   "pgx5",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	return u.String()
}

// GormLogLevel maps the configured level onto gorm's logger levels
func (c *DBConfig) GormLogLevel() logger.LogLevel {
	switch strings.ToLower(c.LogLevel) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "warn":
		return logger.Warn
	default:
		return logger.Info
	}
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Env             string        `mapstructure:"env"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	SigningKey      string `mapstructure:"signing_key"`
	ExpirationHours int    `mapstructure:"expiration_hours"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Prefix string `mapstructure:"prefix"`
}

// KafkaConfig holds change event configuration. Events are disabled
// when no broker is configured.
type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

// Enabled reports whether a broker is configured
func (c *KafkaConfig) Enabled() bool {
	return len(c.Brokers) > 0
}

// Config holds all configuration
type Config struct {
	ServiceName string        `mapstructure:"service_name"`
	DB          DBConfig      `mapstructure:"db"`
	Server      ServerConfig  `mapstructure:"server"`
	JWT         JWTConfig     `mapstructure:"jwt"`
	Log         LogConfig     `mapstructure:"log"`
	Metrics     MetricsConfig `mapstructure:"metrics"`
	Kafka       KafkaConfig   `mapstructure:"kafka"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service_name", ServiceName)

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "password")
	v.SetDefault("db.name", "store_admin")
	v.SetDefault("db.ssl_mode", "disable")
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.max_open_conns", 100)
	v.SetDefault("db.conn_max_lifetime", time.Hour)
	v.SetDefault("db.log_level", "warn")

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.env", "development")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("jwt.signing_key", "defaultsecretkey")
	v.SetDefault("jwt.expiration_hours", 24)

	v.SetDefault("log.level", "info")
	v.SetDefault("metrics.prefix", "store_admin")

	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topic", "catalog-events")
}

// BindFlags registers the command line flags that override configuration
func BindFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "optional YAML config file (env "+configFileEnvName+")")
	flags.String("port", "", "HTTP port, overrides SERVER_PORT")
}

// Load reads configuration from defaults, an optional YAML file, the
// environment (and .env) and finally flags, later sources winning.
func Load(flags *pflag.FlagSet) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// APP_ENV is shared with the other services
	if err := v.BindEnv("server.env", "APP_ENV"); err != nil {
		return nil, fmt.Errorf("bind APP_ENV: %w", err)
	}

	if path := configFile(v, flags); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	if flags != nil {
		if f := flags.Lookup("port"); f != nil {
			if err := v.BindPFlag("server.port", f); err != nil {
				return nil, fmt.Errorf("bind port flag: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Kafka.Brokers = splitBrokers(cfg.Kafka.Brokers)

	return &cfg, nil
}

func configFile(v *viper.Viper, flags *pflag.FlagSet) string {
	if flags != nil {
		if path, err := flags.GetString("config"); err == nil && path != "" {
			return path
		}
	}
	return v.GetString(configFileEnvName)
}

// splitBrokers accepts both a YAML list and a comma separated env value
func splitBrokers(raw []string) []string {
	var brokers []string
	for _, item := range raw {
		for _, b := range strings.Split(item, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}
	return brokers
}

// LogConfig returns the configuration as a zap logger-friendly format
func (c *Config) LogConfig() []zap.Field {
	return []zap.Field{
		zap.String("service", c.ServiceName),
		zap.String("environment", c.Server.Env),
		zap.String("db_host", c.DB.Host),
		zap.String("db_port", c.DB.Port),
		zap.String("db_user", c.DB.User),
		zap.String("db_name", c.DB.DBName),
		zap.String("server_port", c.Server.Port),
		zap.Strings("kafka_brokers", c.Kafka.Brokers),
	}
}
