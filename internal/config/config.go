package config

import (
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTP            HTTPConfig     `mapstructure:"http"`
	GRPC            GRPCConfig     `mapstructure:"grpc"`
	DB              DBConfig       `mapstructure:"db"`
	RabbitMQ        RabbitMQConfig `mapstructure:"rabbitmq"`
	Redis           RedisConfig    `mapstructure:"redis"`
	Log             LogConfig      `mapstructure:"log"`
	ShutdownTimeout time.Duration  `mapstructure:"shutdown_timeout"`
}

type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

type GRPCConfig struct {
	Port string `mapstructure:"port"`
}

type DBConfig struct {
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RabbitMQConfig struct {
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Queue    string `mapstructure:"queue"`
}

// RedisConfig: пустой Addr отключает кеш календарей.
type RedisConfig struct {
	Addr string        `mapstructure:"addr"`
	TTL  time.Duration `mapstructure:"ttl"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{Addr: ":8080"},
		GRPC: GRPCConfig{Port: "9090"},
		DB: DBConfig{
			User:    "postgres",
			Host:    "localhost",
			Port:    "5432",
			Name:    "task_calendar",
			SSLMode: "disable",
		},
		RabbitMQ: RabbitMQConfig{
			User:     "guest",
			Password: "guest",
			Host:     "localhost",
			Port:     "5672",
			Queue:    "calendar_events",
		},
		Redis:           RedisConfig{TTL: 10 * time.Minute},
		Log:             LogConfig{Level: "info", Format: "text"},
		ShutdownTimeout: 15 * time.Second,
	}
}

// env - ключ конфигурации -> переменная окружения
var env = map[string]string{
	"http.addr":         "HTTP_ADDR",
	"grpc.port":         "GRPC_PORT",
	"db.user":           "DB_USER",
	"db.password":       "DB_PASSWORD",
	"db.host":           "DB_HOST",
	"db.port":           "DB_PORT",
	"db.name":           "DB_NAME",
	"db.sslmode":        "DB_SSLMODE",
	"rabbitmq.user":     "RABBITMQ_USER",
	"rabbitmq.password": "RABBITMQ_PASSWORD",
	"rabbitmq.host":     "RABBITMQ_HOST",
	"rabbitmq.port":     "RABBITMQ_PORT",
	"rabbitmq.queue":    "EVENTS_QUEUE",
	"redis.addr":        "REDIS_ADDR",
	"redis.ttl":         "REDIS_TTL",
	"log.level":         "LOG_LEVEL",
	"log.format":        "LOG_FORMAT",
	"shutdown_timeout":  "SHUTDOWN_TIMEOUT",
}

// Load: значения по умолчанию, затем YAML-файл (если path не пуст), затем окружение.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	setDefaults(v, cfg)
	for key, name := range env {
		if err := v.BindEnv(key, name); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", name, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("http.addr", cfg.HTTP.Addr)
	v.SetDefault("grpc.port", cfg.GRPC.Port)
	v.SetDefault("db.user", cfg.DB.User)
	v.SetDefault("db.password", cfg.DB.Password)
	v.SetDefault("db.host", cfg.DB.Host)
	v.SetDefault("db.port", cfg.DB.Port)
	v.SetDefault("db.name", cfg.DB.Name)
	v.SetDefault("db.sslmode", cfg.DB.SSLMode)
	v.SetDefault("rabbitmq.user", cfg.RabbitMQ.User)
	v.SetDefault("rabbitmq.password", cfg.RabbitMQ.Password)
	v.SetDefault("rabbitmq.host", cfg.RabbitMQ.Host)
	v.SetDefault("rabbitmq.port", cfg.RabbitMQ.Port)
	v.SetDefault("rabbitmq.queue", cfg.RabbitMQ.Queue)
	v.SetDefault("redis.addr", cfg.Redis.Addr)
	v.SetDefault("redis.ttl", cfg.Redis.TTL)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("shutdown_timeout", cfg.ShutdownTimeout)
}

// DSN - строка подключения к Postgres для pgx и golang-migrate.
func (c DBConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgresql",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, c.Port),
		Path:     "/" + c.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	return u.String()
}

func (c RabbitMQConfig) URL() string {
	u := url.URL{
		Scheme: "amqp",
		User:   url.UserPassword(c.User, c.Password),
		Host:   net.JoinHostPort(c.Host, c.Port),
		Path:   "/",
	}
	return u.String()
}
