package main

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"

	"github.com/sushihentaime/blogsphere/internal/common"
)

type Config struct {
	Port        string `mapstructure:"PORT"`
	Environment string `mapstructure:"ENVIRONMENT"`
	Version     string `mapstructure:"VERSION"`
	FrontendURL string `mapstructure:"FRONTEND_URL"`

	DBHost         string        `mapstructure:"POSTGRES_HOST"`
	DBPort         string        `mapstructure:"POSTGRES_PORT"`
	DBUser         string        `mapstructure:"POSTGRES_USER"`
	DBPassword     string        `mapstructure:"POSTGRES_PASSWORD"`
	DBName         string        `mapstructure:"POSTGRES_DB"`
	DBMaxOpenConns int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBMaxIdleTime  time.Duration `mapstructure:"DB_MAX_IDLE_TIME"`
	MigrationsPath string        `mapstructure:"MIGRATIONS_PATH"`

	JWTSecret string        `mapstructure:"JWT_SECRET"`
	JWTTTL    time.Duration `mapstructure:"JWT_TTL"`

	RateLimitEnabled       bool   `mapstructure:"RATE_LIMIT_ENABLED"`
	RateLimitTTL           int    `mapstructure:"RATE_LIMIT_TTL"`
	RateLimitGlobal        int    `mapstructure:"RATE_LIMIT_GLOBAL"`
	RateLimitAuthLogin     int    `mapstructure:"RATE_LIMIT_AUTH_LOGIN"`
	RateLimitAuthRegister  int    `mapstructure:"RATE_LIMIT_AUTH_REGISTER"`
	RateLimitProfile       int    `mapstructure:"RATE_LIMIT_PROFILE"`
	RateLimitPublicFeed    int    `mapstructure:"RATE_LIMIT_PUBLIC_FEED"`
	RateLimitPublicPopular int    `mapstructure:"RATE_LIMIT_PUBLIC_POPULAR"`
	RateLimitPublicBlog    int    `mapstructure:"RATE_LIMIT_PUBLIC_BLOG"`
	RedisURL               string `mapstructure:"REDIS_URL"`

	RabbitMQHost     string `mapstructure:"RABBITMQ_HOST"`
	RabbitMQPort     string `mapstructure:"RABBITMQ_PORT"`
	RabbitMQUser     string `mapstructure:"RABBITMQ_USER"`
	RabbitMQPassword string `mapstructure:"RABBITMQ_PASSWORD"`

	MailHost     string `mapstructure:"MAIL_HOST"`
	MailPort     int    `mapstructure:"MAIL_PORT"`
	MailUser     string `mapstructure:"MAIL_USER"`
	MailPassword string `mapstructure:"MAIL_PASSWORD"`
	MailSender   string `mapstructure:"MAIL_SENDER"`

	ErrorLogDir string `mapstructure:"ERROR_LOG_DIR"`
}

var defaults = map[string]any{
	"PORT":                      "3001",
	"ENVIRONMENT":               "development",
	"VERSION":                   "1.0.0",
	"FRONTEND_URL":              "http://localhost:3000",
	"POSTGRES_HOST":             "localhost",
	"POSTGRES_PORT":             "5432",
	"POSTGRES_USER":             "postgres",
	"POSTGRES_PASSWORD":         "",
	"POSTGRES_DB":               "blogsphere",
	"DB_MAX_OPEN_CONNS":         25,
	"DB_MAX_IDLE_CONNS":         25,
	"DB_MAX_IDLE_TIME":          "15m",
	"MIGRATIONS_PATH":           "file://migrations",
	"JWT_SECRET":                "",
	"JWT_TTL":                   "168h",
	"RATE_LIMIT_ENABLED":        true,
	"RATE_LIMIT_TTL":            60,
	"RATE_LIMIT_GLOBAL":         100,
	"RATE_LIMIT_AUTH_LOGIN":     5,
	"RATE_LIMIT_AUTH_REGISTER":  3,
	"RATE_LIMIT_PROFILE":        30,
	"RATE_LIMIT_PUBLIC_FEED":    50,
	"RATE_LIMIT_PUBLIC_POPULAR": 30,
	"RATE_LIMIT_PUBLIC_BLOG":    100,
	"REDIS_URL":                 "",
	"RABBITMQ_HOST":             "",
	"RABBITMQ_PORT":             "5672",
	"RABBITMQ_USER":             "guest",
	"RABBITMQ_PASSWORD":         "guest",
	"MAIL_HOST":                 "localhost",
	"MAIL_PORT":                 1025,
	"MAIL_USER":                 "",
	"MAIL_PASSWORD":             "",
	"MAIL_SENDER":               "BlogSphere <no-reply@blogsphere.local>",
	"ERROR_LOG_DIR":             "logs",
}

// loadConfig reads the dotenv file at path, if it exists, and lets environment
// variables override it.
func loadConfig(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}

	return &config, nil
}

func (c *Config) rateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitTTL) * time.Second
}

func (c *Config) dsn() string {
	return common.DSN(c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}
