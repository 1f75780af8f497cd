package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config contém todas as configurações da aplicação
type Config struct {
	Env       string
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	SMTP      SMTPConfig
	RabbitMQ  RabbitMQConfig
	S3        S3Config
	Logging   LoggingConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	I18n      I18nConfig
}

type ServerConfig struct {
	Port           string
	Host           string
	BaseURL        string // URL base da API para construir URIs RFC 7807 e links de e-mail
	BodyLimitBytes int64
}

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
	MinConns    int
	MaxIdleTime int
}

type RedisConfig struct {
	URL string
}

type JWTConfig struct {
	Secret            string
	AccessExpiry      time.Duration
	CookieExpiresDays int
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type RabbitMQConfig struct {
	URL string
}

type S3Config struct {
	Bucket        string
	Region        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
}

type LoggingConfig struct {
	Level string
}

type CORSConfig struct {
	AllowedOrigins string
}

type RateLimitConfig struct {
	PerHour int64
}

type I18nConfig struct {
	DefaultLanguage string
}

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// IsProduction indica ambiente de produção
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// IsDevelopment indica ambiente de desenvolvimento (stack trace nas respostas)
func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// Load carrega as configurações do arquivo .env (se existir) e das variáveis de ambiente
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	accessExpiry, err := time.ParseDuration(v.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_EXPIRY: %w", err)
	}

	config := &Config{
		Env: v.GetString("ENV"),
		Server: ServerConfig{
			Port:           v.GetString("PORT"),
			Host:           v.GetString("HOST"),
			BaseURL:        strings.TrimRight(v.GetString("API_BASE_URL"), "/"),
			BodyLimitBytes: v.GetInt64("BODY_LIMIT_BYTES"),
		},
		Database: DatabaseConfig{
			Host:        v.GetString("DB_HOST"),
			Port:        v.GetInt("DB_PORT"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASS"),
			DBName:      v.GetString("DB_NAME"),
			SSLMode:     v.GetString("DB_SSL_MODE"),
			MaxConns:    v.GetInt("DB_MAX_CONNS"),
			MinConns:    v.GetInt("DB_MIN_CONNS"),
			MaxIdleTime: v.GetInt("DB_MAX_IDLE_TIME"),
		},
		Redis: RedisConfig{
			URL: v.GetString("REDIS_URL"),
		},
		JWT: JWTConfig{
			Secret:            v.GetString("JWT_SECRET"),
			AccessExpiry:      accessExpiry,
			CookieExpiresDays: v.GetInt("JWT_COOKIE_EXPIRES_IN"),
		},
		SMTP: SMTPConfig{
			Host:     v.GetString("SMTP_HOST"),
			Port:     v.GetInt("SMTP_PORT"),
			User:     v.GetString("SMTP_USER"),
			Password: v.GetString("SMTP_PASS"),
			From:     v.GetString("MAIL_FROM"),
		},
		RabbitMQ: RabbitMQConfig{
			URL: v.GetString("RABBITMQ_URL"),
		},
		S3: S3Config{
			Bucket:        v.GetString("S3_BUCKET"),
			Region:        v.GetString("S3_REGION"),
			Endpoint:      v.GetString("S3_ENDPOINT"),
			AccessKey:     v.GetString("S3_ACCESS_KEY"),
			SecretKey:     v.GetString("S3_SECRET_KEY"),
			PublicBaseURL: strings.TrimRight(v.GetString("S3_PUBLIC_BASE_URL"), "/"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		CORS: CORSConfig{
			AllowedOrigins: v.GetString("CORS_ALLOWED_ORIGINS"),
		},
		RateLimit: RateLimitConfig{
			PerHour: v.GetInt64("RATE_LIMIT_PER_HOUR"),
		},
		I18n: I18nConfig{
			DefaultLanguage: v.GetString("DEFAULT_LANGUAGE"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("PORT", "8080")
	v.SetDefault("API_BASE_URL", "http://localhost:8080")
	v.SetDefault("BODY_LIMIT_BYTES", 10*1024)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "hospital")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 2)
	v.SetDefault("DB_MAX_IDLE_TIME", 300)
	v.SetDefault("JWT_ACCESS_EXPIRY", "24h")
	v.SetDefault("JWT_COOKIE_EXPIRES_IN", 1)
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("MAIL_FROM", "HM Dashboard <provedoria@ahbm.com.br>")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3001")
	v.SetDefault("RATE_LIMIT_PER_HOUR", 100)
	v.SetDefault("DEFAULT_LANGUAGE", "pt-BR")
}

// Validate verifica as configurações obrigatórias
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.IsProduction() && len(c.JWT.Secret) < 32 {
		return errors.New("JWT_SECRET must have at least 32 bytes in production")
	}
	if c.IsProduction() && !c.HasMailTransport() {
		return errors.New("RABBITMQ_URL or SMTP_HOST is required in production")
	}
	if c.JWT.AccessExpiry <= 0 {
		return errors.New("JWT_ACCESS_EXPIRY must be positive")
	}
	if c.RateLimit.PerHour <= 0 {
		return errors.New("RATE_LIMIT_PER_HOUR must be positive")
	}
	return nil
}

// HasMailTransport indica se há fila ou SMTP para entregar e-mails.
// Sem nenhum dos dois o link de redefinição só aparece no log.
func (c *Config) HasMailTransport() bool {
	return c.RabbitMQ.URL != "" || c.SMTP.Host != ""
}

// CookieMaxAge retorna a validade do cookie de sessão
func (c *JWTConfig) CookieMaxAge() time.Duration {
	return time.Duration(c.CookieExpiresDays) * 24 * time.Hour
}

// Origins retorna a lista de origens permitidas
func (c *CORSConfig) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// DSN retorna a connection string do PostgreSQL
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}
