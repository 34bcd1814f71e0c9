package config

import (
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

type Config struct {
	Port   string
	DB     DBConfig
	JWT    JWTConfig
	Domain string

	AdminIDs      []string
	AllowOrigins  []string
	RetentionDays int

	KafkaBrokers []string
	KafkaTopic   string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWTConfig struct {
	Access string
}

func Load(log *zap.Logger) *Config {
	return &Config{
		Port: getEnv("APP_PORT", log),
		DB: DBConfig{
			Host:     getEnv("DB_HOST", log),
			Port:     getEnv("DB_PORT", log),
			User:     getEnv("DB_USER", log),
			Password: getEnv("DB_PASSWORD", log),
			Name:     getEnv("DB_NAME", log),
			SSLMode:  getEnv("DB_SSLMODE", log),
		},
		JWT: JWTConfig{
			Access: getEnv("ACCESS_SECRET", log),
		},
		Domain: getEnv("DOMAIN", log),

		AdminIDs:      splitAndTrim(os.Getenv("ADMIN_IDS")),
		AllowOrigins:  splitAndTrim(getEnvDefault("CORS_ORIGINS", "*")),
		RetentionDays: getEnvInt("CLICK_RETENTION_DAYS", 0, log),

		KafkaBrokers: splitAndTrim(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   getEnvDefault("KAFKA_TOPIC_CLICKS", "clicks"),
	}
}

func getEnv(key string, log *zap.Logger) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	log.Error("Обязательная переменная окружения не установлена", zap.String("key", key))
	panic("missing required environment variable: " + key)
}

func getEnvDefault(key, def string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return def
}

func getEnvInt(key string, def int, log *zap.Logger) int {
	val, exists := os.LookupEnv(key)
	if !exists {
		return def
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		log.Warn("Некорректное числовое значение переменной окружения", zap.String("key", key), zap.String("value", val))
		return def
	}
	return n
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := []string{}
	for _, p := range strings.Split(s, ",") {
		pt := strings.TrimSpace(p)
		if pt != "" {
			parts = append(parts, pt)
		}
	}
	return parts
}
