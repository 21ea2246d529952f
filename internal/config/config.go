// Package config provides runtime configuration values for the service.
package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPAddr string

	MySQLUser     string
	MySQLPassword string
	MySQLHost     string
	MySQLPort     string
	MySQLDatabase string

	RedisAddr string

	AMQPURL      string
	AMQPExchange string

	JWTSecret  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durenvmin(key string, defMin int) time.Duration {
	v := getenv(key, "")
	if v == "" {
		return time.Duration(defMin) * time.Minute
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return time.Duration(defMin) * time.Minute
	}
	return time.Duration(n) * time.Minute
}

// Load collects configuration from environment with defaults.
func Load() Config {
	return Config{
		HTTPAddr:      ":" + getenv("PORT", "8080"),
		MySQLUser:     getenv("MYSQL_USER", "root"),
		MySQLPassword: getenv("MYSQL_PASSWORD", ""),
		MySQLHost:     getenv("MYSQL_HOST", "localhost"),
		MySQLPort:     getenv("MYSQL_PORT", "3306"),
		MySQLDatabase: getenv("MYSQL_DATABASE", "store"),
		RedisAddr:     getenv("REDIS_HOST", "localhost") + ":6379",
		AMQPURL:       getenv("RABBITMQ_URL", ""),
		AMQPExchange:  getenv("RABBITMQ_EXCHANGE", "store.exchange"),
		JWTSecret:     getenv("JWT_SECRET", "dev-secret-change-me"),
		AccessTTL:     durenvmin("ACCESS_TOKEN_MINUTES", 15),
		RefreshTTL:    durenvmin("REFRESH_TOKEN_MINUTES", 60*24),
	}
}
