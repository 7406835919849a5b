package config

import (
	"log"
	"os"
	"strconv"
)

// AuthMethod values accepted for Config.AuthMethod.
const (
	AuthMethodJWT     = "JWT"
	AuthMethodSession = "SESSION"
)

type Config struct {
	Port           string
	ConsulAddress  string
	ServiceName    string
	ServiceID      string
	ServiceAddress string

	MongoURI      string
	MongoDatabase string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	RabbitURI      string
	RabbitExchange string

	JWTSecret         string
	AccessTokenHours  int
	RefreshTokenHours int

	AuthMethod          string
	EnablePasswordReset bool
	EnableProfileEdit   bool

	OTPLength             int
	OTPExpiryMinutes      int
	ResetWindowMinutes    int
	ResetTokenExpiryHours int

	FromEmail string
	FEAddress string
}

func New() *Config {
	return &Config{
		Port:           getEnv("PORT", "9200"),
		ConsulAddress:  getEnv("CONSUL_ADDR", "consul-server:8500"),
		ServiceName:    getEnv("SERVICE_NAME", "learnhub"),
		ServiceID:      getEnv("SERVICE_NAME", "learnhub") + "-" + getEnv("HOSTNAME", "1"),
		ServiceAddress: getEnv("SERVICE_ADDR", "learnhub"),

		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DB", "learnhub"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PWD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		RabbitURI:      getEnv("RABBITMQ_URI", ""),
		RabbitExchange: getEnv("RABBITMQ_EXCHANGE", "learnhub-events"),

		JWTSecret:         getEnv("JWT_SECRET", ""),
		AccessTokenHours:  getEnvInt("ACCESS_TOKEN_HOURS", 1),
		RefreshTokenHours: getEnvInt("REFRESH_TOKEN_HOURS", 24*7),

		AuthMethod:          getEnv("AUTH_METHOD", AuthMethodJWT),
		EnablePasswordReset: getEnvBool("ENABLE_PASSWORD_RESET", true),
		EnableProfileEdit:   getEnvBool("ENABLE_PROFILE_EDIT", true),

		OTPLength:             getEnvInt("OTP_LENGTH", 4),
		OTPExpiryMinutes:      getEnvInt("OTP_EXPIRY_MINUTES", 10),
		ResetWindowMinutes:    getEnvInt("RESET_WINDOW_MINUTES", 10),
		ResetTokenExpiryHours: getEnvInt("RESET_TOKEN_EXPIRY_HOURS", 24),

		FromEmail: getEnv("DEFAULT_FROM_EMAIL", "no-reply@learnhub.io"),
		FEAddress: getEnv("FE_ADDR", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid value for %s: %q, using %d", key, value, fallback)
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Invalid value for %s: %q, using %v", key, value, fallback)
		return fallback
	}
	return b
}
