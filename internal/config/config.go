package config

import "os"

type Config struct {
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	StoreDriver string
	JWTSecret   string
	AdminKey    string
	ServerPort  string
}

func Load() *Config {
	return &Config{
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "postgres"),
		DBName:      getEnv("DB_NAME", "huntqr"),
		StoreDriver: getEnv("STORE_DRIVER", "postgres"),
		JWTSecret:   getEnv("JWT_SECRET", "super-secret-key-change-me"),
		AdminKey:    getEnv("ADMIN_KEY", "admin-key-change-me"),
		ServerPort:  getEnv("SERVER_PORT", "8080"),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
