package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr     string
	GinMode     string
	BaseURL     string
	DBUser      string
	DBPass      string
	DBHost      string
	DBName      string
	JWTSecret   string
	CORSOrigins []string
}

// LoadEnv reads configuration from the environment. A .env file in the
// working directory is applied first when present (real env vars win).
func LoadEnv() Env {
	_ = godotenv.Load()

	appAddr := getEnvDefault("APP_ADDR", ":8080")

	env := Env{
		AppAddr:   appAddr,
		GinMode:   strings.TrimSpace(os.Getenv("GIN_MODE")),
		BaseURL:   getEnvDefault("BASE_URL", "http://localhost"+appAddr),
		DBUser:    getEnvDefault("DB_USER", "root"),
		DBPass:    strings.TrimSpace(os.Getenv("DB_PASS")),
		DBHost:    getEnvDefault("DB_HOST", "127.0.0.1:3306"),
		DBName:    getEnvDefault("DB_NAME", "travel_app"),
		JWTSecret: strings.TrimSpace(os.Getenv("JWT_SECRET")),
	}

	if raw := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				env.CORSOrigins = append(env.CORSOrigins, o)
			}
		}
	}

	return env
}

func getEnvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
