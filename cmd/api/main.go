package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"library-backend/pkg/logger"
)

func main() {
	// .env is for local development; elsewhere the process environment is used.
	envErr := godotenv.Load()

	env := getEnv("APP_ENV", "development")
	logger.Init(env)
	if envErr != nil {
		logger.Debug("no .env file found, using system environment", nil)
	}

	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	Serve()
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
