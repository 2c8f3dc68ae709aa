package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr        string
	GinMode        string
	DataDir        string
	DatabaseDSN    string
	LogFile        string
	AllowedOrigins string
}

// LoadEnv reads configuration from the environment, with an optional .env
// file. An empty DatabaseDSN keeps the service on the file-backed store.
func LoadEnv() Env {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on env vars")
	}

	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	dataDir := strings.TrimSpace(os.Getenv("DATA_DIR"))
	if dataDir == "" {
		dataDir = "./data"
	}

	return Env{
		AppAddr:        appAddr,
		GinMode:        strings.TrimSpace(os.Getenv("GIN_MODE")),
		DataDir:        dataDir,
		DatabaseDSN:    strings.TrimSpace(os.Getenv("DATABASE_DSN")),
		LogFile:        strings.TrimSpace(os.Getenv("LOG_FILE")),
		AllowedOrigins: strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")),
	}
}
