package config

import (
	"fmt"
	"os"
)

const (
	portEnvVar    = "PORT"
	appNameVar    = "APP_NAME"
	dataFolderVar = "DATA_FOLDER"
	resultsVar    = "RESULTS_FOLDER"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "8080")
	if port != "" && port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Interview Server")
}

// GetDataFolder returns the folder holding pre-provisioned question-set files
func (EnvVars) GetDataFolder() string {
	return GetEnv(dataFolderVar, "./data")
}

// GetResultsFolder returns the folder interview reports are written to
func (EnvVars) GetResultsFolder() string {
	return GetEnv(resultsVar, "./results")
}

func (EnvVars) GetRedisAddr() string {
	return GetEnv("REDIS_ADDR", "localhost:6379")
}

func (EnvVars) GetRedisPassword() string {
	return GetEnv("REDIS_PASSWORD", "")
}

// GetLinkTokenSecret returns the HMAC secret used to sign link access tokens
func (EnvVars) GetLinkTokenSecret() string {
	return GetEnv("LINK_TOKEN_SECRET", "dev-only-link-secret")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
