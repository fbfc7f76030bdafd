package config

import (
	"os"
)

const (
	appNameVar = "APP_NAME"
	baseURLVar = "BASE_URL"

	localBaseURL  = "http://localhost:3000/api"
	hostedBaseURL = "https://ruby-rails-boilerplate-3s9t.onrender.com/api"
)

type EnvConfig interface {
	GetAppName() string
	GetBaseURL() string
	GetEnv() string
}

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Microblog Client")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

// GetBaseURL returns the API base URL. BASE_URL overrides; otherwise the
// environment selects between the local and hosted deployments.
func (e EnvVars) GetBaseURL() string {
	if url := os.Getenv(baseURLVar); url != "" {
		return url
	}
	if e.GetEnv() == "DEV" {
		return localBaseURL
	}
	return hostedBaseURL
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
