package config

import (
	"strconv"
	"time"
)

type HTTPConfig interface {
	GetRequestTimeout() time.Duration
	GetMaxRetries() int
}

type HTTP struct{}

var _ HTTPConfig = HTTP{}

func (HTTP) GetRequestTimeout() time.Duration {
	seconds, err := strconv.Atoi(GetEnv("REQUEST_TIMEOUT_SECONDS", "30"))
	if err != nil || seconds <= 0 {
		seconds = 30
	}
	return time.Duration(seconds) * time.Second
}

func (HTTP) GetMaxRetries() int {
	return 2
}
