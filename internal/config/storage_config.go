package config

import (
	"os"
	"path/filepath"
)

const tokenFileVar = "TOKEN_FILE"

type StorageConfig interface {
	GetTokenFilePath() string
}

type Storage struct{}

var _ StorageConfig = Storage{}

// GetTokenFilePath returns the location of the durable token file.
// TOKEN_FILE overrides; otherwise it lives under the user config dir.
func (Storage) GetTokenFilePath() string {
	if path := os.Getenv(tokenFileVar); path != "" {
		return path
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".microblog", "tokens.json")
	}
	return filepath.Join(configDir, "microblog", "tokens.json")
}
