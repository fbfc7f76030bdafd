package config

type Config interface {
	EnvConfig
	HTTPConfig
	StorageConfig
}

type mainConfig struct {
	EnvVars
	HTTP
	Storage
}

func New() Config {
	return mainConfig{}
}
