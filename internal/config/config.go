package config

type Config interface {
	EnvConfig
	CorsConfig
	InterviewConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetDataFolder() string
	GetResultsFolder() string
	GetRedisAddr() string
	GetRedisPassword() string
	GetLinkTokenSecret() string
	GetEnv() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	Cors
	Interview
}

func New() Config {
	return mainConfig{}
}
