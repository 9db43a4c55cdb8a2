package config

import (
	"os"
	"strconv"
)

type AppConfig struct {
	DebugMode         bool
	ServerPort        int
	RedisConfig       *RedisConfig
	PostgresConfig    *PostgresConfig
	JwtConfig         *JwtConfig
	ExecBackendConfig *ExecBackendConfig
}

func NewSystemConfig() *AppConfig {
	port, err := strconv.Atoi(os.Getenv("SERVER_PORT"))
	if err != nil || port == 0 {
		port = 8082
	}
	return &AppConfig{
		DebugMode:         os.Getenv("DEBUG_MODE") == "true",
		ServerPort:        port,
		RedisConfig:       NewRedisConfig(),
		PostgresConfig:    NewPostgresConfig(),
		JwtConfig:         NewJwtConfig(),
		ExecBackendConfig: NewExecBackendConfig(),
	}
}
