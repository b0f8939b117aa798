package config

import (
	"fmt"

	"github.com/joho/godotenv"
)

type Config interface {
	EnvConfig
	CorsConfig
	TokenConfig
	SessionConfig
	StoreConfig
	BootstrapConfig
	Validate() error
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	Cors
	Token
	Session
	Store
	Bootstrap
}

// New loads a .env file when one is present and returns the environment
// backed configuration. A missing .env is not an error.
func New() Config {
	_ = godotenv.Load()
	return mainConfig{}
}

// Validate reports configuration that would stop the server from serving
// requests correctly.
func (c mainConfig) Validate() error {
	for _, v := range []string{tokenTTLVar, sessionTTLVar, operationTimeoutVar} {
		if err := checkEnvDuration(v); err != nil {
			return err
		}
	}
	for _, v := range []string{sessionCacheSizeVar, redisDBVar, databaseMaxConnVar} {
		if err := checkEnvInt(v); err != nil {
			return err
		}
	}

	if c.GetEnv() != envDev && c.GetTokenSecret() == devTokenSecret {
		return fmt.Errorf("%s must be set outside of %s", tokenSecretVar, envDev)
	}
	if c.GetTokenTTL() <= 0 {
		return fmt.Errorf("%s must be positive", tokenTTLVar)
	}
	if c.GetSessionTTL() < 0 {
		return fmt.Errorf("%s must not be negative", sessionTTLVar)
	}
	if c.GetOperationTimeout() <= 0 {
		return fmt.Errorf("%s must be positive", operationTimeoutVar)
	}

	switch c.GetSessionStore() {
	case SessionStoreMemory:
	case SessionStoreRedis:
		if c.GetRedisAddr() == "" {
			return fmt.Errorf("%s is required for the redis session store", redisAddrVar)
		}
	default:
		return fmt.Errorf("unknown %s %q", sessionStoreVar, c.GetSessionStore())
	}

	switch c.GetUserStore() {
	case UserStoreMemory:
	case UserStorePostgres:
		if c.GetDatabaseURL() == "" {
			return fmt.Errorf("%s is required for the postgres user store", databaseURLVar)
		}
	default:
		return fmt.Errorf("unknown %s %q", userStoreVar, c.GetUserStore())
	}
	return nil
}
