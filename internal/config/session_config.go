package config

import (
	"os"
	"time"
)

const (
	sessionStoreVar     = "SESSION_STORE"
	sessionTTLVar       = "SESSION_TTL"
	sessionCacheSizeVar = "SESSION_CACHE_SIZE"
	redisAddrVar        = "REDIS_ADDR"
	redisPasswordVar    = "REDIS_PASSWORD"
	redisDBVar          = "REDIS_DB"

	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

type SessionConfig interface {
	GetSessionStore() string
	GetSessionTTL() time.Duration
	GetSessionCacheSize() int
	GetRedisAddr() string
	GetRedisPassword() string
	GetRedisDB() int
}

type Session struct{}

var _ SessionConfig = Session{}

func (Session) GetSessionStore() string {
	return GetEnv(sessionStoreVar, SessionStoreMemory)
}

// GetSessionTTL defaults to the token lifetime so a session entry never
// outlives the tokens pointing at it. An explicit 0 disables expiry.
func (Session) GetSessionTTL() time.Duration {
	if _, ok := os.LookupEnv(sessionTTLVar); !ok {
		return Token{}.GetTokenTTL()
	}
	return getEnvDuration(sessionTTLVar, Token{}.GetTokenTTL())
}

func (Session) GetSessionCacheSize() int {
	return getEnvInt(sessionCacheSizeVar, 10000)
}

func (Session) GetRedisAddr() string {
	return GetEnv(redisAddrVar, "localhost:6379")
}

func (Session) GetRedisPassword() string {
	return GetEnv(redisPasswordVar, "")
}

func (Session) GetRedisDB() int {
	return getEnvInt(redisDBVar, 0)
}
