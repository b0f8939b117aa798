package config

import "time"

const (
	userStoreVar       = "USER_STORE"
	databaseURLVar     = "DATABASE_URL"
	databaseMaxConnVar = "DATABASE_MAX_CONNS"

	UserStoreMemory   = "memory"
	UserStorePostgres = "postgres"
)

type StoreConfig interface {
	GetUserStore() string
	GetDatabaseURL() string
	GetDatabaseMaxConns() int
	GetDatabaseConnectTimeout() time.Duration
}

type Store struct{}

var _ StoreConfig = Store{}

func (Store) GetUserStore() string {
	return GetEnv(userStoreVar, UserStoreMemory)
}

func (Store) GetDatabaseURL() string {
	return GetEnv(databaseURLVar, "")
}

func (Store) GetDatabaseMaxConns() int {
	return getEnvInt(databaseMaxConnVar, 5)
}

func (Store) GetDatabaseConnectTimeout() time.Duration {
	return 5 * time.Second
}
