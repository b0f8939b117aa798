package config

import "time"

const (
	tokenSecretVar      = "TOKEN_SECRET"
	tokenIssuerVar      = "TOKEN_ISSUER"
	tokenTTLVar         = "TOKEN_TTL"
	operationTimeoutVar = "AUTH_OPERATION_TIMEOUT"

	// devTokenSecret is only accepted when ENV=DEV.
	devTokenSecret = "dev-only-token-secret-change-me"
)

type TokenConfig interface {
	GetTokenSecret() string
	GetTokenIssuer() string
	GetTokenTTL() time.Duration
	GetOperationTimeout() time.Duration
}

type Token struct{}

var _ TokenConfig = Token{}

func (Token) GetTokenSecret() string {
	return GetEnv(tokenSecretVar, devTokenSecret)
}

func (Token) GetTokenIssuer() string {
	return GetEnv(tokenIssuerVar, "session-auth")
}

func (Token) GetTokenTTL() time.Duration {
	return getEnvDuration(tokenTTLVar, time.Hour)
}

// GetOperationTimeout bounds each cache and repository call made while
// serving a request.
func (Token) GetOperationTimeout() time.Duration {
	return getEnvDuration(operationTimeoutVar, 3*time.Second)
}
