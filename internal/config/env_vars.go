package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	portEnvVar  = "PORT"
	appNameVar  = "APP_NAME"
	envVar      = "ENV"
	logLevelVar = "LOG_LEVEL"

	envDev = "DEV"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "8080")
	if !strings.HasPrefix(port, ":") {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Session Auth")
}

func (EnvVars) GetEnv() string {
	return strings.ToUpper(GetEnv(envVar, envDev))
}

func (EnvVars) GetLogLevel() string {
	return strings.ToLower(GetEnv(logLevelVar, "info"))
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(envVar string, defaultValue int) int {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return i
}

// getEnvDuration accepts Go duration strings ("90s", "1h") or a bare number
// of seconds. Malformed values fall back to defaultValue; Validate reports
// them.
func getEnvDuration(envVar string, defaultValue time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(envVar))
	if value == "" {
		return defaultValue
	}
	d, err := parseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}

func parseDuration(value string) (time.Duration, error) {
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(value)
}

// checkEnvDuration returns an error when envVar is set to something that
// does not parse as a duration.
func checkEnvDuration(envVar string) error {
	value := strings.TrimSpace(os.Getenv(envVar))
	if value == "" {
		return nil
	}
	if _, err := parseDuration(value); err != nil {
		return fmt.Errorf("%s: invalid duration %q", envVar, value)
	}
	return nil
}

// checkEnvInt returns an error when envVar is set to something that does
// not parse as an integer.
func checkEnvInt(envVar string) error {
	value := os.Getenv(envVar)
	if value == "" {
		return nil
	}
	if _, err := strconv.Atoi(value); err != nil {
		return fmt.Errorf("%s: invalid integer %q", envVar, value)
	}
	return nil
}

func getEnvList(envVar string, defaultValue []string) []string {
	value := os.Getenv(envVar)
	if strings.TrimSpace(value) == "" {
		return defaultValue
	}
	var out []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
