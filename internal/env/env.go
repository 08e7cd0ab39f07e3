package env

import (
	"fmt"
	"os"
)

const (
	JWTSecretKey  = "CHAT_JWT_SECRET"
	ChatRedisURL  = "CHAT_REDIS_URL"
	ChatRedisPass = "CHAT_REDIS_PASS"
	WebUrl        = "WEB_URL"
	ListenAddr    = "LISTEN_ADDR"
)

// Validate checks the variables the server cannot run without. Called from
// main, not init, so packages stay importable in tests.
func Validate() error {
	required := []string{
		JWTSecretKey,
	}
	for _, key := range required {
		if os.Getenv(key) == "" {
			return fmt.Errorf("env: required environment variable not set: %s", key)
		}
	}
	return nil
}

func Get(key string) string {
	return os.Getenv(key)
}

func GetOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func MustGet(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic("env: required environment variable not set: " + key)
	}
	return val
}
