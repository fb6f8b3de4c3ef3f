package instance

import (
	"fmt"
	"os"
)

// DefaultRedisPort is the port the archive expects when none is configured.
const DefaultRedisPort = 6379

// RedisURLEnv supplies the archive URL when the config sets no redis_url.
const RedisURLEnv = "GENAIALOGY_REDIS_URL"

// GetRedisHost returns the hostname of a Redis server on the local machine.
// Inside a container it returns "host.docker.internal" so the host's
// published port is reachable.
func GetRedisHost() string {
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return "host.docker.internal"
	}
	return "localhost"
}

// GetRedisURL constructs the Redis URL for a given local port.
func GetRedisURL(port int) string {
	return fmt.Sprintf("redis://%s:%d", GetRedisHost(), port)
}

// DefaultRedisURL returns $GENAIALOGY_REDIS_URL if set, otherwise the local
// server on the default port.
func DefaultRedisURL() string {
	if url := os.Getenv(RedisURLEnv); url != "" {
		return url
	}
	return GetRedisURL(DefaultRedisPort)
}
