package redis

import "time"

// Config carries the Redis settings read from the environment.
type Config struct {
	// ConnectionURL is in the form "redis://:password@localhost:6379/0".
	ConnectionURL string `env:"REDIS_URL,required" envDefault:"redis://localhost:6379/0"`

	// RetryAttempts and RetryInterval govern startup retries;
	// ConnectTimeout bounds the whole connection phase.
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
}
