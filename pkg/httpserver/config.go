package httpserver

import "time"

// Config carries the server settings read from the environment.
type Config struct {
	// Addr is the address the server listens on.
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`
	// ReadTimeout is the maximum duration for reading the entire request.
	ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"30s"`
	// WriteTimeout is the maximum duration before timing out a response write.
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	// IdleTimeout is how long a keep-alive connection may sit idle.
	IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"120s"`
	// ShutdownTimeout is the time allowed for graceful shutdown.
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// NewFromConfig builds a Server from cfg. Options given here are applied
// after the config values and take precedence.
func NewFromConfig(cfg Config, opts ...Option) *Server {
	all := []Option{
		WithAddr(cfg.Addr),
		WithReadTimeout(cfg.ReadTimeout),
		WithWriteTimeout(cfg.WriteTimeout),
		WithIdleTimeout(cfg.IdleTimeout),
		WithShutdownTimeout(cfg.ShutdownTimeout),
	}
	all = append(all, opts...)
	return New(all...)
}
