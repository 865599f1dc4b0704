package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	mu     sync.Mutex
	loaded = map[reflect.Type]any{}

	dotenvOnce sync.Once
)

// Load parses environment variables into v based on its `env` field tags.
// A .env file in the working directory is read once per process before the
// first parse; a missing file is fine. Each configuration type is parsed
// exactly once and cached, so later loads of the same type return the value
// the first call saw.
//
//	type PaddleConfig struct {
//		APIKey        string `env:"PADDLE_API_KEY,required"`
//		WebhookSecret string `env:"PADDLE_WEBHOOK_SECRET"`
//	}
//
//	var cfg PaddleConfig
//	if err := config.Load(&cfg); err != nil { ... }
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})

	mu.Lock()
	defer mu.Unlock()

	t := reflect.TypeOf(*v)
	if cached, ok := loaded[t]; ok {
		*v = cached.(T)
		return nil
	}

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	loaded[t] = *v
	return nil
}

// MustLoad is Load for configuration the process cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("load configuration: %v", err))
	}
}
