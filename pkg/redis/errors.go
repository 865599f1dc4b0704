package redis

import "errors"

var (
	ErrFailedToParseRedisConnString = errors.New("invalid redis connection url")
	ErrRedisNotReady                = errors.New("redis did not become ready in time")
	ErrHealthcheckFailed            = errors.New("redis healthcheck failed")
)
