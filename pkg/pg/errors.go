package pg

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

var (
	ErrFailedToOpenDBConnection = errors.New("failed to open db connection")
	ErrHealthcheckFailed        = errors.New("healthcheck failed, connection is not available")
	ErrFailedToApplyMigrations  = errors.New("failed to apply migrations")
)

// IsNotFoundError reports whether err is pgx's empty-result error, so
// stores can translate it into their own not-found sentinels.
func IsNotFoundError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
