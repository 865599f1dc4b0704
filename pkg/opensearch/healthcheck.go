package opensearch

import (
	"context"
	"errors"

	"github.com/opensearch-project/opensearch-go/v2"
)

// Healthcheck pings the cluster and reports failure when it is unreachable.
// The returned probe plugs into the HTTP health endpoint and is safe for
// concurrent use.
func Healthcheck(client *opensearch.Client) func(context.Context) error {
	return func(ctx context.Context) error {
		res, err := client.Ping(client.Ping.WithContext(ctx))
		if err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		defer res.Body.Close()

		if res.IsError() {
			return errors.Join(ErrHealthcheckFailed, errors.New(res.Status()))
		}
		return nil
	}
}
