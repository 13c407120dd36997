package passaporteweb

import (
	"context"
	"net/url"

	"github.com/cenkalti/backoff/v4"
)

// RetryTransport decorates a Transport with exponential backoff on network
// errors and server-fault (5xx) responses. Client faults and unexpected
// success codes are never retried: the resource layer decides what to do with
// those. Retry policy lives at the transport boundary only.
type RetryTransport struct {
	next       Transport
	maxRetries uint64
}

// WithRetry wraps t so that each call is attempted up to maxRetries extra
// times with exponential backoff.
func WithRetry(t Transport, maxRetries uint64) *RetryTransport {
	return &RetryTransport{next: t, maxRetries: maxRetries}
}

// Do implements Transport.
func (t *RetryTransport) Do(ctx context.Context, method, path string, query url.Values, body any, creds Credentials) (*Response, error) {
	var resp *Response

	op := func() error {
		var err error
		resp, err = t.next.Do(ctx, method, path, query, body, creds)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return err
		}
		if resp.StatusCode >= 500 {
			return unexpected(resp)
		}
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), t.maxRetries), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		// A still-failing 5xx comes back as a response so the resource layer
		// reports it with the final status attached.
		if resp != nil {
			return resp, nil
		}
		return nil, err
	}
	return resp, nil
}
