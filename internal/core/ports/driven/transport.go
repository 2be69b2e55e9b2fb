package driven

import (
	"context"

	"github.com/custodia-labs/cliprelay/internal/core/domain"
)

// Transport delivers request bodies to the remote endpoint.
type Transport interface {
	// Post sends one JSON body to url. Exactly one request is made.
	// The response body is read and discarded.
	// Non-success statuses return a *domain.RemoteStatusError together
	// with the response summary; transport failures wrap domain.ErrNetwork.
	Post(ctx context.Context, url string, body []byte) (*domain.Response, error)
}
