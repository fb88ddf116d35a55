// Package driven declares the driven ports and their sentinel errors.
package driven

import (
	"context"
	"errors"

	"github.com/ericfisherdev/devicegate/internal/domain/model"
)

// Sentinel errors returned by IdentificationClient implementations.
var (
	// ErrInvalidRequestToken indicates the provider rejected the request token
	// as malformed or unset.
	ErrInvalidRequestToken = errors.New("invalid identification request token")

	// ErrEventNotFound indicates the provider has no event for the token,
	// typically because it is unknown or expired.
	ErrEventNotFound = errors.New("identification event not found")

	// ErrMalformedEvent indicates the provider answered but the event payload
	// is missing the visitor id.
	ErrMalformedEvent = errors.New("malformed identification event")
)

// IdentificationClient defines the driven port for resolving a request token
// against the external identification provider. A single attempt per call, no
// retries; provider-side failures other than the sentinels above are returned
// wrapped as opaque errors.
type IdentificationClient interface {
	GetEvent(ctx context.Context, requestID string) (*model.IdentificationEvent, error)
}
