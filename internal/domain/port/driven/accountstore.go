package driven

import (
	"context"
	"errors"

	"github.com/ericfisherdev/devicegate/internal/domain/model"
)

// ErrDeviceAlreadyRegistered indicates an account already exists for the
// visitor id. Insert returns it on a unique-constraint violation, which makes
// the constraint the canonical duplicate-device signal even when two requests
// race past the CountByVisitorID pre-check.
var ErrDeviceAlreadyRegistered = errors.New("device already has an account")

// AccountStore defines the driven port for account persistence.
// ListAll returns accounts in insertion (id) order and never loads the
// password hash.
type AccountStore interface {
	Insert(ctx context.Context, username, passwordHash, visitorID string) (model.Account, error)
	CountByVisitorID(ctx context.Context, visitorID string) (int, error)
	ListAll(ctx context.Context) ([]model.Account, error)
}
