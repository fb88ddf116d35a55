// Package application contains the account-creation gate orchestrating the
// identification and persistence ports.
package application

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/ericfisherdev/devicegate/internal/domain/model"
	"github.com/ericfisherdev/devicegate/internal/domain/port/driven"
)

// bcrypt cost for stored password hashes.
const hashCost = 12

// ErrInvalidInput indicates the creation request is missing the request
// token, username, or password. Raised before any provider call is made.
var ErrInvalidInput = errors.New("requestId, username, and password are required")

// BotDetectedError rejects a creation attempt whose bot verdict is unsafe.
// It carries the verdict string for client-side reporting.
type BotDetectedError struct {
	Verdict model.BotVerdict
}

func (e *BotDetectedError) Error() string {
	return fmt.Sprintf("bot detected: verdict %q", e.Verdict)
}

// DuplicateDeviceError rejects a creation attempt from a device that already
// owns an account. It carries the visitor id for client-side reporting.
type DuplicateDeviceError struct {
	VisitorID string
}

func (e *DuplicateDeviceError) Error() string {
	return fmt.Sprintf("device %s already has an account", e.VisitorID)
}

// CreateAccountInput is the gate's input shape, decoded from the HTTP body by
// the driving adapter.
type CreateAccountInput struct {
	RequestID string
	Username  string
	Password  string
}

// CreationResult is returned on the success path: the persisted account plus
// the bot verdict that accompanied it.
type CreationResult struct {
	Account    model.Account
	BotVerdict model.BotVerdict
}

// GateService enforces the one-account-per-device creation policy. It runs
// the whole pipeline per request: validate input, resolve the identification
// event, apply the bot policy, check for a duplicate device, and persist.
// Persistence is the last step, so no failure path needs cleanup.
type GateService struct {
	identifier driven.IdentificationClient
	accounts   driven.AccountStore
}

// NewGateService creates a GateService with the required port dependencies.
func NewGateService(identifier driven.IdentificationClient, accounts driven.AccountStore) *GateService {
	return &GateService{
		identifier: identifier,
		accounts:   accounts,
	}
}

// CreateAccount runs the gating pipeline for one creation attempt. Every
// failure is terminal for the request: ErrInvalidInput for missing fields,
// the identification port sentinels passed through unchanged, a typed
// BotDetectedError or DuplicateDeviceError for policy rejections, and
// wrapped storage errors for everything else.
func (s *GateService) CreateAccount(ctx context.Context, in CreateAccountInput) (*CreationResult, error) {
	if in.RequestID == "" || in.Username == "" || in.Password == "" {
		return nil, ErrInvalidInput
	}

	event, err := s.identifier.GetEvent(ctx, in.RequestID)
	if err != nil {
		return nil, err
	}

	if !event.BotVerdict.Safe() {
		return nil, &BotDetectedError{Verdict: event.BotVerdict}
	}

	count, err := s.accounts.CountByVisitorID(ctx, event.VisitorID)
	if err != nil {
		return nil, fmt.Errorf("duplicate check for visitor %s: %w", event.VisitorID, err)
	}
	if count > 0 {
		return nil, &DuplicateDeviceError{VisitorID: event.VisitorID}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account, err := s.accounts.Insert(ctx, in.Username, string(hash), event.VisitorID)
	if err != nil {
		// Two concurrent requests from a new device can both pass the
		// pre-check; the unique constraint catches the loser here.
		if errors.Is(err, driven.ErrDeviceAlreadyRegistered) {
			return nil, &DuplicateDeviceError{VisitorID: event.VisitorID}
		}
		return nil, err
	}

	return &CreationResult{
		Account:    account,
		BotVerdict: event.BotVerdict,
	}, nil
}
