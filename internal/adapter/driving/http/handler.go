// Package httphandler is the HTTP driving adapter exposing the account gate
// and store as a JSON API.
package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ericfisherdev/devicegate/internal/application"
	"github.com/ericfisherdev/devicegate/internal/domain/port/driven"
)

// Handler serves the REST API.
type Handler struct {
	gate     *application.GateService
	accounts driven.AccountStore
	logger   *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(gate *application.GateService, accounts driven.AccountStore, logger *slog.Logger) *Handler {
	return &Handler{
		gate:     gate,
		accounts: accounts,
		logger:   logger,
	}
}

// NewServeMux creates an http.Handler with all routes registered and wrapped
// with logging and recovery middleware.
func NewServeMux(h *Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/create-account", h.CreateAccount)
	mux.HandleFunc("GET /api/accounts", h.ListAccounts)
	mux.HandleFunc("GET /health", h.Health)

	// Recovery innermost so panics are caught before logging.
	wrapped := recoveryMiddleware(logger, mux)
	wrapped = loggingMiddleware(logger, wrapped)

	return wrapped
}

// CreateAccount runs one gated account-creation attempt and translates each
// failure kind of the pipeline to its status code.
func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.gate.CreateAccount(r.Context(), application.CreateAccountInput{
		RequestID: req.RequestID,
		Username:  req.Username,
		Password:  req.Password,
	})
	if err != nil {
		h.writeGateFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, CreateAccountResponse{
		Status:    "Account created successfully!",
		VisitorID: result.Account.VisitorID,
		BotResult: string(result.BotVerdict),
	})
}

// writeGateFailure maps a gate pipeline error to its HTTP response. Policy
// rejections carry their discriminating data (bot verdict, visitor id) in the
// body for client-side messaging.
func (h *Handler) writeGateFailure(w http.ResponseWriter, err error) {
	var botErr *application.BotDetectedError
	var dupErr *application.DuplicateDeviceError

	switch {
	case errors.Is(err, application.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "requestId, username, and password are required")
	case errors.Is(err, driven.ErrInvalidRequestToken):
		writeError(w, http.StatusBadRequest, "invalid identification request token")
	case errors.Is(err, driven.ErrEventNotFound):
		writeError(w, http.StatusNotFound, "identification event not found")
	case errors.As(err, &botErr):
		writeJSON(w, http.StatusForbidden, BotDetectedResponse{
			Error:     "Bot detected",
			BotResult: string(botErr.Verdict),
		})
	case errors.As(err, &dupErr):
		writeJSON(w, http.StatusTooManyRequests, DuplicateDeviceResponse{
			Error:     "Device already has an account",
			VisitorID: dupErr.VisitorID,
		})
	default:
		// Unclassified provider and storage failures. Internal service: the
		// underlying error text is included for diagnostics.
		h.logger.Error("account creation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "account creation failed: "+err.Error())
	}
}

// ListAccounts returns every stored account, passwords omitted.
func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accounts.ListAll(r.Context())
	if err != nil {
		h.logger.Error("failed to list accounts", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := AccountListResponse{Accounts: make([]AccountResponse, 0, len(accounts))}
	for _, account := range accounts {
		resp.Accounts = append(resp.Accounts, toAccountResponse(account))
	}

	writeJSON(w, http.StatusOK, resp)
}

// Health returns a simple liveness response.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "Server is running"})
}
