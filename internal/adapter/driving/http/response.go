package httphandler

import (
	"encoding/json"
	"net/http"

	"github.com/ericfisherdev/devicegate/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// CreateAccountRequest is the JSON body for the create-account endpoint.
type CreateAccountRequest struct {
	RequestID string `json:"requestId"`
	Username  string `json:"username"`
	Password  string `json:"password"`
}

// CreateAccountResponse is the success body for the create-account endpoint.
type CreateAccountResponse struct {
	Status    string `json:"status"`
	VisitorID string `json:"visitorId"`
	BotResult string `json:"botResult"`
}

// BotDetectedResponse rejects a creation attempt flagged as automated. The
// verdict string is included for client-side messaging.
type BotDetectedResponse struct {
	Error     string `json:"error"`
	BotResult string `json:"botResult"`
}

// DuplicateDeviceResponse rejects a creation attempt from a device that
// already owns an account.
type DuplicateDeviceResponse struct {
	Error     string `json:"error"`
	VisitorID string `json:"visitorId"`
}

// AccountResponse is the JSON representation of a stored account. Passwords
// are intentionally absent.
type AccountResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	VisitorID string `json:"visitorId"`
}

// AccountListResponse is the body of the accounts listing endpoint.
type AccountListResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// HealthResponse is the body of the liveness endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}

// toAccountResponse converts a domain Account to its JSON representation.
func toAccountResponse(account model.Account) AccountResponse {
	return AccountResponse{
		ID:        account.ID,
		Username:  account.Username,
		VisitorID: account.VisitorID,
	}
}
