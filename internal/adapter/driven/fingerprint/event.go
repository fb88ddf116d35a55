package fingerprint

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ericfisherdev/devicegate/internal/domain/model"
	"github.com/ericfisherdev/devicegate/internal/domain/port/driven"
)

// eventPayload models the provider event once, with optional sub-objects as
// pointers, so interpretation happens in a single tolerant pass instead of
// re-deriving access paths at each use site.
type eventPayload struct {
	Products *productsPayload `json:"products"`
}

type productsPayload struct {
	Identification *identificationProduct `json:"identification"`
	Botd           *botdProduct           `json:"botd"`
}

type identificationProduct struct {
	Data *identificationData `json:"data"`
}

type identificationData struct {
	VisitorID string `json:"visitorId"`
}

type botdProduct struct {
	Data *botdData `json:"data"`
}

type botdData struct {
	Bot *botSignal `json:"bot"`
}

type botSignal struct {
	Result string `json:"result"`
}

// interpret extracts the visitor id and bot verdict from a decoded event.
// The visitor id is required; a missing identification path is
// driven.ErrMalformedEvent. The botd product is optional at every level and
// degrades to VerdictUnknown rather than failing.
func interpret(payload *eventPayload) (*model.IdentificationEvent, error) {
	if payload == nil || payload.Products == nil ||
		payload.Products.Identification == nil ||
		payload.Products.Identification.Data == nil ||
		payload.Products.Identification.Data.VisitorID == "" {
		return nil, fmt.Errorf("event has no visitor id: %w", driven.ErrMalformedEvent)
	}

	verdict := model.VerdictUnknown
	if botd := payload.Products.Botd; botd != nil && botd.Data != nil && botd.Data.Bot != nil && botd.Data.Bot.Result != "" {
		verdict = model.BotVerdict(botd.Data.Bot.Result)
	}

	return &model.IdentificationEvent{
		VisitorID:  payload.Products.Identification.Data.VisitorID,
		BotVerdict: verdict,
	}, nil
}

// errorPayload is the provider's error envelope.
type errorPayload struct {
	Error *errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// classifyProviderError maps a non-200 provider response to a port sentinel.
// Classification pattern-matches the error code and message: token-related
// phrases map to ErrInvalidRequestToken, not-found phrases (and plain 404s)
// to ErrEventNotFound, everything else stays a generic provider error.
func classifyProviderError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var payload errorPayload
	detail := errorDetail{}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != nil {
		detail = *payload.Error
	}

	text := strings.ToLower(detail.Code + " " + detail.Message)

	switch {
	case strings.Contains(text, "token"):
		return fmt.Errorf("provider rejected request (%s): %w", strings.TrimSpace(detail.Message), driven.ErrInvalidRequestToken)
	case strings.Contains(text, "not found"), resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("provider has no event (%s): %w", strings.TrimSpace(detail.Message), driven.ErrEventNotFound)
	default:
		return fmt.Errorf("provider error: status %d: %s", resp.StatusCode, strings.TrimSpace(detail.Message))
	}
}
