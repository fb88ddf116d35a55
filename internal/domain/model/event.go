// Package model defines the domain entities shared across ports and adapters.
package model

// BotVerdict is the provider's classification of the automation risk behind
// an identification event.
type BotVerdict string

const (
	// VerdictNotDetected is the only verdict the provider can return that is
	// treated as safe. Every other non-unknown value, including verdicts the
	// provider may add in the future, is treated as a bot.
	VerdictNotDetected BotVerdict = "notDetected"

	// VerdictUnknown means the bot-detection product was absent or malformed
	// in the event payload. Deliberately treated as safe (degrade, not fail).
	VerdictUnknown BotVerdict = "unknown"
)

// Safe reports whether the verdict permits account creation. Only an exact
// notDetected match or the unknown default pass; the asymmetry is intentional
// and must not be collapsed into two-valued logic.
func (v BotVerdict) Safe() bool {
	return v == VerdictNotDetected || v == VerdictUnknown
}

// IdentificationEvent is the interpreted result of resolving a request token
// against the identification provider. It is transient and never persisted.
type IdentificationEvent struct {
	VisitorID  string
	BotVerdict BotVerdict
}
