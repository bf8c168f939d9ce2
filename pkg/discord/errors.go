package discord

import (
	"eventpulse/internal/domain"
	"eventpulse/internal/ports/output"
)

// DomainErrorMessage resolves err to a translated user-facing message.
// Errors without a domain code get the generic message.
func DomainErrorMessage(t output.T, locale string, err error) string {
	if err == nil {
		return ""
	}
	switch code := domain.Code(err); code {
	case "", "selection_failure", "deletion_failure", "ledger_write_failure":
		return t.T(locale, "error.generic", nil)
	default:
		return t.T(locale, "error."+code, nil)
	}
}
