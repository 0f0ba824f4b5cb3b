package discord

import (
	"bannerbot/internal/domain"
	"bannerbot/internal/ports/output"
)

// ErrorKey maps a domain error code to its message key.
func ErrorKey(code string) string {
	switch code {
	case "permission_denied":
		return "edit.denied"
	case "owner_protected":
		return "admin.owner_protected"
	case "invalid_timestamp":
		return "flow.error.invalid_timestamp"
	case "not_found":
		return "error.not_found"
	case "unknown_section":
		return "error.unknown_section"
	default:
		return "error.generic"
	}
}

// DomainErrorMessage resolves err to a localized message. Errors without a
// domain code get the generic message.
func DomainErrorMessage(tr output.T, locale string, err error) string {
	if err == nil {
		return ""
	}
	return tr.T(locale, ErrorKey(domain.Code(err)), nil)
}
