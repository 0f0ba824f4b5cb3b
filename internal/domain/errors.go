package domain

import "errors"

// Domain errors.
var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrOwnerProtected   = errors.New("the owner cannot be removed")
	ErrValidation       = errors.New("invalid input")
	ErrInvalidTimestamp = errors.New("timestamp does not match YYYY-MM-DD HH:MM:SS")
	ErrNotFound         = errors.New("no content for this section")
	ErrDispatch         = errors.New("notification could not be delivered")
	ErrUnknownSection   = errors.New("unknown section")
)

var codes = []struct {
	err  error
	code string
}{
	{ErrPermissionDenied, "permission_denied"},
	{ErrOwnerProtected, "owner_protected"},
	{ErrInvalidTimestamp, "invalid_timestamp"},
	{ErrValidation, "validation_failed"},
	{ErrNotFound, "not_found"},
	{ErrDispatch, "dispatch_failed"},
	{ErrUnknownSection, "unknown_section"},
}

// Code returns the stable code of the first domain error wrapped by err,
// or "" when err carries none.
func Code(err error) string {
	if err == nil {
		return ""
	}
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return ""
}
