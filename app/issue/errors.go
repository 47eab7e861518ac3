package issue

import "fmt"

// UpstreamError reports a non-success HTTP status or an upstream-reported
// error code from a platform call.
type UpstreamError struct {
	Platform   Platform
	StatusCode int
	Code       string
	Detail     string
}

func (e *UpstreamError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s API error: %s - %s", e.Platform, e.Code, e.Detail)
	}
	if e.Detail != "" {
		return fmt.Sprintf("%s API error: %d %s", e.Platform, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("%s API error: %d", e.Platform, e.StatusCode)
}

// MalformedResponseError reports a success status carrying an unexpected
// content type or an HTML payload where structured data was expected,
// typically an anti-automation challenge page.
type MalformedResponseError struct {
	Platform Platform
	Detail   string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s returned malformed response: %s. The server may be blocking automated requests", e.Platform, e.Detail)
}

// NotFoundError reports an unknown project slug or pool name.
type NotFoundError struct {
	Kind  string // "project" or "pool"
	Value string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found", e.Kind, e.Value)
}

// PreconditionError reports a required credential missing for a platform
// that mandates one. Raised before any network call is attempted.
type PreconditionError struct {
	Platform Platform
	Missing  string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s requires %s", e.Platform, e.Missing)
}

// StoreUnavailableError reports that no key-value store capability was
// provided to the caller at all, as opposed to a present store with an
// absent key.
type StoreUnavailableError struct {
	Op string
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("key-value store not available for %s", e.Op)
}
