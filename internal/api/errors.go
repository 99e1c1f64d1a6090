package api

import "fmt"

// Kind classifies a request failure. Exactly one kind applies per failure.
type Kind int

const (
	// KindAuthExpired is a 401 on a call made with a credential the backend
	// no longer accepts.
	KindAuthExpired Kind = iota
	// KindPrivilegeDenied is a 403.
	KindPrivilegeDenied
	// KindResourceMissing is a 404.
	KindResourceMissing
	// KindServerFault is a 500.
	KindServerFault
	// KindHTTP is any other non-success status.
	KindHTTP
	// KindNetwork means the request was sent but no response arrived
	// (connection refused, DNS failure, timeout).
	KindNetwork
	// KindRequest means the request could not be built or sent at all.
	KindRequest
)

func (k Kind) String() string {
	switch k {
	case KindAuthExpired:
		return "auth_expired"
	case KindPrivilegeDenied:
		return "privilege_denied"
	case KindResourceMissing:
		return "resource_missing"
	case KindServerFault:
		return "server_fault"
	case KindHTTP:
		return "http_error"
	case KindNetwork:
		return "network_unreachable"
	case KindRequest:
		return "request_failed"
	default:
		return "unknown"
	}
}

// Error is the typed failure the pipeline hands back to call sites after its
// global side effects (notification, forced logout) have run. Message carries
// the backend-provided message when the response body had one; it may be
// empty for transport-level failures.
type Error struct {
	Kind    Kind
	Status  int    // HTTP status, 0 when no response was received
	Message string // backend-provided message, may be empty
	Err     error  // underlying transport or encoding error
}

func (e *Error) Error() string {
	if e.Status > 0 {
		if e.Message != "" {
			return fmt.Sprintf("api: %s (status %d): %s", e.Kind, e.Status, e.Message)
		}
		return fmt.Sprintf("api: %s (status %d)", e.Kind, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("api: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("api: %s", e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}
