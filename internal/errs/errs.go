// Package errs defines the error taxonomy shared by the download and
// upload flows. Callers branch on Kind rather than matching message
// text.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies an error for programmatic handling.
type Kind string

// Kind constants cover every failure class the HTTP surface needs to
// distinguish.
const (
	KindInvalidURL       Kind = "INVALID_URL"
	KindExtraction       Kind = "EXTRACTION_FAILED"
	KindAcquisition      Kind = "ACQUISITION_FAILED"
	KindAuthRequired     Kind = "AUTH_REQUIRED"
	KindPermission       Kind = "PERMISSION_DENIED"
	KindNotFound         Kind = "NOT_FOUND"
	KindStoreUnavailable Kind = "STORE_UNAVAILABLE"
	KindUpload           Kind = "UPLOAD_FAILED"
	KindPublish          Kind = "PUBLISH_FAILED"
)

// ActionReauth is set on permission errors whose only remediation is a
// fresh sign-in with the full scope set.
const ActionReauth = "reauth"

// Error carries a kind, a human message, and an optional remediation
// signal for the caller UI.
type Error struct {
	Kind           Kind
	Message        string
	ActionRequired string
	err            error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.err }

// New creates an Error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an Error wrapping an underlying cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, err: err}
}

// InvalidURL reports a URL that failed shape validation. Always
// client-fault, never retried.
func InvalidURL(url string) *Error {
	return New(KindInvalidURL, fmt.Sprintf("invalid video URL: %s", url))
}

// Extraction reports a failed metadata probe.
func Extraction(err error) *Error {
	return Wrap(KindExtraction, "failed to extract video info", err)
}

// Acquisition reports that every download strategy was exhausted. The
// wrapped error aggregates the per-strategy causes.
func Acquisition(err error) *Error {
	return Wrap(KindAcquisition, "all download methods failed", err)
}

// AuthRequired reports a missing or unusable delegated-authorization
// context. The caller should redirect to sign-in, not retry.
func AuthRequired(message string) *Error {
	return New(KindAuthRequired, message)
}

// Permission reports an authenticated credential lacking a required
// scope. Carries the reauth signal so the caller can prompt a fresh
// sign-in instead of a generic retry.
func Permission(message string) *Error {
	return &Error{Kind: KindPermission, Message: message, ActionRequired: ActionReauth}
}

// NotFound reports a missing record or local file.
func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

// KindOf returns the Kind of err, or the empty Kind for errors outside
// the taxonomy.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// AsError returns the taxonomy error wrapped in err, if any.
func AsError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
