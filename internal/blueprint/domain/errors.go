package domain

import (
	"errors"
	"net/http"
)

// Kind classifies every failure the pipeline can surface.
type Kind string

const (
	KindInvalidInput        Kind = "InvalidInput"
	KindMisconfiguredClient Kind = "MisconfiguredClient"
	KindRateLimited         Kind = "RateLimited"
	KindQuotaExhausted      Kind = "QuotaExhausted"
	KindServiceUnavailable  Kind = "ServiceUnavailable"
	KindMalformedResponse   Kind = "MalformedResponse"
	KindIncompleteBlueprint Kind = "IncompleteBlueprint"
	KindPersistenceDegraded Kind = "PersistenceDegraded"
	KindExportFailure       Kind = "ExportFailure"
)

var userMessages = map[Kind]string{
	KindInvalidInput:        "Please describe your project idea (up to 2000 characters).",
	KindMisconfiguredClient: "The AI service is not configured. Please contact the operator.",
	KindRateLimited:         "Rate limit exceeded. Please try again in a moment.",
	KindQuotaExhausted:      "AI credits exhausted. Please add credits to continue.",
	KindServiceUnavailable:  "The AI service is unavailable right now. Please try again.",
	KindMalformedResponse:   "The AI returned an unreadable blueprint. Please try again.",
	KindIncompleteBlueprint: "The AI returned an incomplete blueprint. Please try again.",
	KindPersistenceDegraded: "Recent blueprints could not be saved.",
	KindExportFailure:       "The blueprint could not be exported. Please try again.",
}

// Error carries a failure kind, a user-facing message and the technical cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = userMessages[e.Kind]
	}
	if e.Err != nil {
		return string(e.Kind) + ": " + msg + ": " + e.Err.Error()
	}
	return string(e.Kind) + ": " + msg
}

func (e *Error) Unwrap() error { return e.Err }

// NewError builds a classified error with the default message for kind.
func NewError(kind Kind, cause error) *Error {
	return &Error{Kind: kind, Err: cause}
}

// Errorf builds a classified error with an explicit user-facing message.
func Errorf(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

// KindOf extracts the classification of err. Unclassified errors are reported
// as ServiceUnavailable.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindServiceUnavailable
}

// IsKind reports whether err is classified as kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// UserMessage is the single human-readable line shown for err. It never
// contains the technical cause.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Message != "" {
			return e.Message
		}
		return userMessages[e.Kind]
	}
	return userMessages[KindServiceUnavailable]
}

// DefaultMessage returns the canned user-facing message of kind.
func DefaultMessage(kind Kind) string {
	return userMessages[kind]
}

// Retryable reports whether the user may try the same request again later.
func Retryable(kind Kind) bool {
	switch kind {
	case KindRateLimited, KindServiceUnavailable, KindMalformedResponse, KindIncompleteBlueprint, KindExportFailure:
		return true
	default:
		return false
	}
}

// HTTPStatus maps kind onto the status code of the analysis endpoint contract.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindQuotaExhausted:
		return http.StatusPaymentRequired
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// ParseKind recognises a kind tag sent over the wire; ok is false for unknown tags.
func ParseKind(s string) (Kind, bool) {
	k := Kind(s)
	_, ok := userMessages[k]
	return k, ok
}
