// Package envelope implements the uniform response convention shared by every
// crawler and connection endpoint.
//
// Every forwarded Glue call ends in exactly one of three envelopes:
//
//	Success   {"success": true,  "status": 200, "data": ...}
//	Error     {"success": false, "status": 4xx, "message": <raw result>}
//	Exception {"success": false, "status": 4xx, "message": <error detail>}
//
// Map selects the envelope from an Outcome using the per-operation allow-list
// table in operations.go. It never panics and keeps no state.
package envelope

import (
	"encoding/json"
	"net/http"
)

// Kind discriminates the three outcome shapes a Glue call can produce.
type Kind int

const (
	// KindUnclassified is any failure without a recognisable error code.
	// It is the zero value so an empty Outcome maps to the default Exception.
	KindUnclassified Kind = iota
	// KindTransport is a completed call carrying a status code and payload.
	KindTransport
	// KindClassified is a failure carrying a stable, named error code.
	KindClassified
)

// String returns a lowercase label used in logs and metrics.
func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindClassified:
		return "classified"
	default:
		return "unclassified"
	}
}

// Outcome is the classified result of a single external call.
//
// Only the fields relevant to Kind are read:
//   - KindTransport:   Status, Payload, Raw
//   - KindClassified:  Status, Code, Detail
//   - KindUnclassified: Err (never surfaced to callers)
type Outcome struct {
	Kind Kind

	// Status is the HTTP status code reported by the transport.
	Status int
	// Payload is the operation-specific data attached to Success envelopes.
	Payload any
	// Raw is the whole call result, surfaced as the Error message.
	Raw any

	// Code is the vendor error code, e.g. "EntityNotFoundException".
	Code string
	// Detail is the vendor error body surfaced on recognised codes.
	Detail any

	// Err is the underlying cause of an unclassified failure.
	Err error
}

// Transport builds an Outcome for a completed call.
func Transport(status int, payload, raw any) Outcome {
	return Outcome{Kind: KindTransport, Status: status, Payload: payload, Raw: raw}
}

// Classified builds an Outcome for a failure carrying a named error code.
func Classified(code string, status int, detail any) Outcome {
	return Outcome{Kind: KindClassified, Code: code, Status: status, Detail: detail}
}

// Unclassified builds an Outcome for any other failure.
func Unclassified(err error) Outcome {
	return Outcome{Kind: KindUnclassified, Err: err}
}

// Variant names the envelope shape.
type Variant string

const (
	VariantSuccess   Variant = "success"
	VariantError     Variant = "error"
	VariantException Variant = "exception"
)

const (
	// DefaultFailureStatus is used by Error and Exception envelopes when the
	// transport status is unknown.
	DefaultFailureStatus = http.StatusNotFound
	// UnhandledMessage is the fixed message of the default Exception.
	UnhandledMessage = "Unhandled Exception"
)

// Envelope is the response body returned by every forwarding endpoint.
//
// Data is always serialised for Success (null when absent); Message is always
// serialised for Error and Exception. MarshalJSON enforces that split.
type Envelope struct {
	Variant Variant `json:"-"`
	Success bool    `json:"success"`
	Status  int     `json:"status"`
	Data    any     `json:"data,omitempty"`
	Message any     `json:"message,omitempty"`
}

// SuccessEnvelope returns a Success envelope.
func SuccessEnvelope(status int, data any) Envelope {
	if status == 0 {
		status = http.StatusOK
	}
	return Envelope{Variant: VariantSuccess, Success: true, Status: status, Data: data}
}

// ErrorEnvelope returns an Error envelope carrying the raw call result.
func ErrorEnvelope(status int, raw any) Envelope {
	if status == 0 {
		status = DefaultFailureStatus
	}
	return Envelope{Variant: VariantError, Status: status, Message: raw}
}

// ExceptionEnvelope returns an Exception envelope carrying an error detail.
func ExceptionEnvelope(status int, detail any) Envelope {
	if status == 0 {
		status = DefaultFailureStatus
	}
	return Envelope{Variant: VariantException, Status: status, Message: detail}
}

// DefaultException is the contentless Exception used for unrecognised failures.
func DefaultException() Envelope {
	return ExceptionEnvelope(DefaultFailureStatus, map[string]any{"message": UnhandledMessage})
}

type successBody struct {
	Success bool `json:"success"`
	Status  int  `json:"status"`
	Data    any  `json:"data"`
}

type failureBody struct {
	Success bool `json:"success"`
	Status  int  `json:"status"`
	Message any  `json:"message"`
}

// MarshalJSON writes "data" for Success and "message" otherwise, keeping
// explicit nulls so clients always see the same keys per variant.
func (e Envelope) MarshalJSON() ([]byte, error) {
	if e.Success {
		return json.Marshal(successBody{Success: true, Status: e.Status, Data: e.Data})
	}
	return json.Marshal(failureBody{Success: false, Status: e.Status, Message: e.Message})
}
