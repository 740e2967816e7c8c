package rpc

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// genericFailure is reported when the server returned nothing usable.
const genericFailure = "Invalid server response"

// Kind classifies why a call failed.
type Kind int

const (
	// KindRequest covers envelopes rejected before any network traffic.
	KindRequest Kind = iota + 1
	// KindTransport covers network failures and undecodable bodies.
	KindTransport
	// KindProtocol covers "error" and "exception" fields in the response.
	KindProtocol
)

func (k Kind) String() string {
	switch k {
	case KindRequest:
		return "request"
	case KindTransport:
		return "transport"
	case KindProtocol:
		return "protocol"
	default:
		return "unknown"
	}
}

// Error is the error form of a failed Outcome. Its text is the bare server
// message so that it can be shown to the user as-is.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Outcome is the normalized result of a call: either Ok with the decoded
// payload or Failed with a message. The zero value is a Failed outcome with
// the generic message.
type Outcome struct {
	ok    bool
	value json.RawMessage
	err   *Error
}

// Ok wraps a successful payload.
func Ok(value json.RawMessage) Outcome {
	return Outcome{ok: true, value: value}
}

// Failed builds a failed outcome of the given kind.
func Failed(kind Kind, message string) Outcome {
	if message == "" {
		message = genericFailure
	}
	return Outcome{err: &Error{Kind: kind, Message: message}}
}

// OK reports whether the call succeeded.
func (o Outcome) OK() bool { return o.ok }

// Value returns the raw payload of a successful outcome, or nil.
func (o Outcome) Value() json.RawMessage {
	if !o.ok {
		return nil
	}
	return o.value
}

// Message returns the failure message, or "" for a successful outcome.
func (o Outcome) Message() string {
	if o.ok {
		return ""
	}
	return o.errOrGeneric().Message
}

// Err returns nil for Ok and an *Error for Failed.
func (o Outcome) Err() error {
	if o.ok {
		return nil
	}
	return o.errOrGeneric()
}

func (o Outcome) errOrGeneric() *Error {
	if o.err == nil {
		return &Error{Kind: KindTransport, Message: genericFailure}
	}
	return o.err
}

// Decode unmarshals the payload of a successful outcome into out. A failed
// outcome returns its error unchanged.
func (o Outcome) Decode(out any) error {
	if err := o.Err(); err != nil {
		return err
	}
	if err := json.Unmarshal(o.value, out); err != nil {
		return &Error{Kind: KindTransport, Message: fmt.Sprintf("unexpected response shape: %v", err)}
	}
	return nil
}

// Interpret turns a raw response body into an Outcome. An "error" field or
// an "exception" field makes it Failed; a body that is not JSON is Failed
// with the raw text. Everything else is Ok with the body as the payload.
func Interpret(body []byte) Outcome {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return Failed(KindTransport, genericFailure)
	}
	if !json.Valid(trimmed) {
		return Failed(KindTransport, string(body))
	}

	if trimmed[0] == '{' {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &fields); err != nil {
			return Failed(KindTransport, string(body))
		}
		if raw, ok := fields["error"]; ok && truthy(raw) {
			return Failed(KindProtocol, messageOf(raw))
		}
		if raw, ok := fields["exception"]; ok && truthy(raw) {
			return Failed(KindProtocol, exceptionMessage(raw))
		}
	}
	return Ok(json.RawMessage(trimmed))
}

// truthy mirrors the server convention that null, false, "" and 0 mean
// "no error".
func truthy(raw json.RawMessage) bool {
	switch string(bytes.TrimSpace(raw)) {
	case "", "null", "false", `""`, "0":
		return false
	}
	return true
}

func messageOf(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var obj struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &obj) == nil && obj.Message != "" {
		return obj.Message
	}
	return string(raw)
}

func exceptionMessage(raw json.RawMessage) string {
	var obj struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &obj) == nil && obj.Message != "" {
		return obj.Message
	}
	return messageOf(raw)
}
