// Package rpc speaks the Serverpod-style protocol used by the MuSheet
// backend: every call is a single JSON object POSTed to <base>/<endpoint>,
// with the method name merged into the parameters.
package rpc

import (
	"encoding/json"
	"errors"
)

// reservedKey carries the method name inside the envelope.
const reservedKey = "method"

var (
	// ErrEmptyMethod is returned when an envelope is built without a method.
	ErrEmptyMethod = errors.New("rpc: method must not be empty")
	// ErrReservedParam is returned when params try to set the "method" key.
	ErrReservedParam = errors.New(`rpc: params must not contain the reserved key "method"`)
)

// Envelope is the request payload of one call.
type Envelope struct {
	Method string
	Params map[string]any
}

// NewEnvelope validates method and params and returns the envelope.
func NewEnvelope(method string, params map[string]any) (Envelope, error) {
	if method == "" {
		return Envelope{}, ErrEmptyMethod
	}
	if _, ok := params[reservedKey]; ok {
		return Envelope{}, ErrReservedParam
	}
	return Envelope{Method: method, Params: params}, nil
}

// MarshalJSON flattens the envelope into {"method": ..., <params>...}.
func (e Envelope) MarshalJSON() ([]byte, error) {
	body := make(map[string]any, len(e.Params)+1)
	for k, v := range e.Params {
		body[k] = v
	}
	body[reservedKey] = e.Method
	return json.Marshal(body)
}
