// Package control implements the daemon's local control channel: a
// length-prefixed, JSON-framed protocol over a Unix domain socket that lets
// the CLI query status and switch profiles without touching the core.
package control

import (
	"github.com/google/uuid"
)

// MessageType tags a Request or Response payload.
type MessageType string

const (
	TypeStatus          MessageType = "status"
	TypeStatusResponse  MessageType = "status_response"
	TypeActivate        MessageType = "activate"
	TypeActivateResponse MessageType = "activate_response"
	TypeListDevices     MessageType = "list_devices"
	TypeListResponse    MessageType = "list_response"
	TypeError           MessageType = "error"
)

// Message is the single envelope every control-channel frame uses.
// RequestID correlates a response to its request; the server echoes it
// back verbatim.
type Message struct {
	RequestID string      `json:"request_id"`
	Type      MessageType `json:"type"`
	Payload   interface{} `json:"payload,omitempty"`
}

// DeviceStatus describes one running device for a status response.
type DeviceStatus struct {
	Identifier     string `json:"identifier"`
	Profile        string `json:"profile"`
	PendingTapHold int    `json:"pending_tap_hold"`
}

// StatusPayload is TypeStatusResponse's payload.
type StatusPayload struct {
	Devices []DeviceStatus `json:"devices"`
}

// ActivatePayload is TypeActivate's request payload.
type ActivatePayload struct {
	Identifier string `json:"identifier"`
	Profile    string `json:"profile"`
}

// ListDevicesPayload is TypeListResponse's payload.
type ListDevicesPayload struct {
	Identifiers []string `json:"identifiers"`
}

// ErrorPayload is TypeError's payload.
type ErrorPayload struct {
	Message string `json:"message"`
}

// NewRequest builds a Message with a fresh correlation ID.
func NewRequest(t MessageType, payload interface{}) Message {
	return Message{RequestID: uuid.NewString(), Type: t, Payload: payload}
}

// NewResponse builds a Message replying to req with the given type/payload.
func NewResponse(req Message, t MessageType, payload interface{}) Message {
	return Message{RequestID: req.RequestID, Type: t, Payload: payload}
}

// NewErrorResponse builds an error reply to req.
func NewErrorResponse(req Message, msg string) Message {
	return NewResponse(req, TypeError, ErrorPayload{Message: msg})
}
