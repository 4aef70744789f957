// Package messaging carries events from a form page to the background host.
package messaging

import (
	"errors"
	"fmt"
)

// MessageType names an event crossing the page/host boundary.
type MessageType string

const (
	// FormOpened is sent when a form-view page is shown. It carries no payload.
	FormOpened MessageType = "FORM_OPENED"
	// FormSubmitted is sent once from a submission confirmation page.
	FormSubmitted MessageType = "FORM_SUBMITTED"
)

// ErrUnknownType is returned for a message type the host does not handle.
var ErrUnknownType = errors.New("unknown message type")

// SubmittedPayload is the body of a FORM_SUBMITTED message.
type SubmittedPayload struct {
	Title string `json:"title"`
}

// Message is the envelope exchanged over the boundary.
type Message struct {
	Type    MessageType       `json:"type"`
	Payload *SubmittedPayload `json:"payload,omitempty"`
}

// Opened builds a FORM_OPENED message.
func Opened() Message {
	return Message{Type: FormOpened}
}

// Submitted builds a FORM_SUBMITTED message for the detected title.
func Submitted(title string) Message {
	return Message{Type: FormSubmitted, Payload: &SubmittedPayload{Title: title}}
}

// Validate reports whether the message has a known type.
func (m Message) Validate() error {
	switch m.Type {
	case FormOpened, FormSubmitted:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownType, m.Type)
	}
}

// Title returns the submitted title, or "" when the payload is absent.
func (m Message) Title() string {
	if m.Payload == nil {
		return ""
	}
	return m.Payload.Title
}
