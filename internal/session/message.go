package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/handiism/lesson-browser/internal/model"
)

// ErrUnknownMessage is returned for a message type the session does not
// handle.
var ErrUnknownMessage = errors.New("unknown message type")

// Message types understood by Handle.
const (
	MessageOpenLesson = "openLesson"
	MessageOpenFolder = "openFolder"
	MessageGoBack     = "goBack"
)

// Message is an inbound navigation request, in the same shape the menu
// front end posts: {"type": "openFolder", "value": "Unit1"}.
type Message struct {
	Type  string `json:"type"`
	Value string `json:"value,omitempty"`
}

// OpenLesson builds an openLesson message.
func OpenLesson(key model.Key) Message {
	return Message{Type: MessageOpenLesson, Value: key.String()}
}

// OpenFolder builds an openFolder message.
func OpenFolder(name string) Message {
	return Message{Type: MessageOpenFolder, Value: name}
}

// GoBack builds a goBack message.
func GoBack() Message {
	return Message{Type: MessageGoBack}
}

// ParseMessage decodes a JSON message.
func ParseMessage(data []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return Message{}, fmt.Errorf("decode message: %w", err)
	}
	return msg, nil
}

// Handle maps a message onto the matching session operation and returns the
// view to render next.
func (s *Session) Handle(ctx context.Context, msg Message) (model.View, error) {
	switch msg.Type {
	case MessageOpenLesson:
		return s.OpenLesson(ctx, model.NormalizeKey(msg.Value))
	case MessageOpenFolder:
		return s.OpenFolder(msg.Value), nil
	case MessageGoBack:
		return s.GoBack(), nil
	default:
		return s.View(), fmt.Errorf("%w: %q", ErrUnknownMessage, msg.Type)
	}
}
