package notifications

import (
	"encoding/json"
	"time"
)

// Type is the kind of feedback a notification carries.
// The engine stores it as an opaque tag; presentation is up to the renderer.
type Type string

const (
	TypeSuccess Type = "success"
	TypeError   Type = "error"
	TypeLoading Type = "loading"
)

// Valid reports whether t is one of the known types.
func (t Type) Valid() bool {
	switch t {
	case TypeSuccess, TypeError, TypeLoading:
		return true
	}
	return false
}

// Notification is a single transient message.
//
// ID is unique among live notifications of a Store. Timestamp is assigned by
// the Store, strictly increases per Store and ranks recency inside a group.
// An empty GroupID means the notification is rendered on its own.
type Notification struct {
	ID             string
	Type           Type
	Title          string
	Message        string
	GroupID        string
	Timestamp      time.Time
	AutoClose      bool
	AutoCloseDelay time.Duration
}

// Grouped reports whether the notification belongs to a group.
func (n Notification) Grouped() bool {
	return n.GroupID != ""
}

type notificationJSON struct {
	ID             string    `json:"id"`
	Type           Type      `json:"type"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	GroupID        string    `json:"groupId,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
	AutoClose      bool      `json:"autoClose"`
	AutoCloseDelay int64     `json:"autoCloseDelay"`
}

// MarshalJSON encodes AutoCloseDelay in milliseconds, the unit renderers schedule with.
func (n Notification) MarshalJSON() ([]byte, error) {
	return json.Marshal(notificationJSON{
		ID:             n.ID,
		Type:           n.Type,
		Title:          n.Title,
		Message:        n.Message,
		GroupID:        n.GroupID,
		Timestamp:      n.Timestamp,
		AutoClose:      n.AutoClose,
		AutoCloseDelay: n.AutoCloseDelay.Milliseconds(),
	})
}

func (n *Notification) UnmarshalJSON(data []byte) error {
	var raw notificationJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*n = Notification{
		ID:             raw.ID,
		Type:           raw.Type,
		Title:          raw.Title,
		Message:        raw.Message,
		GroupID:        raw.GroupID,
		Timestamp:      raw.Timestamp,
		AutoClose:      raw.AutoClose,
		AutoCloseDelay: time.Duration(raw.AutoCloseDelay) * time.Millisecond,
	}
	return nil
}
