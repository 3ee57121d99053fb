package notifications

import (
	"time"
)

// Facade is the feature-facing entry point: create, replace and dismiss
// toasts without building Notification values by hand.
//
// Create one Facade per Store and share the pointer. All methods are safe on
// a nil Facade and do nothing.
type Facade struct {
	store   *Store
	channel string
}

// FacadeOption configures a Facade.
type FacadeOption func(*Facade)

// WithChannel sets the group ID used by CreateForChannel.
func WithChannel(groupID string) FacadeOption {
	return func(f *Facade) {
		if groupID != "" {
			f.channel = groupID
		}
	}
}

// NewFacade creates a facade over store. The default channel is Config.Channel.
func NewFacade(store *Store, opts ...FacadeOption) *Facade {
	f := &Facade{store: store, channel: DefaultChannel}
	if store != nil && store.Config().Channel != "" {
		f.channel = store.Config().Channel
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateOption adjusts a notification built by Facade.Create.
type CreateOption func(*createOptions)

type createOptions struct {
	id         string
	groupID    string
	replaceID  string
	autoClose  *bool
	closeDelay time.Duration
}

// WithGroup places the notification in a stack.
func WithGroup(groupID string) CreateOption {
	return func(o *createOptions) {
		o.groupID = groupID
	}
}

// WithAutoClose dismisses the notification after delay. A non-positive delay
// uses Config.DefaultAutoCloseDelay.
func WithAutoClose(delay time.Duration) CreateOption {
	return func(o *createOptions) {
		v := true
		o.autoClose = &v
		o.closeDelay = delay
	}
}

// WithPersistent keeps the notification until it is dismissed.
func WithPersistent() CreateOption {
	return func(o *createOptions) {
		v := false
		o.autoClose = &v
		o.closeDelay = 0
	}
}

// WithID sets the notification ID instead of generating one.
// A live notification with the same ID is replaced.
func WithID(id string) CreateOption {
	return func(o *createOptions) {
		o.id = id
	}
}

// WithReplace replaces the live notification with the given ID in place.
// Without a match the notification is inserted as new.
func WithReplace(id string) CreateOption {
	return func(o *createOptions) {
		o.replaceID = id
	}
}

// Create shows a notification and returns its ID. Notifications close
// automatically after Config.DefaultAutoCloseDelay unless they are
// TypeLoading, which stay until replaced or dismissed.
func (f *Facade) Create(t Type, title, message string, opts ...CreateOption) string {
	if f == nil || f.store == nil {
		return ""
	}

	o := createOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	autoClose := t != TypeLoading
	if o.autoClose != nil {
		autoClose = *o.autoClose
	}

	n := Notification{
		ID:             o.id,
		Type:           t,
		Title:          title,
		Message:        message,
		GroupID:        o.groupID,
		AutoClose:      autoClose,
		AutoCloseDelay: o.closeDelay,
	}

	var upsertOpts []UpsertOption
	if o.replaceID != "" {
		upsertOpts = append(upsertOpts, WithReplaceID(o.replaceID))
	}

	return f.store.Upsert(n, upsertOpts...).ID
}

// CreateForGroup shows a notification in the given stack.
func (f *Facade) CreateForGroup(t Type, title, message, groupID string, opts ...CreateOption) string {
	return f.Create(t, title, message, append(opts, WithGroup(groupID))...)
}

// CreateForChannel shows a notification in the facade's channel stack.
func (f *Facade) CreateForChannel(t Type, title, message string, opts ...CreateOption) string {
	if f == nil {
		return ""
	}
	return f.CreateForGroup(t, title, message, f.channel, opts...)
}

// Dismiss removes a notification. Unknown IDs are ignored.
func (f *Facade) Dismiss(id string) bool {
	if f == nil || f.store == nil {
		return false
	}
	return f.store.Dismiss(id)
}

// DismissGroup removes every member of a stack and returns how many were removed.
func (f *Facade) DismissGroup(groupID string) int {
	if f == nil || f.store == nil {
		return 0
	}
	return f.store.DismissGroup(groupID)
}

// Channel returns the group ID used by CreateForChannel.
func (f *Facade) Channel() string {
	if f == nil {
		return ""
	}
	return f.channel
}

// Store returns the underlying store.
func (f *Facade) Store() *Store {
	if f == nil {
		return nil
	}
	return f.store
}
