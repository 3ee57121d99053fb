package notifications

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/toastkit/pkg/logger"
	"github.com/dmitrymomot/toastkit/pkg/statemachine"
)

// DismissReason says why notifications left the store. ReasonSuperseded
// marks a notification dropped because a replacement took over its ID.
type DismissReason string

const (
	ReasonManual     DismissReason = "manual"
	ReasonExpired    DismissReason = "expired"
	ReasonGroup      DismissReason = "group"
	ReasonEvicted    DismissReason = "evicted"
	ReasonSuperseded DismissReason = "superseded"
)

type entry struct {
	Notification
	// token identifies this exact notification instance for its auto-dismiss timer.
	token uint64
}

// Store is the single owner of the live notifications. Callers issue commands
// and read copies; they never mutate stored notifications directly.
//
// Every mutation runs under one lock. When it completes the store derives a
// fresh View and hands it to the configured Deliverer before releasing the
// lock, so observers see complete mutations in order. Deliverers must not
// block and must not call back into the store.
type Store struct {
	cfg       Config
	clock     Clock
	scheduler *Scheduler
	deliverer Deliverer
	metrics   Metrics
	logger    *slog.Logger
	newID     func() string

	mu      sync.Mutex
	entries []entry
	groups  map[string]*statemachine.Machine
	lastTS  time.Time
	tokens  uint64
	version uint64
	closed  bool
}

// NewStore creates an empty store and delivers its initial View.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		cfg:       DefaultConfig(),
		clock:     SystemClock{},
		deliverer: &NoOpDeliverer{},
		metrics:   NopMetrics{},
		logger:    slog.Default(),
		newID:     uuid.NewString,
		groups:    make(map[string]*statemachine.Machine),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.logger = s.logger.With(logger.Component("notifications"))
	s.scheduler = NewScheduler(s.clock, s.expire)

	s.mu.Lock()
	s.deliverLocked()
	s.mu.Unlock()

	return s
}

// Config returns the store configuration.
func (s *Store) Config() Config {
	return s.cfg
}

// Upsert inserts n or, with WithReplaceID, replaces a live notification in
// place. It returns the notification as stored, with ID and Timestamp set.
//
// A replacement keeps the replaced notification's position and Timestamp, so
// it does not count as a newer insertion. A notification whose ID is already
// live replaces that notification. Grouped notifications are capped to
// Config.MaxGroupMembers, evicting the oldest members.
func (s *Store) Upsert(n Notification, opts ...UpsertOption) Notification {
	o := upsertOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return n
	}

	if n.ID == "" {
		n.ID = s.newID()
	}
	if n.AutoClose && n.AutoCloseDelay <= 0 {
		n.AutoCloseDelay = s.cfg.DefaultAutoCloseDelay
	}

	target := -1
	if o.replaceID != "" {
		target = s.indexLocked(o.replaceID)
	}
	if target < 0 {
		target = s.indexLocked(n.ID)
	}

	replaced := target >= 0
	if replaced {
		old := s.entries[target]
		s.scheduler.Cancel(old.ID)
		n.Timestamp = old.Timestamp
		left := []string{old.GroupID}

		// Keep IDs unique: another live notification may already use the new ID.
		if old.ID != n.ID {
			if j := s.indexLocked(n.ID); j >= 0 {
				s.scheduler.Cancel(n.ID)
				left = append(left, s.entries[j].GroupID)
				s.dropLocked(j, ReasonSuperseded)
				if j < target {
					target--
				}
			}
		}
		s.entries[target] = entry{Notification: n, token: s.nextTokenLocked()}

		for _, groupID := range left {
			if groupID != n.GroupID {
				s.promoteLoneMemberLocked(groupID)
			}
		}
	} else {
		n.Timestamp = s.nextTimestampLocked()
		s.entries = append(s.entries, entry{Notification: n, token: s.nextTokenLocked()})
	}

	evicted := s.capGroupLocked(n.GroupID)
	for _, e := range evicted {
		s.scheduler.Cancel(e.ID)
		s.logger.LogAttrs(context.Background(), slog.LevelDebug, "notification evicted",
			logger.NotificationID(e.ID),
			logger.GroupID(e.GroupID),
			logger.Reason(string(ReasonEvicted)),
		)
	}
	if len(evicted) > 0 {
		s.metrics.NotificationsDismissed(ReasonEvicted, len(evicted))
	}

	if i := s.indexLocked(n.ID); i >= 0 && n.AutoClose {
		s.scheduler.Schedule(n.ID, s.entries[i].token, n.AutoCloseDelay)
	}

	msg := "notification created"
	if replaced {
		msg = "notification replaced"
		s.metrics.NotificationReplaced(n.Type)
	} else {
		s.metrics.NotificationCreated(n.Type)
	}
	s.logger.LogAttrs(context.Background(), slog.LevelDebug, msg,
		logger.NotificationID(n.ID),
		logger.GroupID(n.GroupID),
		logger.NotificationType(string(n.Type)),
	)

	s.syncGroupsLocked()
	s.publishLocked()

	return n
}

// Dismiss removes the notification with the given ID and reports whether it
// was live. Unknown IDs are a no-op.
//
// If the notification's group is left with a single member, that member is
// promoted to a standalone notification: a stack implies at least two items.
func (s *Store) Dismiss(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}
	i := s.indexLocked(id)
	if i < 0 {
		return false
	}

	s.scheduler.Cancel(id)
	s.removeLocked(i, ReasonManual)
	return true
}

// DismissGroup removes every member of the group and forgets its expansion
// state. It returns how many notifications were removed.
func (s *Store) DismissGroup(groupID string) int {
	if groupID == "" {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0
	}

	removed := 0
	s.entries = slices.DeleteFunc(s.entries, func(e entry) bool {
		if e.GroupID != groupID {
			return false
		}
		s.scheduler.Cancel(e.ID)
		removed++
		return true
	})
	if removed == 0 {
		return 0
	}

	s.metrics.NotificationsDismissed(ReasonGroup, removed)
	s.logger.LogAttrs(context.Background(), slog.LevelDebug, "notification group dismissed",
		logger.GroupID(groupID),
		logger.Count(removed),
	)

	s.syncGroupsLocked()
	s.publishLocked()
	return removed
}

// Expand latches the group open. It only succeeds while the group has at
// least two members and never collapses an expanded group. It returns the
// resulting expansion flag.
func (s *Store) Expand(groupID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.groups[groupID]
	if !ok || s.closed {
		return false
	}

	err := m.Fire(context.Background(), EventExpand, s.countLocked(groupID))
	if err == nil {
		s.publishLocked()
	}
	return currentGroupState(m) == GroupExpanded
}

// GroupState returns the lifecycle state of a group.
func (s *Store) GroupState(groupID string) GroupState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m, ok := s.groups[groupID]; ok {
		return currentGroupState(m)
	}
	return GroupEmpty
}

// Get returns a copy of the live notification with the given ID.
func (s *Store) Get(id string) (Notification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexLocked(id); i >= 0 {
		return s.entries[i].Notification, true
	}
	return Notification{}, false
}

// Notifications returns a copy of all live notifications in collection order.
func (s *Store) Notifications() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notificationsLocked()
}

// Len returns the number of live notifications.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Version returns the number of completed mutations.
func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Partition derives the ungrouped notifications and groups from current state.
func (s *Store) Partition() Partition {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Derive(s.notificationsLocked(), s.expandedLocked())
}

// View derives the render view model from current state.
func (s *Store) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// Controller returns a stack controller bound to this store for a live group.
func (s *Store) Controller(groupID string) (*StackController, bool) {
	g, ok := s.Partition().Group(groupID)
	if !ok {
		return nil, false
	}
	return NewStackController(g, s.cfg, s), true
}

// Controllers returns one stack controller per live group, in view order.
func (s *Store) Controllers() []*StackController {
	p := s.Partition()
	out := make([]*StackController, 0, len(p.Groups))
	for _, g := range p.Groups {
		out = append(out, NewStackController(g, s.cfg, s))
	}
	return out
}

// PendingTimers returns the number of auto-dismiss timers not yet fired.
func (s *Store) PendingTimers() int {
	return s.scheduler.Pending()
}

// Close cancels every pending timer and closes the deliverer if it is an
// io.Closer. Mutations after Close are no-ops.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	cancelled := s.scheduler.CancelAll()
	s.mu.Unlock()

	s.logger.LogAttrs(context.Background(), slog.LevelDebug, "notification store closed",
		logger.Count(cancelled),
	)

	if c, ok := s.deliverer.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Closed reports whether Close has been called.
func (s *Store) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// expire is the scheduler callback. It only dismisses the exact notification
// instance the timer was started for.
func (s *Store) expire(id string, token uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	i := s.indexLocked(id)
	if i < 0 || s.entries[i].token != token {
		return
	}
	s.removeLocked(i, ReasonExpired)
}

// removeLocked deletes entries[i], promotes a lone remaining group member and publishes.
func (s *Store) removeLocked(i int, reason DismissReason) {
	groupID := s.entries[i].GroupID
	s.dropLocked(i, reason)
	s.promoteLoneMemberLocked(groupID)

	s.syncGroupsLocked()
	s.publishLocked()
}

// dropLocked deletes entries[i] and records the dismissal. Callers settle
// group membership afterwards.
func (s *Store) dropLocked(i int, reason DismissReason) {
	removed := s.entries[i]
	s.entries = slices.Delete(s.entries, i, i+1)

	s.metrics.NotificationsDismissed(reason, 1)
	s.logger.LogAttrs(context.Background(), slog.LevelDebug, "notification dismissed",
		logger.NotificationID(removed.ID),
		logger.GroupID(removed.GroupID),
		logger.Reason(string(reason)),
	)
}

// promoteLoneMemberLocked turns the only remaining member of a group into a
// standalone notification: a stack implies at least two items.
func (s *Store) promoteLoneMemberLocked(groupID string) {
	if groupID == "" || s.countLocked(groupID) != 1 {
		return
	}

	j := slices.IndexFunc(s.entries, func(e entry) bool { return e.GroupID == groupID })
	s.entries[j].GroupID = ""
	s.logger.LogAttrs(context.Background(), slog.LevelDebug, "notification promoted from group",
		logger.NotificationID(s.entries[j].ID),
		logger.GroupID(groupID),
	)
}

// capGroupLocked keeps the newest MaxGroupMembers of a group and returns the evicted rest.
func (s *Store) capGroupLocked(groupID string) []Notification {
	if groupID == "" || s.countLocked(groupID) <= s.cfg.MaxGroupMembers {
		return nil
	}

	members := make([]Notification, 0, s.cfg.MaxGroupMembers+1)
	for _, e := range s.entries {
		if e.GroupID == groupID {
			members = append(members, e.Notification)
		}
	}
	sortNewestFirst(members)
	evicted := members[s.cfg.MaxGroupMembers:]

	drop := make(map[string]struct{}, len(evicted))
	for _, n := range evicted {
		drop[n.ID] = struct{}{}
	}
	s.entries = slices.DeleteFunc(s.entries, func(e entry) bool {
		_, ok := drop[e.ID]
		return ok
	})
	return evicted
}

// syncGroupsLocked walks every group through its lifecycle after a mutation:
// new groups start collapsed and emptied groups are forgotten, so a group
// recreated under the same ID starts collapsed again.
func (s *Store) syncGroupsLocked() {
	counts := make(map[string]int)
	for _, e := range s.entries {
		if e.Grouped() {
			counts[e.GroupID]++
		}
	}

	ctx := context.Background()
	for id, m := range s.groups {
		if counts[id] > 0 {
			continue
		}
		if err := m.Fire(ctx, EventEmptied, 0); err == nil {
			delete(s.groups, id)
		}
	}
	for id, n := range counts {
		if _, ok := s.groups[id]; ok {
			continue
		}
		m := newGroupMachine(GroupEmpty, s.logGroupChange(id))
		if err := m.Fire(ctx, EventMemberAdded, n); err == nil {
			s.groups[id] = m
		}
	}
}

// logGroupChange returns the transition action of a group machine.
func (s *Store) logGroupChange(groupID string) statemachine.Action {
	return func(ctx context.Context, from, to statemachine.State, event statemachine.Event, _ any) error {
		s.logger.LogAttrs(ctx, slog.LevelDebug, "notification group "+to.Name(),
			logger.GroupID(groupID),
			logger.Event(event.Name()),
			slog.String("from", from.Name()),
		)
		return nil
	}
}

// publishLocked records a completed mutation and delivers the resulting View.
func (s *Store) publishLocked() {
	s.version++
	s.deliverLocked()
}

func (s *Store) deliverLocked() {
	view := s.viewLocked()
	s.metrics.SetLive(len(s.entries))

	if err := s.deliverer.Deliver(context.Background(), view); err != nil {
		s.logger.LogAttrs(context.Background(), slog.LevelWarn, "failed to deliver notifications view",
			logger.Version(view.Version),
			logger.Error(err),
		)
	}
}

func (s *Store) viewLocked() View {
	v := BuildView(Derive(s.notificationsLocked(), s.expandedLocked()), s.cfg)
	v.Version = s.version
	return v
}

func (s *Store) notificationsLocked() []Notification {
	out := make([]Notification, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Notification
	}
	return out
}

func (s *Store) expandedLocked() map[string]bool {
	out := make(map[string]bool, len(s.groups))
	for id, m := range s.groups {
		out[id] = currentGroupState(m) == GroupExpanded
	}
	return out
}

func (s *Store) indexLocked(id string) int {
	return slices.IndexFunc(s.entries, func(e entry) bool { return e.ID == id })
}

func (s *Store) countLocked(groupID string) int {
	n := 0
	for _, e := range s.entries {
		if e.GroupID == groupID {
			n++
		}
	}
	return n
}

// nextTimestampLocked returns the clock time, bumped past the last issued
// timestamp when the clock has not advanced.
func (s *Store) nextTimestampLocked() time.Time {
	now := s.clock.Now()
	if !now.After(s.lastTS) {
		now = s.lastTS.Add(time.Nanosecond)
	}
	s.lastTS = now
	return now
}

func (s *Store) nextTokenLocked() uint64 {
	s.tokens++
	return s.tokens
}
