// Package scenario replays scripted toast interactions against a store on a
// manual clock, producing the same views a renderer would observe.
package scenario

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/toastkit/pkg/logger"
	"github.com/dmitrymomot/toastkit/pkg/notifications"
)

var (
	ErrDecode      = errors.New("failed to decode scenario")
	ErrInvalidStep = errors.New("invalid scenario step")
)

// Scenario is a sequence of steps read from YAML:
//
//	start: 2025-01-01T09:00:00Z
//	steps:
//	  - create: {id: save, type: loading, title: Saving}
//	  - wait: 800ms
//	  - create: {type: success, title: Saved, replace: save}
//	  - snapshot: after save
type Scenario struct {
	Start time.Time `yaml:"start"`
	Steps []Step    `yaml:"steps"`
}

// Step holds exactly one action.
type Step struct {
	Create       *Create       `yaml:"create,omitempty"`
	Dismiss      string        `yaml:"dismiss,omitempty"`
	DismissGroup string        `yaml:"dismissGroup,omitempty"`
	Toggle       string        `yaml:"toggle,omitempty"`
	Wait         time.Duration `yaml:"wait,omitempty"`
	Snapshot     string        `yaml:"snapshot,omitempty"`
}

// Create describes a Facade.Create call.
type Create struct {
	ID         string             `yaml:"id"`
	Type       notifications.Type `yaml:"type"`
	Title      string             `yaml:"title"`
	Message    string             `yaml:"message"`
	Group      string             `yaml:"group"`
	Channel    bool               `yaml:"channel"`
	Replace    string             `yaml:"replace"`
	AutoClose  time.Duration      `yaml:"autoClose"`
	Persistent bool               `yaml:"persistent"`
}

// Snapshot is a labelled view captured during a replay.
type Snapshot struct {
	Label string             `json:"label"`
	At    time.Time          `json:"at"`
	View  notifications.View `json:"view"`
}

// Result is the outcome of a replay.
type Result struct {
	Snapshots []Snapshot         `json:"snapshots"`
	Final     notifications.View `json:"final"`
	// Created maps step index to the ID returned by create steps.
	Created map[int]string `json:"created"`
}

// Decode reads a scenario from YAML. Unknown keys are rejected.
func Decode(r io.Reader) (Scenario, error) {
	var s Scenario
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return Scenario{}, errors.Join(ErrDecode, err)
	}
	if err := s.Validate(); err != nil {
		return Scenario{}, err
	}
	return s, nil
}

// Validate checks that every step carries exactly one valid action.
func (s Scenario) Validate() error {
	var errs []error
	for i, step := range s.Steps {
		if err := step.validate(); err != nil {
			errs = append(errs, fmt.Errorf("step %d: %w", i, err))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(append([]error{ErrInvalidStep}, errs...)...)
}

func (s Step) validate() error {
	actions := 0
	for _, set := range []bool{
		s.Create != nil,
		s.Dismiss != "",
		s.DismissGroup != "",
		s.Toggle != "",
		s.Wait != 0,
		s.Snapshot != "",
	} {
		if set {
			actions++
		}
	}
	switch {
	case actions != 1:
		return fmt.Errorf("want exactly one action, got %d", actions)
	case s.Wait < 0:
		return fmt.Errorf("negative wait %s", s.Wait)
	case s.Create != nil && !s.Create.Type.Valid():
		return fmt.Errorf("unknown notification type %q", s.Create.Type)
	case s.Create != nil && s.Create.Persistent && s.Create.AutoClose > 0:
		return errors.New("create cannot be both persistent and auto-closing")
	}
	return nil
}

// Option configures a replay.
type Option func(*runner)

// WithConfig sets the engine configuration used for the replay.
func WithConfig(cfg notifications.Config) Option {
	return func(r *runner) { r.cfg = cfg }
}

// WithLogger sets the logger passed to the replay store.
func WithLogger(l *slog.Logger) Option {
	return func(r *runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMetrics records replay activity.
func WithMetrics(m notifications.Metrics) Option {
	return func(r *runner) { r.metrics = m }
}

type runner struct {
	cfg     notifications.Config
	logger  *slog.Logger
	metrics notifications.Metrics
}

// Run replays s on a fresh store. Auto-dismiss timers fire as wait steps move
// the manual clock forward.
func Run(s Scenario, opts ...Option) (Result, error) {
	if err := s.Validate(); err != nil {
		return Result{}, err
	}

	r := &runner{
		cfg:     notifications.DefaultConfig(),
		logger:  slog.Default(),
		metrics: notifications.NopMetrics{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if err := r.cfg.Validate(); err != nil {
		return Result{}, err
	}

	start := s.Start
	if start.IsZero() {
		start = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	clock := notifications.NewManualClock(start)
	store := notifications.NewStore(
		notifications.WithConfig(r.cfg),
		notifications.WithClock(clock),
		notifications.WithMetrics(r.metrics),
		notifications.WithLogger(r.logger),
	)
	defer store.Close()

	toasts := notifications.NewFacade(store)
	res := Result{
		Snapshots: []Snapshot{},
		Created:   make(map[int]string),
	}

	for i, step := range s.Steps {
		switch {
		case step.Create != nil:
			res.Created[i] = create(toasts, step.Create)
		case step.Dismiss != "":
			toasts.Dismiss(step.Dismiss)
		case step.DismissGroup != "":
			toasts.DismissGroup(step.DismissGroup)
		case step.Toggle != "":
			if c, ok := store.Controller(step.Toggle); ok {
				c.Toggle()
			}
		case step.Wait > 0:
			clock.Advance(step.Wait)
		case step.Snapshot != "":
			res.Snapshots = append(res.Snapshots, Snapshot{
				Label: step.Snapshot,
				At:    clock.Now(),
				View:  store.View(),
			})
		}
	}

	res.Final = store.View()
	r.logger.LogAttrs(context.Background(), slog.LevelDebug, "scenario replayed",
		logger.Count(len(s.Steps)),
		logger.Version(res.Final.Version),
	)
	return res, nil
}

func create(toasts *notifications.Facade, c *Create) string {
	var opts []notifications.CreateOption
	if c.ID != "" {
		opts = append(opts, notifications.WithID(c.ID))
	}
	if c.Replace != "" {
		opts = append(opts, notifications.WithReplace(c.Replace))
	}
	if c.Group != "" {
		opts = append(opts, notifications.WithGroup(c.Group))
	}
	switch {
	case c.Persistent:
		opts = append(opts, notifications.WithPersistent())
	case c.AutoClose > 0:
		opts = append(opts, notifications.WithAutoClose(c.AutoClose))
	}

	if c.Channel {
		return toasts.CreateForChannel(c.Type, c.Title, c.Message, opts...)
	}
	return toasts.Create(c.Type, c.Title, c.Message, opts...)
}
