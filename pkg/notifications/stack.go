package notifications

import (
	"context"
	"fmt"
	"slices"
)

// SlotStyle holds the positional style coordinates of one visible slot.
// Units are CSS pixels for TranslateY; Opacity and Scale are factors.
type SlotStyle struct {
	ZIndex     int     `json:"zIndex"`
	Opacity    float64 `json:"opacity"`
	TranslateY float64 `json:"translateY"`
	Scale      float64 `json:"scale"`
	Hidden     bool    `json:"hidden,omitempty"`
}

// Transform renders the style as a CSS transform value.
func (s SlotStyle) Transform() string {
	return fmt.Sprintf("translateY(%gpx) scale(%g)", s.TranslateY, s.Scale)
}

var hiddenSlot = SlotStyle{Hidden: true}

// GroupCommands are the store operations a StackController forwards to.
type GroupCommands interface {
	Expand(groupID string) bool
	Dismiss(id string) bool
	DismissGroup(groupID string) int
}

// StackController presents one live group as a layered stack: it selects the
// visible window, latches expansion and computes per-slot styles.
//
// A controller works on the group snapshot it was created from. Obtain a new
// one from Store.Controller after the store changes.
type StackController struct {
	group    Group
	cfg      Config
	commands GroupCommands
}

// NewStackController binds a group snapshot to commands. commands may be nil
// for pure style computation; Toggle then only changes the local snapshot and
// Close/CloseOne do nothing.
func NewStackController(g Group, cfg Config, commands GroupCommands) *StackController {
	return &StackController{group: g, cfg: cfg, commands: commands}
}

// ID returns the group ID.
func (c *StackController) ID() string {
	return c.group.ID
}

// Members returns all retained members, newest first.
func (c *StackController) Members() []Notification {
	return slices.Clone(c.group.Members)
}

// Visible returns the members inside the rendering window, newest first.
func (c *StackController) Visible() []Notification {
	n := min(len(c.group.Members), c.cfg.MaxVisibleStack)
	return slices.Clone(c.group.Members[:n])
}

// OverflowCount is the number of retained members outside the rendering window.
func (c *StackController) OverflowCount() int {
	return max(len(c.group.Members)-c.cfg.MaxVisibleStack, 0)
}

// IsExpanded reports whether the stack is fanned out.
func (c *StackController) IsExpanded() bool {
	return c.group.IsExpanded
}

// State returns the group lifecycle state of the snapshot.
func (c *StackController) State() GroupState {
	return groupStateOf(len(c.group.Members), c.group.IsExpanded)
}

// Toggle expands a collapsed stack of two or more members. It never collapses:
// calling it on an expanded stack is a no-op. It returns the expansion flag.
func (c *StackController) Toggle() bool {
	if c.group.IsExpanded {
		return true
	}
	if !newGroupMachine(c.State(), nil).CanFire(context.Background(), EventExpand, len(c.group.Members)) {
		return false
	}

	if c.commands == nil {
		c.group.IsExpanded = true
	} else {
		c.group.IsExpanded = c.commands.Expand(c.group.ID)
	}
	return c.group.IsExpanded
}

// StackedStyle returns the collapsed style for visible slot index: deeper
// slots sit lower in z-order, fade toward MinOpacity, shift down and shrink.
func (c *StackController) StackedStyle(index int) SlotStyle {
	if !c.inWindow(index) {
		return hiddenSlot
	}
	i := float64(index)
	return SlotStyle{
		ZIndex:     c.zIndex(index),
		Opacity:    max(c.cfg.MinOpacity, 1-i*c.cfg.OpacityStep),
		TranslateY: i * c.cfg.StackOffset,
		Scale:      max(c.cfg.MinScale, 1-i*c.cfg.StackScaleStep),
	}
}

// ExpandedStyle returns the list-layout style for visible slot index.
func (c *StackController) ExpandedStyle(index int) SlotStyle {
	if !c.inWindow(index) {
		return hiddenSlot
	}
	return SlotStyle{
		ZIndex:     c.zIndex(index),
		Opacity:    c.cfg.ExpandedOpacity,
		TranslateY: float64(index) * c.cfg.RowHeight,
		Scale:      1,
	}
}

// StyleFor picks the stacked or expanded style depending on IsExpanded.
func (c *StackController) StyleFor(index int) SlotStyle {
	if c.group.IsExpanded {
		return c.ExpandedStyle(index)
	}
	return c.StackedStyle(index)
}

// Styles returns StyleFor for every visible slot.
func (c *StackController) Styles() []SlotStyle {
	n := min(len(c.group.Members), c.cfg.MaxVisibleStack)
	out := make([]SlotStyle, n)
	for i := range out {
		out[i] = c.StyleFor(i)
	}
	return out
}

// Close dismisses the whole group and returns how many notifications went away.
func (c *StackController) Close() int {
	if c.commands == nil {
		return 0
	}
	return c.commands.DismissGroup(c.group.ID)
}

// CloseOne dismisses a single member. IDs outside this group are ignored.
func (c *StackController) CloseOne(id string) bool {
	if c.commands == nil {
		return false
	}
	if !slices.ContainsFunc(c.group.Members, func(n Notification) bool { return n.ID == id }) {
		return false
	}
	return c.commands.Dismiss(id)
}

func (c *StackController) inWindow(index int) bool {
	return index >= 0 && index < min(len(c.group.Members), c.cfg.MaxVisibleStack)
}

func (c *StackController) zIndex(index int) int {
	return c.cfg.MaxVisibleStack - index
}
