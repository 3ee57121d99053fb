package notifications

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockGroupCommands struct {
	mock.Mock
}

func (m *MockGroupCommands) Expand(groupID string) bool {
	args := m.Called(groupID)
	return args.Bool(0)
}

func (m *MockGroupCommands) Dismiss(id string) bool {
	args := m.Called(id)
	return args.Bool(0)
}

func (m *MockGroupCommands) DismissGroup(groupID string) int {
	args := m.Called(groupID)
	return args.Int(0)
}

func testGroup(id string, members int) Group {
	g := Group{ID: id}
	for i := members; i > 0; i-- {
		g.Members = append(g.Members, Notification{
			ID:        fmt.Sprintf("%s-%d", id, i),
			GroupID:   id,
			Timestamp: at(i),
		})
	}
	return g
}

func TestStackController_Window(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		members      int
		wantVisible  int
		wantOverflow int
	}{
		{"single", 1, 1, 0},
		{"exactly the window", 5, 5, 0},
		{"full group", 7, 5, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := NewStackController(testGroup("g", tt.members), DefaultConfig(), nil)

			assert.Len(t, c.Visible(), tt.wantVisible)
			assert.Equal(t, tt.wantOverflow, c.OverflowCount())
			assert.Len(t, c.Members(), tt.members)
			assert.Len(t, c.Styles(), tt.wantVisible)
		})
	}
}

func TestStackController_StackedStyle(t *testing.T) {
	t.Parallel()

	t.Run("layers recede with depth", func(t *testing.T) {
		t.Parallel()
		c := NewStackController(testGroup("g", 7), DefaultConfig(), nil)

		for i := 1; i < DefaultMaxVisibleStack; i++ {
			prev, cur := c.StackedStyle(i-1), c.StackedStyle(i)
			assert.Greater(t, prev.ZIndex, cur.ZIndex, "z-index at %d", i)
			assert.GreaterOrEqual(t, prev.Opacity, cur.Opacity, "opacity at %d", i)
			assert.Less(t, prev.TranslateY, cur.TranslateY, "offset at %d", i)
			assert.GreaterOrEqual(t, prev.Scale, cur.Scale, "scale at %d", i)
		}
	})

	t.Run("front slot", func(t *testing.T) {
		t.Parallel()
		c := NewStackController(testGroup("g", 3), DefaultConfig(), nil)

		s := c.StackedStyle(0)
		assert.Equal(t, DefaultMaxVisibleStack, s.ZIndex)
		assert.InDelta(t, 1.0, s.Opacity, 1e-9)
		assert.InDelta(t, 0.0, s.TranslateY, 1e-9)
		assert.InDelta(t, 1.0, s.Scale, 1e-9)
		assert.False(t, s.Hidden)
	})

	t.Run("second slot", func(t *testing.T) {
		t.Parallel()
		c := NewStackController(testGroup("g", 3), DefaultConfig(), nil)

		s := c.StackedStyle(1)
		assert.Equal(t, DefaultMaxVisibleStack-1, s.ZIndex)
		assert.InDelta(t, 0.85, s.Opacity, 1e-9)
		assert.InDelta(t, 8.0, s.TranslateY, 1e-9)
		assert.InDelta(t, 0.96, s.Scale, 1e-9)
	})

	t.Run("clamps opacity and scale", func(t *testing.T) {
		t.Parallel()
		cfg := DefaultConfig()
		cfg.OpacityStep = 0.5
		cfg.StackScaleStep = 0.5
		c := NewStackController(testGroup("g", 5), cfg, nil)

		s := c.StackedStyle(3)
		assert.InDelta(t, cfg.MinOpacity, s.Opacity, 1e-9)
		assert.InDelta(t, cfg.MinScale, s.Scale, 1e-9)
	})

	t.Run("outside the window is hidden", func(t *testing.T) {
		t.Parallel()
		c := NewStackController(testGroup("g", 7), DefaultConfig(), nil)

		for _, i := range []int{-1, 5, 6} {
			s := c.StackedStyle(i)
			assert.True(t, s.Hidden, "index %d", i)
			assert.Zero(t, s.Opacity)
		}
	})
}

func TestStackController_ExpandedStyle(t *testing.T) {
	t.Parallel()
	c := NewStackController(testGroup("g", 3), DefaultConfig(), nil)

	for i := range 3 {
		s := c.ExpandedStyle(i)
		assert.InDelta(t, float64(i)*DefaultRowHeight, s.TranslateY, 1e-9)
		assert.InDelta(t, 1.0, s.Opacity, 1e-9)
		assert.InDelta(t, 1.0, s.Scale, 1e-9)
		assert.Equal(t, DefaultMaxVisibleStack-i, s.ZIndex)
	}
	assert.True(t, c.ExpandedStyle(3).Hidden)
}

func TestStackController_Toggle(t *testing.T) {
	t.Parallel()

	t.Run("single member never expands", func(t *testing.T) {
		t.Parallel()
		commands := new(MockGroupCommands)
		c := NewStackController(testGroup("g", 1), DefaultConfig(), commands)

		assert.False(t, c.Toggle())
		assert.False(t, c.Toggle())
		assert.Equal(t, GroupCollapsed, c.State())
		commands.AssertNotCalled(t, "Expand", mock.Anything)
	})

	t.Run("latches through the store", func(t *testing.T) {
		t.Parallel()
		commands := new(MockGroupCommands)
		commands.On("Expand", "g").Return(true).Once()
		c := NewStackController(testGroup("g", 2), DefaultConfig(), commands)

		assert.True(t, c.Toggle())
		assert.True(t, c.Toggle())
		assert.Equal(t, GroupExpanded, c.State())
		commands.AssertExpectations(t)
	})

	t.Run("store rejection keeps it collapsed", func(t *testing.T) {
		t.Parallel()
		commands := new(MockGroupCommands)
		commands.On("Expand", "g").Return(false)
		c := NewStackController(testGroup("g", 2), DefaultConfig(), commands)

		assert.False(t, c.Toggle())
		assert.False(t, c.IsExpanded())
	})

	t.Run("without commands", func(t *testing.T) {
		t.Parallel()
		c := NewStackController(testGroup("g", 2), DefaultConfig(), nil)

		assert.True(t, c.Toggle())
		assert.Equal(t, c.ExpandedStyle(1), c.StyleFor(1))
	})
}

func TestStackController_Close(t *testing.T) {
	t.Parallel()

	commands := new(MockGroupCommands)
	commands.On("Dismiss", "g-1").Return(true)
	commands.On("DismissGroup", "g").Return(2)
	c := NewStackController(testGroup("g", 2), DefaultConfig(), commands)

	assert.False(t, c.CloseOne("other-1"))
	assert.True(t, c.CloseOne("g-1"))
	assert.Equal(t, 2, c.Close())
	commands.AssertExpectations(t)
	commands.AssertNotCalled(t, "Dismiss", "other-1")

	detached := NewStackController(testGroup("g", 2), DefaultConfig(), nil)
	assert.Equal(t, 0, detached.Close())
	assert.False(t, detached.CloseOne("g-1"))
}

func TestStackController_WithStore(t *testing.T) {
	t.Parallel()
	store, _, _ := newTestStore(t)

	first := store.Upsert(Notification{GroupID: "cart"})
	store.Upsert(Notification{GroupID: "cart"})
	store.Upsert(Notification{GroupID: "cart"})

	c, ok := store.Controller("cart")
	require.True(t, ok)

	assert.True(t, c.CloseOne(first.ID))
	assert.Equal(t, 2, store.Len())
	assert.Equal(t, 2, c.Close())
	assert.Equal(t, 0, store.Len())
}

func TestSlotStyle_Transform(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "translateY(8px) scale(0.96)", SlotStyle{TranslateY: 8, Scale: 0.96}.Transform())
}
