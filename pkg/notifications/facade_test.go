package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFacade_Create(t *testing.T) {
	t.Parallel()

	t.Run("auto closes by default", func(t *testing.T) {
		t.Parallel()
		store, clock, _ := newTestStore(t)
		toasts := NewFacade(store)

		id := toasts.Create(TypeSuccess, "Saved", "Profile updated")

		n, ok := store.Get(id)
		require.True(t, ok)
		assert.True(t, n.AutoClose)
		assert.Equal(t, DefaultAutoCloseDelay, n.AutoCloseDelay)
		assert.Equal(t, "Saved", n.Title)
		assert.Equal(t, "Profile updated", n.Message)

		clock.Advance(DefaultAutoCloseDelay)
		assert.Equal(t, 0, store.Len())
	})

	t.Run("loading persists", func(t *testing.T) {
		t.Parallel()
		store, clock, _ := newTestStore(t)
		toasts := NewFacade(store)

		id := toasts.Create(TypeLoading, "Saving", "")
		clock.Advance(time.Hour)

		_, ok := store.Get(id)
		assert.True(t, ok)
	})

	t.Run("explicit auto close on loading", func(t *testing.T) {
		t.Parallel()
		store, clock, _ := newTestStore(t)
		toasts := NewFacade(store)

		toasts.Create(TypeLoading, "Saving", "", WithAutoClose(time.Second))
		clock.Advance(time.Second)

		assert.Equal(t, 0, store.Len())
	})

	t.Run("persistent", func(t *testing.T) {
		t.Parallel()
		store, _, _ := newTestStore(t)
		toasts := NewFacade(store)

		id := toasts.Create(TypeError, "Failed", "Try again", WithPersistent())

		n, _ := store.Get(id)
		assert.False(t, n.AutoClose)
		assert.Equal(t, 0, store.PendingTimers())
	})

	t.Run("custom id and replace", func(t *testing.T) {
		t.Parallel()
		store, _, _ := newTestStore(t)
		toasts := NewFacade(store)

		loading := toasts.Create(TypeLoading, "Saving", "", WithID("save-1"))
		done := toasts.Create(TypeSuccess, "Saved", "", WithReplace(loading))

		assert.Equal(t, "save-1", loading)
		assert.NotEqual(t, loading, done)
		all := store.Notifications()
		require.Len(t, all, 1)
		assert.Equal(t, TypeSuccess, all[0].Type)
	})

	t.Run("for group and channel", func(t *testing.T) {
		t.Parallel()
		store, _, _ := newTestStore(t)
		toasts := NewFacade(store)

		a := toasts.CreateForGroup(TypeSuccess, "Added", "", "wishlist")
		b := toasts.CreateForChannel(TypeSuccess, "Added", "")

		na, _ := store.Get(a)
		nb, _ := store.Get(b)
		assert.Equal(t, "wishlist", na.GroupID)
		assert.Equal(t, DefaultChannel, nb.GroupID)
	})

	t.Run("custom channel", func(t *testing.T) {
		t.Parallel()
		store, _, _ := newTestStore(t)
		toasts := NewFacade(store, WithChannel("basket"))

		id := toasts.CreateForChannel(TypeSuccess, "Added", "")

		n, _ := store.Get(id)
		assert.Equal(t, "basket", n.GroupID)
		assert.Equal(t, "basket", toasts.Channel())
		assert.Same(t, store, toasts.Store())
	})
}

func TestFacade_Dismiss(t *testing.T) {
	t.Parallel()
	store, _, _ := newTestStore(t)
	toasts := NewFacade(store)

	id := toasts.Create(TypeError, "Failed", "")
	toasts.CreateForChannel(TypeSuccess, "Added", "")
	toasts.CreateForChannel(TypeSuccess, "Added", "")

	assert.True(t, toasts.Dismiss(id))
	assert.False(t, toasts.Dismiss(id))
	assert.Equal(t, 2, toasts.DismissGroup(DefaultChannel))
	assert.Equal(t, 0, store.Len())
}

func TestFacade_Nil(t *testing.T) {
	t.Parallel()

	for name, f := range map[string]*Facade{
		"nil facade":   nil,
		"nil store":    NewFacade(nil),
		"from context": FromContext(context.Background()),
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.NotPanics(t, func() {
				assert.Empty(t, f.Create(TypeSuccess, "x", "y"))
				assert.Empty(t, f.CreateForGroup(TypeSuccess, "x", "y", "g"))
				assert.Empty(t, f.CreateForChannel(TypeSuccess, "x", "y"))
				assert.False(t, f.Dismiss("id"))
				assert.Zero(t, f.DismissGroup("g"))
				assert.Nil(t, f.Store())
			})
		})
	}
}

func TestContext(t *testing.T) {
	t.Parallel()
	store, _, _ := newTestStore(t)
	toasts := NewFacade(store)

	ctx := NewContext(context.Background(), toasts)

	assert.Same(t, toasts, FromContext(ctx))
	assert.Nil(t, FromContext(context.Background()))

	id := FromContext(ctx).Create(TypeSuccess, "Saved", "")
	_, ok := store.Get(id)
	assert.True(t, ok)
}
