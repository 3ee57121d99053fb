package notifications

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDeliverer struct {
	mock.Mock
}

func (m *MockDeliverer) Deliver(ctx context.Context, view View) error {
	args := m.Called(ctx, view)
	return args.Error(0)
}

type closingDeliverer struct {
	MockDeliverer
	err error
}

func (c *closingDeliverer) Close() error {
	return c.err
}

func TestMultiDeliverer_Deliver(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		setup func() []*MockDeliverer
	}{
		{
			name: "all succeed",
			setup: func() []*MockDeliverer {
				d1, d2 := new(MockDeliverer), new(MockDeliverer)
				d1.On("Deliver", mock.Anything, mock.AnythingOfType("notifications.View")).Return(nil)
				d2.On("Deliver", mock.Anything, mock.AnythingOfType("notifications.View")).Return(nil)
				return []*MockDeliverer{d1, d2}
			},
		},
		{
			name: "first fails, rest still receive",
			setup: func() []*MockDeliverer {
				d1, d2 := new(MockDeliverer), new(MockDeliverer)
				d1.On("Deliver", mock.Anything, mock.AnythingOfType("notifications.View")).Return(errors.New("connection failed"))
				d2.On("Deliver", mock.Anything, mock.AnythingOfType("notifications.View")).Return(nil)
				return []*MockDeliverer{d1, d2}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mocks := tt.setup()
			deliverers := make([]Deliverer, len(mocks))
			for i, m := range mocks {
				deliverers[i] = m
			}
			multi := NewMultiDeliverer(deliverers, WithMultiDelivererLogger(discardLogger()))

			err := multi.Deliver(context.Background(), View{Version: 3})

			assert.NoError(t, err)
			for _, m := range mocks {
				m.AssertExpectations(t)
			}
		})
	}
}

func TestMultiDeliverer_Close(t *testing.T) {
	t.Parallel()

	failing := &closingDeliverer{err: errors.New("close failed")}
	ok := &closingDeliverer{}
	plain := new(MockDeliverer)

	err := NewMultiDeliverer([]Deliverer{failing, ok, plain}).Close()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "close failed")
}

func TestMultiDeliverer_WithStore(t *testing.T) {
	t.Parallel()

	a, b := &recordingDeliverer{}, &recordingDeliverer{}
	store, _, _ := newTestStore(t, WithDeliverer(NewMultiDeliverer([]Deliverer{a, b})))

	store.Upsert(Notification{Type: TypeSuccess})
	require.NoError(t, store.Close())

	assert.Len(t, a.Views(), 2)
	assert.Equal(t, a.Views(), b.Views())
	assert.True(t, a.closed)
	assert.True(t, b.closed)
}

func TestNoOpDeliverer(t *testing.T) {
	t.Parallel()

	assert.NoError(t, (&NoOpDeliverer{}).Deliver(context.Background(), View{}))
}
