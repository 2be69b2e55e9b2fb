package system

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cliprelay/internal/core/domain"
)

func fakeHost(text string, err error, unsupported bool) *Host {
	return &Host{
		read:        func() (string, error) { return text, err },
		unsupported: func() bool { return unsupported },
	}
}

func TestHost_CurrentItem_Text(t *testing.T) {
	item, err := fakeHost("hello", nil, false).CurrentItem(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []domain.Format{domain.FormatText}, item.Formats())
	assert.Equal(t, "hello", item.Text())
	_, ok := item.UserCopyTime()
	assert.False(t, ok)
}

func TestHost_CurrentItem_Empty(t *testing.T) {
	item, err := fakeHost("", nil, false).CurrentItem(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, item.Len())
}

func TestHost_CurrentItem_ReadError(t *testing.T) {
	_, err := fakeHost("", errors.New("xclip exited"), false).CurrentItem(context.Background())

	assert.ErrorIs(t, err, domain.ErrClipboardUnavailable)
	assert.Contains(t, err.Error(), "xclip exited")
}

func TestHost_CurrentItem_Unsupported(t *testing.T) {
	_, err := fakeHost("hello", nil, true).CurrentItem(context.Background())

	assert.ErrorIs(t, err, domain.ErrClipboardUnavailable)
}

func TestHost_CurrentItem_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fakeHost("hello", nil, false).CurrentItem(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewHost(t *testing.T) {
	h := NewHost()

	assert.NotNil(t, h.read)
	assert.NotNil(t, h.unsupported)
}
