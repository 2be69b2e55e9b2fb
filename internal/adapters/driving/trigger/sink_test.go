package trigger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/cliprelay/internal/core/domain"
)

type fakeDispatcher struct {
	submitted []*domain.ClipboardItem
	err       error
}

func (d *fakeDispatcher) Start(context.Context) error { return nil }
func (d *fakeDispatcher) Stop() error                 { return nil }
func (d *fakeDispatcher) Pending() int                { return len(d.submitted) }

func (d *fakeDispatcher) Submit(item *domain.ClipboardItem) error {
	if d.err != nil {
		return d.err
	}
	d.submitted = append(d.submitted, item)
	return nil
}

func TestSubmitTo(t *testing.T) {
	d := &fakeDispatcher{}
	sink := SubmitTo(d)

	sink(domain.NewTextItem("a", 0))
	sink(domain.NewTextItem("b", 0))

	assert.Len(t, d.submitted, 2)
	assert.Equal(t, "b", d.submitted[1].Text())
}

func TestSubmitTo_RejectedIsDropped(t *testing.T) {
	d := &fakeDispatcher{err: domain.ErrQueueFull}

	assert.NotPanics(t, func() { SubmitTo(d)(domain.NewTextItem("a", 0)) })
	assert.Empty(t, d.submitted)
}
