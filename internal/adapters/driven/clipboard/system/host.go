// Package system reads the desktop clipboard through github.com/atotto/clipboard.
//
// Only plain text is available from the system clipboard, so items carry
// a single text/plain format and no user copy time.
package system

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/custodia-labs/cliprelay/internal/core/domain"
	"github.com/custodia-labs/cliprelay/internal/core/ports/driven"
)

// Ensure Host implements the interface.
var _ driven.ClipboardHost = (*Host)(nil)

// Host reads the current clipboard text. Reads never modify the clipboard.
type Host struct {
	read        func() (string, error)
	unsupported func() bool
}

// NewHost creates a host backed by the system clipboard.
func NewHost() *Host {
	return &Host{
		read:        clipboard.ReadAll,
		unsupported: func() bool { return clipboard.Unsupported },
	}
}

// CurrentItem returns the clipboard text as an item. An empty clipboard
// yields an item with no formats.
func (h *Host) CurrentItem(ctx context.Context) (*domain.ClipboardItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if h.unsupported() {
		return nil, fmt.Errorf("%w: no clipboard utility found", domain.ErrClipboardUnavailable)
	}

	text, err := h.read()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrClipboardUnavailable, err)
	}
	if text == "" {
		return domain.NewClipboardItem(nil), nil
	}
	return domain.NewClipboardItem(map[domain.Format][]byte{
		domain.FormatText: []byte(text),
	}), nil
}
