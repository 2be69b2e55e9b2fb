package driven

import "github.com/custodia-labs/cliprelay/internal/core/domain"

// ItemPacker serialises whole clipboard items into a self-describing binary container.
type ItemPacker interface {
	// Pack serialises every format of the item.
	// Equal items must produce byte-identical output.
	Pack(item *domain.ClipboardItem) ([]byte, error)

	// Unpack restores an item from Pack output.
	Unpack(data []byte) (*domain.ClipboardItem, error)
}
