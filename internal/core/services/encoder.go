package services

import (
	"encoding/base64"
	"fmt"

	"github.com/custodia-labs/cliprelay/internal/core/domain"
	"github.com/custodia-labs/cliprelay/internal/core/ports/driven"
)

// ItemEncoder turns a clipboard item into its transportable blob.
type ItemEncoder struct {
	packer driven.ItemPacker
}

// NewItemEncoder creates an encoder backed by packer.
func NewItemEncoder(packer driven.ItemPacker) *ItemEncoder {
	return &ItemEncoder{packer: packer}
}

// Encode packs every format of the item and base64-encodes the container.
// The result is a pure function of the item.
func (e *ItemEncoder) Encode(item *domain.ClipboardItem) (domain.EncodedBlob, error) {
	if e.packer == nil {
		return domain.EncodedBlob{}, fmt.Errorf("%w: no packer configured", domain.ErrEncoding)
	}

	packed, err := e.packer.Pack(item)
	if err != nil {
		return domain.EncodedBlob{}, fmt.Errorf("packing item: %w", err)
	}

	return domain.EncodedBlob{
		Packed: packed,
		Text:   base64.StdEncoding.EncodeToString(packed),
	}, nil
}
