package cbor

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/custodia-labs/cliprelay/internal/core/domain"
	"github.com/custodia-labs/cliprelay/internal/core/ports/driven"
)

// Ensure Packer implements the interface.
var _ driven.ItemPacker = (*Packer)(nil)

// maxFormats bounds the number of map entries accepted when unpacking.
const maxFormats = 1024

// Packer implements driven.ItemPacker with deterministic CBOR.
type Packer struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

// NewPacker creates a packer with deterministic encoding.
func NewPacker() (*Packer, error) {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("cbor encoder: %w", err)
	}

	dec, err := cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		MaxMapPairs: maxFormats,
	}.DecMode()
	if err != nil {
		return nil, fmt.Errorf("cbor decoder: %w", err)
	}

	return &Packer{enc: enc, dec: dec}, nil
}

// Pack serialises every format of the item.
func (p *Packer) Pack(item *domain.ClipboardItem) ([]byte, error) {
	if item == nil {
		return nil, fmt.Errorf("%w: nil item", domain.ErrEncoding)
	}

	data, err := p.enc.Marshal(item.Map())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEncoding, err)
	}
	return data, nil
}

// Unpack restores an item from Pack output.
func (p *Packer) Unpack(data []byte) (*domain.ClipboardItem, error) {
	var raw map[string][]byte
	if err := p.dec.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	formats := make(map[domain.Format][]byte, len(raw))
	for k, v := range raw {
		formats[domain.Format(k)] = v
	}
	return domain.NewClipboardItem(formats), nil
}
