package domain

// EncodedBlob is the transportable serialisation of a whole clipboard item.
type EncodedBlob struct {
	// Packed is the deterministic binary container of every format.
	Packed []byte

	// Text is Packed in standard base64.
	Text string
}

// Bytes returns the transport bytes, the base64 text as sent on the wire.
// Content hashes are computed over these bytes.
func (b EncodedBlob) Bytes() []byte {
	return []byte(b.Text)
}

// Len returns the length of the transport representation.
func (b EncodedBlob) Len() int {
	return len(b.Text)
}
