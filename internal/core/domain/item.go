package domain

import (
	"sort"
	"strconv"
	"strings"
)

// Format identifies one representation of a clipboard item, usually a MIME type.
type Format string

// Well-known formats.
const (
	// FormatText is the canonical plain-text representation.
	FormatText Format = "text/plain"

	// FormatUserCopyTime carries the time the user copied the item,
	// as a base-10 string of unix milliseconds.
	FormatUserCopyTime Format = "application/x-copyq-user-copy-time"
)

// String returns the string representation.
func (f Format) String() string {
	return string(f)
}

// FormatSource is the read-only query surface of a clipboard snapshot.
// Implementations must be side-effect free.
type FormatSource interface {
	// Formats lists the formats present, in a stable order.
	Formats() []Format

	// Data returns the bytes stored for a format, or nil if absent.
	Data(f Format) []byte
}

// ClipboardItem is one clipboard snapshot held as several simultaneous formats.
// The core never mutates an item it did not create.
type ClipboardItem struct {
	data map[Format][]byte
}

// Ensure ClipboardItem implements FormatSource.
var _ FormatSource = (*ClipboardItem)(nil)

// NewClipboardItem creates an item from a format map. The map is copied.
func NewClipboardItem(formats map[Format][]byte) *ClipboardItem {
	item := &ClipboardItem{data: make(map[Format][]byte, len(formats))}
	for f, b := range formats {
		item.data[f] = b
	}
	return item
}

// NewTextItem creates an item holding plain text and, when copyTime is
// non-zero, a user copy time in unix milliseconds.
func NewTextItem(text string, copyTime int64) *ClipboardItem {
	formats := map[Format][]byte{FormatText: []byte(text)}
	if copyTime != 0 {
		formats[FormatUserCopyTime] = []byte(strconv.FormatInt(copyTime, 10))
	}
	return NewClipboardItem(formats)
}

// Formats returns the formats present, sorted.
func (c *ClipboardItem) Formats() []Format {
	if c == nil {
		return nil
	}
	formats := make([]Format, 0, len(c.data))
	for f := range c.data {
		formats = append(formats, f)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}

// Data returns the bytes of a format, or nil.
func (c *ClipboardItem) Data(f Format) []byte {
	if c == nil {
		return nil
	}
	return c.data[f]
}

// Has reports whether the format is present.
func (c *ClipboardItem) Has(f Format) bool {
	if c == nil {
		return false
	}
	_, ok := c.data[f]
	return ok
}

// Len returns the number of formats.
func (c *ClipboardItem) Len() int {
	if c == nil {
		return 0
	}
	return len(c.data)
}

// Size returns the summed byte length of every format.
func (c *ClipboardItem) Size() int {
	total := 0
	for _, f := range c.Formats() {
		total += len(c.data[f])
	}
	return total
}

// Text returns the plain-text format as a string, or "" when absent.
func (c *ClipboardItem) Text() string {
	return string(c.Data(FormatText))
}

// UserCopyTime parses the user copy time. ok is false when the key is
// absent or does not hold an integer.
func (c *ClipboardItem) UserCopyTime() (ms int64, ok bool) {
	raw := c.Data(FormatUserCopyTime)
	if raw == nil {
		return 0, false
	}
	v, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Map returns a copy of the format map keyed by MIME string.
func (c *ClipboardItem) Map() map[string][]byte {
	out := make(map[string][]byte, c.Len())
	for _, f := range c.Formats() {
		out[string(f)] = c.data[f]
	}
	return out
}

// With returns a copy of the item with format f set to data.
// The receiver is not modified.
func (c *ClipboardItem) With(f Format, data []byte) *ClipboardItem {
	out := &ClipboardItem{data: make(map[Format][]byte, c.Len()+1)}
	if c != nil {
		for k, v := range c.data {
			out.data[k] = v
		}
	}
	out.data[f] = data
	return out
}
