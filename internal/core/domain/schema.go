package domain

const unknownDescription = "Unknown"

// SchemaVersion selects the wire format used to deliver envelopes.
// The versions are separate protocols, not upgrades of one another.
type SchemaVersion string

// Supported wire schemas.
const (
	// SchemaV1 posts text, hash and payload to /api/v1/ClipboardItem.
	SchemaV1 SchemaVersion = "v1"

	// SchemaV2 posts time and payload to /api/v2/Item.
	SchemaV2 SchemaVersion = "v2"

	// SchemaV2URLPath posts the payload to /api/v2/Item{timestamp}.
	SchemaV2URLPath SchemaVersion = "v2-urlpath"
)

// AllSchemas returns every supported schema in documentation order.
func AllSchemas() []SchemaVersion {
	return []SchemaVersion{SchemaV1, SchemaV2, SchemaV2URLPath}
}

// IsValid returns true if the schema is recognised.
func (s SchemaVersion) IsValid() bool {
	switch s {
	case SchemaV1, SchemaV2, SchemaV2URLPath:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s SchemaVersion) String() string {
	return string(s)
}

// DefaultPath returns the request path the schema posts to.
func (s SchemaVersion) DefaultPath() string {
	switch s {
	case SchemaV1:
		return "/api/v1/ClipboardItem"
	case SchemaV2, SchemaV2URLPath:
		return "/api/v2/Item"
	default:
		return ""
	}
}

// Description returns a human-readable description of the schema.
func (s SchemaVersion) Description() string {
	switch s {
	case SchemaV1:
		return "v1 (time, text, hash, data)"
	case SchemaV2:
		return "v2 (time, data)"
	case SchemaV2URLPath:
		return "v2 URL path (timestamp in path, data)"
	default:
		return unknownDescription
	}
}
