// Package domain defines the core entities for cliprelay.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ClipboardItem: A multi-format clipboard snapshot
//   - EncodedBlob: The transportable serialisation of an item
//   - Envelope: The versioned record delivered to the remote endpoint
//   - Outcome: What happened to one item
//   - AppSettings: User configuration
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
