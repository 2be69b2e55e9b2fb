// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the relay to function:
//
//   - ItemPacker: Serialises clipboard items (CBOR)
//   - Transport: Delivers envelopes over HTTP
//   - ConfigStore: Application configuration (TOML)
//
// # Optional Interfaces
//
// These can be nil - the relay degrades gracefully:
//
//   - OutcomeStore: Outcome history. Without it, only in-process counters are kept.
//   - ClipboardHost: Reads the system clipboard. Only needed by the poll trigger.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
