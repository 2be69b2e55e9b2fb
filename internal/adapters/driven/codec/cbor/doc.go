// Package cbor packs clipboard items into CBOR containers.
//
// Items are encoded as a single CBOR map from MIME-type text strings to
// byte strings. The encoder uses Core Deterministic Encoding (RFC 8949
// §4.2): sorted map keys, smallest length encoding, no indefinite-length
// items. The same item always produces identical bytes, which keeps
// content hashes stable across invocations.
package cbor
