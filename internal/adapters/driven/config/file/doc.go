// Package file persists cliprelay configuration as a TOML file,
// by default ~/.cliprelay/config.toml.
package file
