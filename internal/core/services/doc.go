// Package services implements the driving port interfaces.
// Services contain the relay pipeline and orchestrate calls to driven
// ports (adapters): the size gate, item encoder, envelope builder,
// relay, dispatcher, history and settings.
//
// Services depend only on domain, the ports and small utility libraries
// (uuid for outcome IDs). Packing, transport and storage live behind
// driven ports.
package services
