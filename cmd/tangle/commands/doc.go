// Package commands wires the tangle CLI: a simulate command that drives a
// full handshake and ratcheted exchange in process, and kem subcommands for
// inspecting the available profiles.
package commands
