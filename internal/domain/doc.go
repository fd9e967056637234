// Package domain defines the fixed-size key types and wire structs shared
// across the protocol packages. Keys are value types ([32]byte arrays) so
// copies are cheap and accidental aliasing of secret material is avoided.
package domain
