// Package session drives the ratchet core for one conversation: it holds the
// current root key, ratchet pair and send/receive chains, advances the
// symmetric chain per message, and performs a DH ratchet step whenever the
// peer shows a new ratchet key. Messages are protected with the derived
// message keys (AES-256-CBC plus HMAC-SHA-256 over header and ciphertext).
//
// Out-of-order delivery is handled here, not in the core: keys for skipped
// indices are derived eagerly and cached under (ratchet key, index), with a
// hard cap of 1000 cached entries per session.
//
// State is NOT safe for concurrent use. Serialise access per conversation;
// distinct sessions are fully independent.
package session
