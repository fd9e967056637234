package session

import (
	"errors"

	"tangle/internal/crypto"
	"tangle/internal/domain"
	"tangle/internal/protocol/ratchet"
)

// Cap on cached skipped message keys per session. Bounds the damage an
// attacker can do by faking large message counters.
const maxSkippedKeys = 1000

var (
	ErrSkippedKeyNotFound = errors.New("session: message index already consumed")
	ErrChainUninitialised = errors.New("session: chain key uninitialised")
)

type skippedID struct {
	ratchetKey domain.X25519Public
	n          uint32
}

// State holds one conversation's ratchet state. It is NOT safe for
// concurrent use; callers must serialise access per conversation.
type State struct {
	rootKey ratchet.RootKey

	dhPair   domain.KeyPair
	peerKey  domain.X25519Public
	havePeer bool

	sendChain *ratchet.ChainKey
	recvChain *ratchet.ChainKey
	prevCount uint32

	skipped map[skippedID]ratchet.MessageKeys
}

// NewInitiator seeds a session from the initiator's handshake output. The
// handshake chain key becomes our receiving chain for the peer's published
// ratchet key; the sending chain comes from an immediate root step with a
// fresh ratchet pair.
func NewInitiator(root ratchet.RootKey, chain ratchet.ChainKey, theirRatchetKey domain.X25519Public) (*State, error) {
	pair, err := crypto.GenerateX25519()
	if err != nil {
		return nil, err
	}
	newRoot, sendChain, err := root.CreateChain(theirRatchetKey, pair.Private)
	if err != nil {
		return nil, err
	}
	return &State{
		rootKey:   newRoot,
		dhPair:    pair,
		peerKey:   theirRatchetKey,
		havePeer:  true,
		sendChain: &sendChain,
		recvChain: &chain,
		skipped:   make(map[skippedID]ratchet.MessageKeys),
	}, nil
}

// NewResponder seeds a session from the responder's handshake output. The
// handshake chain key is our first sending chain under ourRatchetPair; the
// receiving chain is created once the initiator's ratchet key arrives in a
// message header.
func NewResponder(root ratchet.RootKey, chain ratchet.ChainKey, ourRatchetPair domain.KeyPair) *State {
	return &State{
		rootKey:   root,
		dhPair:    ourRatchetPair,
		sendChain: &chain,
		skipped:   make(map[skippedID]ratchet.MessageKeys),
	}
}

// Encrypt protects plaintext under the next sending-chain message keys and
// advances the chain.
func (s *State) Encrypt(ad, plaintext []byte) (domain.Header, []byte, error) {
	if s.sendChain == nil {
		return domain.Header{}, nil, ErrChainUninitialised
	}
	h := domain.Header{
		RatchetKey: s.dhPair.Public,
		PN:         s.prevCount,
		N:          s.sendChain.Index(),
	}
	ct, err := seal(s.sendChain.MessageKeys(), h, ad, plaintext)
	if err != nil {
		return domain.Header{}, nil, err
	}
	next := s.sendChain.Next()
	s.sendChain = &next
	return h, ct, nil
}

// Decrypt opens a message, consuming a cached skipped key, stepping the DH
// ratchet on a new remote ratchet key, or advancing the receiving chain as
// the header demands.
func (s *State) Decrypt(ad []byte, h domain.Header, ciphertext []byte) ([]byte, error) {
	if mk, ok := s.skipped[skippedID{h.RatchetKey, h.N}]; ok {
		pt, err := open(mk, h, ad, ciphertext)
		if err != nil {
			return nil, err
		}
		delete(s.skipped, skippedID{h.RatchetKey, h.N})
		return pt, nil
	}

	if !s.havePeer || h.RatchetKey != s.peerKey {
		// Close out the old receiving chain, then ratchet to the new key.
		if err := s.skipRecvKeys(h.PN); err != nil {
			return nil, err
		}
		if err := s.dhRatchet(h.RatchetKey); err != nil {
			return nil, err
		}
	}

	if s.recvChain == nil {
		return nil, ErrChainUninitialised
	}
	if h.N < s.recvChain.Index() {
		return nil, ErrSkippedKeyNotFound
	}
	if err := s.skipRecvKeys(h.N); err != nil {
		return nil, err
	}

	mk := s.recvChain.MessageKeys()
	pt, err := open(mk, h, ad, ciphertext)
	if err != nil {
		return nil, err
	}
	next := s.recvChain.Next()
	s.recvChain = &next
	return pt, nil
}

// SendIndex reports the next sending-chain index.
func (s *State) SendIndex() uint32 {
	if s.sendChain == nil {
		return 0
	}
	return s.sendChain.Index()
}

// RecvIndex reports the next receiving-chain index.
func (s *State) RecvIndex() uint32 {
	if s.recvChain == nil {
		return 0
	}
	return s.recvChain.Index()
}

// dhRatchet advances the root twice: once to derive the receiving chain for
// the peer's new key, once more with a fresh pair of our own for the next
// sending chain.
func (s *State) dhRatchet(theirKey domain.X25519Public) error {
	midRoot, recvChain, err := s.rootKey.CreateChain(theirKey, s.dhPair.Private)
	if err != nil {
		return err
	}
	pair, err := crypto.GenerateX25519()
	if err != nil {
		return err
	}
	newRoot, sendChain, err := midRoot.CreateChain(theirKey, pair.Private)
	if err != nil {
		return err
	}

	s.prevCount = 0
	if s.sendChain != nil {
		s.prevCount = s.sendChain.Index()
	}
	s.rootKey = newRoot
	s.dhPair = pair
	s.peerKey = theirKey
	s.havePeer = true
	s.recvChain = &recvChain
	s.sendChain = &sendChain
	return nil
}

// skipRecvKeys derives and caches message keys up to (but excluding) index
// until, evicting arbitrary entries once the cache is full.
func (s *State) skipRecvKeys(until uint32) error {
	if s.recvChain == nil {
		if until == 0 {
			return nil
		}
		return ErrChainUninitialised
	}
	for s.recvChain.Index() < until {
		if len(s.skipped) >= maxSkippedKeys {
			for k := range s.skipped {
				delete(s.skipped, k)
				break
			}
		}
		s.skipped[skippedID{s.peerKey, s.recvChain.Index()}] = s.recvChain.MessageKeys()
		next := s.recvChain.Next()
		s.recvChain = &next
	}
	return nil
}
