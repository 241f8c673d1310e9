/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package crypto

import (
	"fmt"
	"sync"

	"github.com/btcsuite/btcd/btcec"
	"github.com/google/uuid"
)

// KeyStore hands out secp256k1 private keys by reference.
type KeyStore interface {
	PrivateKey(keyRef KeyReference) (*btcec.PrivateKey, error)
}

// InMemoryKeyStore keeps keys in process memory. It is meant for tests and the CLI.
type InMemoryKeyStore struct {
	mu   sync.RWMutex
	keys map[KeyReference]*btcec.PrivateKey
}

// NewInMemoryKeyStore returns an empty key store.
func NewInMemoryKeyStore() *InMemoryKeyStore {
	return &InMemoryKeyStore{keys: map[KeyReference]*btcec.PrivateKey{}}
}

// Generate creates a new secp256k1 key and returns its reference.
func (s *InMemoryKeyStore) Generate() (KeyReference, error) {
	key, err := btcec.NewPrivateKey(btcec.S256())
	if err != nil {
		return "", fmt.Errorf("generate secp256k1 key: %w", err)
	}

	ref := uuid.NewString()

	s.mu.Lock()
	s.keys[ref] = key
	s.mu.Unlock()

	return ref, nil
}

// Import stores raw private key bytes under the given reference.
func (s *InMemoryKeyStore) Import(keyRef KeyReference, privateKey []byte) {
	key, _ := btcec.PrivKeyFromBytes(btcec.S256(), privateKey)

	s.mu.Lock()
	s.keys[keyRef] = key
	s.mu.Unlock()
}

func (s *InMemoryKeyStore) PrivateKey(keyRef KeyReference) (*btcec.PrivateKey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key, ok := s.keys[keyRef]
	if !ok {
		return nil, fmt.Errorf("key %q not found", keyRef)
	}

	return key, nil
}
