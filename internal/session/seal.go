// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"github.com/morganforge/banktui/internal/util"
)

// Token sealing for the persisted session file. The key is derived from a
// random per-machine seed, so a session file copied to another machine
// cannot be opened.

const seedSize = 32

var sealSalt = []byte("banktui/session-seal/v1")

// sealKey loads or creates the machine-local seed and derives the sealing
// key from it.
func (f *FileStore) sealKey() ([]byte, error) {
	seedPath := filepath.Join(f.dir, "seed")

	seed, err := os.ReadFile(seedPath)
	if os.IsNotExist(err) {
		seed = make([]byte, seedSize)
		if _, err := rand.Read(seed); err != nil {
			return nil, err
		}
		if err := util.AtomicWriteFile(seedPath, seed, 0600); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}
	if len(seed) != seedSize {
		return nil, fmt.Errorf("seed file has %d bytes, want %d", len(seed), seedSize)
	}

	return scrypt.Key(seed, sealSalt, 1<<15, 8, 1, chacha20poly1305.KeySize)
}

// seal encrypts plaintext with XChaCha20-Poly1305 and encodes it for the
// session file. The random nonce is prepended to the ciphertext.
func seal(key []byte, plaintext string) (string, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	sealed := aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// unseal reverses seal.
func unseal(key []byte, encoded string) (string, error) {
	sealed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", err
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return "", err
	}
	if len(sealed) < aead.NonceSize() {
		return "", errors.New("sealed token too short")
	}

	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}
