// Package cryptox seals record snapshots with a passphrase: an Argon2id key
// derived from the passphrase and a random salt encrypts the payload with
// AES-256-GCM.
package cryptox

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/json"
	"errors"

	"github.com/dmitrijs2005/interviewkeeper/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	SaltSize = 16
	KeySize  = 32
)

// magic prefixes every sealed blob: format name and version.
var magic = []byte("IKSNAP1\x00")

var (
	ErrMalformed  = errors.New("malformed sealed blob")
	ErrDecryption = errors.New("wrong passphrase or corrupted blob")
)

func DeriveMasterKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, KeySize)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Seal serializes v to JSON and encrypts it under a key derived from
// passphrase. The result is self-contained:
//
//	magic | salt (16) | nonce (12) | ciphertext+tag
func Seal(v any, passphrase []byte) ([]byte, error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(plaintext)

	salt := common.GenerateRandByteArray(SaltSize)
	key := DeriveMasterKey(passphrase, salt)
	defer common.WipeByteArray(key)

	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	nonce := common.GenerateRandByteArray(aead.NonceSize())

	out := make([]byte, 0, len(magic)+SaltSize+len(nonce)+len(plaintext)+aead.Overhead())
	out = append(out, magic...)
	out = append(out, salt...)
	out = append(out, nonce...)
	return aead.Seal(out, nonce, plaintext, magic), nil
}

// Open reverses Seal and unmarshals the payload into v.
func Open(blob, passphrase []byte, v any) error {
	if !bytes.HasPrefix(blob, magic) {
		return ErrMalformed
	}
	rest := blob[len(magic):]
	if len(rest) < SaltSize {
		return ErrMalformed
	}
	salt, rest := rest[:SaltSize], rest[SaltSize:]

	key := DeriveMasterKey(passphrase, salt)
	defer common.WipeByteArray(key)

	aead, err := newGCM(key)
	if err != nil {
		return err
	}
	if len(rest) < aead.NonceSize()+aead.Overhead() {
		return ErrMalformed
	}
	nonce, ciphertext := rest[:aead.NonceSize()], rest[aead.NonceSize():]

	plaintext, err := aead.Open(nil, nonce, ciphertext, magic)
	if err != nil {
		return ErrDecryption
	}
	defer common.WipeByteArray(plaintext)

	return json.Unmarshal(plaintext, v)
}
