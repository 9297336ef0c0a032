// Package secret encrypts the stored GitHub API key at rest. The cipher key
// is derived once at startup from the JWT secret and a random per-install
// salt via PBKDF2; values are sealed with AES-GCM, nonce prepended, base64
// encoded.
package secret

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const nonceSize = 12

// Box seals and opens short secrets with a derived AES-256 key.
type Box struct {
	key []byte
}

// NewBox derives the cipher key from secret and salt.
func NewBox(secretKey, salt string) *Box {
	return &Box{key: pbkdf2.Key([]byte(secretKey), []byte(salt), 10000, 32, sha256.New)}
}

// RandomSalt returns length random bytes, base64 encoded.
func RandomSalt(length int) (string, error) {
	salt := make([]byte, length)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(salt), nil
}

// Seal encrypts plainText and returns a base64 string.
func (b *Box) Seal(plainText string) (string, error) {
	aesGCM, err := b.gcm()
	if err != nil {
		return "", err
	}
	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	cipherText := aesGCM.Seal(nil, nonce, []byte(plainText), nil)
	return base64.StdEncoding.EncodeToString(append(nonce, cipherText...)), nil
}

// Open decrypts a value produced by Seal.
func (b *Box) Open(encoded string) (string, error) {
	aesGCM, err := b.gcm()
	if err != nil {
		return "", err
	}
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", errors.New("invalid base64 ciphertext")
	}
	if len(decoded) < nonceSize+aesGCM.Overhead() {
		return "", errors.New("invalid ciphertext length")
	}
	nonce, data := decoded[:nonceSize], decoded[nonceSize:]
	plainText, err := aesGCM.Open(nil, nonce, data, nil)
	if err != nil {
		return "", errors.New("decryption failed or authentication check failed")
	}
	return string(plainText), nil
}

func (b *Box) gcm() (cipher.AEAD, error) {
	block, err := aes.NewCipher(b.key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
