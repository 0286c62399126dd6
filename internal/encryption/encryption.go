// Package encryption seals entry text for the password lock.
package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/crypto/pbkdf2"

	"github.com/ramanasai/diary/internal/apperr"
)

const (
	// Key derivation parameters
	SaltSize   = 32
	KeySize    = 32
	Iterations = 100000
)

// SaltFile is the name of the salt file inside the data directory.
const SaltFile = "salt"

// ErrWrongPassphrase is returned when sealed text cannot be opened.
var ErrWrongPassphrase = apperr.New(apperr.KindCrypto, "DECRYPT_FAILED", "cannot decrypt entry").
	WithUser("The passphrase does not unlock this diary")

// Sealer encrypts and decrypts strings with a passphrase-derived key.
type Sealer struct {
	aead cipher.AEAD
}

// New derives a key from passphrase and the salt stored in dir, creating the
// salt on first use.
func New(passphrase, dir string) (*Sealer, error) {
	if passphrase == "" {
		return nil, errors.New("encryption: empty passphrase")
	}
	salt, err := loadOrCreateSalt(filepath.Join(dir, SaltFile))
	if err != nil {
		return nil, fmt.Errorf("failed to get salt: %w", err)
	}
	return NewWithSalt(passphrase, salt)
}

// NewWithSalt derives the key from an explicit salt.
func NewWithSalt(passphrase string, salt []byte) (*Sealer, error) {
	key := pbkdf2.Key([]byte(passphrase), salt, Iterations, KeySize, sha256.New)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return &Sealer{aead: gcm}, nil
}

func loadOrCreateSalt(path string) ([]byte, error) {
	if salt, err := os.ReadFile(path); err == nil && len(salt) == SaltSize {
		return salt, nil
	}

	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create salt directory: %w", err)
	}
	if err := os.WriteFile(path, salt, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write salt file: %w", err)
	}
	return salt, nil
}

// Seal encrypts plaintext to base64(nonce || ciphertext). Empty stays empty.
func (s *Sealer) Seal(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	out := s.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(out), nil
}

// Open reverses Seal.
func (s *Sealer) Open(sealed string) (string, error) {
	if sealed == "" {
		return "", nil
	}
	data, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", apperr.Wrap(err, apperr.KindCrypto, "DECODE_FAILED", "decode sealed text")
	}
	n := s.aead.NonceSize()
	if len(data) < n {
		return "", apperr.New(apperr.KindCrypto, "SHORT_CIPHERTEXT", "ciphertext too short")
	}
	plain, err := s.aead.Open(nil, data[:n], data[n:], nil)
	if err != nil {
		e := *ErrWrongPassphrase
		e.Err = err
		return "", &e
	}
	return string(plain), nil
}
