// Package secure keeps fetched secret payloads encrypted in memory.
// Values sit in a memguard enclave between fetch and validation, so the
// plaintext exists only in a short-lived locked buffer while a rule runs.
package secure

import (
	"errors"
	"sync"

	"github.com/awnumar/memguard"
)

// ErrDestroyed is returned by Open after the buffer has been destroyed.
var ErrDestroyed = errors.New("secure: buffer destroyed")

// Buffer holds a secret payload in an encrypted memguard enclave.
// The plaintext is only materialized by Open, inside a locked buffer
// that the caller must destroy.
type Buffer struct {
	enclave   *memguard.Enclave
	mu        sync.RWMutex
	destroyed bool
}

// NewBuffer seals data into a protected buffer. The caller keeps
// ownership of data and should zero it if it holds the only copy.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{enclave: memguard.NewEnclave(data)}
}

// Open decrypts the payload into a locked buffer. The caller must call
// Destroy on the returned buffer once done with the plaintext.
func (b *Buffer) Open() (*memguard.LockedBuffer, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.destroyed {
		return nil, ErrDestroyed
	}
	return b.enclave.Open()
}

// Destroy drops the enclave and marks the buffer unusable. Idempotent.
// After Destroy, Open returns ErrDestroyed. Call memguard.Purge at
// process exit for full cleanup of all protected memory.
func (b *Buffer) Destroy() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.destroyed {
		return
	}
	b.enclave = nil
	b.destroyed = true
}
