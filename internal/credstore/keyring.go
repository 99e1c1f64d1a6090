package credstore

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const keyringService = "clusterview"

// Keyring is a Store backed by the OS keychain/credential manager. It keeps
// the bearer token out of plain files on platforms that provide a keychain.
type Keyring struct{}

// NewKeyring creates a keyring-backed store.
func NewKeyring() *Keyring {
	return &Keyring{}
}

func (k *Keyring) Read(key string) (string, bool) {
	value, err := keyring.Get(keyringService, key)
	if err != nil {
		return "", false
	}
	return value, true
}

func (k *Keyring) Write(key, value string) error {
	if err := keyring.Set(keyringService, key, value); err != nil {
		return fmt.Errorf("failed to save credential: %w", err)
	}
	return nil
}

func (k *Keyring) Erase(key string) error {
	if err := keyring.Delete(keyringService, key); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil // Already deleted
		}
		return fmt.Errorf("failed to delete credential: %w", err)
	}
	return nil
}
