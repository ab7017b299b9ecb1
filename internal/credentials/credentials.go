// Package credentials keeps the remote session token in the OS keyring.
package credentials

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	service = "tally"
	account = "session-token"
)

var (
	// ErrNotFound is returned when no token is stored.
	ErrNotFound = errors.New("no session token in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring cannot be used.
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// SaveToken stores the session token.
func SaveToken(token string) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}
	if err := keyring.Set(service, account, token); err != nil {
		return fmt.Errorf("store token in keyring: %w", err)
	}
	return nil
}

// LoadToken returns the stored session token.
func LoadToken() (string, error) {
	token, err := keyring.Get(service, account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return token, nil
}

// DeleteToken removes the stored session token.
func DeleteToken() error {
	if err := keyring.Delete(service, account); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete token from keyring: %w", err)
	}
	return nil
}

// Keyring exposes the package functions as a token store.
type Keyring struct{}

func (Keyring) SaveToken(token string) error { return SaveToken(token) }
func (Keyring) LoadToken() (string, error)   { return LoadToken() }
func (Keyring) DeleteToken() error           { return DeleteToken() }
