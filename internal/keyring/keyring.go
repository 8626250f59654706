package keyring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/ChandelAnish/NutriTrack/internal/constants"
)

var (
	// ErrNotFound is returned when no credentials are found in the keyring
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// accountUser namespaces remembered account passwords away from the cache
// connection entry.
func accountUser(email string) string {
	return "account:" + strings.ToLower(strings.TrimSpace(email))
}

func get(user string) (string, error) {
	v, err := keyring.Get(constants.AppName, user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return v, nil
}

func del(user string) error {
	if err := keyring.Delete(constants.AppName, user); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// GetConnectionString retrieves the postgres cache connection string.
// Returns ErrNotFound if none is stored.
func GetConnectionString() (string, error) {
	return get(constants.DefaultKeyringUser)
}

// SetConnectionString stores the postgres cache connection string.
func SetConnectionString(connStr string) error {
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	if err := keyring.Set(constants.AppName, constants.DefaultKeyringUser, connStr); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

func DeleteConnectionString() error {
	return del(constants.DefaultKeyringUser)
}

// GetPassword returns the remembered password for email.
func GetPassword(email string) (string, error) {
	if strings.TrimSpace(email) == "" {
		return "", ErrNotFound
	}
	return get(accountUser(email))
}

// SetPassword remembers the account password for email.
func SetPassword(email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return errors.New("email and password cannot be empty")
	}
	if err := keyring.Set(constants.AppName, accountUser(email), password); err != nil {
		return fmt.Errorf("failed to store password in keyring: %w", err)
	}
	return nil
}

// DeletePassword forgets the remembered password for email. A missing entry
// is not an error.
func DeletePassword(email string) error {
	if strings.TrimSpace(email) == "" {
		return nil
	}
	if err := del(accountUser(email)); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}

// IsAvailable is a best-effort check that the OS keyring can be read.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}

// MaskPassword hides the password part of a connection string for display.
func MaskPassword(connStr string) string {
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		idx := strings.Index(connStr, "://")
		remaining := connStr[idx+3:]
		if atIdx := strings.LastIndex(remaining, "@"); atIdx != -1 {
			userInfo := remaining[:atIdx]
			if colonIdx := strings.Index(userInfo, ":"); colonIdx != -1 {
				return connStr[:idx+3] + userInfo[:colonIdx] + ":****" + connStr[idx+3+atIdx:]
			}
		}
		return connStr
	}

	parts := strings.Fields(connStr)
	for i, part := range parts {
		if strings.HasPrefix(strings.ToLower(part), "password=") {
			parts[i] = "password=****"
		}
	}
	return strings.Join(parts, " ")
}
