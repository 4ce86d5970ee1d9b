// Package keyring keeps the PostgreSQL connection string in the OS keyring
// so it never has to appear in flags, env files or shell history.
package keyring

import (
	"errors"
	"fmt"
	"strings"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/mealplan/internal/constants"
)

var (
	ErrNotFound           = errors.New("no connection string stored in keyring")
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// probeUser is read by Available and never written
const probeUser = "availability-probe"

// ConnectionString returns the stored connection string or ErrNotFound
func ConnectionString() (string, error) {
	connStr, err := gokeyring.Get(constants.AppName, constants.DefaultKeyringUser)
	if errors.Is(err, gokeyring.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return connStr, nil
}

func SetConnectionString(connStr string) error {
	connStr = strings.TrimSpace(connStr)
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	if err := gokeyring.Set(constants.AppName, constants.DefaultKeyringUser, connStr); err != nil {
		return fmt.Errorf("failed to store connection string in keyring: %w", err)
	}
	return nil
}

func DeleteConnectionString() error {
	err := gokeyring.Delete(constants.AppName, constants.DefaultKeyringUser)
	if errors.Is(err, gokeyring.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete connection string from keyring: %w", err)
	}
	return nil
}

// Available reports whether the keyring answers a read. An empty keyring counts as available.
func Available() bool {
	_, err := gokeyring.Get(constants.AppName, probeUser)
	return err == nil || errors.Is(err, gokeyring.ErrNotFound)
}

// Mask hides everything after the scheme and host so a stored value can be shown safely
func Mask(connStr string) string {
	if i := strings.Index(connStr, "@"); i >= 0 {
		return "****" + connStr[i:]
	}
	if len(connStr) <= 12 {
		return "****"
	}
	return connStr[:12] + "****"
}
