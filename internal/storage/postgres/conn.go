package postgres

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	pq "github.com/lib/pq"

	"github.com/julianstephens/mealplan/internal/constants"
	"github.com/julianstephens/mealplan/internal/logger"
)

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password; use ~/.pgpass or PGPASSWORD")
)

// IsURL reports whether connStr uses the postgres:// or postgresql:// scheme
func IsURL(connStr string) bool {
	return strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://")
}

// hasParam reports whether a URL query or key=value DSN sets key, ignoring case
func hasParam(connStr, key string) bool {
	if IsURL(connStr) {
		if u, err := url.Parse(connStr); err == nil {
			for k := range u.Query() {
				if strings.EqualFold(k, key) {
					return true
				}
			}
		}
		return false
	}

	for _, pair := range strings.Fields(connStr) {
		k, _, ok := strings.Cut(pair, "=")
		if ok && strings.EqualFold(k, key) {
			return true
		}
	}
	return false
}

// withSearchPath pins unqualified table names to the mealplan schema
func withSearchPath(connStr string) string {
	if hasParam(connStr, "search_path") {
		return connStr
	}
	if !IsURL(connStr) {
		return strings.TrimSpace(connStr) + " search_path=" + constants.AppName
	}

	u, err := url.Parse(connStr)
	if err != nil {
		logger.Warn("Failed to parse Postgres connection string", "error", err)
		return connStr
	}
	q := u.Query()
	q.Set("search_path", constants.AppName)
	u.RawQuery = q.Encode()
	return u.String()
}

// ValidateConnString rejects malformed connection strings and any that embed a password
func ValidateConnString(connStr string) error {
	if strings.TrimSpace(connStr) == "" {
		return fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}

	if _, err := pq.NewConnector(connStr); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConnectionString, err)
	}

	if IsURL(connStr) {
		u, err := url.Parse(connStr)
		if err != nil {
			return fmt.Errorf("%w: failed to parse connection URL: %v", ErrInvalidConnectionString, err)
		}
		if _, isSet := u.User.Password(); isSet {
			return ErrEmbeddedCredentials
		}
		if u.Host == "" && u.User == nil && (u.Path == "" || u.Path == "/") {
			return fmt.Errorf("%w: connection URL is incomplete", ErrInvalidConnectionString)
		}
		return nil
	}

	for _, pair := range strings.Fields(connStr) {
		k, _, ok := strings.Cut(pair, "=")
		if ok && strings.EqualFold(strings.TrimSpace(k), "password") {
			return ErrEmbeddedCredentials
		}
	}
	return nil
}

// connectError adds an sslmode hint when the server refuses TLS
func connectError(connStr string, err error) error {
	if strings.Contains(err.Error(), "SSL is not enabled on the server") && !hasParam(connStr, "sslmode") {
		return fmt.Errorf("failed to connect to database: %w (hint: try adding ?sslmode=disable to your connection string)", err)
	}
	return fmt.Errorf("failed to connect to database: %w", err)
}
