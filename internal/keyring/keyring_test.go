package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestSetAndGetConnectionString(t *testing.T) {
	gokeyring.MockInit()

	connStr := "postgres://mealplan@localhost:5432/mealplan?sslmode=disable"
	if err := SetConnectionString(connStr); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}

	got, err := ConnectionString()
	if err != nil {
		t.Fatalf("ConnectionString() failed: %v", err)
	}
	if got != connStr {
		t.Errorf("ConnectionString() = %q, want %q", got, connStr)
	}
}

func TestSetConnectionString_Empty(t *testing.T) {
	gokeyring.MockInit()

	for _, in := range []string{"", "   "} {
		if err := SetConnectionString(in); err == nil {
			t.Errorf("SetConnectionString(%q) should fail", in)
		}
	}
}

func TestConnectionString_NotFound(t *testing.T) {
	gokeyring.MockInit()
	_ = DeleteConnectionString()

	if _, err := ConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("ConnectionString() error = %v, want %v", err, ErrNotFound)
	}
}

func TestDeleteConnectionString(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString("postgres://mealplan@localhost/mealplan"); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}
	if err := DeleteConnectionString(); err != nil {
		t.Fatalf("DeleteConnectionString() failed: %v", err)
	}
	if err := DeleteConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteConnectionString() error = %v, want %v", err, ErrNotFound)
	}
}

func TestKeyringErrorsAreUnavailable(t *testing.T) {
	gokeyring.MockInitWithError(errors.New("dbus not running"))
	defer gokeyring.MockInit()

	if _, err := ConnectionString(); !errors.Is(err, ErrKeyringUnavailable) {
		t.Errorf("ConnectionString() error = %v, want %v", err, ErrKeyringUnavailable)
	}
	if Available() {
		t.Error("Available() = true with a failing keyring")
	}
}

func TestAvailable(t *testing.T) {
	gokeyring.MockInit()
	if !Available() {
		t.Error("Available() = false with mock keyring")
	}
}

func TestMask(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://mealplan@db.internal:5432/mealplan", "****@db.internal:5432/mealplan"},
		{"host=db.internal dbname=mealplan", "host=db.inte****"},
		{"short", "****"},
	}
	for _, tt := range tests {
		if got := Mask(tt.in); got != tt.want {
			t.Errorf("Mask(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
