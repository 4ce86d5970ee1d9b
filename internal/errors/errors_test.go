package errors

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/julianstephens/mealplan/internal/models"
	"github.com/julianstephens/mealplan/internal/planner"
	"github.com/julianstephens/mealplan/internal/storage"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil error", nil, ""},
		{"plain error", errors.New("something went wrong"), "Error: something went wrong"},
		{
			"empty catalog carries hint",
			planner.ErrEmptyCatalog,
			"Error: recipe catalog is empty\nHint: import recipes with 'mealplan catalog import FILE' first",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.err); got != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, got, tt.expected)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	got := Formatf("recipe %s not found", "abc")
	if got != "Error: recipe abc not found" {
		t.Errorf("Formatf() = %q, want %q", got, "Error: recipe abc not found")
	}
}

func TestHint(t *testing.T) {
	insufficient := &planner.InsufficientRecipesError{MealType: models.MealDinner, PoolSize: 3, Used: 3}

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"insufficient", fmt.Errorf("generate: %w", insufficient), "dinner-sized"},
		{"not initialized", storage.ErrNotInitialized, "mealplan init"},
		{"unrelated", errors.New("boom"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Hint(tt.err)
			if tt.want == "" {
				if got != "" {
					t.Errorf("Hint() = %q, want empty", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("Hint() = %q, want to contain %q", got, tt.want)
			}
		})
	}
}

func TestFatal(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL") == "1" {
		Fatal(errors.New("test error"))
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestFatal$")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if e, ok := err.(*exec.ExitError); ok && !e.Success() {
		if e.ExitCode() != 1 {
			t.Errorf("Fatal() exit code = %d, want 1", e.ExitCode())
		}
		if !strings.Contains(stderr.String(), "Error: test error") {
			t.Errorf("Fatal() stderr = %q, want to contain %q", stderr.String(), "Error: test error")
		}
	} else {
		t.Errorf("Fatal() did not exit with error: %v", err)
	}
}

func TestFatal_NilError(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL_NIL") == "1" {
		Fatal(nil)
		os.Exit(0)
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestFatal_NilError$")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL_NIL=1")
	if err := cmd.Run(); err != nil {
		t.Errorf("Fatal(nil) should not exit, but got error: %v", err)
	}
}
