package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/mealplan/internal/logger"
	"github.com/julianstephens/mealplan/internal/planner"
	"github.com/julianstephens/mealplan/internal/storage"
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	if hint := Hint(err); hint != "" {
		msg += "\nHint: " + hint
	}
	return msg
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Hint suggests a follow-up command for errors the user can fix themselves
func Hint(err error) string {
	var insufficient *planner.InsufficientRecipesError
	switch {
	case errors.As(err, &insufficient):
		return fmt.Sprintf("add more %s-sized recipes with 'mealplan recipe add' or pass a higher --max-repeating-days", insufficient.MealType)
	case errors.Is(err, planner.ErrEmptyCatalog):
		return "import recipes with 'mealplan catalog import FILE' first"
	case errors.Is(err, storage.ErrNotInitialized):
		return "run 'mealplan init' first"
	}
	return ""
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
