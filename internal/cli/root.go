package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/mealplan/internal/backup"
	"github.com/julianstephens/mealplan/internal/logger"
	"github.com/julianstephens/mealplan/internal/models"
	"github.com/julianstephens/mealplan/internal/service"
	"github.com/julianstephens/mealplan/internal/storage"
	"github.com/julianstephens/mealplan/internal/storage/sqlite"
)

type Context struct {
	Store   storage.Provider
	Service *service.Service
	// Ctx is cancelled on interrupt; nil means context.Background
	Ctx context.Context
	// In feeds confirmation prompts; nil means os.Stdin
	In io.Reader
}

// Context returns the command context
func (c *Context) Context() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}

// PerformAutomaticBackup snapshots a SQLite database and only logs failures
func (c *Context) PerformAutomaticBackup() {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Confirm prints prompt and reports whether the user answered y or yes
func (c *Context) Confirm(prompt string) (bool, error) {
	in := c.In
	if in == nil {
		in = os.Stdin
	}
	fmt.Printf("%s [y/N]: ", prompt)

	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

var (
	HeadingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	MutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	WarnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// FormatMacros renders macros as "520 kcal  P 32g  C 60g  F 14g"
func FormatMacros(m models.Macros) string {
	return fmt.Sprintf("%.0f kcal  P %.0fg  C %.0fg  F %.0fg", m.Calories, m.Protein, m.Carbs, m.Fat)
}

// FormatAmount trims trailing zeros from grocery and ingredient amounts
func FormatAmount(amount float64, unit string) string {
	s := strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", amount), "0"), ".")
	return s + " " + unit
}
