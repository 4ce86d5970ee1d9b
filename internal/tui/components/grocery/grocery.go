package grocery

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/mealplan/internal/models"
)

var (
	amountStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Width(14).
			Align(lipgloss.Right)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			PaddingLeft(2)
)

type Model struct {
	viewport viewport.Model
	planName string
	items    []models.GroceryItem
	loaded   bool
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if !m.loaded {
		return "No plan selected. Open one from the Plans tab."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
}

func (m *Model) SetItems(planName string, items []models.GroceryItem) {
	m.planName = planName
	m.items = items
	m.loaded = true
	m.viewport.SetContent(Render(planName, items))
	m.viewport.GotoTop()
}

func (m *Model) Clear() {
	m.items = nil
	m.loaded = false
	m.viewport.SetContent("")
}

// Render lists items in the aggregator's order with amounts right-aligned
func Render(planName string, items []models.GroceryItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Groceries for %s\n\n", planName)
	if len(items) == 0 {
		b.WriteString("Nothing to buy.\n")
		return b.String()
	}
	for _, it := range items {
		amount := strconv.FormatFloat(math.Round(it.TotalAmount*100)/100, 'f', -1, 64) + " " + it.Unit
		b.WriteString(amountStyle.Render(amount) + nameStyle.Render(it.IngredientName) + "\n")
	}
	return b.String()
}
