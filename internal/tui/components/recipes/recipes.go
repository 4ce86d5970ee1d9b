package recipes

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/mealplan/internal/models"
)

type Item struct {
	Recipe models.Recipe
}

func (i Item) Title() string { return i.Recipe.Name }
func (i Item) Description() string {
	r := i.Recipe
	desc := fmt.Sprintf("%.0f kcal | P %.0fg C %.0fg F %.0fg | serves %d", r.Calories, r.Protein, r.Carbs, r.Fat, r.Servings)
	if t := r.TotalTimeMin(); t > 0 {
		desc += fmt.Sprintf(" | %d min", t)
	}
	return desc
}
func (i Item) FilterValue() string { return i.Recipe.Name }

// Model is a read-only, filterable recipe catalog
type Model struct {
	list list.Model
}

func New(recipes []models.Recipe, width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	m := Model{list: l}
	m.SetRecipes(recipes)
	return m
}

func (m *Model) SetRecipes(recipes []models.Recipe) {
	out := make([]list.Item, len(recipes))
	for i, r := range recipes {
		out[i] = Item{Recipe: r}
	}
	m.list.SetItems(out)
}

func (m Model) Len() int {
	return len(m.list.Items())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  The catalog is empty.\n  Run 'mealplan catalog import FILE' or 'mealplan recipe add'."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
