package planlist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/mealplan/internal/models"
)

type NewPlanMsg struct{}

type OpenPlanMsg struct {
	ID string
}

type DeletePlanMsg struct {
	ID   string
	Name string
}

type Item struct {
	Plan models.MealPlan
}

func (i Item) Title() string { return i.Plan.Name }
func (i Item) Description() string {
	c := i.Plan.Constraints
	desc := fmt.Sprintf("%.0f kcal | %.0fg protein | %d people", c.DailyCalories, c.DailyProtein, c.NumPeople)
	if c.AllowCheatMeal {
		desc += " | cheat meal"
	}
	return desc + " | " + i.Plan.CreatedAt
}
func (i Item) FilterValue() string { return i.Plan.Name }

type KeyMap struct {
	Open   key.Binding
	New    key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new plan"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(plans []models.MealPlan, width, height int) Model {
	l := list.New(items(plans), list.NewDefaultDelegate(), width, height)
	l.Title = "Plans"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Open, keys.New, keys.Delete}
	}
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys

	return Model{list: l, keys: keys}
}

func items(plans []models.MealPlan) []list.Item {
	out := make([]list.Item, len(plans))
	for i, p := range plans {
		out[i] = Item{Plan: p}
	}
	return out
}

func (m *Model) SetPlans(plans []models.MealPlan) {
	m.list.SetItems(items(plans))
}

// Len reports how many plans are listed
func (m Model) Len() int {
	return len(m.list.Items())
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, m.keys.New):
			return m, func() tea.Msg { return NewPlanMsg{} }
		case key.Matches(msg, m.keys.Open):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return OpenPlanMsg{ID: i.Plan.ID} }
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeletePlanMsg{ID: i.Plan.ID, Name: i.Plan.Name} }
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No meal plans yet.\n  Press 'n' to generate one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
