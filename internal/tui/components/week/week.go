package week

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/mealplan/internal/models"
	"github.com/julianstephens/mealplan/internal/service"
)

var (
	dayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Width(12)

	mealStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(12)

	recipeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	totalsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	cheatStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)
)

var mealLabels = map[models.MealType]string{
	models.MealBreakfast: "Breakfast",
	models.MealLunch:     "Lunch",
	models.MealDinner:    "Dinner",
	models.MealSnack:     "Snack",
}

type Model struct {
	viewport viewport.Model
	Plan    *service.PlanView
	width    int
	height   int
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.Plan == nil {
		return "No plan selected. Open one from the Plans tab."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) SetView(v service.PlanView) {
	m.Plan = &v
	m.viewport.GotoTop()
	m.Render()
}

func (m *Model) Clear() {
	m.Plan = nil
	m.viewport.SetContent("")
}

func (m *Model) Render() {
	if m.Plan == nil {
		m.viewport.SetContent("No plan loaded.")
		return
	}
	m.viewport.SetContent(Render(*m.Plan))
}

// Render lays the week out one day per block
func Render(v service.PlanView) string {
	var b strings.Builder
	p := v.Plan
	fmt.Fprintf(&b, "%s\n", dayStyle.UnsetWidth().Render(p.Name))

	if v.Summary == nil {
		b.WriteString(cheatStyle.Render("Some recipes in this plan no longer exist.") + "\n")
		return b.String()
	}

	cheats := make(map[int]bool)
	for _, a := range p.Assignments {
		if a.Cheat {
			cheats[a.Day] = true
		}
	}

	for _, day := range v.Summary.Days {
		t := day.Totals
		fmt.Fprintf(&b, "\n%s%s\n", dayStyle.Render(day.DayName),
			totalsStyle.Render(fmt.Sprintf("%.0f kcal  P %.0fg  C %.0fg  F %.0fg", t.Calories, t.Protein, t.Carbs, t.Fat)))
		for _, mt := range models.MealTypes {
			r := day.Meal(mt)
			if r == nil {
				continue
			}
			line := mealStyle.Render(mealLabels[mt]) + recipeStyle.Render(r.Name)
			if mt == models.MealLunch && cheats[day.Day] {
				line += " " + cheatStyle.Render("★ cheat")
			}
			b.WriteString("  " + line + "\n")
		}
	}

	t := v.Summary.Totals
	fmt.Fprintf(&b, "\n%s%s\n", dayStyle.Render("Week"),
		totalsStyle.Render(fmt.Sprintf("%.0f kcal  P %.0fg  C %.0fg  F %.0fg", t.Calories, t.Protein, t.Carbs, t.Fat)))

	for _, c := range v.Conflicts {
		if c.Day > 0 {
			b.WriteString(cheatStyle.Render(fmt.Sprintf("⚠ %s: %s", models.DayName(c.Day), c.Description)) + "\n")
			continue
		}
		b.WriteString(cheatStyle.Render("⚠ "+c.Description) + "\n")
	}
	return b.String()
}
