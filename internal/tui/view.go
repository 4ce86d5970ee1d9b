package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StatePlans:
		content = docStyle.Render(m.planList.View())
	case StateWeek:
		content = docStyle.Render(m.weekModel.View())
	case StateGrocery:
		content = docStyle.Render(m.groceryModel.View())
	case StateRecipes:
		content = docStyle.Render(m.recipeList.View())
	case StateNewPlan:
		content = docStyle.Render(m.form.View())
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusIsError {
		return dangerStyle.Padding(0, 1).Render(m.status)
	}
	return statusStyle.Render(m.status)
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, m.height-chromeHeight,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Delete meal plan %q?", m.planToDelete.Name)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
