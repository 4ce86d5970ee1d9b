package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/mealplan/internal/tui/components/planlist"
)

// chromeHeight covers the tab bar, status line, help line and doc margins
const chromeHeight = 6

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.resize(msg.Width, msg.Height)
		return m, nil
	}

	if cmd, ok := m.handleResult(msg); ok {
		return m, cmd
	}

	switch m.state {
	case StateNewPlan:
		return m, m.updateForm(msg)
	case StateConfirmDelete:
		return m, m.updateConfirmDelete(msg)
	}

	switch msg := msg.(type) {
	case planlist.NewPlanMsg:
		return m, m.startNewPlan()
	case planlist.OpenPlanMsg:
		m.setStatus("Loading plan...")
		return m, m.openPlan(msg.ID)
	case planlist.DeletePlanMsg:
		m.planToDelete = msg
		m.state = StateConfirmDelete
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab), key.Matches(msg, m.keys.Right):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab), key.Matches(msg, m.keys.Left):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StatePlans:
		m.planList, cmd = m.planList.Update(msg)
	case StateWeek:
		m.weekModel, cmd = m.weekModel.Update(msg)
	case StateGrocery:
		m.groceryModel, cmd = m.groceryModel.Update(msg)
	case StateRecipes:
		m.recipeList, cmd = m.recipeList.Update(msg)
	}
	return m, cmd
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	h, v := docStyle.GetFrameSize()
	w, ht := width-h, height-v-chromeHeight
	if ht < 1 {
		ht = 1
	}
	m.planList.SetSize(w, ht)
	m.weekModel.SetSize(w, ht)
	m.groceryModel.SetSize(w, ht)
	m.recipeList.SetSize(w, ht)
}

func (m *Model) updateForm(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.previousState
		return nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return tea.Batch(cmd, m.submitPlanForm())
	case huh.StateAborted:
		m.state = m.previousState
	}
	return cmd
}

func (m *Model) updateConfirmDelete(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	target := m.planToDelete
	switch keyMsg.String() {
	case "y", "Y":
		m.planToDelete = planlist.DeletePlanMsg{}
		m.state = StatePlans
		return m.deletePlan(target)
	case "n", "N", "esc", "q":
		m.planToDelete = planlist.DeletePlanMsg{}
		m.state = StatePlans
	}
	return nil
}
