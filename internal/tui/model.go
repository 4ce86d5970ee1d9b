package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	apperrors "github.com/julianstephens/mealplan/internal/errors"
	"github.com/julianstephens/mealplan/internal/logger"
	"github.com/julianstephens/mealplan/internal/models"
	"github.com/julianstephens/mealplan/internal/service"
	"github.com/julianstephens/mealplan/internal/tui/components/grocery"
	"github.com/julianstephens/mealplan/internal/tui/components/planlist"
	"github.com/julianstephens/mealplan/internal/tui/components/recipes"
	"github.com/julianstephens/mealplan/internal/tui/components/week"
	"github.com/julianstephens/mealplan/internal/tui/forms"
)

type SessionState int

// Tab states come first so they can be cycled by index
const (
	StatePlans SessionState = iota
	StateWeek
	StateGrocery
	StateRecipes
	StateNewPlan
	StateConfirmDelete
)

const tabCount = 4

var tabTitles = [tabCount]string{"Plans", "Week", "Grocery", "Recipes"}

type Model struct {
	ctx           context.Context
	svc           *service.Service
	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	planList      planlist.Model
	weekModel     week.Model
	groceryModel  grocery.Model
	recipeList    recipes.Model
	form          *huh.Form
	planForm      *forms.PlanFormModel
	openPlanID    string
	planToDelete  planlist.DeletePlanMsg
	status        string
	statusIsError bool
	quitting      bool
	width         int
	height        int
}

func NewModel(ctx context.Context, svc *service.Service) Model {
	return Model{
		ctx:          ctx,
		svc:          svc,
		state:        StatePlans,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		planList:     planlist.New(nil, 0, 0),
		weekModel:    week.New(0, 0),
		groceryModel: grocery.New(0, 0),
		recipeList:   recipes.New(nil, 0, 0),
	}
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StatePlans:
		keys = append(keys, m.keys.Open, m.keys.New, m.keys.Delete)
	case StateWeek, StateGrocery:
		keys = append(keys, m.keys.Up, m.keys.Down)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right}

	var actions []key.Binding
	if m.state == StatePlans {
		actions = []key.Binding{m.keys.Open, m.keys.New, m.keys.Delete}
	}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadPlans(), m.loadRecipes())
}

// Service calls run as commands and report back with these messages

type plansLoadedMsg struct {
	plans []models.MealPlan
	err   error
}

type recipesLoadedMsg struct {
	recipes []models.Recipe
	err     error
}

type planOpenedMsg struct {
	view  service.PlanView
	items []models.GroceryItem
	err   error
}

type planCreatedMsg struct {
	plan models.MealPlan
	err  error
}

type planDeletedMsg struct {
	target planlist.DeletePlanMsg
	err    error
}

func (m *Model) setError(err error) {
	logger.Warn("TUI action failed", "error", err)
	m.status = apperrors.Format(err)
	m.statusIsError = true
}

func (m *Model) setStatus(format string, args ...interface{}) {
	m.status = fmt.Sprintf(format, args...)
	m.statusIsError = false
}

func (m Model) loadPlans() tea.Cmd {
	ctx, svc := m.ctx, m.svc
	return func() tea.Msg {
		plans, err := svc.ListPlans(ctx, 0, 0)
		return plansLoadedMsg{plans: plans, err: err}
	}
}

func (m Model) loadRecipes() tea.Cmd {
	ctx, svc := m.ctx, m.svc
	return func() tea.Msg {
		recipes, err := svc.ListRecipes(ctx, 0, 0)
		return recipesLoadedMsg{recipes: recipes, err: err}
	}
}

// openPlan loads the week and grocery views for id
func (m Model) openPlan(id string) tea.Cmd {
	ctx, svc := m.ctx, m.svc
	return func() tea.Msg {
		view, err := svc.GetPlanView(ctx, id)
		if err != nil {
			return planOpenedMsg{err: err}
		}
		items, err := svc.GroceryList(ctx, id)
		return planOpenedMsg{view: view, items: items, err: err}
	}
}

func (m Model) createPlan(name string, c models.PlanConstraints) tea.Cmd {
	ctx, svc := m.ctx, m.svc
	return func() tea.Msg {
		plan, err := svc.CreatePlan(ctx, name, c)
		return planCreatedMsg{plan: plan, err: err}
	}
}

func (m Model) deletePlan(target planlist.DeletePlanMsg) tea.Cmd {
	ctx, svc := m.ctx, m.svc
	return func() tea.Msg {
		return planDeletedMsg{target: target, err: svc.DeletePlan(ctx, target.ID)}
	}
}

func (m *Model) startNewPlan() tea.Cmd {
	c, err := m.svc.DefaultConstraints(m.ctx)
	if err != nil {
		m.setError(err)
		return nil
	}
	m.planForm = forms.NewPlanFormModel("", c)
	m.form = forms.NewPlanForm(m.planForm)
	m.previousState = m.state
	m.state = StateNewPlan
	return m.form.Init()
}

// submitPlanForm checks the form locally and hands generation to a command
func (m *Model) submitPlanForm() tea.Cmd {
	m.state = m.previousState
	c, err := m.planForm.Constraints()
	if err != nil {
		m.setError(err)
		return nil
	}
	m.setStatus("Generating %s...", m.planForm.Name)
	return m.createPlan(m.planForm.Name, c)
}

// handleResult applies a finished service call. ok is false for other messages.
func (m *Model) handleResult(msg tea.Msg) (cmd tea.Cmd, ok bool) {
	switch msg := msg.(type) {
	case plansLoadedMsg:
		if msg.err != nil {
			m.setError(msg.err)
		} else {
			m.planList.SetPlans(msg.plans)
		}
	case recipesLoadedMsg:
		if msg.err != nil {
			m.setError(msg.err)
		} else {
			m.recipeList.SetRecipes(msg.recipes)
		}
	case planOpenedMsg:
		if msg.err != nil {
			m.setError(msg.err)
			break
		}
		m.openPlanID = msg.view.Plan.ID
		m.weekModel.SetView(msg.view)
		m.groceryModel.SetItems(msg.view.Plan.Name, msg.items)
		// an open form or confirmation keeps focus
		if m.state < tabCount {
			m.state = StateWeek
		}
		if len(msg.view.Conflicts) > 0 {
			m.setStatus("%s opened with %d warning(s)", msg.view.Plan.Name, len(msg.view.Conflicts))
		} else {
			m.setStatus("%s opened", msg.view.Plan.Name)
		}
	case planCreatedMsg:
		if msg.err != nil {
			m.setError(msg.err)
			break
		}
		return tea.Batch(m.loadPlans(), m.openPlan(msg.plan.ID)), true
	case planDeletedMsg:
		if msg.err != nil {
			m.setError(msg.err)
			break
		}
		if msg.target.ID == m.openPlanID {
			m.openPlanID = ""
			m.weekModel.Clear()
			m.groceryModel.Clear()
		}
		m.setStatus("Deleted %s (restore with 'mealplan plan restore %s')", msg.target.Name, msg.target.ID)
		return m.loadPlans(), true
	default:
		return nil, false
	}
	return nil, true
}
