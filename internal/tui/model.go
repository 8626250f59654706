package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/ChandelAnish/NutriTrack/internal/cli"
	"github.com/ChandelAnish/NutriTrack/internal/constants"
	"github.com/ChandelAnish/NutriTrack/internal/models"
	"github.com/ChandelAnish/NutriTrack/internal/reconciler"
	"github.com/ChandelAnish/NutriTrack/internal/tui/components/plan"
	"github.com/ChandelAnish/NutriTrack/internal/tui/components/profile"
	"github.com/ChandelAnish/NutriTrack/internal/tui/state"
)

type SessionState = constants.SessionState

const (
	StatePlan           = constants.StatePlan
	StateProfile        = constants.StateProfile
	StateEditPrompt     = constants.StateEditPrompt
	StateEditProfile    = constants.StateEditProfile
	StateConfirmSignOut = constants.StateConfirmSignOut
	StateSignIn         = constants.StateSignIn
)

// planLoadedMsg carries the result of any reconciler call.
type planLoadedMsg struct {
	plan   models.MealPlan
	source reconciler.Source
	err    error
}

type profileSavedMsg struct {
	user models.User
	plan models.MealPlan
	err  error
}

type signedInMsg struct {
	user models.User
	err  error
}

type signedOutMsg struct {
	err error
}

type Model struct {
	app           *cli.Context
	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	spinner       spinner.Model
	prompt        textinput.Model
	planModel     plan.Model
	profileModel  profile.Model
	form          *huh.Form
	profileForm   *state.ProfileFormModel
	signInForm    *state.SignInFormModel
	confirmForm   *state.ConfirmationFormModel
	loading       bool
	loadingText   string
	planErr       error  // last failed load; cleared on success
	status        string // one-line notice under the tabs
	statusIsError bool
	source        reconciler.Source
	quitting      bool
	width         int
	height        int
}

func NewModel(app *cli.Context) Model {
	p, cached := app.Accounts.Profile(app.Ctx)

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = warningStyle

	ti := textinput.New()
	ti.Placeholder = "e.g. make lunch vegetarian and add more protein"
	ti.CharLimit = 500

	return Model{
		app:          app,
		state:        StatePlan,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		spinner:      sp,
		prompt:       ti,
		planModel:    plan.New(0, 0),
		profileModel: profile.New(p, cached),
		loading:      true,
		loadingText:  "Loading your meal plan...",
	}
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StatePlan:
		if m.planErr != nil {
			keys = append(keys, m.keys.Retry)
		}
		keys = append(keys, m.keys.Toggle, m.keys.Edit, m.keys.Regenerate)
	case StateProfile:
		keys = append(keys, m.keys.Edit, m.keys.SignOut)
	case StateEditPrompt:
		keys = []key.Binding{m.keys.Submit, m.keys.Cancel}
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}

	var actions []key.Binding
	switch m.state {
	case StatePlan:
		actions = []key.Binding{m.keys.Toggle, m.keys.Edit, m.keys.Regenerate, m.keys.Retry}
	case StateProfile:
		actions = []key.Binding{m.keys.Edit, m.keys.SignOut}
	case StateEditPrompt:
		actions = []key.Binding{m.keys.Submit, m.keys.Cancel}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.runPlan(m.app.Reconciler.Load))
}

// runPlan runs a reconciler operation off the update loop.
func (m Model) runPlan(fn func(context.Context) (models.MealPlan, error)) tea.Cmd {
	ctx := m.app.Ctx
	rec := m.app.Reconciler
	return func() tea.Msg {
		p, err := fn(ctx)
		return planLoadedMsg{plan: p, source: rec.Source(), err: err}
	}
}

func (m Model) saveProfile(p models.UserProfile) tea.Cmd {
	ctx := m.app.Ctx
	accounts := m.app.Accounts
	return func() tea.Msg {
		user, mealPlan, err := accounts.SaveProfile(ctx, p)
		return profileSavedMsg{user: user, plan: mealPlan, err: err}
	}
}

func (m Model) signIn(email, password string, remember bool) tea.Cmd {
	ctx := m.app.Ctx
	accounts := m.app.Accounts
	return func() tea.Msg {
		user, err := accounts.SignIn(ctx, email, password, remember)
		return signedInMsg{user: user, err: err}
	}
}

func (m Model) signOut() tea.Cmd {
	ctx := m.app.Ctx
	accounts := m.app.Accounts
	return func() tea.Msg {
		return signedOutMsg{err: accounts.SignOut(ctx)}
	}
}
