package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	apperrors "github.com/ChandelAnish/NutriTrack/internal/errors"
	"github.com/ChandelAnish/NutriTrack/internal/models"
	"github.com/ChandelAnish/NutriTrack/internal/reconciler"
	"github.com/ChandelAnish/NutriTrack/internal/tui/handlers"
	"github.com/ChandelAnish/NutriTrack/internal/tui/state"
)

// chromeHeight is the rows used by tabs, status line, help and padding.
const chromeHeight = 7

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.planModel.SetSize(max(msg.Width-4, 0), max(msg.Height-chromeHeight, 0))
		m.profileModel.SetWidth(msg.Width - 4)
		m.prompt.Width = max(msg.Width-8, 10)
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case planLoadedMsg:
		return m.handlePlanLoaded(msg)

	case profileSavedMsg:
		return m.handleProfileSaved(msg)

	case signedInMsg:
		m.loading = false
		if msg.err != nil {
			m.setStatus(apperrors.UserMessage(msg.err), true)
			return m.openSignIn(msg.user.Email)
		}
		m.refreshProfile()
		return m.startLoading("Loading your meal plan...", m.app.Reconciler.Load)

	case signedOutMsg:
		m.loading = false
		if msg.err != nil {
			m.setStatus(apperrors.UserMessage(msg.err), true)
			m.state = StateProfile
			return m, nil
		}
		m.planModel.Plan = nil
		m.planModel.Render()
		m.planErr = nil
		m.refreshProfile()
		m.setStatus("Signed out", false)
		return m.openSignIn("")
	}

	switch m.state {
	case StateEditProfile, StateSignIn, StateConfirmSignOut:
		return m.updateForm(msg)
	case StateEditPrompt:
		return m.updatePrompt(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	if m.state == StatePlan {
		m.planModel, cmd = m.planModel.Update(msg)
	}
	return m, cmd
}

func (m Model) handlePlanLoaded(msg planLoadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		if errors.Is(msg.err, reconciler.ErrUnauthenticated) {
			return m.openSignIn("")
		}
		// A failed edit or regeneration leaves the shown plan in place
		if m.planModel.Plan != nil {
			m.setStatus(apperrors.UserMessage(msg.err), true)
			return m, nil
		}
		m.planErr = msg.err
		return m, nil
	}

	m.planErr = nil
	m.source = msg.source
	m.planModel.SetPlan(msg.plan)
	switch msg.source {
	case reconciler.SourceGenerated:
		m.setStatus("New meal plan generated", false)
	case reconciler.SourceEdited:
		m.setStatus("Meal plan updated", false)
	}
	return m, nil
}

func (m Model) handleProfileSaved(msg profileSavedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	m.refreshProfile()
	if msg.err != nil {
		m.setStatus(apperrors.UserMessage(msg.err), true)
		return m, nil
	}
	m.planErr = nil
	m.source = m.app.Reconciler.Source()
	m.planModel.SetPlan(msg.plan)
	m.state = StatePlan
	m.setStatus("Profile saved and a new meal plan generated", false)
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Tab), key.Matches(msg, m.keys.ShiftTab):
		return m.switchTab()
	}

	switch m.state {
	case StatePlan:
		return m.handlePlanKey(msg)
	case StateProfile:
		return m.handleProfileKey(msg)
	}
	return m, nil
}

// switchTab flips between the two tabs. Coming back to the plan counts as
// showing it again: completion marks reset and the plan is reloaded.
func (m Model) switchTab() (tea.Model, tea.Cmd) {
	if m.state == StatePlan {
		m.refreshProfile()
		m.state = StateProfile
		return m, nil
	}

	m.state = StatePlan
	m.planModel.ResetCompletion()
	if m.loading {
		return m, nil
	}
	return m.startLoading("Loading your meal plan...", m.app.Reconciler.OnResume)
}

func (m Model) handlePlanKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Retry):
		if m.planErr == nil || m.loading {
			return m, nil
		}
		return m.startLoading("Retrying...", m.app.Reconciler.Retry)

	case key.Matches(msg, m.keys.Regenerate):
		if m.loading {
			return m, nil
		}
		return m.startLoading("Generating a new meal plan...", m.app.Reconciler.Regenerate)

	case key.Matches(msg, m.keys.Edit):
		if m.loading {
			return m, nil
		}
		if m.planModel.Plan == nil {
			m.setStatus(apperrors.UserMessage(reconciler.ErrNoPlan), true)
			return m, nil
		}
		m.status = ""
		m.state = StateEditPrompt
		m.prompt.Reset()
		return m, tea.Batch(m.prompt.Focus(), textinput.Blink)

	case key.Matches(msg, m.keys.Toggle):
		if m.planModel.Plan == nil || len(msg.Runes) != 1 {
			return m, nil
		}
		i := int(msg.Runes[0] - '1')
		if i >= 0 && i < len(models.AllMealSlots) {
			_ = m.planModel.Toggle(models.AllMealSlots[i])
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.planModel, cmd = m.planModel.Update(msg)
	return m, cmd
}

func (m Model) handleProfileKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Edit):
		if m.loading {
			return m, nil
		}
		current, _ := m.app.Accounts.Profile(m.app.Ctx)
		m.profileForm = state.NewProfileFormModel(current)
		m.form = handlers.NewProfileForm(m.profileForm)
		m.previousState = StateProfile
		m.state = StateEditProfile
		return m, m.form.Init()

	case key.Matches(msg, m.keys.SignOut):
		m.confirmForm = &state.ConfirmationFormModel{}
		m.form = handlers.NewConfirmForm(m.confirmForm, "Sign out? Your cached plan and profile will be removed.")
		m.previousState = StateProfile
		m.state = StateConfirmSignOut
		return m, m.form.Init()
	}
	return m, nil
}

func (m Model) updatePrompt(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, m.keys.Cancel):
			m.prompt.Blur()
			m.state = StatePlan
			return m, nil

		case key.Matches(km, m.keys.Submit):
			text := m.prompt.Value()
			// A blank prompt never reaches the service
			if err := m.app.Validator.ValidatePrompt(text).FirstErr(); err != nil {
				m.setStatus(err.Error(), true)
				return m, nil
			}
			m.prompt.Blur()
			m.state = StatePlan
			return m.startLoading("Updating your meal plan...", func(ctx context.Context) (models.MealPlan, error) {
				return m.app.Reconciler.SubmitEdit(ctx, text)
			})
		}
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.Type == tea.KeyEsc {
		return m.cancelForm()
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		next, done := m.completeForm()
		return next, tea.Batch(cmd, done)
	case huh.StateAborted:
		return m.cancelForm()
	}
	return m, cmd
}

func (m Model) cancelForm() (tea.Model, tea.Cmd) {
	if m.state == StateSignIn {
		// Nothing to show without an account
		m.quitting = true
		return m, tea.Quit
	}
	m.form = nil
	m.state = m.previousState
	return m, nil
}

func (m Model) completeForm() (tea.Model, tea.Cmd) {
	switch m.state {
	case StateEditProfile:
		m.state = m.previousState
		m.form = nil
		current, _ := m.app.Accounts.Profile(m.app.Ctx)
		updated, err := m.profileForm.Apply(current)
		if err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		m.loading = true
		m.loadingText = "Saving profile and generating a new meal plan..."
		return m, tea.Batch(m.spinner.Tick, m.saveProfile(updated))

	case StateSignIn:
		m.state = StatePlan
		m.form = nil
		m.loading = true
		m.loadingText = "Signing in..."
		fm := m.signInForm
		return m, tea.Batch(m.spinner.Tick, m.signIn(fm.Email, fm.Password, fm.Remember))

	case StateConfirmSignOut:
		m.state = m.previousState
		m.form = nil
		if !m.confirmForm.Confirmed {
			return m, nil
		}
		return m, m.signOut()
	}
	return m, nil
}

func (m Model) openSignIn(email string) (tea.Model, tea.Cmd) {
	m.signInForm = &state.SignInFormModel{Email: email}
	m.form = handlers.NewSignInForm(m.signInForm, m.app.Validator)
	m.state = StateSignIn
	return m, m.form.Init()
}

func (m Model) startLoading(text string, fn func(context.Context) (models.MealPlan, error)) (tea.Model, tea.Cmd) {
	m.loading = true
	m.loadingText = text
	m.status = ""
	return m, tea.Batch(m.spinner.Tick, m.runPlan(fn))
}

func (m *Model) refreshProfile() {
	p, cached := m.app.Accounts.Profile(m.app.Ctx)
	m.profileModel.SetProfile(p, cached)
}

func (m *Model) setStatus(text string, isError bool) {
	m.status = text
	m.statusIsError = isError
}
