package tui

import (
	"github.com/charmbracelet/lipgloss"

	apperrors "github.com/ChandelAnish/NutriTrack/internal/errors"
	"github.com/ChandelAnish/NutriTrack/internal/reconciler"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case StatePlan:
		content = m.viewPlan()
	case StateProfile:
		content = m.viewProfile()
	case StateEditPrompt:
		content = m.viewEditPrompt()
	case StateEditProfile, StateConfirmSignOut, StateSignIn:
		content = docStyle.Render(m.form.View())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		m.viewStatus(),
		content,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	tabTitles := []string{"Meal Plan", "Profile"}
	active := m.state
	switch m.state {
	case StateEditPrompt:
		active = StatePlan
	case StateEditProfile, StateConfirmSignOut:
		active = StateProfile
	}
	for i, title := range tabTitles {
		if active == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	if m.state == StatePlan && m.source != reconciler.SourceNone {
		tabs = append(tabs, sourceStyle.Render("("+m.source.String()+")"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	switch {
	case m.loading:
		return m.spinner.View() + " " + warningStyle.Render(m.loadingText)
	case m.status == "":
		return ""
	case m.statusIsError:
		return dangerStyle.Render("✗ " + m.status)
	default:
		return successStyle.Render("✓ " + m.status)
	}
}

func (m Model) viewPlan() string {
	if m.planErr != nil && m.planModel.Plan == nil {
		return lipgloss.Place(m.width, max(m.height-chromeHeight, 3),
			lipgloss.Center, lipgloss.Center,
			lipgloss.JoinVertical(lipgloss.Center,
				dangerStyle.Render(apperrors.UserMessage(m.planErr)),
				"",
				"[r] Retry",
			),
		)
	}
	if m.loading && m.planModel.Plan == nil {
		return docStyle.Render("")
	}
	return docStyle.Render(m.planModel.View())
}

func (m Model) viewProfile() string {
	return docStyle.Render(m.profileModel.View())
}

func (m Model) viewEditPrompt() string {
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		"How should the meal plan change?",
		"",
		m.prompt.View(),
	))
}
