package profile

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ChandelAnish/NutriTrack/internal/models"
)

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(22)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	tagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1).
			MarginRight(1)
)

type Model struct {
	Profile models.UserProfile
	Cached  bool
	width   int
}

func New(p models.UserProfile, cached bool) Model {
	return Model{Profile: p, Cached: cached}
}

func (m *Model) SetProfile(p models.UserProfile, cached bool) {
	m.Profile = p
	m.Cached = cached
}

func (m *Model) SetWidth(width int) {
	m.width = width
}

func (m Model) View() string {
	p := m.Profile
	rows := [][2]string{
		{"Email", p.Email},
		{"Age", fmt.Sprintf("%d", p.Age)},
		{"Weight", fmt.Sprintf("%g kg", p.Weight)},
		{"Target weight", fmt.Sprintf("%g kg", p.TargetWeight)},
		{"Height", fmt.Sprintf("%g cm", p.Height)},
		{"Gender", string(p.Gender)},
		{"Activity", p.DailyPhysicalActivity},
		{"Dietary preferences", tags(p.DietaryPreferences)},
		{"Allergies", tags(p.Allergies)},
	}

	var b strings.Builder
	if !m.Cached {
		b.WriteString(labelStyle.UnsetWidth().Render("No profile saved yet; these are the defaults."))
		b.WriteString("\n\n")
	}
	for _, r := range rows {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(r[0]), valueStyle.Render(r[1])))
		b.WriteString("\n")
	}
	if m.width > 0 {
		return lipgloss.NewStyle().MaxWidth(m.width).Render(b.String())
	}
	return b.String()
}

func tags(values []string) string {
	if len(values) == 0 {
		return "none"
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = tagStyle.Render(v)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, out...)
}
