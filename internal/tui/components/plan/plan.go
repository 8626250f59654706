package plan

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ChandelAnish/NutriTrack/internal/models"
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			MarginBottom(1)

	doneCardStyle = cardStyle.
			BorderForeground(lipgloss.Color("42"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	caloriesStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))

	macroStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	noteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// progressHeight is the rows below the viewport taken by the progress line.
const progressHeight = 2

type Model struct {
	viewport   viewport.Model
	progress   progress.Model
	Plan       *models.MealPlan
	completion models.CompletionState
	width      int
	height     int
}

func New(width, height int) Model {
	return Model{
		viewport:   viewport.New(width, max(height-progressHeight, 0)),
		progress:   progress.New(progress.WithDefaultGradient()),
		completion: models.NewCompletionState(),
	}
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
		return "No meal plan yet. Press 'g' to generate one."
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewport.View(),
		"",
		m.progressView(),
	)
}

func (m Model) progressView() string {
	return fmt.Sprintf("%s  %d/%d meals eaten",
		m.progress.ViewAs(m.completion.Progress()/100),
		m.completion.CompletedCount(), len(models.AllMealSlots))
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = max(height-progressHeight, 0)
	m.progress.Width = min(max(width-20, 10), 60)
	m.Render()
}

// SetPlan shows plan with every meal unchecked.
func (m *Model) SetPlan(plan models.MealPlan) {
	m.Plan = &plan
	m.completion = models.NewCompletionState()
	m.viewport.GotoTop()
	m.Render()
}

// ResetCompletion unchecks every meal, as when the view is shown again.
func (m *Model) ResetCompletion() {
	m.completion = models.NewCompletionState()
	m.Render()
}

// Toggle flips the eaten mark of slot.
func (m *Model) Toggle(slot models.MealSlot) error {
	if err := m.completion.Toggle(slot); err != nil {
		return err
	}
	m.Render()
	return nil
}

func (m Model) Completion() models.CompletionState {
	return m.completion
}

func (m *Model) Render() {
	if m.Plan == nil {
		m.viewport.SetContent("No meal plan loaded.")
		return
	}

	var b strings.Builder
	calories, protein, carbs, fats := m.Plan.MacroTotals()
	b.WriteString(titleStyle.Render(fmt.Sprintf("Daily total: %.0f kcal", m.Plan.TotalCalories)))
	b.WriteString("\n")
	b.WriteString(macroStyle.Render(fmt.Sprintf("Meals: %.0f kcal · P %.0fg · C %.0fg · F %.0fg", calories, protein, carbs, fats)))
	b.WriteString("\n\n")

	cardWidth := max(m.width-4, 20)
	for i, slot := range models.AllMealSlots {
		meal, _ := m.Plan.Meal(slot)
		b.WriteString(m.card(i+1, slot, meal, cardWidth))
		b.WriteString("\n")
	}

	if m.Plan.Hydration != "" {
		b.WriteString(noteStyle.Render("💧 " + m.Plan.Hydration))
		b.WriteString("\n")
	}
	if m.Plan.Notes != "" {
		b.WriteString(noteStyle.Render(m.Plan.Notes))
		b.WriteString("\n")
	}
	m.viewport.SetContent(b.String())
}

func (m Model) card(n int, slot models.MealSlot, meal models.MealEntry, width int) string {
	check := "[ ]"
	style := cardStyle
	if m.completion.Done(slot) {
		check = "[✓]"
		style = doneCardStyle
	}

	header := fmt.Sprintf("%s %d. %s", check, n, slot.Title())
	if meal.Name != "" {
		header += ": " + meal.Name
	}

	lines := []string{
		titleStyle.Render(header) + "  " + caloriesStyle.Render(fmt.Sprintf("%.0f kcal", meal.Calories)),
	}
	for _, food := range meal.Foods {
		line := "  " + food.Name
		if food.Emoji != "" {
			line = "  " + food.Emoji + " " + food.Name
		}
		if food.PortionSize != "" {
			line += " (" + food.PortionSize + ")"
		}
		lines = append(lines, line)
	}
	lines = append(lines, macroStyle.Render(fmt.Sprintf("P %.0fg · C %.0fg · F %.0fg", meal.Protein, meal.Carbs, meal.Fats)))

	return style.Width(width).Render(strings.Join(lines, "\n"))
}
