package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MealSlot names one of the five fixed meals of a daily plan
type MealSlot string

const (
	SlotBreakfast      MealSlot = "breakfast"
	SlotMorningSnack   MealSlot = "morning_snack"
	SlotLunch          MealSlot = "lunch"
	SlotAfternoonSnack MealSlot = "afternoon_snack"
	SlotDinner         MealSlot = "dinner"
)

// AllMealSlots lists the meal slots in display order.
var AllMealSlots = []MealSlot{
	SlotBreakfast,
	SlotMorningSnack,
	SlotLunch,
	SlotAfternoonSnack,
	SlotDinner,
}

// Title returns a display label for the slot, e.g. "Morning Snack".
func (s MealSlot) Title() string {
	switch s {
	case SlotBreakfast:
		return "Breakfast"
	case SlotMorningSnack:
		return "Morning Snack"
	case SlotLunch:
		return "Lunch"
	case SlotAfternoonSnack:
		return "Afternoon Snack"
	case SlotDinner:
		return "Dinner"
	default:
		return string(s)
	}
}

// ParseMealSlot accepts a slot key ("morning_snack") or its dashed form
// ("morning-snack").
func ParseMealSlot(s string) (MealSlot, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for _, slot := range AllMealSlots {
		if string(slot) == normalized {
			return slot, nil
		}
	}
	return "", fmt.Errorf("unknown meal slot %q", s)
}

// FoodItem is a single food within a meal. It carries no nutrition data of
// its own; the macros live on the meal.
type FoodItem struct {
	Name        string `json:"name"`
	PortionSize string `json:"portion_size"`
	Emoji       string `json:"emoji"`
}

// UnmarshalJSON accepts both "portion_size" and the server's "portion" key.
func (f *FoodItem) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name        string `json:"name"`
		PortionSize string `json:"portion_size"`
		Portion     string `json:"portion"`
		Emoji       string `json:"emoji"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	f.Name = raw.Name
	f.PortionSize = raw.PortionSize
	if f.PortionSize == "" {
		f.PortionSize = raw.Portion
	}
	f.Emoji = raw.Emoji
	return nil
}

// MealEntry is one meal of the plan with its macro totals.
type MealEntry struct {
	Name     string     `json:"name"`
	Foods    []FoodItem `json:"foods"`
	Calories float64    `json:"calories"`
	Protein  float64    `json:"protein"` // grams
	Carbs    float64    `json:"carbs"`   // grams
	Fats     float64    `json:"fats"`    // grams
}

// MealPlan is a daily plan as produced by the remote service. The client
// never builds one itself.
type MealPlan struct {
	TotalCalories  float64   `json:"total_calories"`
	Breakfast      MealEntry `json:"breakfast"`
	MorningSnack   MealEntry `json:"morning_snack"`
	Lunch          MealEntry `json:"lunch"`
	AfternoonSnack MealEntry `json:"afternoon_snack"`
	Dinner         MealEntry `json:"dinner"`
	Hydration      string    `json:"hydration"`
	Notes          string    `json:"notes"`
}

// Meal returns the entry stored in the given slot.
func (p MealPlan) Meal(slot MealSlot) (MealEntry, bool) {
	switch slot {
	case SlotBreakfast:
		return p.Breakfast, true
	case SlotMorningSnack:
		return p.MorningSnack, true
	case SlotLunch:
		return p.Lunch, true
	case SlotAfternoonSnack:
		return p.AfternoonSnack, true
	case SlotDinner:
		return p.Dinner, true
	}
	return MealEntry{}, false
}

// IsEmpty reports whether the plan carries no content at all. A decoded "{}"
// is empty and must be treated as absent.
func (p MealPlan) IsEmpty() bool {
	if p.TotalCalories != 0 || p.Hydration != "" || p.Notes != "" {
		return false
	}
	for _, slot := range AllMealSlots {
		m, _ := p.Meal(slot)
		if m.Name != "" || len(m.Foods) > 0 || m.Calories != 0 {
			return false
		}
	}
	return true
}

// MacroTotals sums the macros of all five meals.
func (p MealPlan) MacroTotals() (calories, protein, carbs, fats float64) {
	for _, slot := range AllMealSlots {
		m, _ := p.Meal(slot)
		calories += m.Calories
		protein += m.Protein
		carbs += m.Carbs
		fats += m.Fats
	}
	return calories, protein, carbs, fats
}
