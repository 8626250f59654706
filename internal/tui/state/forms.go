package state

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ChandelAnish/NutriTrack/internal/models"
)

// ProfileFormModel holds the profile editor's raw field values
type ProfileFormModel struct {
	Age          string
	Weight       string
	TargetWeight string
	Height       string
	Gender       models.Gender
	Activity     string
	Dietary      []string
	Allergies    []string
}

// SignInFormModel represents the form model for signing in
type SignInFormModel struct {
	Email    string
	Password string
	Remember bool
}

// SignUpFormModel represents the form model for registration
type SignUpFormModel struct {
	Email    string
	Password string
	Profile  *ProfileFormModel
}

// ConfirmationFormModel represents a yes/no prompt
type ConfirmationFormModel struct {
	Confirmed bool
}

// NewProfileFormModel fills the form from p. Zero numbers start blank.
func NewProfileFormModel(p models.UserProfile) *ProfileFormModel {
	fm := &ProfileFormModel{
		Gender:    p.Gender,
		Activity:  p.DailyPhysicalActivity,
		Dietary:   append([]string(nil), p.DietaryPreferences...),
		Allergies: append([]string(nil), p.Allergies...),
	}
	if p.Age != 0 {
		fm.Age = strconv.Itoa(p.Age)
	}
	fm.Weight = formatNumber(p.Weight)
	fm.TargetWeight = formatNumber(p.TargetWeight)
	fm.Height = formatNumber(p.Height)
	return fm
}

// Apply copies the form values onto base. Email is left as it is.
func (fm *ProfileFormModel) Apply(base models.UserProfile) (models.UserProfile, error) {
	p := base
	var err error
	if p.Age, err = ParseAge(fm.Age); err != nil {
		return base, err
	}
	if p.Weight, err = ParseMeasure("weight", fm.Weight); err != nil {
		return base, err
	}
	if p.TargetWeight, err = ParseMeasure("target weight", fm.TargetWeight); err != nil {
		return base, err
	}
	if p.Height, err = ParseMeasure("height", fm.Height); err != nil {
		return base, err
	}
	p.Gender = fm.Gender
	p.DailyPhysicalActivity = fm.Activity
	p.DietaryPreferences = append([]string{}, fm.Dietary...)
	p.Allergies = append([]string{}, fm.Allergies...)
	p.Normalize()
	return p, nil
}

// ParseAge reads a whole number of years. Blank means 0.
func ParseAge(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	age, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("age must be a whole number")
	}
	if age < 0 {
		return 0, fmt.Errorf("age cannot be negative")
	}
	return age, nil
}

// ParseMeasure reads a non-negative whole number. Blank means 0.
func ParseMeasure(name, s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", name)
	}
	if v < 0 {
		return 0, fmt.Errorf("%s cannot be negative", name)
	}
	if v != math.Trunc(v) {
		return 0, fmt.Errorf("%s must be a whole number", name)
	}
	return v, nil
}

func formatNumber(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
