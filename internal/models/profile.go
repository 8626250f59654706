package models

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ChandelAnish/NutriTrack/internal/constants"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// ParseGender returns the gender for s, case-insensitively.
func ParseGender(s string) (Gender, error) {
	switch Gender(strings.ToLower(strings.TrimSpace(s))) {
	case GenderMale:
		return GenderMale, nil
	case GenderFemale:
		return GenderFemale, nil
	case GenderOther:
		return GenderOther, nil
	}
	return "", fmt.Errorf("invalid gender %q (want male, female or other)", s)
}

// UserProfile holds the attributes the meal-plan service needs. JSON keys
// follow the backend's user schema.
type UserProfile struct {
	Email                 string   `json:"email"`
	Age                   int      `json:"age"`
	Weight                float64  `json:"weight"`       // kg
	TargetWeight          float64  `json:"targetWeight"` // kg
	Height                float64  `json:"height"`       // cm
	Gender                Gender   `json:"gender"`
	DailyPhysicalActivity string   `json:"daily_physical_activity"`
	DietaryPreferences    []string `json:"dietary_preferences"`
	Allergies             []string `json:"allergies"`
}

// DefaultProfile is what the profile editor starts from when nothing is cached.
func DefaultProfile() UserProfile {
	return UserProfile{
		Gender:                constants.DefaultGender,
		DailyPhysicalActivity: constants.DefaultActivityLevel,
		DietaryPreferences:    []string{},
		Allergies:             []string{},
	}
}

// IsZero reports whether p is an empty object, which callers treat as absent.
func (p UserProfile) IsZero() bool {
	return p.Email == "" &&
		p.Age == 0 &&
		p.Weight == 0 &&
		p.TargetWeight == 0 &&
		p.Height == 0 &&
		p.Gender == "" &&
		p.DailyPhysicalActivity == "" &&
		len(p.DietaryPreferences) == 0 &&
		len(p.Allergies) == 0
}

// Normalize trims and de-duplicates the tag sets and fills the defaults for
// empty gender and activity.
func (p *UserProfile) Normalize() {
	p.Email = strings.TrimSpace(p.Email)
	p.DailyPhysicalActivity = strings.TrimSpace(p.DailyPhysicalActivity)
	if p.DailyPhysicalActivity == "" {
		p.DailyPhysicalActivity = constants.DefaultActivityLevel
	}
	if p.Gender == "" {
		p.Gender = constants.DefaultGender
	}
	p.DietaryPreferences = dedupeTags(p.DietaryPreferences)
	p.Allergies = dedupeTags(p.Allergies)
}

func (p *UserProfile) AddDietaryPreference(tag string) bool {
	return addTag(&p.DietaryPreferences, tag)
}

func (p *UserProfile) RemoveDietaryPreference(tag string) bool {
	return removeTag(&p.DietaryPreferences, tag)
}

// ToggleDietaryPreference adds tag if missing and removes it otherwise.
func (p *UserProfile) ToggleDietaryPreference(tag string) {
	if !removeTag(&p.DietaryPreferences, tag) {
		addTag(&p.DietaryPreferences, tag)
	}
}

func (p *UserProfile) AddAllergy(tag string) bool {
	return addTag(&p.Allergies, tag)
}

func (p *UserProfile) RemoveAllergy(tag string) bool {
	return removeTag(&p.Allergies, tag)
}

// ToggleAllergy adds tag if missing and removes it otherwise.
func (p *UserProfile) ToggleAllergy(tag string) {
	if !removeTag(&p.Allergies, tag) {
		addTag(&p.Allergies, tag)
	}
}

// addTag appends a trimmed tag unless it is empty or already present.
func addTag(tags *[]string, tag string) bool {
	tag = strings.TrimSpace(tag)
	if tag == "" || slices.Contains(*tags, tag) {
		return false
	}
	*tags = append(*tags, tag)
	return true
}

func removeTag(tags *[]string, tag string) bool {
	tag = strings.TrimSpace(tag)
	i := slices.Index(*tags, tag)
	if i < 0 {
		return false
	}
	*tags = slices.Delete(*tags, i, i+1)
	return true
}

func dedupeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		addTag(&out, tag)
	}
	return out
}
