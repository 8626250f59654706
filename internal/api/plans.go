package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ChandelAnish/NutriTrack/internal/constants"
	"github.com/ChandelAnish/NutriTrack/internal/models"
)

const (
	OpFetchPlan    = "fetch_plan"
	OpGeneratePlan = "generate_plan"
	OpUpdatePlan   = "update_plan"
	OpSavePlan     = "save_plan"
)

// updatePlanRequest is the body of a prompt-driven edit.
type updatePlanRequest struct {
	Prompt           string          `json:"prompt"`
	PreviousMealPlan models.MealPlan `json:"previousMealPlan"`
}

// The plan store validates foods against its own schema, which names the
// portion "portion". The local cache keeps "portion_size".
type wireFood struct {
	Name    string `json:"name"`
	Portion string `json:"portion"`
	Emoji   string `json:"emoji"`
}

type wireMeal struct {
	Name     string     `json:"name"`
	Foods    []wireFood `json:"foods"`
	Calories float64    `json:"calories"`
	Protein  float64    `json:"protein"`
	Carbs    float64    `json:"carbs"`
	Fats     float64    `json:"fats"`
}

type wirePlan struct {
	TotalCalories  float64  `json:"total_calories"`
	Breakfast      wireMeal `json:"breakfast"`
	MorningSnack   wireMeal `json:"morning_snack"`
	Lunch          wireMeal `json:"lunch"`
	AfternoonSnack wireMeal `json:"afternoon_snack"`
	Dinner         wireMeal `json:"dinner"`
	Hydration      string   `json:"hydration"`
	Notes          string   `json:"notes"`
}

func toWireMeal(m models.MealEntry) wireMeal {
	foods := make([]wireFood, len(m.Foods))
	for i, f := range m.Foods {
		foods[i] = wireFood{Name: f.Name, Portion: f.PortionSize, Emoji: f.Emoji}
	}
	return wireMeal{
		Name:     m.Name,
		Foods:    foods,
		Calories: m.Calories,
		Protein:  m.Protein,
		Carbs:    m.Carbs,
		Fats:     m.Fats,
	}
}

func toWirePlan(p models.MealPlan) wirePlan {
	return wirePlan{
		TotalCalories:  p.TotalCalories,
		Breakfast:      toWireMeal(p.Breakfast),
		MorningSnack:   toWireMeal(p.MorningSnack),
		Lunch:          toWireMeal(p.Lunch),
		AfternoonSnack: toWireMeal(p.AfternoonSnack),
		Dinner:         toWireMeal(p.Dinner),
		Hydration:      p.Hydration,
		Notes:          p.Notes,
	}
}

// decodePlan accepts either {"meal_plan": {...}} or a bare plan object.
func decodePlan(raw json.RawMessage) (models.MealPlan, error) {
	var envelope struct {
		MealPlan json.RawMessage `json:"meal_plan"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return models.MealPlan{}, err
	}
	body := raw
	if len(envelope.MealPlan) > 0 && string(envelope.MealPlan) != "null" {
		body = envelope.MealPlan
	}

	var plan models.MealPlan
	if err := json.Unmarshal(body, &plan); err != nil {
		return models.MealPlan{}, err
	}
	return plan, nil
}

func (c *Client) planRequest(ctx context.Context, op, method, path string, want int, in any) (models.MealPlan, error) {
	var raw json.RawMessage
	if err := c.doExpect(ctx, op, method, path, want, in, &raw); err != nil {
		return models.MealPlan{}, err
	}
	plan, err := decodePlan(raw)
	if err != nil {
		return models.MealPlan{}, fmt.Errorf("%s: decode meal plan: %w", op, err)
	}
	return plan, nil
}

// FetchExistingPlan returns the plan stored on the server for identity.
// ErrNotFound means none exists, including a stored but empty plan.
func (c *Client) FetchExistingPlan(ctx context.Context, identity string) (models.MealPlan, error) {
	if strings.TrimSpace(identity) == "" {
		return models.MealPlan{}, ErrMissingIdentity
	}
	plan, err := c.planRequest(ctx, OpFetchPlan, http.MethodGet, endpoint(constants.PathExistingPlan, identity), 0, nil)
	if err != nil {
		return models.MealPlan{}, err
	}
	if plan.IsEmpty() {
		return models.MealPlan{}, ErrNotFound
	}
	return plan, nil
}

// GeneratePlan asks the service for a new plan built from profile.
func (c *Client) GeneratePlan(ctx context.Context, identity string, profile models.UserProfile) (models.MealPlan, error) {
	if strings.TrimSpace(identity) == "" {
		return models.MealPlan{}, ErrMissingIdentity
	}
	plan, err := c.planRequest(ctx, OpGeneratePlan, http.MethodPost, endpoint(constants.PathGeneratePlan, identity), 0, profile)
	if err != nil {
		return models.MealPlan{}, err
	}
	if plan.IsEmpty() {
		return models.MealPlan{}, fmt.Errorf("%s: %w", OpGeneratePlan, ErrEmptyResponse)
	}
	return plan, nil
}

// UpdatePlanWithPrompt asks the service to revise previous according to a
// free-text instruction. Only a 200 response counts as success.
func (c *Client) UpdatePlanWithPrompt(ctx context.Context, identity, prompt string, previous models.MealPlan) (models.MealPlan, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return models.MealPlan{}, ErrEmptyPrompt
	}
	if strings.TrimSpace(identity) == "" {
		return models.MealPlan{}, ErrMissingIdentity
	}

	body := updatePlanRequest{Prompt: prompt, PreviousMealPlan: previous}
	plan, err := c.planRequest(ctx, OpUpdatePlan, http.MethodPost, endpoint(constants.PathUpdatePlan, identity), http.StatusOK, body)
	if err != nil {
		return models.MealPlan{}, err
	}
	if plan.IsEmpty() {
		return models.MealPlan{}, fmt.Errorf("%s: %w", OpUpdatePlan, ErrEmptyResponse)
	}
	return plan, nil
}

// SavePlan stores plan on the server for identity, replacing any existing one.
func (c *Client) SavePlan(ctx context.Context, identity string, plan models.MealPlan) error {
	if strings.TrimSpace(identity) == "" {
		return ErrMissingIdentity
	}
	if plan.IsEmpty() {
		return errors.New("refusing to save an empty meal plan")
	}
	return c.do(ctx, OpSavePlan, http.MethodPost, endpoint(constants.PathSavePlan, identity), toWirePlan(plan), nil)
}
