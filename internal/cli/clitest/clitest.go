// Package clitest provides an in-memory backend and context for command
// and TUI tests.
package clitest

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/ChandelAnish/NutriTrack/internal/api"
	"github.com/ChandelAnish/NutriTrack/internal/cache"
	"github.com/ChandelAnish/NutriTrack/internal/cache/memory"
	"github.com/ChandelAnish/NutriTrack/internal/cli"
	"github.com/ChandelAnish/NutriTrack/internal/config"
	"github.com/ChandelAnish/NutriTrack/internal/models"
)

// Backend records every call and answers from its fields.
type Backend struct {
	mu    sync.Mutex
	calls map[string]int

	// Plan is returned by every plan operation. Edited plans get the
	// prompt appended to Notes so tests can tell them apart.
	Plan models.MealPlan
	// Err, when set, fails every call.
	Err error
	// FetchErr fails FetchExistingPlan only. Defaults to api.ErrNotFound.
	FetchErr error

	LastPrompt  string
	LastProfile models.UserProfile
}

func NewBackend() *Backend {
	return &Backend{
		calls:    make(map[string]int),
		Plan:     SamplePlan(),
		FetchErr: api.ErrNotFound,
	}
}

func (b *Backend) record(op string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls[op]++
	return b.Err
}

// Calls returns how many times op was called. op is one of the api.Op* names.
func (b *Backend) Calls(op string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[op]
}

// Total returns the number of calls across all operations.
func (b *Backend) Total() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.calls {
		n += c
	}
	return n
}

func (b *Backend) Register(_ context.Context, req models.SignUpRequest) (models.User, error) {
	if err := b.record(api.OpRegister); err != nil {
		return models.User{}, err
	}
	return models.User{ID: 1, UserProfile: req.UserProfile}, nil
}

func (b *Backend) Login(_ context.Context, email, _ string) (models.User, error) {
	if err := b.record(api.OpLogin); err != nil {
		return models.User{}, err
	}
	p := SampleProfile()
	p.Email = email
	return models.User{ID: 1, UserProfile: p}, nil
}

func (b *Backend) EditUser(_ context.Context, email string, profile models.UserProfile) (models.User, error) {
	if err := b.record(api.OpEditUser); err != nil {
		return models.User{}, err
	}
	b.mu.Lock()
	b.LastProfile = profile
	b.mu.Unlock()
	profile.Email = email
	return models.User{ID: 1, UserProfile: profile}, nil
}

func (b *Backend) FetchExistingPlan(context.Context, string) (models.MealPlan, error) {
	if err := b.record(api.OpFetchPlan); err != nil {
		return models.MealPlan{}, err
	}
	if b.FetchErr != nil {
		return models.MealPlan{}, b.FetchErr
	}
	return b.Plan, nil
}

func (b *Backend) GeneratePlan(context.Context, string, models.UserProfile) (models.MealPlan, error) {
	if err := b.record(api.OpGeneratePlan); err != nil {
		return models.MealPlan{}, err
	}
	return b.Plan, nil
}

func (b *Backend) UpdatePlanWithPrompt(_ context.Context, _, prompt string, previous models.MealPlan) (models.MealPlan, error) {
	if err := b.record(api.OpUpdatePlan); err != nil {
		return models.MealPlan{}, err
	}
	b.mu.Lock()
	b.LastPrompt = prompt
	b.mu.Unlock()
	edited := previous
	edited.Notes = strings.TrimSpace(previous.Notes + " " + prompt)
	return edited, nil
}

func (b *Backend) SavePlan(context.Context, string, models.MealPlan) error {
	return b.record(api.OpSavePlan)
}

// NewContext returns a context over an in-memory cache with output captured.
// The OS keyring is replaced by the go-keyring mock.
func NewContext(t testing.TB, backend cli.Backend, opts ...func(*config.Config)) *cli.Context {
	t.Helper()
	return NewContextWithStore(t, memory.NewStore(), backend, opts...)
}

// NewContextWithStore is NewContext over the given store.
func NewContextWithStore(t testing.TB, store cache.Store, backend cli.Backend, opts ...func(*config.Config)) *cli.Context {
	t.Helper()
	gokeyring.MockInit()

	cfg := &config.Config{
		Cache:       store.Location(),
		ServerURL:   "http://nutritrack.test",
		HTTPTimeout: time.Second,
		PlanPolicy:  "cache-first",
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.Resolve(); err != nil {
		t.Fatalf("invalid test config: %v", err)
	}

	app := cli.NewContextWith(context.Background(), cfg, store, backend)
	app.Out = &bytes.Buffer{}
	return app
}

// Offline clears the server URL, as when none is configured.
func Offline(cfg *config.Config) {
	cfg.ServerURL = ""
}

// Output returns everything the commands printed so far.
func Output(app *cli.Context) string {
	if b, ok := app.Out.(*bytes.Buffer); ok {
		return b.String()
	}
	return ""
}

// SignIn seeds the cache as a successful sign-in would.
func SignIn(t testing.TB, app *cli.Context, email string) {
	t.Helper()
	p := SampleProfile()
	p.Email = email
	if err := app.Records.SetIdentity(app.Ctx, email); err != nil {
		t.Fatal(err)
	}
	if err := app.Records.SetProfile(app.Ctx, p); err != nil {
		t.Fatal(err)
	}
}

func SampleProfile() models.UserProfile {
	p := models.DefaultProfile()
	p.Age = 30
	p.Weight = 80
	p.TargetWeight = 75
	p.Height = 180
	p.DietaryPreferences = []string{"veg"}
	return p
}

func SamplePlan() models.MealPlan {
	meal := func(name string, kcal float64) models.MealEntry {
		return models.MealEntry{
			Name:     name,
			Foods:    []models.FoodItem{{Name: name, PortionSize: "1 bowl", Emoji: "🥣"}},
			Calories: kcal,
			Protein:  20,
			Carbs:    40,
			Fats:     10,
		}
	}
	return models.MealPlan{
		TotalCalories:  2000,
		Breakfast:      meal("Oats", 400),
		MorningSnack:   meal("Fruit", 200),
		Lunch:          meal("Dal and rice", 600),
		AfternoonSnack: meal("Nuts", 200),
		Dinner:         meal("Paneer curry", 600),
		Hydration:      "2.5 L of water",
		Notes:          "Balanced",
	}
}
