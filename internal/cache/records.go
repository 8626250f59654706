package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ChandelAnish/NutriTrack/internal/constants"
	"github.com/ChandelAnish/NutriTrack/internal/logger"
	"github.com/ChandelAnish/NutriTrack/internal/models"
)

// Records reads and writes the three conventional cache entries. Any read or
// decode failure is logged and reported as absent; callers never see it.
type Records struct {
	store Store
}

func NewRecords(store Store) *Records {
	return &Records{store: store}
}

// Store returns the underlying key-value store.
func (r *Records) Store() Store {
	return r.store
}

// Identity returns the cached user email.
func (r *Records) Identity(ctx context.Context) (string, bool) {
	raw, ok := r.read(ctx, constants.CacheKeyIdentity)
	if !ok {
		return "", false
	}
	email := strings.TrimSpace(raw)
	// Stored raw, but tolerate a JSON string too.
	if strings.HasPrefix(email, `"`) {
		var s string
		if err := json.Unmarshal([]byte(email), &s); err == nil {
			email = strings.TrimSpace(s)
		}
	}
	return email, email != ""
}

func (r *Records) SetIdentity(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("identity cannot be empty")
	}
	return r.store.Set(ctx, constants.CacheKeyIdentity, email)
}

// Profile returns the cached profile. An empty object counts as absent.
func (r *Records) Profile(ctx context.Context) (models.UserProfile, bool) {
	var p models.UserProfile
	if !r.decode(ctx, constants.CacheKeyProfile, &p) || p.IsZero() {
		return models.UserProfile{}, false
	}
	return p, true
}

func (r *Records) SetProfile(ctx context.Context, p models.UserProfile) error {
	return r.encode(ctx, constants.CacheKeyProfile, p)
}

// Plan returns the cached meal plan. An empty object counts as absent.
func (r *Records) Plan(ctx context.Context) (models.MealPlan, bool) {
	var p models.MealPlan
	if !r.decode(ctx, constants.CacheKeyPlan, &p) || p.IsEmpty() {
		return models.MealPlan{}, false
	}
	return p, true
}

// SetPlan replaces the cached plan. There is no history; the previous plan is gone.
func (r *Records) SetPlan(ctx context.Context, p models.MealPlan) error {
	return r.encode(ctx, constants.CacheKeyPlan, p)
}

// ForgetPlan drops the cached plan so the next load goes remote.
func (r *Records) ForgetPlan(ctx context.Context) error {
	return r.store.Delete(ctx, constants.CacheKeyPlan)
}

// Clear removes every record, as on sign-out.
func (r *Records) Clear(ctx context.Context) error {
	return r.store.Clear(ctx)
}

func (r *Records) read(ctx context.Context, key string) (string, bool) {
	raw, ok, err := r.store.Get(ctx, key)
	if err != nil {
		logger.Warn("Cache read failed, treating as absent", "key", key, "error", err)
		return "", false
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return "", false
	}
	return raw, true
}

func (r *Records) decode(ctx context.Context, key string, v any) bool {
	raw, ok := r.read(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		logger.Warn("Cache entry unreadable, treating as absent", "key", key, "error", err)
		return false
	}
	return true
}

func (r *Records) encode(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := r.store.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
