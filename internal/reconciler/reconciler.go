// Package reconciler owns the meal plan shown to the user and decides, on
// every load, whether it comes from the local cache or the remote service.
package reconciler

import (
	"context"
	"errors"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/ChandelAnish/NutriTrack/internal/api"
	"github.com/ChandelAnish/NutriTrack/internal/cache"
	"github.com/ChandelAnish/NutriTrack/internal/logger"
	"github.com/ChandelAnish/NutriTrack/internal/models"
)

var (
	// ErrUnauthenticated means there is no identity or profile to work from;
	// the caller should send the user to sign in.
	ErrUnauthenticated = errors.New("not signed in")
	// ErrNoPlan is returned by SubmitEdit when there is no plan to revise.
	ErrNoPlan = errors.New("no meal plan loaded")
	// ErrEmptyPrompt is returned by SubmitEdit for a blank prompt.
	ErrEmptyPrompt = api.ErrEmptyPrompt
)

// PlanService is the remote side of reconciliation. *api.Client satisfies it.
type PlanService interface {
	FetchExistingPlan(ctx context.Context, identity string) (models.MealPlan, error)
	GeneratePlan(ctx context.Context, identity string, profile models.UserProfile) (models.MealPlan, error)
	UpdatePlanWithPrompt(ctx context.Context, identity, prompt string, previous models.MealPlan) (models.MealPlan, error)
}

// PlanSaver is implemented by services that can store a plan remotely.
type PlanSaver interface {
	SavePlan(ctx context.Context, identity string, plan models.MealPlan) error
}

type Option func(*Reconciler)

func WithPolicy(p Policy) Option {
	return func(r *Reconciler) { r.policy = p }
}

// WithMirror stores every generated or edited plan on the service as well,
// when the service supports it.
func WithMirror(enabled bool) Option {
	return func(r *Reconciler) { r.mirror = enabled }
}

type Reconciler struct {
	records *cache.Records
	plans   PlanService
	policy  Policy
	mirror  bool

	group singleflight.Group
	// remote serializes round-trips so at most one is in flight.
	remote sync.Mutex

	mu     sync.RWMutex
	plan   models.MealPlan
	has    bool
	source Source
}

func New(records *cache.Records, plans PlanService, opts ...Option) *Reconciler {
	r := &Reconciler{
		records: records,
		plans:   plans,
		policy:  PolicyCacheFirst,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Reconciler) Policy() Policy {
	return r.policy
}

// Current returns the plan held in memory.
func (r *Reconciler) Current() (models.MealPlan, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.plan, r.has
}

// Source reports where the current plan came from.
func (r *Reconciler) Source() Source {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.source
}

// Reset drops the in-memory plan, as on sign-out. The cache is untouched.
func (r *Reconciler) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plan, r.has, r.source = models.MealPlan{}, false, SourceNone
}

// Load runs the decision policy: a non-empty cached plan is served without
// any network call; otherwise the plan is obtained remotely and cached.
func (r *Reconciler) Load(ctx context.Context) (models.MealPlan, error) {
	return r.run(ctx, "load", func(ctx context.Context) (models.MealPlan, error) {
		if plan, ok := r.records.Plan(ctx); ok {
			logger.Debug("Serving cached meal plan")
			r.setState(plan, SourceCache)
			return plan, nil
		}
		return r.obtain(ctx)
	})
}

// OnResume is called by the host UI when the plan view becomes visible again.
func (r *Reconciler) OnResume(ctx context.Context) (models.MealPlan, error) {
	return r.Load(ctx)
}

// Retry re-runs the remote part of the policy after a failure, skipping the
// cache.
func (r *Reconciler) Retry(ctx context.Context) (models.MealPlan, error) {
	return r.run(ctx, "retry", r.obtain)
}

// Regenerate unconditionally generates a new plan from the cached profile
// and replaces the cached plan with it.
func (r *Reconciler) Regenerate(ctx context.Context) (models.MealPlan, error) {
	return r.run(ctx, "regenerate", func(ctx context.Context) (models.MealPlan, error) {
		identity, profile, err := r.credentials(ctx)
		if err != nil {
			return models.MealPlan{}, err
		}
		plan, err := r.roundTrip(func() (models.MealPlan, error) {
			return r.plans.GeneratePlan(ctx, identity, profile)
		})
		if err != nil {
			return models.MealPlan{}, err
		}
		r.commit(ctx, identity, plan, SourceGenerated)
		return plan, nil
	})
}

// SubmitEdit asks the service to revise the current plan. On success the
// in-memory plan is replaced first and the cache second.
func (r *Reconciler) SubmitEdit(ctx context.Context, prompt string) (models.MealPlan, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return models.MealPlan{}, ErrEmptyPrompt
	}
	return r.run(ctx, "edit\x00"+prompt, func(ctx context.Context) (models.MealPlan, error) {
		identity, ok := r.records.Identity(ctx)
		if !ok {
			return models.MealPlan{}, ErrUnauthenticated
		}
		// Edits chain: each one revises whatever the previous edit committed.
		return r.roundTrip(func() (models.MealPlan, error) {
			previous, ok := r.Current()
			if !ok {
				return models.MealPlan{}, ErrNoPlan
			}
			plan, err := r.plans.UpdatePlanWithPrompt(ctx, identity, prompt, previous)
			if err != nil {
				return models.MealPlan{}, err
			}
			r.commit(ctx, identity, plan, SourceEdited)
			return plan, nil
		})
	})
}

// obtain is steps 2 and 3 of the policy.
func (r *Reconciler) obtain(ctx context.Context) (models.MealPlan, error) {
	identity, profile, err := r.credentials(ctx)
	if err != nil {
		return models.MealPlan{}, err
	}

	if r.policy == PolicyFetchThenGenerate {
		plan, err := r.roundTrip(func() (models.MealPlan, error) {
			return r.plans.FetchExistingPlan(ctx, identity)
		})
		switch {
		case err == nil:
			// Already stored remotely, so no mirroring.
			r.setState(plan, SourceFetched)
			r.persist(ctx, plan)
			return plan, nil
		case !errors.Is(err, api.ErrNotFound):
			return models.MealPlan{}, err
		}
		logger.Info("No stored meal plan, generating one", "identity", identity)
	}

	plan, err := r.roundTrip(func() (models.MealPlan, error) {
		return r.plans.GeneratePlan(ctx, identity, profile)
	})
	if err != nil {
		return models.MealPlan{}, err
	}
	r.commit(ctx, identity, plan, SourceGenerated)
	return plan, nil
}

func (r *Reconciler) credentials(ctx context.Context) (string, models.UserProfile, error) {
	identity, ok := r.records.Identity(ctx)
	if !ok {
		return "", models.UserProfile{}, ErrUnauthenticated
	}
	profile, ok := r.records.Profile(ctx)
	if !ok {
		return "", models.UserProfile{}, ErrUnauthenticated
	}
	return identity, profile, nil
}

// run collapses concurrent calls for key into one execution. The shared
// work is detached from the caller's cancellation, so a caller that gives
// up returns early while a response that still arrives is cached.
func (r *Reconciler) run(ctx context.Context, key string, fn func(context.Context) (models.MealPlan, error)) (models.MealPlan, error) {
	work := context.WithoutCancel(ctx)
	ch := r.group.DoChan(key, func() (any, error) {
		return fn(work)
	})
	select {
	case <-ctx.Done():
		return models.MealPlan{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return models.MealPlan{}, res.Err
		}
		return res.Val.(models.MealPlan), nil
	}
}

func (r *Reconciler) roundTrip(call func() (models.MealPlan, error)) (models.MealPlan, error) {
	r.remote.Lock()
	defer r.remote.Unlock()
	return call()
}

func (r *Reconciler) setState(plan models.MealPlan, source Source) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plan, r.has, r.source = plan, true, source
}

// commit installs a plan produced by the service: state, then cache, then
// the optional remote mirror.
func (r *Reconciler) commit(ctx context.Context, identity string, plan models.MealPlan, source Source) {
	r.setState(plan, source)
	r.persist(ctx, plan)

	if !r.mirror {
		return
	}
	saver, ok := r.plans.(PlanSaver)
	if !ok {
		return
	}
	if err := saver.SavePlan(ctx, identity, plan); err != nil {
		logger.Warn("Failed to mirror meal plan", "identity", identity, "error", err)
	}
}

// persist writes the plan to the cache. A failed write leaves the plan on
// screen; the next load simply goes remote again.
func (r *Reconciler) persist(ctx context.Context, plan models.MealPlan) {
	if err := r.records.SetPlan(ctx, plan); err != nil {
		logger.Warn("Failed to cache meal plan", "error", err)
	}
}
