package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ChandelAnish/NutriTrack/internal/account"
	"github.com/ChandelAnish/NutriTrack/internal/api"
	"github.com/ChandelAnish/NutriTrack/internal/cache"
	"github.com/ChandelAnish/NutriTrack/internal/config"
	"github.com/ChandelAnish/NutriTrack/internal/models"
	"github.com/ChandelAnish/NutriTrack/internal/reconciler"
	"github.com/ChandelAnish/NutriTrack/internal/validation"
)

// Backend is everything the commands need from the NutriTrack server.
// *api.Client satisfies it.
type Backend interface {
	account.UserService
	reconciler.PlanService
	reconciler.PlanSaver
}

type Context struct {
	Ctx        context.Context
	Config     *config.Config
	Store      cache.Store
	Records    *cache.Records
	Backend    Backend
	Reconciler *reconciler.Reconciler
	Accounts   *account.Service
	Validator  *validation.Validator
	// Out receives command output. Defaults to os.Stdout.
	Out        io.Writer
}

// NewContext wires the services for one invocation. Without a server URL
// the backend is offline: cached data is still served, and anything that
// needs the server fails with config.ErrMissingServerURL.
func NewContext(ctx context.Context, cfg *config.Config, store cache.Store) (*Context, error) {
	var backend Backend = offline{err: config.ErrMissingServerURL}
	if cfg.ServerURL != "" {
		client, err := api.New(cfg.ServerURL,
			api.WithHTTPTimeout(cfg.HTTPTimeout),
			api.WithUserAgent(cfg.UserAgent),
			api.WithDebugLogging(cfg.Debug),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create api client: %w", err)
		}
		backend = client
	}
	return NewContextWith(ctx, cfg, store, backend), nil
}

// NewContextWith is NewContext with an explicit backend.
func NewContextWith(ctx context.Context, cfg *config.Config, store cache.Store, backend Backend) *Context {
	records := cache.NewRecords(store)
	validator := validation.New(cfg.EmailDomain)
	rec := reconciler.New(records, backend,
		reconciler.WithPolicy(cfg.Policy()),
		reconciler.WithMirror(cfg.MirrorPlans),
	)
	return &Context{
		Ctx:        ctx,
		Config:     cfg,
		Store:      store,
		Records:    records,
		Backend:    backend,
		Reconciler: rec,
		Accounts:   account.New(records, backend, rec, validator),
		Validator:  validator,
		Out:        os.Stdout,
	}
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}

// RequireIdentity returns the signed-in email or reconciler.ErrUnauthenticated.
func (c *Context) RequireIdentity() (string, error) {
	email, ok := c.Records.Identity(c.Ctx)
	if !ok {
		return "", reconciler.ErrUnauthenticated
	}
	return email, nil
}

type offline struct{ err error }

func (o offline) Register(context.Context, models.SignUpRequest) (models.User, error) {
	return models.User{}, o.err
}

func (o offline) Login(context.Context, string, string) (models.User, error) {
	return models.User{}, o.err
}

func (o offline) EditUser(context.Context, string, models.UserProfile) (models.User, error) {
	return models.User{}, o.err
}

func (o offline) FetchExistingPlan(context.Context, string) (models.MealPlan, error) {
	return models.MealPlan{}, o.err
}

func (o offline) GeneratePlan(context.Context, string, models.UserProfile) (models.MealPlan, error) {
	return models.MealPlan{}, o.err
}

func (o offline) UpdatePlanWithPrompt(context.Context, string, string, models.MealPlan) (models.MealPlan, error) {
	return models.MealPlan{}, o.err
}

func (o offline) SavePlan(context.Context, string, models.MealPlan) error {
	return o.err
}

// FormatTags joins tags for display, or "none".
func FormatTags(tags []string) string {
	if len(tags) == 0 {
		return "none"
	}
	return strings.Join(tags, ", ")
}
