// Package account covers sign-up, sign-in and the profile editor. It seeds
// and clears the local identity and profile records the reconciler reads.
package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/ChandelAnish/NutriTrack/internal/cache"
	"github.com/ChandelAnish/NutriTrack/internal/keyring"
	"github.com/ChandelAnish/NutriTrack/internal/logger"
	"github.com/ChandelAnish/NutriTrack/internal/models"
	"github.com/ChandelAnish/NutriTrack/internal/reconciler"
	"github.com/ChandelAnish/NutriTrack/internal/validation"
)

// UserService is the account half of the backend. *api.Client satisfies it.
type UserService interface {
	Register(ctx context.Context, req models.SignUpRequest) (models.User, error)
	Login(ctx context.Context, email, password string) (models.User, error)
	EditUser(ctx context.Context, email string, profile models.UserProfile) (models.User, error)
}

// Regenerator is the reconciler's update path.
type Regenerator interface {
	Regenerate(ctx context.Context) (models.MealPlan, error)
}

// Credentials stores remembered passwords. The default uses the OS keyring.
type Credentials interface {
	GetPassword(email string) (string, error)
	SetPassword(email, password string) error
	DeletePassword(email string) error
}

type osKeyring struct{}

func (osKeyring) GetPassword(email string) (string, error) { return keyring.GetPassword(email) }
func (osKeyring) SetPassword(email, password string) error { return keyring.SetPassword(email, password) }
func (osKeyring) DeletePassword(email string) error        { return keyring.DeletePassword(email) }

// ErrNoRememberedPassword is returned by SignInRemembered when nothing is stored.
var ErrNoRememberedPassword = errors.New("no remembered password")

type Service struct {
	records   *cache.Records
	users     UserService
	plans     Regenerator
	validator *validation.Validator
	creds     Credentials
}

type Option func(*Service)

func WithCredentials(c Credentials) Option {
	return func(s *Service) { s.creds = c }
}

func New(records *cache.Records, users UserService, plans Regenerator, validator *validation.Validator, opts ...Option) *Service {
	s := &Service{
		records:   records,
		users:     users,
		plans:     plans,
		validator: validator,
		creds:     osKeyring{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SignUp validates and registers an account. It does not sign in.
func (s *Service) SignUp(ctx context.Context, req models.SignUpRequest) (models.User, error) {
	req.UserProfile.Normalize()
	if err := s.validator.ValidateSignUp(req).Err(); err != nil {
		return models.User{}, err
	}
	user, err := s.users.Register(ctx, req)
	if err != nil {
		return models.User{}, err
	}
	logger.Info("Account created", "email", req.Email)
	return user, nil
}

// SignIn checks credentials and seeds the cached identity and profile.
// With remember set, the password is kept in the OS keyring.
func (s *Service) SignIn(ctx context.Context, email, password string, remember bool) (models.User, error) {
	if err := s.validator.ValidateSignIn(email, password).Err(); err != nil {
		return models.User{}, err
	}
	user, err := s.users.Login(ctx, email, password)
	if err != nil {
		return models.User{}, err
	}

	profile := user.Profile()
	profile.Normalize()
	if err := s.records.SetIdentity(ctx, profile.Email); err != nil {
		return models.User{}, fmt.Errorf("failed to cache identity: %w", err)
	}
	if err := s.records.SetProfile(ctx, profile); err != nil {
		return models.User{}, fmt.Errorf("failed to cache profile: %w", err)
	}

	if remember {
		if err := s.creds.SetPassword(profile.Email, password); err != nil {
			logger.Warn("Could not remember password", "error", err)
		}
	}
	logger.Info("Signed in", "email", profile.Email)
	return user, nil
}

// SignInRemembered signs in with the password stored for email.
func (s *Service) SignInRemembered(ctx context.Context, email string) (models.User, error) {
	password, err := s.creds.GetPassword(email)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return models.User{}, ErrNoRememberedPassword
		}
		return models.User{}, err
	}
	return s.SignIn(ctx, email, password, false)
}

// SignOut clears every cached record and forgets the remembered password.
func (s *Service) SignOut(ctx context.Context) error {
	identity, _ := s.records.Identity(ctx)
	if err := s.records.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	if identity != "" {
		if err := s.creds.DeletePassword(identity); err != nil {
			logger.Warn("Could not forget password", "error", err)
		}
	}
	if r, ok := s.plans.(interface{ Reset() }); ok {
		r.Reset()
	}
	logger.Info("Signed out", "email", identity)
	return nil
}

// Identity returns the signed-in email.
func (s *Service) Identity(ctx context.Context) (string, bool) {
	return s.records.Identity(ctx)
}

// Profile returns the cached profile, or the editor defaults when none is
// cached. The bool reports whether a cached profile was found.
func (s *Service) Profile(ctx context.Context) (models.UserProfile, bool) {
	if p, ok := s.records.Profile(ctx); ok {
		return p, true
	}
	p := models.DefaultProfile()
	if email, ok := s.records.Identity(ctx); ok {
		p.Email = email
	}
	return p, false
}

// SaveProfile stores the profile locally, sends it to the service and then
// regenerates the meal plan from it. A failed regeneration is returned with
// the updated user; the profile itself is already saved at that point.
func (s *Service) SaveProfile(ctx context.Context, profile models.UserProfile) (models.User, models.MealPlan, error) {
	identity, ok := s.records.Identity(ctx)
	if !ok {
		return models.User{}, models.MealPlan{}, reconciler.ErrUnauthenticated
	}

	profile.Normalize()
	profile.Email = identity
	if err := s.validator.ValidateProfile(profile).Err(); err != nil {
		return models.User{}, models.MealPlan{}, err
	}

	if err := s.records.SetProfile(ctx, profile); err != nil {
		return models.User{}, models.MealPlan{}, fmt.Errorf("failed to cache profile: %w", err)
	}

	user, err := s.users.EditUser(ctx, identity, profile)
	if err != nil {
		return models.User{}, models.MealPlan{}, err
	}

	plan, err := s.plans.Regenerate(ctx)
	if err != nil {
		return user, models.MealPlan{}, fmt.Errorf("profile saved but the meal plan could not be regenerated: %w", err)
	}
	return user, plan, nil
}
