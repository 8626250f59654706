package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/ChandelAnish/NutriTrack/internal/constants"
	"github.com/ChandelAnish/NutriTrack/internal/models"
)

const (
	OpRegister = "register"
	OpLogin    = "login"
	OpEditUser = "edit_user"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, req models.SignUpRequest) (models.User, error) {
	var user models.User
	if err := c.do(ctx, OpRegister, http.MethodPost, constants.PathRegister, req, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Login checks credentials and returns the account record.
func (c *Client) Login(ctx context.Context, email, password string) (models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return models.User{}, ErrMissingIdentity
	}
	var user models.User
	body := loginRequest{Email: email, Password: password}
	if err := c.do(ctx, OpLogin, http.MethodPost, constants.PathLogin, body, &user); err != nil {
		return models.User{}, err
	}
	if user.Email == "" {
		user.Email = email
	}
	return user, nil
}

// EditUser replaces the profile stored for email.
func (c *Client) EditUser(ctx context.Context, email string, profile models.UserProfile) (models.User, error) {
	if strings.TrimSpace(email) == "" {
		return models.User{}, ErrMissingIdentity
	}
	var user models.User
	if err := c.do(ctx, OpEditUser, http.MethodPut, endpoint(constants.PathEditUser, email), profile, &user); err != nil {
		return models.User{}, err
	}
	if user.Email == "" {
		user.Email = email
	}
	return user, nil
}
