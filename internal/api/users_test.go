package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/ChandelAnish/NutriTrack/internal/models"
)

const userJSON = `{
	"id": 7,
	"email": "a@example.com",
	"password": "Secret#1",
	"age": 25,
	"weight": 70,
	"targetWeight": 65,
	"height": 175,
	"gender": "female",
	"daily_physical_activity": "Very Active",
	"dietary_preferences": ["vegan"],
	"allergies": ["soy"]
}`

func TestRegister(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/user/addUser" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "Secret#1" || body["email"] != "a@example.com" {
			t.Errorf("body = %v", body)
		}
		_, _ = io.WriteString(w, userJSON)
	})

	req := models.SignUpRequest{Password: "Secret#1"}
	req.Email = "a@example.com"
	user, err := c.Register(context.Background(), req)
	if err != nil {
		t.Fatalf("Register() failed: %v", err)
	}
	if user.ID != 7 || user.Gender != models.GenderFemale {
		t.Errorf("user = %+v", user)
	}
}

func TestLogin(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user/login" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var body loginRequest
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Email != "a@example.com" || body.Password != "Secret#1" {
			t.Errorf("body = %+v", body)
		}
		_, _ = io.WriteString(w, userJSON)
	})

	user, err := c.Login(context.Background(), " a@example.com ", "Secret#1")
	if err != nil {
		t.Fatalf("Login() failed: %v", err)
	}
	p := user.Profile()
	if p.Email != "a@example.com" || p.Age != 25 || len(p.Allergies) != 1 {
		t.Errorf("profile = %+v", p)
	}
}

func TestEditUser(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/user/edit/a@example.com" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		// Some deployments answer with an empty object.
		_, _ = io.WriteString(w, `{}`)
	})

	profile := models.DefaultProfile()
	user, err := c.EditUser(context.Background(), "a@example.com", profile)
	if err != nil {
		t.Fatalf("EditUser() failed: %v", err)
	}
	if user.Email != "a@example.com" {
		t.Errorf("Email = %q, want fallback to the request email", user.Email)
	}
}
