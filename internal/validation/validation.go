package validation

import (
	"errors"
	"fmt"
	"math"
	"net/mail"
	"strings"
	"unicode"

	"github.com/ChandelAnish/NutriTrack/internal/constants"
	"github.com/ChandelAnish/NutriTrack/internal/models"
)

// IssueType represents the kind of validation failure
type IssueType string

const (
	IssueRequired      IssueType = "required"
	IssueInvalidEmail  IssueType = "invalid_email"
	IssueEmailDomain   IssueType = "email_domain"
	IssueWeakPassword  IssueType = "weak_password"
	IssueOutOfRange    IssueType = "out_of_range"
	IssueNotWhole      IssueType = "not_whole_number"
	IssueInvalidGender IssueType = "invalid_gender"
)

// passwordSpecials are the characters that satisfy the special-character rule.
const passwordSpecials = `!@#$%^&*(),.?":{}|<>`

// Issue is one failed check, tied to the form field it belongs to
type Issue struct {
	Type        IssueType
	Field       string
	Description string
}

// Result contains all detected issues
type Result struct {
	Issues []Issue
}

func (r *Result) add(t IssueType, field, format string, args ...any) {
	r.Issues = append(r.Issues, Issue{Type: t, Field: field, Description: fmt.Sprintf(format, args...)})
}

func (r *Result) merge(other Result) {
	r.Issues = append(r.Issues, other.Issues...)
}

// HasIssues returns true if any check failed
func (r Result) HasIssues() bool {
	return len(r.Issues) > 0
}

// Field returns the first issue for field, for inline form errors.
func (r Result) Field(field string) (Issue, bool) {
	for _, is := range r.Issues {
		if is.Field == field {
			return is, true
		}
	}
	return Issue{}, false
}

// FormatReport returns a human-readable report of all issues
func (r Result) FormatReport() string {
	if !r.HasIssues() {
		return "No issues detected."
	}
	var b strings.Builder
	b.WriteString("Please fix the following:\n")
	for _, is := range r.Issues {
		fmt.Fprintf(&b, "- %s\n", is.Description)
	}
	return b.String()
}

// ErrInvalid is matched by the error returned from Result.Err.
var ErrInvalid = errors.New("validation failed")

// Err returns nil when there are no issues and otherwise an error listing them.
func (r Result) Err() error {
	if !r.HasIssues() {
		return nil
	}
	msgs := make([]string, len(r.Issues))
	for i, is := range r.Issues {
		msgs[i] = is.Description
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

// FirstErr returns the first issue alone, for fields that show one message.
func (r Result) FirstErr() error {
	if !r.HasIssues() {
		return nil
	}
	return errors.New(r.Issues[0].Description)
}

// Validator checks account and profile input before it reaches the service
type Validator struct {
	emailDomain string
}

// New creates a Validator. A non-empty emailDomain restricts sign-up to
// addresses in that domain.
func New(emailDomain string) *Validator {
	return &Validator{
		emailDomain: strings.TrimPrefix(strings.ToLower(strings.TrimSpace(emailDomain)), "@"),
	}
}

func (v *Validator) ValidateEmail(email string) Result {
	var r Result
	email = strings.TrimSpace(email)
	if email == "" {
		r.add(IssueRequired, "email", "Email is required")
		return r
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || strings.ContainsAny(email, " \t") {
		r.add(IssueInvalidEmail, "email", "Email %q is not a valid address", email)
		return r
	}
	if v.emailDomain != "" && !strings.HasSuffix(strings.ToLower(email), "@"+v.emailDomain) {
		r.add(IssueEmailDomain, "email", "Email must end with @%s", v.emailDomain)
	}
	return r
}

// ValidatePassword requires the minimum length plus one uppercase letter,
// one digit and one special character.
func (v *Validator) ValidatePassword(password string) Result {
	var r Result
	if password == "" {
		r.add(IssueRequired, "password", "Password is required")
		return r
	}
	var upper, digit bool
	for _, c := range password {
		switch {
		case unicode.IsUpper(c):
			upper = true
		case unicode.IsDigit(c):
			digit = true
		}
	}
	special := strings.ContainsAny(password, passwordSpecials)
	if len([]rune(password)) < constants.MinPasswordLength || !upper || !digit || !special {
		r.add(IssueWeakPassword, "password",
			"Password must be at least %d characters and include at least 1 special character, 1 uppercase letter, and 1 number",
			constants.MinPasswordLength)
	}
	return r
}

// ValidateProfile checks the attributes sent for plan generation.
func (v *Validator) ValidateProfile(p models.UserProfile) Result {
	var r Result
	if p.Age < 0 {
		r.add(IssueOutOfRange, "age", "Age cannot be negative")
	}
	for _, f := range []struct {
		name  string
		label string
		value float64
	}{
		{"weight", "Weight", p.Weight},
		{"targetWeight", "Target weight", p.TargetWeight},
		{"height", "Height", p.Height},
	} {
		switch {
		case f.value < 0:
			r.add(IssueOutOfRange, f.name, "%s cannot be negative", f.label)
		case f.value != math.Trunc(f.value):
			// The service stores body measurements as integers.
			r.add(IssueNotWhole, f.name, "%s must be a whole number", f.label)
		}
	}
	if _, err := models.ParseGender(string(p.Gender)); err != nil {
		r.add(IssueInvalidGender, "gender", "Gender must be male, female or other")
	}
	if strings.TrimSpace(p.DailyPhysicalActivity) == "" {
		r.add(IssueRequired, "daily_physical_activity", "Daily physical activity is required")
	}
	return r
}

// ValidateSignUp checks everything a registration needs.
func (v *Validator) ValidateSignUp(req models.SignUpRequest) Result {
	var r Result
	r.merge(v.ValidateEmail(req.Email))
	r.merge(v.ValidatePassword(req.Password))
	r.merge(v.ValidateProfile(req.UserProfile))
	return r
}

// ValidateSignIn only checks presence; the service judges the credentials.
func (v *Validator) ValidateSignIn(email, password string) Result {
	var r Result
	if strings.TrimSpace(email) == "" {
		r.add(IssueRequired, "email", "Email is required")
	}
	if password == "" {
		r.add(IssueRequired, "password", "Password is required")
	}
	return r
}

// ValidatePrompt requires a non-blank edit prompt.
func (v *Validator) ValidatePrompt(prompt string) Result {
	var r Result
	if strings.TrimSpace(prompt) == "" {
		r.add(IssueRequired, "prompt", "Describe the change you want to make to the plan")
	}
	return r
}
