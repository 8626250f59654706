package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/ChandelAnish/NutriTrack/internal/models"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name   string
		domain string
		email  string
		want   IssueType
	}{
		{"valid", "", "a@example.com", ""},
		{"padded", "", "  a@example.com ", ""},
		{"empty", "", "", IssueRequired},
		{"no at", "", "example.com", IssueInvalidEmail},
		{"display name", "", "Alice <a@example.com>", IssueInvalidEmail},
		{"inner space", "", "a b@example.com", IssueInvalidEmail},
		{"domain match", "gmail.com", "a@gmail.com", ""},
		{"domain match case", "@Gmail.com", "A@GMAIL.com", ""},
		{"domain mismatch", "gmail.com", "a@example.com", IssueEmailDomain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(tt.domain).ValidateEmail(tt.email)
			if tt.want == "" {
				if r.HasIssues() {
					t.Errorf("unexpected issues: %+v", r.Issues)
				}
				return
			}
			if len(r.Issues) != 1 || r.Issues[0].Type != tt.want {
				t.Errorf("issues = %+v, want one %s", r.Issues, tt.want)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		want     IssueType
	}{
		{"Secret#12", ""},
		{"", IssueRequired},
		{"Sh#1", IssueWeakPassword},
		{"secret#12", IssueWeakPassword},
		{"Secret#ab", IssueWeakPassword},
		{"Secret123", IssueWeakPassword},
		{"Pässwört{9", ""},
	}
	v := New("")
	for _, tt := range tests {
		r := v.ValidatePassword(tt.password)
		if tt.want == "" {
			if r.HasIssues() {
				t.Errorf("ValidatePassword(%q) unexpected issues: %+v", tt.password, r.Issues)
			}
			continue
		}
		if len(r.Issues) != 1 || r.Issues[0].Type != tt.want {
			t.Errorf("ValidatePassword(%q) = %+v, want %s", tt.password, r.Issues, tt.want)
		}
	}
}

func TestValidateProfile(t *testing.T) {
	v := New("")

	good := models.DefaultProfile()
	good.Age = 30
	if r := v.ValidateProfile(good); r.HasIssues() {
		t.Errorf("default profile has issues: %+v", r.Issues)
	}

	bad := models.UserProfile{Age: -1, Weight: -2, Height: -3, Gender: "robot"}
	r := v.ValidateProfile(bad)
	for _, field := range []string{"age", "weight", "height", "gender", "daily_physical_activity"} {
		if _, ok := r.Field(field); !ok {
			t.Errorf("missing issue for %s", field)
		}
	}
	if _, ok := r.Field("targetWeight"); ok {
		t.Error("targetWeight of 0 is allowed")
	}
}

func TestValidateProfileWholeNumbers(t *testing.T) {
	v := New("")
	p := models.DefaultProfile()
	p.Weight = 72.5
	p.TargetWeight = 68
	p.Height = 177.8

	r := v.ValidateProfile(p)
	for _, field := range []string{"weight", "height"} {
		issue, ok := r.Field(field)
		if !ok {
			t.Errorf("missing issue for %s", field)
			continue
		}
		if issue.Type != IssueNotWhole {
			t.Errorf("%s issue = %s, want %s", field, issue.Type, IssueNotWhole)
		}
	}
	if _, ok := r.Field("targetWeight"); ok {
		t.Error("a whole targetWeight should pass")
	}
}

func TestValidateSignUpCollectsAll(t *testing.T) {
	req := models.SignUpRequest{Password: "weak"}
	req.UserProfile = models.DefaultProfile()
	req.Email = "nope"

	r := New("").ValidateSignUp(req)
	if _, ok := r.Field("email"); !ok {
		t.Error("expected email issue")
	}
	if _, ok := r.Field("password"); !ok {
		t.Error("expected password issue")
	}

	err := r.Err()
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("Err() = %v, want ErrInvalid", err)
	}
	if !strings.Contains(err.Error(), "Password must be at least 8 characters") {
		t.Errorf("Err() = %q", err)
	}
}

func TestValidateSignInAndPrompt(t *testing.T) {
	v := New("")
	if r := v.ValidateSignIn("a@example.com", "x"); r.HasIssues() {
		t.Errorf("sign-in issues: %+v", r.Issues)
	}
	if r := v.ValidateSignIn(" ", ""); len(r.Issues) != 2 {
		t.Errorf("sign-in issues = %+v, want 2", r.Issues)
	}
	if r := v.ValidatePrompt(" \n"); !r.HasIssues() {
		t.Error("blank prompt should fail")
	}
	if r := v.ValidatePrompt("more protein"); r.HasIssues() {
		t.Error("prompt should pass")
	}
}

func TestFormatReport(t *testing.T) {
	var r Result
	if r.FormatReport() != "No issues detected." {
		t.Errorf("FormatReport() = %q", r.FormatReport())
	}
	if r.Err() != nil || r.FirstErr() != nil {
		t.Error("Err() should be nil without issues")
	}
	r.add(IssueRequired, "email", "Email is required")
	r.add(IssueRequired, "password", "Password is required")
	if got := r.FirstErr(); got == nil || got.Error() != "Email is required" {
		t.Errorf("FirstErr() = %v", got)
	}
	if !strings.Contains(r.FormatReport(), "- Email is required") {
		t.Errorf("FormatReport() = %q", r.FormatReport())
	}
}
