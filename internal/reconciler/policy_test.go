package reconciler

import "testing"

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{"", PolicyCacheFirst, false},
		{"cache-first", PolicyCacheFirst, false},
		{" Fetch-Then-Generate ", PolicyFetchThenGenerate, false},
		{"always-generate", 0, true},
	}
	for _, tt := range tests {
		got, err := ParsePolicy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePolicy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParsePolicy(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if !tt.wantErr {
			if back, _ := ParsePolicy(got.String()); back != got {
				t.Errorf("String() of %v does not parse back", got)
			}
		}
	}
}

func TestSourceString(t *testing.T) {
	if SourceCache.String() != "cache" || SourceNone.String() != "none" || SourceEdited.String() != "edited" {
		t.Error("unexpected Source names")
	}
}
