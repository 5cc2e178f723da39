package derive

import (
	"testing"

	"github.com/typederive/typederive/internal/openapi"
)

func TestAllocateName_FirstUseKeepsDeclaredName(t *testing.T) {
	reg := openapi.NewRegistry()
	if got := allocateName("User", reg); got != "User" {
		t.Errorf("expected User, got %q", got)
	}
}

func TestAllocateName_ProbesSuffixes(t *testing.T) {
	reg := openapi.NewRegistry()
	reg.Register("User", &openapi.Schema{})
	reg.Register("User_1", &openapi.Schema{})

	if got := allocateName("User", reg); got != "User_2" {
		t.Errorf("expected User_2, got %q", got)
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"User", "User"},
		{"User.Profile", "User.Profile"},
		{"Map<string>", "Map_string_"},
		{"", "Schema"},
		{"généric", "g_n_ric"},
	}
	for _, tt := range tests {
		if got := sanitizeName(tt.in); got != tt.want {
			t.Errorf("sanitizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
