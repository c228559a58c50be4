package slug

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Senior Go Engineer", "senior-go-engineer"},
		{"  Data   Analyst (Remote) ", "data-analyst-remote"},
		{"Açme Café", "acme-cafe"},
		{"C++ / Rust", "c-rust"},
		{"!!!", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Make(tt.in), tt.in)
	}
}

func TestMake_Truncates(t *testing.T) {
	out := Make(strings.Repeat("abc ", 50))
	assert.LessOrEqual(t, len(out), maxLength)
	assert.False(t, strings.HasSuffix(out, "-"))
}

func TestForListing(t *testing.T) {
	assert.Equal(t, "backend-intern-acme-3f9a1c", ForListing("Backend Intern", "Acme", "3f9a1c2d-0000"))
	assert.Equal(t, "listing-ab12", ForListing("***", "", "ab12"))
	assert.Equal(t, "qa-lead-initech", ForListing("QA Lead", "Initech", ""))
}
