package gravatar

import (
	"testing"

	"github.com/jon4hz/crudnote/internal/config"
	"github.com/stretchr/testify/assert"
)

// sha256("alice@example.com")
const aliceHash = "ff8d9819fc0e12bf0d24892e45987e249a28dce836a85cad60e28eaaa8c6d976"

func TestURL(t *testing.T) {
	enabled := &config.GravatarConfig{Enabled: true}

	tests := []struct {
		name  string
		email string
		cfg   *config.GravatarConfig
		want  string
	}{
		{"nil config", "alice@example.com", nil, ""},
		{"disabled", "alice@example.com", &config.GravatarConfig{DefaultImage: "mp"}, ""},
		{"no email", "", enabled, ""},
		{"blank email", "   ", enabled, ""},
		{"plain", "alice@example.com", enabled, baseURL + aliceHash},
		{"normalized", "  Alice@Example.COM ", enabled, baseURL + aliceHash},
		{
			name:  "all options",
			email: "alice@example.com",
			cfg:   &config.GravatarConfig{Enabled: true, DefaultImage: "robohash", Rating: "pg", Size: 160},
			want:  baseURL + aliceHash + "?d=robohash&r=pg&s=160",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, URL(tt.email, tt.cfg))
		})
	}
}

func TestValidators(t *testing.T) {
	assert.True(t, IsValidDefaultImage("identicon"))
	assert.False(t, IsValidDefaultImage("MP"))
	assert.False(t, IsValidDefaultImage(""))

	assert.True(t, IsValidRating("x"))
	assert.False(t, IsValidRating("nc17"))

	for _, size := range []int{1, 80, 2048} {
		assert.True(t, IsValidSize(size), "size %d", size)
	}
	for _, size := range []int{0, -1, 2049} {
		assert.False(t, IsValidSize(size), "size %d", size)
	}
}
