// Package gravatar builds profile picture URLs from email addresses.
package gravatar

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strconv"
	"strings"

	"github.com/jon4hz/crudnote/internal/config"
	"github.com/samber/lo"
)

const baseURL = "https://www.gravatar.com/avatar/"

var (
	defaultImages = []string{"404", "mp", "identicon", "monsterid", "wavatar", "retro", "robohash", "blank"}
	ratings       = []string{"g", "pg", "r", "x"}
)

// URL returns the avatar URL of email. It is empty when Gravatar is disabled or
// the user has no email.
func URL(email string, cfg *config.GravatarConfig) string {
	if cfg == nil || !cfg.Enabled {
		return ""
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return ""
	}

	sum := sha256.Sum256([]byte(email))
	u := baseURL + hex.EncodeToString(sum[:])

	params := url.Values{}
	if cfg.DefaultImage != "" {
		params.Set("d", cfg.DefaultImage)
	}
	if cfg.Rating != "" {
		params.Set("r", cfg.Rating)
	}
	if cfg.Size > 0 {
		params.Set("s", strconv.Itoa(cfg.Size))
	}
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}

// IsValidDefaultImage reports whether Gravatar knows the fallback image.
func IsValidDefaultImage(d string) bool {
	return lo.Contains(defaultImages, d)
}

// IsValidRating reports whether r is a Gravatar rating.
func IsValidRating(r string) bool {
	return lo.Contains(ratings, r)
}

// IsValidSize reports whether size is within 1-2048 pixels.
func IsValidSize(size int) bool {
	return size >= 1 && size <= 2048
}
