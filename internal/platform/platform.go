// Package platform holds the static per-network publishing constraints and
// the content adaptation rules that make a post fit them.
package platform

import (
	"regexp"
	"strings"
)

// Profile describes the publishing constraints of one social network.
type Profile struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	MaxChars    int      `json:"max_chars"`
	MaxHashtags int      `json:"max_hashtags"`
	ImageRatios []string `json:"image_ratios"`
	Color       string   `json:"color"`
}

// profileOrder fixes the presentation order of the registry.
var profileOrder = []string{"instagram", "twitter", "linkedin", "facebook", "tiktok"}

var profiles = map[string]Profile{
	"instagram": {
		ID:          "instagram",
		Name:        "Instagram",
		MaxChars:    2200,
		MaxHashtags: 30,
		ImageRatios: []string{"1:1", "4:5"},
		Color:       "#E1306C",
	},
	"twitter": {
		ID:          "twitter",
		Name:        "Twitter/X",
		MaxChars:    280,
		MaxHashtags: 2,
		ImageRatios: []string{"16:9", "1:1"},
		Color:       "#1DA1F2",
	},
	"linkedin": {
		ID:          "linkedin",
		Name:        "LinkedIn",
		MaxChars:    3000,
		MaxHashtags: 5,
		ImageRatios: []string{"1.91:1"},
		Color:       "#0A66C2",
	},
	"facebook": {
		ID:          "facebook",
		Name:        "Facebook",
		MaxChars:    63206,
		MaxHashtags: 10,
		ImageRatios: []string{"1.91:1"},
		Color:       "#1877F2",
	},
	"tiktok": {
		ID:          "tiktok",
		Name:        "TikTok",
		MaxChars:    2200,
		MaxHashtags: 5,
		ImageRatios: []string{"9:16"},
		Color:       "#000000",
	},
}

var hashtagPattern = regexp.MustCompile(`#\w+`)

// Lookup returns the profile for a platform id. Unknown ids return ok=false
// and callers are expected to treat the content as unconstrained.
func Lookup(id string) (Profile, bool) {
	p, ok := profiles[id]
	return p, ok
}

// Profiles returns all registered profiles in presentation order.
func Profiles() []Profile {
	out := make([]Profile, 0, len(profileOrder))
	for _, id := range profileOrder {
		out = append(out, profiles[id])
	}
	return out
}

// Adapt produces a variant of content that satisfies the platform's
// character and hashtag limits. Unknown platform ids return the content
// unchanged. Lengths are counted in runes.
func Adapt(content, platformID string) string {
	p, ok := profiles[platformID]
	if !ok {
		return content
	}

	adapted := content

	runes := []rune(adapted)
	if len(runes) > p.MaxChars {
		cut := p.MaxChars - 3
		if cut < 0 {
			cut = 0
		}
		adapted = string(runes[:cut]) + "..."
	}

	// Drop excess hashtag tokens by position, keeping the first MaxHashtags.
	matches := hashtagPattern.FindAllStringIndex(adapted, -1)
	if len(matches) > p.MaxHashtags {
		for i := len(matches) - 1; i >= p.MaxHashtags; i-- {
			adapted = adapted[:matches[i][0]] + adapted[matches[i][1]:]
		}
	}

	return strings.Join(strings.Fields(adapted), " ")
}

// CharStatus classifies how close a content length is to a platform limit.
type CharStatus string

const (
	StatusOK      CharStatus = "ok"
	StatusWarning CharStatus = "warning"
	StatusDanger  CharStatus = "danger"
)

// CharacterStatus returns danger at or over the limit, warning from 90% of
// the limit, and ok below that.
func CharacterStatus(length, maxChars int) CharStatus {
	ratio := float64(length) / float64(maxChars)
	if ratio >= 1 {
		return StatusDanger
	}
	if ratio >= 0.9 {
		return StatusWarning
	}
	return StatusOK
}

// CountHashtags counts hashtag tokens ("#" followed by word characters).
func CountHashtags(content string) int {
	return len(hashtagPattern.FindAllString(content, -1))
}
