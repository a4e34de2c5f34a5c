package scoring

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Runes-per-second used to estimate spoken duration from a script.
const scriptSecondsPerRune = 0.05

// SubtitleSettings configures the burned-in captions of a video project.
type SubtitleSettings struct {
	Enabled           bool   `json:"enabled"`
	HighlightKeywords bool   `json:"highlight_keywords"`
	Style             string `json:"style"`
}

// VideoProject is a short-video draft built in the video lab.
type VideoProject struct {
	ID            string           `json:"id"`
	Script        string           `json:"script"`
	Template      string           `json:"template,omitempty"`
	SelectedHooks []string         `json:"hooks,omitempty"`
	Subtitles     SubtitleSettings `json:"subtitles"`
	SelectedMusic string           `json:"music,omitempty"`
	Format        string           `json:"format,omitempty"`
}

var numberedHookPattern = regexp.MustCompile(`^\d+\s`)

// ScoreVideo estimates the engagement potential of a video draft on a
// 0-100 scale. Four additive signals: an opening hook (+30), a spoken
// duration between 7 and 30 seconds (+25), enabled subtitles (+25) and
// a selected music track (+20).
func ScoreVideo(project VideoProject) int {
	score := 0

	lowerScript := strings.ToLower(project.Script)
	hasHook := len(project.SelectedHooks) > 0 ||
		strings.Contains(lowerScript, "saviez-vous") ||
		strings.Contains(lowerScript, "astuce") ||
		numberedHookPattern.MatchString(project.Script)
	if hasHook {
		score += 30
	}

	duration := float64(utf8.RuneCountInString(project.Script)) * scriptSecondsPerRune
	if duration >= 7 && duration <= 30 {
		score += 25
	}

	if project.Subtitles.Enabled {
		score += 25
	}

	if project.SelectedMusic != "" {
		score += 20
	}

	if score > 100 {
		score = 100
	}
	return score
}

// VideoScoreLabel maps a virality score to its display label.
func VideoScoreLabel(score int) string {
	if score >= 80 {
		return "Excellent potentiel viral"
	}
	if score >= 50 {
		return "Bon potentiel"
	}
	return "À améliorer"
}
