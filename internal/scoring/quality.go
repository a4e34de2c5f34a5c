// Package scoring contains the heuristic readiness scores shown to authors
// while they draft: a five-criteria quality rubric for feed posts and an
// engagement-potential estimate for short video scripts.
package scoring

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const pointsPerCriterion = 20

// Length bounds for the quality rubric, counted in runes.
const (
	minContentLength = 50
	maxContentLength = 2000
)

// Criterion is one line of the quality rubric. Suggestion is set only when
// the criterion failed and a concrete fix exists.
type Criterion struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	Passed     bool   `json:"passed"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Analysis is the result of scoring one draft.
type Analysis struct {
	Score    int         `json:"score"`
	Label    string      `json:"label"`
	Criteria []Criterion `json:"criteria"`
}

// ctaPatterns are the call-to-action triggers, matched case-insensitively
// anywhere in the content. The list mixes French and English action verbs;
// a trailing "?" or "!" also counts.
var ctaPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)cliquez`),
	regexp.MustCompile(`(?i)découvrez`),
	regexp.MustCompile(`(?i)inscrivez`),
	regexp.MustCompile(`(?i)téléchargez`),
	regexp.MustCompile(`(?i)contactez`),
	regexp.MustCompile(`(?i)rejoignez`),
	regexp.MustCompile(`(?i)essayez`),
	regexp.MustCompile(`(?i)commencez`),
	regexp.MustCompile(`(?i)abonnez`),
	regexp.MustCompile(`(?i)partagez`),
	regexp.MustCompile(`(?i)commentez`),
	regexp.MustCompile(`(?i)likez`),
	regexp.MustCompile(`(?i)suivez`),
	regexp.MustCompile(`(?i)achetez`),
	regexp.MustCompile(`(?i)réservez`),
	regexp.MustCompile(`(?i)click`),
	regexp.MustCompile(`(?i)discover`),
	regexp.MustCompile(`(?i)join`),
	regexp.MustCompile(`(?i)try`),
	regexp.MustCompile(`(?i)start`),
	regexp.MustCompile(`(?i)subscribe`),
	regexp.MustCompile(`\?$`),
	regexp.MustCompile(`!$`),
}

var hashtagPattern = regexp.MustCompile(`#\w+`)

// ScoreContent evaluates a draft against the five-point rubric. Each
// criterion is worth 20 points and the criteria always come back in the
// same order: length, cta, hashtags, emojis, visual.
func ScoreContent(content string, hasImage bool) Analysis {
	criteria := make([]Criterion, 0, 5)
	score := 0

	contentLength := utf8.RuneCountInString(content)
	lengthOK := contentLength >= minContentLength && contentLength <= maxContentLength
	lengthSuggestion := ""
	if contentLength < minContentLength {
		lengthSuggestion = "Ajoutez plus de contenu (min. 50 caractères)"
	} else if contentLength > maxContentLength {
		lengthSuggestion = "Raccourcissez votre texte (max. 2000 caractères)"
	}
	criteria = append(criteria, Criterion{
		ID:         "length",
		Label:      "Longueur appropriée",
		Passed:     lengthOK,
		Suggestion: lengthSuggestion,
	})
	if lengthOK {
		score += pointsPerCriterion
	}

	hasCTA := false
	for _, pattern := range ctaPatterns {
		if pattern.MatchString(content) {
			hasCTA = true
			break
		}
	}
	ctaSuggestion := ""
	if !hasCTA {
		ctaSuggestion = "Ajoutez un appel à l'action (ex: Découvrez, Rejoignez-nous...)"
	}
	criteria = append(criteria, Criterion{
		ID:         "cta",
		Label:      "Appel à l'action",
		Passed:     hasCTA,
		Suggestion: ctaSuggestion,
	})
	if hasCTA {
		score += pointsPerCriterion
	}

	hashtagCount := len(hashtagPattern.FindAllString(content, -1))
	hashtagsOK := hashtagCount >= 1 && hashtagCount <= 15
	hashtagSuggestion := ""
	if hashtagCount == 0 {
		hashtagSuggestion = "Ajoutez des hashtags pertinents"
	} else if hashtagCount > 15 {
		hashtagSuggestion = "Réduisez le nombre de hashtags (max. 15)"
	}
	criteria = append(criteria, Criterion{
		ID:         "hashtags",
		Label:      "Hashtags présents",
		Passed:     hashtagsOK,
		Suggestion: hashtagSuggestion,
	})
	if hashtagsOK {
		score += pointsPerCriterion
	}

	hasEmojis := false
	for _, emoji := range commonEmojis {
		if strings.Contains(content, emoji) {
			hasEmojis = true
			break
		}
	}
	emojiSuggestion := ""
	if !hasEmojis {
		emojiSuggestion = "Ajoutez des emojis pour plus d'engagement"
	}
	criteria = append(criteria, Criterion{
		ID:         "emojis",
		Label:      "Emojis utilisés",
		Passed:     hasEmojis,
		Suggestion: emojiSuggestion,
	})
	if hasEmojis {
		score += pointsPerCriterion
	}

	visualSuggestion := ""
	if !hasImage {
		visualSuggestion = "Ajoutez une image pour augmenter l'engagement"
	}
	criteria = append(criteria, Criterion{
		ID:         "visual",
		Label:      "Visuel inclus",
		Passed:     hasImage,
		Suggestion: visualSuggestion,
	})
	if hasImage {
		score += pointsPerCriterion
	}

	return Analysis{
		Score:    score,
		Label:    ScoreLabel(score),
		Criteria: criteria,
	}
}

// ScoreLabel maps an aggregate quality score to its display label.
func ScoreLabel(score int) string {
	if score < 40 {
		return "À améliorer"
	}
	if score < 70 {
		return "Correct"
	}
	return "Excellent"
}
