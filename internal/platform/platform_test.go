package platform

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	p, ok := Lookup("twitter")
	require.True(t, ok)
	assert.Equal(t, 280, p.MaxChars)
	assert.Equal(t, 2, p.MaxHashtags)
	assert.Equal(t, []string{"16:9", "1:1"}, p.ImageRatios)

	_, ok = Lookup("myspace")
	assert.False(t, ok)
}

func TestProfilesOrder(t *testing.T) {
	ids := make([]string, 0)
	for _, p := range Profiles() {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"instagram", "twitter", "linkedin", "facebook", "tiktok"}, ids)
}

func TestAdapt_UnknownPlatformIsIdentity(t *testing.T) {
	content := "hello   world #a #b #c"
	assert.Equal(t, content, Adapt(content, "myspace"))
}

func TestAdapt_TruncatesLongContent(t *testing.T) {
	content := strings.Repeat("A", 300) + " #a #b #c #d #e #f"
	got := Adapt(content, "twitter")

	// 277 chars + "..." = 280; the hashtags sat past the cut point.
	assert.Equal(t, 280, len([]rune(got)))
	assert.Equal(t, strings.Repeat("A", 277)+"...", got)
}

func TestAdapt_DropsExcessHashtags(t *testing.T) {
	content := "Nouvelle offre #promo #vente #soldes #deal"
	got := Adapt(content, "twitter")

	assert.Equal(t, "Nouvelle offre #promo #vente", got)
	assert.Equal(t, 2, CountHashtags(got))
}

func TestAdapt_DuplicateHashtagsRemovedByPosition(t *testing.T) {
	// The second #promo must be removed, not the first.
	content := "#promo ouvre la #vente et #promo revient"
	got := Adapt(content, "twitter")

	assert.Equal(t, "#promo ouvre la #vente et revient", got)
}

func TestAdapt_SatisfiesLimitsForAllPlatforms(t *testing.T) {
	content := strings.Repeat("word ", 15000) + strings.Repeat("#tag ", 40)
	for _, p := range Profiles() {
		got := Adapt(content, p.ID)
		assert.LessOrEqual(t, len([]rune(got)), p.MaxChars, p.ID)
		assert.LessOrEqual(t, CountHashtags(got), p.MaxHashtags, p.ID)
	}
}

func TestAdapt_IdempotentOnCompliantContent(t *testing.T) {
	for _, content := range []string{
		"short post #one",
		"Découvrez notre offre! #promo #vente",
		"",
	} {
		once := Adapt(content, "linkedin")
		twice := Adapt(once, "linkedin")
		assert.Equal(t, once, twice)
	}
}

func TestCharacterStatus(t *testing.T) {
	assert.Equal(t, StatusDanger, CharacterStatus(280, 280))
	assert.Equal(t, StatusDanger, CharacterStatus(300, 280))
	assert.Equal(t, StatusWarning, CharacterStatus(266, 280)) // 95%
	assert.Equal(t, StatusWarning, CharacterStatus(252, 280)) // exactly 90%
	assert.Equal(t, StatusOK, CharacterStatus(140, 280))      // 50%
	assert.Equal(t, StatusOK, CharacterStatus(0, 280))
}

func TestCountHashtags(t *testing.T) {
	assert.Equal(t, 0, CountHashtags("no tags here"))
	assert.Equal(t, 2, CountHashtags("#promo and #vente"))
	assert.Equal(t, 1, CountHashtags("trailing hash # then #real"))
	assert.Equal(t, 2, CountHashtags("#a#b"))
}
