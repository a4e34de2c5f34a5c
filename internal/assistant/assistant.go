// Package assistant generates and reworks French social-media copy
// through an LLM provider. Every helper asks for a strict JSON reply
// and parses it into a typed result.
package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"postdeck/pkg/llm"
	"postdeck/pkg/logging"
)

// ErrUnknownAction is returned for an improve-text action outside the
// supported set.
var ErrUnknownAction = errors.New("unknown improvement action")

var lengthInstructions = map[string]string{
	"short":  "environ 50-80 caractères",
	"medium": "environ 150-200 caractères",
	"long":   "environ 300-400 caractères",
}

var toneInstructions = map[string]string{
	"professional": "professionnel et sérieux",
	"casual":       "décontracté et amical",
	"humorous":     "humoristique et léger",
}

var actionInstructions = map[string]string{
	"shorten":       "Raccourcis ce texte tout en gardant le message principal. Réduis d'au moins 30%.",
	"lengthen":      "Développe ce texte en ajoutant plus de détails et de contexte. Augmente d'au moins 50%.",
	"professional":  "Reformule ce texte avec un ton plus professionnel et formel.",
	"casual":        "Reformule ce texte avec un ton plus décontracté et amical.",
	"fix_spelling":  "Corrige toutes les fautes d'orthographe et de grammaire dans ce texte.",
	"add_emojis":    "Ajoute des emojis pertinents dans ce texte pour le rendre plus engageant.",
	"more_engaging": "Reformule ce texte pour le rendre plus engageant et captivant. Ajoute un appel à l'action.",
}

var monthNames = []string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// CaptionRequest asks for three caption variants.
type CaptionRequest struct {
	Subject  string   `json:"subject"`
	Tone     string   `json:"tone"`
	Length   string   `json:"length"`
	Keywords []string `json:"keywords,omitempty"`
}

// HashtagSuggestion is one suggested hashtag with an estimated reach
// bucket (élevée, moyenne, faible, niche).
type HashtagSuggestion struct {
	Tag            string `json:"tag"`
	EstimatedReach string `json:"estimated_reach"`
}

// ImportantDate is one marketing-relevant calendar entry.
type ImportantDate struct {
	Date        string   `json:"date"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Hashtags    []string `json:"hashtags"`
	Category    string   `json:"category"`
}

// GeneratedPost is a drafted post for a calendar event.
type GeneratedPost struct {
	Content  string   `json:"content"`
	Hashtags []string `json:"hashtags"`
}

// VideoIdea is one video project extracted from free-form notes.
type VideoIdea struct {
	Script            string   `json:"script"`
	Hook              string   `json:"hook"`
	Template          string   `json:"template"`
	Format            string   `json:"format"`
	ScheduledDate     string   `json:"scheduledDate"`
	MusicStyle        string   `json:"musicStyle"`
	ImageKeywords     []string `json:"imageKeywords"`
	VideoKeywords     []string `json:"videoKeywords"`
	SuggestedTitle    string   `json:"suggestedTitle"`
	EstimatedDuration int      `json:"estimatedDuration"`
}

// Assistant wraps an LLM provider with the copywriting prompts.
type Assistant struct {
	provider llm.Provider
	logger   logging.Logger
}

func New(provider llm.Provider, logger logging.Logger) *Assistant {
	return &Assistant{provider: provider, logger: logger}
}

// GenerateCaptions produces three caption variants for a subject.
func (a *Assistant) GenerateCaptions(ctx context.Context, req CaptionRequest) ([]string, error) {
	tone, ok := toneInstructions[req.Tone]
	if !ok {
		tone = req.Tone
	}
	length, ok := lengthInstructions[req.Length]
	if !ok {
		length = req.Length
	}
	keywordsText := ""
	if len(req.Keywords) > 0 {
		keywordsText = fmt.Sprintf("Intègre naturellement ces mots-clés: %s.", strings.Join(req.Keywords, ", "))
	}

	prompt := fmt.Sprintf(`Tu es un expert en marketing sur les réseaux sociaux. Génère 3 légendes/captions différentes pour un post sur les réseaux sociaux.

Sujet: %s
Ton: %s
Longueur: %s
%s

Réponds UNIQUEMENT avec un JSON valide au format: {"captions": ["caption1", "caption2", "caption3"]}
Les captions doivent être en français et engageantes.`, req.Subject, tone, length, keywordsText)

	var out struct {
		Captions []string `json:"captions"`
	}
	if err := a.completeJSON(ctx, nil, prompt, &out); err != nil {
		return nil, err
	}
	return out.Captions, nil
}

// ImproveText rewrites text according to one of the supported actions.
func (a *Assistant) ImproveText(ctx context.Context, text, action string) (string, error) {
	instruction, ok := actionInstructions[action]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}

	prompt := fmt.Sprintf(`%s

Texte original:
"%s"

Réponds UNIQUEMENT avec un JSON valide au format: {"improved": "texte amélioré ici"}
Le texte doit être en français.`, instruction, text)

	var out struct {
		Improved string `json:"improved"`
	}
	if err := a.completeJSON(ctx, nil, prompt, &out); err != nil {
		return "", err
	}
	return out.Improved, nil
}

// SuggestHashtags proposes hashtags for content on a given platform.
func (a *Assistant) SuggestHashtags(ctx context.Context, content, platformID string) ([]HashtagSuggestion, error) {
	prompt := fmt.Sprintf(`Tu es un expert en marketing sur les réseaux sociaux. Analyse ce contenu et suggère 15 hashtags pertinents pour %s.

Contenu: "%s"

Pour chaque hashtag, estime sa portée potentielle (élevée, moyenne, faible ou niche).

Réponds UNIQUEMENT avec un JSON valide au format:
{"hashtags": [{"tag": "#exemple", "estimated_reach": "élevée"}, ...]}

Les hashtags doivent être pertinents pour un public francophone et optimisés pour %s.`, platformID, content, platformID)

	var out struct {
		Hashtags []HashtagSuggestion `json:"hashtags"`
	}
	if err := a.completeJSON(ctx, nil, prompt, &out); err != nil {
		return nil, err
	}
	return out.Hashtags, nil
}

// ImportantDates lists marketing-relevant dates for a month.
func (a *Assistant) ImportantDates(ctx context.Context, month, year int) ([]ImportantDate, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("month must be between 1 and 12, got %d", month)
	}

	prompt := fmt.Sprintf(`Tu es un expert en marketing digital et en community management. Génère une liste de dates importantes pour le mois de %s %d.

Inclus les types d'événements suivants:
- Jours fériés et fêtes (holiday)
- Événements marketing majeurs comme Black Friday, Cyber Monday, Saint-Valentin, etc. (marketing)
- Journées mondiales et de sensibilisation (awareness)
- Événements saisonniers (seasonal)

Pour chaque date, fournis:
- La date au format ISO (YYYY-MM-DD)
- Le titre de l'événement
- Une courte description (1-2 phrases) orientée marketing/contenu
- Des hashtags pertinents (5-8 hashtags)
- La catégorie (holiday, marketing, awareness, seasonal)

Réponds UNIQUEMENT avec un JSON valide au format:
{"dates": [{"date": "YYYY-MM-DD", "title": "Nom de l'événement", "description": "Description courte pour le marketing", "hashtags": ["#hashtag1", "#hashtag2"], "category": "holiday"}]}

Génère entre 8 et 15 dates pertinentes pour ce mois. Toutes les réponses doivent être en français.`, monthNames[month-1], year)

	var out struct {
		Dates []ImportantDate `json:"dates"`
	}
	if err := a.completeJSON(ctx, nil, prompt, &out); err != nil {
		return nil, err
	}
	return out.Dates, nil
}

// GeneratePostForDate drafts a post for a calendar event.
func (a *Assistant) GeneratePostForDate(ctx context.Context, date, event, description string) (GeneratedPost, error) {
	prompt := fmt.Sprintf(`Tu es un expert en community management et en création de contenu pour les réseaux sociaux. Génère un post engageant pour l'événement suivant:

Date: %s
Événement: %s
Description: %s

Le post doit:
- Être engageant et captiver l'attention
- Inclure un appel à l'action
- Être adapté aux réseaux sociaux (LinkedIn, Instagram, Facebook)
- Faire environ 150-250 caractères
- Utiliser des emojis de manière appropriée

Réponds UNIQUEMENT avec un JSON valide au format:
{"content": "Le texte du post avec emojis", "hashtags": ["#hashtag1", "#hashtag2", "#hashtag3", "#hashtag4", "#hashtag5"]}

La réponse doit être en français.`, date, event, description)

	var out GeneratedPost
	if err := a.completeJSON(ctx, nil, prompt, &out); err != nil {
		return GeneratedPost{}, err
	}
	return out, nil
}

const parseVideosSystemPrompt = `Tu es un assistant expert en création de contenu vidéo court (TikTok, Reels, Shorts).

Analyse chaque vidéo décrite et extrais/suggère:
- script: Le contenu/texte de la vidéo
- hook: L'accroche (choisis parmi: "saviez-vous", "astuces", "erreur", "secret", "arretez")
- template: Le template (choisis parmi: "viral-hook", "tutorial", "product-review")
- format: Le format (choisis parmi: "tiktok", "instagram-reel", "youtube-short")
- scheduledDate: Date/heure de publication si mentionnée (format ISO), sinon null
- musicStyle: Style de musique suggéré (upbeat, calm, dramatic, trendy, corporate)
- imageKeywords: 3-5 mots-clés en anglais pour chercher une image de fond adaptée au contenu
- videoKeywords: 3-5 mots-clés en anglais pour chercher une vidéo de fond adaptée
- suggestedTitle: Un titre court et accrocheur pour la vidéo (max 50 caractères)
- estimatedDuration: Durée estimée en secondes (15, 30, 60)

Réponds UNIQUEMENT en JSON valide:
{"videos": [{"script": "...", "hook": "saviez-vous", "template": "viral-hook", "format": "tiktok", "scheduledDate": null, "musicStyle": "upbeat", "imageKeywords": ["business"], "videoKeywords": ["office"], "suggestedTitle": "Titre accrocheur", "estimatedDuration": 30}]}`

// ParseVideos extracts structured video projects from free-form notes.
func (a *Assistant) ParseVideos(ctx context.Context, text string) ([]VideoIdea, error) {
	system := []llm.Message{{Role: "system", Content: parseVideosSystemPrompt}}

	var out struct {
		Videos []VideoIdea `json:"videos"`
	}
	if err := a.completeJSON(ctx, system, text, &out); err != nil {
		return nil, err
	}
	return out.Videos, nil
}

// completeJSON runs one completion, collects the streamed content and
// decodes the JSON object it contains.
func (a *Assistant) completeJSON(ctx context.Context, system []llm.Message, prompt string, out any) error {
	messages := append(system, llm.Message{Role: "user", Content: prompt})

	stream, err := a.provider.Complete(ctx, messages, nil)
	if err != nil {
		return fmt.Errorf("llm complete: %w", err)
	}
	defer stream.Close()

	var response strings.Builder
	for {
		chunk, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("llm stream: %w", err)
		}
		response.WriteString(chunk.Content)
	}

	raw := extractJSON(response.String())
	if raw == "" {
		return errors.New("llm response contains no JSON object")
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		a.logger.WithError(err).Debug("Unparseable assistant reply")
		return fmt.Errorf("decode llm response: %w", err)
	}
	return nil
}

// extractJSON strips anything around the outermost JSON object, such
// as markdown fences some models insist on.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return ""
	}
	return s[start : end+1]
}
