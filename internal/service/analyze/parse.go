package analyze

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/derdiedas/backend/internal/domain"
)

var fenceRE = regexp.MustCompile("```(?:json)?\n?")

// rawNoun and rawArticle are the loosely typed shapes the model actually
// returns. Coercion into domain types happens record by record so one
// malformed record never discards its siblings.
type rawNoun struct {
	Original      string `json:"original"`
	Lemma         string `json:"lemma"`
	Gender        string `json:"gender"`
	Plural        bool   `json:"plural"`
	TranslationZh string `json:"translation_zh"`
	TranslationEn string `json:"translation_en"`
}

type rawArticle struct {
	Original string `json:"original"`
	Gender   string `json:"gender"`
}

type rawPayload struct {
	Nouns    []json.RawMessage `json:"nouns"`
	Articles []json.RawMessage `json:"articles"`
}

// parseResponse extracts noun and article records from a raw model reply.
// Best effort over an unreliable source: code fences and surrounding prose
// are tolerated, a bare JSON array is treated as nouns-only, and a reply
// nothing can be decoded from yields empty lists rather than an error.
func parseResponse(raw string) ([]domain.Noun, []domain.Article) {
	cleaned := strings.TrimSpace(fenceRE.ReplaceAllString(raw, ""))
	if cleaned == "" {
		return nil, nil
	}

	if nouns, articles, ok := decodePayload(cleaned); ok {
		return nouns, articles
	}
	if sub, ok := braceSubstring(cleaned); ok {
		if nouns, articles, ok := decodePayload(sub); ok {
			return nouns, articles
		}
	}
	return nil, nil
}

func decodePayload(s string) ([]domain.Noun, []domain.Article, bool) {
	var payload rawPayload
	if err := json.Unmarshal([]byte(s), &payload); err == nil {
		return decodeNouns(payload.Nouns), decodeArticles(payload.Articles), true
	}

	// Older model replies were a bare array of noun records.
	var legacy []json.RawMessage
	if err := json.Unmarshal([]byte(s), &legacy); err == nil {
		return decodeNouns(legacy), nil, true
	}
	return nil, nil, false
}

func decodeNouns(raw []json.RawMessage) []domain.Noun {
	nouns := make([]domain.Noun, 0, len(raw))
	for _, r := range raw {
		var n rawNoun
		if err := json.Unmarshal(r, &n); err != nil || n.Original == "" {
			continue
		}
		nouns = append(nouns, domain.Noun{
			Original:      n.Original,
			Lemma:         n.Lemma,
			Gender:        domain.Gender(strings.ToLower(strings.TrimSpace(n.Gender))),
			Plural:        n.Plural,
			TranslationZh: n.TranslationZh,
			TranslationEn: n.TranslationEn,
		})
	}
	return nouns
}

func decodeArticles(raw []json.RawMessage) []domain.Article {
	articles := make([]domain.Article, 0, len(raw))
	for _, r := range raw {
		var a rawArticle
		if err := json.Unmarshal(r, &a); err != nil || a.Original == "" {
			continue
		}
		articles = append(articles, domain.Article{
			Original: a.Original,
			Gender:   domain.Gender(strings.ToLower(strings.TrimSpace(a.Gender))),
		})
	}
	return articles
}

// braceSubstring returns the widest brace-delimited substring of s, covering
// replies that wrap the JSON object in explanatory prose.
func braceSubstring(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}
