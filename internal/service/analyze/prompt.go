package analyze

import (
	"fmt"

	"github.com/derdiedas/backend/internal/provider/llm"
)

const (
	systemPrompt = "German linguistics analyzer. Return only valid JSON."

	extractionPrompt = `Analyze German text. Extract nouns and articles as JSON.
Rules: Exclude adjectives, include only true nouns (Substantiv).
Nouns: original, lemma, gender (m/f/n/pl), plural, translation_zh, translation_en
Articles: original, gender (based on noun it modifies)
Format: {"nouns":[...],"articles":[...]}`

	temperature = 0.3
)

func completionRequest(text string, maxTokens int) llm.CompletionRequest {
	return llm.CompletionRequest{
		SystemPrompt: systemPrompt,
		Messages: []llm.Message{
			{Role: "user", Content: fmt.Sprintf("%s\n\nText:\n%s", extractionPrompt, text)},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}
}
