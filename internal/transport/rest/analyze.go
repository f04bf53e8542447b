package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/derdiedas/backend/internal/domain"
	"github.com/derdiedas/backend/internal/service/analyze"
)

type analyzer interface {
	AnalyzeStream(ctx context.Context, text string) (<-chan analyze.Event, error)
}

// AnalyzeHandler serves the streaming text analysis endpoint.
type AnalyzeHandler struct {
	log      *slog.Logger
	analyzer analyzer
}

// NewAnalyzeHandler creates an AnalyzeHandler.
func NewAnalyzeHandler(logger *slog.Logger, a analyzer) *AnalyzeHandler {
	return &AnalyzeHandler{log: logger, analyzer: a}
}

type analyzeRequest struct {
	Text string `json:"text"`
}

// Wire shapes of the three stream event kinds. Field names are part of the
// client contract.
type partialEvent struct {
	Streaming bool   `json:"streaming"`
	Partial   string `json:"partial"`
}

type doneEvent struct {
	Done     bool             `json:"done"`
	Nouns    []domain.Noun    `json:"nouns"`
	Articles []domain.Article `json:"articles"`
}

type errorEvent struct {
	Error string `json:"error"`
}

// Analyze handles POST /api/analyze. The response is a server-sent event
// stream: any number of partial events followed by exactly one done or error
// event.
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidationError("body", "invalid JSON"))
		return
	}

	events, err := h.analyzer.AnalyzeStream(r.Context(), req.Text)
	if err != nil {
		writeError(w, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, fmt.Errorf("streaming unsupported by connection"))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	send := func(v any) {
		data, err := json.Marshal(v)
		if err != nil {
			h.log.Error("marshaling stream event", slog.Any("error", err))
			return
		}
		fmt.Fprintf(w, "data: %s\n\n", data)
		flusher.Flush()
	}

	for ev := range events {
		switch {
		case ev.Err != nil:
			send(errorEvent{Error: ev.Err.Error()})
		case ev.Result != nil:
			nouns := ev.Result.Nouns
			if nouns == nil {
				nouns = []domain.Noun{}
			}
			articles := ev.Result.Articles
			if articles == nil {
				articles = []domain.Article{}
			}
			send(doneEvent{Done: true, Nouns: nouns, Articles: articles})
		default:
			send(partialEvent{Streaming: true, Partial: ev.Partial})
		}
	}
}
