package rest

import "net/http"

// Handlers groups everything the router mounts.
type Handlers struct {
	Analyze    *AnalyzeHandler
	Declension *DeclensionHandler
	Dictionary *DictionaryHandler
	Favorites  *FavoritesHandler
	Health     *HealthHandler
}

// NewRouter builds the API route table.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/analyze", h.Analyze.Analyze)
	mux.HandleFunc("POST /api/declension", h.Declension.Decline)

	mux.HandleFunc("GET /api/dictionary/stats", h.Dictionary.Stats)
	mux.HandleFunc("GET /api/dictionary/{lemma}", h.Dictionary.Lookup)

	mux.HandleFunc("GET /api/favorites", h.Favorites.List)
	mux.HandleFunc("POST /api/favorites", h.Favorites.Save)
	mux.HandleFunc("DELETE /api/favorites/{lemma}", h.Favorites.Remove)

	mux.HandleFunc("GET /health", h.Health.Health)
	mux.HandleFunc("GET /health/live", h.Health.Live)
	mux.HandleFunc("GET /health/ready", h.Health.Ready)

	return mux
}
