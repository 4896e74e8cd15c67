package httpapi

import "net/http"

type endpoint struct {
	method      string
	path        string
	description string
}

// apiEndpoints is what the index route advertises.
var apiEndpoints = []endpoint{
	{http.MethodGet, "/api/leagues", "league catalog"},
	{http.MethodGet, "/api/goals?season&leagues&refresh&highlights", "goals across leagues"},
	{http.MethodGet, "/api/goals/{league}?season&refresh&highlights", "goals for one league"},
	{http.MethodGet, "/api/highlights?leagues&date&limit&refresh", "highlights across leagues"},
	{http.MethodGet, "/api/highlights/match?home&away&date", "highlights for one match"},
	{http.MethodGet, "/api/highlights/{league}?date&limit&refresh", "highlights for one league"},
	{http.MethodGet, "/api/cache/status", "cache entries"},
	{http.MethodDelete, "/api/cache", "clear the cache"},
	{http.MethodDelete, "/api/cache/{key}", "delete one cache entry"},
	{http.MethodPost, "/api/assistant/ask", "ask the assistant"},
}

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /{$}", handler.Index)
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerGoalRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/leagues", handler.ListLeagues)
	mux.HandleFunc("GET /api/goals", handler.ListGoals)
	mux.HandleFunc("GET /api/goals/{league}", handler.GetLeagueGoals)
}

func registerHighlightRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/highlights", handler.ListHighlights)
	mux.HandleFunc("GET /api/highlights/match", handler.GetMatchHighlights)
	mux.HandleFunc("GET /api/highlights/{league}", handler.GetLeagueHighlights)
}

func registerCacheRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/cache/status", handler.GetCacheStatus)
	mux.HandleFunc("DELETE /api/cache", handler.ClearCache)
	mux.HandleFunc("DELETE /api/cache/{key}", handler.DeleteCacheKey)
}

func registerAssistantRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /api/assistant/ask", handler.Ask)
}
