package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/goals-api/internal/usecase"
)

func (h *Handler) GetMatchHighlights(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "GetMatchHighlights")
	defer span.End()

	q := r.URL.Query()
	req := matchHighlightsRequest{
		HomeTeam: strings.TrimSpace(q.Get("home")),
		AwayTeam: strings.TrimSpace(q.Get("away")),
		Date:     strings.TrimSpace(q.Get("date")),
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.highlightService.MatchHighlights(ctx, req.HomeTeam, req.AwayTeam, req.Date)
	if err != nil {
		h.logger.WarnContext(ctx, "get match highlights failed", "home", req.HomeTeam, "away", req.AwayTeam, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetLeagueHighlights(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "GetLeagueHighlights")
	defer span.End()

	leagueKey := r.PathValue("league")
	req, err := parseLeagueHighlightsRequest(r.URL.Query())
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	report, err := h.highlightService.LeagueHighlights(ctx, usecase.LeagueHighlightsQuery{
		League:  leagueKey,
		Date:    req.Date,
		Limit:   req.Limit,
		Refresh: req.Refresh,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "get league highlights failed", "league", leagueKey, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, report)
}

func (h *Handler) ListHighlights(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ListHighlights")
	defer span.End()

	req, err := parseLeagueHighlightsRequest(r.URL.Query())
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	reports, err := h.highlightService.AllLeagueHighlights(ctx, usecase.AllHighlightsQuery{
		Leagues: req.Leagues,
		Date:    req.Date,
		Limit:   req.Limit,
		Refresh: req.Refresh,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list highlights failed", "leagues", req.Leagues, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, reports)
}
