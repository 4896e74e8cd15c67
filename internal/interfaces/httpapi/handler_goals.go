package httpapi

import (
	"net/http"

	"github.com/riskibarqy/goals-api/internal/usecase"
)

func (h *Handler) ListGoals(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ListGoals")
	defer span.End()

	req, err := parseGoalsRequest(r.URL.Query())
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	report, err := h.goalService.Goals(ctx, usecase.GoalsQuery{
		Season:     req.Season,
		Leagues:    req.Leagues,
		Refresh:    req.Refresh,
		Highlights: req.Highlights,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list goals failed", "season", req.Season, "leagues", req.Leagues, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, report)
}

func (h *Handler) GetLeagueGoals(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "GetLeagueGoals")
	defer span.End()

	leagueKey := r.PathValue("league")
	req, err := parseGoalsRequest(r.URL.Query())
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	report, err := h.goalService.LeagueGoals(ctx, usecase.LeagueGoalsQuery{
		Season:     req.Season,
		League:     leagueKey,
		Refresh:    req.Refresh,
		Highlights: req.Highlights,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "get league goals failed", "league", leagueKey, "season", req.Season, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, report)
}
