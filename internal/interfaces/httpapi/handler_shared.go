package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/goals-api/internal/domain/league"
	"github.com/riskibarqy/goals-api/internal/platform/logging"
	"github.com/riskibarqy/goals-api/internal/usecase"
)

// ServiceInfo is echoed by the index route.
type ServiceInfo struct {
	Name    string
	Version string
}

type Handler struct {
	leagueService    *usecase.LeagueService
	goalService      *usecase.GoalService
	highlightService *usecase.HighlightService
	cacheService     *usecase.CacheService
	assistantService *usecase.AssistantService
	info             ServiceInfo
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	leagueService *usecase.LeagueService,
	goalService *usecase.GoalService,
	highlightService *usecase.HighlightService,
	cacheService *usecase.CacheService,
	assistantService *usecase.AssistantService,
	info ServiceInfo,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		leagueService:    leagueService,
		goalService:      goalService,
		highlightService: highlightService,
		cacheService:     cacheService,
		assistantService: assistantService,
		info:             info,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func decodeJSONBody(r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

type goalsRequest struct {
	Season     string `validate:"omitempty,numeric,len=4"`
	Leagues    []string
	Refresh    bool
	Highlights bool
}

type leagueHighlightsRequest struct {
	Leagues []string
	Date    string `validate:"omitempty,datetime=2006-01-02"`
	Limit   int    `validate:"omitempty,min=1,max=100"`
	Refresh bool
}

type matchHighlightsRequest struct {
	HomeTeam string `validate:"required"`
	AwayTeam string `validate:"required"`
	Date     string `validate:"omitempty,datetime=2006-01-02"`
}

type askRequest struct {
	Question string         `json:"question" validate:"required,max=2000"`
	Context  map[string]any `json:"context"`
}

func parseGoalsRequest(q url.Values) (goalsRequest, error) {
	refresh, err := parseBoolParam(q, "refresh")
	if err != nil {
		return goalsRequest{}, err
	}
	highlights, err := parseBoolParam(q, "highlights")
	if err != nil {
		return goalsRequest{}, err
	}
	return goalsRequest{
		Season:     strings.TrimSpace(q.Get("season")),
		Leagues:    splitCSV(q.Get("leagues")),
		Refresh:    refresh,
		Highlights: highlights,
	}, nil
}

func parseLeagueHighlightsRequest(q url.Values) (leagueHighlightsRequest, error) {
	refresh, err := parseBoolParam(q, "refresh")
	if err != nil {
		return leagueHighlightsRequest{}, err
	}
	limit, err := parseIntParam(q, "limit")
	if err != nil {
		return leagueHighlightsRequest{}, err
	}
	return leagueHighlightsRequest{
		Leagues: splitCSV(q.Get("leagues")),
		Date:    strings.TrimSpace(q.Get("date")),
		Limit:   limit,
		Refresh: refresh,
	}, nil
}

func parseBoolParam(q url.Values, name string) (bool, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be a boolean, got %q", usecase.ErrInvalidInput, name, raw)
	}
	return v, nil
}

func parseIntParam(q url.Values, name string) (int, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", usecase.ErrInvalidInput, name, raw)
	}
	return v, nil
}

// splitCSV splits a comma separated list, dropping blanks.
func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}

type leagueDTO struct {
	Key         string   `json:"key"`
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	CountryCode string   `json:"countryCode"`
	Aliases     []string `json:"aliases"`
}

func leagueToDTO(v league.League) leagueDTO {
	aliases := v.Aliases
	if aliases == nil {
		aliases = []string{}
	}
	return leagueDTO{
		Key:         v.Key,
		Code:        v.Code,
		Name:        v.Name,
		CountryCode: v.CountryCode,
		Aliases:     aliases,
	}
}

type endpointDTO struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

type indexDTO struct {
	Service          string        `json:"service"`
	Version          string        `json:"version"`
	Endpoints        []endpointDTO `json:"endpoints"`
	AvailableLeagues []string      `json:"availableLeagues"`
}

type cacheClearedDTO struct {
	Cleared int `json:"cleared"`
}

type cacheDeletedDTO struct {
	Deleted string `json:"deleted"`
}
