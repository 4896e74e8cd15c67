package httpapi

import (
	"net/http"
)

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "Index")
	defer span.End()

	keys, err := h.leagueService.AvailableKeys(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list league keys failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	endpoints := make([]endpointDTO, 0, len(apiEndpoints))
	for _, e := range apiEndpoints {
		endpoints = append(endpoints, endpointDTO{Method: e.method, Path: e.path, Description: e.description})
	}

	writeSuccess(ctx, w, http.StatusOK, indexDTO{
		Service:          h.info.Name,
		Version:          h.info.Version,
		Endpoints:        endpoints,
		AvailableLeagues: keys,
	})
}

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ListLeagues")
	defer span.End()

	leagues, err := h.leagueService.ListLeagues(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list leagues failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leagueDTO, 0, len(leagues))
	for _, l := range leagues {
		items = append(items, leagueToDTO(l))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
