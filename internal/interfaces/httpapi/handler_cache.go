package httpapi

import (
	"net/http"
)

func (h *Handler) GetCacheStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "GetCacheStatus")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, h.cacheService.Status(ctx))
}

func (h *Handler) ClearCache(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ClearCache")
	defer span.End()

	cleared := h.cacheService.Clear(ctx)
	h.logger.InfoContext(ctx, "cache cleared", "entries", cleared)

	writeSuccess(ctx, w, http.StatusOK, cacheClearedDTO{Cleared: cleared})
}

func (h *Handler) DeleteCacheKey(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "DeleteCacheKey")
	defer span.End()

	key := r.PathValue("key")
	if err := h.cacheService.Delete(ctx, key); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, cacheDeletedDTO{Deleted: key})
}
