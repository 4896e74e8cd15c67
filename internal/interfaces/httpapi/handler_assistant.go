package httpapi

import (
	"net/http"

	"github.com/riskibarqy/goals-api/internal/usecase"
)

const maxAskBodyBytes = 1 << 20

func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "Ask")
	defer span.End()

	r.Body = http.MaxBytesReader(w, r.Body, maxAskBodyBytes)

	var req askRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.assistantService.Ask(ctx, usecase.AskInput{
		Question: req.Question,
		Context:  req.Context,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "assistant ask failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
