package httpapi

import (
	"net/http"

	"github.com/riskibarqy/goals-api/internal/platform/id"
	"github.com/riskibarqy/goals-api/internal/platform/logging"
)

func NewRouter(
	handler *Handler,
	logger *logging.Logger,
	swaggerEnabled bool,
	corsAllowedOrigins []string,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, swaggerEnabled)
	registerGoalRoutes(mux, handler)
	registerHighlightRoutes(mux, handler)
	registerCacheRoutes(mux, handler)
	registerAssistantRoutes(mux, handler)

	requestIDs := id.NewRandomGeneratorWithLength(8)
	return RequestTracing(RequestID(requestIDs, RequestLogging(logger, CORS(corsAllowedOrigins, recoverPanic(logger, mux)))))
}
