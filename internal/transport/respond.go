// Package transport exposes the facade over HTTP. Handlers translate the
// facade's two failure channels: a transport error becomes a retryable 503,
// a Success=false envelope passes through with a semantic status code.
package transport

import (
	"net/http"

	"go.uber.org/zap"

	"otica-store/internal/domain"
	"otica-store/internal/fault"
	"otica-store/internal/middleware"
)

// respondResult writes the envelope, choosing failStatus when the facade
// rejected the call semantically.
func respondResult[T any](w http.ResponseWriter, resp domain.Response[T], failStatus int) {
	status := http.StatusOK
	if !resp.Success {
		status = failStatus
	}
	middleware.RespondJSON(w, status, resp)
}

// respondFailure handles the error channel of a facade call.
func respondFailure(w http.ResponseWriter, logger *zap.Logger, err error) {
	if fault.IsTransport(err) {
		middleware.RespondTransportError(w, err.Error())
		return
	}
	logger.Error("facade call failed", zap.Error(err))
	middleware.RespondError(w, http.StatusInternalServerError, "Erro interno do servidor. Tente novamente mais tarde.")
}
