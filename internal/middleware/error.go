package middleware

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"otica-store/internal/domain"
)

// RespondJSON writes any payload as JSON.
func RespondJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

// RespondError writes a semantic-rejection envelope: success=false plus a
// human-readable error, with Data left vacuous.
func RespondError(w http.ResponseWriter, statusCode int, message string) {
	RespondJSON(w, statusCode, domain.Fail[any](message))
}

// RespondTransportError reports a simulated connectivity failure. These are
// retryable, so the response carries a Retry-After hint.
func RespondTransportError(w http.ResponseWriter, message string) {
	w.Header().Set("Retry-After", "1")
	RespondError(w, http.StatusServiceUnavailable, message)
}

// ValidationError represents a field validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// RespondValidationErrors writes the field errors as a rejection envelope
// whose message is the first field's message, matching how the storefront
// surfaces one error at a time.
func RespondValidationErrors(w http.ResponseWriter, errors []ValidationError) {
	message := "Por favor, preencha todos os campos obrigatórios."
	if len(errors) > 0 {
		message = errors[0].Message
	}
	RespondJSON(w, http.StatusBadRequest, domain.Response[[]ValidationError]{
		Data:    errors,
		Success: false,
		Error:   message,
	})
}

// Recovery catches panics and converts them to 500 envelopes.
func Recovery(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic recovered",
						zap.Any("error", err),
						zap.String("path", r.URL.Path),
						zap.String("method", r.Method),
					)
					RespondError(w, http.StatusInternalServerError, "Erro interno do servidor. Tente novamente mais tarde.")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
