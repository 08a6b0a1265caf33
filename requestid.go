package session

import (
	"net/http"

	"github.com/cccteam/logger"
	"github.com/gofrs/uuid"
)

// RequestID tags each request with a generated ID, echoed in the
// X-Request-Id header and attached to the logging context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.NewV4()
		if err != nil {
			next.ServeHTTP(w, r)

			return
		}

		w.Header().Set("X-Request-Id", id.String())

		logger.Req(r).AddRequestAttribute("request ID", id.String())
		l := logger.Req(r).WithAttributes().AddAttribute("request ID", id.String()).Logger()

		next.ServeHTTP(w, r.WithContext(logger.NewCtx(r.Context(), l)))
	})
}
