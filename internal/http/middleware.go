package httpapi

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/statisticsnorway/dataset-access-sub000/pkg/requestcontext"
)

// requestID tags every request with an id for log correlation, honoring an
// inbound X-Request-Id from upstream proxies.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r.WithContext(requestcontext.WithRequestID(r.Context(), id)))
	})
}
