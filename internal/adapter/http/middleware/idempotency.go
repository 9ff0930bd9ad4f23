package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/fundhost/ledger/internal/usecase"
)

const (
	// IdempotencyKeyHeader is the header clients set to deduplicate writes.
	IdempotencyKeyHeader = "Idempotency-Key"

	idempotencyTTL = 24 * time.Hour

	// inflightMarker is stored while the first request is still being
	// handled. It must match what the Redis store writes on SetNX.
	inflightMarker = "processing"
)

// IdempotencyMiddleware replays stored responses for repeated writes.
type IdempotencyMiddleware struct {
	store usecase.IdempotencyStore
}

// NewIdempotencyMiddleware creates a new IdempotencyMiddleware.
func NewIdempotencyMiddleware(store usecase.IdempotencyStore) *IdempotencyMiddleware {
	return &IdempotencyMiddleware{store: store}
}

// Wrap adds replay protection for POST and PUT requests carrying an
// Idempotency-Key header. The first request through records its
// response; any repeat with the same key gets that response back with
// an X-Idempotency-Replay header instead of re-running the handler.
func (m *IdempotencyMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(IdempotencyKeyHeader)
		if key == "" || !mutating(r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		exists, cached, err := m.store.CheckAndSet(r.Context(), key, nil, idempotencyTTL)
		if err != nil {
			http.Error(w, "idempotency check failed", http.StatusInternalServerError)
			return
		}

		if exists && len(cached) > 0 && string(cached) != inflightMarker {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Idempotency-Replay", "true")
			_, _ = w.Write(cached)
			return
		}

		rec := &responseRecorder{
			ResponseWriter: w,
			body:           &bytes.Buffer{},
			statusCode:     http.StatusOK,
		}
		next.ServeHTTP(rec, r)

		// Only successful responses are worth replaying.
		if rec.statusCode >= 200 && rec.statusCode < 300 {
			_ = m.store.Update(r.Context(), key, rec.body.Bytes(), idempotencyTTL)
		}
	})
}

func mutating(method string) bool {
	return method == http.MethodPost || method == http.MethodPut
}

type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       *bytes.Buffer
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}
