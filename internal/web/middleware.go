package web

import (
	"bytes"
	"context"
	"net/http"
	"time"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const writeKeyHeader = "X-Roster-Key"

// RequireWriteKey rejects mutating requests whose X-Roster-Key does not match
// hash. An empty hash disables the check.
func RequireWriteKey(hash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if hash == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isReadOnly(r.Method) {
				next.ServeHTTP(w, r)
				return
			}
			key := r.Header.Get(writeKeyHeader)
			if key == "" || bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) != nil {
				writeError(w, http.StatusUnauthorized, "invalid write key")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		if r.URL.Path == "/healthz" {
			return
		}
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func isReadOnly(method string) bool {
	return method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions
}

type flusher interface {
	Flush(ctx context.Context) error
}

// FlushWrites holds the response to a successful mutating request until the
// roster has been persisted, and answers 503 when persisting fails.
func FlushWrites(f flusher) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isReadOnly(r.Method) {
				next.ServeHTTP(w, r)
				return
			}
			buf := &bufferedResponse{header: w.Header(), status: http.StatusOK}
			next.ServeHTTP(buf, r)
			if buf.status < http.StatusBadRequest {
				if err := f.Flush(r.Context()); err != nil {
					log.Error().Err(err).Str("path", r.URL.Path).Msg("failed to persist roster")
					writeError(w, http.StatusServiceUnavailable, "roster could not be saved")
					return
				}
			}
			w.WriteHeader(buf.status)
			_, _ = w.Write(buf.body.Bytes())
		})
	}
}

type bufferedResponse struct {
	header      http.Header
	status      int
	wroteHeader bool
	body        bytes.Buffer
}

func (b *bufferedResponse) Header() http.Header { return b.header }

func (b *bufferedResponse) WriteHeader(status int) {
	if b.wroteHeader {
		return
	}
	b.status = status
	b.wroteHeader = true
}

func (b *bufferedResponse) Write(p []byte) (int, error) {
	b.wroteHeader = true
	return b.body.Write(p)
}
