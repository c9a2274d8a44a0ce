package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
)

type responseRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
	bytes       int
}

func (r *responseRecorder) WriteHeader(code int) {
	if !r.wroteHeader {
		r.status = code
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	if !r.wroteHeader {
		r.status = http.StatusOK
		r.wroteHeader = true
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

// LogRequests returns middleware that tags each request with an id (echoed
// in the X-Request-Id response header) and logs it.
// format selects the output style:
//   - "simple" (or ""): structured slog line with request id, method, path,
//     status, bytes, duration
//   - "nginx": nginx combined log format
func LogRequests(format string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		w.Header().Set("X-Request-Id", requestID)

		rec := &responseRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		if format == "nginx" {
			orDash := func(s string) string {
				if s == "" {
					return "-"
				}
				return s
			}
			if _, err := fmt.Fprintf(os.Stdout, "%s - - [%s] \"%s %s %s\" %d %d \"%s\" \"%s\" \"%s\"\n",
				r.RemoteAddr,
				start.Format("02/Jan/2006:15:04:05 -0700"),
				r.Method,
				r.RequestURI,
				r.Proto,
				rec.status,
				rec.bytes,
				orDash(r.Referer()),
				orDash(r.UserAgent()),
				orDash(r.Header.Get("X-Forwarded-For")),
			); err != nil {
				slog.Error("failed to write access log", "error", err)
			}
		} else {
			slog.Info("http request",
				"request_id", requestID,
				"method", r.Method,
				"path", r.RequestURI,
				"status", rec.status,
				"bytes", rec.bytes,
				"duration", time.Since(start),
			)
		}
	})
}
