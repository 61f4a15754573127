package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/middleware"
)

// maxLoggedBody caps how much of a request or response body ends up in a log line.
const maxLoggedBody = 4 << 10

const redacted = "[REDACTED]"

// redactedKeys holds credentials and student personal data. Keys match case-insensitively by substring.
var redactedKeys = []string{
	"password",
	"token",
	"secret",
	"authorization",
	"cookie",
	"phone",
	"date_of_birth",
	"resume",
}

// quietPaths are polled by probes and scrapers; only their status is logged.
var quietPaths = map[string]struct{}{
	"/api/v1/health": {},
	"/api/v1/ping":   {},
	"/metrics":       {},
}

// LoggingMiddleware logs one line when a request arrives and one when it completes.
// JSON bodies are logged with credentials and personal fields redacted; anything else is summarised by type.
func LoggingMiddleware(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			if _, quiet := quietPaths[r.URL.Path]; quiet {
				next.ServeHTTP(ww, r)
				logger.DebugContext(r.Context(), "probe", "path", r.URL.Path, "status_code", ww.Status())
				return
			}

			logger.InfoContext(r.Context(), "incoming request",
				"request_id", middleware.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"query", r.URL.RawQuery,
				"remote_addr", r.RemoteAddr,
				"user_agent", r.UserAgent(),
				"headers", redactHeaders(r.Header),
				"body", captureRequestBody(r),
			)

			var out bytes.Buffer
			ww.Tee(&limitedWriter{buf: &out, left: maxLoggedBody})
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			level := slog.LevelInfo
			switch {
			case status >= http.StatusInternalServerError:
				level = slog.LevelError
			case status >= http.StatusBadRequest:
				level = slog.LevelWarn
			}

			logger.Log(r.Context(), level, "response",
				"request_id", middleware.GetReqID(r.Context()),
				"status_code", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"response_size", ww.BytesWritten(),
				"body", describeBody(ww.Header().Get("Content-Type"), out.Bytes()),
			)
		})
	}
}

// captureRequestBody reads the body for logging and puts an identical reader back on the request.
func captureRequestBody(r *http.Request) string {
	if r.Body == nil || r.Body == http.NoBody {
		return ""
	}
	contentType := r.Header.Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, "application/json") {
		return "[" + contentType + "]"
	}

	raw, err := io.ReadAll(r.Body)
	r.Body = io.NopCloser(bytes.NewReader(raw))
	if err != nil {
		return "[unreadable]"
	}
	if len(raw) > maxLoggedBody {
		raw = raw[:maxLoggedBody]
	}
	return redactJSON(raw)
}

func describeBody(contentType string, body []byte) string {
	if len(body) == 0 {
		return ""
	}
	if !strings.HasPrefix(contentType, "application/json") {
		return "[" + contentType + "]"
	}
	return redactJSON(body)
}

func isRedacted(key string) bool {
	key = strings.ToLower(key)
	for _, k := range redactedKeys {
		if strings.Contains(key, k) {
			return true
		}
	}
	return false
}

func redactHeaders(headers http.Header) map[string]string {
	out := make(map[string]string, len(headers))
	for name, values := range headers {
		if isRedacted(name) {
			out[name] = redacted
			continue
		}
		out[name] = strings.Join(values, ", ")
	}
	return out
}

// redactJSON returns body with sensitive keys masked. Bodies that do not parse are not logged verbatim.
func redactJSON(body []byte) string {
	var data interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		return "[unparsed body]"
	}
	masked, err := json.Marshal(redactValue(data))
	if err != nil {
		return "[unparsed body]"
	}
	return string(masked)
}

func redactValue(data interface{}) interface{} {
	switch v := data.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, value := range v {
			if isRedacted(key) {
				out[key] = redacted
				continue
			}
			out[key] = redactValue(value)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = redactValue(item)
		}
		return out
	default:
		return v
	}
}

// limitedWriter keeps the first left bytes written to it and silently drops the rest.
type limitedWriter struct {
	buf  *bytes.Buffer
	left int
}

func (l *limitedWriter) Write(p []byte) (int, error) {
	if l.left > 0 {
		n := len(p)
		if n > l.left {
			n = l.left
		}
		l.buf.Write(p[:n])
		l.left -= n
	}
	return len(p), nil
}
