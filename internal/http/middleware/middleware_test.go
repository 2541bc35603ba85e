package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/matchwise/internal/config"
	"github.com/davidbz/matchwise/internal/http/middleware"
	"github.com/davidbz/matchwise/internal/observability"
)

func tag(name string, order *[]string) middleware.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*order = append(*order, name)
			next.ServeHTTP(w, r)
		})
	}
}

func TestChain_FirstIsOutermost(t *testing.T) {
	var order []string
	handler := middleware.Chain(tag("a", &order), tag("b", &order), tag("c", &order))(
		http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			order = append(order, "handler")
		}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, []string{"a", "b", "c", "handler"}, order)
}

func TestTrace(t *testing.T) {
	tests := []struct {
		name          string
		incomingTrace string
	}{
		{name: "generates trace id"},
		{name: "propagates incoming trace id", incomingTrace: "abc123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seenTrace, seenRequest string
			handler := middleware.Trace()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seenTrace = observability.GetTraceID(r.Context())
				seenRequest = observability.GetRequestID(r.Context())
				w.WriteHeader(http.StatusTeapot)
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incomingTrace != "" {
				req.Header.Set("X-Trace-Id", tt.incomingTrace)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			require.Equal(t, http.StatusTeapot, w.Code)
			require.NotEmpty(t, seenTrace)
			require.NotEmpty(t, seenRequest)
			require.Equal(t, seenTrace, w.Header().Get("X-Trace-Id"))
			require.Equal(t, seenRequest, w.Header().Get("X-Request-Id"))
			if tt.incomingTrace != "" {
				require.Equal(t, tt.incomingTrace, seenTrace)
			}
		})
	}
}

func TestCORS_Preflight(t *testing.T) {
	cfg := &config.CORSConfig{
		AllowedOrigins: []string{"https://app.example.com"},
		AllowedMethods: []string{http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         60,
	}
	handler := middleware.CORS(cfg)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodOptions, "/v1/matches/batch", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_NilConfigIsNoop(t *testing.T) {
	called := false
	handler := middleware.CORS(nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.True(t, called)
}
