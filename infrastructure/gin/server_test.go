package gin_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	ginpkg "github.com/gin-gonic/gin"
	infragin "github.com/jonesrussell/north-cloud/post-resolver/infrastructure/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerBuilder_RegistersHealthMetricsAndRoutes(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("metric_total 1\n"))
	})

	srv := infragin.NewServerBuilder("post-resolver", 0).
		WithVersion("1.2.3").
		WithMetrics(metrics).
		WithRoutes(func(r *ginpkg.Engine) {
			r.NoRoute(func(c *ginpkg.Context) { c.String(http.StatusTeapot, "fallback") })
		}).
		Build()

	tests := []struct {
		path     string
		wantCode int
		wantBody string
	}{
		{path: "/health", wantCode: http.StatusOK, wantBody: `"version":"1.2.3"`},
		{path: infragin.MetricsPath, wantCode: http.StatusOK, wantBody: "metric_total 1"},
		{path: "/anything/else", wantCode: http.StatusTeapot, wantBody: "fallback"},
	}

	for _, tc := range tests {
		w := httptest.NewRecorder()
		srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, http.NoBody))

		assert.Equal(t, tc.wantCode, w.Code, tc.path)
		assert.Contains(t, w.Body.String(), tc.wantBody, tc.path)
	}
}

func TestServerBuilder_CORS(t *testing.T) {
	srv := infragin.NewServerBuilder("post-resolver", 0).
		WithCORSOrigins([]string{"https://www.example.com"}).
		Build()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", http.NoBody)
	req.Header.Set("Origin", "https://www.example.com")
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, "https://www.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_RunStopsOnContextCancel(t *testing.T) {
	srv := infragin.NewServerBuilder("post-resolver", 0).Build()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.RunWithGracefulShutdown(ctx)
	}()

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after context cancel")
	}
}
