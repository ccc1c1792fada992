package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	infragin "github.com/jonesrussell/north-cloud/post-resolver/infrastructure/gin"
	infralogger "github.com/jonesrussell/north-cloud/post-resolver/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/post-resolver/internal/api"
	"github.com/jonesrussell/north-cloud/post-resolver/internal/cms"
	"github.com/jonesrussell/north-cloud/post-resolver/internal/config"
	"github.com/jonesrussell/north-cloud/post-resolver/internal/handler"
	"github.com/jonesrussell/north-cloud/post-resolver/internal/meta"
	"github.com/jonesrussell/north-cloud/post-resolver/internal/redirect"
	"github.com/jonesrussell/north-cloud/post-resolver/internal/render"
	"github.com/jonesrussell/north-cloud/post-resolver/internal/resolver"
	"github.com/jonesrussell/north-cloud/post-resolver/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCMS(t *testing.T, status int) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"data":{"__typename":"RootQuery","post":null}}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newServer(t *testing.T, cmsServer *httptest.Server) *infragin.Server {
	t.Helper()

	cfg, err := config.Load("testdata/does-not-exist.yml")
	require.NoError(t, err)
	cfg.CMS.Endpoint = cmsServer.URL + "/graphql/"
	require.NoError(t, cfg.Validate())

	client := cms.NewClient(cfg.CMS.Endpoint, cmsServer.Client())
	metrics := telemetry.NewProvider()
	res := resolver.New(
		metrics.InstrumentFetcher(client),
		redirect.NewPolicy(cfg.CMS.Endpoint, cfg.Redirect.ReferrerDomains),
	)
	renderer, err := render.New(render.Options{
		Site: meta.Site{Locale: cfg.Render.Locale, Name: cfg.Render.SiteName},
	})
	require.NoError(t, err)

	postHandler := handler.NewPostHandler(res, renderer, metrics)
	return api.NewServer(postHandler, metrics, client, cfg, infralogger.NewNop())
}

func get(srv *infragin.Server, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(method, target, http.NoBody))
	return w
}

func TestServer_HealthReportsCMS(t *testing.T) {
	tests := []struct {
		name       string
		cmsStatus  int
		wantStatus infragin.HealthStatus
	}{
		{name: "cms up", cmsStatus: http.StatusOK, wantStatus: infragin.HealthStatusHealthy},
		{name: "cms down", cmsStatus: http.StatusBadGateway, wantStatus: infragin.HealthStatusDegraded},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := newServer(t, newCMS(t, tc.cmsStatus))

			w := get(srv, http.MethodGet, "/health")
			require.Equal(t, http.StatusOK, w.Code)

			var resp infragin.HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tc.wantStatus, resp.Status)
			assert.Equal(t, "post-resolver", resp.Service)
			assert.Equal(t, tc.wantStatus, resp.Checks["cms"].Status)
		})
	}
}

func TestServer_HeadHealth(t *testing.T) {
	srv := newServer(t, newCMS(t, http.StatusOK))

	assert.Equal(t, http.StatusOK, get(srv, http.MethodHead, "/health").Code)
}

func TestServer_Metrics(t *testing.T) {
	srv := newServer(t, newCMS(t, http.StatusOK))

	assert.Equal(t, http.StatusNotFound, get(srv, http.MethodGet, "/missing").Code)

	w := get(srv, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `post_resolver_outcomes_total{outcome="not_found"} 1`)
	assert.Contains(t, w.Body.String(), `post_resolver_cms_fetch_total{result="not_found"} 1`)
}

func TestServer_PostPathsReachHandler(t *testing.T) {
	srv := newServer(t, newCMS(t, http.StatusOK))

	w := get(srv, http.MethodGet, "/2024/hello-world?fbclid=abc")

	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.NotEmpty(t, w.Header().Get(infragin.RequestIDHeader))
}
