package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	"github.com/jonesrussell/north-cloud/post-resolver/internal/cms"
	"github.com/jonesrussell/north-cloud/post-resolver/internal/domain"
	"github.com/jonesrussell/north-cloud/post-resolver/internal/handler"
	"github.com/jonesrussell/north-cloud/post-resolver/internal/meta"
	"github.com/jonesrussell/north-cloud/post-resolver/internal/middleware"
	"github.com/jonesrussell/north-cloud/post-resolver/internal/redirect"
	"github.com/jonesrussell/north-cloud/post-resolver/internal/render"
	"github.com/jonesrussell/north-cloud/post-resolver/internal/resolver"
	"github.com/jonesrussell/north-cloud/post-resolver/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const helloWorldPost = `{"data":{"post":{
  "id":"cG9zdDox",
  "title":"Hello World",
  "content":"<p>Body</p>",
  "dateGmt":"2024-03-01T09:30:00",
  "modifiedGmt":"2024-03-01T09:30:00",
  "excerpt":"<p>Hi [gallery]</p>",
  "featuredImage":null,
  "mediaItems":{"nodes":[]}
}}}`

// fakeCMS answers "/2024/hello-world/" and returns null for every other URI.
type fakeCMS struct {
	server   *httptest.Server
	requests atomic.Int32
	status   int
}

func newFakeCMS(t *testing.T, status int) *fakeCMS {
	t.Helper()

	f := &fakeCMS{status: status}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.requests.Add(1)

		var body struct {
			Variables map[string]string `json:"variables"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.status)
		if body.Variables["uri"] == "/2024/hello-world/" {
			_, _ = w.Write([]byte(helloWorldPost))
			return
		}
		_, _ = w.Write([]byte(`{"data":{"post":null}}`))
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeCMS) endpoint() string {
	return f.server.URL + "/graphql/"
}

func setupRouter(t *testing.T, f *fakeCMS) (*gin.Engine, *telemetry.Provider) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	r := gin.New()

	client := cms.NewClient(f.endpoint(), f.server.Client())
	res := resolver.New(client, redirect.NewPolicy(f.endpoint(), nil))
	renderer, err := render.New(render.Options{Site: meta.Site{Locale: "en_US", Name: "Your Site Name"}})
	require.NoError(t, err)
	metrics := telemetry.NewProvider()

	h := handler.NewPostHandler(res, renderer, metrics)
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.NoRoute(middleware.TrackingParams(nil), h.HandlePost)

	return r, metrics
}

func serve(r *gin.Engine, method, target, referrer string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, http.NoBody)
	if referrer != "" {
		req.Header.Set("Referer", referrer)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestHandlePost_RendersPost(t *testing.T) {
	f := newFakeCMS(t, http.StatusOK)
	r, metrics := setupRouter(t, f)

	w := serve(r, http.MethodGet, "/2024/hello-world", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))

	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)
	title, _ := doc.Find(`meta[property="og:title"]`).Attr("content")
	assert.Equal(t, "Hello World", title)
	desc, _ := doc.Find(`meta[property="og:description"]`).Attr("content")
	assert.Equal(t, "Hi", desc)
	assert.Equal(t, 0, doc.Find(`meta[property="og:image"]`).Length())

	assert.Equal(t, int32(1), f.requests.Load())
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.Metrics.OutcomesTotal.WithLabelValues("props")), 0)
}

func TestHandlePost_TrailingSlash(t *testing.T) {
	f := newFakeCMS(t, http.StatusOK)
	r, _ := setupRouter(t, f)

	w := serve(r, http.MethodGet, "/2024/hello-world/", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandlePost_SocialReferrerRedirects(t *testing.T) {
	f := newFakeCMS(t, http.StatusOK)
	r, metrics := setupRouter(t, f)

	w := serve(r, http.MethodGet, "/2024/hello-world", "https://facebook.com/l.php")

	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, f.server.URL+"/2024/hello-world", w.Header().Get("Location"))
	assert.Equal(t, int32(0), f.requests.Load())
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.Metrics.OutcomesTotal.WithLabelValues("redirect")), 0)
}

func TestHandlePost_TrackingParamRedirects(t *testing.T) {
	f := newFakeCMS(t, http.StatusOK)
	r, _ := setupRouter(t, f)

	w := serve(r, http.MethodGet, "/2024/hello-world?fbclid=IwAR0abc", "")

	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, f.server.URL+"/2024/hello-world", w.Header().Get("Location"))
	assert.Equal(t, int32(0), f.requests.Load())
}

func TestHandlePost_NotFound(t *testing.T) {
	tests := []struct {
		name      string
		method    string
		target    string
		cmsStatus int
	}{
		{name: "missing post", method: http.MethodGet, target: "/missing", cmsStatus: http.StatusOK},
		{name: "cms failure", method: http.MethodGet, target: "/2024/hello-world", cmsStatus: http.StatusInternalServerError},
		{name: "empty segment", method: http.MethodGet, target: "/2024//hello-world", cmsStatus: http.StatusOK},
		{name: "post method", method: http.MethodPost, target: "/2024/hello-world", cmsStatus: http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFakeCMS(t, tc.cmsStatus)
			r, _ := setupRouter(t, f)

			w := serve(r, tc.method, tc.target, "")

			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
			assert.Contains(t, w.Body.String(), "could not be found")
			assert.False(t, strings.Contains(w.Body.String(), "500"), "error detail leaked")
		})
	}
}

func TestHandlePost_ServiceRoutesUnaffected(t *testing.T) {
	f := newFakeCMS(t, http.StatusOK)
	r, _ := setupRouter(t, f)

	w := serve(r, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int32(0), f.requests.Load())
}

// stubResolver returns a fixed outcome.
type stubResolver struct {
	outcome domain.Outcome
}

func (s stubResolver) Resolve(_ context.Context, _ domain.RequestContext) domain.Outcome {
	return s.outcome
}

func TestHandlePost_PermanentRedirect(t *testing.T) {
	gin.SetMode(gin.TestMode)
	renderer, err := render.New(render.Options{})
	require.NoError(t, err)

	h := handler.NewPostHandler(stubResolver{outcome: domain.RedirectOutcome(domain.Redirect{
		Destination: "https://cms.example.com/moved",
		Permanent:   true,
	})}, renderer, nil)

	r := gin.New()
	r.NoRoute(h.HandlePost)

	w := serve(r, http.MethodGet, "/old", "")
	assert.Equal(t, http.StatusPermanentRedirect, w.Code)
	assert.Equal(t, "https://cms.example.com/moved", w.Header().Get("Location"))
}
