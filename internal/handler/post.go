// Package handler maps resolution outcomes onto HTTP responses.
package handler

import (
	"bytes"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	infralogger "github.com/jonesrussell/north-cloud/post-resolver/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/post-resolver/internal/domain"
	"github.com/jonesrussell/north-cloud/post-resolver/internal/middleware"
	"github.com/jonesrussell/north-cloud/post-resolver/internal/postpath"
	"github.com/jonesrussell/north-cloud/post-resolver/internal/render"
)

const htmlContentType = "text/html; charset=utf-8"

// Resolver produces one outcome per request.
type Resolver interface {
	Resolve(ctx context.Context, rc domain.RequestContext) domain.Outcome
}

// OutcomeRecorder counts outcomes. A nil recorder is allowed.
type OutcomeRecorder interface {
	RecordOutcome(outcome domain.Outcome)
}

// PostHandler serves post pages.
type PostHandler struct {
	resolver Resolver
	renderer *render.Renderer
	recorder OutcomeRecorder
}

// NewPostHandler creates a PostHandler with the given dependencies.
func NewPostHandler(resolver Resolver, renderer *render.Renderer, recorder OutcomeRecorder) *PostHandler {
	return &PostHandler{
		resolver: resolver,
		renderer: renderer,
		recorder: recorder,
	}
}

// HandlePost resolves the request path and writes a redirect, the post page
// or the not-found page.
func (h *PostHandler) HandlePost(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		h.writeNotFound(c)
		return
	}

	rc := domain.RequestContext{
		Segments:    postpath.Split(c.Request.URL.Path),
		Referrer:    c.Request.Referer(),
		HasTracking: middleware.HasTracking(c),
		Query:       c.Request.URL.Query(),
	}

	outcome := h.resolver.Resolve(c.Request.Context(), rc)
	if h.recorder != nil {
		h.recorder.RecordOutcome(outcome)
	}
	outcome.Visit(&responder{handler: h, c: c})
}

// responder writes exactly one response per outcome.
type responder struct {
	handler *PostHandler
	c       *gin.Context
}

func (r *responder) Redirect(redirect domain.Redirect) {
	status := http.StatusTemporaryRedirect
	if redirect.Permanent {
		status = http.StatusPermanentRedirect
	}
	r.c.Redirect(status, redirect.Destination)
}

func (r *responder) Props(record *domain.ContentRecord) {
	var buf bytes.Buffer
	if err := r.handler.renderer.Post(&buf, record); err != nil {
		infralogger.FromContext(r.c.Request.Context()).Error("Failed to render post",
			infralogger.String("post_id", record.ID),
			infralogger.Error(err),
		)
		r.c.Status(http.StatusInternalServerError)
		return
	}
	r.c.Data(http.StatusOK, htmlContentType, buf.Bytes())
}

func (r *responder) NotFound() {
	r.handler.writeNotFound(r.c)
}

func (h *PostHandler) writeNotFound(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.renderer.NotFound(&buf); err != nil {
		infralogger.FromContext(c.Request.Context()).Error("Failed to render not-found page",
			infralogger.Error(err),
		)
		c.Status(http.StatusNotFound)
		return
	}
	c.Data(http.StatusNotFound, htmlContentType, buf.Bytes())
}
