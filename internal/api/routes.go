package api

import (
	"github.com/gin-gonic/gin"
	"github.com/jonesrussell/north-cloud/post-resolver/internal/handler"
	"github.com/jonesrussell/north-cloud/post-resolver/internal/middleware"
)

// SetupRoutes configures the service routes. Health and metrics are
// registered by the server builder. Every path that matches no route is
// treated as a post path.
func SetupRoutes(
	router *gin.Engine,
	postHandler *handler.PostHandler,
	trackingParams []string,
) {
	router.NoRoute(middleware.TrackingParams(trackingParams), postHandler.HandlePost)
}
