package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fekuna/omnipos-backoffice/internal/container"
	"github.com/fekuna/omnipos-backoffice/internal/server/httpserver/middleware"
)

// NewRouter mounts every handler of c under /api/v1 behind admin auth. Public
// handlers share the prefix without auth.
func NewRouter(c *container.Container) *gin.Engine {
	if !c.Config.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestLogger(c.Logger),
		middleware.CORS(c.Config.CORS.AllowOrigins),
	)

	r.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	public := r.Group("/api/v1")
	public.Use(middleware.Locale(c.Translator, c.Config.I18n.DefaultLanguage))
	for _, h := range c.Public {
		h.Register(public)
	}

	api := r.Group("/api/v1")
	api.Use(
		middleware.Locale(c.Translator, c.Config.I18n.DefaultLanguage),
		middleware.Auth(c.Config.JWT.SecretKey, c.Store, c.Clock, c.Logger),
	)
	for _, h := range c.Handlers {
		h.Register(api)
	}
	return r
}
