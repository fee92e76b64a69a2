package api

import (
	"log"
	stdhttp "net/http"

	intconfig "routeadmin/internal/config"
	h "routeadmin/internal/http/handlers"
	"routeadmin/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// Deps are the runtime pieces the router wires into handlers.
type Deps struct {
	Console    *h.Console
	SessionKey []byte
}

func NewRouter(env intconfig.Env, deps Deps) (*gin.Engine, error) {
	tmpl, err := h.Templates()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		gin.Recovery(),
		middleware.Session(deps.SessionKey, env.SessionTTL, gin.Mode() == gin.ReleaseMode),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	con := deps.Console

	pages := r.Group("/")
	pages.Use(middleware.SecureHeaders())
	{
		pages.GET("", con.Index)
		pages.GET("routes", con.RoutesPage)
		pages.POST("routes/:id/delete", con.OpenDeleteDialog)
		pages.POST("deletion/confirm", con.ConfirmDelete)
		pages.POST("deletion/cancel", con.CancelDelete)
		pages.GET("export/routes.pdf", con.ExportPDF)
	}

	api := r.Group("/api")
	api.Use(middleware.CORS(env.CORSOrigins))
	{
		api.OPTIONS("/*path", func(c *gin.Context) { c.AbortWithStatus(stdhttp.StatusNoContent) })
		api.GET("/health", h.Health)
		api.GET("/endpoints", h.Endpoints)
		api.GET("/cities", con.Cities)
		api.GET("/state", con.State)
		api.POST("/deletion", con.APIOpenDelete)
		api.DELETE("/deletion", con.APICancelDelete)
		api.POST("/deletion/confirm", con.APIConfirmDelete)
		api.GET("/audit", con.AuditLog)
	}

	h.SetRouter(r)
	return r, nil
}
