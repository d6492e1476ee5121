package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/murkotick/financial-catalog-service/internal/transport/http/middleware"
)

// RouterOptions toggles the optional middleware. A nil Limiters disables
// rate limiting and an empty JWTSecret disables auth.
type RouterOptions struct {
	Limiters  *middleware.Limiters
	JWTSecret string
	Issuer    string
}

// publicRoutes are POST routes that only read.
var publicRoutes = []string{
	http.MethodPost + " /v1/products/:id/quote",
}

// NewRouter builds the gin engine: recovery, request id and access log on
// every route, rate limiting and auth on /v1.
func NewRouter(h *Handler, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.NoRoute(func(c *gin.Context) {
		writeStatus(c, http.StatusNotFound, "route not found")
	})

	v1 := r.Group("/v1")
	if opts.Limiters != nil {
		v1.Use(middleware.RateLimit(opts.Limiters))
	}
	if opts.JWTSecret != "" {
		v1.Use(middleware.Auth([]byte(opts.JWTSecret), opts.Issuer, publicRoutes...))
	}
	h.Register(v1)
	return r
}
