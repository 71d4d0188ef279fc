package middleware

import (
	"net/http" // HTTP methods
	"time"     // Preflight cache duration

	"github.com/gin-contrib/cors" // CORS middleware for gin
	"github.com/gin-gonic/gin"    // Gin web framework
)

// CORS allows credentialed requests from the given origins with any method and any request header.
// A literal "*" in Access-Control-Allow-Headers is not a wildcard once credentials are allowed,
// so preflights get the requested headers echoed back instead.
func CORS(origins []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	handler := cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch,
			http.MethodDelete, http.MethodHead, http.MethodOptions,
		},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			_, ok := allowed[c.GetHeader("Origin")]
			if requested := c.GetHeader("Access-Control-Request-Headers"); ok && requested != "" {
				c.Header("Access-Control-Allow-Headers", requested)
				c.Writer.Header().Add("Vary", "Access-Control-Request-Headers")
			}
		}
		handler(c)
	}
}
