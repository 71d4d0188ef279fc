package middleware

import (
	"net/http"                   // HTTP status codes
	"pens_market/internal/utils" // JWT utility functions
	"strings"                    // String manipulation

	"github.com/gin-gonic/gin" // Gin web framework
)

// SellerIDKey is the gin context key holding the authenticated seller ID
const SellerIDKey = "sellerID"

// SellerTokenMiddleware authenticates a seller when a bearer token is sent.
// Requests without an Authorization header pass through untouched.
func SellerTokenMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Anonymous requests keep working as before
		if authHeader == "" {
			c.Next()
			return
		}
		// Check if the Authorization header is properly formatted
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string and parse it
		claims, err := utils.ParseJWT(tokenStr, secret)       // Parse the JWT token
		if err != nil {
			// If parsing fails, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		c.Set(SellerIDKey, claims.SellerID) // Store sellerID in context
		c.Next()                            // Proceed to the next handler
	}
}

// SellerFromContext returns the seller authenticated by SellerTokenMiddleware, if any
func SellerFromContext(c *gin.Context) (uint, bool) {
	v, exists := c.Get(SellerIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
