package api

import (
	"pens_market/internal/assets"     // Static asset store
	"pens_market/internal/events"     // Domain events
	"pens_market/internal/middleware" // Custom middleware

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// Deps are the handles shared by every handler
type Deps struct {
	DB          *gorm.DB           // Store handle, sessions are derived per request
	Assets      *assets.Store      // Uploaded images, served under /static
	Events      events.Publisher   // Domain event sink, Nop when nil
	JWTSecret   string             // Seller token key, tokens disabled when empty
	CORSOrigins []string           // Allowed cross-origin callers
	Logger      logrus.FieldLogger // Request logger, the standard logger when nil
}

// NewRouter wires the marketplace HTTP surface
func NewRouter(d Deps) *gin.Engine {
	if d.Events == nil {
		d.Events = events.Nop{}
	}
	if d.Logger == nil {
		d.Logger = logrus.StandardLogger()
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(d.Logger), middleware.CORS(d.CORSOrigins))
	if d.JWTSecret != "" {
		r.Use(middleware.SellerTokenMiddleware(d.JWTSecret))
	}

	// Seller routes
	r.POST("/register_seller", RegisterSellerHandler(d.DB, d.JWTSecret, d.Events)) // Registration endpoint
	r.POST("/login_seller", LoginSellerHandler(d.DB, d.JWTSecret))                 // Login endpoint

	// Pen routes
	r.GET("/all_pens/", ListAllPensHandler(d.DB))                        // List pens endpoint
	r.GET("/search_pen_by_name", SearchPensHandler(d.DB))                // Search endpoint
	r.POST("/add_pen", AddPenHandler(d.DB, d.Assets, d.Events))          // Add pen endpoint
	r.PUT("/edit_pen/:pen_id", EditPenHandler(d.DB, d.Assets, d.Events)) // Edit pen endpoint
	r.DELETE("/delete_pen/:pen_id", DeletePenHandler(d.DB, d.Events))    // Delete pen endpoint
	r.POST("/buy_pen/:pen_id", BuyPenHandler(d.DB, d.Events))            // Purchase endpoint

	// Cart routes
	r.GET("/cart/:buyer_id", GetCartHandler(d.DB))                                     // Cart listing endpoint
	r.POST("/add_to_cart", AddToCartHandler(d.DB, d.Events))                           // Add to cart endpoint
	r.DELETE("/remove_from_cart/:cart_item_id", RemoveFromCartHandler(d.DB, d.Events)) // Remove from cart endpoint

	// Uploaded images
	r.Static("/static", d.Assets.Dir())
	return r
}
