package api

import (
	"mime/multipart"                  // Uploaded file headers
	"net/http"                        // HTTP status codes
	"pens_market/internal/assets"     // Static asset store
	"pens_market/internal/domain"     // Importing domain models
	"pens_market/internal/events"     // Domain events
	"pens_market/internal/middleware" // Seller token lookup
	"strings"                         // String manipulation

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/pkg/errors"      // Error inspection
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// PenForm is the multipart form used to edit a pen
type PenForm struct {
	Name        string   `form:"name" json:"name" binding:"required"`   // Pen name
	Description *string  `form:"description" json:"description"`        // Optional description
	Price       *float64 `form:"price" json:"price" binding:"required"` // Pen price
}

// NewPenForm is the multipart form used to add a pen
type NewPenForm struct {
	PenForm
	SellerID uint `form:"seller_id" json:"seller_id" binding:"required"` // Seller listing the pen
}

// likeEscaper makes LIKE wildcards in user input match literally, '!' being the escape character
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// ListAllPensHandler returns every pen
func ListAllPensHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		pens := make([]domain.Pen, 0)
		if err := db.WithContext(c.Request.Context()).Order("id").Find(&pens).Error; err != nil {
			internalError(c, "Failed to fetch pens", err, nil)
			return
		}
		c.JSON(http.StatusOK, pens)
	}
}

// SearchPensHandler returns pens whose name contains ?name=, case-insensitively.
// Without a name every pen matches; an empty result is 404.
func SearchPensHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.WithContext(c.Request.Context()).Order("id")
		if name := c.Query("name"); name != "" {
			pattern := "%" + likeEscaper.Replace(strings.ToLower(name)) + "%"
			query = query.Where("LOWER(name) LIKE ? ESCAPE '!'", pattern)
		}
		pens := make([]domain.Pen, 0)
		if err := query.Find(&pens).Error; err != nil {
			internalError(c, "Failed to search pens", err, nil)
			return
		}
		if len(pens) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "No pens found"})
			return
		}
		c.JSON(http.StatusOK, pens)
	}
}

// uploadedImage returns the optional "image" file of a multipart form
func uploadedImage(c *gin.Context) (*multipart.FileHeader, error) {
	fh, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil // No image supplied
	}
	return fh, err
}

// storeImage saves the optional upload and returns its stored name, nil when none was sent.
// It answers the request itself and returns ok=false on failure.
func storeImage(c *gin.Context, store *assets.Store) (*string, bool) {
	fh, err := uploadedImage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image upload"})
		return nil, false
	}
	if fh == nil {
		return nil, true
	}
	name, err := store.Save(fh)
	if err != nil {
		internalError(c, "Failed to save image", err, logrus.Fields{"filename": fh.Filename})
		return nil, false
	}
	return &name, true
}

// ownsPen rejects token holders acting on another seller's pen
func ownsPen(c *gin.Context, sellerID uint) bool {
	if tokenSeller, ok := middleware.SellerFromContext(c); ok && tokenSeller != sellerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Token does not belong to this seller"})
		return false
	}
	return true
}

// AddPenHandler lists a new pen for a seller, storing the optional image
func AddPenHandler(db *gorm.DB, store *assets.Store, pub events.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req NewPenForm // Bind form to struct
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if blankField(c, "price") {
			return
		}
		if !ownsPen(c, req.SellerID) {
			return
		}
		tx := db.WithContext(c.Request.Context()) // Session scoped to this request
		// Only users with the seller role may list pens
		var seller domain.User
		found, err := findByID(tx, &seller, req.SellerID)
		if err != nil {
			internalError(c, "Failed to add pen", err, logrus.Fields{"seller_id": req.SellerID})
			return
		}
		if !found || !seller.IsSeller() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Only sellers can add pens"})
			return
		}
		image, ok := storeImage(c, store)
		if !ok {
			return
		}
		pen := domain.Pen{
			Name:        req.Name,
			Description: req.Description,
			Image:       image,
			Price:       req.Price,
			SellerID:    req.SellerID,
		}
		if err := tx.Create(&pen).Error; err != nil {
			internalError(c, "Failed to add pen", err, logrus.Fields{"seller_id": req.SellerID})
			return
		}
		logrus.WithFields(logrus.Fields{
			"pen_id":    pen.ID,       // Pen ID
			"seller_id": pen.SellerID, // Seller ID
		}).Info("Pen added")
		events.Emit(c.Request.Context(), pub, events.Event{Type: events.PenAdded, PenID: pen.ID, SellerID: pen.SellerID})
		c.JSON(http.StatusOK, pen)
	}
}

// EditPenHandler overwrites name, description and price; the image only changes when a new file is sent
func EditPenHandler(db *gorm.DB, store *assets.Store, pub events.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		penID, ok := idParam(c, "pen_id")
		if !ok {
			return
		}
		var req PenForm // Bind form to struct
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if blankField(c, "price") {
			return
		}
		tx := db.WithContext(c.Request.Context()) // Session scoped to this request
		var pen domain.Pen
		found, err := findByID(tx, &pen, penID)
		if err != nil {
			internalError(c, "Failed to edit pen", err, logrus.Fields{"pen_id": penID})
			return
		}
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pen not found"})
			return
		}
		if !ownsPen(c, pen.SellerID) {
			return
		}
		image, ok := storeImage(c, store)
		if !ok {
			return
		}
		pen.Name = req.Name
		pen.Description = req.Description
		pen.Price = req.Price
		if image != nil {
			pen.Image = image
		}
		if err := tx.Save(&pen).Error; err != nil {
			internalError(c, "Failed to edit pen", err, logrus.Fields{"pen_id": penID})
			return
		}
		logrus.WithField("pen_id", pen.ID).Info("Pen updated")
		events.Emit(c.Request.Context(), pub, events.Event{Type: events.PenUpdated, PenID: pen.ID, SellerID: pen.SellerID})
		c.JSON(http.StatusOK, pen)
	}
}

// DeletePenHandler removes a pen. Cart and purchase rows pointing at it are left as they are.
func DeletePenHandler(db *gorm.DB, pub events.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		penID, ok := idParam(c, "pen_id")
		if !ok {
			return
		}
		tx := db.WithContext(c.Request.Context())
		var pen domain.Pen
		found, err := findByID(tx, &pen, penID)
		if err != nil {
			internalError(c, "Failed to delete pen", err, logrus.Fields{"pen_id": penID})
			return
		}
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pen not found"})
			return
		}
		if !ownsPen(c, pen.SellerID) {
			return
		}
		if err := tx.Delete(&pen).Error; err != nil {
			internalError(c, "Failed to delete pen", err, logrus.Fields{"pen_id": penID})
			return
		}
		logrus.WithField("pen_id", pen.ID).Info("Pen deleted")
		events.Emit(c.Request.Context(), pub, events.Event{Type: events.PenDeleted, PenID: pen.ID, SellerID: pen.SellerID})
		c.JSON(http.StatusOK, gin.H{"message": "Pen deleted successfully"})
	}
}
