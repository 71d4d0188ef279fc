package api

import (
	"net/http"                    // HTTP status codes
	"pens_market/internal/domain" // Importing domain models
	"pens_market/internal/events" // Domain events

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// BuyPenForm records a purchase paid outside the marketplace
type BuyPenForm struct {
	BuyerID         uint   `form:"buyer_id" json:"buyer_id" binding:"required"`                 // Buyer user ID
	TransactionHash string `form:"transaction_hash" json:"transaction_hash" binding:"required"` // Payment reference, not verified
}

// BuyPenHandler records a purchase of the pen in the path. The buyer's cart is left untouched.
func BuyPenHandler(db *gorm.DB, pub events.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		penID, ok := idParam(c, "pen_id")
		if !ok {
			return
		}
		var req BuyPenForm // Bind form to struct
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		tx := db.WithContext(c.Request.Context()) // Session scoped to this request
		if !buyerAndPenExist(c, tx, req.BuyerID, penID) {
			return
		}
		purchase := domain.Purchase{BuyerID: req.BuyerID, PenID: penID, TransactionHash: &req.TransactionHash}
		if err := tx.Create(&purchase).Error; err != nil {
			internalError(c, "Failed to record purchase", err, logrus.Fields{"buyer_id": req.BuyerID, "pen_id": penID})
			return
		}
		logrus.WithFields(logrus.Fields{
			"purchase_id":      purchase.ID,         // Purchase ID
			"buyer_id":         purchase.BuyerID,    // Buyer ID
			"pen_id":           purchase.PenID,      // Pen ID
			"transaction_hash": req.TransactionHash, // Payment reference
		}).Info("Pen purchased")
		events.Emit(c.Request.Context(), pub, events.Event{
			Type:       events.PenPurchased,
			PurchaseID: purchase.ID,
			BuyerID:    purchase.BuyerID,
			PenID:      purchase.PenID,
		})
		c.JSON(http.StatusOK, gin.H{"message": "Purchase successful", "purchase_id": purchase.ID})
	}
}
