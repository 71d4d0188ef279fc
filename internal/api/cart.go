package api

import (
	"net/http"                    // HTTP status codes
	"pens_market/internal/domain" // Importing domain models
	"pens_market/internal/events" // Domain events

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// AddToCartForm is the form used to put a pen in a buyer's cart
type AddToCartForm struct {
	BuyerID  uint `form:"buyer_id" json:"buyer_id" binding:"required"` // Buyer user ID
	PenID    uint `form:"pen_id" json:"pen_id" binding:"required"`     // Pen ID
	Quantity int  `form:"quantity,default=1" json:"quantity"`          // Number of pens, 1 when omitted
}

// buyerAndPenExist answers 404 for whichever of buyer and pen is missing, buyer first
func buyerAndPenExist(c *gin.Context, tx *gorm.DB, buyerID, penID uint) bool {
	found, err := findByID(tx, &domain.User{}, buyerID)
	if err != nil {
		internalError(c, "Failed to look up buyer", err, logrus.Fields{"buyer_id": buyerID})
		return false
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Buyer not found"})
		return false
	}
	found, err = findByID(tx, &domain.Pen{}, penID)
	if err != nil {
		internalError(c, "Failed to look up pen", err, logrus.Fields{"pen_id": penID})
		return false
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pen not found"})
		return false
	}
	return true
}

// GetCartHandler returns the cart rows of a buyer, 404 when there are none
func GetCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		buyerID, ok := idParam(c, "buyer_id")
		if !ok {
			return
		}
		items := make([]domain.Cart, 0)
		err := db.WithContext(c.Request.Context()).
			Where("buyer_id = ?", buyerID).
			Order("id").
			Find(&items).Error
		if err != nil {
			internalError(c, "Failed to fetch cart", err, logrus.Fields{"buyer_id": buyerID})
			return
		}
		if len(items) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart is empty"})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// AddToCartHandler appends a cart row; repeated pens become separate rows
func AddToCartHandler(db *gorm.DB, pub events.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddToCartForm // Bind form to struct
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if blankField(c, "quantity") {
			return
		}
		tx := db.WithContext(c.Request.Context()) // Session scoped to this request
		if !buyerAndPenExist(c, tx, req.BuyerID, req.PenID) {
			return
		}
		item := domain.Cart{BuyerID: req.BuyerID, PenID: req.PenID, Quantity: req.Quantity}
		if err := tx.Create(&item).Error; err != nil {
			internalError(c, "Failed to add to cart", err, logrus.Fields{"buyer_id": req.BuyerID, "pen_id": req.PenID})
			return
		}
		logrus.WithFields(logrus.Fields{
			"cart_item_id": item.ID,       // Cart row ID
			"buyer_id":     item.BuyerID,  // Buyer ID
			"pen_id":       item.PenID,    // Pen ID
			"quantity":     item.Quantity, // Quantity
		}).Info("Cart item added")
		events.Emit(c.Request.Context(), pub, events.Event{
			Type:       events.CartItemAdded,
			CartItemID: item.ID,
			BuyerID:    item.BuyerID,
			PenID:      item.PenID,
		})
		c.JSON(http.StatusOK, item)
	}
}

// RemoveFromCartHandler deletes a single cart row by its own ID
func RemoveFromCartHandler(db *gorm.DB, pub events.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID, ok := idParam(c, "cart_item_id")
		if !ok {
			return
		}
		tx := db.WithContext(c.Request.Context())
		var item domain.Cart
		found, err := findByID(tx, &item, itemID)
		if err != nil {
			internalError(c, "Failed to remove cart item", err, logrus.Fields{"cart_item_id": itemID})
			return
		}
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}
		if err := tx.Delete(&item).Error; err != nil {
			internalError(c, "Failed to remove cart item", err, logrus.Fields{"cart_item_id": itemID})
			return
		}
		logrus.WithField("cart_item_id", item.ID).Info("Cart item removed")
		events.Emit(c.Request.Context(), pub, events.Event{
			Type:       events.CartItemRemoved,
			CartItemID: item.ID,
			BuyerID:    item.BuyerID,
			PenID:      item.PenID,
		})
		c.JSON(http.StatusOK, gin.H{"message": "Cart item deleted successfully"})
	}
}
