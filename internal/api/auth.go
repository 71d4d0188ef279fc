package api

import (
	"net/http"                    // HTTP status codes
	"pens_market/internal/domain" // Importing domain models
	"pens_market/internal/events" // Domain events
	"pens_market/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/pkg/errors"      // Error inspection
	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// passwordCost is the bcrypt work factor for seller passwords
var passwordCost = bcrypt.DefaultCost

// SellerCredentials is the form sent to register and login
type SellerCredentials struct {
	WalletAddress string `form:"wallet_address" json:"wallet_address" binding:"required"` // Wallet address must be provided
	Password      string `form:"password" json:"password" binding:"required"`             // Password must be provided
}

// sellerResponse answers register and login; token is only set when JWT signing is configured
func sellerResponse(c *gin.Context, message string, sellerID uint, jwtSecret string) {
	resp := gin.H{"message": message, "seller_id": sellerID}
	if jwtSecret != "" {
		token, err := utils.GenerateJWT(sellerID, jwtSecret)
		if err != nil {
			internalError(c, "Failed to generate token", err, logrus.Fields{"seller_id": sellerID})
			return
		}
		resp["token"] = token
	}
	c.JSON(http.StatusOK, resp)
}

// RegisterSellerHandler creates a seller account keyed by its wallet address
func RegisterSellerHandler(db *gorm.DB, jwtSecret string, pub events.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SellerCredentials // Bind form to struct
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		tx := db.WithContext(c.Request.Context()) // Session scoped to this request
		// Wallet addresses are unique across every role
		var existing domain.User
		res := tx.Where("wallet_address = ?", req.WalletAddress).Limit(1).Find(&existing)
		if res.Error != nil {
			internalError(c, "Failed to register seller", res.Error, nil)
			return
		}
		if res.RowsAffected > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Wallet address already registered"})
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), passwordCost)
		if err != nil {
			internalError(c, "Failed to hash password", err, nil)
			return
		}
		seller := domain.User{WalletAddress: req.WalletAddress, Password: string(hash), Role: domain.RoleSeller}
		if err := tx.Create(&seller).Error; err != nil {
			// A concurrent registration won the unique index
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Wallet address already registered"})
				return
			}
			internalError(c, "Failed to register seller", err, nil)
			return
		}
		logrus.WithFields(logrus.Fields{
			"seller_id":      seller.ID,            // Seller ID
			"wallet_address": seller.WalletAddress, // Wallet address
		}).Info("Seller registered")
		events.Emit(c.Request.Context(), pub, events.Event{Type: events.SellerRegistered, SellerID: seller.ID})
		sellerResponse(c, "Seller registered successfully", seller.ID, jwtSecret)
	}
}

// LoginSellerHandler checks seller credentials and returns the seller ID
func LoginSellerHandler(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SellerCredentials // Bind form to struct
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		var seller domain.User
		res := db.WithContext(c.Request.Context()).
			Where("wallet_address = ?", req.WalletAddress).
			Limit(1).
			Find(&seller)
		if res.Error != nil {
			internalError(c, "Failed to log in", res.Error, nil)
			return
		}
		if res.RowsAffected == 0 || !seller.IsSeller() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid wallet address or password"})
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(seller.Password), []byte(req.Password)); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid wallet address or password"})
			return
		}
		sellerResponse(c, "Login successful", seller.ID, jwtSecret)
	}
}
