package domain

// Pen Model
type Pen struct {
	ID          uint     `gorm:"primaryKey" json:"id"`       // Primary key
	Name        string   `gorm:"index;not null" json:"name"` // Display name, searchable
	Description *string  `json:"description"`                // Optional description
	Image       *string  `json:"image"`                      // Filename in the asset store
	Price       *float64 `json:"price"`                      // Price, not validated
	SellerID    uint     `gorm:"index" json:"seller_id"`     // Reference to the seller User
}
