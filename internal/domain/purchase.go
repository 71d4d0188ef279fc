package domain

// Purchase Model
type Purchase struct {
	ID              uint    `gorm:"primaryKey" json:"id"`  // Primary key
	BuyerID         uint    `gorm:"index" json:"buyer_id"` // Reference to the buyer User
	PenID           uint    `gorm:"index" json:"pen_id"`   // Reference to the Pen
	TransactionHash *string `json:"transaction_hash"`      // Client supplied, never verified
}
