package domain

// Cart Model is a single line item; identical buyer/pen pairs are kept as separate rows
type Cart struct {
	ID       uint `gorm:"primaryKey" json:"id"`  // Primary key
	BuyerID  uint `gorm:"index" json:"buyer_id"` // Reference to the buyer User
	PenID    uint `gorm:"index" json:"pen_id"`   // Reference to the Pen
	Quantity int  `json:"quantity"`              // Number of pens, stored as given
}

// TableName keeps the singular table name used by existing databases
func (Cart) TableName() string {
	return "cart"
}
