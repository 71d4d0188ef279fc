package domain

// RoleSeller is the only role the marketplace assigns; buyers carry no role
const RoleSeller = "seller"

// User Model
type User struct {
	ID            uint   `gorm:"primaryKey" json:"id"`                       // Primary key
	WalletAddress string `gorm:"uniqueIndex;not null" json:"wallet_address"` // Unique wallet address, used as login
	Password      string `gorm:"not null" json:"-"`                          // Hashed password
	Role          string `gorm:"index" json:"role"`                          // Role: seller, empty for buyers
}

// IsSeller reports whether the user may list pens
func (u User) IsSeller() bool {
	return u.Role == RoleSeller
}
