package model

import (
	"time"

	"github.com/google/uuid"
)

// AccountModel is the GORM-specific struct for the 'accounts' table.
// The unique index on email is the final arbiter of registration races.
type AccountModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_accounts_email"`
	FirstName    string    `gorm:"type:varchar(100);not null"`
	LastName     string    `gorm:"type:varchar(100);not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Role         string    `gorm:"type:varchar(50);not null"`
	IsApproved   bool      `gorm:"not null;default:false"`
	IsActive     bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	CustomerProfile  *CustomerProfileModel  `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
	ShopOwnerProfile *ShopOwnerProfileModel `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}

// CustomerProfileModel is the GORM-specific struct for the 'customer_profiles' table.
type CustomerProfileModel struct {
	AccountID         uuid.UUID `gorm:"type:uuid;primary_key"`
	Phone             string    `gorm:"type:varchar(20);not null"`
	PreferredLocation string    `gorm:"type:varchar(255)"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName explicitly sets the table name for GORM.
func (CustomerProfileModel) TableName() string {
	return "customer_profiles"
}

// ShopOwnerProfileModel is the GORM-specific struct for the 'shop_owner_profiles' table.
type ShopOwnerProfileModel struct {
	AccountID  uuid.UUID `gorm:"type:uuid;primary_key"`
	ShopName   string    `gorm:"type:varchar(255);not null"`
	Address    string    `gorm:"type:text;not null"`
	Phone      string    `gorm:"type:varchar(20);not null"`
	PostalCode string    `gorm:"type:varchar(20)"`
	City       string    `gorm:"type:varchar(100)"`
	MapAddress string    `gorm:"type:text"`
	Latitude   float64   `gorm:"type:decimal(10,8)"`
	Longitude  float64   `gorm:"type:decimal(11,8)"`
	IsApproved bool      `gorm:"not null;default:false"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (ShopOwnerProfileModel) TableName() string {
	return "shop_owner_profiles"
}
