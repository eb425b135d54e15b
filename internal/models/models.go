package models

import "github.com/shopspring/decimal"

const (
	RoleSuperadmin = "Superadmin"
	RoleCustomer   = "Customer"
)

type Category struct {
	ID           uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryName string  `gorm:"not null"                 json:"category_name"`
	Description  *string `json:"description"`
}

type Product struct {
	ID                 uint            `gorm:"primaryKey;autoIncrement"           json:"id"`
	ProductName        string          `gorm:"not null"                           json:"product_name"`
	ProductDescription string          `json:"product_description"`
	ProductPrice       decimal.Decimal `gorm:"type:numeric(12,2);not null"        json:"product_price"`
	CategoryID         *uint           `gorm:"index"                              json:"category_id"`
	Image              string          `gorm:"not null;default:default-image.png" json:"image"`
}

type User struct {
	ID        string `gorm:"primaryKey;size:36"   json:"id"`
	FirstName string `gorm:"not null"             json:"first_name"`
	LastName  string `gorm:"not null"             json:"last_name"`
	Email     string `gorm:"uniqueIndex;not null" json:"email"`
	Password  string `gorm:"not null"             json:"-"`
	Role      string `gorm:"not null"             json:"role"`
}
