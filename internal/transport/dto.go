package transport

import "github.com/shopspring/decimal"

// ListQuery carries the raw list-endpoint query parameters. Values stay
// unparsed here; the repo layer resolves them against per-entity allow-lists.
type ListQuery struct {
	Search    string
	Category  string
	SortBy    string
	SortOrder string
}

type CreateCategoryRequest struct {
	CategoryName string  `json:"category_name"`
	Description  *string `json:"description"`
}

// Patch requests use pointer fields: nil means the field was absent from the
// request body and must not be written.
type PatchCategoryRequest struct {
	CategoryName *string `json:"category_name"`
	Description  *string `json:"description"`
}

type CreateProductRequest struct {
	ProductName        string          `json:"product_name"        form:"product_name"`
	ProductDescription string          `json:"product_description" form:"product_description"`
	ProductPrice       decimal.Decimal `json:"product_price"       form:"product_price"`
	CategoryID         *uint           `json:"category_id"         form:"category_id"`
	ImageURL           string          `json:"imageUrl"            form:"imageUrl"`
}

type PatchProductRequest struct {
	ProductName        *string          `json:"product_name"        form:"product_name"`
	ProductDescription *string          `json:"product_description" form:"product_description"`
	ProductPrice       *decimal.Decimal `json:"product_price"       form:"product_price"`
	CategoryID         *uint            `json:"category_id"         form:"category_id"`
}

// ProductRow is the list/read projection: the category display name comes
// from the join and ImageURL is materialized per request.
type ProductRow struct {
	ID                 uint            `json:"id"`
	ProductName        string          `json:"product_name"`
	ProductDescription string          `json:"product_description"`
	ProductPrice       decimal.Decimal `json:"product_price"`
	CategoryID         *uint           `json:"category_id"`
	Image              string          `json:"image"`
	CategoryName       *string         `json:"category_name"`
	ImageURL           string          `gorm:"-" json:"imageUrl"`
}

type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginUser struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type LoginResult struct {
	Token string
	User  LoginUser
}

type UserRow struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type UpdateProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type UpdatePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type UpdateRoleRequest struct {
	Role string `json:"role"`
}
